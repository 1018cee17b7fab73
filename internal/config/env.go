package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variables overriding default paths and the log level.
const (
	EnvDBPath     = "CUBETIMER_DB"
	EnvConfigPath = "CUBETIMER_CONFIG"
	EnvLogLevel   = "CUBETIMER_LOG_LEVEL"
)

// Env holds environment overrides. Empty fields are unset.
type Env struct {
	DBPath     string
	ConfigPath string
	LogLevel   string
}

// LoadEnv reads a .env file from the working directory when present and
// returns the overrides found in the environment. Variables already set in
// the environment win over the file.
func LoadEnv() Env {
	// A missing .env is the normal case.
	_ = godotenv.Load()
	return Env{
		DBPath:     os.Getenv(EnvDBPath),
		ConfigPath: os.Getenv(EnvConfigPath),
		LogLevel:   os.Getenv(EnvLogLevel),
	}
}

// DBPathOrDefault returns the override or the XDG default.
func (e Env) DBPathOrDefault() string {
	return envOr(e.DBPath, DefaultDBPath())
}

// ConfigPathOrDefault returns the override or the XDG default.
func (e Env) ConfigPathOrDefault() string {
	return envOr(e.ConfigPath, DefaultConfigPath())
}

func envOr(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
