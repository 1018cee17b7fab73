// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Timer TimerConfig `toml:"timer"`
	Log   LogConfig   `toml:"log"`
}

// TimerConfig maps timer-related settings. Nil means unset.
type TimerConfig struct {
	ScrambleLength    *int      `toml:"scramble-length"`
	HideWhileTiming   *bool     `toml:"hide-while-timing"`
	ShowPreviousTimes *bool     `toml:"show-previous-times"`
	Theme             *string   `toml:"theme"`
	Input             *string   `toml:"input"`
	ReleaseGapMs      *int      `toml:"release-gap-ms"`
	StageMs           *int      `toml:"stage-ms"`
	WakeLock          *bool     `toml:"wake-lock"`
	WakeLockCommand   *[]string `toml:"wake-lock-command"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
