package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/cubetimer/internal/config"
)

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Timer.ScrambleLength)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := config.LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_Values(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[timer]
scramble-length = 25
hide-while-timing = true
theme = "dark"
input = "toggle"
wake-lock-command = ["caffeinate", "-d"]

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Timer.ScrambleLength)
	assert.Equal(t, 25, *cfg.Timer.ScrambleLength)
	require.NotNil(t, cfg.Timer.HideWhileTiming)
	assert.True(t, *cfg.Timer.HideWhileTiming)
	assert.Nil(t, cfg.Timer.ShowPreviousTimes)
	require.NotNil(t, cfg.Timer.WakeLockCommand)
	assert.Equal(t, []string{"caffeinate", "-d"}, *cfg.Timer.WakeLockCommand)
	require.NotNil(t, cfg.Log.Level)
	assert.Equal(t, "debug", *cfg.Log.Level)
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[timer]\nscramble-lenght = 3\n"), 0o644))
	_, err := config.LoadConfig(path)
	assert.ErrorContains(t, err, "scramble-lenght")
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv(config.EnvDBPath, "/tmp/cube.db")
	t.Setenv(config.EnvConfigPath, "")
	env := config.LoadEnv()
	assert.Equal(t, "/tmp/cube.db", env.DBPathOrDefault())
	assert.Equal(t, config.DefaultConfigPath(), env.ConfigPathOrDefault())
}

func TestDefaultPaths_FollowXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_CONFIG_HOME", "/conf")
	t.Setenv("XDG_STATE_HOME", "/state")
	assert.Equal(t, filepath.Join("/data", "cubetimer", "cubetimer.db"), config.DefaultDBPath())
	assert.Equal(t, filepath.Join("/conf", "cubetimer", "config.toml"), config.DefaultConfigPath())
	assert.Equal(t, filepath.Join("/state", "cubetimer", "cubetimer.log"), config.DefaultLogPath())
}
