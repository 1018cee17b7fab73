package main

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/cubetimer/internal/config"
	"github.com/verte-zerg/cubetimer/internal/input"
	"github.com/verte-zerg/cubetimer/internal/model"
	"github.com/verte-zerg/cubetimer/internal/wakelock"
)

func ptr[T any](v T) *T { return &v }

func TestResolveTimerOptionsPrecedence(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--theme", "light"}))

	stored := model.DefaultSettings()
	stored.ScrambleLength = 30
	stored.HideWhileTiming = true
	stored.Theme = model.ThemeDark

	file := config.TimerConfig{
		ScrambleLength: ptr(25),
		Theme:          ptr("dark"),
		Input:          ptr("toggle"),
	}
	opts, err := resolveTimerOptions(cmd, stored, file)
	require.NoError(t, err)

	assert.Equal(t, 25, opts.settings.ScrambleLength, "file beats stored")
	assert.True(t, opts.settings.HideWhileTiming, "stored beats default")
	assert.Equal(t, model.ThemeLight, opts.settings.Theme, "flag beats file")
	assert.Equal(t, input.ModeToggle, opts.inputMode)
	assert.Equal(t, input.DefaultReleaseGap, opts.releaseGap)
	assert.InDelta(t, 0.5, opts.stage, 1e-9)
	assert.True(t, opts.wakeLock)
	assert.Equal(t, wakelock.DefaultCommand, opts.lockCmd)
}

func TestResolveTimerOptionsWakeLock(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags(nil))
	opts, err := resolveTimerOptions(cmd, model.DefaultSettings(), config.TimerConfig{
		WakeLock:        ptr(false),
		WakeLockCommand: ptr([]string{"caffeinate", "-d"}),
	})
	require.NoError(t, err)
	assert.False(t, opts.wakeLock)
	assert.Equal(t, []string{"caffeinate", "-d"}, opts.lockCmd)

	cmd = newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--no-wake-lock"}))
	opts, err = resolveTimerOptions(cmd, model.DefaultSettings(), config.TimerConfig{WakeLock: ptr(true)})
	require.NoError(t, err)
	assert.False(t, opts.wakeLock)
}

func TestResolveTimerOptionsRejectsInvalid(t *testing.T) {
	cases := map[string][]string{
		"theme":  {"--theme", "sepia"},
		"length": {"--scramble-length", "0"},
		"input":  {"--input", "tap"},
		"gap":    {"--release-gap-ms", "0"},
		"stage":  {"--stage-ms", "0"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			cmd := newRootCmd()
			require.NoError(t, cmd.ParseFlags(args))
			_, err := resolveTimerOptions(cmd, model.DefaultSettings(), config.TimerConfig{})
			assert.Error(t, err)
		})
	}
}

func TestResolveTimerOptionsRejectsZeroStageFromFile(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags(nil))
	_, err := resolveTimerOptions(cmd, model.DefaultSettings(), config.TimerConfig{StageMs: ptr(0)})
	assert.ErrorContains(t, err, "stage-ms")
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	// Uncommenting every key in the template must give a valid config.
	keyLine := regexp.MustCompile(`(?m)^# ([a-z-]+ = )`)
	content := keyLine.ReplaceAllString(defaultConfigTemplate(), "$1")
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Timer.ScrambleLength)
	assert.Equal(t, model.DefaultScrambleLength, *cfg.Timer.ScrambleLength)
	require.NotNil(t, cfg.Timer.ReleaseGapMs)
	assert.Equal(t, int(input.DefaultReleaseGap/time.Millisecond), *cfg.Timer.ReleaseGapMs)
	require.NotNil(t, cfg.Timer.WakeLockCommand)
	assert.Equal(t, wakelock.DefaultCommand, *cfg.Timer.WakeLockCommand)
	require.NotNil(t, cfg.Log.Level)
	assert.Equal(t, defaultLogLevel, *cfg.Log.Level)
}

func TestCheckScramble(t *testing.T) {
	var out strings.Builder
	require.NoError(t, checkScramble(&out, "R U F' L2 B"))
	assert.Equal(t, "R U F' L2 B: 5 moves, ok\n", out.String())

	assert.Error(t, checkScramble(&out, "R L U"), "same axis")
	assert.Error(t, checkScramble(&out, "R X"), "bad face")
	assert.Error(t, checkScramble(&out, "  "), "empty")
}

func TestConfirm(t *testing.T) {
	var out strings.Builder
	ok, err := confirm(strings.NewReader("yes\n"), &out, "sure? ")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "sure? ", out.String())

	ok, err = confirm(strings.NewReader(""), &out, "sure? ")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWriteExportReplacesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "times.csv")
	require.NoError(t, writeExport(path, "csv", []float64{9.5}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "1,9.500,00:09.500,,")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must be cleaned up")
}
