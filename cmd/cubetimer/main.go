// Package main provides the CLI entrypoint for cubetimer.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/cubetimer/internal/config"
	"github.com/verte-zerg/cubetimer/internal/input"
	"github.com/verte-zerg/cubetimer/internal/logging"
	"github.com/verte-zerg/cubetimer/internal/model"
	"github.com/verte-zerg/cubetimer/internal/scramble"
	"github.com/verte-zerg/cubetimer/internal/session"
	"github.com/verte-zerg/cubetimer/internal/store"
	"github.com/verte-zerg/cubetimer/internal/timer"
	"github.com/verte-zerg/cubetimer/internal/tui"
	"github.com/verte-zerg/cubetimer/internal/wakelock"
)

const (
	defaultLogLevel     = "warn"
	defaultInputMode    = string(input.ModeHold)
	defaultReleaseGapMs = int(input.DefaultReleaseGap / time.Millisecond)
	defaultStageMs      = int(timer.DefaultStageThreshold * 1000)
)

var (
	timerScrambleLength    int
	timerHideWhileTiming   bool
	timerShowPreviousTimes bool
	timerTheme             string
	timerInput             string
	timerReleaseGapMs      int
	timerStageMs           int
	timerNoWakeLock        bool

	logLevel string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := model.DefaultSettings()
	rootCmd := &cobra.Command{
		Use:           "cubetimer",
		Short:         "TUI speedcubing timer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTimerCmd,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")

	rootCmd.Flags().IntVar(&timerScrambleLength, "scramble-length", defaults.ScrambleLength, "moves per scramble")
	rootCmd.Flags().BoolVar(&timerHideWhileTiming, "hide-while-timing", defaults.HideWhileTiming, "hide the running time while timing")
	rootCmd.Flags().BoolVar(&timerShowPreviousTimes, "show-previous-times", defaults.ShowPreviousTimes, "list recent times under the timer")
	rootCmd.Flags().StringVar(&timerTheme, "theme", string(defaults.Theme), "color theme (auto, light, dark)")
	rootCmd.Flags().StringVar(&timerInput, "input", defaultInputMode, "space key mode (hold, toggle)")
	rootCmd.Flags().IntVar(&timerReleaseGapMs, "release-gap-ms", defaultReleaseGapMs, "hold mode: release after this many ms without key repeats")
	rootCmd.Flags().IntVar(&timerStageMs, "stage-ms", defaultStageMs, "minimum hold in ms before the timer arms")
	rootCmd.Flags().BoolVar(&timerNoWakeLock, "no-wake-lock", false, "do not keep the display awake while timing")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newScrambleCmd())
	rootCmd.AddCommand(newClearCmd())
	rootCmd.AddCommand(newExportCmd())

	return rootCmd
}

type timerOptions struct {
	settings   model.Settings
	inputMode  input.Mode
	releaseGap time.Duration
	stage      float64
	wakeLock   bool
	lockCmd    []string
}

func runTimerCmd(cmd *cobra.Command, _ []string) error {
	env, fileCfg, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	closer, err := logging.ToFile(config.DefaultLogPath())
	if err != nil {
		// Never let log lines land on the terminal the TUI draws on.
		logging.SetOutput(io.Discard)
	} else {
		defer func() { _ = closer.Close() }()
	}

	st, err := openStore(env)
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	opts, err := resolveTimerOptions(cmd, session.LoadSettings(ctx, st, model.DefaultSettings()), fileCfg.Timer)
	if err != nil {
		return err
	}

	var lock wakelock.Locker = wakelock.Noop{}
	if opts.wakeLock {
		lock = wakelock.NewInhibitor(opts.lockCmd)
	}

	sess := session.New(ctx, st, scramble.New(), opts.settings)
	m := tui.NewModel(tui.Options{
		Session:        sess,
		Lock:           lock,
		InputMode:      opts.inputMode,
		ReleaseGap:     opts.releaseGap,
		StageThreshold: opts.stage,
		AltScreen:      true,
	})
	defer m.Close()

	logging.Info("starting timer", "db", env.DBPathOrDefault(), "input", opts.inputMode, "solves", sess.Summary().Count)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())
	if _, err := program.Run(); err != nil {
		logging.Error("timer exited", "err", err)
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// resolveTimerOptions layers the config file over stored settings, and
// explicit flags over both.
func resolveTimerOptions(cmd *cobra.Command, stored model.Settings, file config.TimerConfig) (timerOptions, error) {
	storedTheme := string(stored.Theme)
	applyIntConfig(cmd, "scramble-length", &timerScrambleLength, &stored.ScrambleLength)
	applyBoolConfig(cmd, "hide-while-timing", &timerHideWhileTiming, &stored.HideWhileTiming)
	applyBoolConfig(cmd, "show-previous-times", &timerShowPreviousTimes, &stored.ShowPreviousTimes)
	applyStringConfig(cmd, "theme", &timerTheme, &storedTheme)

	applyIntConfig(cmd, "scramble-length", &timerScrambleLength, file.ScrambleLength)
	applyBoolConfig(cmd, "hide-while-timing", &timerHideWhileTiming, file.HideWhileTiming)
	applyBoolConfig(cmd, "show-previous-times", &timerShowPreviousTimes, file.ShowPreviousTimes)
	applyStringConfig(cmd, "theme", &timerTheme, file.Theme)
	applyStringConfig(cmd, "input", &timerInput, file.Input)
	applyIntConfig(cmd, "release-gap-ms", &timerReleaseGapMs, file.ReleaseGapMs)
	applyIntConfig(cmd, "stage-ms", &timerStageMs, file.StageMs)

	wakeLock := !timerNoWakeLock
	if file.WakeLock != nil && !cmd.Flags().Changed("no-wake-lock") {
		wakeLock = *file.WakeLock
	}
	lockCmd := wakelock.DefaultCommand
	if file.WakeLockCommand != nil && len(*file.WakeLockCommand) > 0 {
		lockCmd = *file.WakeLockCommand
	}

	opts := timerOptions{
		settings: model.Settings{
			Theme:             model.Theme(timerTheme),
			ScrambleLength:    timerScrambleLength,
			HideWhileTiming:   timerHideWhileTiming,
			ShowPreviousTimes: timerShowPreviousTimes,
		},
		releaseGap: time.Duration(timerReleaseGapMs) * time.Millisecond,
		stage:      float64(timerStageMs) / 1000,
		wakeLock:   wakeLock,
		lockCmd:    lockCmd,
	}
	mode, err := input.ParseMode(timerInput)
	if err != nil {
		return timerOptions{}, fmt.Errorf("--input: %w", err)
	}
	opts.inputMode = mode
	if err := validateTimerOptions(opts); err != nil {
		return timerOptions{}, err
	}
	return opts, nil
}

func validateTimerOptions(opts timerOptions) error {
	if !opts.settings.Theme.Valid() {
		return fmt.Errorf("--theme must be one of auto, light, dark")
	}
	if err := opts.settings.Validate(); err != nil {
		return fmt.Errorf("--scramble-length: %w", err)
	}
	if opts.releaseGap <= 0 {
		return fmt.Errorf("--release-gap-ms must be > 0")
	}
	if opts.stage <= 0 {
		return fmt.Errorf("--stage-ms must be > 0")
	}
	return nil
}

// loadEnvironment reads .env and the config file and sets the log level.
// The level comes from the flag, then the environment, then the file.
func loadEnvironment(cmd *cobra.Command) (config.Env, config.FileConfig, error) {
	env := config.LoadEnv()
	fileCfg, err := config.LoadConfig(env.ConfigPathOrDefault())
	if err != nil {
		return env, config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	level := logLevel
	if !cmd.Flags().Changed("log-level") {
		applyStringConfig(cmd, "log-level", &level, fileCfg.Log.Level)
		if env.LogLevel != "" {
			level = env.LogLevel
		}
	}
	logging.SetLevel(level)
	return env, fileCfg, nil
}

func openStore(env config.Env) (*store.Store, error) {
	st, err := store.Open(env.DBPathOrDefault())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		logging.Warn("failed to close db", "err", err)
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}
