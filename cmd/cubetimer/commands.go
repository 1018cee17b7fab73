package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/cubetimer/internal/config"
	"github.com/verte-zerg/cubetimer/internal/export"
	"github.com/verte-zerg/cubetimer/internal/model"
	"github.com/verte-zerg/cubetimer/internal/scramble"
	"github.com/verte-zerg/cubetimer/internal/session"
	"github.com/verte-zerg/cubetimer/internal/stats"
	"github.com/verte-zerg/cubetimer/internal/statsui"
	"github.com/verte-zerg/cubetimer/internal/store"
	"github.com/verte-zerg/cubetimer/internal/wakelock"
)

const defaultTrendWindow = 5

var (
	statsPlain  bool
	statsColor  bool
	statsLast   int
	statsWindow int

	scrambleLength int
	scrambleCount  int
	scrambleCheck  string

	clearYes bool

	exportFormat string
	exportOutput string
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.LoadEnv().ConfigPathOrDefault()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Browse solve history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the browser")
	cmd.Flags().BoolVar(&statsColor, "color", false, "highlight the best solve even when not writing to a terminal")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to the last N solves")
	cmd.Flags().IntVar(&statsWindow, "window", defaultTrendWindow, "moving average window for the trend")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if statsWindow <= 0 {
		return fmt.Errorf("--window must be > 0")
	}
	times, err := loadTimes(cmd)
	if err != nil {
		return err
	}

	if statsPlain {
		out := cmd.OutOrStdout()
		if err := stats.RenderSummary(out, session.Summarize(times)); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
		if len(times) == 0 {
			return nil
		}
		if _, err := fmt.Fprintln(out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		opts := stats.HistoryOptions{
			Last:       statsLast,
			ForceColor: statsColor,
			Width:      stats.TerminalWidth(0),
		}
		if err := stats.RenderHistory(out, times, opts); err != nil {
			return fmt.Errorf("failed to write history: %w", err)
		}
		return nil
	}

	m := statsui.NewModel(times, statsui.Config{Last: statsLast, Window: statsWindow})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newScrambleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scramble",
		Short: "Print scrambles",
		Args:  cobra.NoArgs,
		RunE:  runScrambleCmd,
	}
	cmd.Flags().IntVar(&scrambleLength, "length", model.DefaultScrambleLength, "moves per scramble")
	cmd.Flags().IntVar(&scrambleCount, "count", 1, "number of scrambles")
	cmd.Flags().StringVar(&scrambleCheck, "check", "", "validate a scramble instead of generating one")
	return cmd
}

func runScrambleCmd(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("check") {
		return checkScramble(cmd.OutOrStdout(), scrambleCheck)
	}
	_, fileCfg, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "length", &scrambleLength, fileCfg.Timer.ScrambleLength)
	if scrambleLength <= 0 || scrambleLength > model.MaxScrambleLength {
		return fmt.Errorf("--length must be between 1 and %d", model.MaxScrambleLength)
	}
	if scrambleCount <= 0 {
		return fmt.Errorf("--count must be > 0")
	}
	gen := scramble.New()
	w := bufio.NewWriter(cmd.OutOrStdout())
	for i := 0; i < scrambleCount; i++ {
		if _, err := fmt.Fprintln(w, gen.Generate(scrambleLength)); err != nil {
			return fmt.Errorf("failed to write scramble: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write scramble: %w", err)
	}
	return nil
}

// checkScramble rejects unknown notation and consecutive moves on one axis.
func checkScramble(w io.Writer, text string) error {
	s, err := scramble.Parse(text)
	if err != nil {
		return err
	}
	if len(s) == 0 {
		return fmt.Errorf("scramble is empty")
	}
	if !s.Valid() {
		return fmt.Errorf("scramble %q repeats an axis on consecutive moves", s.String())
	}
	_, err = fmt.Fprintf(w, "%s: %d moves, ok\n", s.String(), len(s))
	return err
}

func newClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded times",
		Args:  cobra.NoArgs,
		RunE:  runClearCmd,
	}
	cmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func runClearCmd(cmd *cobra.Command, _ []string) error {
	env, _, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(env)
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	times := store.Load(ctx, st, store.KeyTimes, []float64{})
	if len(times) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "No solves recorded.")
		return err
	}
	if !clearYes {
		ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Clear all %d recorded times? [y/N] ", len(times)))
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
	if err := store.Write(ctx, st, store.KeyTimes, []float64{}); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d times.\n", len(times))
	return err
}

func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	if _, err := fmt.Fprint(out, prompt); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export solve history",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportFormat, "format", string(export.JSON), "output format (json, yaml, csv)")
	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	times, err := loadTimes(cmd)
	if err != nil {
		return err
	}
	if exportOutput == "" || exportOutput == "-" {
		return export.Write(cmd.OutOrStdout(), format, times)
	}
	return writeExport(exportOutput, format, times)
}

// writeExport writes through a temp file so a failed export never leaves a
// truncated file behind.
func writeExport(path string, format export.Format, times []float64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "export-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp export: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	if err := export.Write(writer, format, times); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close export: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

func loadTimes(cmd *cobra.Command) ([]float64, error) {
	env, _, err := loadEnvironment(cmd)
	if err != nil {
		return nil, err
	}
	st, err := openStore(env)
	if err != nil {
		return nil, err
	}
	defer closeStore(st)
	return store.Load(context.Background(), st, store.KeyTimes, []float64{}), nil
}

func defaultConfigTemplate() string {
	defaults := model.DefaultSettings()
	return fmt.Sprintf(`# cubetimer configuration
# Uncomment a value to enable it. CLI flags override config values, and
# config values override what the settings dialog saved.

[timer]
# scramble-length = %d        # Moves per scramble (1-%d)
# hide-while-timing = %t   # Hide the running time while timing
# show-previous-times = %t  # List recent times under the timer
# theme = %q             # auto, light or dark
# input = %q             # hold: keep space down; toggle: each press flips
# release-gap-ms = %d        # Hold mode: release after this long without key repeats
# stage-ms = %d              # Minimum hold before the timer arms
# wake-lock = true             # Keep the display awake while timing
# wake-lock-command = [%s]

[log]
# level = %q              # debug, info, warn or error
`,
		defaults.ScrambleLength,
		model.MaxScrambleLength,
		defaults.HideWhileTiming,
		defaults.ShowPreviousTimes,
		string(defaults.Theme),
		defaultInputMode,
		defaultReleaseGapMs,
		defaultStageMs,
		quoteList(wakelock.DefaultCommand),
		defaultLogLevel,
	)
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return strings.Join(quoted, ", ")
}
