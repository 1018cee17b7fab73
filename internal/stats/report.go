package stats

import (
	"fmt"
	"io"
	"math"
	"os"

	"golang.org/x/term"

	"github.com/verte-zerg/cubetimer/internal/display"
	"github.com/verte-zerg/cubetimer/internal/model"
)

const (
	colorBest  = "\x1b[32m"
	colorReset = "\x1b[0m"

	trendLabel = "Trend: "
)

// HistoryOptions controls RenderHistory.
type HistoryOptions struct {
	// Last limits the table to the most recent solves; 0 shows all.
	Last int
	// ForceColor highlights the best solve even when w is not a terminal.
	ForceColor bool
	// Width trims the trend line to fit; 0 leaves it untrimmed.
	Width int
}

// RenderSummary prints the stats snapshot.
func RenderSummary(w io.Writer, s model.Summary) error {
	if s.Count == 0 {
		_, err := fmt.Fprintln(w, "No solves recorded.")
		return err
	}
	tbl := newTable(false, column{}, column{align: alignRight})
	tbl.addRow("Solves", fmt.Sprintf("%d", s.Count))
	tbl.addRow("Best", display.Metric(s.Best))
	tbl.addRow("Worst", display.Metric(s.Worst))
	tbl.addRow("Mean", display.Metric(s.Mean))
	tbl.addRow("Ao5", display.Metric(s.Avg5))
	tbl.addRow("Ao12", display.Metric(s.Avg12))
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	for _, line := range tbl.lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderHistory prints the most recent solves with rolling averages and a
// trend sparkline. The best solve is highlighted when writing to a color
// terminal.
func RenderHistory(w io.Writer, times []float64, opts HistoryOptions) error {
	if len(times) == 0 {
		return nil
	}
	ao5 := Rolling(times, 5)
	ao12 := Rolling(times, 12)
	start := 0
	if opts.Last > 0 && len(times) > opts.Last {
		start = len(times) - opts.Last
	}
	best, err := Best(times)
	if err != nil {
		return err
	}

	tbl := newTable(true,
		column{title: "#", align: alignRight},
		column{title: "Time", align: alignRight},
		column{title: "Ao5", align: alignRight},
		column{title: "Ao12", align: alignRight},
	)
	// Line 0 is the header.
	bestLine := -1
	for i := start; i < len(times); i++ {
		if times[i] == best && bestLine == -1 {
			bestLine = len(tbl.rows) + 1
		}
		tbl.addRow(
			fmt.Sprintf("%d", i+1),
			display.Time(times[i]),
			rollingCell(ao5[i]),
			rollingCell(ao12[i]),
		)
	}

	if _, err := fmt.Fprintln(w, "History"); err != nil {
		return err
	}
	useColor := shouldUseColor(w, opts.ForceColor)
	for i, line := range tbl.lines() {
		if useColor && i == bestLine {
			line = colorBest + line + colorReset
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, trendLabel+Sparkline(trendValues(times[start:], opts.Width))); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// trendValues keeps the most recent values that fit after the label.
func trendValues(values []float64, width int) []float64 {
	if width <= 0 {
		return values
	}
	room := width - len(trendLabel)
	if room < 1 {
		room = 1
	}
	if len(values) > room {
		return values[len(values)-room:]
	}
	return values
}

func rollingCell(v float64) string {
	if math.IsNaN(v) {
		return display.Unavailable
	}
	return display.Time(v)
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// TerminalWidth returns the stdout width, or fallback when not a terminal.
func TerminalWidth(fallback int) int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
