// Package model defines shared data structures.
package model

import "fmt"

// TimerState is the lifecycle state of a solve attempt.
type TimerState int

const (
	Waiting TimerState = iota
	Staging
	Staged
	Timing
	Timed
)

func (s TimerState) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Staging:
		return "staging"
	case Staged:
		return "staged"
	case Timing:
		return "timing"
	case Timed:
		return "timed"
	default:
		return fmt.Sprintf("TimerState(%d)", int(s))
	}
}

// Theme selects the color palette of the timer UI.
type Theme string

const (
	ThemeAuto  Theme = "auto"
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	switch t {
	case ThemeAuto, ThemeLight, ThemeDark:
		return true
	default:
		return false
	}
}

// Next cycles auto -> light -> dark -> auto.
func (t Theme) Next() Theme {
	switch t {
	case ThemeAuto:
		return ThemeLight
	case ThemeLight:
		return ThemeDark
	default:
		return ThemeAuto
	}
}

// Settings is an immutable snapshot of user preferences. It is passed by
// value into the settings dialog and a new value is returned from it.
type Settings struct {
	Theme             Theme
	ScrambleLength    int
	HideWhileTiming   bool
	ShowPreviousTimes bool
}

// Default settings values.
const (
	DefaultScrambleLength = 20
	MaxScrambleLength     = 99
)

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		Theme:             ThemeAuto,
		ScrambleLength:    DefaultScrambleLength,
		HideWhileTiming:   false,
		ShowPreviousTimes: true,
	}
}

// Validate checks the snapshot for values the core cannot use.
func (s Settings) Validate() error {
	if !s.Theme.Valid() {
		return fmt.Errorf("unknown theme %q", s.Theme)
	}
	if s.ScrambleLength <= 0 || s.ScrambleLength > MaxScrambleLength {
		return fmt.Errorf("scramble length must be between 1 and %d", MaxScrambleLength)
	}
	return nil
}

// Metric is a derived statistic that may be unavailable, e.g. an average of
// five over a history shorter than five solves.
type Metric struct {
	Value float64
	OK    bool
}

// Some wraps an available value.
func Some(v float64) Metric {
	return Metric{Value: v, OK: true}
}

// Summary is the stats snapshot derived from a solve history.
type Summary struct {
	Count  int
	Best   Metric
	Worst  Metric
	Mean   Metric
	Avg5   Metric
	Avg12  Metric
	Last10 []float64
}
