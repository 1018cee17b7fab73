// Package session owns the solve history of a practice session together
// with its derived stats, the current scramble and the user settings.
package session

import (
	"context"
	"fmt"

	"github.com/verte-zerg/cubetimer/internal/logging"
	"github.com/verte-zerg/cubetimer/internal/model"
	"github.com/verte-zerg/cubetimer/internal/scramble"
	"github.com/verte-zerg/cubetimer/internal/stats"
	"github.com/verte-zerg/cubetimer/internal/store"
)

// Averages need at least this many solves.
const (
	avg5Size   = 5
	avg12Size  = 12
	recentSize = 10
)

// Generator produces scrambles.
type Generator interface {
	Generate(length int) scramble.Scramble
}

// Session is not safe for concurrent use; it lives on the UI update loop.
type Session struct {
	ctx context.Context
	kv  store.KV
	gen Generator

	settings model.Settings
	times    []float64
	summary  model.Summary
	scramble scramble.Scramble
	newBest  bool
}

// New loads the stored history and generates the first scramble.
func New(ctx context.Context, kv store.KV, gen Generator, settings model.Settings) *Session {
	s := &Session{
		ctx:      ctx,
		kv:       kv,
		gen:      gen,
		settings: settings,
	}
	s.times = store.Load(ctx, kv, store.KeyTimes, []float64{})
	s.times = sanitize(s.times)
	s.scramble = gen.Generate(settings.ScrambleLength)
	s.summary = Summarize(s.times)
	return s
}

// sanitize drops values that cannot be solve times, e.g. from a hand
// edited database.
func sanitize(times []float64) []float64 {
	out := make([]float64, 0, len(times))
	for _, t := range times {
		if t >= 0 {
			out = append(out, t)
		}
	}
	if len(out) != len(times) {
		logging.Warn("dropped invalid stored times", "count", len(times)-len(out))
	}
	return out
}

// LoadSettings overlays settings saved from the settings dialog on base.
func LoadSettings(ctx context.Context, kv store.KV, base model.Settings) model.Settings {
	loaded := model.Settings{
		Theme:             model.Theme(store.Load(ctx, kv, store.KeyTheme, string(base.Theme))),
		ScrambleLength:    store.Load(ctx, kv, store.KeyScrambleLength, base.ScrambleLength),
		HideWhileTiming:   store.Load(ctx, kv, store.KeyHideWhileTiming, base.HideWhileTiming),
		ShowPreviousTimes: store.Load(ctx, kv, store.KeyShowPreviousTimes, base.ShowPreviousTimes),
	}
	if err := loaded.Validate(); err != nil {
		logging.Warn("ignoring stored settings", "err", err)
		return base
	}
	return loaded
}

// SolveFinished records a finished solve: a new scramble is drawn, the
// time is appended, stats are recomputed and the history is saved.
func (s *Session) SolveFinished(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	prevBest := s.summary.Best
	s.scramble = s.gen.Generate(s.settings.ScrambleLength)
	s.times = append(s.times, seconds)
	s.newBest = prevBest.OK && seconds < prevBest.Value
	s.summary = Summarize(s.times)
	store.Save(s.ctx, s.kv, store.KeyTimes, s.times)
}

// Clear removes every recorded solve.
func (s *Session) Clear() {
	s.times = []float64{}
	s.newBest = false
	s.summary = Summarize(s.times)
	store.Save(s.ctx, s.kv, store.KeyTimes, s.times)
}

// Times returns a copy of the history, oldest first.
func (s *Session) Times() []float64 {
	out := make([]float64, len(s.times))
	copy(out, s.times)
	return out
}

// Summary returns the stats snapshot for the current history.
func (s *Session) Summary() model.Summary {
	return s.summary
}

// Scramble returns the scramble for the next solve.
func (s *Session) Scramble() scramble.Scramble {
	return s.scramble
}

// NewBest reports whether the latest solve beat a previous best.
func (s *Session) NewBest() bool {
	return s.newBest
}

// Settings returns the current settings snapshot.
func (s *Session) Settings() model.Settings {
	return s.settings
}

// ApplySettings validates next, saves the keys that changed and returns
// the applied snapshot. A new scramble is drawn when its length changes.
func (s *Session) ApplySettings(next model.Settings) (model.Settings, error) {
	if err := next.Validate(); err != nil {
		return s.settings, fmt.Errorf("invalid settings: %w", err)
	}
	prev := s.settings
	s.settings = next
	if next.Theme != prev.Theme {
		store.Save(s.ctx, s.kv, store.KeyTheme, string(next.Theme))
	}
	if next.ScrambleLength != prev.ScrambleLength {
		s.scramble = s.gen.Generate(next.ScrambleLength)
		store.Save(s.ctx, s.kv, store.KeyScrambleLength, next.ScrambleLength)
	}
	if next.HideWhileTiming != prev.HideWhileTiming {
		store.Save(s.ctx, s.kv, store.KeyHideWhileTiming, next.HideWhileTiming)
	}
	if next.ShowPreviousTimes != prev.ShowPreviousTimes {
		store.Save(s.ctx, s.kv, store.KeyShowPreviousTimes, next.ShowPreviousTimes)
	}
	return next, nil
}

// Summarize derives the stats snapshot. Averages below their size stay
// unavailable; the most recent solves are used in chronological order.
func Summarize(times []float64) model.Summary {
	sum := model.Summary{Count: len(times)}
	if len(times) == 0 {
		sum.Last10 = []float64{}
		return sum
	}
	sum.Best = model.Some(must(stats.Best(times)))
	sum.Worst = model.Some(must(stats.Worst(times)))
	sum.Mean = model.Some(must(stats.Average(times)))
	if len(times) >= avg5Size {
		sum.Avg5 = model.Some(must(stats.Average(times[len(times)-avg5Size:])))
	}
	if len(times) >= avg12Size {
		sum.Avg12 = model.Some(must(stats.Average(times[len(times)-avg12Size:])))
	}
	start := len(times) - recentSize
	if start < 0 {
		start = 0
	}
	sum.Last10 = append([]float64(nil), times[start:]...)
	return sum
}

// must panics on an engine error: every call above is guarded by a length
// check, so an error is a bug rather than a runtime condition.
func must(v float64, err error) float64 {
	if err != nil {
		panic(err)
	}
	return v
}
