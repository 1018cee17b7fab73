package session

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/cubetimer/internal/model"
	"github.com/verte-zerg/cubetimer/internal/scramble"
	"github.com/verte-zerg/cubetimer/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "cubetimer.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func newSession(t *testing.T, st *store.Store) *Session {
	t.Helper()
	gen := scramble.NewWithSource(rand.NewSource(3))
	return New(context.Background(), st, gen, model.DefaultSettings())
}

func TestSummarizeScenario(t *testing.T) {
	sum := Summarize([]float64{12.34, 10.01, 15.00, 9.87, 11.20})
	assert.Equal(t, 5, sum.Count)
	assert.Equal(t, model.Some(9.87), sum.Best)
	require.True(t, sum.Avg5.OK)
	assert.InDelta(t, 11.684, sum.Avg5.Value, 1e-9)
	assert.False(t, sum.Avg12.OK)
	assert.Equal(t, []float64{12.34, 10.01, 15.00, 9.87, 11.20}, sum.Last10)
}

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize(nil)
	assert.Equal(t, 0, sum.Count)
	assert.False(t, sum.Best.OK)
	assert.False(t, sum.Worst.OK)
	assert.False(t, sum.Mean.OK)
	assert.False(t, sum.Avg5.OK)
	assert.False(t, sum.Avg12.OK)
	assert.Empty(t, sum.Last10)
}

func TestSummarizeUsesMostRecentInChronologicalOrder(t *testing.T) {
	times := make([]float64, 0, 14)
	for i := 1; i <= 14; i++ {
		times = append(times, float64(i))
	}
	sum := Summarize(times)
	// Last five are 10..14, not the five smallest values.
	assert.InDelta(t, 12.0, sum.Avg5.Value, 1e-9)
	// Last twelve are 3..14.
	assert.InDelta(t, 8.5, sum.Avg12.Value, 1e-9)
	assert.Equal(t, []float64{5, 6, 7, 8, 9, 10, 11, 12, 13, 14}, sum.Last10)
}

func TestAveragesUnavailableBelowThreshold(t *testing.T) {
	var times []float64
	for i := 0; i < 13; i++ {
		sum := Summarize(times)
		assert.Equal(t, len(times) >= 5, sum.Avg5.OK, "len %d", len(times))
		assert.Equal(t, len(times) >= 12, sum.Avg12.OK, "len %d", len(times))
		times = append(times, 10+float64(i))
	}
}

func TestSolveFinishedAppendsAndPersists(t *testing.T) {
	st := openStore(t)
	s := newSession(t, st)
	first := s.Scramble().String()
	assert.Len(t, s.Scramble(), model.DefaultScrambleLength)

	s.SolveFinished(8.42)
	assert.Equal(t, []float64{8.42}, s.Times())
	assert.Equal(t, model.Some(8.42), s.Summary().Best)
	assert.NotEqual(t, first, s.Scramble().String())
	assert.False(t, s.NewBest())

	s.SolveFinished(7.5)
	assert.True(t, s.NewBest())
	s.SolveFinished(9)
	assert.False(t, s.NewBest())

	stored := store.Load(context.Background(), st, store.KeyTimes, []float64(nil))
	assert.Equal(t, []float64{8.42, 7.5, 9}, stored)

	reopened := newSession(t, st)
	assert.Equal(t, []float64{8.42, 7.5, 9}, reopened.Times())
	assert.Equal(t, model.Some(7.5), reopened.Summary().Best)
}

func TestClearPersistsEmptyHistory(t *testing.T) {
	st := openStore(t)
	s := newSession(t, st)
	s.SolveFinished(10)
	s.SolveFinished(11)
	s.Clear()
	assert.Empty(t, s.Times())
	assert.Equal(t, 0, s.Summary().Count)

	stored := store.Load(context.Background(), st, store.KeyTimes, []float64{-1})
	assert.Equal(t, []float64{}, stored)
}

func TestTimesReturnsCopy(t *testing.T) {
	s := newSession(t, openStore(t))
	s.SolveFinished(10)
	times := s.Times()
	times[0] = 99
	assert.Equal(t, []float64{10}, s.Times())
}

func TestApplySettings(t *testing.T) {
	st := openStore(t)
	s := newSession(t, st)
	next := s.Settings()
	next.ScrambleLength = 25
	next.HideWhileTiming = true
	next.Theme = model.ThemeDark

	applied, err := s.ApplySettings(next)
	require.NoError(t, err)
	assert.Equal(t, next, applied)
	assert.Len(t, s.Scramble(), 25)

	loaded := LoadSettings(context.Background(), st, model.DefaultSettings())
	assert.Equal(t, next, loaded)
}

func TestApplySettingsRejectsInvalid(t *testing.T) {
	s := newSession(t, openStore(t))
	before := s.Settings()
	bad := before
	bad.ScrambleLength = 0
	applied, err := s.ApplySettings(bad)
	assert.Error(t, err)
	assert.Equal(t, before, applied)
	assert.Equal(t, before, s.Settings())
}

func TestLoadSettingsFallsBackOnInvalidStoredValues(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	store.Save(ctx, st, store.KeyScrambleLength, -4)
	base := model.DefaultSettings()
	assert.Equal(t, base, LoadSettings(ctx, st, base))
}

func TestNewDropsNegativeStoredTimes(t *testing.T) {
	st := openStore(t)
	store.Save(context.Background(), st, store.KeyTimes, []float64{3, -1, 4})
	s := newSession(t, st)
	assert.Equal(t, []float64{3, 4}, s.Times())
}
