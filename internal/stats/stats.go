// Package stats contains statistics calculations and reporting.
package stats

import (
	"errors"
	"math"
	"strings"
)

const sparkChars = " .:-=+*#%@"

// ErrEmptyInput is returned when a statistic is requested over no values.
// Callers are expected to guard with length thresholds, so seeing it means
// a caller bug.
var ErrEmptyInput = errors.New("stats: empty input")

// Best returns the smallest time.
func Best(times []float64) (float64, error) {
	if len(times) == 0 {
		return 0, ErrEmptyInput
	}
	best := times[0]
	for _, v := range times[1:] {
		if v < best {
			best = v
		}
	}
	return best, nil
}

// Worst returns the largest time.
func Worst(times []float64) (float64, error) {
	if len(times) == 0 {
		return 0, ErrEmptyInput
	}
	worst := times[0]
	for _, v := range times[1:] {
		if v > worst {
			worst = v
		}
	}
	return worst, nil
}

// Average returns the arithmetic mean.
func Average(times []float64) (float64, error) {
	if len(times) == 0 {
		return 0, ErrEmptyInput
	}
	var sum float64
	for _, v := range times {
		sum += v
	}
	return sum / float64(len(times)), nil
}

// Rolling returns, for each index i >= window-1, the mean of the window
// ending at i. Earlier positions are NaN since the average is unavailable.
func Rolling(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 0 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(window)
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
