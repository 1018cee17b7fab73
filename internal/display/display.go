// Package display formats timer values for presentation.
package display

import (
	"fmt"
	"math"
	"strings"

	"github.com/verte-zerg/cubetimer/internal/model"
)

// Placeholder is shown instead of a time that should not be displayed.
const Placeholder = "---------"

// Unavailable is shown for a statistic that cannot be computed yet.
const Unavailable = "-"

// Stopwatch renders the main timer readout. Nothing is shown while idle at
// zero, or while timing when hideWhileTiming is set.
func Stopwatch(seconds float64, hideWhileTiming bool, state model.TimerState) string {
	if state == model.Waiting && seconds == 0 {
		return Placeholder
	}
	if hideWhileTiming && state == model.Timing {
		return Placeholder
	}
	return Time(seconds)
}

// Time renders seconds as mm:ss.fff.
func Time(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	ms := int64(math.Round(seconds * 1000))
	minutes := ms / 60000
	rest := ms % 60000
	return fmt.Sprintf("%02d:%02d.%03d", minutes, rest/1000, rest%1000)
}

// Metric renders an optional statistic, using Unavailable when missing.
func Metric(m model.Metric) string {
	if !m.OK {
		return Unavailable
	}
	return Time(m.Value)
}

// FixedLen right-pads s with spaces to n runes.
func FixedLen(s string, n int) string {
	pad := n - len([]rune(s))
	if pad <= 0 {
		return s
	}
	return s + strings.Repeat(" ", pad)
}
