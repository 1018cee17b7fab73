package display

import (
	"testing"

	"github.com/verte-zerg/cubetimer/internal/model"
)

func TestStopwatchPlaceholderWhenIdle(t *testing.T) {
	if got := Stopwatch(0, false, model.Waiting); got != Placeholder {
		t.Fatalf("expected placeholder, got %q", got)
	}
}

func TestStopwatchHiddenWhileTiming(t *testing.T) {
	if got := Stopwatch(3.2, true, model.Timing); got != Placeholder {
		t.Fatalf("expected placeholder while timing, got %q", got)
	}
	if got := Stopwatch(3.2, true, model.Timed); got != "00:03.200" {
		t.Fatalf("expected time once timed, got %q", got)
	}
}

func TestTimeFormat(t *testing.T) {
	cases := map[float64]string{
		0:       "00:00.000",
		8.42:    "00:08.420",
		59.9996: "01:00.000",
		61.5:    "01:01.500",
		754.321: "12:34.321",
	}
	for in, want := range cases {
		if got := Time(in); got != want {
			t.Fatalf("Time(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestMetric(t *testing.T) {
	if got := Metric(model.Metric{}); got != Unavailable {
		t.Fatalf("expected unavailable marker, got %q", got)
	}
	if got := Metric(model.Some(11.684)); got != "00:11.684" {
		t.Fatalf("unexpected metric: %q", got)
	}
}

func TestFixedLen(t *testing.T) {
	if got := FixedLen("7", 3); got != "7  " {
		t.Fatalf("unexpected padding: %q", got)
	}
	if got := FixedLen("1234", 2); got != "1234" {
		t.Fatalf("expected no truncation, got %q", got)
	}
}
