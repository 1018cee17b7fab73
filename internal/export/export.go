// Package export writes the solve history in interchange formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/cubetimer/internal/display"
	"github.com/verte-zerg/cubetimer/internal/session"
	"github.com/verte-zerg/cubetimer/internal/stats"
)

// Format is an output format name.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	CSV  Format = "csv"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case JSON, YAML, CSV:
		return f, nil
	case "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want json, yaml or csv)", s)
	}
}

// Solve is one exported solve. Averages are nil until enough solves exist.
type Solve struct {
	Index   int      `json:"index" yaml:"index"`
	Seconds float64  `json:"seconds" yaml:"seconds"`
	Time    string   `json:"time" yaml:"time"`
	Ao5     *float64 `json:"ao5,omitempty" yaml:"ao5,omitempty"`
	Ao12    *float64 `json:"ao12,omitempty" yaml:"ao12,omitempty"`
}

// Summary mirrors the session stats snapshot with plain optional values.
type Summary struct {
	Count int      `json:"count" yaml:"count"`
	Best  *float64 `json:"best,omitempty" yaml:"best,omitempty"`
	Worst *float64 `json:"worst,omitempty" yaml:"worst,omitempty"`
	Mean  *float64 `json:"mean,omitempty" yaml:"mean,omitempty"`
	Ao5   *float64 `json:"ao5,omitempty" yaml:"ao5,omitempty"`
	Ao12  *float64 `json:"ao12,omitempty" yaml:"ao12,omitempty"`
}

// Document is the JSON and YAML payload.
type Document struct {
	Summary Summary `json:"summary" yaml:"summary"`
	Solves  []Solve `json:"solves" yaml:"solves"`
}

// Build assembles the export document for times, oldest first.
func Build(times []float64) Document {
	ao5 := stats.Rolling(times, 5)
	ao12 := stats.Rolling(times, 12)
	solves := make([]Solve, 0, len(times))
	for i, t := range times {
		solves = append(solves, Solve{
			Index:   i + 1,
			Seconds: t,
			Time:    display.Time(t),
			Ao5:     optional(ao5[i]),
			Ao12:    optional(ao12[i]),
		})
	}
	sum := session.Summarize(times)
	return Document{
		Summary: Summary{
			Count: sum.Count,
			Best:  metric(sum.Best.Value, sum.Best.OK),
			Worst: metric(sum.Worst.Value, sum.Worst.OK),
			Mean:  metric(sum.Mean.Value, sum.Mean.OK),
			Ao5:   metric(sum.Avg5.Value, sum.Avg5.OK),
			Ao12:  metric(sum.Avg12.Value, sum.Avg12.OK),
		},
		Solves: solves,
	}
}

func optional(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func metric(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}

// Write encodes times to w in the given format.
func Write(w io.Writer, format Format, times []float64) error {
	doc := Build(times)
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return nil
	case CSV:
		return writeCSV(w, doc.Solves)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

func writeCSV(w io.Writer, solves []Solve) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"index", "seconds", "time", "ao5", "ao12"}); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	for _, s := range solves {
		row := []string{
			strconv.Itoa(s.Index),
			formatSeconds(&s.Seconds),
			s.Time,
			formatSeconds(s.Ao5),
			formatSeconds(s.Ao12),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func formatSeconds(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 3, 64)
}
