package store

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "cubetimer.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestLoadMissingKeyReturnsDefault(t *testing.T) {
	st := openTestStore(t)
	got := Load(context.Background(), st, KeyScrambleLength, 20)
	if got != 20 {
		t.Fatalf("expected default 20, got %d", got)
	}
}

func TestTimesRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	cases := [][]float64{
		{},
		{8.42},
		{12.34, 10.01, 15.00, 9.87, 11.20},
	}
	for _, times := range cases {
		Save(ctx, st, KeyTimes, times)
		got := Load(ctx, st, KeyTimes, []float64{-1})
		if len(got) != len(times) || got == nil {
			t.Fatalf("expected %v, got %v", times, got)
		}
		for i := range times {
			if got[i] != times[i] {
				t.Fatalf("expected %v, got %v", times, got)
			}
		}
	}
}

func TestLoadCorruptValueReturnsDefault(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if err := st.Put(ctx, KeyTimes, []byte("{not json")); err != nil {
		t.Fatalf("put: %v", err)
	}
	got := Load(ctx, st, KeyTimes, []float64{})
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty default, got %v", got)
	}

	if err := st.Put(ctx, KeyHideWhileTiming, []byte(`"yes"`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if Load(ctx, st, KeyHideWhileTiming, true) != true {
		t.Fatalf("expected default for mistyped value")
	}
}

func TestPutOverwrites(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	Save(ctx, st, KeyTheme, "dark")
	Save(ctx, st, KeyTheme, "light")
	Save(ctx, st, KeyScrambleLength, 25)

	if got := Load(ctx, st, KeyTheme, ""); got != "light" {
		t.Fatalf("expected overwritten value, got %q", got)
	}
	if got := Load(ctx, st, KeyScrambleLength, 0); got != 25 {
		t.Fatalf("expected untouched neighbour key, got %d", got)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cubetimer.db")
	ctx := context.Background()
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	Save(ctx, st, KeyTimes, []float64{1.5, 2.5})
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	st, err = Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer func() { _ = st.Close() }()
	got := Load(ctx, st, KeyTimes, []float64(nil))
	if len(got) != 2 || got[1] != 2.5 {
		t.Fatalf("unexpected times after reopen: %v", got)
	}
}

type failingKV struct{}

func (failingKV) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (failingKV) Put(context.Context, string, []byte) error { return errors.New("disk full") }

func TestWriteReportsFailure(t *testing.T) {
	err := Write(context.Background(), failingKV{}, KeyTimes, []float64{1})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected wrapped put error, got %v", err)
	}
	// Save swallows the same failure.
	Save(context.Background(), failingKV{}, KeyTimes, []float64{1})
}
