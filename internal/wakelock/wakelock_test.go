package wakelock

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fakeInhibitor(fail bool) (*Inhibitor, *int) {
	starts := 0
	i := NewInhibitor([]string{"inhibit"})
	i.start = func(string, ...string) (*exec.Cmd, error) {
		if fail {
			return nil, ErrUnavailable
		}
		starts++
		return &exec.Cmd{}, nil
	}
	return i, &starts
}

func TestRequestRelease(t *testing.T) {
	i, starts := fakeInhibitor(false)
	i.Request()
	i.Request()
	assert.True(t, i.Held())
	assert.Equal(t, 1, *starts)
	i.Release()
	assert.False(t, i.Held())
}

func TestRequestFailureIsSilent(t *testing.T) {
	i, _ := fakeInhibitor(true)
	assert.NotPanics(t, func() {
		i.Request()
		i.Release()
	})
	assert.False(t, i.Held())
}

func TestVisibleReacquires(t *testing.T) {
	i, starts := fakeInhibitor(false)
	i.Request()
	i.Visible(false)
	assert.False(t, i.Held())
	i.Visible(true)
	assert.True(t, i.Held())
	assert.Equal(t, 2, *starts)
}

func TestVisibleWithoutLockDoesNothing(t *testing.T) {
	i, starts := fakeInhibitor(false)
	i.Visible(true)
	assert.False(t, i.Held())
	assert.Equal(t, 0, *starts)
}

func TestMissingBinaryIsUnavailable(t *testing.T) {
	_, err := startProcess("cubetimer-definitely-missing-binary")
	assert.True(t, errors.Is(err, ErrUnavailable))
}
