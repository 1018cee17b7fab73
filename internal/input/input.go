// Package input turns raw terminal input into press and release edges.
//
// Terminals report key presses but not key releases. Holding the space bar
// produces a stream of auto-repeat presses, so the hold detector treats the
// key as held while repeats keep arriving and synthesizes a release once
// they stop for longer than the release gap. Mouse buttons do report
// releases and map to edges directly.
package input

import (
	"fmt"
	"strings"
	"time"
)

// Edge is a change of the pressed signal.
type Edge int

const (
	None Edge = iota
	Pressed
	Released
)

func (e Edge) String() string {
	switch e {
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	default:
		return "none"
	}
}

// Mode selects how the space key maps to edges.
type Mode string

const (
	// ModeHold treats auto-repeat as a held key.
	ModeHold Mode = "hold"
	// ModeToggle alternates press and release on each key press.
	ModeToggle Mode = "toggle"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeHold:
		return ModeHold, nil
	case ModeToggle:
		return ModeToggle, nil
	default:
		return "", fmt.Errorf("unknown input mode %q (want hold or toggle)", s)
	}
}

// DefaultReleaseGap exceeds common keyboard auto-repeat delays.
const DefaultReleaseGap = 700 * time.Millisecond

// Key tracks the space key.
type Key struct {
	mode Mode
	gap  time.Duration

	held bool
	last time.Time
}

// NewKey returns a key tracker. A non-positive gap uses DefaultReleaseGap.
func NewKey(mode Mode, gap time.Duration) *Key {
	if gap <= 0 {
		gap = DefaultReleaseGap
	}
	if mode == "" {
		mode = ModeHold
	}
	return &Key{mode: mode, gap: gap}
}

// Mode returns the configured mode.
func (k *Key) Mode() Mode {
	return k.mode
}

// Held reports the current pressed value.
func (k *Key) Held() bool {
	return k.held
}

// LastDown returns the time of the most recent press or auto-repeat in hold
// mode. A synthesized release physically happened shortly after it.
func (k *Key) LastDown() time.Time {
	return k.last
}

// Down records a key press, including auto-repeats.
func (k *Key) Down(now time.Time) Edge {
	if k.mode == ModeToggle {
		k.held = !k.held
		if k.held {
			return Pressed
		}
		return Released
	}
	k.last = now
	if k.held {
		return None
	}
	k.held = true
	return Pressed
}

// Tick synthesizes a release in hold mode once repeats have stopped.
func (k *Key) Tick(now time.Time) Edge {
	if k.mode != ModeHold || !k.held {
		return None
	}
	if now.Sub(k.last) <= k.gap {
		return None
	}
	k.held = false
	return Released
}

// Reset forgets a held key and reports a release if it was held.
func (k *Key) Reset() Edge {
	if !k.held {
		return None
	}
	k.held = false
	return Released
}

// Pointer tracks a single active mouse button. Presses of other buttons
// while one is active are ignored.
type Pointer struct {
	active int
	down   bool
}

// Held reports whether a button is down.
func (p *Pointer) Held() bool {
	return p.down
}

// Down records a button press.
func (p *Pointer) Down(button int) Edge {
	if p.down {
		return None
	}
	p.down = true
	p.active = button
	return Pressed
}

// Up records a button release. Terminals that cannot tell which button
// was released report button 0, which releases the active one.
func (p *Pointer) Up(button int) Edge {
	if !p.down {
		return None
	}
	if button != 0 && button != p.active {
		return None
	}
	p.down = false
	return Released
}
