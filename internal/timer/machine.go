// Package timer implements the solve lifecycle state machine.
//
// The machine is driven by a single boolean pressed signal and by clock
// samples. Both arrive as events on one FIFO queue, so an action that makes
// the clock emit a sample (Start, Stop) never re-enters the transition
// function: the sample is handled after the current event completes.
package timer

import (
	"time"

	"github.com/verte-zerg/cubetimer/internal/logging"
	"github.com/verte-zerg/cubetimer/internal/model"
	"github.com/verte-zerg/cubetimer/internal/wakelock"
)

// DefaultStageThreshold is the minimum hold, in seconds, before a press
// arms the timer.
const DefaultStageThreshold = 0.5

// Clock is the stopwatch used by the machine.
type Clock interface {
	Start()
	Stop()
	Restart()
	RestartAt(origin time.Time)
	Elapsed() float64
	Subscribe(fn func(elapsed float64)) (unsubscribe func())
}

// Hooks receives finished solves. SolveFinished must regenerate the
// scramble, append the time and recompute stats.
type Hooks interface {
	SolveFinished(seconds float64)
}

// EventKind identifies a machine input.
type EventKind int

const (
	Press EventKind = iota
	Release
	Tick
)

func (k EventKind) String() string {
	switch k {
	case Press:
		return "press"
	case Release:
		return "release"
	case Tick:
		return "tick"
	default:
		return "unknown"
	}
}

// Event is one queued input. At optionally dates a Release that was
// detected late; timing then counts from At instead of from now.
type Event struct {
	Kind    EventKind
	Elapsed float64
	At      time.Time
}

// TransitionFunc observes state changes.
type TransitionFunc func(from, to model.TimerState)

// Option configures a Machine.
type Option func(*Machine)

// WithStageThreshold overrides the minimum hold before arming, in seconds.
func WithStageThreshold(seconds float64) Option {
	return func(m *Machine) {
		if seconds >= 0 {
			m.threshold = seconds
		}
	}
}

// Machine is the timing state machine. It is not safe for concurrent use:
// all events must come from the host's single update loop.
type Machine struct {
	clock     Clock
	hooks     Hooks
	lock      wakelock.Locker
	threshold float64

	state      model.TimerState
	pressed    bool
	releasedAt time.Time

	queue    []Event
	draining bool

	observers   []TransitionFunc
	unsubscribe func()
}

// New returns a machine in the Waiting state. A nil lock disables wake
// locking.
func New(clock Clock, hooks Hooks, lock wakelock.Locker, opts ...Option) *Machine {
	if lock == nil {
		lock = wakelock.Noop{}
	}
	m := &Machine{
		clock:     clock,
		hooks:     hooks,
		lock:      lock,
		threshold: DefaultStageThreshold,
		state:     model.Waiting,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.unsubscribe = clock.Subscribe(func(elapsed float64) {
		m.Dispatch(Event{Kind: Tick, Elapsed: elapsed})
	})
	return m
}

// Close detaches the machine from its clock.
func (m *Machine) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// State returns the current state.
func (m *Machine) State() model.TimerState {
	return m.state
}

// Pressed returns the last pressed value seen.
func (m *Machine) Pressed() bool {
	return m.pressed
}

// OnTransition registers fn to run after every state change.
func (m *Machine) OnTransition(fn TransitionFunc) {
	m.observers = append(m.observers, fn)
}

// SetPressed queues a press or release edge.
func (m *Machine) SetPressed(pressed bool) {
	if pressed {
		m.Dispatch(Event{Kind: Press})
		return
	}
	m.Dispatch(Event{Kind: Release})
}

// ReleaseAt queues a release that physically happened at at.
func (m *Machine) ReleaseAt(at time.Time) {
	m.Dispatch(Event{Kind: Release, At: at})
}

// Dispatch queues ev and drains the queue unless a drain is already in
// progress further up the call stack.
func (m *Machine) Dispatch(ev Event) {
	m.queue = append(m.queue, ev)
	if m.draining {
		return
	}
	m.draining = true
	defer func() { m.draining = false }()
	for len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		m.handle(next)
	}
}

func (m *Machine) handle(ev Event) {
	switch ev.Kind {
	case Press:
		if m.pressed {
			return
		}
		m.pressed = true
		m.evaluate()
	case Release:
		if !m.pressed {
			return
		}
		m.pressed = false
		m.releasedAt = ev.At
		m.evaluate()
	case Tick:
		// A hold that crosses the threshold arms without a new edge.
		if m.state == model.Staging || m.state == model.Staged {
			m.evaluate()
		}
	}
}

func (m *Machine) evaluate() {
	switch m.state {
	case model.Waiting:
		if m.pressed {
			m.clock.Start()
			m.transition(model.Staging)
		}
	case model.Staging:
		switch {
		case m.pressed && m.clock.Elapsed() >= m.threshold:
			m.transition(model.Staged)
		case !m.pressed:
			m.clock.Stop()
			m.transition(model.Waiting)
		}
	case model.Staged:
		if !m.pressed {
			m.lock.Request()
			if m.releasedAt.IsZero() {
				m.clock.Restart()
			} else {
				m.clock.RestartAt(m.releasedAt)
			}
			m.transition(model.Timing)
		}
	case model.Timing:
		if m.pressed {
			m.clock.Stop()
			elapsed := m.clock.Elapsed()
			m.hooks.SolveFinished(elapsed)
			m.lock.Release()
			m.transition(model.Timed)
		}
	case model.Timed:
		if !m.pressed {
			m.transition(model.Waiting)
		}
	}
}

func (m *Machine) transition(to model.TimerState) {
	from := m.state
	m.state = to
	logging.Debug("timer transition", "from", from, "to", to)
	for _, fn := range m.observers {
		fn(from, to)
	}
}
