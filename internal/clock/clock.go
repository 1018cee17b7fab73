// Package clock provides the stopwatch that drives solve timing.
package clock

import "time"

// TimeSource supplies the current time. Readings from time.Now carry a
// monotonic component, so elapsed computations are immune to wall clock
// adjustments.
type TimeSource interface {
	Now() time.Time
}

// System reads the host clock.
type System struct{}

// Now implements TimeSource.
func (System) Now() time.Time { return time.Now() }

// Stopwatch produces elapsed-time samples while running. It has no timer of
// its own: the host calls Tick at its redraw cadence and every tick while
// running yields one sample.
type Stopwatch struct {
	src     TimeSource
	running bool
	origin  time.Time
	elapsed float64

	nextID      int
	subscribers []subscriber
}

type subscriber struct {
	id int
	fn func(float64)
}

// New returns a stopped stopwatch reading 0.
func New(src TimeSource) *Stopwatch {
	if src == nil {
		src = System{}
	}
	return &Stopwatch{src: src}
}

// Start zeroes the elapsed time and begins sampling. It is a no-op while
// already running.
func (s *Stopwatch) Start() {
	if s.running {
		return
	}
	s.origin = s.src.Now()
	s.running = true
	s.publish(0)
}

// Stop takes a final sample and halts sampling. The last sample stays
// readable through Elapsed.
func (s *Stopwatch) Stop() {
	if !s.running {
		return
	}
	s.sample()
	s.running = false
}

// Restart stops and starts the same stopwatch, zeroing it.
func (s *Stopwatch) Restart() {
	s.Stop()
	s.Start()
}

// RestartAt restarts the stopwatch as if it had been started at origin and
// publishes the time already elapsed since then. An origin in the future
// is treated as now.
func (s *Stopwatch) RestartAt(origin time.Time) {
	s.Stop()
	if now := s.src.Now(); origin.After(now) {
		origin = now
	}
	s.origin = origin
	s.running = true
	s.elapsed = 0
	s.sample()
}

// Tick samples the elapsed time if running.
func (s *Stopwatch) Tick() {
	if !s.running {
		return
	}
	s.sample()
}

// Elapsed returns the most recent sample in seconds, 0 if never started.
func (s *Stopwatch) Elapsed() float64 {
	return s.elapsed
}

// Running reports whether samples are being produced.
func (s *Stopwatch) Running() bool {
	return s.running
}

// Subscribe registers fn for every future sample. Samples emitted before
// subscribing are not replayed. The returned func removes the subscription.
func (s *Stopwatch) Subscribe(fn func(float64)) func() {
	id := s.nextID
	s.nextID++
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	return func() {
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (s *Stopwatch) sample() {
	elapsed := s.src.Now().Sub(s.origin).Seconds()
	// Never let a sample go backwards, even with a misbehaving source.
	if elapsed < s.elapsed {
		elapsed = s.elapsed
	}
	s.publish(elapsed)
}

func (s *Stopwatch) publish(elapsed float64) {
	s.elapsed = elapsed
	subs := s.subscribers
	for _, sub := range subs {
		sub.fn(elapsed)
	}
}
