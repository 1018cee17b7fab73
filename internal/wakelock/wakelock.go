// Package wakelock keeps the display awake during a solve on a best-effort
// basis.
package wakelock

import (
	"errors"
	"os/exec"

	"github.com/verte-zerg/cubetimer/internal/logging"
)

// ErrUnavailable reports that the host cannot hold a wake lock.
var ErrUnavailable = errors.New("wake lock unavailable")

// Locker requests and releases a wake lock. Implementations never block
// the caller and swallow their own failures.
type Locker interface {
	Request()
	Release()
	// Visible reports a host visibility change. A lock revoked while the
	// view was hidden is requested again once it becomes visible.
	Visible(visible bool)
}

// Noop is a Locker that does nothing.
type Noop struct{}

func (Noop) Request()     {}
func (Noop) Release()     {}
func (Noop) Visible(bool) {}

// DefaultCommand inhibits idle on systemd hosts until the process is
// killed.
var DefaultCommand = []string{
	"systemd-inhibit", "--what=idle", "--who=cubetimer", "--why=solve in progress",
	"sleep", "infinity",
}

// Inhibitor holds the lock by running a helper process for its lifetime.
type Inhibitor struct {
	command []string
	start   func(name string, args ...string) (*exec.Cmd, error)

	proc   *exec.Cmd
	wanted bool
}

// NewInhibitor returns an Inhibitor running command, or DefaultCommand
// when command is empty.
func NewInhibitor(command []string) *Inhibitor {
	if len(command) == 0 {
		command = DefaultCommand
	}
	return &Inhibitor{command: command, start: startProcess}
}

func startProcess(name string, args ...string) (*exec.Cmd, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}
	cmd := exec.Command(path, args...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	// Reap the helper whenever it exits so it never lingers as a zombie.
	go func() { _ = cmd.Wait() }()
	return cmd, nil
}

// Request starts the helper process if it is not already running.
func (i *Inhibitor) Request() {
	i.wanted = true
	if i.proc != nil {
		return
	}
	proc, err := i.start(i.command[0], i.command[1:]...)
	if err != nil {
		logging.Debug("wake lock request failed", "err", err)
		return
	}
	i.proc = proc
	logging.Debug("wake lock acquired")
}

// Release stops the helper process.
func (i *Inhibitor) Release() {
	i.wanted = false
	i.drop()
}

// Visible drops the lock while hidden and re-requests it when visible
// again if a solve still wants it.
func (i *Inhibitor) Visible(visible bool) {
	if !visible {
		i.drop()
		return
	}
	if i.wanted && i.proc == nil {
		i.Request()
	}
}

// Held reports whether the helper process is running.
func (i *Inhibitor) Held() bool {
	return i.proc != nil
}

func (i *Inhibitor) drop() {
	if i.proc == nil {
		return
	}
	if i.proc.Process != nil {
		if err := i.proc.Process.Kill(); err != nil {
			logging.Debug("wake lock release failed", "err", err)
		}
	}
	i.proc = nil
}
