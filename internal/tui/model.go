// Package tui provides the Bubble Tea timer interface.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/cubetimer/internal/clock"
	"github.com/verte-zerg/cubetimer/internal/display"
	"github.com/verte-zerg/cubetimer/internal/input"
	"github.com/verte-zerg/cubetimer/internal/logging"
	"github.com/verte-zerg/cubetimer/internal/model"
	"github.com/verte-zerg/cubetimer/internal/session"
	"github.com/verte-zerg/cubetimer/internal/timer"
	"github.com/verte-zerg/cubetimer/internal/wakelock"
)

const frameInterval = 16 * time.Millisecond

type frameMsg time.Time

type dialog int

const (
	dialogNone dialog = iota
	dialogSettings
	dialogClear
)

// Options configures a Model.
type Options struct {
	Session        *session.Session
	Lock           wakelock.Locker
	InputMode      input.Mode
	ReleaseGap     time.Duration
	StageThreshold float64
	AltScreen      bool
	// TimeSource defaults to the system clock.
	TimeSource clock.TimeSource
}

// Model implements the Bubble Tea timer UI.
type Model struct {
	sess      *session.Session
	src       clock.TimeSource
	stopwatch *clock.Stopwatch
	machine   *timer.Machine
	lock      wakelock.Locker

	key     *input.Key
	pointer input.Pointer

	keys  keyMap
	help  help.Model
	style styles

	width     int
	height    int
	altScreen bool

	lastSolve float64
	newBest   bool

	dialog dialog
	form   *settingsForm
}

// NewModel constructs a timer TUI model.
func NewModel(opts Options) *Model {
	src := opts.TimeSource
	if src == nil {
		src = clock.System{}
	}
	lock := opts.Lock
	if lock == nil {
		lock = wakelock.Noop{}
	}
	threshold := opts.StageThreshold
	if threshold <= 0 {
		threshold = timer.DefaultStageThreshold
	}
	sw := clock.New(src)
	m := &Model{
		sess:      opts.Session,
		src:       src,
		stopwatch: sw,
		lock:      lock,
		key:       input.NewKey(opts.InputMode, opts.ReleaseGap),
		keys:      newKeyMap(),
		help:      help.New(),
		altScreen: opts.AltScreen,
	}
	m.machine = timer.New(sw, opts.Session, lock, timer.WithStageThreshold(threshold))
	m.machine.OnTransition(m.onTransition)
	m.style = newStyles(opts.Session.Settings().Theme)
	return m
}

// Close releases the wake lock and detaches the machine from its clock.
func (m *Model) Close() {
	m.machine.Close()
	m.lock.Release()
}

// State returns the timer state.
func (m *Model) State() model.TimerState {
	return m.machine.State()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.nextFrame()
}

func (m *Model) nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case frameMsg:
		m.frame()
		return m, m.nextFrame()
	case tea.FocusMsg:
		m.lock.Visible(true)
		return m, nil
	case tea.BlurMsg:
		// Focus loss hides key-up from us entirely.
		m.applyKey(m.key.Reset())
		m.lock.Visible(false)
		return m, nil
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) frame() {
	m.stopwatch.Tick()
	if m.key.Tick(m.src.Now()) == input.Released && !m.pointer.Held() {
		// Repeats stopped a gap ago; the key went up right after the last one.
		m.machine.ReleaseAt(m.key.LastDown())
	}
}

// applyKey forwards a key edge unless the pointer owns the pressed signal.
func (m *Model) applyKey(edge input.Edge) {
	if m.pointer.Held() {
		return
	}
	m.apply(edge)
}

// applyPointer forwards a pointer edge unless the key owns the pressed
// signal.
func (m *Model) applyPointer(edge input.Edge) {
	if m.key.Held() {
		return
	}
	m.apply(edge)
}

func (m *Model) apply(edge input.Edge) {
	switch edge {
	case input.Pressed:
		m.machine.SetPressed(true)
	case input.Released:
		m.machine.SetPressed(false)
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.dialog != dialogNone || tea.MouseEvent(msg).IsWheel() {
		return
	}
	switch msg.Action {
	case tea.MouseActionPress:
		m.applyPointer(m.pointer.Down(int(msg.Button)))
	case tea.MouseActionRelease:
		m.applyPointer(m.pointer.Up(int(msg.Button)))
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	switch m.dialog {
	case dialogSettings:
		return m.updateSettings(msg)
	case dialogClear:
		m.updateClear(msg)
		return m, nil
	}
	if key.Matches(msg, m.keys.Press) {
		m.applyKey(m.key.Down(m.src.Now()))
		return m, nil
	}
	if !m.idle() {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Settings):
		m.form = newSettingsForm(m.sess.Settings())
		m.dialog = dialogSettings
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Clear):
		if m.sess.Summary().Count > 0 {
			m.dialog = dialogClear
		}
	case key.Matches(msg, m.keys.Theme):
		next := m.sess.Settings()
		next.Theme = next.Theme.Next()
		m.applySettings(next)
	case key.Matches(msg, m.keys.Fullscreen):
		m.altScreen = !m.altScreen
		if m.altScreen {
			return m, tea.EnterAltScreen
		}
		return m, tea.ExitAltScreen
	}
	return m, nil
}

// idle reports whether shortcuts other than the press key are accepted.
func (m *Model) idle() bool {
	switch m.machine.State() {
	case model.Waiting, model.Timed:
		return !m.key.Held()
	default:
		return false
	}
}

func (m *Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result, cmd := m.form.update(msg)
	switch result {
	case formSave:
		next, err := m.form.result()
		if err == nil {
			m.applySettings(next)
		}
		m.closeDialog()
	case formCancel:
		m.closeDialog()
	}
	return m, cmd
}

func (m *Model) updateClear(msg tea.KeyMsg) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.sess.Clear()
		m.lastSolve = 0
		m.newBest = false
		logging.Info("cleared solve history")
		m.closeDialog()
	case "n", "N", "esc":
		m.closeDialog()
	}
}

func (m *Model) closeDialog() {
	m.dialog = dialogNone
	m.form = nil
}

func (m *Model) applySettings(next model.Settings) {
	applied, err := m.sess.ApplySettings(next)
	if err != nil {
		logging.Warn("settings rejected", "err", err)
		return
	}
	m.style = newStyles(applied.Theme)
}

func (m *Model) onTransition(from, to model.TimerState) {
	switch to {
	case model.Staging:
		m.newBest = false
	case model.Timed:
		m.lastSolve = m.stopwatch.Elapsed()
		m.newBest = m.sess.NewBest()
		if m.key.Mode() == input.ModeToggle {
			// The stopping press is the only edge toggle mode gets; let
			// go of it so the next press starts a new hold.
			m.applyKey(m.key.Reset())
		}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch m.dialog {
	case dialogSettings:
		body = m.style.modal.Render(m.form.view(m.style))
	case dialogClear:
		body = m.style.modal.Render(m.renderClear())
	default:
		body = m.renderTimer()
	}
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return body + "\n\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	bodyHeight := m.height - 1
	placed := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, body)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return placed + "\n" + footerLine
}

func (m *Model) renderTimer() string {
	settings := m.sess.Settings()
	state := m.machine.State()

	contentWidth := int(float64(m.width) * 0.70)
	lines := wrapTokens(m.sess.Scramble().Tokens(), contentWidth)
	scramble := m.style.scramble.Render(strings.Join(lines, "\n"))

	seconds := m.lastSolve
	if state == model.Timing {
		seconds = m.stopwatch.Elapsed()
	}
	readout := m.style.forState(state).Render(display.Stopwatch(seconds, settings.HideWhileTiming, state))

	blocks := []string{scramble, "", readout}
	if m.newBest && state != model.Timing {
		blocks = append(blocks, m.style.banner.Render("New best!"))
	}
	blocks = append(blocks, "", m.style.stats.Render(renderStats(m.sess.Summary())))
	if settings.ShowPreviousTimes {
		if recent := renderRecent(m.sess.Summary()); recent != "" {
			blocks = append(blocks, m.style.recent.Render(recent))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Center, blocks...)
}

func (m *Model) renderClear() string {
	n := m.sess.Summary().Count
	return fmt.Sprintf("Clear all %d recorded times?\n\n%s", n,
		m.style.footer.Render("y confirm · n/esc cancel"))
}

func (m *Model) renderFooter() string {
	return m.style.footer.Render(m.help.View(m.keys))
}

// renderStats formats the stats line under the readout. Metrics are padded
// to a full time so the centered line does not shift as averages appear.
func renderStats(sum model.Summary) string {
	metric := func(m model.Metric) string {
		return display.FixedLen(display.Metric(m), len(display.Placeholder))
	}
	segments := []string{
		fmt.Sprintf("Solves %d", sum.Count),
		"Best " + metric(sum.Best),
		"Ao5 " + metric(sum.Avg5),
		"Ao12 " + metric(sum.Avg12),
	}
	return strings.Join(segments, "  ")
}

// renderRecent lists the latest solves, newest first, noting older ones
// that do not fit.
func renderRecent(sum model.Summary) string {
	if len(sum.Last10) == 0 {
		return ""
	}
	parts := make([]string, 0, len(sum.Last10)+1)
	for i := len(sum.Last10) - 1; i >= 0; i-- {
		parts = append(parts, display.Time(sum.Last10[i]))
	}
	if more := sum.Count - len(sum.Last10); more > 0 {
		parts = append(parts, fmt.Sprintf("+%d more", more))
	}
	return strings.Join(parts, "  ")
}
