// Package statsui provides the Bubble Tea history browser.
package statsui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/cubetimer/internal/display"
	"github.com/verte-zerg/cubetimer/internal/session"
	"github.com/verte-zerg/cubetimer/internal/stats"
)

const (
	tabOverview = iota
	tabHistory
)

const defaultTrendWindow = 5

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Config selects which solves are browsed.
type Config struct {
	// Last limits the view to the most recent solves; 0 shows all.
	Last int
	// Window is the moving average size of the trend line.
	Window int
}

// Model implements the Bubble Tea history browser.
type Model struct {
	all []float64
	cfg Config

	tabs      []string
	activeTab int
	overview  viewport.Model
	history   table.Model

	width  int
	height int

	filterMode  bool
	filterInput textinput.Model
	filterError string
}

// NewModel constructs a history browser over times, oldest first.
func NewModel(times []float64, cfg Config) *Model {
	if cfg.Window <= 0 {
		cfg.Window = defaultTrendWindow
	}
	if cfg.Last < 0 {
		cfg.Last = 0
	}
	m := &Model{
		all:      append([]float64(nil), times...),
		cfg:      cfg,
		tabs:     []string{"Overview", "History"},
		overview: viewport.New(0, 0),
		history:  buildHistoryTable(nil, 0, 1),
	}
	m.filterInput = textinput.New()
	m.filterInput.Prompt = "Last (0 = all): "
	m.filterInput.CharLimit = 6
	m.filterInput.Cursor.SetMode(cursor.CursorBlink)
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			m.cfg.Window = nextWindow(m.cfg.Window)
			m.refresh()
			return m, nil
		case "-":
			m.cfg.Window = prevWindow(m.cfg.Window)
			m.refresh()
			return m, nil
		case "/":
			m.filterMode = true
			m.filterError = ""
			m.filterInput.SetValue(strconv.Itoa(m.cfg.Last))
			m.filterInput.CursorEnd()
			return m, m.filterInput.Focus()
		case "g", "home":
			if m.activeTab == tabHistory {
				m.history.GotoTop()
			} else {
				m.overview.GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabHistory {
				m.history.GotoBottom()
			} else {
				m.overview.GotoBottom()
			}
			return m, nil
		}
		var cmd tea.Cmd
		if m.activeTab == tabHistory {
			m.history, cmd = m.history.Update(msg)
		} else {
			m.overview, cmd = m.overview.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filterMode = false
		m.filterInput.Blur()
		return m, nil
	case "enter":
		n, err := strconv.Atoi(strings.TrimSpace(m.filterInput.Value()))
		if err != nil || n < 0 {
			m.filterError = "last must be a non-negative number"
			return m, nil
		}
		m.cfg.Last = n
		m.filterMode = false
		m.filterInput.Blur()
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.filterMode && m.filterError != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

// visible returns the selected solves and the index of the first one in
// the full history.
func (m *Model) visible() ([]float64, int) {
	if m.cfg.Last <= 0 || m.cfg.Last >= len(m.all) {
		return m.all, 0
	}
	start := len(m.all) - m.cfg.Last
	return m.all[start:], start
}

func (m *Model) refresh() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	_, bodyHeight, _ := m.layoutHeights()
	times, offset := m.visible()
	m.overview.Width = width
	m.overview.Height = bodyHeight
	m.overview.SetContent(renderOverview(times, m.cfg.Window, width))
	m.history = buildHistoryTable(historyRows(times, offset), width, bodyHeight)
	m.history.GotoBottom()
	if m.activeTab == tabHistory {
		m.history.Focus()
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	m.activeTab = (m.activeTab + delta + count) % count
	if m.activeTab == tabHistory {
		m.history.Focus()
	} else {
		m.history.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("Showing: last=%s  trend window=%d  solves=%d", last, m.cfg.Window, len(m.all))
	return m.renderTabs() + "\n" + headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderBody() string {
	if m.filterMode {
		return m.filterInput.View()
	}
	if m.activeTab == tabHistory {
		if len(m.all) == 0 {
			return "No solves recorded."
		}
		return tableMutedStyle.Render(m.history.View())
	}
	return m.overview.View()
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		help := headerStyle.Render("enter: apply  esc: cancel")
		if m.filterError != "" {
			return help + "\n" + errorStyle.Render(m.filterError)
		}
		return help
	}
	return headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Trend: -/=  Filter: /  Quit: q")
}

func renderOverview(times []float64, window, width int) string {
	if len(times) == 0 {
		return "No solves recorded."
	}
	sum := session.Summarize(times)
	cards := []string{
		metricCard("Solves", strconv.Itoa(sum.Count)),
		metricCard("Best", display.Metric(sum.Best)),
		metricCard("Worst", display.Metric(sum.Worst)),
		metricCard("Mean", display.Metric(sum.Mean)),
		metricCard("Ao5", display.Metric(sum.Avg5)),
		metricCard("Ao12", display.Metric(sum.Avg12)),
	}
	var summary string
	if width < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4], cards[5])
		summary = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}
	return summary + "\n\n" + renderTrend(times, window, width)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

// renderTrend draws the moving average of the most recent solves that fit
// in width.
func renderTrend(times []float64, window, width int) string {
	label := fmt.Sprintf("Trend (avg of %d): ", window)
	room := width - lipgloss.Width(label)
	if room < 1 {
		room = 1
	}
	smoothed := stats.MovingAverage(times, window)
	if len(smoothed) > room {
		smoothed = smoothed[len(smoothed)-room:]
	}
	return headerStyle.Render(label) + stats.Sparkline(smoothed)
}

func historyRows(times []float64, offset int) []table.Row {
	ao5 := stats.Rolling(times, 5)
	ao12 := stats.Rolling(times, 12)
	rows := make([]table.Row, 0, len(times))
	for i, t := range times {
		rows = append(rows, table.Row{
			strconv.Itoa(offset + i + 1),
			display.Time(t),
			rollingCell(ao5[i]),
			rollingCell(ao12[i]),
		})
	}
	return rows
}

func rollingCell(v float64) string {
	if math.IsNaN(v) {
		return display.Unavailable
	}
	return display.Time(v)
}

func buildHistoryTable(rows []table.Row, width, height int) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 6},
		{Title: "Time", Width: 10},
		{Title: "Ao5", Width: 10},
		{Title: "Ao12", Width: 10},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(historyTableStyles())
	return t
}

func historyTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func nextWindow(n int) int {
	if n < 5 {
		return 5
	}
	if n%5 == 0 {
		return n + 5
	}
	return ((n / 5) + 1) * 5
}

func prevWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
