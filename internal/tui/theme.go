package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/cubetimer/internal/model"
)

type palette struct {
	text    lipgloss.Color
	muted   lipgloss.Color
	accent  lipgloss.Color
	staging lipgloss.Color
	staged  lipgloss.Color
	border  lipgloss.Color
}

var (
	darkPalette = palette{
		text:    lipgloss.Color("#F0F0F0"),
		muted:   lipgloss.Color("#8C8C8C"),
		accent:  lipgloss.Color("#C89A3A"),
		staging: lipgloss.Color("#FF4D4F"),
		staged:  lipgloss.Color("#52C41A"),
		border:  lipgloss.Color("#4A4A4A"),
	}
	lightPalette = palette{
		text:    lipgloss.Color("#1F1F1F"),
		muted:   lipgloss.Color("#6E6E6E"),
		accent:  lipgloss.Color("#A0701A"),
		staging: lipgloss.Color("#CF1322"),
		staged:  lipgloss.Color("#389E0D"),
		border:  lipgloss.Color("#BFBFBF"),
	}
)

type styles struct {
	scramble lipgloss.Style
	time     lipgloss.Style
	staging  lipgloss.Style
	staged   lipgloss.Style
	stats    lipgloss.Style
	recent   lipgloss.Style
	banner   lipgloss.Style
	footer   lipgloss.Style
	modal    lipgloss.Style
	label    lipgloss.Style
	focused  lipgloss.Style
	errText  lipgloss.Style
}

func paletteFor(theme model.Theme) palette {
	switch theme {
	case model.ThemeLight:
		return lightPalette
	case model.ThemeDark:
		return darkPalette
	default:
		if lipgloss.HasDarkBackground() {
			return darkPalette
		}
		return lightPalette
	}
}

func newStyles(theme model.Theme) styles {
	p := paletteFor(theme)
	return styles{
		scramble: lipgloss.NewStyle().Foreground(p.text),
		time:     lipgloss.NewStyle().Foreground(p.text).Bold(true),
		staging:  lipgloss.NewStyle().Foreground(p.staging).Bold(true),
		staged:   lipgloss.NewStyle().Foreground(p.staged).Bold(true),
		stats:    lipgloss.NewStyle().Foreground(p.muted),
		recent:   lipgloss.NewStyle().Foreground(p.muted),
		banner:   lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		footer:   lipgloss.NewStyle().Foreground(p.muted),
		modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(p.accent).
			Padding(1, 2),
		label:   lipgloss.NewStyle().Foreground(p.muted),
		focused: lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		errText: lipgloss.NewStyle().Foreground(p.staging),
	}
}

func (s styles) forState(state model.TimerState) lipgloss.Style {
	switch state {
	case model.Staging:
		return s.staging
	case model.Staged:
		return s.staged
	default:
		return s.time
	}
}
