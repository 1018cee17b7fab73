package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Press      key.Binding
	Settings   key.Binding
	Clear      key.Binding
	Theme      key.Binding
	Fullscreen key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Press:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "hold/stop")),
		Settings:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
		Clear:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear times")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Fullscreen: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fullscreen")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Press, k.Settings, k.Clear, k.Theme, k.Fullscreen, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
