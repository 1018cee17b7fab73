package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/cubetimer/internal/model"
)

type settingsField int

const (
	fieldLength settingsField = iota
	fieldHide
	fieldShowPrevious
	fieldTheme
	fieldCount
)

type formResult int

const (
	formPending formResult = iota
	formSave
	formCancel
)

// settingsForm edits a copy of the settings; nothing is applied until the
// form is saved.
type settingsForm struct {
	values model.Settings
	length textinput.Model
	focus  settingsField
	err    string
}

func newSettingsForm(current model.Settings) *settingsForm {
	in := textinput.New()
	in.CharLimit = 2
	in.Width = 4
	in.Prompt = ""
	in.SetValue(strconv.Itoa(current.ScrambleLength))
	in.Focus()
	return &settingsForm{values: current, length: in}
}

func (f *settingsForm) update(msg tea.KeyMsg) (formResult, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return formCancel, nil
	case "enter":
		if _, err := f.result(); err != nil {
			f.err = err.Error()
			return formPending, nil
		}
		return formSave, nil
	case "tab", "down":
		f.move(1)
		return formPending, nil
	case "shift+tab", "up":
		f.move(-1)
		return formPending, nil
	}
	if f.focus == fieldLength {
		var cmd tea.Cmd
		f.length, cmd = f.length.Update(msg)
		f.err = ""
		return formPending, cmd
	}
	switch msg.String() {
	case " ", "left", "right", "h", "l":
		f.toggle()
	}
	return formPending, nil
}

func (f *settingsForm) move(delta int) {
	f.focus = settingsField((int(f.focus) + delta + int(fieldCount)) % int(fieldCount))
	if f.focus == fieldLength {
		f.length.Focus()
	} else {
		f.length.Blur()
	}
}

func (f *settingsForm) toggle() {
	switch f.focus {
	case fieldHide:
		f.values.HideWhileTiming = !f.values.HideWhileTiming
	case fieldShowPrevious:
		f.values.ShowPreviousTimes = !f.values.ShowPreviousTimes
	case fieldTheme:
		f.values.Theme = f.values.Theme.Next()
	}
}

// result returns the edited settings, validated.
func (f *settingsForm) result() (model.Settings, error) {
	out := f.values
	n, err := strconv.Atoi(strings.TrimSpace(f.length.Value()))
	if err != nil {
		return out, fmt.Errorf("scramble length must be a number")
	}
	out.ScrambleLength = n
	if err := out.Validate(); err != nil {
		return out, err
	}
	return out, nil
}

func (f *settingsForm) view(st styles) string {
	rows := []struct {
		field settingsField
		label string
		value string
	}{
		{fieldLength, "Scramble length", f.length.View()},
		{fieldHide, "Hide time while timing", onOff(f.values.HideWhileTiming)},
		{fieldShowPrevious, "Show previous times", onOff(f.values.ShowPreviousTimes)},
		{fieldTheme, "Theme", string(f.values.Theme)},
	}
	var b strings.Builder
	b.WriteString(st.banner.Render("Settings"))
	b.WriteString("\n\n")
	for _, row := range rows {
		label := st.label.Render(fmt.Sprintf("  %-24s", row.label))
		if row.field == f.focus {
			label = st.focused.Render(fmt.Sprintf("> %-24s", row.label))
		}
		b.WriteString(label)
		b.WriteString(row.value)
		b.WriteByte('\n')
	}
	if f.err != "" {
		b.WriteByte('\n')
		b.WriteString(st.errText.Render(f.err))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(st.footer.Render("tab move · space toggle · enter save · esc cancel"))
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
