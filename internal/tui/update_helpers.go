package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ensigniasec/countdown/internal/countdown"
)

// handleKey processes key bindings and returns updated model and command.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) { // nolint:ireturn
	switch {
	case key.Matches(msg, m.keys.Quit):
		// Tear down any session so no tick outlives the program.
		m.coord.Reset()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.coord.Active() {
		return m.handleCountdownKey(msg)
	}
	return m.handleSelectorKey(msg)
}

func (m Model) handleSelectorKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	sel := m.coord.Selector()
	switch {
	case key.Matches(msg, m.keys.Left):
		m.focus = countdown.FieldMinutes
	case key.Matches(msg, m.keys.Right):
		m.focus = countdown.FieldSeconds
	case key.Matches(msg, m.keys.Up):
		sel.Increment(m.focus)
	case key.Matches(msg, m.keys.Down):
		sel.Decrement(m.focus)
	case key.Matches(msg, m.keys.Start):
		// Start is inert at 00:00.
		if !m.coord.CanStart() {
			return m, nil
		}
		tok, err := m.coord.Start()
		if err != nil {
			return m, nil
		}
		return m, tickCmd(tok)
	}
	return m, nil
}

func (m Model) handleCountdownKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Pause):
		if tok, resumed := m.coord.TogglePause(); resumed {
			return m, tickCmd(tok)
		}
	case key.Matches(msg, m.keys.Reset):
		m.coord.Reset()
	}
	return m, nil
}
