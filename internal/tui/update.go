package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ensigniasec/countdown/internal/countdown"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { // nolint:ireturn
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = x.Width, x.Height
		m.progress.Width = progressWidth(x.Width)
		m.help.Width = x.Width
		return m, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(x)
		m.keys.sync(m.coord.Active())
		return m, cmd

	case tickMsg:
		switch m.coord.Tick(x.Token) {
		case countdown.EventTicked:
			return m, tickCmd(x.Token)
		case countdown.EventExpired:
			m.keys.sync(false)
			return m, m.ringBell()
		default:
			// stale tick from before a pause or reset
			return m, nil
		}

	case bellMsg:
		return m, nil
	}

	return m, nil
}

func progressWidth(termWidth int) int {
	w := termWidth - progressMargin*2
	if w > progressMaxWidth {
		w = progressMaxWidth
	}
	if w < 1 {
		w = 1
	}
	return w
}
