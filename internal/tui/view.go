package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ensigniasec/countdown/internal/countdown"
)

func (m Model) View() string {
	if m.quitting {
		return "Bye.\n"
	}

	snap := m.coord.Snapshot()

	var b strings.Builder
	b.WriteString(m.styles.title.Render("Timer"))
	b.WriteString("\n\n")
	if snap.Active {
		b.WriteString(m.renderCountdown(snap))
	} else {
		b.WriteString(m.renderSelector(snap))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	body := b.String()
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body + "\n"
}

func (m Model) renderSelector(snap countdown.Snapshot) string {
	minStyle, secStyle := m.styles.cell, m.styles.cell
	if m.focus == countdown.FieldMinutes {
		minStyle = m.styles.focused
	} else {
		secStyle = m.styles.focused
	}

	column := func(label string, value int, style lipgloss.Style) string {
		return lipgloss.JoinVertical(lipgloss.Center,
			m.styles.label.Render(label),
			style.Render(fmt.Sprintf("%d", value)),
		)
	}
	picker := lipgloss.JoinHorizontal(lipgloss.Bottom,
		column("Minutes", snap.Selection.Minutes, minStyle),
		lipgloss.NewStyle().Padding(0, 1, 1, 1).Render(":"),
		column("Seconds", snap.Selection.Seconds, secStyle),
	)

	start := m.styles.disabled.Render("Start Timer")
	if snap.CanStart {
		start = m.styles.enabled.Render("Start Timer")
	}

	parts := []string{picker, "", start}
	if notice := renderNotice(snap.LastOutcome); notice != "" {
		parts = append(parts, "", m.styles.notice.Render(notice))
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (m Model) renderCountdown(snap countdown.Snapshot) string {
	label := "Pause"
	if snap.Phase == countdown.Paused {
		label = "Play"
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.reset.Render("Reset"),
		"   ",
		m.styles.toggle.Render(label),
	)
	return lipgloss.JoinVertical(lipgloss.Center,
		m.styles.clock.Render(snap.Clock),
		m.progress.ViewAs(snap.Percent/100),
		"",
		buttons,
	)
}

// renderNotice describes how the previous session ended, if it expired.
func renderNotice(o *countdown.Outcome) string {
	if o == nil || o.Reason != countdown.ReasonExpired {
		return ""
	}
	return fmt.Sprintf("⏰ Time's up! (%s)", o.Duration)
}
