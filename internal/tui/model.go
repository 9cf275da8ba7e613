package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ensigniasec/countdown/internal/config"
	"github.com/ensigniasec/countdown/internal/countdown"
)

// Model is the root Bubble Tea model. The coordinator owns all timer state;
// the model only tracks presentation concerns around it.
type Model struct {
	coord *countdown.Coordinator

	// selector column with keyboard focus
	focus countdown.Field

	progress progress.Model
	help     help.Model
	keys     keyMap
	styles   styles

	bell    bool
	bellOut io.Writer

	width    int
	height   int
	quitting bool
}

type styles struct {
	title    lipgloss.Style
	cell     lipgloss.Style
	focused  lipgloss.Style
	label    lipgloss.Style
	clock    lipgloss.Style
	enabled  lipgloss.Style
	disabled lipgloss.Style
	reset    lipgloss.Style
	toggle   lipgloss.Style
	notice   lipgloss.Style
}

func newStyles(ui config.UI) styles {
	tint := lipgloss.Color(ui.TintColor)
	button := lipgloss.NewStyle().Bold(true).Padding(0, 2).Foreground(lipgloss.Color("#FFFFFF"))
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		cell:     lipgloss.NewStyle().Width(pickerCellWidth).Align(lipgloss.Center).Border(lipgloss.RoundedBorder()),
		focused:  lipgloss.NewStyle().Width(pickerCellWidth).Align(lipgloss.Center).Border(lipgloss.RoundedBorder()).BorderForeground(tint).Bold(true),
		label:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		clock:    lipgloss.NewStyle().Bold(true).Foreground(tint).Padding(1, 0),
		enabled:  button.Background(lipgloss.Color("#4CAF50")),
		disabled: button.Background(lipgloss.Color("#CCCCCC")),
		reset:    button.Background(lipgloss.Color("#F64740")),
		toggle:   button.Background(tint),
		notice:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	}
}

// NewModel constructs a Model around coord using the UI settings.
func NewModel(coord *countdown.Coordinator, ui config.UI, bellOut io.Writer) Model {
	p := progress.New(
		progress.WithSolidFill(ui.TintColor),
		progress.WithoutPercentage(),
		progress.WithWidth(progressDefaultWidth),
	)
	p.EmptyColor = ui.TrackColor

	keys := newKeyMap()
	keys.sync(coord.Active())

	return Model{
		coord:    coord,
		focus:    countdown.FieldMinutes,
		progress: p,
		help:     help.New(),
		keys:     keys,
		styles:   newStyles(ui),
		bell:     ui.Bell,
		bellOut:  bellOut,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if tok := m.coord.Token(); tok != countdown.NoToken {
		return tickCmd(tok)
	}
	return nil
}

// tickCmd schedules the next countdown tick for tok.
func tickCmd(tok countdown.Token) tea.Cmd {
	return tea.Tick(countdownTickInterval, func(time.Time) tea.Msg {
		return tickMsg{Token: tok}
	})
}

// ringBell writes the terminal bell when the countdown expires.
func (m Model) ringBell() tea.Cmd {
	if !m.bell || m.bellOut == nil {
		return nil
	}
	out := m.bellOut
	return func() tea.Msg {
		_, _ = io.WriteString(out, "\a")
		return bellMsg{}
	}
}
