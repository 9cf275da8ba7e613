package tui

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/countdown/internal/config"
	"github.com/ensigniasec/countdown/internal/countdown"
)

// Run starts the Bubble Tea TUI program with the selector preset to initial.
func Run(ctx context.Context, cfg config.Data, initial countdown.Duration) error {
	coord := countdown.NewCoordinator(initial)
	coord.OnReset(func(o countdown.Outcome) {
		logrus.WithFields(logrus.Fields{
			"session":   o.SessionID,
			"reason":    o.Reason.String(),
			"remaining": o.Remaining,
		}).Debug("session ended")
	})

	model := NewModel(coord, cfg.UI, os.Stdout)

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(model, opts...)

	// Silence external logs (WARN/ERRO) during TUI to avoid corrupting the view.
	prevOut := logrus.StandardLogger().Out
	logrus.SetOutput(io.Discard)
	defer logrus.SetOutput(prevOut)

	// Run TUI blocking in this goroutine.
	_, err := p.Run()
	// Quit already resets; this covers context cancellation and program errors.
	coord.Reset()
	return err
}
