package tui

import "github.com/ensigniasec/countdown/internal/countdown"

// Message types for Bubble Tea update loop.

// tickMsg fires once per second while a session runs. Token ties the tick to
// the stretch of Running that scheduled it.
type tickMsg struct{ Token countdown.Token }

// bellMsg is returned after the expiry bell has been written.
type bellMsg struct{}
