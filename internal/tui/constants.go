package tui

import "time"

// Package-level constants to avoid magic numbers and improve readability.
const (
	countdownTickSeconds = 1

	// progress bar never grows wider than progressMaxWidth, even on wide terminals.
	progressMaxWidth     = 60
	progressDefaultWidth = 40
	progressMargin       = 4

	pickerCellWidth = 6

	countdownTickInterval = time.Duration(countdownTickSeconds) * time.Second
)
