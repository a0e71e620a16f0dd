// Package progress shows a spinner on stderr while slow git queries run.
// The spinner is only drawn on an interactive terminal so piped or
// redirected output stays clean.
package progress

import (
	"os"

	"golang.org/x/term"
)

// Character sets from briandowns/spinner.
const (
	brailleCharSet = 14 // ⠋ ⠙ ⠹ ⠸ ⠼ ⠴ ⠦ ⠧ ⠇ ⠏
	asciiCharSet   = 9  // | / - \
)

// TerminalCapabilities describes what the diagnostics stream can render.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsUnicode bool
}

// DetectTerminalCapabilities inspects f, usually os.Stderr.
// MDRELNOTES_ASCII=1 forces ASCII output on a terminal.
func DetectTerminalCapabilities(f *os.File) TerminalCapabilities {
	isTTY := f != nil && term.IsTerminal(int(f.Fd()))
	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsUnicode: isTTY && os.Getenv("MDRELNOTES_ASCII") != "1",
	}
}

// SpinnerCharSet picks the spinner animation for caps.
func SpinnerCharSet(caps TerminalCapabilities) int {
	if caps.SupportsUnicode {
		return brailleCharSet
	}
	return asciiCharSet
}
