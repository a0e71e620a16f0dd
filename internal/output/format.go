// Package output provides terminal output and diagnostic logging for the
// mdrelnotes CLI.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	warnLabel  = color.New(color.FgYellow, color.Bold).SprintFunc()
	debugLabel = color.New(color.Faint).SprintFunc()
)

// Logger writes diagnostics (never release notes) to a writer, usually stderr.
// A nil *Logger discards everything.
type Logger struct {
	out   io.Writer
	debug bool
}

// NewLogger returns a Logger writing to out. Debug lines are written only
// when debug is true. A nil out means os.Stderr.
func NewLogger(out io.Writer, debug bool) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return &Logger{out: out, debug: debug}
}

// Warnf prints a "Warning:" line.
func (l *Logger) Warnf(format string, args ...any) {
	if l == nil {
		return
	}
	fmt.Fprintf(l.out, "%s %s\n", warnLabel("Warning:"), strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

// Debugf prints a dimmed "[debug]" line when debug output is enabled.
func (l *Logger) Debugf(format string, args ...any) {
	if l == nil || !l.debug {
		return
	}
	fmt.Fprintf(l.out, "%s\n", debugLabel("[debug] "+strings.TrimRight(fmt.Sprintf(format, args...), "\n")))
}

// Infof prints an undecorated line.
func (l *Logger) Infof(format string, args ...any) {
	if l == nil {
		return
	}
	fmt.Fprintf(l.out, "%s\n", strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

// Header returns the informational line printed before the notes.
func Header(from, to string) string {
	return fmt.Sprintf("# Release notes for: %s <--> %s", from, to)
}

// WriteNotes writes the optional header line followed by the rendered
// Markdown and a final newline.
func WriteNotes(out io.Writer, header, markdown string) error {
	if header != "" {
		if _, err := fmt.Fprintln(out, header); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(out, markdown)
	return err
}
