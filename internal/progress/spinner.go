package progress

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

const spinnerDelay = 100 * time.Millisecond

// Indicator marks the start and end of a slow step.
type Indicator interface {
	Start(message string)
	Stop()
}

// Spinner animates on stderr while a step runs. When the stream is not a
// terminal it does nothing.
type Spinner struct {
	caps    TerminalCapabilities
	charSet int
	out     io.Writer
	s       *spinner.Spinner
}

// NewSpinner returns a spinner for f. Pass enabled=false to force it off,
// e.g. with --debug where log lines would tear the animation.
func NewSpinner(f *os.File, enabled bool) *Spinner {
	caps := DetectTerminalCapabilities(f)
	if !enabled {
		caps.IsTTY = false
	}
	return &Spinner{caps: caps, charSet: SpinnerCharSet(caps), out: f}
}

// Active reports whether Start draws anything.
func (sp *Spinner) Active() bool {
	return sp != nil && sp.caps.IsTTY
}

// Start begins animating with message as the suffix.
func (sp *Spinner) Start(message string) {
	if !sp.Active() {
		return
	}
	if sp.s == nil {
		sp.s = spinner.New(spinner.CharSets[sp.charSet], spinnerDelay, spinner.WithWriter(sp.out))
	}
	sp.s.Suffix = " " + message
	sp.s.Start()
}

// Stop clears the spinner line.
func (sp *Spinner) Stop() {
	if !sp.Active() || sp.s == nil {
		return
	}
	sp.s.Stop()
}

// Nop is an Indicator that does nothing.
type Nop struct{}

func (Nop) Start(string) {}
func (Nop) Stop()        {}
