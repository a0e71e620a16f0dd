package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// palette decorates each part of a rendered error.
type palette struct {
	label    func(a ...interface{}) string
	category func(a ...interface{}) string
	message  func(a ...interface{}) string
	usage    func(a ...interface{}) string
	fix      func(a ...interface{}) string
	bullet   func(a ...interface{}) string
}

// colored is used for terminal output. fatih/color turns itself off when
// the stream is not a TTY or NO_COLOR is set.
var colored = palette{
	label:    color.New(color.FgRed, color.Bold).SprintFunc(),
	category: color.New(color.FgYellow).SprintFunc(),
	message:  color.New(color.FgRed).SprintFunc(),
	usage:    color.New(color.FgCyan).SprintFunc(),
	fix:      color.New(color.FgGreen, color.Bold).SprintFunc(),
	bullet:   color.New(color.FgGreen).SprintFunc(),
}

var plain = palette{
	label:    fmt.Sprint,
	category: fmt.Sprint,
	message:  fmt.Sprint,
	usage:    fmt.Sprint,
	fix:      fmt.Sprint,
	bullet:   fmt.Sprint,
}

// render lays out the error as
//
//	Error [<category>]: <message>
//
//	Usage: <usage>
//
//	To fix this:
//	  • <step>
func (e *CLIError) render(p palette) string {
	if e == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]: %s\n", p.label("Error"), p.category(e.Category.String()), p.message(e.Message))

	if e.Usage != "" {
		fmt.Fprintf(&sb, "\n%s\n", p.usage("Usage: "+e.Usage))
	}

	if len(e.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.fix("To fix this:"))
		for _, step := range e.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.bullet("•"), step)
		}
	}

	return sb.String()
}

// FprintAny prints err to w. A CLIError anywhere in the chain gets the
// structured layout; anything else is shown as a runtime error.
func FprintAny(w io.Writer, err error) {
	if err == nil {
		return
	}
	cliErr := AsCLIError(err)
	if cliErr == nil {
		cliErr = &CLIError{Category: Runtime, Message: err.Error(), Cause: err}
	}
	fmt.Fprint(w, cliErr.render(colored))
}
