package changelog

import (
	"fmt"
	"io"
	"strings"
)

// RenderMarkdown writes one "## Version <v>" section per group, in the
// order given. Sections are separated by a blank line and the document has
// no trailing newline. No groups renders nothing.
//
// The function is idempotent - given the same input, it produces identical output.
func RenderMarkdown(groups []Group, w io.Writer) error {
	for i, g := range groups {
		if i > 0 {
			if _, err := io.WriteString(w, "\n\n"); err != nil {
				return err
			}
		}
		if err := renderGroup(g, w); err != nil {
			return fmt.Errorf("rendering version %s: %w", g.Version, err)
		}
	}
	return nil
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(groups []Group) string {
	var b strings.Builder
	// strings.Builder never fails to write
	_ = RenderMarkdown(groups, &b)
	return b.String()
}

// renderGroup writes the section heading followed by one line per entry.
func renderGroup(g Group, w io.Writer) error {
	if _, err := io.WriteString(w, "## Version "+g.Version); err != nil {
		return err
	}

	for _, e := range g.Entries {
		if _, err := io.WriteString(w, "\n"+FormatEntry(e)); err != nil {
			return err
		}
	}

	return nil
}

// FormatEntry returns the list item for e, e.g. "- Fix login [ABC-1, ABC-2]".
func FormatEntry(e Entry) string {
	line := "- " + e.Summary
	if len(e.Tickets) > 0 {
		line += " [" + strings.Join(e.Tickets, ", ") + "]"
	}
	return line
}
