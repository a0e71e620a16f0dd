// Package tickets finds issue-tracker identifiers such as ABC-123 in commit
// subjects and branch names.
package tickets

import "regexp"

// pattern matches one or more uppercase ASCII letters, a hyphen, then digits.
var pattern = regexp.MustCompile(`[A-Z]+-[0-9]+`)

// Extract returns the distinct ticket identifiers found in text, in the
// order they first appear. Returns nil when text holds no identifiers.
func Extract(text string) []string {
	if text == "" {
		return nil
	}
	return Merge(pattern.FindAllString(text, -1))
}

// Merge unions the given identifier lists, dropping duplicates while
// keeping first-seen order.
func Merge(lists ...[]string) []string {
	var merged []string
	seen := make(map[string]bool)

	for _, list := range lists {
		for _, id := range list {
			if seen[id] {
				continue
			}
			seen[id] = true
			merged = append(merged, id)
		}
	}

	return merged
}
