package changelog

import (
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// WarnFunc receives one message per entry dropped during grouping.
type WarnFunc func(format string, args ...any)

// GroupByVersion groups entries by their exact version string and returns
// the groups sorted by descending semver precedence.
//
// Entries whose version is not valid semver (including the "NA" sentinel)
// are dropped and reported through warn, once per entry. Versions that
// differ only in build metadata stay in separate groups and are ordered by
// version string so the output is deterministic.
func GroupByVersion(entries []Entry, warn WarnFunc) []Group {
	var groups []Group
	index := make(map[string]int)
	parsed := make(map[string]*semver.Version)

	for _, e := range entries {
		if i, ok := index[e.Version]; ok {
			groups[i].Entries = append(groups[i].Entries, e)
			continue
		}

		v, err := ParseVersion(e.Version)
		if err != nil {
			if warn != nil {
				warn("Invalid version %s for commit %s: %s", e.Version, e.ShortHash(), e.Summary)
			}
			continue
		}

		parsed[e.Version] = v
		index[e.Version] = len(groups)
		groups = append(groups, Group{Version: e.Version, Entries: []Entry{e}})
	}

	slices.SortStableFunc(groups, func(a, b Group) int {
		if c := CompareVersions(parsed[b.Version], parsed[a.Version]); c != 0 {
			return c
		}
		return strings.Compare(a.Version, b.Version)
	})

	return groups
}
