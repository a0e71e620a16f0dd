package changelog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// warnRecorder collects warnings emitted during grouping.
type warnRecorder struct {
	messages []string
}

func (w *warnRecorder) warn(format string, args ...any) {
	w.messages = append(w.messages, fmt.Sprintf(format, args...))
}

func versions(groups []Group) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Version
	}
	return out
}

func TestGroupByVersion(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		entries      []Entry
		wantVersions []string
		wantCount    int
		wantWarnings int
	}{
		"no entries": {
			entries:      nil,
			wantVersions: []string{},
		},
		"single version keeps log order": {
			entries: []Entry{
				{Hash: "h1", Summary: "Fix bug", Version: "2.0.0"},
				{Hash: "h2", Summary: "Add feature", Version: "2.0.0"},
			},
			wantVersions: []string{"2.0.0"},
			wantCount:    2,
		},
		"numeric not lexical ordering": {
			entries: []Entry{
				{Hash: "h1", Summary: "old", Version: "1.2.0"},
				{Hash: "h2", Summary: "new", Version: "1.10.0"},
			},
			wantVersions: []string{"1.10.0", "1.2.0"},
			wantCount:    2,
		},
		"prerelease below release": {
			entries: []Entry{
				{Hash: "h1", Summary: "a", Version: "3.0.0-rc.1"},
				{Hash: "h2", Summary: "b", Version: "3.0.0"},
				{Hash: "h3", Summary: "c", Version: "2.9.9"},
			},
			wantVersions: []string{"3.0.0", "3.0.0-rc.1", "2.9.9"},
			wantCount:    3,
		},
		"build metadata keeps distinct keys": {
			entries: []Entry{
				{Hash: "h1", Summary: "a", Version: "1.0.0+b2"},
				{Hash: "h2", Summary: "b", Version: "1.0.0"},
				{Hash: "h3", Summary: "c", Version: "1.0.0+b1"},
			},
			wantVersions: []string{"1.0.0", "1.0.0+b1", "1.0.0+b2"},
			wantCount:    3,
		},
		"invalid and sentinel dropped": {
			entries: []Entry{
				{Hash: "h1", Summary: "kept", Version: "1.0.0"},
				{Hash: "h2", Summary: "no manifest", Version: "NA"},
				{Hash: "h3", Summary: "bad", Version: "not-a-version"},
			},
			wantVersions: []string{"1.0.0"},
			wantCount:    1,
			wantWarnings: 2,
		},
		"all invalid": {
			entries: []Entry{
				{Hash: "h1", Summary: "a", Version: "NA"},
				{Hash: "h2", Summary: "b", Version: "NA"},
			},
			wantVersions: []string{},
			wantWarnings: 2,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			rec := &warnRecorder{}
			groups := GroupByVersion(tt.entries, rec.warn)

			assert.Equal(t, tt.wantVersions, versions(groups))
			assert.Equal(t, tt.wantCount, CountEntries(groups))
			assert.Len(t, rec.messages, tt.wantWarnings)
		})
	}
}

func TestGroupByVersion_InvalidWarnsOnce(t *testing.T) {
	t.Parallel()

	rec := &warnRecorder{}
	groups := GroupByVersion([]Entry{
		{Hash: "0123456789abcdef", Summary: "Bump deps", Version: "not-a-version"},
	}, rec.warn)

	assert.Empty(t, groups)
	require.Len(t, rec.messages, 1)
	assert.Contains(t, rec.messages[0], "not-a-version")
	assert.Contains(t, rec.messages[0], "01234567")
	assert.Contains(t, rec.messages[0], "Bump deps")
}

func TestGroupByVersion_NilWarn(t *testing.T) {
	t.Parallel()

	groups := GroupByVersion([]Entry{{Summary: "x", Version: "bad"}}, nil)
	assert.Empty(t, groups)
}

func TestGroupByVersion_Properties(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{Hash: "a", Summary: "1", Version: "0.9.0"},
		{Hash: "b", Summary: "2", Version: "1.10.0"},
		{Hash: "c", Summary: "3", Version: "NA"},
		{Hash: "d", Summary: "4", Version: "1.2.0"},
		{Hash: "e", Summary: "5", Version: "1.10.0"},
		{Hash: "f", Summary: "6", Version: "2.0.0-beta.1"},
		{Hash: "g", Summary: "7", Version: "1.2"},
		{Hash: "h", Summary: "8", Version: "0.9.0"},
	}

	groups := GroupByVersion(entries, nil)

	valid := 0
	for _, e := range entries {
		if _, err := ParseVersion(e.Version); err == nil {
			valid++
		}
	}
	assert.Equal(t, valid, CountEntries(groups))

	seen := make(map[string]bool)
	for i, g := range groups {
		assert.False(t, seen[g.Version], "duplicate group %s", g.Version)
		seen[g.Version] = true
		if i == 0 {
			continue
		}
		prev, err := ParseVersion(groups[i-1].Version)
		require.NoError(t, err)
		cur, err := ParseVersion(g.Version)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, CompareVersions(prev, cur), 0)
	}

	assert.Equal(t, []string{"2.0.0-beta.1", "1.10.0", "1.2.0", "0.9.0"}, versions(groups))
	assert.Equal(t, []string{"b", "e"}, []string{groups[1].Entries[0].Hash, groups[1].Entries[1].Hash})
}
