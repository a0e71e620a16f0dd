package changelog

// Entry is a commit annotated with the version it belongs to and the
// ticket identifiers found for it.
type Entry struct {
	Hash    string
	Summary string
	// Version is the resolved project version. It may be invalid semver or
	// the "NA" sentinel, in which case the entry is dropped when grouping.
	Version string
	// Tickets has set semantics; order carries no meaning.
	Tickets []string
}

// ShortHash returns the first 8 characters of the commit hash.
func (e Entry) ShortHash() string {
	if len(e.Hash) > 8 {
		return e.Hash[:8]
	}
	return e.Hash
}

// Group holds the entries for one exact version string, in commit-log order.
type Group struct {
	Version string
	Entries []Entry
}

// CountEntries returns the total number of entries across groups.
func CountEntries(groups []Group) int {
	n := 0
	for _, g := range groups {
		n += len(g.Entries)
	}
	return n
}
