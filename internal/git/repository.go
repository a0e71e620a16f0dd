// Package git provides the version-control queries behind release-note
// generation: listing the commits between two refs, showing a file as it
// existed at a commit, and naming the branch a commit belongs to.
//
// Two backends implement Repository. CLIRepository shells out to the git
// binary; GoGitRepository answers the same queries with the go-git library
// and needs no git installation.
package git

import (
	"context"
	"strings"
)

// Commit is a single non-merge commit as listed by the log.
type Commit struct {
	Hash    string
	Subject string
}

// ShortHash returns the first 8 characters of the hash.
func (c Commit) ShortHash() string {
	if len(c.Hash) > 8 {
		return c.Hash[:8]
	}
	return c.Hash
}

// Repository is the set of queries release-note generation needs.
type Repository interface {
	// Log returns the non-merge commits reachable from to but not from from,
	// in the order the traversal yields them (usually newest first).
	Log(ctx context.Context, from, to string) ([]Commit, error)
	// ShowFile returns the content of path as it existed at rev.
	ShowFile(ctx context.Context, rev, path string) ([]byte, error)
	// NameRev returns a human-readable ref name containing hash, or ""
	// when none exists.
	NameRev(ctx context.Context, hash string) (string, error)
}

// Backend names accepted by New.
const (
	BackendCLI   = "cli"
	BackendGoGit = "gogit"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// parseLogLine splits a "<hash> <subject>" line on its first space.
// Returns false for blank lines.
func parseLogLine(line string) (Commit, bool) {
	line = strings.TrimRight(line, "\r")
	if strings.TrimSpace(line) == "" {
		return Commit{}, false
	}

	hash, subject, _ := strings.Cut(line, " ")
	return Commit{Hash: hash, Subject: subject}, true
}

// parseLog parses the output of `git log --pretty=format:%H %s`.
func parseLog(output string) []Commit {
	var commits []Commit
	for _, line := range strings.Split(output, "\n") {
		if c, ok := parseLogLine(line); ok {
			commits = append(commits, c)
		}
	}
	return commits
}
