// Package resolve maps each commit to the project version its release-notes
// entry is filed under.
//
// Exactly one policy is active per run:
//   - snapshot: the manifest as it existed in the commit itself
//   - worktree: the manifest in the current working directory, read once
//
// Resolution never fails; anything that cannot be read or parsed yields
// Sentinel.
package resolve

import (
	"context"
	"fmt"

	"github.com/mdrelnotes/mdrelnotes/internal/git"
)

// Sentinel is the version reported when none can be resolved.
const Sentinel = "NA"

// Policy names accepted by New.
const (
	PolicySnapshot = "snapshot"
	PolicyWorktree = "worktree"
)

// Resolver returns the version for a commit, or Sentinel.
type Resolver interface {
	Resolve(ctx context.Context, commit git.Commit) string
}

// FileShower reads a file as it existed at a revision.
type FileShower interface {
	ShowFile(ctx context.Context, rev, path string) ([]byte, error)
}

// Logger receives resolver diagnostics.
type Logger interface {
	Warnf(format string, args ...any)
	Debugf(format string, args ...any)
}

// Options configures New.
type Options struct {
	// Policy is PolicySnapshot or PolicyWorktree.
	Policy string
	// Dir is the working directory searched by the worktree policy.
	Dir string
	// Manifest is the path read from each commit by the snapshot policy.
	Manifest string
	// Manifests are the worktree candidates, checked in order.
	Manifests []string
	// Logger may be nil.
	Logger Logger
}

// New builds the resolver for opts.Policy.
func New(opts Options, shower FileShower) (Resolver, error) {
	logger := opts.Logger
	if logger == nil {
		logger = nopLogger{}
	}

	switch opts.Policy {
	case PolicySnapshot:
		return NewSnapshot(shower, opts.Manifest, logger), nil
	case "", PolicyWorktree:
		return NewWorktree(opts.Dir, opts.Manifests, logger), nil
	default:
		return nil, fmt.Errorf("unknown version policy %q (valid: %s, %s)", opts.Policy, PolicyWorktree, PolicySnapshot)
	}
}

type nopLogger struct{}

func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Debugf(string, ...any) {}
