package resolve

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/mdrelnotes/mdrelnotes/internal/git"
	"github.com/mdrelnotes/mdrelnotes/internal/manifest"
)

// DefaultWorktreeManifests are checked in order: a Node project first,
// then a Flutter project.
var DefaultWorktreeManifests = []string{"package.json", "pubspec.yaml"}

// Worktree resolves every commit to the version declared in the working
// directory. The manifests are read on the first call only.
type Worktree struct {
	dir       string
	manifests []string
	logger    Logger

	resolved bool
	version  string
}

// NewWorktree returns a worktree resolver for dir. Relative manifest paths
// are joined to dir.
func NewWorktree(dir string, manifests []string, logger Logger) *Worktree {
	if len(manifests) == 0 {
		manifests = DefaultWorktreeManifests
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &Worktree{dir: dir, manifests: manifests, logger: logger}
}

// Resolve ignores commit and returns the working-tree version.
func (w *Worktree) Resolve(_ context.Context, _ git.Commit) string {
	if !w.resolved {
		w.version = w.discover()
		w.resolved = true
	}
	return w.version
}

// Metadata returns the first candidate manifest that declares both a name
// and a version, or nil.
func (w *Worktree) Metadata() *manifest.Metadata {
	for _, candidate := range w.manifests {
		path := candidate
		if !filepath.IsAbs(path) {
			path = filepath.Join(w.dir, path)
		}

		meta := manifest.ReadFile(path)
		if meta.Complete() {
			w.logger.Debugf("using %s (%s %s)", path, meta.Name, meta.Version)
			return meta
		}
		w.logger.Debugf("skipping %s: missing, malformed or incomplete", path)
	}
	return nil
}

func (w *Worktree) discover() string {
	meta := w.Metadata()
	if meta == nil {
		w.logger.Warnf("no project metadata found in %s (checked %s)", w.dir, strings.Join(w.manifests, ", "))
		return Sentinel
	}
	return meta.Version
}
