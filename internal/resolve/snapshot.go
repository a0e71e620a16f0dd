package resolve

import (
	"context"

	"github.com/mdrelnotes/mdrelnotes/internal/git"
	"github.com/mdrelnotes/mdrelnotes/internal/manifest"
)

// DefaultSnapshotManifest is read from each commit when no path is configured.
const DefaultSnapshotManifest = "package.json"

// Snapshot reads the version from the manifest stored in each commit.
type Snapshot struct {
	shower FileShower
	path   string
	format manifest.Format
	logger Logger
}

// NewSnapshot returns a snapshot resolver reading path from each commit.
// The parser is picked from the path's extension.
func NewSnapshot(shower FileShower, path string, logger Logger) *Snapshot {
	if path == "" {
		path = DefaultSnapshotManifest
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &Snapshot{shower: shower, path: path, format: manifest.FormatFor(path), logger: logger}
}

// Resolve shows the manifest at commit.Hash and returns its version field.
func (s *Snapshot) Resolve(ctx context.Context, commit git.Commit) string {
	data, err := s.shower.ShowFile(ctx, commit.Hash, s.path)
	if err != nil {
		s.logger.Debugf("no %s at %s: %v", s.path, commit.ShortHash(), err)
		return Sentinel
	}

	meta := manifest.Parse(data, s.format)
	if meta == nil || meta.Version == "" {
		s.logger.Debugf("%s at %s has no version", s.path, commit.ShortHash())
		return Sentinel
	}
	return meta.Version
}
