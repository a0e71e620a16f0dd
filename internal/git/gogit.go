package git

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// GoGitRepository answers repository queries natively with go-git.
type GoGitRepository struct {
	dir  string
	repo *git.Repository
}

// openRepo opens a git repository at the specified path.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
func openRepo(path string) (*git.Repository, error) {
	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] repository opened successfully")
	return repo, nil
}

// OpenGoGit opens the repository containing dir.
func OpenGoGit(dir string) (*GoGitRepository, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return nil, &CommandError{Binary: "go-git", Args: []string{"open", dir}, Dir: dir, Err: err}
	}
	return &GoGitRepository{dir: dir, repo: repo}, nil
}

// Log walks to and yields every commit not reachable from from, skipping
// merges. Commits are ordered by committer time, newest first.
func (r *GoGitRepository) Log(ctx context.Context, from, to string) ([]Commit, error) {
	fromHash, err := r.resolve(from)
	if err != nil {
		return nil, r.logError(from, to, err)
	}
	toHash, err := r.resolve(to)
	if err != nil {
		return nil, r.logError(from, to, err)
	}

	excluded, err := r.reachable(ctx, fromHash)
	if err != nil {
		return nil, r.logError(from, to, err)
	}

	iter, err := r.repo.Log(&git.LogOptions{From: toHash, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, r.logError(from, to, err)
	}
	defer iter.Close()

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if excluded[c.Hash] || c.NumParents() > 1 {
			return nil
		}
		commits = append(commits, Commit{Hash: c.Hash.String(), Subject: subjectOf(c.Message)})
		return nil
	})
	if err != nil {
		return nil, r.logError(from, to, err)
	}

	logDebug("[git] Log %s..%s: %d commits", from, to, len(commits))
	return commits, nil
}

// ShowFile returns the blob at path in the tree of rev.
func (r *GoGitRepository) ShowFile(_ context.Context, rev, path string) ([]byte, error) {
	hash, err := r.resolve(rev)
	if err != nil {
		return nil, err
	}

	commit, err := r.repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", rev, err)
	}

	file, err := commit.File(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s at %s: %w", path, rev, err)
	}

	contents, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("reading %s at %s: %w", path, rev, err)
	}
	return []byte(contents), nil
}

// NameRev returns the first branch, local before remote and then by name,
// whose tip is hash or descends from it. Remote branches are reported as
// "remotes/<remote>/<branch>" like git name-rev does. Tags are not
// considered, so a commit reachable only from a tag yields "" where git
// name-rev would answer "tags/<tag>~N".
func (r *GoGitRepository) NameRev(ctx context.Context, hash string) (string, error) {
	target, err := r.repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		return "", fmt.Errorf("reading commit %s: %w", hash, err)
	}

	refs, err := r.branchRefs()
	if err != nil {
		return "", err
	}

	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		tip, err := r.repo.CommitObject(ref.Hash())
		if err != nil {
			continue
		}
		if tip.Hash == target.Hash {
			return displayName(ref), nil
		}
		if ok, err := target.IsAncestor(tip); err == nil && ok {
			return displayName(ref), nil
		}
	}

	return "", nil
}

// resolve turns a branch, tag or hash into a commit hash.
func (r *GoGitRepository) resolve(rev string) (plumbing.Hash, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving revision %q: %w", rev, err)
	}
	return *hash, nil
}

// reachable collects every commit hash reachable from start.
func (r *GoGitRepository) reachable(ctx context.Context, start plumbing.Hash) (map[plumbing.Hash]bool, error) {
	iter, err := r.repo.Log(&git.LogOptions{From: start})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	seen := make(map[plumbing.Hash]bool)
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		seen[c.Hash] = true
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return nil, err
	}
	return seen, nil
}

// branchRefs lists local and remote-tracking branch references, local first,
// each group sorted by name. Symbolic refs such as origin/HEAD are skipped.
func (r *GoGitRepository) branchRefs() ([]*plumbing.Reference, error) {
	iter, err := r.repo.References()
	if err != nil {
		return nil, fmt.Errorf("listing references: %w", err)
	}

	var refs []*plumbing.Reference
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		if ref.Name().IsBranch() || ref.Name().IsRemote() {
			refs = append(refs, ref)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating references: %w", err)
	}

	sort.Slice(refs, func(i, j int) bool {
		ri, rj := refs[i].Name().IsRemote(), refs[j].Name().IsRemote()
		if ri != rj {
			return !ri
		}
		return refs[i].Name().String() < refs[j].Name().String()
	})
	return refs, nil
}

func (r *GoGitRepository) logError(from, to string, err error) error {
	return &CommandError{
		Binary: "go-git",
		Args:   []string{"log", fmt.Sprintf("%s..%s", from, to)},
		Dir:    r.dir,
		Err:    err,
	}
}

func displayName(ref *plumbing.Reference) string {
	if ref.Name().IsRemote() {
		return strings.TrimPrefix(ref.Name().String(), "refs/")
	}
	return ref.Name().Short()
}

// subjectOf mirrors git's %s: the first paragraph of the message with its
// lines joined by single spaces.
func subjectOf(message string) string {
	paragraph, _, _ := strings.Cut(strings.TrimLeft(message, "\n"), "\n\n")
	lines := strings.Split(strings.TrimSpace(paragraph), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.Join(lines, " ")
}
