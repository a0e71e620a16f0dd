package git

import (
	"context"
	"fmt"
)

// undefinedRef is what `git name-rev --name-only` prints when no ref
// contains the commit.
const undefinedRef = "undefined"

// endOfOptions stops git from reading a revision that starts with "-" as
// an option.
const endOfOptions = "--end-of-options"

// CLIRepository answers repository queries by running the git binary in Dir.
type CLIRepository struct {
	Dir    string
	Runner Runner
}

// NewCLIRepository returns a CLIRepository for dir using runner.
func NewCLIRepository(dir string, runner Runner) *CLIRepository {
	return &CLIRepository{Dir: dir, Runner: runner}
}

// Log runs `git log --no-merges --pretty=format:%H %s --end-of-options <from>..<to>`.
func (r *CLIRepository) Log(ctx context.Context, from, to string) ([]Commit, error) {
	out, err := r.Runner.Run(ctx, r.Dir,
		"log", "--no-merges", "--pretty=format:%H %s", endOfOptions, fmt.Sprintf("%s..%s", from, to))
	if err != nil {
		return nil, err
	}

	commits := parseLog(out)
	logDebug("[git] Log %s..%s: %d commits", from, to, len(commits))
	return commits, nil
}

// ShowFile runs `git show --end-of-options <rev>:<path>`.
func (r *CLIRepository) ShowFile(ctx context.Context, rev, path string) ([]byte, error) {
	out, err := r.Runner.Run(ctx, r.Dir, "show", endOfOptions, fmt.Sprintf("%s:%s", rev, path))
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// NameRev runs `git name-rev --name-only --end-of-options <hash>`. The "undefined" answer
// is reported as an empty name.
func (r *CLIRepository) NameRev(ctx context.Context, hash string) (string, error) {
	out, err := r.Runner.Run(ctx, r.Dir, "name-rev", "--name-only", endOfOptions, hash)
	if err != nil {
		return "", err
	}
	if out == undefinedRef {
		return "", nil
	}
	return out, nil
}
