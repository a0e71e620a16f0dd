package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mdrelnotes/mdrelnotes/internal/git"
	"github.com/mdrelnotes/mdrelnotes/internal/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory git.Repository.
type fakeRepo struct {
	commits  []git.Commit
	logErr   error
	files    map[string]string
	branches map[string]string
	nameErr  error
	nameRevs int
}

func (f *fakeRepo) Log(context.Context, string, string) ([]git.Commit, error) {
	if f.logErr != nil {
		return nil, f.logErr
	}
	return f.commits, nil
}

func (f *fakeRepo) ShowFile(_ context.Context, rev, path string) ([]byte, error) {
	content, ok := f.files[rev+":"+path]
	if !ok {
		return nil, errors.New("does not exist")
	}
	return []byte(content), nil
}

func (f *fakeRepo) NameRev(_ context.Context, hash string) (string, error) {
	f.nameRevs++
	if f.nameErr != nil {
		return "", f.nameErr
	}
	return f.branches[hash], nil
}

// mapResolver resolves by hash, defaulting to the sentinel.
type mapResolver map[string]string

func (m mapResolver) Resolve(_ context.Context, c git.Commit) string {
	if v, ok := m[c.Hash]; ok {
		return v
	}
	return resolve.Sentinel
}

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Warnf(format string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Debugf(string, ...any) {}

// recordingIndicator tracks Start/Stop calls.
type recordingIndicator struct {
	started, stopped int
}

func (r *recordingIndicator) Start(string) { r.started++ }
func (r *recordingIndicator) Stop()        { r.stopped++ }

func TestGenerate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		commits      []git.Commit
		versions     mapResolver
		branches     map[string]string
		tickets      bool
		want         string
		wantDropped  int
		wantWarnings int
	}{
		"single group round trip": {
			commits: []git.Commit{
				{Hash: "h1", Subject: "Fix bug"},
				{Hash: "h2", Subject: "Add feature"},
			},
			versions: mapResolver{"h1": "2.0.0", "h2": "2.0.0"},
			want:     "## Version 2.0.0\n- Fix bug\n- Add feature",
		},
		"descending numeric order": {
			commits: []git.Commit{
				{Hash: "h1", Subject: "Old"},
				{Hash: "h2", Subject: "New"},
			},
			versions: mapResolver{"h1": "1.2.0", "h2": "1.10.0"},
			want:     "## Version 1.10.0\n- New\n\n## Version 1.2.0\n- Old",
		},
		"invalid version dropped with one warning": {
			commits: []git.Commit{
				{Hash: "h1", Subject: "Keep"},
				{Hash: "h2", Subject: "Drop me"},
			},
			versions:     mapResolver{"h1": "1.0.0", "h2": "not-a-version"},
			want:         "## Version 1.0.0\n- Keep",
			wantDropped:  1,
			wantWarnings: 1,
		},
		"every commit unresolved yields empty document": {
			commits: []git.Commit{
				{Hash: "h1", Subject: "a"},
				{Hash: "h2", Subject: "b"},
			},
			versions:     mapResolver{},
			want:         "",
			wantDropped:  2,
			wantWarnings: 2,
		},
		"no commits": {
			commits:  nil,
			versions: mapResolver{},
			want:     "",
		},
		"tickets disabled ignores branch": {
			commits:  []git.Commit{{Hash: "h1", Subject: "Resolves DEF-1"}},
			versions: mapResolver{"h1": "1.0.0"},
			branches: map[string]string{"h1": "feature/ABC-99-fix"},
			want:     "## Version 1.0.0\n- Resolves DEF-1",
		},
		"tickets from subject only": {
			commits:  []git.Commit{{Hash: "h1", Subject: "fix ABC-1 and ABC-1 again"}},
			versions: mapResolver{"h1": "1.0.0"},
			tickets:  true,
			want:     "## Version 1.0.0\n- fix ABC-1 and ABC-1 again [ABC-1]",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			logger := &recordingLogger{}
			repo := &fakeRepo{commits: tt.commits, branches: tt.branches}
			g := &Generator{Repo: repo, Resolver: tt.versions, Tickets: tt.tickets, Logger: logger}

			result, err := g.Generate(context.Background(), "main", "release")
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Markdown)
			assert.Equal(t, len(tt.commits), result.Commits)
			assert.Equal(t, tt.wantDropped, result.Dropped)
			assert.Len(t, logger.warnings, tt.wantWarnings)
			if !tt.tickets {
				assert.Zero(t, repo.nameRevs)
			}
		})
	}
}

func TestGenerate_BranchAndSubjectTickets(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{
		commits:  []git.Commit{{Hash: "h1", Subject: "Resolves DEF-1"}},
		branches: map[string]string{"h1": "feature/ABC-99-fix"},
	}
	g := &Generator{Repo: repo, Resolver: mapResolver{"h1": "1.0.0"}, Tickets: true}

	result, err := g.Generate(context.Background(), "main", "release")
	require.NoError(t, err)

	require.Len(t, result.Groups, 1)
	require.Len(t, result.Groups[0].Entries, 1)
	assert.ElementsMatch(t, []string{"ABC-99", "DEF-1"}, result.Groups[0].Entries[0].Tickets)

	line := strings.Split(result.Markdown, "\n")[1]
	assert.Contains(t, []string{
		"- Resolves DEF-1 [ABC-99, DEF-1]",
		"- Resolves DEF-1 [DEF-1, ABC-99]",
	}, line)
}

func TestGenerate_NameRevFailureDegrades(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{
		commits: []git.Commit{{Hash: "h1", Subject: "PROJ-7 tidy"}},
		nameErr: errors.New("name-rev failed"),
	}
	g := &Generator{Repo: repo, Resolver: mapResolver{"h1": "0.1.0"}, Tickets: true}

	result, err := g.Generate(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "## Version 0.1.0\n- PROJ-7 tidy [PROJ-7]", result.Markdown)
}

func TestGenerate_LogFailureIsFatal(t *testing.T) {
	t.Parallel()

	cmdErr := &git.CommandError{Binary: "git", Args: []string{"log", "bad..ref"}, Err: errors.New("exit status 128")}
	indicator := &recordingIndicator{}
	g := &Generator{
		Repo:     &fakeRepo{logErr: cmdErr},
		Resolver: mapResolver{},
		Progress: indicator,
	}

	result, err := g.Generate(context.Background(), "bad", "ref")
	assert.Nil(t, result)

	var target *git.CommandError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "git log bad..ref", target.Command())
	assert.Equal(t, 1, indicator.started)
	assert.Equal(t, 1, indicator.stopped)
}

func TestGenerate_SnapshotPolicy(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{
		commits: []git.Commit{
			{Hash: "h3", Subject: "Release prep"},
			{Hash: "h2", Subject: "Add search"},
			{Hash: "h1", Subject: "Initial"},
		},
		files: map[string]string{
			"h3:package.json": `{"name":"app","version":"1.1.0"}`,
			"h2:package.json": `{"name":"app","version":"1.0.0"}`,
		},
	}
	g := &Generator{Repo: repo, Resolver: resolve.NewSnapshot(repo, "package.json", nil)}

	result, err := g.Generate(context.Background(), "v0", "main")
	require.NoError(t, err)
	assert.Equal(t, "## Version 1.1.0\n- Release prep\n\n## Version 1.0.0\n- Add search", result.Markdown)
	assert.Equal(t, 1, result.Dropped)
}
