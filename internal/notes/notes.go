// Package notes composes the release-notes pipeline: list commits between
// two refs, resolve each commit's version, collect ticket identifiers,
// then group by version and render Markdown.
package notes

import (
	"context"
	"fmt"

	"github.com/mdrelnotes/mdrelnotes/internal/changelog"
	"github.com/mdrelnotes/mdrelnotes/internal/git"
	"github.com/mdrelnotes/mdrelnotes/internal/progress"
	"github.com/mdrelnotes/mdrelnotes/internal/resolve"
	"github.com/mdrelnotes/mdrelnotes/internal/tickets"
)

// Logger receives warnings and debug lines.
type Logger interface {
	Warnf(format string, args ...any)
	Debugf(format string, args ...any)
}

// Generator produces release notes for a ref range.
type Generator struct {
	Repo     git.Repository
	Resolver resolve.Resolver
	// Tickets enables ticket extraction from subjects and branch names.
	Tickets bool
	// Logger may be nil.
	Logger Logger
	// Progress may be nil.
	Progress progress.Indicator
}

// Result is the outcome of a run.
type Result struct {
	Markdown string
	Groups   []changelog.Group
	// Commits is the number of commits listed by the log.
	Commits int
	// Dropped is the number of commits left out for lack of a valid version.
	Dropped int
}

// Generate lists the commits in from..to and renders them as Markdown.
//
// The only error returned is a failed log query, which wraps a
// *git.CommandError. Every per-commit problem is absorbed and at most
// logged.
func (g *Generator) Generate(ctx context.Context, from, to string) (*Result, error) {
	commits, err := g.listCommits(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing commits %s..%s: %w", from, to, err)
	}

	entries := make([]changelog.Entry, 0, len(commits))
	for _, c := range commits {
		entries = append(entries, g.annotate(ctx, c))
	}

	groups := changelog.GroupByVersion(entries, g.warnf)
	kept := changelog.CountEntries(groups)
	g.debugf("%d commits, %d versions, %d dropped", len(commits), len(groups), len(commits)-kept)

	return &Result{
		Markdown: changelog.RenderMarkdownString(groups),
		Groups:   groups,
		Commits:  len(commits),
		Dropped:  len(commits) - kept,
	}, nil
}

func (g *Generator) listCommits(ctx context.Context, from, to string) ([]git.Commit, error) {
	indicator := g.Progress
	if indicator == nil {
		indicator = progress.Nop{}
	}

	indicator.Start(fmt.Sprintf("Collecting commits %s..%s", from, to))
	defer indicator.Stop()

	return g.Repo.Log(ctx, from, to)
}

// annotate resolves the version and tickets for one commit.
func (g *Generator) annotate(ctx context.Context, c git.Commit) changelog.Entry {
	entry := changelog.Entry{
		Hash:    c.Hash,
		Summary: c.Subject,
		Version: g.Resolver.Resolve(ctx, c),
	}

	if g.Tickets {
		entry.Tickets = tickets.Merge(tickets.Extract(c.Subject), g.branchTickets(ctx, c))
	}

	return entry
}

// branchTickets returns the tickets named in the branch containing c.
// A failed lookup contributes nothing.
func (g *Generator) branchTickets(ctx context.Context, c git.Commit) []string {
	branch, err := g.Repo.NameRev(ctx, c.Hash)
	if err != nil {
		g.debugf("name-rev %s: %v", c.ShortHash(), err)
		return nil
	}
	return tickets.Extract(branch)
}

func (g *Generator) warnf(format string, args ...any) {
	if g.Logger != nil {
		g.Logger.Warnf(format, args...)
	}
}

func (g *Generator) debugf(format string, args ...any) {
	if g.Logger != nil {
		g.Logger.Debugf(format, args...)
	}
}
