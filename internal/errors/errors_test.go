package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategory_String(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		category ErrorCategory
		want     string
	}{
		"argument":      {category: Argument, want: "Argument Error"},
		"configuration": {category: Configuration, want: "Configuration Error"},
		"git":           {category: Git, want: "Git Error"},
		"runtime":       {category: Runtime, want: "Runtime Error"},
		"unknown":       {category: ErrorCategory(42), want: "Error"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.category.String())
		})
	}
}

func TestWrapWithMessage(t *testing.T) {
	t.Parallel()

	assert.Nil(t, WrapWithMessage(nil, Runtime, "ctx"))

	base := stderrors.New("boom")
	wrapped := WrapWithMessage(base, Git, "listing commits", "retry")
	assert.Equal(t, "listing commits: boom", wrapped.Error())
	assert.Equal(t, Git, wrapped.Category)
	assert.ErrorIs(t, wrapped, base)
}

func TestAsCLIError_FollowsChain(t *testing.T) {
	t.Parallel()

	inner := MissingBranches(1)
	outer := fmt.Errorf("running: %w", inner)

	assert.Same(t, inner, AsCLIError(outer))
	assert.Nil(t, AsCLIError(stderrors.New("plain")))
	assert.Nil(t, AsCLIError(nil))
}

func TestMessages(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("cause")

	tests := map[string]struct {
		err          *CLIError
		wantCategory ErrorCategory
		wantContains string
		wantUsage    bool
	}{
		"missing branches": {
			err:          MissingBranches(1),
			wantCategory: Argument,
			wantContains: "got 1",
			wantUsage:    true,
		},
		"too many arguments": {
			err:          TooManyArguments(4),
			wantCategory: Argument,
			wantContains: "got 4",
			wantUsage:    true,
		},
		"invalid ref": {
			err:          InvalidRef("--output=x"),
			wantCategory: Argument,
			wantContains: `"--output=x"`,
			wantUsage:    true,
		},
		"invalid directory": {
			err:          InvalidDirectory("/nope", cause),
			wantCategory: Argument,
			wantContains: "/nope",
		},
		"git command failed": {
			err:          GitCommandFailed("git log a..b", cause),
			wantCategory: Git,
			wantContains: "git log a..b failed",
		},
		"config parse": {
			err:          ConfigParseError(".mdrelnotes.yml", cause),
			wantCategory: Configuration,
			wantContains: ".mdrelnotes.yml",
		},
		"invalid config value": {
			err:          InvalidConfigValue("policy", "sideways", "one of: worktree, snapshot"),
			wantCategory: Configuration,
			wantContains: `"sideways"`,
		},
		"output not writable": {
			err:          OutputNotWritable("/ro/notes.md", cause),
			wantCategory: Runtime,
			wantContains: "/ro/notes.md",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantCategory, tt.err.Category)
			assert.Contains(t, tt.err.Error(), tt.wantContains)
			assert.NotEmpty(t, tt.err.Remediation)
			if tt.wantUsage {
				assert.Equal(t, Usage, tt.err.Usage)
			}
		})
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	got := MissingBranches(0).render(plain)

	assert.Contains(t, got, "Error [Argument Error]: two refs are required, got 0\n")
	assert.Contains(t, got, "Usage: "+Usage+"\n")
	assert.Contains(t, got, "To fix this:\n")
	assert.Contains(t, got, "  • Example: mdrelnotes v1.0.0 main\n")

	var nilErr *CLIError
	assert.Empty(t, nilErr.render(plain))

	bare := (&CLIError{Category: Git, Message: "boom"}).render(plain)
	assert.Equal(t, "Error [Git Error]: boom\n", bare)
}

func TestFprintAny(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	FprintAny(&buf, stderrors.New("disk full"))
	require.NotEmpty(t, buf.String())
	assert.Contains(t, buf.String(), "disk full")

	buf.Reset()
	FprintAny(&buf, nil)
	assert.Empty(t, buf.String())
}
