// Package cli implements the mdrelnotes command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mdrelnotes/mdrelnotes/internal/build"
	clierrors "github.com/mdrelnotes/mdrelnotes/internal/errors"
	"github.com/spf13/cobra"
)

// rootFlags holds the values bound to the root command's flags.
type rootFlags struct {
	dir       string
	config    string
	policy    string
	manifest  string
	backend   string
	output    string
	noTickets bool
	noHeader  bool
	debug     bool
}

// NewRootCmd builds the mdrelnotes command. Each call returns an
// independent command with its own flag state.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "mdrelnotes [directory] <branchA> <branchB>",
		Short: "Generate Markdown release notes from git history",
		Long: `Generate Markdown release notes for the commits on branchB that are not on branchA.

Each commit is attributed to the project version found in package.json or
pubspec.yaml, commits are grouped under one "## Version X" heading per
version (newest first), and ticket identifiers such as ABC-123 found in the
commit subject or branch name are appended to each entry.

Configuration is read from ~/.config/mdrelnotes/config.yml, then
.mdrelnotes.yml in the repository, then --config, then MDRELNOTES_*
environment variables. Flags override all of them.`,
		Example: `  mdrelnotes v1.4.0 main                   # Notes for main since v1.4.0
  mdrelnotes -C ../app release/2.0 main    # Run against another repository
  mdrelnotes ../app release/2.0 main       # Same, legacy positional form
  mdrelnotes --policy snapshot v1 v2       # Read the version at each commit
  mdrelnotes v1 v2 -o RELEASE_NOTES.md     # Write to a file`,
		Version:       build.String(),
		Args:          validateArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, flags)
		},
	}

	cmd.SetVersionTemplate(fmt.Sprintf("mdrelnotes %s\n", build.String()))
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), clierrors.Usage, "Run 'mdrelnotes --help' for the list of flags")
	})

	f := cmd.Flags()
	f.StringVarP(&flags.dir, "dir", "C", "", "Repository directory (default: current directory)")
	f.StringVar(&flags.config, "config", "", "Config file to load after the project config")
	f.StringVar(&flags.policy, "policy", "", "Version resolution policy: worktree | snapshot")
	f.StringVar(&flags.manifest, "manifest", "", "Manifest path read at each commit by the snapshot policy")
	f.StringVar(&flags.backend, "backend", "", "Git backend: cli | gogit")
	f.StringVarP(&flags.output, "output", "o", "", "Write release notes to a file instead of stdout")
	f.BoolVar(&flags.noTickets, "no-tickets", false, "Do not append ticket identifiers")
	f.BoolVar(&flags.noHeader, "no-header", false, "Omit the '# Release notes for:' line")
	f.BoolVar(&flags.debug, "debug", false, "Log git invocations and version resolution to stderr")

	return cmd
}

// validateArgs accepts <branchA> <branchB> or the legacy
// <directory> <branchA> <branchB>.
func validateArgs(_ *cobra.Command, args []string) error {
	switch {
	case len(args) < 2:
		return clierrors.MissingBranches(len(args))
	case len(args) > 3:
		return clierrors.TooManyArguments(len(args))
	}
	return nil
}

// Execute runs the root command against os.Args. Errors are printed to
// stderr before being returned; use ExitCode to pick the exit status.
// An interrupt or SIGTERM cancels the context handed to the git backend.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCmd()
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		clierrors.FprintAny(cmd.ErrOrStderr(), err)
	}
	return err
}
