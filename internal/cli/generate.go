package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mdrelnotes/mdrelnotes/internal/config"
	clierrors "github.com/mdrelnotes/mdrelnotes/internal/errors"
	"github.com/mdrelnotes/mdrelnotes/internal/git"
	"github.com/mdrelnotes/mdrelnotes/internal/notes"
	"github.com/mdrelnotes/mdrelnotes/internal/output"
	"github.com/mdrelnotes/mdrelnotes/internal/progress"
	"github.com/mdrelnotes/mdrelnotes/internal/resolve"
	"github.com/spf13/cobra"
)

// invocation is the parsed positional form.
type invocation struct {
	dir  string
	from string
	to   string
}

// parseInvocation resolves the legacy three-argument form and --dir into a
// single working directory.
func parseInvocation(args []string, dirFlag string) (invocation, error) {
	inv := invocation{dir: dirFlag}
	switch len(args) {
	case 2:
		inv.from, inv.to = args[0], args[1]
	case 3:
		if dirFlag != "" && dirFlag != args[0] {
			return inv, clierrors.NewArgumentErrorWithUsage(
				fmt.Sprintf("directory given twice: --dir %s and %s", dirFlag, args[0]),
				clierrors.Usage,
				"Use either --dir or a leading directory argument, not both",
			)
		}
		inv.dir, inv.from, inv.to = args[0], args[1], args[2]
	default:
		return inv, clierrors.MissingBranches(len(args))
	}
	for _, ref := range []string{inv.from, inv.to} {
		if ref == "" || strings.HasPrefix(ref, "-") {
			return inv, clierrors.InvalidRef(ref)
		}
	}
	if inv.dir == "" {
		inv.dir = "."
	}
	return inv, nil
}

func checkDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return clierrors.InvalidDirectory(dir, err)
	}
	if !info.IsDir() {
		return clierrors.InvalidDirectory(dir, errors.New("not a directory"))
	}
	return nil
}

// applyFlags overlays explicitly set flags on the loaded configuration.
func applyFlags(cmd *cobra.Command, flags *rootFlags, cfg *config.Configuration) error {
	changed := cmd.Flags().Changed

	if changed("policy") {
		cfg.Policy = flags.policy
	}
	if changed("manifest") {
		cfg.Manifest = flags.manifest
	}
	if changed("backend") {
		cfg.Backend = flags.backend
	}
	if changed("no-tickets") {
		cfg.Tickets = !flags.noTickets
	}
	if changed("no-header") {
		cfg.Header = !flags.noHeader
	}
	if changed("debug") {
		cfg.Debug = flags.debug
	}
	return cfg.Validate()
}

func runGenerate(cmd *cobra.Command, args []string, flags *rootFlags) error {
	inv, err := parseInvocation(args, flags.dir)
	if err != nil {
		return err
	}
	if err := checkDirectory(inv.dir); err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()

	cfg, err := config.Load(config.LoadOptions{
		Dir:           inv.dir,
		ConfigFile:    flags.config,
		WarningWriter: stderr,
	})
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, flags, cfg); err != nil {
		return err
	}

	logger := output.NewLogger(stderr, cfg.Debug)
	if cfg.Debug {
		git.SetDebugLogger(logger.Debugf)
		defer git.SetDebugLogger(nil)
	}
	logger.Debugf("directory=%s policy=%s backend=%s", inv.dir, cfg.Policy, cfg.Backend)

	repo, err := git.New(inv.dir, git.Options{Backend: cfg.Backend, Binary: cfg.GitBinary})
	if err != nil {
		return gitFailure(err)
	}

	resolver, err := resolve.New(resolve.Options{
		Policy:    cfg.Policy,
		Dir:       inv.dir,
		Manifest:  cfg.Manifest,
		Manifests: cfg.Manifests,
		Logger:    logger,
	}, repo)
	if err != nil {
		return clierrors.InvalidConfigValue("policy", cfg.Policy, "one of: worktree, snapshot")
	}

	gen := &notes.Generator{
		Repo:     repo,
		Resolver: resolver,
		Tickets:  cfg.Tickets,
		Logger:   logger,
		Progress: newIndicator(stderr, !cfg.Debug),
	}

	result, err := gen.Generate(cmd.Context(), inv.from, inv.to)
	if err != nil {
		return gitFailure(err)
	}
	logger.Debugf("%d commits listed, %d dropped", result.Commits, result.Dropped)

	header := ""
	if cfg.Header {
		header = output.Header(inv.from, inv.to)
	}
	if err := writeResult(cmd.OutOrStdout(), flags.output, header, result.Markdown); err != nil {
		return err
	}
	if flags.output != "" {
		logger.Infof("Release notes written to %s", flags.output)
	}
	return nil
}

// gitFailure reports a failed repository query with the command that failed.
func gitFailure(err error) error {
	var cmdErr *git.CommandError
	if errors.As(err, &cmdErr) {
		return clierrors.GitCommandFailed(cmdErr.Command(), err)
	}
	return clierrors.WrapWithMessage(err, clierrors.Git, "reading repository",
		"Check that the directory is a git repository")
}

// writeResult writes the notes to path, or to stdout when path is empty.
func writeResult(stdout io.Writer, path, header, markdown string) error {
	if path == "" {
		return output.WriteNotes(stdout, header, markdown)
	}

	f, err := os.Create(path)
	if err != nil {
		return clierrors.OutputNotWritable(path, err)
	}
	if err := output.WriteNotes(f, header, markdown); err != nil {
		f.Close()
		return clierrors.OutputNotWritable(path, err)
	}
	if err := f.Close(); err != nil {
		return clierrors.OutputNotWritable(path, err)
	}
	return nil
}

// newIndicator returns a spinner when w is a terminal file.
func newIndicator(w io.Writer, enabled bool) progress.Indicator {
	f, ok := w.(*os.File)
	if !ok {
		return progress.Nop{}
	}
	return progress.NewSpinner(f, enabled)
}
