package cli

import clierrors "github.com/mdrelnotes/mdrelnotes/internal/errors"

// Exit codes for the mdrelnotes CLI.
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates release notes were written
	ExitSuccess = 0

	// ExitFailure indicates an unclassified runtime failure
	ExitFailure = 1

	// ExitInvalidArguments indicates missing, extra or unusable arguments
	ExitInvalidArguments = 3

	// ExitGitFailure indicates the commit log could not be read
	ExitGitFailure = 6

	// ExitConfigError indicates a config file or value was rejected
	ExitConfigError = 7
)

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	cliErr := clierrors.AsCLIError(err)
	if cliErr == nil {
		return ExitFailure
	}
	switch cliErr.Category {
	case clierrors.Argument:
		return ExitInvalidArguments
	case clierrors.Configuration:
		return ExitConfigError
	case clierrors.Git:
		return ExitGitFailure
	default:
		return ExitFailure
	}
}
