package errors

import "fmt"

// Usage is the canonical invocation shown with argument errors.
const Usage = "mdrelnotes [--dir <repo>] <branchA> <branchB>"

// MissingBranches creates an error for a run without both refs.
func MissingBranches(got int) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("two refs are required, got %d", got),
		Usage,
		"Pass the older ref first and the newer ref second",
		"Example: mdrelnotes v1.0.0 main",
	)
}

// TooManyArguments creates an error for surplus positional arguments.
func TooManyArguments(got int) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("expected at most 3 arguments, got %d", got),
		Usage,
		"Use --dir to point at a repository instead of a leading path",
	)
}

// InvalidRef creates an error for a ref that git would not read as a revision.
func InvalidRef(ref string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid ref %q: refs must be non-empty and must not start with '-'", ref),
		Usage,
		"Pass a branch, tag or commit hash",
	)
}

// InvalidDirectory creates an error for a working directory that cannot be used.
func InvalidDirectory(dir string, err error) *CLIError {
	return &CLIError{
		Category: Argument,
		Message:  fmt.Sprintf("cannot use directory %s: %v", dir, err),
		Remediation: []string{
			"Check that the path exists and is a directory",
			"Run from inside the repository or pass --dir <repo>",
		},
		Cause: err,
	}
}

// GitCommandFailed creates an error for a fatal git query.
// command is the failing invocation, e.g. "git log main..release".
func GitCommandFailed(command string, err error) *CLIError {
	return &CLIError{
		Category: Git,
		Message:  fmt.Sprintf("%s failed: %v", command, err),
		Remediation: []string{
			"Check that both refs exist: git rev-parse --verify <ref>",
			"Check that the directory is a git repository",
			"Run with --debug to see every git invocation",
		},
		Cause: err,
	}
}

// ConfigParseError creates an error for a config file that cannot be parsed.
func ConfigParseError(path string, err error) *CLIError {
	return &CLIError{
		Category: Configuration,
		Message:  fmt.Sprintf("failed to parse config file %s: %v", path, err),
		Remediation: []string{
			"Check the file for YAML syntax errors",
			"Remove the file to fall back to built-in defaults",
		},
		Cause: err,
	}
}

// InvalidConfigValue creates an error for a config value that fails validation.
func InvalidConfigValue(field, value, expected string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("invalid value %q for %s", value, field),
		fmt.Sprintf("Expected %s", expected),
		"Check .mdrelnotes.yml and MDRELNOTES_* environment variables",
	)
}

// OutputNotWritable creates an error for an --output path that cannot be written.
func OutputNotWritable(path string, err error) *CLIError {
	return &CLIError{
		Category: Runtime,
		Message:  fmt.Sprintf("cannot write release notes to %s: %v", path, err),
		Remediation: []string{
			"Check that the parent directory exists and is writable",
			"Omit --output to print to stdout",
		},
		Cause: err,
	}
}
