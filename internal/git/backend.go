package git

import "fmt"

// Options selects and configures a Repository backend.
type Options struct {
	// Backend is BackendCLI or BackendGoGit.
	Backend string
	// Binary is the git executable used by the CLI backend.
	Binary string
}

// New opens the repository in dir with the configured backend.
func New(dir string, opts Options) (Repository, error) {
	switch opts.Backend {
	case "", BackendCLI:
		return NewCLIRepository(dir, NewExecRunner(opts.Binary)), nil
	case BackendGoGit:
		return OpenGoGit(dir)
	default:
		return nil, fmt.Errorf("unknown git backend %q (valid: %s, %s)", opts.Backend, BackendCLI, BackendGoGit)
	}
}
