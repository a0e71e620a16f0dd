// Package testutil lets tests stand in for the git binary by re-running the
// test binary as a scripted subprocess.
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// HelperProcessConfig scripts the answer of one fake git invocation.
type HelperProcessConfig struct {
	ExitCode int    `json:"exit_code"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	// CallLogPath, when set, receives one CallLogEntry per invocation.
	CallLogPath string `json:"call_log_path,omitempty"`
}

const (
	envFakeGit       = "MDRELNOTES_FAKE_GIT"
	envFakeGitConfig = "MDRELNOTES_FAKE_GIT_CONFIG"
	envFakeGitArgs   = "MDRELNOTES_FAKE_GIT_ARGS"
)

// TestHelperProcess plays git when the test binary was started by
// ConfigureTestCommand and returns at once otherwise. Call it from a test
// named TestHelperProcess in the package that needs a fake git.
func TestHelperProcess(t *testing.T) {
	if os.Getenv(envFakeGit) != "1" {
		return
	}

	var cfg HelperProcessConfig
	_ = json.Unmarshal([]byte(os.Getenv(envFakeGitConfig)), &cfg)

	if cfg.CallLogPath != "" {
		var args []string
		_ = json.Unmarshal([]byte(os.Getenv(envFakeGitArgs)), &args)
		dir, _ := os.Getwd()

		entry := CallLogEntry{Args: args, Dir: dir, Time: time.Now(), ExitCode: cfg.ExitCode}
		if err := AppendCallLog(cfg.CallLogPath, entry); err != nil {
			fmt.Fprintf(os.Stderr, "fake git: %v\n", err)
		}
	}

	fmt.Fprint(os.Stdout, cfg.Stdout)
	fmt.Fprint(os.Stderr, cfg.Stderr)
	os.Exit(cfg.ExitCode)
}

// ConfigureTestCommand returns a command that re-runs the test binary,
// limited to testName, as a fake git answering per cfg. args are only
// recorded in the call log.
func ConfigureTestCommand(t *testing.T, testName string, cfg HelperProcessConfig, args ...string) *exec.Cmd {
	t.Helper()

	bin, err := os.Executable()
	require.NoError(t, err)
	cfgJSON, err := json.Marshal(cfg)
	require.NoError(t, err)
	argsJSON, err := json.Marshal(args)
	require.NoError(t, err)

	cmd := exec.Command(bin, "-test.run=^"+testName+"$")
	cmd.Env = append(os.Environ(),
		envFakeGit+"=1",
		envFakeGitConfig+"="+string(cfgJSON),
		envFakeGitArgs+"="+string(argsJSON),
	)
	return cmd
}
