//go:build integration

package integration

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/petal-labs/albert-go/albert"
)

// Models used by the live tests. Each can be overridden from the environment.
const (
	envChatModel      = "ALBERT_TEST_CHAT_MODEL"
	envEmbeddingModel = "ALBERT_TEST_EMBEDDING_MODEL"
	envRerankModel    = "ALBERT_TEST_RERANK_MODEL"
	envSkip           = "ALBERT_SKIP_INTEGRATION"
)

// isCI reports whether a CI environment is detected.
func isCI() bool {
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "CIRCLECI", "JENKINS_URL"} {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// skipOrFailOnMissing skips locally but fails in CI unless
// ALBERT_SKIP_INTEGRATION is set.
func skipOrFailOnMissing(t *testing.T, name string) {
	t.Helper()
	if isCI() && os.Getenv(envSkip) == "" {
		t.Fatalf("%s not set (CI environment detected; set %s=1 to skip)", name, envSkip)
	}
	t.Skipf("%s not set", name)
}

// skipIfNoPlatform skips the test when no platform credentials are set.
func skipIfNoPlatform(t *testing.T) {
	t.Helper()
	for _, name := range []string{albert.EnvBaseURL, albert.EnvAPIKey} {
		if os.Getenv(name) == "" {
			skipOrFailOnMissing(t, name)
		}
	}
}

// model returns the model named by env, skipping the test when unset.
func model(t *testing.T, env string) string {
	t.Helper()
	m := os.Getenv(env)
	if m == "" {
		t.Skipf("%s not set", env)
	}
	return m
}

// newClient returns a live client closed at the end of the test.
func newClient(t *testing.T) *albert.Client {
	t.Helper()
	skipIfNoPlatform(t)
	c, err := albert.NewFromEnv(albert.WithTimeout(60 * time.Second))
	if err != nil {
		t.Fatalf("NewFromEnv() error = %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// writeFile creates a file in a per-test directory and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

// cliResult holds the outcome of one CLI run.
type cliResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// runCLI runs the prebuilt CLI with an isolated HOME so no local profile or
// keystore leaks into the test.
func runCLI(t *testing.T, args ...string) cliResult {
	t.Helper()
	if cliBinary == "" {
		t.Fatal("CLI binary not built - TestMain may not have run")
	}

	cmd := exec.Command(cliBinary, args...)
	cmd.Env = append(os.Environ(), "HOME="+t.TempDir())
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	exitCode := 0
	if err := cmd.Run(); err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			t.Fatalf("Failed to run CLI: %v", err)
		}
		exitCode = exitErr.ExitCode()
	}

	return cliResult{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: exitCode}
}
