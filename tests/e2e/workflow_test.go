package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

const testConfig = `[general]
language = "en"

[assistant]
enabled = false
`

func TestEndToEndWorkflow(t *testing.T) {
	// Allow overriding bin dir via env var, default to ../../bin (relative to tests/e2e)
	binDir := os.Getenv("NORTON_BIN_DIR")
	if binDir == "" {
		binDir = filepath.Join("..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)
	cliPath := filepath.Join(binDir, "norton")
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s. Build it with 'go build -o bin/norton ./cmd/norton' first.", cliPath)
	}

	tempDir := t.TempDir()
	storePath := filepath.Join(tempDir, "data", "norton.json")
	configPath := filepath.Join(tempDir, "norton", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "XDG_CONFIG_HOME=") || strings.HasPrefix(e, "HOME=") || strings.HasPrefix(e, "NORTON_") {
			continue
		}
		env = append(env, e)
	}
	env = append(env,
		fmt.Sprintf("XDG_CONFIG_HOME=%s", tempDir),
		fmt.Sprintf("HOME=%s", tempDir),
		fmt.Sprintf("NORTON_STORE=%s", storePath),
	)

	t.Log("Initializing store...")
	out := runCmd(t, cliPath, env, "init")
	expectContains(t, out, "Initialized norton storage at: "+storePath)

	// Start from an empty store instead of the sample data.
	runCmd(t, cliPath, env, "clear", "all", "--yes")

	t.Log("Adding tasks...")
	expectContains(t, runCmd(t, cliPath, env, "task", "add", "Write quarterly report", "-p", "high", "-c", "work"), "Added task")
	expectContains(t, runCmd(t, cliPath, env, "task", "add", "Evening run", "-p", "low", "-c", "health"), "Added task")

	out = runCmd(t, cliPath, env, "task", "list")
	expectContains(t, out, "Write quarterly report")
	if strings.Index(out, "Write quarterly report") > strings.Index(out, "Evening run") {
		t.Errorf("high priority task should be listed first:\n%s", out)
	}

	t.Log("Recording transactions...")
	expectContains(t, runCmd(t, cliPath, env, "tx", "add", "8000", "-t", "income", "-c", "Salary", "-m", "pay"), "Recorded")
	expectContains(t, runCmd(t, cliPath, env, "tx", "add", "45.5", "-c", "Food", "-m", "dinner"), "Recorded")
	expectContains(t, runCmd(t, cliPath, env, "tx", "quick", "taxi 30"), "Recorded")

	out = runCmd(t, cliPath, env, "tx", "list")
	expectContains(t, out, "+$8,000.00")
	expectContains(t, out, "-$45.50")
	expectContains(t, out, "-$30.00")

	t.Log("Setting budget...")
	runCmd(t, cliPath, env, "budget", "set", "1000")
	expectContains(t, runCmd(t, cliPath, env, "budget", "show"), "$1,000")

	out = runCmd(t, cliPath, env, "dashboard", "--no-ai")
	expectContains(t, out, "$75.50")
	expectContains(t, out, "Write quarterly report")

	t.Log("Backing up...")
	expectContains(t, runCmd(t, cliPath, env, "backup", "create"), "Backup created: norton-")
	expectContains(t, runCmd(t, cliPath, env, "backup", "list"), "1 total")

	t.Log("Clearing tasks...")
	runCmd(t, cliPath, env, "clear", "tasks", "--yes")
	expectContains(t, runCmd(t, cliPath, env, "task", "list", "--all"), "No tasks")

	// The ledger must survive a task-only clear.
	expectContains(t, runCmd(t, cliPath, env, "tx", "list"), "+$8,000.00")
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}

func expectContains(t *testing.T, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Errorf("output missing %q:\n%s", want, out)
	}
}
