package main

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

const helperEnv = "ENVCOMPAT_TEST_HELPER"

func runHelper(t *testing.T, name string, args ...string) error {
	t.Helper()
	cmd := exec.Command(os.Args[0], "-test.run="+name)
	cmd.Env = append(os.Environ(), helperEnv+"=1")
	if len(args) > 0 {
		cmd.Env = append(cmd.Env, "ENVCOMPAT_TEST_ARGFILE="+args[0])
	}
	return cmd.Run()
}

func TestMainPassesExitZero(t *testing.T) {
	if os.Getenv(helperEnv) == "1" {
		_ = os.Unsetenv("TESTENV2")
		os.Args = []string{"envcompat-test"}
		main()
		return
	}
	if err := runHelper(t, "TestMainPassesExitZero"); err != nil {
		t.Fatalf("expected exit 0, got error: %v", err)
	}
}

func TestMainEmptyArgFileExitOne(t *testing.T) {
	if os.Getenv(helperEnv) == "1" {
		os.Args = []string{"envcompat-test", os.Getenv("ENVCOMPAT_TEST_ARGFILE")}
		main()
		return
	}

	path := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	err := runHelper(t, "TestMainEmptyArgFileExitOne", path)
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		t.Fatalf("expected exit 1, got %v", err)
	}
}
