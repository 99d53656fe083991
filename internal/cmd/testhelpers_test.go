package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/easyrx/rxmvvm/internal/config"
	"github.com/easyrx/rxmvvm/internal/testutil"
	"github.com/easyrx/rxmvvm/internal/workspace"
)

// setupHome points RXMVVM_HOME at a temp dir and clears every override.
func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvConfig, "")
	t.Setenv(workspace.EnvProjectRoot, "")
	for _, key := range config.Keys() {
		t.Setenv(config.EnvName(key), "")
		require.NoError(t, os.Unsetenv(config.EnvName(key)))
	}
	return home
}

// newProject creates a Flutter-like project with a pubspec and an empty
// lib/home directory, returning the project root.
func newProject(t *testing.T) string {
	t.Helper()
	return testutil.NewFlutterProject(t, "shop", "lib/home")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	testutil.WriteFile(t, filepath.Dir(path), filepath.Base(path), content)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	return testutil.ReadFile(t, path)
}

// executeCommand runs the root command with args and returns stdout and
// stderr.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--timestamps=false"}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
