package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easyrx/rxmvvm/internal/output"
)

func TestLifecycleAdd_DefaultName(t *testing.T) {
	setupHome(t)
	dir := filepath.Join(newProject(t), "lib", "home")

	stdout, _, err := executeCommand(t, "lifecycle", "add", "--dir", dir)
	require.NoError(t, err)

	content := readFile(t, filepath.Join(dir, "route_lifecycle_state.dart"))
	assert.Contains(t, content, "class RouteLifecycleState")
	assert.Contains(t, stdout, output.StatusCreated)
}

func TestLifecycleAdd_AppendsExtension(t *testing.T) {
	setupHome(t)
	dir := filepath.Join(newProject(t), "lib", "home")

	_, _, err := executeCommand(t, "lifecycle", "add", "app_route_state", "--dir", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "app_route_state.dart"))
}

func TestLifecycleAdd_LocalCollision(t *testing.T) {
	setupHome(t)
	dir := filepath.Join(newProject(t), "lib", "home")
	writeFile(t, filepath.Join(dir, "route_lifecycle_state.dart"), "// mine\n")

	_, _, err := executeCommand(t, "lifecycle", "add", "--dir", dir)
	require.Error(t, err)
	assert.Equal(t, ExitCollision, ExitCodeFromError(err))
	assert.Equal(t, "// mine\n", readFile(t, filepath.Join(dir, "route_lifecycle_state.dart")))
}

func TestLifecycleAdd_ReusesProjectFile(t *testing.T) {
	setupHome(t)
	root := newProject(t)
	dir := filepath.Join(root, "lib", "home")
	existing := filepath.Join(root, "lib", "core", "route_lifecycle_state.dart")
	writeFile(t, existing, "class AppRouteState extends BaseRouteState<HomePage> {}\n")

	stdout, _, err := executeCommand(t, "lifecycle", "add", "--dir", dir)
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(dir, "route_lifecycle_state.dart"))
	assert.Contains(t, stdout, output.StatusReused)
	assert.Contains(t, stdout, "AppRouteState")
}

func TestLifecycleAdd_SuffixesUnusableMatch(t *testing.T) {
	setupHome(t)
	root := newProject(t)
	dir := filepath.Join(root, "lib", "home")
	writeFile(t, filepath.Join(root, "lib", "core", "route_lifecycle_state.dart"), "// empty\n")

	_, _, err := executeCommand(t, "lifecycle", "add", "--dir", dir)
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(dir, "route_lifecycle_state.dart"))
	assert.FileExists(t, filepath.Join(dir, "route_lifecycle_state_2.dart"))
}

func TestLifecycleAdd_NoGlobalCheck(t *testing.T) {
	setupHome(t)
	root := newProject(t)
	dir := filepath.Join(root, "lib", "home")
	writeFile(t, filepath.Join(root, "lib", "core", "route_lifecycle_state.dart"),
		"class AppRouteState extends BaseRouteState<HomePage> {}\n")

	_, _, err := executeCommand(t, "lifecycle", "add", "--dir", dir, "--no-global-check")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "route_lifecycle_state.dart"))
}

func TestLifecycleAdd_RejectsPath(t *testing.T) {
	setupHome(t)
	dir := filepath.Join(newProject(t), "lib", "home")

	_, _, err := executeCommand(t, "lifecycle", "add", "nested/state.dart", "--dir", dir)
	require.Error(t, err)
	assert.Equal(t, ExitPreconditionError, ExitCodeFromError(err))
}
