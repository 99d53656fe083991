package importpath

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pubspec.yaml"), "name: shop_app\nversion: 1.0.0\n")
	target := filepath.Join(root, "lib", "core", "route_lifecycle_state.dart")
	writeFile(t, target, "")

	got, ok := Resolve(target)
	require.True(t, ok)
	assert.Equal(t, "import 'package:shop_app/core/route_lifecycle_state.dart';", got)
}

func TestResolve_NotYetWritten(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pubspec.yaml"), "name: shop_app\n")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lib", "pages"), 0o755))

	got, ok := Resolve(filepath.Join(root, "lib", "pages", "route_lifecycle_state.dart"))
	require.True(t, ok)
	assert.Equal(t, "import 'package:shop_app/pages/route_lifecycle_state.dart';", got)
}

func TestResolve_Failures(t *testing.T) {
	t.Run("no manifest", func(t *testing.T) {
		root := t.TempDir()
		target := filepath.Join(root, "lib", "a.dart")
		writeFile(t, target, "")
		_, ok := Resolve(target)
		assert.False(t, ok)
	})

	t.Run("outside lib", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "pubspec.yaml"), "name: app\n")
		require.NoError(t, os.MkdirAll(filepath.Join(root, "lib"), 0o755))
		target := filepath.Join(root, "test", "a.dart")
		writeFile(t, target, "")
		_, ok := Resolve(target)
		assert.False(t, ok)
	})

	t.Run("manifest without name", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "pubspec.yaml"), "version: 1.0.0\n")
		target := filepath.Join(root, "lib", "a.dart")
		writeFile(t, target, "")
		_, ok := Resolve(target)
		assert.False(t, ok)
	})

	t.Run("malformed manifest", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "pubspec.yaml"), "name: [unterminated\n")
		target := filepath.Join(root, "lib", "a.dart")
		writeFile(t, target, "")
		_, ok := Resolve(target)
		assert.False(t, ok)
	})
}

func TestResolve_NearestPackageWins(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pubspec.yaml"), "name: outer\n")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lib"), 0o755))
	inner := filepath.Join(root, "packages", "widgets")
	writeFile(t, filepath.Join(inner, "pubspec.yaml"), "name: widgets\n")
	target := filepath.Join(inner, "lib", "src", "base.dart")
	writeFile(t, target, "")

	got, ok := Resolve(target)
	require.True(t, ok)
	assert.Equal(t, "import 'package:widgets/src/base.dart';", got)
}

func TestRelative(t *testing.T) {
	root := t.TempDir()
	from := filepath.Join(root, "lib", "pages", "home")
	target := filepath.Join(root, "lib", "core", "route_lifecycle_state.dart")

	assert.Equal(t, "import '../../core/route_lifecycle_state.dart';", Relative(from, target))
	assert.Equal(t, "import 'x.dart';", Relative(from, filepath.Join(from, "x.dart")))
}

func TestResolveOrRelative(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "shared", "x.dart")
	writeFile(t, target, "")

	got := ResolveOrRelative(filepath.Join(root, "pages"), target)
	assert.Equal(t, "import '../shared/x.dart';", got)
}
