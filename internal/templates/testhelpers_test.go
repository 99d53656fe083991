package templates

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/easyrx/rxmvvm/internal/lifecycle"
	"github.com/easyrx/rxmvvm/internal/scan"
	"github.com/easyrx/rxmvvm/internal/testutil"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	return testutil.WriteFile(t, filepath.Dir(path), filepath.Base(path), content)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	return testutil.ReadFile(t, path)
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	home := t.TempDir()
	c := NewCache(CacheOptions{
		Dir:        filepath.Join(home, "templates_test"),
		BackupsDir: filepath.Join(home, "templates_backups"),
		Version:    "test",
	})
	require.NoError(t, c.Ensure())
	return c
}

// newProject creates a Flutter-style project with a pubspec and lib/.
func newProject(t *testing.T) string {
	t.Helper()
	return testutil.NewFlutterProject(t, "shop")
}

func newTestGenerator(root string, sources SourceProvider, globalCheck bool) *Generator {
	scanner := scan.New(scan.Options{Root: root})
	detector := lifecycle.NewDetector(32)
	return NewGenerator(Options{
		Scanner:            scanner,
		Detector:           detector,
		Resolver:           lifecycle.NewResolver(scanner, detector, 0),
		Sources:            sources,
		GlobalCheckEnabled: globalCheck,
	})
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	return testutil.ListDir(t, dir)
}
