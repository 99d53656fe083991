// Package workspace locates the project a generation runs in.
package workspace

import (
	"os"
	"path/filepath"

	"github.com/easyrx/rxmvvm/internal/importpath"
	"github.com/easyrx/rxmvvm/internal/output"
)

// EnvProjectRoot overrides project root detection.
const EnvProjectRoot = "RXMVVM_PROJECT_ROOT"

// Markers, in order of preference.
var markers = []string{".git", importpath.ManifestFile}

// Locate returns the project root for start. A non-empty override wins.
// Otherwise the nearest ancestor holding a .git entry is used, then the
// nearest holding a pubspec.yaml. The boolean is false when no root is found.
func Locate(start, override string) (string, bool) {
	if override != "" {
		abs, err := filepath.Abs(override)
		if err != nil {
			return "", false
		}
		return abs, true
	}

	abs, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}

	for _, marker := range markers {
		if root, ok := nearest(abs, marker); ok {
			output.Debug("project root located", "root", root, "marker", marker)
			return root, true
		}
	}
	return "", false
}

func nearest(dir, marker string) (string, bool) {
	for {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// ResolveExternal turns a configured external lifecycle path into an
// absolute one. Absolute paths are returned unchanged. Relative paths are
// tried against the project root, the target directory and its parent; the
// first that exists wins. When none exists the path is joined to the first
// available base so a later detection reports it as unreadable.
func ResolveExternal(path, projectRoot, targetDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	var bases []string
	if projectRoot != "" {
		bases = append(bases, projectRoot)
	}
	if targetDir != "" {
		bases = append(bases, targetDir, filepath.Dir(targetDir))
	}

	for _, base := range bases {
		candidate := filepath.Join(base, path)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	if len(bases) > 0 {
		return filepath.Join(bases[0], path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
