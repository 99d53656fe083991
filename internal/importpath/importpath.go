// Package importpath computes Dart import statements that reference a file,
// preferring package-qualified imports when the file lives under a package's
// lib/ directory.
package importpath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/easyrx/rxmvvm/internal/output"
)

const (
	// ManifestFile is the package descriptor looked up while walking upward.
	ManifestFile = "pubspec.yaml"

	// SourceRoot is the directory next to the manifest that package imports
	// are relative to.
	SourceRoot = "lib"
)

type manifest struct {
	Name string `yaml:"name"`
}

// Resolve returns "import 'package:<name>/<path>';" for filePath when the
// nearest manifest with a sibling lib/ directory contains it. It returns
// false when no manifest is found, the file is outside lib/, the manifest has
// no usable name, or any I/O fails.
func Resolve(filePath string) (string, bool) {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return "", false
	}

	pkgDir, ok := findPackageDir(filepath.Dir(abs))
	if !ok {
		return "", false
	}

	rel, err := filepath.Rel(filepath.Join(pkgDir, SourceRoot), abs)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}

	name, ok := readPackageName(filepath.Join(pkgDir, ManifestFile))
	if !ok {
		return "", false
	}

	stmt := fmt.Sprintf("import 'package:%s/%s';", name, filepath.ToSlash(rel))
	output.Debug("resolved package import", "file", abs, "import", stmt)
	return stmt, true
}

// Relative returns an import of target expressed relative to fromDir.
func Relative(fromDir, target string) string {
	rel, err := filepath.Rel(fromDir, target)
	if err != nil {
		rel = filepath.Base(target)
	}
	return fmt.Sprintf("import '%s';", filepath.ToSlash(rel))
}

// ResolveOrRelative prefers a package import and falls back to a relative one.
func ResolveOrRelative(fromDir, target string) string {
	if stmt, ok := Resolve(target); ok {
		return stmt
	}
	return Relative(fromDir, target)
}

// findPackageDir walks upward from dir to the nearest directory holding both
// a manifest file and a lib/ directory.
func findPackageDir(dir string) (string, bool) {
	for {
		if isFile(filepath.Join(dir, ManifestFile)) && isDir(filepath.Join(dir, SourceRoot)) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func readPackageName(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		output.Debug("unparseable manifest", "path", path, "error", err)
		return "", false
	}
	name := strings.TrimSpace(m.Name)
	if name == "" || strings.ContainsAny(name, " /\t'\"") {
		return "", false
	}
	return name, true
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
