// Package scan finds files whose names would collide with generated output,
// either in a single directory or anywhere below a project root.
package scan

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/easyrx/rxmvvm/internal/output"
)

// DefaultExclude skips version control, dependency and build output trees.
var DefaultExclude = []string{"**/{.git,node_modules,.dart_tool,build,out}/**"}

const (
	// DefaultMaxResults caps a by-name search.
	DefaultMaxResults = 200

	// DefaultLifecycleMaxResults caps the lifecycle candidate search.
	DefaultLifecycleMaxResults = 400
)

// ConflictReport maps a candidate output filename to the root-relative paths
// where a file of that name already exists. Filenames without matches are
// absent.
type ConflictReport map[string][]string

// Options configures a Scanner.
type Options struct {
	// Root is the project root. Empty disables every global search.
	Root string

	// Exclude holds doublestar patterns matched against slash-separated
	// root-relative paths.
	Exclude []string

	// MaxResults bounds FindGlobal. Zero means DefaultMaxResults.
	MaxResults int
}

// Scanner performs bounded searches below a project root.
type Scanner struct {
	root       string
	exclude    []string
	maxResults int
}

// New creates a Scanner.
func New(opts Options) *Scanner {
	limit := opts.MaxResults
	if limit <= 0 {
		limit = DefaultMaxResults
	}
	exclude := opts.Exclude
	if exclude == nil {
		exclude = DefaultExclude
	}
	return &Scanner{root: opts.Root, exclude: exclude, maxResults: limit}
}

// Root returns the configured project root, or "" when there is none.
func (s *Scanner) Root() string {
	return s.root
}

// ExistsLocally reports whether dir/filename exists. Any access failure is
// treated as absence.
func ExistsLocally(dir, filename string) bool {
	_, err := os.Stat(filepath.Join(dir, filename))
	return err == nil
}

// FindGlobal returns root-relative paths of files named exactly filename.
// A result of length MaxResults means "at least this many".
func (s *Scanner) FindGlobal(ctx context.Context, filename string) ([]string, error) {
	abs, err := s.FindMatching(ctx, func(name string) bool { return name == filename }, s.maxResults)
	if err != nil {
		return nil, err
	}
	rel := make([]string, 0, len(abs))
	for _, p := range abs {
		rel = append(rel, s.relative(p))
	}
	return rel, nil
}

// FindGlobalConflicts runs FindGlobal for every filename and keeps the ones
// that matched at least once.
func (s *Scanner) FindGlobalConflicts(ctx context.Context, filenames []string) (ConflictReport, error) {
	report := make(ConflictReport)
	for _, fn := range filenames {
		matches, err := s.FindGlobal(ctx, fn)
		if err != nil {
			return nil, err
		}
		if len(matches) > 0 {
			report[fn] = matches
		}
	}
	return report, nil
}

// FindMatching walks the project root and returns absolute paths of regular
// files whose base name satisfies match, stopping after limit results.
// Unreadable directories are skipped.
func (s *Scanner) FindMatching(ctx context.Context, match func(name string) bool, limit int) ([]string, error) {
	if s.root == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = s.maxResults
	}

	var found []string
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			output.Debug("skipping unreadable path", "path", p, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel := s.relative(p)
		if d.IsDir() {
			if rel != "." && s.excludedDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !match(d.Name()) || s.excluded(rel) {
			return nil
		}

		found = append(found, p)
		if len(found) >= limit {
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	output.Debug("project scan complete", "root", s.root, "matches", len(found), "cap", limit)
	return found, nil
}

func (s *Scanner) relative(p string) string {
	rel, err := filepath.Rel(s.root, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}

func (s *Scanner) excluded(rel string) bool {
	for _, pattern := range s.exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// excludedDir prunes a directory when anything inside it would be excluded.
func (s *Scanner) excludedDir(rel string) bool {
	return s.excluded(path.Join(rel, "_"))
}
