package templates

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	oerrors "github.com/easyrx/rxmvvm/internal/errors"
	"github.com/easyrx/rxmvvm/internal/output"
)

// backupTimeFormat is the timestamp suffix of snapshot directories.
const backupTimeFormat = "20060102_150405"

// CacheOptions configures a Cache.
type CacheOptions struct {
	// Dir is the versioned cache directory, e.g. ~/.rxmvvm/templates_1.0.0.
	Dir string

	// BackupsDir holds snapshots, e.g. ~/.rxmvvm/templates_backups.
	BackupsDir string

	// Version names snapshots.
	Version string

	// Defaults seeds the cache. Nil means the bundled templates.
	Defaults fs.FS

	// Now stamps snapshots. Nil means time.Now.
	Now func() time.Time
}

// Cache is the user-editable template directory for one version.
type Cache struct {
	dir        string
	backupsDir string
	version    string
	defaults   fs.FS
	now        func() time.Time
}

// NewCache creates a Cache. Nothing is touched on disk until Ensure.
func NewCache(opts CacheOptions) *Cache {
	c := &Cache{
		dir:        opts.Dir,
		backupsDir: opts.BackupsDir,
		version:    opts.Version,
		defaults:   opts.Defaults,
		now:        opts.Now,
	}
	if c.defaults == nil {
		c.defaults = Defaults()
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Ensure populates the cache from the defaults when the directory does not
// exist. An existing directory is left alone, including user edits and
// deletions.
func (c *Cache) Ensure() error {
	if _, err := os.Stat(c.dir); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking template cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.dir), 0o755); err != nil {
		return fmt.Errorf("creating template cache parent: %w", err)
	}
	if err := os.CopyFS(c.dir, c.defaults); err != nil {
		return fmt.Errorf("populating template cache: %w", err)
	}
	output.Debug("template cache populated", "dir", c.dir)
	return nil
}

// Source returns the cached template for kind.
func (c *Cache) Source(kind Kind) ([]byte, error) {
	spec, err := Lookup(kind)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(c.dir, spec.Source)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, oerrors.NewTemplateMissingError(spec.Source, c.dir)
		}
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}
	return data, nil
}

// Reset deletes the cache and repopulates it from the defaults.
func (c *Cache) Reset() error {
	if err := os.RemoveAll(c.dir); err != nil {
		return fmt.Errorf("removing template cache: %w", err)
	}
	return c.Ensure()
}

// Backup copies the cache to a timestamped snapshot and returns its path.
// It returns "" when there is no cache to back up.
func (c *Cache) Backup() (string, error) {
	if _, err := os.Stat(c.dir); errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}

	if err := os.MkdirAll(c.backupsDir, 0o755); err != nil {
		return "", fmt.Errorf("creating backups directory: %w", err)
	}

	base := fmt.Sprintf("templates_%s_%s", c.version, c.now().Format(backupTimeFormat))
	snapshot := filepath.Join(c.backupsDir, base)
	for i := 2; ; i++ {
		if _, err := os.Stat(snapshot); errors.Is(err, fs.ErrNotExist) {
			break
		}
		snapshot = filepath.Join(c.backupsDir, fmt.Sprintf("%s_%d", base, i))
	}

	if err := os.CopyFS(snapshot, os.DirFS(c.dir)); err != nil {
		return "", fmt.Errorf("copying template cache to %s: %w", snapshot, err)
	}
	output.Debug("template cache backed up", "snapshot", snapshot)
	return snapshot, nil
}

// Snapshot is one backup directory.
type Snapshot struct {
	Name    string
	Path    string
	ModTime time.Time
}

// ListBackups returns snapshots, newest first.
func (c *Cache) ListBackups() ([]Snapshot, error) {
	entries, err := os.ReadDir(c.backupsDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading backups directory: %w", err)
	}

	var out []Snapshot
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), "templates_") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Snapshot{
			Name:    e.Name(),
			Path:    filepath.Join(c.backupsDir, e.Name()),
			ModTime: info.ModTime(),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ModTime.Equal(out[j].ModTime) {
			return out[i].ModTime.After(out[j].ModTime)
		}
		return out[i].Name > out[j].Name
	})
	return out, nil
}

// Restore replaces the cache with a snapshot. snapshot may be a path or the
// name of a directory under the backups directory.
func (c *Cache) Restore(snapshot string) error {
	path := snapshot
	if !strings.ContainsRune(snapshot, filepath.Separator) && !strings.Contains(snapshot, "/") {
		path = filepath.Join(c.backupsDir, snapshot)
	}

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return oerrors.NewNotFoundError(
			fmt.Sprintf("backup %q not found", snapshot), c.backupsDir,
			"Run 'rxmvvm templates list' to see available backups.")
	}

	if err := os.RemoveAll(c.dir); err != nil {
		return fmt.Errorf("removing template cache: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.dir), 0o755); err != nil {
		return fmt.Errorf("creating template cache parent: %w", err)
	}
	if err := os.CopyFS(c.dir, os.DirFS(path)); err != nil {
		return fmt.Errorf("restoring template cache from %s: %w", path, err)
	}
	output.Debug("template cache restored", "from", path)
	return nil
}

// BackupAndReset snapshots the cache and then resets it. The snapshot path
// is "" when there was nothing to back up.
func (c *Cache) BackupAndReset() (string, error) {
	snapshot, err := c.Backup()
	if err != nil {
		return "", err
	}
	return snapshot, c.Reset()
}

// SyncResult reports what SyncVersion did.
type SyncResult struct {
	// Upgraded is set when the running version differs from the last one.
	Upgraded bool

	// Refreshed is set when the cache was reset to the defaults.
	Refreshed bool

	// Snapshot is the backup taken before refreshing, if any.
	Snapshot string
}

// SyncVersion refreshes the cache the first time a new version runs. When
// autoUpdate is off, or the version is unchanged, nothing is touched. A
// failed backup is logged and does not block the refresh.
func (c *Cache) SyncVersion(lastVersion string, autoUpdate bool) (SyncResult, error) {
	if lastVersion == c.version {
		return SyncResult{}, nil
	}

	result := SyncResult{Upgraded: true}
	if !autoUpdate {
		return result, nil
	}

	snapshot, err := c.Backup()
	if err != nil {
		output.Warn("backing up template cache before upgrade", "err", err)
	}
	result.Snapshot = snapshot

	if err := c.Reset(); err != nil {
		return result, err
	}
	result.Refreshed = true
	return result, nil
}
