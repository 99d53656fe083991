package templates

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	oerrors "github.com/easyrx/rxmvvm/internal/errors"
	"github.com/easyrx/rxmvvm/internal/lifecycle"
	"github.com/easyrx/rxmvvm/internal/output"
	"github.com/easyrx/rxmvvm/internal/scan"
)

// AddLifecycleFile writes a standalone route lifecycle file. When global
// checking is on and files of the same name exist elsewhere in the project,
// the first one declaring a State subclass is reused and nothing is written;
// if none qualifies, a suffixed file is written instead.
func (g *Generator) AddLifecycleFile(ctx context.Context, req AddLifecycleRequest) (*AddLifecycleResult, error) {
	destDir, err := checkDestDir(req.DestDir)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.FileName)
	if name == "" {
		name = lifecycle.DefaultFileName
	}
	if strings.ContainsAny(name, `/\`) {
		return nil, oerrors.NewPreconditionError(
			fmt.Sprintf("file name %q must not contain a path separator", name), destDir,
			"Use --dir to choose the directory.")
	}
	if !strings.HasSuffix(name, lifecycle.FileExt) {
		name += lifecycle.FileExt
	}

	if scan.ExistsLocally(destDir, name) {
		return nil, oerrors.NewCollisionError(
			fmt.Sprintf("file already exists: %s", name), destDir, []string{name}, "")
	}

	if g.opts.GlobalCheckEnabled && g.opts.Scanner.Root() != "" {
		matches, err := g.opts.Scanner.FindMatching(ctx, func(n string) bool { return n == name }, 0)
		if err != nil {
			return nil, fmt.Errorf("scanning for %s: %w", name, err)
		}
		if len(matches) > 0 {
			for _, m := range matches {
				if class, ok := reusableClass(m); ok {
					output.Info("reusing existing lifecycle file", "path", m, "class", class)
					return &AddLifecycleResult{Path: m, Reused: true, BaseClass: class}, nil
				}
			}
			suffixed := lifecycle.NextFreeName(destDir, strings.TrimSuffix(name, lifecycle.FileExt), lifecycle.FileExt)
			output.Debug("same-named files are not reusable, suffixing", "name", suffixed, "matches", len(matches))
			name = suffixed
		}
	}

	src, err := g.opts.Sources.Source(KindLifecycle)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(destDir, name)
	renderer := NewRenderer(Values{})
	if err := writeFileAtomic(path, func(w io.Writer) error {
		return renderer.Render(w, src)
	}); err != nil {
		return nil, fmt.Errorf("writing %s: %w", name, err)
	}
	return &AddLifecycleResult{Path: path}, nil
}

func reusableClass(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	if class, ok := lifecycle.DetectBaseClass(data); ok {
		return class, true
	}
	return lifecycle.DetectStateClass(data)
}
