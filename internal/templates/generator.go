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
	"github.com/easyrx/rxmvvm/internal/naming"
	"github.com/easyrx/rxmvvm/internal/output"
	"github.com/easyrx/rxmvvm/internal/scan"
)

// Options configures a Generator.
type Options struct {
	Scanner  *scan.Scanner
	Resolver *lifecycle.Resolver
	Detector *lifecycle.Detector
	Sources  SourceProvider

	// GlobalCheckEnabled turns on the project-wide conflict scan.
	GlobalCheckEnabled bool

	// GlobalCheckRoutesOnly skips the page and view-model conflict scan,
	// leaving only lifecycle suffixing.
	GlobalCheckRoutesOnly bool
}

// Generator instantiates templates into a destination directory.
type Generator struct {
	opts Options
}

// NewGenerator creates a new generator with the given options.
func NewGenerator(opts Options) *Generator {
	if opts.Scanner == nil {
		opts.Scanner = scan.New(scan.Options{})
	}
	if opts.Detector == nil {
		opts.Detector = lifecycle.NewDetector(0)
	}
	if opts.Resolver == nil {
		opts.Resolver = lifecycle.NewResolver(opts.Scanner, opts.Detector, 0)
	}
	return &Generator{opts: opts}
}

type plannedFile struct {
	spec TemplateSpec
	name string
	src  []byte
}

// Instantiate checks for collisions, resolves route lifecycle handling and
// writes every selected file. Collisions abort before anything is written.
// Each file is written whole or not at all; files already written by the
// request are not rolled back when a later one fails.
func (g *Generator) Instantiate(ctx context.Context, req GenerationRequest) (*GenerateResult, error) {
	nameRaw := strings.TrimSpace(req.Name)
	if nameRaw == "" {
		return nil, oerrors.NewPreconditionError("name must not be empty", "", "Pass a page name, e.g. 'rxmvvm generate user_profile'.")
	}
	snake := naming.SnakeCase(nameRaw)
	if snake == "" {
		return nil, oerrors.NewPreconditionError(
			fmt.Sprintf("name %q has no letters or digits", nameRaw), "",
			"File names are derived from the letters and digits of the name.")
	}

	destDir, err := checkDestDir(req.DestDir)
	if err != nil {
		return nil, err
	}

	kinds, err := selectKinds(req.Kinds)
	if err != nil {
		return nil, oerrors.NewPreconditionError(err.Error(), "", "")
	}

	mode := req.Mode
	if mode == "" {
		mode = lifecycle.ModeNone
		if hasKind(kinds, KindLifecycle) {
			mode = lifecycle.ModeBuiltin
		}
	}
	if mode == lifecycle.ModeNone && hasKind(kinds, KindLifecycle) {
		return nil, oerrors.NewPreconditionError(
			"the lifecycle template needs a route mode", "",
			"Use --route builtin or --route external.")
	}
	if mode == lifecycle.ModeExternal && req.ExternalPath == "" {
		return nil, oerrors.NewPreconditionError(
			"external route mode requires a lifecycle file", "",
			"Pass --external <file> or set defaultExternalRoutePath.")
	}

	log := output.DirLogger(destDir)

	// Page and view-model names. The lifecycle name is settled by the resolver.
	var planned []plannedFile
	for _, k := range kinds {
		if k == KindLifecycle {
			continue
		}
		spec, _ := Lookup(k)
		planned = append(planned, plannedFile{spec: spec, name: spec.OutputName(snake)})
	}

	if err := g.checkLocal(destDir, planned); err != nil {
		return nil, err
	}
	if err := g.checkGlobal(ctx, planned); err != nil {
		return nil, err
	}

	decision, err := g.opts.Resolver.Resolve(ctx, lifecycle.Request{
		Mode:         mode,
		ExternalPath: req.ExternalPath,
		DestDir:      destDir,
	})
	if err != nil {
		return nil, err
	}
	log.Debug("route lifecycle resolved", "outcome", decision.Outcome, "base", decision.BaseClass)

	if decision.Outcome == lifecycle.OutcomeGenerate {
		spec, _ := Lookup(KindLifecycle)
		planned = append(planned, plannedFile{spec: spec, name: decision.OutputName})
	}

	// Every source is loaded before the first write.
	for i := range planned {
		src, err := g.opts.Sources.Source(planned[i].spec.Kind)
		if err != nil {
			return nil, err
		}
		planned[i].src = src
	}

	values := Values{
		NameRaw:        nameRaw,
		NameSnake:      snake,
		Name:           naming.TitleCase(nameRaw),
		RouteImport:    decision.Import,
		BaseStateClass: decision.BaseClass,
	}

	result := &GenerateResult{DestDir: destDir, Decision: decision}
	for _, f := range planned {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		v := values
		v.Page = f.spec.Kind == KindPage
		renderer := NewRenderer(v)

		path := filepath.Join(destDir, f.name)
		if err := writeFileAtomic(path, func(w io.Writer) error {
			return renderer.Render(w, f.src)
		}); err != nil {
			return result, fmt.Errorf("writing %s: %w", f.name, err)
		}

		log.Debug("created file", "name", f.name, "kind", f.spec.Kind)
		result.Files = append(result.Files, GeneratedFile{Kind: f.spec.Kind, Name: f.name, Path: path})
	}

	return result, nil
}

func (g *Generator) checkLocal(destDir string, planned []plannedFile) error {
	var existing []string
	for _, f := range planned {
		if scan.ExistsLocally(destDir, f.name) {
			existing = append(existing, f.name)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return oerrors.NewCollisionError(
		fmt.Sprintf("files already exist: %s", strings.Join(existing, ", ")),
		destDir, existing,
		"Choose another name or remove the existing files.")
}

func (g *Generator) checkGlobal(ctx context.Context, planned []plannedFile) error {
	if !g.opts.GlobalCheckEnabled || g.opts.GlobalCheckRoutesOnly || len(planned) == 0 {
		return nil
	}

	names := make([]string, 0, len(planned))
	for _, f := range planned {
		names = append(names, f.name)
	}

	report, err := g.opts.Scanner.FindGlobalConflicts(ctx, names)
	if err != nil {
		return fmt.Errorf("checking project for name conflicts: %w", err)
	}
	if len(report) == 0 {
		return nil
	}

	// Keep the request's file order.
	var conflicting, details []string
	for _, n := range names {
		paths, ok := report[n]
		if !ok {
			continue
		}
		conflicting = append(conflicting, n)
		details = append(details, fmt.Sprintf("%s: %s", n, strings.Join(paths, ", ")))
	}
	return oerrors.NewCollisionError(
		fmt.Sprintf("global conflict, already present in the project: %s", strings.Join(conflicting, ", ")),
		g.opts.Scanner.Root(), details,
		"Choose another name, or disable the check with --no-global-check.")
}

func checkDestDir(dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", oerrors.NewPreconditionError("destination directory must not be empty", "", "")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving destination directory: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", oerrors.NewPreconditionError("destination directory does not exist", abs,
			"Create the directory first or pass --dir.")
	}
	if !info.IsDir() {
		return "", oerrors.NewPreconditionError("destination is not a directory", abs, "")
	}
	return abs, nil
}

func selectKinds(kinds []Kind) ([]Kind, error) {
	if len(kinds) == 0 {
		return DefaultKinds(), nil
	}
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, string(k))
	}
	return ParseKinds(names)
}

func hasKind(kinds []Kind, k Kind) bool {
	for _, have := range kinds {
		if have == k {
			return true
		}
	}
	return false
}
