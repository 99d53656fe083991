package lifecycle

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"sort"

	oerrors "github.com/easyrx/rxmvvm/internal/errors"
	"github.com/easyrx/rxmvvm/internal/importpath"
	"github.com/easyrx/rxmvvm/internal/output"
	"github.com/easyrx/rxmvvm/internal/scan"
)

// Mode selects how a page obtains lifecycle hooks.
type Mode string

const (
	// ModeNone leaves the page on the plain State base class.
	ModeNone Mode = "none"

	// ModeBuiltin reuses a lifecycle file from the project or generates one.
	ModeBuiltin Mode = "builtin"

	// ModeExternal links a user-chosen lifecycle file, falling back to
	// ModeBuiltin when that file declares no lifecycle class.
	ModeExternal Mode = "external"
)

// Modes returns every valid mode.
func Modes() []string {
	return []string{string(ModeNone), string(ModeBuiltin), string(ModeExternal)}
}

// ParseMode converts s into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeNone, ModeBuiltin, ModeExternal:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown route lifecycle mode %q", s)
	}
}

// Lifecycle file naming.
const (
	FileBase        = "route_lifecycle_state"
	FileExt         = ".dart"
	DefaultFileName = FileBase + FileExt

	// DefaultBaseClass is used when no lifecycle support is requested.
	DefaultBaseClass = "State"
)

var lifecycleFileRe = regexp.MustCompile(`^` + FileBase + `(_\d+)?\` + FileExt + `$`)

// IsLifecycleFileName reports whether name is the default lifecycle file
// name, optionally carrying a numeric suffix.
func IsLifecycleFileName(name string) bool {
	return lifecycleFileRe.MatchString(name)
}

// Outcome is the terminal state of a resolution.
type Outcome int

const (
	// OutcomeTrivial means no lifecycle support.
	OutcomeTrivial Outcome = iota

	// OutcomeReuse means an existing file provides the base class.
	OutcomeReuse

	// OutcomeGenerate means a new lifecycle file must be written.
	OutcomeGenerate
)

func (o Outcome) String() string {
	switch o {
	case OutcomeTrivial:
		return "trivial"
	case OutcomeReuse:
		return "reuse"
	case OutcomeGenerate:
		return "generate"
	default:
		return "unknown"
	}
}

// Decision is the resolved lifecycle handling for one request.
type Decision struct {
	Outcome Outcome

	// BaseClass is the class the page state extends.
	BaseClass string

	// Import is the import line for BaseClass, empty when none is needed.
	Import string

	// OutputName is the file to generate in the destination directory.
	// Set only for OutcomeGenerate.
	OutputName string

	// SourcePath is the reused file. Set only for OutcomeReuse.
	SourcePath string
}

// Request is the input to Resolve.
type Request struct {
	Mode         Mode
	ExternalPath string
	DestDir      string
}

// Resolver turns a Request into a Decision.
type Resolver struct {
	scanner  *scan.Scanner
	detector *Detector
	limit    int
}

// NewResolver creates a Resolver. limit caps the lifecycle candidate scan.
func NewResolver(scanner *scan.Scanner, detector *Detector, limit int) *Resolver {
	if limit <= 0 {
		limit = scan.DefaultLifecycleMaxResults
	}
	return &Resolver{scanner: scanner, detector: detector, limit: limit}
}

// Resolve computes the lifecycle decision for req.
func (r *Resolver) Resolve(ctx context.Context, req Request) (Decision, error) {
	destDir, err := filepath.Abs(req.DestDir)
	if err != nil {
		return Decision{}, fmt.Errorf("resolving destination directory: %w", err)
	}

	switch req.Mode {
	case ModeNone, "":
		return Decision{Outcome: OutcomeTrivial, BaseClass: DefaultBaseClass}, nil

	case ModeBuiltin:
		return r.resolveBuiltin(ctx, destDir)

	case ModeExternal:
		if req.ExternalPath == "" {
			return Decision{}, oerrors.NewPreconditionError(
				"external lifecycle mode requires a file path", "",
				"Pass --external <file> or set defaultExternalRoutePath.")
		}
		external, err := filepath.Abs(req.ExternalPath)
		if err != nil {
			return Decision{}, fmt.Errorf("resolving external lifecycle path: %w", err)
		}
		if class, ok := r.detector.DetectFile(external); ok {
			return reuse(destDir, external, class), nil
		}
		output.Warn("external file declares no lifecycle class, using builtin handling", "path", external)
		return r.resolveBuiltin(ctx, destDir)

	default:
		return Decision{}, fmt.Errorf("unknown route lifecycle mode %q", req.Mode)
	}
}

func (r *Resolver) resolveBuiltin(ctx context.Context, destDir string) (Decision, error) {
	global, err := r.scanner.FindMatching(ctx, IsLifecycleFileName, r.limit)
	if err != nil {
		return Decision{}, fmt.Errorf("scanning for lifecycle files: %w", err)
	}

	for _, candidate := range orderCandidates(destDir, localCandidates(destDir), global) {
		if class, ok := r.detector.DetectFile(candidate); ok {
			return reuse(destDir, candidate, class), nil
		}
	}

	name := DefaultFileName
	if scan.ExistsLocally(destDir, DefaultFileName) || len(global) > 0 {
		taken := make([]string, 0, len(global))
		for _, p := range global {
			taken = append(taken, filepath.Base(p))
		}
		name = NextFreeName(destDir, FileBase, FileExt, taken...)
	}

	output.Debug("generating lifecycle file", "dir", destDir, "name", name, "observed", len(global))
	return Decision{
		Outcome:    OutcomeGenerate,
		BaseClass:  AppPageLifecycleState,
		Import:     importpath.Relative(destDir, filepath.Join(destDir, name)),
		OutputName: name,
	}, nil
}

func reuse(destDir, source, class string) Decision {
	output.Debug("reusing lifecycle file", "path", source, "class", class)
	return Decision{
		Outcome:    OutcomeReuse,
		BaseClass:  class,
		Import:     importpath.ResolveOrRelative(destDir, source),
		SourcePath: source,
	}
}

// localCandidates lists lifecycle files in destDir itself, so a reusable
// sibling is found even when no project root is known.
func localCandidates(destDir string) []string {
	entries, err := os.ReadDir(destDir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.Type().IsRegular() && IsLifecycleFileName(e.Name()) {
			out = append(out, filepath.Join(destDir, e.Name()))
		}
	}
	return out
}

// orderCandidates puts files in destDir first, then everything else, each
// group sorted, without duplicates.
func orderCandidates(destDir string, local, global []string) []string {
	seen := make(map[string]bool, len(local)+len(global))
	var near, far []string
	for _, p := range append(append([]string{}, local...), global...) {
		p = filepath.Clean(p)
		if seen[p] {
			continue
		}
		seen[p] = true
		if filepath.Dir(p) == destDir {
			near = append(near, p)
		} else {
			far = append(far, p)
		}
	}
	sort.Strings(near)
	sort.Strings(far)
	return append(near, far...)
}

// NextFreeName returns base_N+ext for the lowest N >= 2 that does not exist
// in dir and is not one of the taken basenames.
func NextFreeName(dir, base, ext string, taken ...string) string {
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", base, i, ext)
		if !scan.ExistsLocally(dir, candidate) && !slices.Contains(taken, candidate) {
			return candidate
		}
	}
}
