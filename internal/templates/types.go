package templates

import (
	"github.com/easyrx/rxmvvm/internal/lifecycle"
)

// SourceProvider supplies template source text by kind.
type SourceProvider interface {
	// Source returns the template for kind, or an error wrapping
	// errors.ErrTemplateMissing when it is absent.
	Source(kind Kind) ([]byte, error)
}

// GenerationRequest is one generate invocation.
type GenerationRequest struct {
	// Name is the user-supplied name in any casing.
	Name string

	// DestDir must be an existing directory.
	DestDir string

	// Kinds selects the templates. Empty means DefaultKinds.
	Kinds []Kind

	// Mode is the route lifecycle mode. Empty means builtin when
	// KindLifecycle is selected, else none.
	Mode lifecycle.Mode

	// ExternalPath is the lifecycle file for lifecycle.ModeExternal.
	ExternalPath string
}

// GeneratedFile is one file written by a request.
type GeneratedFile struct {
	Kind Kind

	// Name is the file name inside the destination directory.
	Name string

	// Path is the absolute path written.
	Path string
}

// GenerateResult contains the outcome of a generation.
type GenerateResult struct {
	// DestDir is the absolute destination directory.
	DestDir string

	// Files lists the files written, in generation order.
	Files []GeneratedFile

	// Decision is the route lifecycle decision the page was rendered with.
	Decision lifecycle.Decision
}

// AddLifecycleRequest is one `rxmvvm lifecycle add` invocation.
type AddLifecycleRequest struct {
	DestDir string

	// FileName defaults to route_lifecycle_state.dart. ".dart" is appended
	// when missing.
	FileName string
}

// AddLifecycleResult reports what AddLifecycleFile did.
type AddLifecycleResult struct {
	// Path is the file written, or the reused file when Reused is set.
	Path string

	// Reused is set when a project file was adopted instead of writing one.
	Reused bool

	// BaseClass is the lifecycle class the reused file declares.
	BaseClass string
}
