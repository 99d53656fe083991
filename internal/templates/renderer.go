package templates

import (
	"io"
	"strings"
)

// Placeholder tokens recognised in template sources.
const (
	PlaceholderNameRaw        = "$nameRaw"
	PlaceholderNameSnake      = "$nameSnake"
	PlaceholderName           = "$name"
	PlaceholderRouteImport    = "$routeLifecycleImport"
	PlaceholderBaseStateClass = "$baseStateClass"
)

// Values are the substitutions for one rendered file.
type Values struct {
	// NameRaw is the name as the user typed it.
	NameRaw string

	// NameSnake is the snake_case form used in file names.
	NameSnake string

	// Name is the TitleCase form used in identifiers.
	Name string

	// RouteImport and BaseStateClass are substituted only when Page is set.
	RouteImport    string
	BaseStateClass string
	Page           bool
}

// Renderer substitutes placeholders in a single left-to-right pass, so text
// inserted for one token is never rescanned for another.
type Renderer struct {
	replacer *strings.Replacer
}

// NewRenderer creates a renderer for v.
func NewRenderer(v Values) *Renderer {
	// Longer tokens sharing the $name prefix are listed first; at equal
	// positions the replacer prefers earlier pairs.
	pairs := []string{
		PlaceholderNameRaw, v.NameRaw,
		PlaceholderNameSnake, v.NameSnake,
	}
	if v.Page {
		pairs = append(pairs,
			PlaceholderRouteImport, v.RouteImport,
			PlaceholderBaseStateClass, v.BaseStateClass,
		)
	}
	pairs = append(pairs, PlaceholderName, v.Name)

	return &Renderer{replacer: strings.NewReplacer(pairs...)}
}

// Render writes the substituted form of src to w.
func (r *Renderer) Render(w io.Writer, src []byte) error {
	_, err := r.replacer.WriteString(w, string(src))
	return err
}
