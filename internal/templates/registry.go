package templates

import (
	"fmt"
	"strings"

	"github.com/easyrx/rxmvvm/internal/lifecycle"
)

// Kind identifies a category of generated file.
type Kind string

const (
	// KindPage is the page widget.
	KindPage Kind = "page"

	// KindStateHolder is the page's view-model.
	KindStateHolder Kind = "state-holder"

	// KindLifecycle is the route lifecycle base file.
	KindLifecycle Kind = "lifecycle"
)

// TemplateSpec describes one template kind. Specs are static.
type TemplateSpec struct {
	Kind Kind

	// Source is the template file name inside the cache directory.
	Source string

	// Description is shown by `rxmvvm templates list`.
	Description string

	output func(snake string) string
}

// OutputName returns the file this kind produces for a snake-cased name.
func (s TemplateSpec) OutputName(snake string) string {
	return s.output(snake)
}

var specs = []TemplateSpec{
	{
		Kind:        KindPage,
		Source:      "apppage.dart.tpl",
		Description: "Page widget and its State",
		output:      func(snake string) string { return snake + "_page.dart" },
	},
	{
		Kind:        KindStateHolder,
		Source:      "viewmodel.dart.tpl",
		Description: "View-model holding the page state",
		output:      func(snake string) string { return snake + "_viewmodel.dart" },
	},
	{
		Kind:        KindLifecycle,
		Source:      "route_lifecycle_state.dart.tpl",
		Description: "Route lifecycle base State classes",
		output:      func(string) string { return lifecycle.DefaultFileName },
	},
}

// Specs returns every template spec in generation order.
func Specs() []TemplateSpec {
	return append([]TemplateSpec(nil), specs...)
}

// Lookup returns the spec for kind.
func Lookup(kind Kind) (TemplateSpec, error) {
	for _, s := range specs {
		if s.Kind == kind {
			return s, nil
		}
	}
	return TemplateSpec{}, fmt.Errorf("unknown template kind %q; valid kinds: %s", kind, strings.Join(Kinds(), ", "))
}

// Kinds returns every kind name.
func Kinds() []string {
	out := make([]string, 0, len(specs))
	for _, s := range specs {
		out = append(out, string(s.Kind))
	}
	return out
}

// DefaultKinds are generated when a request names none.
func DefaultKinds() []Kind {
	return []Kind{KindPage, KindStateHolder}
}

// ParseKinds converts kind names, rejecting unknown ones and dropping
// duplicates.
func ParseKinds(names []string) ([]Kind, error) {
	seen := make(map[Kind]bool, len(names))
	var out []Kind
	for _, n := range names {
		k := Kind(strings.TrimSpace(n))
		if _, err := Lookup(k); err != nil {
			return nil, err
		}
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out, nil
}
