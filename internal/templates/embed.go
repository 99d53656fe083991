// Package templates instantiates page, view-model and route lifecycle files
// from user-editable templates.
package templates

import (
	"embed"
	"io/fs"
)

//go:embed defaults/*.tpl
var defaultsFS embed.FS

// Defaults returns the bundled template set, rooted so that each spec's
// Source is a top-level file.
func Defaults() fs.FS {
	sub, err := fs.Sub(defaultsFS, "defaults")
	if err != nil {
		panic(err)
	}
	return sub
}
