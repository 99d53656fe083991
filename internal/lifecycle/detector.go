// Package lifecycle decides how a generated page obtains its route-lifecycle
// base class: not at all, by reusing a lifecycle file already in the project,
// or by generating a new one.
package lifecycle

import (
	"bytes"
	"os"
	"regexp"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/easyrx/rxmvvm/internal/output"
)

// Recognised lifecycle base classes.
const (
	RouteLifecycleState   = "RouteLifecycleState"
	AppPageLifecycleState = "AppPageLifecycleState"
)

// lifecycleClassRe matches a class declaration whose header, before the
// opening brace, references a lifecycle base after "extends". Generic
// parameters, line breaks and with/implements clauses may sit in between.
var lifecycleClassRe = regexp.MustCompile(
	`\bclass\s+(\w+)[^{;]*?\bextends\b[^{;]*?\b(?:` + RouteLifecycleState + `|` + AppPageLifecycleState + `)\b`)

// DetectBaseClass returns the name of the first class in contents that
// derives from a recognised lifecycle base. Binary content never matches.
func DetectBaseClass(contents []byte) (string, bool) {
	if bytes.IndexByte(contents, 0) >= 0 {
		return "", false
	}
	m := lifecycleClassRe.FindSubmatch(contents)
	if m == nil {
		return "", false
	}
	return string(m[1]), true
}

// stateClassRe matches a single-line declaration extending any generic
// State subclass, e.g. "class X extends AppPageLifecycleState<T>".
var stateClassRe = regexp.MustCompile(`\bclass\s+(\w+)\s+extends\s+[^\n{]*State\s*<`)

// DetectStateClass is a looser check than DetectBaseClass: it accepts any
// class extending a generic State type.
func DetectStateClass(contents []byte) (string, bool) {
	if bytes.IndexByte(contents, 0) >= 0 {
		return "", false
	}
	m := stateClassRe.FindSubmatch(contents)
	if m == nil {
		return "", false
	}
	return string(m[1]), true
}

type detection struct {
	size    int64
	modTime time.Time
	class   string
	found   bool
}

// Detector runs DetectBaseClass on files and remembers the outcome for
// unchanged files.
type Detector struct {
	cache *lru.Cache[string, detection]
}

// NewDetector creates a Detector holding up to size cached results.
func NewDetector(size int) *Detector {
	if size <= 0 {
		size = 512
	}
	cache, err := lru.New[string, detection](size)
	if err != nil {
		// only returned for non-positive sizes
		panic(err)
	}
	return &Detector{cache: cache}
}

// DetectFile reads path and runs DetectBaseClass on it. Unreadable files do
// not match.
func (d *Detector) DetectFile(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}

	if hit, ok := d.cache.Get(path); ok && hit.size == info.Size() && hit.modTime.Equal(info.ModTime()) {
		return hit.class, hit.found
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		output.Debug("lifecycle candidate unreadable", "path", path, "error", err)
		return "", false
	}

	class, found := DetectBaseClass(contents)
	d.cache.Add(path, detection{size: info.Size(), modTime: info.ModTime(), class: class, found: found})
	output.Debug("lifecycle candidate inspected", "path", path, "class", class, "reusable", found)
	return class, found
}
