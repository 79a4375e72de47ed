// Package gen contains small text-generation helpers shared across
// codegen/* emitters: a name-uniquification Scope and doc-comment
// wrapping, generalized from internal/go/gen (which the codegen/golang
// emitter still uses directly, since its Scope needs to be seeded with
// actual Go keywords rather than a caller-supplied set).
package gen

import "strings"

// UniqueName appends underscores to name until none of filters reports
// a collision, mirroring internal/go/gen.UniqueName.
func UniqueName(name string, filters ...func(string) bool) string {
	filter := func(name string) bool {
		for _, f := range filters {
			if f(name) {
				return true
			}
		}
		return false
	}
	for filter(name) {
		name += "_"
	}
	return name
}

// Scope tracks the identifiers already declared in one lexical scope
// (a generated function body, struct, or file) plus its parent scopes,
// so each emitter can hand out collision-free local names.
type Scope interface {
	HasName(name string) bool
	UniqueName(name string) string
}

type scope struct {
	parent Scope
	names  map[string]bool
}

// NewScope returns a Scope nested inside parent. A nil parent means no
// enclosing scope other than the reserved set passed to it directly.
func NewScope(parent Scope) Scope {
	if parent == nil {
		parent = emptyScope{}
	}
	return &scope{parent: parent, names: make(map[string]bool)}
}

func (s *scope) HasName(name string) bool {
	return s.names[name] || s.parent.HasName(name)
}

func (s *scope) UniqueName(name string) string {
	name = UniqueName(name, s.HasName)
	s.names[name] = true
	return name
}

type emptyScope struct{}

func (emptyScope) HasName(string) bool      { return false }
func (emptyScope) UniqueName(n string) string { return n }

// Reserved returns a Scope pre-seeded with words, for a target
// language's keyword/predeclared-identifier set (see internal/names).
// Its UniqueName panics; only HasName is meaningful on the root scope.
func Reserved(words map[string]bool) Scope {
	return reservedScope{words: words}
}

type reservedScope struct{ words map[string]bool }

func (r reservedScope) HasName(name string) bool { return r.words[name] }
func (r reservedScope) UniqueName(string) string {
	panic("gen: cannot declare a name directly in a Reserved scope")
}

const (
	// LineLength is the column at which FormatDocComments wraps.
	LineLength = 80
)

// FormatDocComments wraps docs (plain text, no leading comment markers)
// into one or more lines no longer than LineLength, each prefixed with
// prefix (e.g. "// " for Rust/C/Swift/Kotlin/Go, "/// " for Rust doc
// comments). indent, if non-empty, is written before each prefixed line.
func FormatDocComments(docs, prefix, indent string) string {
	if docs == "" {
		return ""
	}
	var b strings.Builder
	lineLen := 0
	startLine := func() {
		b.WriteString(indent)
		b.WriteString(prefix)
		lineLen = len(indent) + len(prefix)
	}
	startLine()
	for _, c := range docs {
		switch c {
		case '\n':
			b.WriteRune('\n')
			lineLen = 0
			continue
		case ' ':
			if lineLen == len(indent)+len(prefix) {
				continue // drop leading spaces on a fresh line
			}
			if lineLen > LineLength {
				b.WriteRune('\n')
				startLine()
				continue
			}
		}
		if lineLen == 0 {
			startLine()
		}
		b.WriteRune(c)
		lineLen++
	}
	if lineLen != 0 {
		b.WriteRune('\n')
	}
	return b.String()
}
