package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strings"
)

// File represents a single generated Go (or assembly) source file
// belonging to a [Package]. Fields are filled in piecemeal by a
// generator and assembled into final source by [File.Bytes].
type File struct {
	// Name is the file's base name, e.g. "wallclock.wit.go".
	Name string

	// Package is the owning package, used to resolve the package
	// clause and to give Import a shared alias scope with the rest of
	// the package's files.
	Package *Package

	// GeneratedBy, if set, produces a "Code generated by ... ."
	// header comment.
	GeneratedBy string

	// GoBuild, if set, produces a "//go:build ..." constraint line.
	GoBuild string

	// PackageDocs is documentation attached to the package clause.
	PackageDocs string

	// Header is raw text written after the package clause and before
	// imports.
	Header string

	// Imports maps an import path to its local alias. Populate via
	// [File.Import] rather than directly, so aliases stay unique
	// within the file.
	Imports map[string]string

	// Content is the file's body, written verbatim after imports.
	Content []byte

	// Trailer is raw text appended after Content.
	Trailer string
}

// IsGo returns true if f is a Go source file (as opposed to e.g. a
// TinyGo/WASI assembly stub).
func (f *File) IsGo() bool {
	return strings.HasSuffix(f.Name, ".go")
}

// HasContent returns true if f would emit anything beyond an empty
// package clause: a populated Content, PackageDocs, Header, Trailer,
// or at least one blank import (imported for side effects only, alias
// "_"), since those alone justify writing the file.
func (f *File) HasContent() bool {
	if len(f.Content) > 0 {
		return true
	}
	if f.PackageDocs != "" || f.Header != "" || f.Trailer != "" {
		return true
	}
	for _, alias := range f.Imports {
		if alias == "_" {
			return true
		}
	}
	return false
}

// Import records that f imports the package at selector (see
// [ParseSelector]), returning the local identifier to refer to it by.
// Calling Import again with the same import path returns the same
// alias; a name colliding with a Go keyword or an alias already in use
// elsewhere in the file is disambiguated with a trailing underscore.
func (f *File) Import(selector string) string {
	importPath, name := ParseSelector(selector)
	if alias, ok := f.Imports[importPath]; ok {
		return alias
	}
	taken := func(n string) bool {
		if IsReserved(n) {
			return true
		}
		for _, alias := range f.Imports {
			if alias == n {
				return true
			}
		}
		return false
	}
	alias := UniqueName(name, taken)
	f.Imports[importPath] = alias
	return alias
}

// Bytes renders f's final source, gofmt'd via [format.Source] for Go
// files; assembly and other non-Go files are returned as-is.
func (f *File) Bytes() ([]byte, error) {
	var b bytes.Buffer

	if f.GoBuild != "" {
		fmt.Fprintf(&b, "//go:build %s\n\n", f.GoBuild)
	}
	if f.GeneratedBy != "" {
		fmt.Fprintf(&b, "// Code generated by %s. DO NOT EDIT.\n\n", f.GeneratedBy)
	}

	if f.IsGo() {
		if f.PackageDocs != "" {
			b.WriteString(FormatDocComments(f.PackageDocs, false))
		}
		name := ""
		if f.Package != nil {
			name = f.Package.Name
		}
		fmt.Fprintf(&b, "package %s\n\n", name)
	}

	if f.Header != "" {
		b.WriteString(f.Header)
		b.WriteString("\n")
	}

	if f.IsGo() && len(f.Imports) > 0 {
		paths := make([]string, 0, len(f.Imports))
		for p := range f.Imports {
			paths = append(paths, p)
		}
		sort.Strings(paths)

		b.WriteString("import (\n")
		for _, p := range paths {
			alias := f.Imports[p]
			_, defaultName := ParseSelector(p)
			if alias == defaultName {
				fmt.Fprintf(&b, "\t%q\n", p)
			} else {
				fmt.Fprintf(&b, "\t%s %q\n", alias, p)
			}
		}
		b.WriteString(")\n\n")
	}

	b.Write(f.Content)

	if f.Trailer != "" {
		b.WriteString("\n")
		b.WriteString(f.Trailer)
	}

	if !f.IsGo() {
		return b.Bytes(), nil
	}
	return format.Source(b.Bytes())
}
