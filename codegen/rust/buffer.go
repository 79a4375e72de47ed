// Package rust emits Rust FFI scaffolding (idiomatic value types, a
// trait library authors implement, and register_ffi!/register_jni!
// macro-generated extern "C" wrappers) from a projected [wire.Model].
package rust

import (
	"fmt"
	"strings"

	"github.com/schell/witffi/internal/stringio"
)

// buffer is a small append-only text builder, grounded in the
// teacher's internal/go/gen.File / stringio.Write idiom: composition
// via repeated WriteString calls rather than fmt.Sprintf
// concatenation, so large files build without intermediate string
// copies.
type buffer struct {
	strings.Builder
	indent int
}

// WriteIndent writes four spaces per b.indent level, the unit of
// indentation throughout every emitted Rust file.
func (b *buffer) WriteIndent() {
	for i := 0; i < b.indent; i++ {
		stringio.Write(b, "    ")
	}
}

// Line writes ss, then a newline, prefixed by the current indent.
func (b *buffer) Line(ss ...string) {
	b.WriteIndent()
	stringio.Write(b, ss...)
	b.WriteString("\n")
}

// Linef is Line with Sprintf-style formatting, for the rare case where
// composing via WriteString would be more awkward than a format
// string (e.g. interpolating a single numeric literal).
func (b *buffer) Linef(format string, args ...any) {
	b.Line(fmt.Sprintf(format, args...))
}

// Blank writes an empty line.
func (b *buffer) Blank() { b.WriteString("\n") }

// Block writes open, increments the indent level for the duration of
// fn, then restores it and writes close, mirroring a `{ ... }` block.
func (b *buffer) Block(open, close string, fn func()) {
	b.Line(open)
	b.indent++
	fn()
	b.indent--
	b.Line(close)
}
