// Package swift emits a Swift module (Bindings.swift plus a
// module.modulemap) that calls through to a witffi-generated C ABI:
// idiomatic value types, memory-safe wrapper functions using
// defer-based cleanup, grounded in
// original_source/crates/witffi-swift/src/generate.rs's SwiftConfig
// (the one concrete field the prototype had defined before the
// generator itself was left as a stub) and the shapes its package doc
// comment describes.
package swift

import (
	"fmt"
	"strings"
)

type buffer struct {
	strings.Builder
	indent int
}

func (b *buffer) WriteIndent() {
	for i := 0; i < b.indent; i++ {
		b.WriteString("    ")
	}
}

func (b *buffer) Line(ss ...string) {
	b.WriteIndent()
	for _, s := range ss {
		b.WriteString(s)
	}
	b.WriteString("\n")
}

func (b *buffer) Linef(format string, args ...any) {
	b.Line(fmt.Sprintf(format, args...))
}

func (b *buffer) Blank() { b.WriteString("\n") }

func (b *buffer) Block(open, close string, fn func()) {
	b.Line(open)
	b.indent++
	fn()
	b.indent--
	b.Line(close)
}
