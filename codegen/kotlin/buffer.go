// Package kotlin emits a single Bindings.kt: data classes for records,
// sealed class hierarchies for variants, enum classes for enums, inline
// value classes for flags, and a bridge object declaring the
// `external fun`s produced by codegen/rust's register_jni! macro,
// grounded in witffi-kotlin/src/lib.rs's package doc comment.
package kotlin

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
