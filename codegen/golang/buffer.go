// Package golang emits a single cgo-based bindings.go: idiomatic Go
// value types (plus cm.Option/cm.Flags reused directly from this
// module's own cm package where their shape genuinely fits), and one
// wrapper function per exported WIT function that lowers Go arguments
// to the C ABI, invokes the native symbol, deep-copies the C result
// into Go-owned memory, and frees the C allocation before returning.
// goType/toWire/fromWire here play the role typeRep/lowerType/liftType
// play for a Wasm import/export boundary, but cross a cgo call instead.
package golang

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
		b.WriteString("\t")
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
