// Package cheader emits the C header half of witffi's output: a
// byte-identical static preamble (witffi_types.h, embedded via
// //go:embed) plus a per-input ffi.h declaring every projected type and
// exported function, grounded directly in
// original_source/crates/witffi-types/src/lib.rs's two C-ABI shapes.
package cheader

import (
	_ "embed"
	"fmt"

	"github.com/schell/witffi/internal/config"
	"github.com/schell/witffi/internal/diag"
	"github.com/schell/witffi/internal/names"
	"github.com/schell/witffi/wire"
	"github.com/schell/witffi/wit"
)

// TypesHeader is the static witffi_types.h every generated ffi.h
// #includes: FfiByteSlice, FfiByteBuffer, and witffi_free_byte_buffer,
// identical across every generated library regardless of input.
//
//go:embed witffi_types.h
var TypesHeader string

// buffer is a tiny line-oriented text builder, mirroring
// codegen/rust.buffer (no shared package: C emission has no use for
// Rust's block-indent convention beyond simple braces).
type buffer struct {
	lines []string
}

func (b *buffer) Line(s string)               { b.lines = append(b.lines, s) }
func (b *buffer) Linef(f string, a ...any)     { b.Line(fmt.Sprintf(f, a...)) }
func (b *buffer) Blank()                       { b.lines = append(b.lines, "") }
func (b *buffer) String() string {
	out := ""
	for _, l := range b.lines {
		out += l + "\n"
	}
	return out
}

// Generate returns the contents of the per-input ffi.h for res: typedef
// struct/enum declarations for every named wire type in topological
// order, followed by one function declaration per exported function.
func Generate(res *wit.Resolve, cfg config.Config) (string, error) {
	world, err := res.World()
	if err != nil {
		return "", &diag.InputError{Err: err}
	}
	reg, err := wit.NewTypeRegistry(world)
	if err != nil {
		return "", &diag.ProjectionError{Err: err}
	}
	model, err := wire.Project(reg)
	if err != nil {
		return "", &diag.ProjectionError{Err: err}
	}

	var b buffer
	b.Line("#ifndef WITFFI_FFI_H")
	b.Line("#define WITFFI_FFI_H")
	b.Blank()
	b.Line("#include <stdbool.h>")
	b.Line("#include <stddef.h>")
	b.Line("#include <stdint.h>")
	b.Line("#include \"witffi_types.h\"")
	b.Blank()
	b.Line("#ifdef __cplusplus")
	b.Line("extern \"C\" {")
	b.Line("#endif")
	b.Blank()

	for _, nt := range model.Types {
		if err := emitForwardDecl(&b, cfg, nt); err != nil {
			return "", &diag.ProjectionError{TypeName: nt.WitName, Err: err}
		}
	}
	b.Blank()
	for _, nt := range model.Types {
		if err := emitTypeDecl(&b, cfg, nt); err != nil {
			return "", &diag.ProjectionError{TypeName: nt.WitName, Err: err}
		}
	}

	for _, wf := range worldFunctions(world) {
		if err := emitFunctionDecl(&b, cfg, wf, model); err != nil {
			return "", &diag.ProjectionError{Err: err}
		}
	}

	for _, nt := range model.Types {
		if !nt.HeapCarrier {
			continue
		}
		b.Linef("void %s_free_%s(%s v);",
			cfg.CFunctionPrefix, names.ValueIdent(names.C, nt.WitName), ffiTypeName(cfg, nt.WitName))
	}
	b.Blank()

	b.Line("#ifdef __cplusplus")
	b.Line("}")
	b.Line("#endif")
	b.Blank()
	b.Line("#endif /* WITFFI_FFI_H */")

	return b.String(), nil
}

func ffiTypeName(cfg config.Config, witName string) string {
	return names.CTypeName(cfg.CTypePrefix, witName)
}

// emitForwardDecl declares a tagged-union's pointer-target payload
// structs ahead of the union itself, since C requires every pointee
// type to be named before use.
func emitForwardDecl(b *buffer, cfg config.Config, nt *wire.NamedType) error {
	union, ok := nt.Shape.(*wire.TaggedUnion)
	if !ok {
		return nil
	}
	for _, uc := range union.Cases {
		if uc.Payload == nil {
			continue
		}
		payloadName := ffiTypeName(cfg, nt.WitName) + names.TypeName(names.C, uc.Name) + "Payload"
		b.Linef("typedef struct %s %s;", payloadName, payloadName)
	}
	return nil
}
