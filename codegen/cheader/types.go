package cheader

import (
	"fmt"

	"github.com/schell/witffi/internal/config"
	"github.com/schell/witffi/internal/names"
	"github.com/schell/witffi/wire"
	"github.com/schell/witffi/wit"
)

// cType returns the C type spelling for a wire Projection in field or
// parameter position.
func cType(cfg config.Config, proj wire.Projection) string {
	switch proj.Kind {
	case wire.Value:
		return cPrimitive(proj.Primitive)
	case wire.Slice:
		return "FfiByteSlice"
	case wire.Buffer:
		return "FfiByteBuffer"
	case wire.StructValue:
		return ffiTypeName(cfg, proj.RefName)
	case wire.OwnedPointer:
		return ffiTypeName(cfg, proj.RefName) + " *"
	default:
		return "void *"
	}
}

func cPrimitive(p wire.PrimitiveKind) string {
	switch p {
	case wire.Bool:
		return "bool"
	case wire.S8:
		return "int8_t"
	case wire.U8:
		return "uint8_t"
	case wire.S16:
		return "int16_t"
	case wire.U16:
		return "uint16_t"
	case wire.S32:
		return "int32_t"
	case wire.U32:
		return "uint32_t"
	case wire.S64:
		return "int64_t"
	case wire.U64:
		return "uint64_t"
	case wire.F32:
		return "float"
	case wire.F64:
		return "double"
	case wire.Char:
		return "uint32_t"
	default:
		return "uint8_t"
	}
}

func cDiscriminantType(k wire.PrimitiveKind) string {
	switch k {
	case wire.U8:
		return "uint8_t"
	case wire.U16:
		return "uint16_t"
	default:
		return "uint32_t"
	}
}

// emitTypeDecl writes the typedef struct/enum declaration for one named
// wire type: a tagged union gets a discriminant field plus one named
// nullable pointer per case, each pointing at its own single-field
// Payload struct (grounded in examples/eip681-ffi/src/lib.rs's
// FfiTransactionRequest).
func emitTypeDecl(b *buffer, cfg config.Config, nt *wire.NamedType) error {
	name := ffiTypeName(cfg, nt.WitName)

	switch shape := nt.Shape.(type) {
	case *wire.Struct:
		b.Linef("typedef struct %s {", name)
		for _, f := range shape.Fields {
			b.Linef("    %s %s;", cType(cfg, f.Projection), names.ValueIdent(names.C, f.Name))
		}
		b.Linef("} %s;", name)
		b.Blank()

	case *wire.TaggedUnion:
		tagName := name + "Tag"
		b.Linef("typedef enum %s {", tagName)
		for _, uc := range shape.Cases {
			b.Linef("    %s = %d,", names.EnumDiscriminant(tagName, uc.Name), uc.Discriminant)
		}
		b.Linef("} %s;", tagName)
		b.Blank()

		for _, uc := range shape.Cases {
			if uc.Payload == nil {
				continue
			}
			payloadName := name + names.TypeName(names.C, uc.Name) + "Payload"
			b.Linef("typedef struct %s {", payloadName)
			b.Linef("    %s value;", ffiTypeName(cfg, uc.Payload.RefName))
			b.Linef("} %s;", payloadName)
			b.Blank()
		}

		b.Linef("typedef struct %s {", name)
		b.Linef("    %s tag;", tagName)
		for _, uc := range shape.Cases {
			field := names.ValueIdent(names.C, uc.Name)
			if uc.Payload == nil {
				b.Linef("    void *%s; /* always NULL */", field)
				continue
			}
			payloadName := name + names.TypeName(names.C, uc.Name) + "Payload"
			b.Linef("    %s *%s;", payloadName, field)
		}
		b.Linef("} %s;", name)
		b.Blank()

	case *wire.CEnum:
		b.Linef("typedef enum %s {", name)
		for i, v := range shape.Variants {
			b.Linef("    %s = %d,", names.EnumDiscriminant(name, v), i)
		}
		b.Linef("} %s;", name)
		b.Blank()

	case *wire.Wrapper:
		b.Linef("typedef %s %s; /* bit flags */", cPrimitive(shape.Underlying), name)
		for i, f := range shape.Flags {
			b.Linef("#define %s (1u << %d)", names.EnumDiscriminant(name, f), i)
		}
		b.Blank()

	case *wire.OptionWrapper:
		b.Linef("typedef struct %s {", name)
		b.Linef("    bool has_value;")
		b.Linef("    %s value;", cType(cfg, shape.Elem))
		b.Linef("} %s;", name)
		b.Blank()

	default:
		return fmt.Errorf("no C declaration for %T", shape)
	}
	return nil
}

// emitFunctionDecl writes the extern "C" function declaration for one
// exported WIT function, using the same CFuncName/wire projection
// conventions as codegen/rust's extern wrappers so the two targets stay
// ABI-compatible.
func emitFunctionDecl(b *buffer, cfg config.Config, wf worldFunction, model *wire.Model) error {
	cFunc := names.CFuncName(cfg.CFunctionPrefix, wf.Interface, wf.Func.Name)

	var params []string
	for _, p := range wf.Func.Params {
		proj, err := wire.ProjectParam(p.Type, model)
		if err != nil {
			return fmt.Errorf("param %q: %w", p.Name, err)
		}
		params = append(params, fmt.Sprintf("%s %s", cType(cfg, proj), names.ValueIdent(names.C, p.Name)))
	}
	if len(params) == 0 {
		params = []string{"void"}
	}

	retType := "void"
	if len(wf.Func.Results) == 1 {
		proj, err := wire.ProjectResult(wf.Func.Results[0].Type, model)
		if err != nil {
			return fmt.Errorf("result: %w", err)
		}
		retType = cType(cfg, proj)
	}

	b.Linef("%s %s(%s);", retType, cFunc, joinC(params))
	return nil
}

func joinC(ss []string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

// worldFunction pairs a WIT function with its owning interface name,
// mirroring
// codegen/rust.worldFunction but kept package-local since cheader has
// no trait to name methods after.
type worldFunction struct {
	Interface string
	Func      *wit.Function
}

func worldFunctions(w *wit.World) []worldFunction {
	var out []worldFunction
	w.Exports.All()(func(_ string, item wit.WorldItem) bool {
		switch v := item.(type) {
		case *wit.Function:
			out = append(out, worldFunction{Func: v})
		case *wit.InterfaceRef:
			iface := v.Interface
			ifaceName := ""
			if iface.Name != nil {
				ifaceName = *iface.Name
			}
			iface.Functions.All()(func(_ string, f *wit.Function) bool {
				out = append(out, worldFunction{Interface: ifaceName, Func: f})
				return true
			})
		}
		return true
	})
	return out
}
