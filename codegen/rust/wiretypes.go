package rust

import (
	"fmt"

	"github.com/schell/witffi/internal/config"
	"github.com/schell/witffi/internal/names"
	"github.com/schell/witffi/wire"
)

// emitWireTypes writes the #[repr(C)] struct/enum declarations every
// to_ffi/from_ffi function and extern "C" wrapper in this file assumes
// already exist, grounded directly in examples/eip681-ffi/src/lib.rs's
// FfiTransactionRequest / FfiTransactionRequestTag /
// FfiTransactionRequestNativePayload (a library built against witffi
// `include!`s this generated code before implementing its trait).
func emitWireTypes(b *buffer, cfg config.Config, model *wire.Model) error {
	for _, nt := range model.Types {
		if err := emitOneWireType(b, cfg, nt); err != nil {
			return fmt.Errorf("wire type %s: %w", nt.WitName, err)
		}
	}
	return nil
}

// wireFieldType returns the Rust type of a field/case position at the
// wire boundary: the #[repr(C)] counterpart to rustType.
func wireFieldType(cfg config.Config, proj wire.Projection) string {
	switch proj.Kind {
	case wire.Value:
		return wireValueRust(proj.Primitive)
	case wire.Slice:
		return "witffi_types::FfiByteSlice"
	case wire.Buffer:
		return "witffi_types::FfiByteBuffer"
	case wire.StructValue:
		return ffiTypeName(cfg, proj.RefName)
	case wire.OwnedPointer:
		return "*mut " + ffiTypeName(cfg, proj.RefName)
	default:
		return "u8"
	}
}

func emitOneWireType(b *buffer, cfg config.Config, nt *wire.NamedType) error {
	name := ffiTypeName(cfg, nt.WitName)

	switch shape := nt.Shape.(type) {
	case *wire.Struct:
		b.Line("#[repr(C)]")
		b.Block(fmt.Sprintf("pub struct %s {", name), "}", func() {
			for _, f := range shape.Fields {
				b.Linef("pub %s: %s,", f.Name, wireFieldType(cfg, f.Projection))
			}
		})
		b.Blank()

	case *wire.TaggedUnion:
		tagName := name + "Tag"
		discRustType := wireValueRust(shape.DiscriminantKind)
		b.Linef("#[repr(%s)]", discRustType)
		b.Line("#[derive(Debug, Clone, Copy, PartialEq, Eq)]")
		b.Block(fmt.Sprintf("pub enum %s {", tagName), "}", func() {
			for _, uc := range shape.Cases {
				b.Linef("%s = %d,", names.TypeName(names.Rust, uc.Name), uc.Discriminant)
			}
		})
		b.Blank()

		for _, uc := range shape.Cases {
			if uc.Payload == nil {
				continue
			}
			payloadName := name + names.TypeName(names.Rust, uc.Name) + "Payload"
			b.Line("#[repr(C)]")
			b.Block(fmt.Sprintf("pub struct %s {", payloadName), "}", func() {
				b.Linef("pub value: %s,", ffiTypeName(cfg, uc.Payload.RefName))
			})
			b.Blank()
		}

		b.Line("#[repr(C)]")
		b.Block(fmt.Sprintf("pub struct %s {", name), "}", func() {
			b.Linef("pub tag: %s,", tagName)
			for _, uc := range shape.Cases {
				field := names.ValueIdent(names.Rust, uc.Name)
				if uc.Payload == nil {
					b.Linef("pub %s: *mut std::ffi::c_void,", field)
					continue
				}
				payloadName := name + names.TypeName(names.Rust, uc.Name) + "Payload"
				b.Linef("pub %s: *mut %s,", field, payloadName)
			}
		})
		b.Blank()

	case *wire.CEnum:
		discRustType := wireValueRust(wire.DiscriminantKind(len(shape.Variants)))
		b.Linef("#[repr(%s)]", discRustType)
		b.Line("#[derive(Debug, Clone, Copy, PartialEq, Eq)]")
		b.Block(fmt.Sprintf("pub enum %s {", name), "}", func() {
			for i, v := range shape.Variants {
				b.Linef("%s = %d,", names.TypeName(names.Rust, v), i)
			}
		})
		b.Blank()

	case *wire.Wrapper:
		b.Line("#[repr(transparent)]")
		b.Line("#[derive(Debug, Clone, Copy)]")
		b.Linef("pub struct %s(pub %s);", name, flagsUnderlyingRust(len(shape.Flags)))
		b.Blank()

	case *wire.OptionWrapper:
		b.Line("#[repr(C)]")
		b.Block(fmt.Sprintf("pub struct %s {", name), "}", func() {
			b.Line("pub has_value: bool,")
			b.Linef("pub value: %s,", wireFieldType(cfg, shape.Elem))
		})
		b.Blank()

	default:
		return fmt.Errorf("no wire type declaration for %T", shape)
	}
	return nil
}
