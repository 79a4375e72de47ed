package kotlin

import (
	"fmt"
	"strings"

	"github.com/schell/witffi/internal/config"
	"github.com/schell/witffi/internal/names"
	"github.com/schell/witffi/wire"
	"github.com/schell/witffi/wit"
)

// kotlinType returns the idiomatic Kotlin type for a WIT type occurring
// in a data class field or a bridge-function signature.
func kotlinType(t wit.Type) (string, error) {
	switch v := t.(type) {
	case wit.Bool:
		return "Boolean", nil
	case wit.S8:
		return "Byte", nil
	case wit.U8:
		return "UByte", nil
	case wit.S16:
		return "Short", nil
	case wit.U16:
		return "UShort", nil
	case wit.S32:
		return "Int", nil
	case wit.U32:
		return "UInt", nil
	case wit.S64:
		return "Long", nil
	case wit.U64:
		return "ULong", nil
	case wit.F32:
		return "Float", nil
	case wit.F64:
		return "Double", nil
	case wit.Char:
		return "Char", nil
	case wit.String:
		return "String", nil
	case *wit.TypeDef:
		if v.Name != nil {
			return names.TypeName(names.Kotlin, *v.Name), nil
		}
		switch k := v.Kind.(type) {
		case *wit.List:
			elem, err := kotlinType(k.Type)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("List<%s>", elem), nil
		case *wit.Option:
			elem, err := kotlinType(k.Type)
			if err != nil {
				return "", err
			}
			return elem + "?", nil
		case *wit.Result:
			ok, errT := "Unit", "Unit"
			if k.OK != nil {
				var err error
				if ok, err = kotlinType(k.OK); err != nil {
					return "", err
				}
			}
			if k.Err != nil {
				var err error
				if errT, err = kotlinType(k.Err); err != nil {
					return "", err
				}
			}
			return fmt.Sprintf("WitResult<%s, %s>", ok, errT), nil
		default:
			return "", fmt.Errorf("kotlin: no idiomatic type for anonymous %T", k)
		}
	default:
		return "", fmt.Errorf("kotlin: no idiomatic type for %T", t)
	}
}

// emitTypes writes the idiomatic Kotlin domain type for every named
// wire type (data class / sealed class / enum class / inline value
// class, exactly the shapes witffi-kotlin's package doc comment
// enumerates), followed — for every heap-carrying type — by a thin
// Handle wrapper class around the opaque jlong the JNI bridge returns.
//
// Decoding a Handle's fields back into its domain data class is
// intentionally out of scope for this pass (mirroring
// codegen/rust.emitFromFFI's decision to treat tagged unions as
// return-only): the Handle exists so a caller can pass a structured
// result to a later call or release it deterministically, without this
// generator having to invent a per-field JNI accessor protocol.
func emitTypes(b *buffer, cfg config.Config, model *wire.Model) error {
	for _, nt := range model.Types {
		if err := emitOneType(b, cfg, nt); err != nil {
			return fmt.Errorf("type %s: %w", nt.WitName, err)
		}
	}
	return nil
}

func emitOneType(b *buffer, cfg config.Config, nt *wire.NamedType) error {
	name := names.TypeName(names.Kotlin, nt.WitName)

	switch kind := nt.TypeDef.Kind.(type) {
	case *wit.Record:
		var fields []string
		for _, f := range kind.Fields {
			ft, err := kotlinType(f.Type)
			if err != nil {
				ft = "Unit"
			}
			fields = append(fields, fmt.Sprintf("val %s: %s", names.ValueIdent(names.Kotlin, f.Name), ft))
		}
		b.Linef("data class %s(%s)", name, strings.Join(fields, ", "))
		b.Blank()

	case *wit.Tuple:
		var elems []string
		for _, t := range kind.Types {
			ft, err := kotlinType(t)
			if err != nil {
				return err
			}
			elems = append(elems, ft)
		}
		b.Linef("typealias %s = List<Any?> // (%s)", name, strings.Join(elems, ", "))
		b.Blank()

	case *wit.Variant:
		b.Block(fmt.Sprintf("sealed class %s {", name), "}", func() {
			for _, c := range kind.Cases {
				caseName := names.TypeName(names.Kotlin, c.Name)
				if c.Type == nil {
					b.Linef("object %s : %s()", caseName, name)
					continue
				}
				ft, err := kotlinType(c.Type)
				if err != nil {
					ft = "Unit"
				}
				b.Linef("data class %s(val value: %s) : %s()", caseName, ft, name)
			}
		})
		b.Blank()

	case *wit.Result:
		ok, errT := "Unit", "Unit"
		if kind.OK != nil {
			ok, _ = kotlinType(kind.OK)
		}
		if kind.Err != nil {
			errT, _ = kotlinType(kind.Err)
		}
		b.Linef("typealias %s = WitResult<%s, %s>", name, ok, errT)
		b.Blank()

	case *wit.Enum:
		b.Block(fmt.Sprintf("enum class %s {", name), "}", func() {
			var cases []string
			for _, c := range kind.Cases {
				cases = append(cases, names.TypeName(names.Kotlin, c.Name))
			}
			b.Line(strings.Join(cases, ", "))
		})
		b.Blank()

	case *wit.Flags:
		underlying := flagsUnderlyingKotlin(len(kind.Flags))
		b.Linef("@JvmInline")
		b.Block(fmt.Sprintf("value class %s(val rawValue: %s) {", name, underlying), "}", func() {
			b.Block("companion object {", "}", func() {
				for i, f := range kind.Flags {
					flagName := names.ValueIdent(names.Kotlin, f.Name)
					b.Linef("val %s = %s((1 shl %d).to%s())", flagName, name, i, underlying)
				}
			})
		})
		b.Blank()

	case *wit.Option:
		ft, err := kotlinType(kind.Type)
		if err != nil {
			return err
		}
		b.Linef("typealias %s = %s?", name, ft)
		b.Blank()

	case *wit.List:
		ft, err := kotlinType(kind.Type)
		if err != nil {
			return err
		}
		b.Linef("typealias %s = List<%s>", name, ft)
		b.Blank()

	default:
		return fmt.Errorf("no Kotlin value type for %T", kind)
	}

	if nt.HeapCarrier {
		emitHandleClass(b, cfg, nt, name)
	}
	return nil
}

// emitHandleClass writes the AutoCloseable wrapper around the opaque
// jlong a structured result's JNI entry point returns (see
// codegen/rust's jlong-handle design and its paired <method>Free
// native).
func emitHandleClass(b *buffer, cfg config.Config, nt *wire.NamedType, name string) {
	handleName := name + "Handle"
	freeNative := fmt.Sprintf("%sFree", names.TypeName(names.Kotlin, nt.WitName))
	b.Blank()
	b.Block(fmt.Sprintf("class %s internal constructor(private val handle: Long) : AutoCloseable {", handleName), "}", func() {
		b.Linef("override fun close() = Bindings.%s(handle)", freeNative)
	})
	b.Blank()
}

func flagsUnderlyingKotlin(n int) string {
	switch {
	case n <= 8:
		return "UByte"
	case n <= 16:
		return "UShort"
	case n <= 32:
		return "UInt"
	default:
		return "ULong"
	}
}
