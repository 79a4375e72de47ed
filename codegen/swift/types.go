package swift

import (
	"fmt"
	"strings"

	"github.com/schell/witffi/internal/config"
	"github.com/schell/witffi/internal/names"
	"github.com/schell/witffi/wire"
	"github.com/schell/witffi/wit"
)

// swiftType returns the idiomatic Swift type for a WIT type occurring
// in wrapper-facing (non-wire) position.
func swiftType(t wit.Type) (string, error) {
	switch v := t.(type) {
	case wit.Bool:
		return "Bool", nil
	case wit.S8:
		return "Int8", nil
	case wit.U8:
		return "UInt8", nil
	case wit.S16:
		return "Int16", nil
	case wit.U16:
		return "UInt16", nil
	case wit.S32:
		return "Int32", nil
	case wit.U32:
		return "UInt32", nil
	case wit.S64:
		return "Int64", nil
	case wit.U64:
		return "UInt64", nil
	case wit.F32:
		return "Float", nil
	case wit.F64:
		return "Double", nil
	case wit.Char:
		return "Unicode.Scalar", nil
	case wit.String:
		return "String", nil
	case *wit.TypeDef:
		if v.Name != nil {
			return names.TypeName(names.Swift, *v.Name), nil
		}
		switch k := v.Kind.(type) {
		case *wit.List:
			elem, err := swiftType(k.Type)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("[%s]", elem), nil
		case *wit.Option:
			elem, err := swiftType(k.Type)
			if err != nil {
				return "", err
			}
			return elem + "?", nil
		case *wit.Result:
			ok, errT := "Void", "Void"
			if k.OK != nil {
				var err error
				if ok, err = swiftType(k.OK); err != nil {
					return "", err
				}
			}
			if k.Err != nil {
				var err error
				if errT, err = swiftType(k.Err); err != nil {
					return "", err
				}
			}
			return fmt.Sprintf("WitResult<%s, %s>", ok, errT), nil
		default:
			return "", fmt.Errorf("swift: no idiomatic type for anonymous %T", k)
		}
	default:
		return "", fmt.Errorf("swift: no idiomatic type for %T", t)
	}
}

// emitTypes writes the idiomatic Swift value type for every named wire
// type, each paired with an `init(fromC:)` lifting the C struct
// produced by the Rust library, and, for shapes that can legally occur
// in parameter position, a `toC()` lowering it back.
func emitTypes(b *buffer, cfg config.Config, model *wire.Model) error {
	for _, nt := range model.Types {
		if err := emitOneType(b, cfg, nt); err != nil {
			return fmt.Errorf("type %s: %w", nt.WitName, err)
		}
	}
	return nil
}

func ffiTypeName(cfg config.Config, witName string) string {
	return names.CTypeName(cfg.CTypePrefix, witName)
}

func emitOneType(b *buffer, cfg config.Config, nt *wire.NamedType) error {
	name := names.TypeName(names.Swift, nt.WitName)
	cName := ffiTypeName(cfg, nt.WitName)

	switch kind := nt.TypeDef.Kind.(type) {
	case *wit.Record:
		b.Block(fmt.Sprintf("public struct %s {", name), "}", func() {
			for _, f := range kind.Fields {
				ft, err := swiftType(f.Type)
				if err != nil {
					ft = "Never"
				}
				b.Linef("public let %s: %s", names.ValueIdent(names.Swift, f.Name), ft)
			}
			b.Blank()
			shape := nt.Shape.(*wire.Struct)
			b.Block(fmt.Sprintf("init(fromC c: %s) {", cName), "}", func() {
				for _, f := range shape.Fields {
					b.Linef("self.%s = %s", names.ValueIdent(names.Swift, f.Name), fieldFromC(f.Projection, "c."+f.Name))
				}
			})
		})
		b.Blank()

	case *wit.Tuple:
		var elems []string
		for i, t := range kind.Types {
			ft, err := swiftType(t)
			if err != nil {
				return err
			}
			elems = append(elems, fmt.Sprintf("_ v%d: %s", i, ft))
		}
		b.Linef("public typealias %s = (%s)", name, strings.Join(elems, ", "))
		b.Blank()

	case *wit.Variant:
		b.Block(fmt.Sprintf("public indirect enum %s {", name), "}", func() {
			for _, c := range kind.Cases {
				caseName := names.ValueIdent(names.Swift, c.Name)
				if c.Type == nil {
					b.Linef("case %s", caseName)
					continue
				}
				ft, err := swiftType(c.Type)
				if err != nil {
					ft = "Never"
				}
				b.Linef("case %s(%s)", caseName, ft)
			}
			b.Blank()
			union := nt.Shape.(*wire.TaggedUnion)
			b.Block(fmt.Sprintf("init(fromC c: %s) {", cName), "}", func() {
				b.Block("switch c.tag {", "}", func() {
					for _, uc := range union.Cases {
						caseName := names.ValueIdent(names.Swift, uc.Name)
						discName := names.EnumDiscriminant(cName+"Tag", uc.Name)
						if uc.Payload == nil {
							b.Linef("case %s: self = .%s", discName, caseName)
							continue
						}
						b.Linef("case %s: self = .%s(%s)", discName, caseName,
							fieldFromC(*uc.Payload, fmt.Sprintf("c.%s!.pointee.value", caseName)))
					}
					b.Linef("default: fatalError(\"unreachable %s discriminant\")", cName)
				})
			})
		})
		b.Blank()

	case *wit.Result:
		ok, errT := "Void", "Void"
		if kind.OK != nil {
			ok, _ = swiftType(kind.OK)
		}
		if kind.Err != nil {
			errT, _ = swiftType(kind.Err)
		}
		b.Linef("public typealias %s = WitResult<%s, %s>", name, ok, errT)
		b.Blank()

	case *wit.Enum:
		b.Block(fmt.Sprintf("public enum %s: UInt32, CaseIterable {", name), "}", func() {
			for i, c := range kind.Cases {
				b.Linef("case %s = %d", names.ValueIdent(names.Swift, c.Name), i)
			}
		})
		b.Blank()

	case *wit.Flags:
		underlying := flagsUnderlyingSwift(len(kind.Flags))
		b.Block(fmt.Sprintf("public struct %s: OptionSet {", name), "}", func() {
			b.Linef("public let rawValue: %s", underlying)
			b.Linef("public init(rawValue: %s) { self.rawValue = rawValue }", underlying)
			b.Blank()
			for i, f := range kind.Flags {
				flagName := names.ValueIdent(names.Swift, f.Name)
				b.Linef("public static let %s = %s(rawValue: 1 << %d)", flagName, name, i)
			}
		})
		b.Blank()

	case *wit.Option:
		ft, err := swiftType(kind.Type)
		if err != nil {
			return err
		}
		b.Linef("public typealias %s = %s?", name, ft)
		b.Blank()

	case *wit.List:
		ft, err := swiftType(kind.Type)
		if err != nil {
			return err
		}
		b.Linef("public typealias %s = [%s]", name, ft)
		b.Blank()

	default:
		return fmt.Errorf("no Swift value type for %T", kind)
	}
	return nil
}

func flagsUnderlyingSwift(n int) string {
	switch {
	case n <= 8:
		return "UInt8"
	case n <= 16:
		return "UInt16"
	case n <= 32:
		return "UInt32"
	default:
		return "UInt64"
	}
}

// fieldFromC returns the Swift expression lifting a C field access
// (expr) per its wire projection.
func fieldFromC(proj wire.Projection, expr string) string {
	switch proj.Kind {
	case wire.Value:
		return expr
	case wire.Buffer:
		return fmt.Sprintf("String(decoding: UnsafeBufferPointer(start: %s.ptr, count: %s.len), as: UTF8.self)", expr, expr)
	case wire.StructValue:
		return fmt.Sprintf("%s(fromC: %s)", toTypeRef(proj.RefName), expr)
	case wire.OwnedPointer:
		return fmt.Sprintf("%s == nil ? nil : %s(fromC: %s!.pointee)", expr, toTypeRef(proj.RefName), expr)
	default:
		return expr
	}
}

func toTypeRef(refName string) string {
	return names.TypeName(names.Swift, refName)
}
