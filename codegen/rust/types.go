package rust

import (
	"fmt"
	"strings"

	"github.com/schell/witffi/internal/gen"
	"github.com/schell/witffi/internal/names"
	"github.com/schell/witffi/wire"
	"github.com/schell/witffi/wit"
)

// rustType returns the idiomatic Rust type for a WIT type occurring in
// trait-facing (non-wire) position: owned String for string, Vec<u8>
// for list<u8>, a PascalCase reference for a named type, Option<T> for
// option<T>, Result<T, E> for result<T, E>.
func rustType(t wit.Type) (string, error) {
	switch v := t.(type) {
	case wit.Bool:
		return "bool", nil
	case wit.S8:
		return "i8", nil
	case wit.U8:
		return "u8", nil
	case wit.S16:
		return "i16", nil
	case wit.U16:
		return "u16", nil
	case wit.S32:
		return "i32", nil
	case wit.U32:
		return "u32", nil
	case wit.S64:
		return "i64", nil
	case wit.U64:
		return "u64", nil
	case wit.F32:
		return "f32", nil
	case wit.F64:
		return "f64", nil
	case wit.Char:
		return "char", nil
	case wit.String:
		return "String", nil
	case *wit.TypeDef:
		if v.Name != nil {
			return names.TypeName(names.Rust, *v.Name), nil
		}
		switch k := v.Kind.(type) {
		case *wit.List:
			elem, err := rustType(k.Type)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Vec<%s>", elem), nil
		case *wit.Option:
			elem, err := rustType(k.Type)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Option<%s>", elem), nil
		case *wit.Result:
			ok, errT := "()", "()"
			if k.OK != nil {
				var err error
				if ok, err = rustType(k.OK); err != nil {
					return "", err
				}
			}
			if k.Err != nil {
				var err error
				if errT, err = rustType(k.Err); err != nil {
					return "", err
				}
			}
			return fmt.Sprintf("Result<%s, %s>", ok, errT), nil
		default:
			return "", fmt.Errorf("rust: no idiomatic type for anonymous %T", k)
		}
	default:
		return "", fmt.Errorf("rust: no idiomatic type for %T", t)
	}
}

// emitTypes writes the idiomatic Rust value types for every named type
// in model, in the registry's topological order.
func emitTypes(b *buffer, model *wire.Model) error {
	for _, nt := range model.Types {
		if err := emitOneType(b, nt); err != nil {
			return fmt.Errorf("type %s: %w", nt.WitName, err)
		}
	}
	return nil
}

// emitDocComment writes nt's WIT-level documentation, if any, as Rust
// doc comment lines directly above a type declaration.
func emitDocComment(b *buffer, docs wit.Docs) {
	text := gen.FormatDocComments(docs.Contents, "/// ", "")
	if text == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		b.Line(line)
	}
}

func emitOneType(b *buffer, nt *wire.NamedType) error {
	name := names.TypeName(names.Rust, nt.WitName)
	emitDocComment(b, nt.TypeDef.Docs)
	switch kind := nt.TypeDef.Kind.(type) {
	case *wit.Record:
		b.Line("#[derive(Debug, Clone)]")
		b.Block(fmt.Sprintf("pub struct %s {", name), "}", func() {
			for _, f := range kind.Fields {
				ft, err := rustType(f.Type)
				if err != nil {
					ft = "()"
				}
				b.Linef("pub %s: %s,", names.ValueIdent(names.Rust, f.Name), ft)
			}
		})
		b.Blank()

	case *wit.Tuple:
		var elems []string
		for _, t := range kind.Types {
			ft, err := rustType(t)
			if err != nil {
				return err
			}
			elems = append(elems, "pub "+ft)
		}
		b.Line("#[derive(Debug, Clone)]")
		b.Linef("pub struct %s(%s);", name, strings.Join(elems, ", "))
		b.Blank()

	case *wit.Variant:
		b.Line("#[derive(Debug, Clone)]")
		b.Block(fmt.Sprintf("pub enum %s {", name), "}", func() {
			for _, c := range kind.Cases {
				caseName := names.TypeName(names.Rust, c.Name)
				if c.Type == nil {
					b.Linef("%s,", caseName)
					continue
				}
				ft, err := rustType(c.Type)
				if err != nil {
					ft = "()"
				}
				b.Linef("%s(%s),", caseName, ft)
			}
		})
		b.Blank()

	case *wit.Result:
		// A named result type is rare; represented identically to a
		// two-case variant with idiomatic Ok/Err case names.
		b.Line("#[derive(Debug, Clone)]")
		b.Block(fmt.Sprintf("pub enum %s {", name), "}", func() {
			if kind.OK != nil {
				ft, _ := rustType(kind.OK)
				b.Linef("Ok(%s),", ft)
			} else {
				b.Line("Ok,")
			}
			if kind.Err != nil {
				ft, _ := rustType(kind.Err)
				b.Linef("Err(%s),", ft)
			} else {
				b.Line("Err,")
			}
		})
		b.Blank()

	case *wit.Enum:
		b.Line("#[derive(Debug, Clone, Copy, PartialEq, Eq)]")
		b.Line("#[repr(u8)]")
		b.Block(fmt.Sprintf("pub enum %s {", name), "}", func() {
			for i, c := range kind.Cases {
				b.Linef("%s = %d,", names.TypeName(names.Rust, c.Name), i)
			}
		})
		b.Blank()

	case *wit.Flags:
		underlying := flagsUnderlyingRust(len(kind.Flags))
		b.Line("#[derive(Debug, Clone, Copy, PartialEq, Eq)]")
		b.Linef("pub struct %s(pub %s);", name, underlying)
		b.Block(fmt.Sprintf("impl %s {", name), "}", func() {
			for i, f := range kind.Flags {
				flagName := strings.ToUpper(names.ValueIdent(names.Rust, f.Name))
				b.Linef("pub const %s: %s = 1 << %d;", flagName, underlying, i)
			}
		})
		b.Blank()

	case *wit.Option:
		ft, err := rustType(kind.Type)
		if err != nil {
			return err
		}
		b.Linef("pub type %s = Option<%s>;", name, ft)
		b.Blank()

	case *wit.List:
		ft, err := rustType(kind.Type)
		if err != nil {
			return err
		}
		b.Linef("pub type %s = Vec<%s>;", name, ft)
		b.Blank()

	default:
		return fmt.Errorf("no Rust value type for %T", kind)
	}
	return nil
}

func flagsUnderlyingRust(n int) string {
	switch {
	case n <= 8:
		return "u8"
	case n <= 16:
		return "u16"
	case n <= 32:
		return "u32"
	default:
		return "u64"
	}
}
