package golang

import (
	"fmt"

	"github.com/schell/witffi/internal/names"
	"github.com/schell/witffi/wire"
	"github.com/schell/witffi/wit"
)

// goType returns the idiomatic Go type for a WIT type occurring in
// caller-facing (non-wire) position.
func goType(t wit.Type) (string, error) {
	switch v := t.(type) {
	case wit.Bool:
		return "bool", nil
	case wit.S8:
		return "int8", nil
	case wit.U8:
		return "uint8", nil
	case wit.S16:
		return "int16", nil
	case wit.U16:
		return "uint16", nil
	case wit.S32:
		return "int32", nil
	case wit.U32:
		return "uint32", nil
	case wit.S64:
		return "int64", nil
	case wit.U64:
		return "uint64", nil
	case wit.F32:
		return "float32", nil
	case wit.F64:
		return "float64", nil
	case wit.Char:
		return "rune", nil
	case wit.String:
		return "string", nil
	case *wit.TypeDef:
		if v.Name != nil {
			return names.TypeName(names.Go, *v.Name), nil
		}
		switch k := v.Kind.(type) {
		case *wit.List:
			elem, err := goType(k.Type)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("[]%s", elem), nil
		case *wit.Option:
			elem, err := goType(k.Type)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("cm.Option[%s]", elem), nil
		case *wit.Result:
			ok, errT := "struct{}", "struct{}"
			if k.OK != nil {
				var err error
				if ok, err = goType(k.OK); err != nil {
					return "", err
				}
			}
			if k.Err != nil {
				var err error
				if errT, err = goType(k.Err); err != nil {
					return "", err
				}
			}
			return fmt.Sprintf("Result[%s, %s]", ok, errT), nil
		default:
			return "", fmt.Errorf("golang: no idiomatic type for anonymous %T", k)
		}
	default:
		return "", fmt.Errorf("golang: no idiomatic type for %T", t)
	}
}

// emitPreamble writes the generic Result every named and anonymous
// `result<Ok, Err>` type maps onto. option<T> reuses cm.Option[T]
// directly (an exact fit: both are "present bool + T" by shape) but
// result<Ok, Err> does not fit cm.Result's Wasm-linear-memory shape/
// alignment machinery (unsafe.Sizeof tricks meant for a flat memory
// buffer, not a heap-allocated deep copy), so it gets its own plain
// sum type here instead of forcing cm.Result onto values that were
// never laid out that way.
func emitPreamble(b *buffer) {
	b.Block("type Result[Ok, Err any] struct {", "}", func() {
		b.Line("IsErr bool")
		b.Line("OkValue  Ok")
		b.Line("ErrValue Err")
	})
	b.Blank()
	b.Block("func Ok[Ok, Err any](v Ok) Result[Ok, Err] {", "}", func() {
		b.Line("return Result[Ok, Err]{OkValue: v}")
	})
	b.Blank()
	b.Block("func Err[Ok, Err any](e Err) Result[Ok, Err] {", "}", func() {
		b.Line("return Result[Ok, Err]{IsErr: true, ErrValue: e}")
	})
	b.Blank()
}

// emitTypes writes the idiomatic Go value type for every named wire
// type: a struct for a record or tuple, an interface-plus-case-structs
// sum type for a variant (the natural Go shape for a closed union of
// heap-allocated cases, rather than cm.Variant's unsafe Shape/Align
// machinery, which exists to overlay cases onto one fixed-size Wasm
// linear-memory slot — not applicable to ordinary Go values), a named
// int type with constants for an enum, and cm.Flags reused directly
// for flags (its IsSet/Set/Clear bit-twiddling is exactly what a
// deep-copied flags value needs).
func emitTypes(b *buffer, model *wire.Model) error {
	for _, nt := range model.Types {
		if err := goTypeDecl(b, nt.WitName, nt.TypeDef.Kind); err != nil {
			return fmt.Errorf("type %s: %w", nt.WitName, err)
		}
	}
	return nil
}

// goTypeDecl writes the declaration for a single named WIT type, keyed
// off its own TypeDef.Kind (idiomatic shape), independent of its wire
// Shape (used only by marshal.go's toWire/fromWire).
func goTypeDecl(b *buffer, witName string, kind wit.TypeDefKind) error {
	name := names.TypeName(names.Go, witName)

	switch k := kind.(type) {
	case *wit.Record:
		b.Block(fmt.Sprintf("type %s struct {", name), "}", func() {
			for _, f := range k.Fields {
				ft, err := goType(f.Type)
				if err != nil {
					ft = "struct{}"
				}
				b.Linef("%s %s", names.TypeName(names.Go, f.Name), ft)
			}
		})
		b.Blank()

	case *wit.Tuple:
		var elems []string
		for _, t := range k.Types {
			ft, err := goType(t)
			if err != nil {
				return err
			}
			elems = append(elems, ft)
		}
		b.Block(fmt.Sprintf("type %s struct {", name), "}", func() {
			for i, ft := range elems {
				b.Linef("F%d %s", i, ft)
			}
		})
		b.Blank()

	case *wit.Variant:
		markerMethod := "is" + name
		b.Linef("type %s interface { %s() }", name, markerMethod)
		b.Blank()
		for _, c := range k.Cases {
			caseName := name + names.TypeName(names.Go, c.Name)
			if c.Type == nil {
				b.Linef("type %s struct{}", caseName)
			} else {
				ft, err := goType(c.Type)
				if err != nil {
					ft = "struct{}"
				}
				b.Linef("type %s struct{ Value %s }", caseName, ft)
			}
			b.Linef("func (%s) %s() {}", caseName, markerMethod)
			b.Blank()
		}

	case *wit.Result:
		ok, errT := "struct{}", "struct{}"
		if k.OK != nil {
			ok, _ = goType(k.OK)
		}
		if k.Err != nil {
			errT, _ = goType(k.Err)
		}
		b.Linef("type %s = Result[%s, %s]", name, ok, errT)
		b.Blank()

	case *wit.Enum:
		underlying := enumUnderlyingGo(len(k.Cases))
		b.Linef("type %s %s", name, underlying)
		b.Blank()
		b.Line("const (")
		b.indent++
		for i, c := range k.Cases {
			caseName := name + names.TypeName(names.Go, c.Name)
			if i == 0 {
				b.Linef("%s %s = iota", caseName, name)
			} else {
				b.Linef("%s", caseName)
			}
		}
		b.indent--
		b.Line(")")
		b.Blank()

	case *wit.Flags:
		underlying := flagsUnderlyingGo(len(k.Flags))
		b.Linef("type %sFlag cm.Flag", name)
		b.Linef("type %s struct{ cm.Flags[%s, %sFlag] }", name, underlying, name)
		b.Blank()
		b.Line("const (")
		b.indent++
		for i, f := range k.Flags {
			flagName := name + names.TypeName(names.Go, f.Name)
			b.Linef("%s %sFlag = %d", flagName, name, i)
		}
		b.indent--
		b.Line(")")
		b.Blank()

	case *wit.Option:
		ft, err := goType(k.Type)
		if err != nil {
			return err
		}
		b.Linef("type %s = cm.Option[%s]", name, ft)
		b.Blank()

	case *wit.List:
		ft, err := goType(k.Type)
		if err != nil {
			return err
		}
		b.Linef("type %s = []%s", name, ft)
		b.Blank()

	default:
		return fmt.Errorf("no Go value type for %T", kind)
	}
	return nil
}

func enumUnderlyingGo(n int) string {
	switch {
	case n <= 256:
		return "uint8"
	case n <= 65536:
		return "uint16"
	default:
		return "uint32"
	}
}

func flagsUnderlyingGo(n int) string {
	switch {
	case n <= 8:
		return "uint8"
	case n <= 16:
		return "uint16"
	case n <= 32:
		return "uint32"
	default:
		return fmt.Sprintf("[%d]uint32", (n+31)/32)
	}
}
