package golang

import (
	"fmt"

	"github.com/schell/witffi/internal/config"
	"github.com/schell/witffi/internal/names"
	"github.com/schell/witffi/wire"
	"github.com/schell/witffi/wit"
)

// worldFunction pairs a WIT function with its owning interface name,
// mirroring codegen/rust.worldFunction.
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

func wrapperName(wf worldFunction) string {
	fn := names.TypeName(names.Go, wf.Func.Name)
	if wf.Interface == "" {
		return fn
	}
	return names.TypeName(names.Go, wf.Interface) + fn
}

func cPrimitiveType(p wire.PrimitiveKind) string {
	switch p {
	case wire.Bool:
		return "C.bool"
	case wire.S8:
		return "C.int8_t"
	case wire.U8:
		return "C.uint8_t"
	case wire.S16:
		return "C.int16_t"
	case wire.U16:
		return "C.uint16_t"
	case wire.S32:
		return "C.int32_t"
	case wire.U32:
		return "C.uint32_t"
	case wire.S64:
		return "C.int64_t"
	case wire.U64:
		return "C.uint64_t"
	case wire.F32:
		return "C.float"
	case wire.F64:
		return "C.double"
	case wire.Char:
		return "C.uint32_t"
	default:
		return "C.uint8_t"
	}
}

// ffiBareName returns the C struct/enum name codegen/cheader declares
// for witName (no "C." qualifier), so it can be combined into a tag
// enum prefix before being referenced as a cgo symbol.
func ffiBareName(cfg config.Config, witName string) string {
	return names.CTypeName(cfg.CTypePrefix, witName)
}

func cTypeName(cfg config.Config, witName string) string {
	return "C." + ffiBareName(cfg, witName)
}

func freeFuncName(cfg config.Config, witName string) string {
	return cfg.CFunctionPrefix + "_free_" + names.ValueIdent(names.C, witName)
}

// emitConversionFunctions writes a <Type>FromWire helper for every
// named wire type: the struct-by-struct deep copy out of the cgo
// struct into the idiomatic Go value, lifting nested fields
// recursively. This plays the fromWire half of a lowerType/liftType
// pair, copying out of C-owned memory rather than Wasm linear memory.
func emitConversionFunctions(b *buffer, cfg config.Config, model *wire.Model) error {
	for _, nt := range model.Types {
		if err := emitOneConversion(b, cfg, nt); err != nil {
			return fmt.Errorf("type %s: %w", nt.WitName, err)
		}
	}
	return nil
}

func emitOneConversion(b *buffer, cfg config.Config, nt *wire.NamedType) error {
	name := names.TypeName(names.Go, nt.WitName)
	cName := cTypeName(cfg, nt.WitName)

	switch shape := nt.Shape.(type) {
	case *wire.Struct:
		b.Linef("func %sFromWire(w %s) %s {", name, cName, name)
		b.indent++
		b.Linef("var v %s", name)
		switch nt.TypeDef.Kind.(type) {
		case *wit.Tuple:
			for i, f := range shape.Fields {
				b.Linef("v.F%d = %s", i, wireToGoValue(cfg, f.Projection, "w."+f.Name))
			}
		default:
			rec, isRecord := nt.TypeDef.Kind.(*wit.Record)
			for i, f := range shape.Fields {
				goField := "F" + fmt.Sprint(i)
				if isRecord {
					goField = names.TypeName(names.Go, rec.Fields[i].Name)
				}
				b.Linef("v.%s = %s", goField, wireToGoValue(cfg, f.Projection, "w."+f.Name))
			}
		}
		b.Line("return v")
		b.indent--
		b.Line("}")
		b.Blank()

	case *wire.TaggedUnion:
		b.Linef("func %sFromWire(w %s) %s {", name, cName, name)
		b.indent++
		b.Block("switch w.tag {", "}", func() {
			tagPrefix := ffiBareName(cfg, nt.WitName) + "Tag"
			for _, uc := range shape.Cases {
				caseName := name + names.TypeName(names.Go, uc.Name)
				discName := names.EnumDiscriminant(tagPrefix, uc.Name)
				if uc.Payload == nil {
					b.Linef("case C.%s:", discName)
					b.indent++
					b.Linef("return %s{}", caseName)
					b.indent--
					continue
				}
				field := names.ValueIdent(names.C, uc.Name)
				b.Linef("case C.%s:", discName)
				b.indent++
				b.Linef("return %s{Value: %s}", caseName,
					wireToGoValue(cfg, *uc.Payload, fmt.Sprintf("(*w.%s).value", field)))
				b.indent--
			}
		})
		b.Linef("panic(\"unreachable %s discriminant\")", name)
		b.indent--
		b.Line("}")
		b.Blank()

	case *wire.CEnum:
		b.Linef("func %sFromWire(w %s) %s {", name, cName, name)
		b.indent++
		b.Linef("return %s(w)", name)
		b.indent--
		b.Line("}")
		b.Blank()

	case *wire.Wrapper:
		b.Linef("func %sFromWire(w %s) %s {", name, cName, name)
		b.indent++
		b.Linef("var v %s", name)
		for i, f := range shape.Flags {
			flagName := name + names.TypeName(names.Go, f)
			b.Linef("if uint64(w)&(1<<%d) != 0 {", i)
			b.indent++
			b.Linef("v.Set(%s)", flagName)
			b.indent--
			b.Line("}")
		}
		b.Line("return v")
		b.indent--
		b.Line("}")
		b.Blank()

	case *wire.OptionWrapper:
		b.Linef("func %sFromWire(w %s) %s {", name, cName, name)
		b.indent++
		b.Block("if !bool(w.has_value) {", "}", func() {
			b.Linef("return cm.None[%s]()", refGoType(shape.Elem))
		})
		b.Linef("return cm.Some(%s)", wireToGoValue(cfg, shape.Elem, "w.value"))
		b.indent--
		b.Line("}")
		b.Blank()
	}

	emitOneToWire(b, cfg, nt, name, cName)
	return nil
}

// emitOneToWire writes the ToWire half for shapes a generated function
// signature can actually take as a parameter. Tagged unions and option
// wrappers are return-only in this wire model (codegen/cheader only
// ever produces them, never consumes them, since no exported WIT
// function in this generation takes a variant or option by value), so
// they get no ToWire method.
func emitOneToWire(b *buffer, cfg config.Config, nt *wire.NamedType, name, cName string) {
	switch shape := nt.Shape.(type) {
	case *wire.Struct:
		b.Linef("func (v %s) ToWire() %s {", name, cName)
		b.indent++
		b.Linef("var w %s", cName)
		switch nt.TypeDef.Kind.(type) {
		case *wit.Tuple:
			for i, f := range shape.Fields {
				b.Linef("w.%s = %s", f.Name, goToWireValue(cfg, f.Projection, fmt.Sprintf("v.F%d", i)))
			}
		default:
			rec, isRecord := nt.TypeDef.Kind.(*wit.Record)
			for i, f := range shape.Fields {
				goField := "F" + fmt.Sprint(i)
				if isRecord {
					goField = names.TypeName(names.Go, rec.Fields[i].Name)
				}
				b.Linef("w.%s = %s", f.Name, goToWireValue(cfg, f.Projection, "v."+goField))
			}
		}
		b.Line("return w")
		b.indent--
		b.Line("}")
		b.Blank()

	case *wire.CEnum:
		b.Linef("func (v %s) ToWire() %s {", name, cName)
		b.indent++
		b.Linef("return %s(v)", cName)
		b.indent--
		b.Line("}")
		b.Blank()

	case *wire.Wrapper:
		b.Linef("func (v %s) ToWire() %s {", name, cName)
		b.indent++
		b.Line("var raw uint64")
		for i, f := range shape.Flags {
			flagName := name + names.TypeName(names.Go, f)
			b.Linef("if v.IsSet(%s) {", flagName)
			b.indent++
			b.Linef("raw |= 1 << %d", i)
			b.indent--
			b.Line("}")
		}
		b.Linef("return %s(raw)", cName)
		b.indent--
		b.Line("}")
		b.Blank()
	}
}

// goToWireValue returns the Go expression that lowers an idiomatic Go
// value (goExpr) into its wire-level representation, the inverse of
// wireToGoValue.
func goToWireValue(cfg config.Config, proj wire.Projection, goExpr string) string {
	switch proj.Kind {
	case wire.Value:
		return fmt.Sprintf("%s(%s)", cPrimitiveType(proj.Primitive), goExpr)
	case wire.Buffer:
		return fmt.Sprintf(
			"func() C.FfiByteSlice { b := []byte(%s); return C.FfiByteSlice{ptr: (*C.uint8_t)(unsafe.Pointer(unsafe.SliceData(b))), len: C.size_t(len(b))} }()",
			goExpr)
	case wire.StructValue:
		return fmt.Sprintf("%s.ToWire()", goExpr)
	case wire.OwnedPointer:
		cName := cTypeName(cfg, proj.RefName)
		return fmt.Sprintf("func() *%s { w := %s.ToWire(); return &w }()", cName, goExpr)
	default:
		return goExpr
	}
}

func refGoType(proj wire.Projection) string {
	if proj.RefName != "" {
		return names.TypeName(names.Go, proj.RefName)
	}
	return "uint8"
}

// wireToGoValue returns the Go expression that lifts a wire-level
// value (cExpr, a cgo-typed field or call result) into its idiomatic
// Go representation.
func wireToGoValue(cfg config.Config, proj wire.Projection, cExpr string) string {
	switch proj.Kind {
	case wire.Value:
		return fmt.Sprintf("%s(%s)", goPrimitiveName(proj.Primitive), cExpr)
	case wire.Buffer:
		return fmt.Sprintf("C.GoStringN((*C.char)(unsafe.Pointer(%s.ptr)), C.int(%s.len))", cExpr, cExpr)
	case wire.StructValue:
		return fmt.Sprintf("%sFromWire(%s)", names.TypeName(names.Go, proj.RefName), cExpr)
	case wire.OwnedPointer:
		goName := names.TypeName(names.Go, proj.RefName)
		return fmt.Sprintf("func() %s { if %s == nil { var zero %s; return zero }; return %sFromWire(*%s) }()",
			goName, cExpr, goName, goName, cExpr)
	default:
		return cExpr
	}
}

func goPrimitiveName(p wire.PrimitiveKind) string {
	switch p {
	case wire.Bool:
		return "bool"
	case wire.S8:
		return "int8"
	case wire.U8:
		return "uint8"
	case wire.S16:
		return "int16"
	case wire.U16:
		return "uint16"
	case wire.S32:
		return "int32"
	case wire.U32:
		return "uint32"
	case wire.S64:
		return "int64"
	case wire.U64:
		return "uint64"
	case wire.F32:
		return "float32"
	case wire.F64:
		return "float64"
	case wire.Char:
		return "rune"
	default:
		return "uint8"
	}
}

// emitFunctions writes one public wrapper per exported function:
// lower each Go argument to its C projection, invoke the C symbol,
// lift the result into Go-owned memory, and free the C allocation
// before returning (original_source/crates/witffi-go: "deep-copies ...
// and frees the C memory immediately").
func emitFunctions(b *buffer, cfg config.Config, functions []worldFunction, model *wire.Model) error {
	for _, wf := range functions {
		if err := emitFunction(b, cfg, wf, model); err != nil {
			return fmt.Errorf("function %s: %w", wf.Func.Name, err)
		}
	}
	return nil
}

func emitFunction(b *buffer, cfg config.Config, wf worldFunction, model *wire.Model) error {
	cFunc := names.CFuncName(cfg.CFunctionPrefix, wf.Interface, wf.Func.Name)
	name := wrapperName(wf)

	var sigParams []string
	var callArgs []string
	var pins []string
	for i, p := range wf.Func.Params {
		pt, err := goType(p.Type)
		if err != nil {
			return fmt.Errorf("param %q: %w", p.Name, err)
		}
		argName := names.ValueIdent(names.Go, p.Name)
		if argName == "" {
			argName = fmt.Sprintf("arg%d", i)
		}
		sigParams = append(sigParams, fmt.Sprintf("%s %s", argName, pt))

		proj, err := wire.ProjectParam(p.Type, model)
		if err != nil {
			return fmt.Errorf("param %q: %w", p.Name, err)
		}
		switch proj.Kind {
		case wire.Slice:
			bufName := argName + "Bytes"
			pins = append(pins, fmt.Sprintf("%s := []byte(%s)", bufName, argName))
			callArgs = append(callArgs, fmt.Sprintf(
				"C.FfiByteSlice{ptr: (*C.uint8_t)(unsafe.Pointer(unsafe.SliceData(%s))), len: C.size_t(len(%s))}",
				bufName, bufName))
		case wire.StructValue:
			callArgs = append(callArgs, fmt.Sprintf("%s.ToWire()", argName))
		default:
			callArgs = append(callArgs, fmt.Sprintf("%s(%s)", cPrimitiveType(proj.Primitive), argName))
		}
	}

	retType := ""
	var resultProj *wire.Projection
	if len(wf.Func.Results) == 1 {
		proj, err := wire.ProjectResult(wf.Func.Results[0].Type, model)
		if err != nil {
			return fmt.Errorf("result: %w", err)
		}
		resultProj = &proj
		rt, err := goType(wf.Func.Results[0].Type)
		if err != nil {
			return err
		}
		retType = " " + rt
	}

	b.Linef("func %s(%s)%s {", name, join(sigParams), retType)
	b.indent++
	for _, p := range pins {
		b.Line(p)
	}
	callExpr := fmt.Sprintf("C.%s(%s)", cFunc, join(callArgs))
	if resultProj == nil {
		b.Line(callExpr)
	} else {
		b.Linef("result := %s", callExpr)
		switch resultProj.Kind {
		case wire.StructValue, wire.OwnedPointer:
			b.Linef("defer C.%s(result)", freeFuncName(cfg, resultProj.RefName))
		case wire.Buffer:
			b.Line("defer C.witffi_free_byte_buffer(result)")
		}
		b.Linef("return %s", wireToGoValue(cfg, *resultProj, "result"))
	}
	b.indent--
	b.Line("}")
	b.Blank()
	return nil
}

func join(ss []string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
