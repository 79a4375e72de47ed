package swift

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
	fn := names.ValueIdent(names.Swift, wf.Func.Name)
	if wf.Interface == "" {
		return fn
	}
	return names.ValueIdent(names.Swift, wf.Interface) + names.TypeName(names.Swift, wf.Func.Name)
}

// sliceArg is a function parameter that borrows through FfiByteSlice:
// the pointer FfiByteSlice wraps is only valid for the extent of the
// withUnsafeBufferPointer closure that produces it, so every such
// parameter must stay nested inside that closure for the whole call,
// rather than being materialized ahead of time.
type sliceArg struct {
	argName string
	bufName string
}

// emitFunctions writes one public wrapper per exported function,
// lowering each Swift argument into its C projection, invoking the C
// symbol, lifting the C result, and freeing any owned C allocation with
// `defer` before returning (witffi-swift's package doc comment:
// "automatic memory management via defer/cleanup patterns").
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
	for _, p := range wf.Func.Params {
		pt, err := swiftType(p.Type)
		if err != nil {
			return fmt.Errorf("param %q: %w", p.Name, err)
		}
		sigParams = append(sigParams, fmt.Sprintf("_ %s: %s", names.ValueIdent(names.Swift, p.Name), pt))
	}

	retType := ""
	var resultProj *wire.Projection
	if len(wf.Func.Results) == 1 {
		proj, err := wire.ProjectResult(wf.Func.Results[0].Type, model)
		if err != nil {
			return fmt.Errorf("result: %w", err)
		}
		resultProj = &proj
		rt, err := swiftType(wf.Func.Results[0].Type)
		if err != nil {
			return err
		}
		retType = " -> " + rt
	}

	var callArgs []string
	var slices []sliceArg
	for _, p := range wf.Func.Params {
		proj, err := wire.ProjectParam(p.Type, model)
		if err != nil {
			return fmt.Errorf("param %q: %w", p.Name, err)
		}
		argName := names.ValueIdent(names.Swift, p.Name)
		switch proj.Kind {
		case wire.Slice:
			slices = append(slices, sliceArg{argName: argName, bufName: argName + "Buf"})
			callArgs = append(callArgs, fmt.Sprintf(
				"FfiByteSlice(ptr: %sBuf.baseAddress, len: %sBuf.count)", argName, argName))
		case wire.StructValue:
			callArgs = append(callArgs, fmt.Sprintf("%s.toC()", argName))
		default:
			callArgs = append(callArgs, argName)
		}
	}
	callExpr := fmt.Sprintf("%s(%s)", cFunc, joinParams(callArgs))

	b.Linef("public func %s(%s)%s {", name, joinParams(sigParams), retType)
	b.indent++
	for _, s := range slices {
		b.Linef("let %sUtf8 = Array(%s.utf8)", s.argName, s.argName)
	}
	emitCallBody(b, slices, callExpr, resultProj, cfg)
	b.indent--
	b.Line("}")
	b.Blank()
	return nil
}

// emitCallBody writes the call itself, nested inside one
// withUnsafeBufferPointer closure per borrowed slice parameter
// (innermost closure performs the actual C call), then the result
// lifting and free/defer statements once back at the top level.
func emitCallBody(b *buffer, slices []sliceArg, callExpr string, resultProj *wire.Projection, cfg config.Config) {
	if len(slices) == 0 {
		emitInvokeAndReturn(b, callExpr, resultProj, cfg)
		return
	}
	head, rest := slices[0], slices[1:]
	b.Linef("%sUtf8.withUnsafeBufferPointer { %s in", head.argName, head.bufName)
	b.indent++
	emitCallBody(b, rest, callExpr, resultProj, cfg)
	b.indent--
	b.Line("}")
}

func emitInvokeAndReturn(b *buffer, callExpr string, resultProj *wire.Projection, cfg config.Config) {
	if resultProj == nil {
		b.Line(callExpr)
		return
	}
	b.Linef("let result = %s", callExpr)
	switch resultProj.Kind {
	case wire.StructValue, wire.OwnedPointer:
		fnFree := fmt.Sprintf("%s_free_%s", cfg.CFunctionPrefix, names.ValueIdent(names.C, resultProj.RefName))
		b.Linef("defer { %s(result) }", fnFree)
	case wire.Buffer:
		b.Line("defer { witffi_free_byte_buffer(result) }")
	}
	b.Linef("return %s", resultFromC(*resultProj, "result"))
}

func resultFromC(proj wire.Projection, expr string) string {
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

func joinParams(ss []string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

// emitPreamble writes the shared WitResult generic every named and
// anonymous `result<Ok, Err>` type maps onto.
func emitPreamble(b *buffer) {
	b.Block("public enum WitResult<Ok, Err> {", "}", func() {
		b.Line("case ok(Ok)")
		b.Line("case err(Err)")
	})
	b.Blank()
}
