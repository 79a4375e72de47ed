package kotlin

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

// jniName must match codegen/rust.emitJNIWrapper's jniName exactly
// (case-sensitive): the JVM resolves an `external fun` against the
// native symbol Java_<jvm_package>_<Class>_<jniName>.
func jniName(wf worldFunction) string {
	return names.TypeName(names.Rust, wf.Interface) + names.TypeName(names.Rust, wf.Func.Name)
}

func wrapperName(wf worldFunction) string {
	fn := names.ValueIdent(names.Kotlin, wf.Func.Name)
	if wf.Interface == "" {
		return fn
	}
	return names.ValueIdent(names.Kotlin, wf.Interface) + names.TypeName(names.Kotlin, wf.Func.Name)
}

// emitFunctions writes the Bindings object: an init block that loads the
// native library, one `external fun` per exported WIT function matching
// codegen/rust's register_jni! output one for one, a `<jniName>Free`
// external entry point for every structured result, and a public
// wrapper with idiomatic Kotlin parameter/return types.
func emitFunctions(b *buffer, cfg config.Config, libraryName string, functions []worldFunction, model *wire.Model) error {
	b.Block("object Bindings {", "}", func() {
		b.Block("init {", "}", func() {
			b.Linef("System.loadLibrary(%q)", libraryName)
		})
		b.Blank()
		for _, wf := range functions {
			if err := emitExternDecl(b, cfg, wf, model); err != nil {
				return
			}
		}
		b.Blank()
		for _, wf := range functions {
			if err := emitWrapper(b, cfg, wf, model); err != nil {
				return
			}
		}
	})
	return nil
}

func emitExternDecl(b *buffer, cfg config.Config, wf worldFunction, model *wire.Model) error {
	name := jniName(wf)

	var params []string
	for i, p := range wf.Func.Params {
		jt, err := jniParamType(p.Type)
		if err != nil {
			return fmt.Errorf("param %q: %w", p.Name, err)
		}
		params = append(params, fmt.Sprintf("arg%d: %s", i, jt))
	}

	retType := "Unit"
	var resultProj *wire.Projection
	if len(wf.Func.Results) == 1 {
		proj, err := wire.ProjectResult(wf.Func.Results[0].Type, model)
		if err != nil {
			return fmt.Errorf("result: %w", err)
		}
		resultProj = &proj
		retType = jniResultType(proj)
	}

	b.Linef("external fun %s(%s): %s", name, join(params), retType)
	if resultProj != nil && (resultProj.Kind == wire.StructValue || resultProj.Kind == wire.OwnedPointer) {
		b.Linef("external fun %sFree(handle: Long)", name)
	}
	return nil
}

func jniParamType(t wit.Type) (string, error) {
	if _, ok := t.(wit.String); ok {
		return "String", nil
	}
	return "Long", nil
}

func jniResultType(proj wire.Projection) string {
	switch proj.Kind {
	case wire.Buffer:
		return "String"
	case wire.Value:
		return "Long"
	default:
		// Opaque handle onto the heap allocation the C ABI produced;
		// the public wrapper below lifts it into a Handle.
		return "Long"
	}
}

// emitWrapper writes the public, idiomatically-typed function a Kotlin
// caller actually uses: it forwards to the external fun, then wraps a
// structured result's raw handle in its Handle class.
func emitWrapper(b *buffer, cfg config.Config, wf worldFunction, model *wire.Model) error {
	name := wrapperName(wf)
	jni := jniName(wf)

	var sigParams []string
	var callArgs []string
	for i, p := range wf.Func.Params {
		pt, err := kotlinType(p.Type)
		if err != nil {
			return fmt.Errorf("param %q: %w", p.Name, err)
		}
		argName := names.ValueIdent(names.Kotlin, p.Name)
		sigParams = append(sigParams, fmt.Sprintf("%s: %s", argName, pt))
		_ = i
		callArgs = append(callArgs, argName)
	}

	retType := ""
	var resultProj *wire.Projection
	if len(wf.Func.Results) == 1 {
		proj, err := wire.ProjectResult(wf.Func.Results[0].Type, model)
		if err != nil {
			return fmt.Errorf("result: %w", err)
		}
		resultProj = &proj
		switch proj.Kind {
		case wire.StructValue, wire.OwnedPointer:
			retType = " : " + names.TypeName(names.Kotlin, proj.RefName) + "Handle"
		case wire.Buffer:
			retType = ": String"
		case wire.Value:
			rt, err := kotlinType(wf.Func.Results[0].Type)
			if err != nil {
				return err
			}
			retType = ": " + rt
		}
	}

	b.Linef("fun %s(%s)%s {", name, join(sigParams), retType)
	b.indent++
	callExpr := fmt.Sprintf("%s(%s)", jni, join(callArgs))
	if resultProj == nil {
		b.Linef("%s", callExpr)
	} else if resultProj.Kind == wire.StructValue || resultProj.Kind == wire.OwnedPointer {
		b.Linef("val handle = %s", callExpr)
		b.Linef("return %sHandle(handle)", names.TypeName(names.Kotlin, resultProj.RefName))
	} else {
		b.Linef("return %s", callExpr)
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
