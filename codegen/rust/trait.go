package rust

import (
	"fmt"

	"github.com/schell/witffi/internal/names"
	"github.com/schell/witffi/wit"
)

// worldFunction pairs a WIT function with the interface it belongs to
// (empty for a world-level freestanding function), used throughout the
// Rust emitter to derive method and C-ABI symbol names.
type worldFunction struct {
	Interface string // "" for a freestanding function
	Func      *wit.Function
}

// worldFunctions collects every function exported by a world, in
// declaration order, with its owning interface name (grounded in
// witffi-rust's ExportedFunction).
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

// traitMethodName returns the Rust trait method name for wf, snake_case
// "<iface>_<function>" grounded in examples/eip681-ffi's fn parser_parse.
func traitMethodName(wf worldFunction) string {
	fn := names.ValueIdent(names.Rust, wf.Func.Name)
	if wf.Interface == "" {
		return fn
	}
	return names.ValueIdent(names.Rust, wf.Interface) + "_" + fn
}

// emitTrait writes the single library-author-facing trait, named after
// the WIT world: one method per exported function, taking idiomatic
// Rust parameter types and returning an idiomatic Rust result type.
func emitTrait(b *buffer, worldName string, functions []worldFunction) error {
	traitName := names.TypeName(names.Rust, worldName)
	b.Block(fmt.Sprintf("pub trait %s {", traitName), "}", func() {
		for _, wf := range functions {
			sig, err := traitMethodSignature(wf)
			if err != nil {
				b.Linef("// skipped %s: %v", wf.Func.Name, err)
				continue
			}
			b.Line(sig + ";")
		}
	})
	b.Blank()
	return nil
}

func traitMethodSignature(wf worldFunction) (string, error) {
	name := traitMethodName(wf)
	var params []string
	for _, p := range wf.Func.Params {
		pt, err := traitParamType(p.Type)
		if err != nil {
			return "", fmt.Errorf("param %q: %w", p.Name, err)
		}
		params = append(params, fmt.Sprintf("%s: %s", names.ValueIdent(names.Rust, p.Name), pt))
	}
	ret := "()"
	if len(wf.Func.Results) == 1 {
		rt, err := rustType(wf.Func.Results[0].Type)
		if err != nil {
			return "", fmt.Errorf("result: %w", err)
		}
		ret = rt
	} else if len(wf.Func.Results) > 1 {
		return "", fmt.Errorf("multiple named results are not supported")
	}
	sig := fmt.Sprintf("fn %s(%s) -> %s", name, joinParams(params), ret)
	return sig, nil
}

// traitParamType is rustType, except string parameters borrow (&str)
// rather than own, matching parser_parse(input: &str).
func traitParamType(t wit.Type) (string, error) {
	if _, ok := t.(wit.String); ok {
		return "&str", nil
	}
	return rustType(t)
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
