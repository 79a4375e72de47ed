package swift

import (
	"fmt"

	"github.com/schell/witffi/internal/config"
	"github.com/schell/witffi/internal/diag"
	"github.com/schell/witffi/wire"
	"github.com/schell/witffi/wit"
)

// Output is the pair of files codegen/swift produces: the Swift source
// and the module map exposing the underlying C target to the Swift
// compiler as an importable Clang module.
type Output struct {
	BindingsSwift string
	ModuleMap     string
}

// Generate returns the Swift bindings for res: idiomatic value types
// with fromC/toC conversions, followed by one wrapper function per
// exported function.
func Generate(res *wit.Resolve, cfg config.Config) (Output, error) {
	world, err := res.World()
	if err != nil {
		return Output{}, &diag.InputError{Err: err}
	}
	reg, err := wit.NewTypeRegistry(world)
	if err != nil {
		return Output{}, &diag.ProjectionError{Err: err}
	}
	model, err := wire.Project(reg)
	if err != nil {
		return Output{}, &diag.ProjectionError{Err: err}
	}

	var b buffer
	b.Line("// Code generated by witffi. DO NOT EDIT.")
	b.Blank()
	b.Linef("import %s", moduleMapName(cfg))
	b.Blank()

	emitPreamble(&b)

	if err := emitTypes(&b, cfg, model); err != nil {
		return Output{}, &diag.ProjectionError{Err: fmt.Errorf("emitting types: %w", err)}
	}

	functions := worldFunctions(world)
	if err := emitFunctions(&b, cfg, functions, model); err != nil {
		return Output{}, &diag.ProjectionError{Err: fmt.Errorf("emitting functions: %w", err)}
	}

	return Output{
		BindingsSwift: b.String(),
		ModuleMap:     generateModuleMap(cfg),
	}, nil
}

func moduleMapName(cfg config.Config) string {
	return cfg.SwiftModuleName + "C"
}

// generateModuleMap writes the module.modulemap exposing the generated
// ffi.h (plus witffi_types.h, which ffi.h already #includes) as a Clang
// module the Swift compiler can `import`.
func generateModuleMap(cfg config.Config) string {
	var b buffer
	b.Linef("module %s {", moduleMapName(cfg))
	b.indent++
	b.Line("header \"ffi.h\"")
	b.Line("export *")
	b.indent--
	b.Line("}")
	return b.String()
}
