package kotlin

import (
	"fmt"
	"strings"

	"github.com/schell/witffi/internal/config"
	"github.com/schell/witffi/internal/diag"
	"github.com/schell/witffi/wire"
	"github.com/schell/witffi/wit"
)

// Generate returns the single Bindings.kt file for res: idiomatic
// Kotlin domain types, a Handle wrapper per heap-carrying type, and a
// Bindings object declaring the `external fun`s codegen/rust's
// register_jni! macro expects to satisfy, plus the idiomatic wrapper
// functions callers actually use.
func Generate(res *wit.Resolve, cfg config.Config) (string, error) {
	world, err := res.World()
	if err != nil {
		return "", &diag.InputError{Err: err}
	}
	reg, err := wit.NewTypeRegistry(world)
	if err != nil {
		return "", &diag.ProjectionError{Err: err}
	}
	model, err := wire.Project(reg)
	if err != nil {
		return "", &diag.ProjectionError{Err: err}
	}

	pkg := cfg.ResolvedJVMPackage(defaultJVMPackage(world.Name))
	libraryName := cfg.ResolvedNativeLibraryName(world.Name)

	var b buffer
	b.Line("// Code generated by witffi. DO NOT EDIT.")
	b.Blank()
	b.Linef("package %s", pkg)
	b.Blank()

	emitPreamble(&b)

	if err := emitTypes(&b, cfg, model); err != nil {
		return "", &diag.ProjectionError{Err: fmt.Errorf("emitting types: %w", err)}
	}

	functions := worldFunctions(world)
	if err := emitFunctions(&b, cfg, libraryName, functions, model); err != nil {
		return "", &diag.ProjectionError{Err: fmt.Errorf("emitting functions: %w", err)}
	}

	return b.String(), nil
}

// emitPreamble writes the shared WitResult sealed class every named and
// anonymous `result<Ok, Err>` type maps onto, mirroring
// codegen/swift.emitPreamble.
func emitPreamble(b *buffer) {
	b.Block("sealed class WitResult<out T, out E> {", "}", func() {
		b.Line("data class Ok<out T>(val value: T) : WitResult<T, Nothing>()")
		b.Line("data class Err<out E>(val error: E) : WitResult<Nothing, E>()")
	})
	b.Blank()
}

func defaultJVMPackage(worldName string) string {
	return "org.witffi." + strings.ReplaceAll(worldName, "-", "")
}
