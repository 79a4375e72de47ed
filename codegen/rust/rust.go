package rust

import (
	"fmt"

	"github.com/schell/witffi/internal/config"
	"github.com/schell/witffi/internal/diag"
	"github.com/schell/witffi/wire"
	"github.com/schell/witffi/wit"
)

// Generate returns the complete contents of the generated ffi.rs for
// res, built in four passes: idiomatic value types, their #[repr(C)]
// wire structs, a library-author trait, then the
// register_ffi!/register_jni! macros.
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

	functions := worldFunctions(world)

	var b buffer
	b.Line("// Code generated by witffi. DO NOT EDIT.")
	b.Blank()
	b.Line("#![allow(clippy::all)]")
	b.Blank()

	if err := emitTypes(&b, model); err != nil {
		return "", &diag.ProjectionError{Err: fmt.Errorf("emitting types: %w", err)}
	}
	if err := emitWireTypes(&b, cfg, model); err != nil {
		return "", &diag.ProjectionError{Err: fmt.Errorf("emitting wire types: %w", err)}
	}
	if err := emitTrait(&b, world.Name, functions); err != nil {
		return "", &diag.ProjectionError{Err: fmt.Errorf("emitting trait: %w", err)}
	}
	if err := emitRegistration(&b, cfg, world.Name, functions, model); err != nil {
		return "", &diag.ProjectionError{Err: fmt.Errorf("emitting registration: %w", err)}
	}

	return b.String(), nil
}
