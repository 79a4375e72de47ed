package golang

import (
	"fmt"
	"strings"

	"github.com/schell/witffi/internal/config"
	"github.com/schell/witffi/internal/diag"
	gen "github.com/schell/witffi/internal/go/gen"
	"github.com/schell/witffi/wire"
	"github.com/schell/witffi/wit"
)

// Generate returns the Go bindings for res: idiomatic Go value types, a
// cgo bridge into the generated ffi.h, and one wrapper function per
// exported WIT function that lowers Go arguments across cgo, invokes the
// native symbol, and deep-copies the C result back into Go-owned memory
// (freeing the C allocation immediately after).
//
// Unlike the other four emitters, which build their output as one long
// string, this one routes through internal/go/gen.Package/File so the
// generated package gets the same import-alias bookkeeping and
// go/format pass other generated Go files in this module get.
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

	pkg := gen.NewPackage(goPackageName(world.Name))
	file := pkg.File("bindings.go")
	file.GeneratedBy = "witffi"
	file.Header = cgoPreamble(cfg)

	// Registered so the generated import block carries them; the
	// generated Content below refers to them by these exact aliases.
	file.Import("unsafe")
	if alias := file.Import("github.com/schell/witffi/cm"); alias != "cm" {
		return "", &diag.IOError{Err: fmt.Errorf("golang: cm package alias collision: got %q", alias)}
	}

	var b buffer
	emitPreamble(&b)
	if err := emitTypes(&b, model); err != nil {
		return "", &diag.ProjectionError{Err: fmt.Errorf("emitting types: %w", err)}
	}
	if err := emitConversionFunctions(&b, cfg, model); err != nil {
		return "", &diag.ProjectionError{Err: fmt.Errorf("emitting conversions: %w", err)}
	}

	functions := worldFunctions(world)
	if err := emitFunctions(&b, cfg, functions, model); err != nil {
		return "", &diag.ProjectionError{Err: fmt.Errorf("emitting functions: %w", err)}
	}

	file.Content = []byte(b.String())

	out, err := file.Bytes()
	if err != nil {
		return "", &diag.IOError{Err: fmt.Errorf("formatting generated Go source: %w", err)}
	}
	return string(out), nil
}

// cgoPreamble writes the cgo comment block and import "C" statement.
// This is kept out of File's generic Import bookkeeping since cgo
// requires its directive comment sit directly above "import \"C\"" with
// no intervening blank line, a constraint the alias-map-keyed Imports
// field has no way to express for a single entry.
func cgoPreamble(cfg config.Config) string {
	var b buffer
	b.Line("/*")
	b.Linef("#cgo LDFLAGS: -l%s", cfg.CFunctionPrefix)
	b.Line(`#include "ffi.h"`)
	b.Line("*/")
	b.Line(`import "C"`)
	return b.String()
}

func goPackageName(worldName string) string {
	return strings.ToLower(strings.ReplaceAll(worldName, "-", ""))
}
