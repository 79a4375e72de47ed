// Package generate implements the witffi CLI's "generate" subcommand,
// mirroring original_source/crates/witffi-cli/src/main.rs's
// Commands::Generate one flag at a time (--wit/--lang/--output/
// --c-prefix/--c-type-prefix), extended with
// --jvm-package/--native-library-name/--kotlin-package and a --lang
// value of rust|c|swift|kotlin|go|all.
package generate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/schell/witffi/codegen/cheader"
	"github.com/schell/witffi/codegen/golang"
	"github.com/schell/witffi/codegen/kotlin"
	"github.com/schell/witffi/codegen/rust"
	"github.com/schell/witffi/codegen/swift"
	"github.com/schell/witffi/internal/config"
	"github.com/schell/witffi/internal/logging"
	"github.com/schell/witffi/internal/witcli"
	"github.com/schell/witffi/wit"
	"github.com/urfave/cli/v3"
)

// Command is the CLI command for generate.
var Command = &cli.Command{
	Name:  "generate",
	Usage: "generate native FFI bindings from WIT definitions",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "wit",
			Aliases:  []string{"w"},
			OnlyOnce: true,
			Config:   cli.StringConfig{TrimSpace: true},
			Usage:    "path to a WIT file or directory",
		},
		&cli.StringFlag{
			Name:     "lang",
			Aliases:  []string{"l"},
			OnlyOnce: true,
			Config:   cli.StringConfig{TrimSpace: true},
			Usage:    "target language: rust, c, swift, kotlin, go, or all",
		},
		&cli.StringFlag{
			Name:      "output",
			Aliases:   []string{"o"},
			OnlyOnce:  true,
			TakesFile: true,
			Config:    cli.StringConfig{TrimSpace: true},
			Usage:     "output directory for generated files",
		},
		&cli.StringFlag{
			Name:  "c-prefix",
			Value: "witffi",
			Usage: `prefix for C function names, e.g. "zcash_eip681"`,
		},
		&cli.StringFlag{
			Name:  "c-type-prefix",
			Value: "Ffi",
			Usage: `prefix for C struct/enum type names, e.g. "Ffi"`,
		},
		&cli.StringFlag{
			Name:  "jvm-package",
			Usage: "JVM package the generated Kotlin bridge's JNI symbols resolve against",
		},
		&cli.StringFlag{
			Name:  "native-library-name",
			Usage: "name passed to System.loadLibrary in the generated Kotlin bridge",
		},
		&cli.StringFlag{
			Name:  "kotlin-package",
			Usage: "alias of --jvm-package, accepted for the older generation of callers",
		},
		&cli.StringFlag{
			Name:  "swift-module-name",
			Value: "WitFFI",
			Usage: "name of the generated Swift module",
		},
		&cli.BoolFlag{
			Name:  "force-wit",
			Usage: "always process --wit through wasm-tools, regardless of file extension",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "log info-level progress",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "log debug-level progress",
		},
	},
	Action: action,
}

type language string

const (
	langRust   language = "rust"
	langC      language = "c"
	langSwift  language = "swift"
	langKotlin language = "kotlin"
	langGo     language = "go"
	langAll    language = "all"
)

func action(_ context.Context, cmd *cli.Command) error {
	if cmd.String("wit") == "" {
		return fmt.Errorf("--wit is required")
	}
	if cmd.String("output") == "" {
		return fmt.Errorf("--output is required")
	}

	lang := language(strings.ToLower(cmd.String("lang")))
	switch lang {
	case langRust, langC, langSwift, langKotlin, langGo, langAll:
	default:
		return fmt.Errorf("unknown --lang %q: want rust, c, swift, kotlin, go, or all", cmd.String("lang"))
	}

	verbose, debug := cmd.Bool("verbose"), cmd.Bool("debug")

	// The older wit/logging.Logger lineage, carried for callers embedded
	// in environments where log/slog is undesirable: used here just for
	// the WIT-load step, since that's the one piece of this pipeline
	// also reachable from a TinyGo/WASI build.
	legacyLog := witcli.Logger(verbose, debug)
	legacyLog.Debugf("loading WIT from %s (force-wit=%t)", cmd.String("wit"), cmd.Bool("force-wit"))

	res, err := witcli.LoadWIT(cmd.Bool("force-wit"), cmd.String("wit"))
	if err != nil {
		return fmt.Errorf("loading WIT from %s: %w", cmd.String("wit"), err)
	}

	level := slog.LevelWarn
	switch {
	case debug:
		level = slog.LevelDebug
	case verbose:
		level = slog.LevelInfo
	}
	log := logging.Logger(os.Stderr, level)

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.String("output")
	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", out, err)
	}

	if lang == langRust || lang == langC || lang == langAll {
		if err := writeHeaders(res, cfg, out, log); err != nil {
			return err
		}
	}
	if lang == langRust || lang == langAll {
		if err := writeRust(res, cfg, out, log); err != nil {
			return err
		}
	}
	if lang == langSwift || lang == langAll {
		if err := writeSwift(res, cfg, out, log); err != nil {
			return err
		}
	}
	if lang == langKotlin || lang == langAll {
		if err := writeKotlin(res, cfg, out, log); err != nil {
			return err
		}
	}
	if lang == langGo || lang == langAll {
		if err := writeGo(res, cfg, out, log); err != nil {
			return err
		}
	}
	return nil
}

func buildConfig(cmd *cli.Command) (config.Config, error) {
	opts := []config.Option{
		config.CFunctionPrefix(cmd.String("c-prefix")),
		config.CTypePrefix(cmd.String("c-type-prefix")),
		config.SwiftModuleName(cmd.String("swift-module-name")),
	}
	if cmd.IsSet("jvm-package") {
		opts = append(opts, config.JVMPackage(cmd.String("jvm-package")))
	}
	if cmd.IsSet("native-library-name") {
		opts = append(opts, config.NativeLibraryName(cmd.String("native-library-name")))
	}
	if cmd.IsSet("kotlin-package") {
		opts = append(opts, config.KotlinPackage(cmd.String("kotlin-package")))
	}
	return config.New(opts...)
}

func writeHeaders(res *wit.Resolve, cfg config.Config, out string, log *slog.Logger) error {
	typesPath := filepath.Join(out, "witffi_types.h")
	if err := writeFile(typesPath, cheader.TypesHeader, log); err != nil {
		return err
	}

	header, err := cheader.Generate(res, cfg)
	if err != nil {
		return fmt.Errorf("generating C header: %w", err)
	}
	return writeFile(filepath.Join(out, "ffi.h"), header, log)
}

func writeRust(res *wit.Resolve, cfg config.Config, out string, log *slog.Logger) error {
	code, err := rust.Generate(res, cfg)
	if err != nil {
		return fmt.Errorf("generating Rust bindings: %w", err)
	}
	return writeFile(filepath.Join(out, "ffi.rs"), code, log)
}

func writeSwift(res *wit.Resolve, cfg config.Config, out string, log *slog.Logger) error {
	result, err := swift.Generate(res, cfg)
	if err != nil {
		return fmt.Errorf("generating Swift bindings: %w", err)
	}
	if err := writeFile(filepath.Join(out, "Bindings.swift"), result.BindingsSwift, log); err != nil {
		return err
	}
	return writeFile(filepath.Join(out, "module.modulemap"), result.ModuleMap, log)
}

func writeKotlin(res *wit.Resolve, cfg config.Config, out string, log *slog.Logger) error {
	code, err := kotlin.Generate(res, cfg)
	if err != nil {
		return fmt.Errorf("generating Kotlin bindings: %w", err)
	}
	return writeFile(filepath.Join(out, "Bindings.kt"), code, log)
}

func writeGo(res *wit.Resolve, cfg config.Config, out string, log *slog.Logger) error {
	code, err := golang.Generate(res, cfg)
	if err != nil {
		return fmt.Errorf("generating Go bindings: %w", err)
	}
	return writeFile(filepath.Join(out, "bindings.go"), code, log)
}

func writeFile(path, content string, log *slog.Logger) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	log.Info("wrote file", "path", path)
	return nil
}
