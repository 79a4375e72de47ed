package generate

import (
	"context"
	"testing"

	"github.com/urfave/cli/v3"
)

// runGenerate parses args against Command's own flag list (shared, not
// copied) and
// returns whatever action returns, without invoking the real Action
// (which would try to load WIT from disk).
func runGenerate(t *testing.T, args []string, action func(*cli.Command) error) error {
	t.Helper()
	cmd := &cli.Command{
		Name:  "generate",
		Flags: Command.Flags,
		Action: func(_ context.Context, cmd *cli.Command) error {
			return action(cmd)
		},
	}
	return cmd.Run(context.Background(), append([]string{"generate"}, args...))
}

func TestBuildConfigDefaults(t *testing.T) {
	var got error
	err := runGenerate(t, []string{"--wit", "x.wit", "--lang", "rust", "--output", "out"}, func(cmd *cli.Command) error {
		cfg, err := buildConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.CFunctionPrefix != "witffi" {
			t.Errorf("CFunctionPrefix = %q, want witffi", cfg.CFunctionPrefix)
		}
		if cfg.CTypePrefix != "Ffi" {
			t.Errorf("CTypePrefix = %q, want Ffi", cfg.CTypePrefix)
		}
		if cfg.SwiftModuleName != "WitFFI" {
			t.Errorf("SwiftModuleName = %q, want WitFFI", cfg.SwiftModuleName)
		}
		if cfg.JVMPackage != nil {
			t.Errorf("JVMPackage = %v, want nil", cfg.JVMPackage)
		}
		return nil
	})
	got = err
	if got != nil {
		t.Fatalf("runGenerate: %v", got)
	}
}

func TestBuildConfigOverrides(t *testing.T) {
	args := []string{
		"--wit", "x.wit",
		"--lang", "kotlin",
		"--output", "out",
		"--c-prefix", "zcash_eip681",
		"--c-type-prefix", "Zcash",
		"--jvm-package", "com.example.zcash",
		"--native-library-name", "zcash_eip681",
	}
	err := runGenerate(t, args, func(cmd *cli.Command) error {
		cfg, err := buildConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.CFunctionPrefix != "zcash_eip681" {
			t.Errorf("CFunctionPrefix = %q, want zcash_eip681", cfg.CFunctionPrefix)
		}
		if cfg.ResolvedJVMPackage("fallback") != "com.example.zcash" {
			t.Errorf("ResolvedJVMPackage = %q, want com.example.zcash", cfg.ResolvedJVMPackage("fallback"))
		}
		if cfg.ResolvedNativeLibraryName("fallback") != "zcash_eip681" {
			t.Errorf("ResolvedNativeLibraryName = %q, want zcash_eip681", cfg.ResolvedNativeLibraryName("fallback"))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("runGenerate: %v", err)
	}
}

func TestActionRejectsMissingRequiredFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing wit", []string{"--lang", "rust", "--output", "out"}},
		{"missing output", []string{"--wit", "x.wit", "--lang", "rust"}},
		{"missing lang", []string{"--wit", "x.wit", "--output", "out"}},
		{"unknown lang", []string{"--wit", "x.wit", "--lang", "cobol", "--output", "out"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{Name: "generate", Flags: Command.Flags, Action: action}
			if err := cmd.Run(context.Background(), append([]string{"generate"}, tt.args...)); err == nil {
				t.Fatal("want an error, got nil")
			}
		})
	}
}
