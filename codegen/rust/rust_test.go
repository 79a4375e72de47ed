package rust

import (
	"strings"
	"testing"

	"github.com/schell/witffi/internal/config"
	"github.com/schell/witffi/wit"
)

// buildResolve assembles a minimal single-world, single-interface
// Resolve: one record type and one exported function taking a string
// and returning that record, enough to exercise all four emitter
// passes end to end.
func buildResolve(t *testing.T) *wit.Resolve {
	t.Helper()

	recordName := "parsed-request"
	recordTD := &wit.TypeDef{Name: &recordName, Kind: &wit.Record{Fields: []wit.Field{
		{Name: "recipient-address", Type: wit.String{}},
		{Name: "chain-id", Type: wit.U64{}},
	}}}

	ifaceName := "parser"
	iface := &wit.Interface{Name: &ifaceName}
	iface.TypeDefs.Set(recordName, recordTD)
	iface.Functions.Set("parse", &wit.Function{
		Name:    "parse",
		Params:  []wit.Param{{Name: "input", Type: wit.String{}}},
		Results: []wit.Param{{Type: recordTD}},
	})

	world := &wit.World{Name: "witffi"}
	world.Exports.Set(ifaceName, &wit.InterfaceRef{Interface: iface})

	return &wit.Resolve{Worlds: []*wit.World{world}, Interfaces: []*wit.Interface{iface}}
}

func TestGenerateProducesExpectedShapes(t *testing.T) {
	res := buildResolve(t)
	cfg, err := config.New()
	if err != nil {
		t.Fatalf("config.New: %v", err)
	}

	out, err := Generate(res, cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	wantSubstrings := []string{
		"pub struct ParsedRequest {",
		"pub recipient_address: String,",
		"pub chain_id: u64,",
		"pub trait Witffi {",
		"fn parser_parse(input: &str) -> ParsedRequest;",
		"fn parsed_request_to_ffi(v: ParsedRequest) -> FfiParsedRequest {",
		"macro_rules! register_ffi {",
		"pub unsafe extern \"C\" fn witffi_parser_parse(",
		"macro_rules! register_jni {",
	}
	for _, want := range wantSubstrings {
		if !strings.Contains(out, want) {
			t.Errorf("generated output missing %q\n---\n%s", want, out)
		}
	}
}

func TestGenerateHonoursCTypePrefix(t *testing.T) {
	res := buildResolve(t)
	cfg, err := config.New(config.CTypePrefix("Wit"), config.CFunctionPrefix("myffi"))
	if err != nil {
		t.Fatalf("config.New: %v", err)
	}

	out, err := Generate(res, cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if strings.Contains(out, "FfiParsedRequest") {
		t.Errorf("expected custom CTypePrefix to replace the default Ffi prefix entirely")
	}
	if !strings.Contains(out, "WitParsedRequest") {
		t.Errorf("expected WitParsedRequest to appear with CTypePrefix %q\n---\n%s", "Wit", out)
	}
	if !strings.Contains(out, "myffi_parser_parse") {
		t.Errorf("expected myffi_parser_parse to appear with CFunctionPrefix override\n---\n%s", out)
	}
	if !strings.Contains(out, "myffi_free_parsed_request") {
		t.Errorf("expected myffi_free_parsed_request to appear\n---\n%s", out)
	}
}
