package cheader

import (
	"strings"
	"testing"

	"github.com/schell/witffi/internal/config"
	"github.com/schell/witffi/wit"
)

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

func TestGenerateDeclaresStructAndFunction(t *testing.T) {
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
		"#include \"witffi_types.h\"",
		"typedef struct FfiParsedRequest {",
		"FfiByteBuffer recipient_address;",
		"uint64_t chain_id;",
		"} FfiParsedRequest;",
		"FfiParsedRequest witffi_parser_parse(FfiByteSlice input);",
		"void witffi_free_parsed_request(FfiParsedRequest v);",
	}
	for _, want := range wantSubstrings {
		if !strings.Contains(out, want) {
			t.Errorf("generated header missing %q\n---\n%s", want, out)
		}
	}
}

func TestTypesHeaderDeclaresSharedTypes(t *testing.T) {
	for _, want := range []string{"FfiByteSlice", "FfiByteBuffer", "witffi_free_byte_buffer"} {
		if !strings.Contains(TypesHeader, want) {
			t.Errorf("witffi_types.h missing %q", want)
		}
	}
}
