package swift

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

func TestGenerateProducesValueTypeAndWrapper(t *testing.T) {
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
		"public struct ParsedRequest {",
		"public let recipientAddress: String",
		"public let chainId: UInt64",
		"init(fromC c: FfiParsedRequest) {",
		"public func parserParse(_ input: String) -> ParsedRequest {",
		"inputUtf8.withUnsafeBufferPointer { inputBuf in",
		"defer { witffi_free_parsed_request(result) }",
	}
	for _, want := range wantSubstrings {
		if !strings.Contains(out.BindingsSwift, want) {
			t.Errorf("generated Swift missing %q\n---\n%s", want, out.BindingsSwift)
		}
	}

	if !strings.Contains(out.ModuleMap, "header \"ffi.h\"") {
		t.Errorf("module map missing header declaration:\n%s", out.ModuleMap)
	}
}
