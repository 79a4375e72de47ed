package golang

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

func TestGenerateProducesStructAndWrapper(t *testing.T) {
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
		"package witffi",
		`#include "ffi.h"`,
		`import "C"`,
		"\"github.com/schell/witffi/cm\"",
		"type ParsedRequest struct {",
		"RecipientAddress string",
		"ChainId          uint64",
		"func ParsedRequestFromWire(w C.FfiParsedRequest) ParsedRequest {",
		"func (v ParsedRequest) ToWire() C.FfiParsedRequest {",
		"func ParserParse(input string) ParsedRequest {",
		"C.witffi_parser_parse(",
		"defer C.witffi_free_parsed_request(result)",
		"return ParsedRequestFromWire(result)",
	}
	for _, want := range wantSubstrings {
		if !strings.Contains(out, want) {
			t.Errorf("generated Go source missing %q\n---\n%s", want, out)
		}
	}
}

func TestGeneratePackageNameStripsHyphens(t *testing.T) {
	recordName := "thing"
	td := &wit.TypeDef{Name: &recordName, Kind: &wit.Record{}}
	ifaceName := "things"
	iface := &wit.Interface{Name: &ifaceName}
	iface.TypeDefs.Set(recordName, td)

	world := &wit.World{Name: "zcash-eip681"}
	world.Exports.Set(ifaceName, &wit.InterfaceRef{Interface: iface})
	res := &wit.Resolve{Worlds: []*wit.World{world}, Interfaces: []*wit.Interface{iface}}

	cfg, err := config.New()
	if err != nil {
		t.Fatalf("config.New: %v", err)
	}
	out, err := Generate(res, cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(out, "package zcasheip681") {
		t.Errorf("generated Go source missing hyphen-stripped package clause:\n%s", out)
	}
}
