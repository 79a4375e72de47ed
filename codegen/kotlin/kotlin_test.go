package kotlin

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

func TestGenerateProducesDataClassAndBridge(t *testing.T) {
	res := buildResolve(t)
	cfg, err := config.New(config.JVMPackage("com.example.witffi"), config.NativeLibraryName("witffi"))
	if err != nil {
		t.Fatalf("config.New: %v", err)
	}

	out, err := Generate(res, cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	wantSubstrings := []string{
		"package com.example.witffi",
		"data class ParsedRequest(val recipientAddress: String, val chainId: ULong)",
		"class ParsedRequestHandle internal constructor(private val handle: Long) : AutoCloseable {",
		"override fun close() = Bindings.ParsedRequestFree(handle)",
		`System.loadLibrary("witffi")`,
		"external fun ParserParse(arg0: String): Long",
		"external fun ParserParseFree(handle: Long)",
		"fun parserParse(input: String) : ParsedRequestHandle {",
		"val handle = ParserParse(input)",
		"return ParsedRequestHandle(handle)",
	}
	for _, want := range wantSubstrings {
		if !strings.Contains(out, want) {
			t.Errorf("generated Kotlin missing %q\n---\n%s", want, out)
		}
	}
}

func TestGenerateDefaultsJVMPackage(t *testing.T) {
	res := buildResolve(t)
	cfg, err := config.New()
	if err != nil {
		t.Fatalf("config.New: %v", err)
	}

	out, err := Generate(res, cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.Contains(out, "package org.witffi.witffi") {
		t.Errorf("generated Kotlin missing default package declaration:\n%s", out)
	}
}
