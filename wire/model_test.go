package wire

import (
	"testing"

	"github.com/schell/witffi/wit"
)

// buildWorld assembles a minimal single-world Resolve containing the
// named types in kinds, in order, all owned directly by the world's
// export map so wit.NewTypeRegistry finds them.
func buildWorld(t *testing.T, kinds map[string]wit.TypeDefKind) *wit.World {
	t.Helper()
	w := &wit.World{Name: "test"}
	for name, kind := range kinds {
		name := name
		td := &wit.TypeDef{Name: &name, Kind: kind}
		w.Exports.Set(name, td)
	}
	return w
}

func TestProjectRecordWithString(t *testing.T) {
	w := buildWorld(t, map[string]wit.TypeDefKind{
		"native-request": &wit.Record{Fields: []wit.Field{
			{Name: "recipient-address", Type: wit.String{}},
			{Name: "chain-id", Type: wit.U64{}},
		}},
	})
	reg, err := wit.NewTypeRegistry(w)
	if err != nil {
		t.Fatalf("NewTypeRegistry: %v", err)
	}
	model, err := Project(reg)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if len(model.Types) != 1 {
		t.Fatalf("expected 1 named type, got %d", len(model.Types))
	}
	nt := model.Types[0]
	if !nt.HeapCarrier {
		t.Errorf("expected native-request to be heap-carrying (contains a string)")
	}
	s, ok := nt.Shape.(*Struct)
	if !ok {
		t.Fatalf("expected *Struct shape, got %T", nt.Shape)
	}
	if len(s.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(s.Fields))
	}
	if s.Fields[0].Projection.Kind != Buffer {
		t.Errorf("expected recipient-address to project as an owned Buffer, got %v", s.Fields[0].Projection.Kind)
	}
	if s.Fields[1].Projection.Kind != Value || s.Fields[1].Projection.Primitive != U64 {
		t.Errorf("expected chain-id to project as a plain u64 value")
	}
}

func TestProjectExactlyOneFreeFunctionPerHeapCarrier(t *testing.T) {
	w := buildWorld(t, map[string]wit.TypeDefKind{
		"plain-point": &wit.Record{Fields: []wit.Field{
			{Name: "x", Type: wit.F64{}},
			{Name: "y", Type: wit.F64{}},
		}},
		"named-thing": &wit.Record{Fields: []wit.Field{
			{Name: "label", Type: wit.String{}},
		}},
	})
	reg, err := wit.NewTypeRegistry(w)
	if err != nil {
		t.Fatalf("NewTypeRegistry: %v", err)
	}
	model, err := Project(reg)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	wantHeapCarriers := 0
	for _, nt := range model.Types {
		if nt.HeapCarrier {
			wantHeapCarriers++
		}
	}
	if len(model.FreeFunctions) != wantHeapCarriers {
		t.Errorf("FreeFunctions count = %d, want %d (one per heap-carrying named type)", len(model.FreeFunctions), wantHeapCarriers)
	}
}

func TestProjectVariantTaggedUnion(t *testing.T) {
	w := buildWorld(t, map[string]wit.TypeDefKind{
		"simple-payload": &wit.Record{Fields: []wit.Field{{Name: "n", Type: wit.U32{}}}},
	})
	var payloadTD *wit.TypeDef
	w.Exports.All()(func(_ string, item wit.WorldItem) bool {
		if td, ok := item.(*wit.TypeDef); ok {
			payloadTD = td
		}
		return true
	})

	variantName := "transaction-request"
	variantTD := &wit.TypeDef{Name: &variantName, Kind: &wit.Variant{Cases: []wit.Case{
		{Name: "native", Type: payloadTD},
		{Name: "unrecognised"},
	}}}
	w.Exports.Set(variantName, variantTD)

	reg, err := wit.NewTypeRegistry(w)
	if err != nil {
		t.Fatalf("NewTypeRegistry: %v", err)
	}
	model, err := Project(reg)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	nt := model.Lookup(variantTD)
	if nt == nil {
		t.Fatalf("expected a NamedType for %q", variantName)
	}
	union, ok := nt.Shape.(*TaggedUnion)
	if !ok {
		t.Fatalf("expected *TaggedUnion shape, got %T", nt.Shape)
	}
	if len(union.Cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(union.Cases))
	}
	if union.Cases[0].Payload == nil || union.Cases[0].Payload.Kind != OwnedPointer {
		t.Errorf("expected case 0 (native) to carry an owned pointer payload")
	}
	if union.Cases[1].Payload != nil {
		t.Errorf("expected case 1 (unrecognised) to carry no payload")
	}
	if union.Cases[1].Discriminant != 1 {
		t.Errorf("expected case 1 discriminant == 1, got %d", union.Cases[1].Discriminant)
	}
}

func TestFlagsUnderlyingWidth(t *testing.T) {
	tests := []struct {
		n    int
		want PrimitiveKind
	}{
		{1, U8}, {8, U8}, {9, U16}, {16, U16}, {17, U32}, {32, U32}, {33, U64},
	}
	for _, tt := range tests {
		if got := flagsUnderlying(tt.n); got != tt.want {
			t.Errorf("flagsUnderlying(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}
