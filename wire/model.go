package wire

import (
	"fmt"

	"github.com/schell/witffi/internal/names"
	"github.com/schell/witffi/wit"
)

// ProjectionKind tags the shape a single position (a record field, a
// variant case payload, a list element, a function parameter or result)
// takes at the wire boundary.
type ProjectionKind int

const (
	// Value is a plain primitive value projected in place (bool, an
	// integer, a float, or char).
	Value ProjectionKind = iota
	// Slice is a borrowed element sequence (a string, or list<T> of a
	// fixed-width element) in input position: FfiByteSlice plus an
	// element stride.
	Slice
	// Buffer is an owned element sequence in output position:
	// FfiByteBuffer plus an element stride.
	Buffer
	// StructValue embeds a named Struct, Wrapper, CEnum, or
	// OptionWrapper type by value.
	StructValue
	// OwnedPointer is a nullable owned pointer to a named heap-carrying
	// type: used for option<T> where T is heap-carrying, and for every
	// variant case payload. Exactly one pointer is non-null, determined
	// by the discriminant.
	OwnedPointer
)

// Projection describes the wire-level representation of a single WIT
// type occurring at one position in the model.
type Projection struct {
	Kind ProjectionKind

	// Primitive is valid when Kind == Value, or as the element type of
	// Kind == Slice / Buffer (the stride of each element; U8 for
	// strings and list<u8>).
	Primitive PrimitiveKind

	// RefName is valid when Kind == StructValue or Kind == OwnedPointer:
	// the wire name of the NamedType this position refers to.
	RefName string
}

// Shape is implemented by every named wire type's underlying
// representation: Struct, TaggedUnion, CEnum, Wrapper, or OptionWrapper.
type Shape interface{ isShape() }

type shape struct{}

func (shape) isShape() {}

// Struct is the wire projection of a WIT record or tuple: a C struct
// with fields in declaration order, each projected independently.
type Struct struct {
	shape
	Fields []StructField
}

// StructField is one field of a Struct.
type StructField struct {
	Name       string
	Projection Projection
}

// TaggedUnion is the wire projection of a WIT variant or result: a
// discriminant plus one nullable owned pointer per case.
type TaggedUnion struct {
	shape
	DiscriminantKind PrimitiveKind
	Cases            []UnionCase
}

// UnionCase is one case of a TaggedUnion. Payload is nil for a
// payload-free case.
type UnionCase struct {
	Name         string
	Discriminant int
	Payload      *Projection
}

// CEnum is the wire projection of a WIT enum: a plain C enum with
// sequential discriminants starting at 0, no payloads.
type CEnum struct {
	shape
	Variants []string
}

// Wrapper is the wire projection of a WIT flags type: the smallest
// unsigned integer that fits the bit count, bits in declaration order.
type Wrapper struct {
	shape
	Underlying PrimitiveKind
	Flags      []string
}

// OptionWrapper is the wire projection of option<T> for a
// trivially-copyable T: {bool has_value; T value}.
type OptionWrapper struct {
	shape
	Elem Projection
}

// NamedType is one entry in a Model: the wire projection of a single
// named WIT type, keyed by its WIT identifier.
type NamedType struct {
	WitName     string
	TypeDef     *wit.TypeDef
	Shape       Shape
	HeapCarrier bool
}

// FreeFunction describes the `free_<type>` function the generator must
// emit for one heap-carrying NamedType: for every owned type appearing
// in any exported return, the generator emits a named free_<type>
// function that the caller must invoke exactly once to release it.
type FreeFunction struct {
	WitName string
}

// Model is the fully projected wire model for one World: every named
// type's Shape, in the same topological order as the TypeRegistry it
// was built from, plus the list of free functions the generator owes.
type Model struct {
	Types         []*NamedType
	FreeFunctions []*FreeFunction

	byWitType map[*wit.TypeDef]*NamedType
}

// Lookup returns the NamedType projected from td, or nil if td is not a
// named type in this Model.
func (m *Model) Lookup(td *wit.TypeDef) *NamedType { return m.byWitType[td] }

// Project walks reg in topological order and produces the wire Model:
// one NamedType per registry entry, plus exactly one FreeFunction per
// heap-carrying named type (the one-owner invariant asserted by
// wire/model_test.go).
func Project(reg *wit.TypeRegistry) (*Model, error) {
	m := &Model{byWitType: make(map[*wit.TypeDef]*NamedType)}

	for _, entry := range reg.Entries() {
		shape, err := projectKind(entry.TypeDef.Kind, m)
		if err != nil {
			return nil, fmt.Errorf("wire: project %q: %w", entry.TypeDef.TypeName(), err)
		}
		nt := &NamedType{
			WitName:     entry.TypeDef.TypeName(),
			TypeDef:     entry.TypeDef,
			Shape:       shape,
			HeapCarrier: entry.HeapCarrier(),
		}
		m.Types = append(m.Types, nt)
		m.byWitType[entry.TypeDef] = nt
		if nt.HeapCarrier {
			m.FreeFunctions = append(m.FreeFunctions, &FreeFunction{WitName: nt.WitName})
		}
	}

	return m, nil
}

// projectKind projects a named type's own TypeDefKind into a Shape.
func projectKind(kind wit.TypeDefKind, m *Model) (Shape, error) {
	switch k := kind.(type) {
	case *wit.Record:
		fields := make([]StructField, len(k.Fields))
		for i, f := range k.Fields {
			p, err := projectField(f.Type, m)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
			fields[i] = StructField{Name: names.ValueIdent(names.C, f.Name), Projection: p}
		}
		return &Struct{Fields: fields}, nil

	case *wit.Tuple:
		rec := k.Despecialize()
		fields := make([]StructField, len(rec.Fields))
		for i, f := range rec.Fields {
			p, err := projectField(f.Type, m)
			if err != nil {
				return nil, fmt.Errorf("tuple element %s: %w", f.Name, err)
			}
			fields[i] = StructField{Name: "f" + f.Name, Projection: p}
		}
		return &Struct{Fields: fields}, nil

	case *wit.Variant:
		return projectVariantLike(k.Cases, m)

	case *wit.Result:
		cases := []wit.Case{{Name: "ok", Type: k.OK}, {Name: "error", Type: k.Err}}
		return projectVariantLike(cases, m)

	case *wit.Enum:
		variants := make([]string, len(k.Cases))
		for i, c := range k.Cases {
			variants[i] = c.Name
		}
		return &CEnum{Variants: variants}, nil

	case *wit.Flags:
		names := make([]string, len(k.Flags))
		for i, f := range k.Flags {
			names[i] = f.Name
		}
		return &Wrapper{Underlying: flagsUnderlying(len(names)), Flags: names}, nil

	case *wit.Option:
		p, err := projectField(k.Type, m)
		if err != nil {
			return nil, err
		}
		if isHeapCarrierProjection(p, m) {
			ref, err := refName(k.Type, m)
			if err != nil {
				return nil, err
			}
			return pointerShape(ref), nil
		}
		return &OptionWrapper{Elem: p}, nil

	case *wit.List:
		// A named type whose sole definition is `type foo = list<bar>`
		// projects as a single-field struct wrapping the list's wire
		// container, keeping the named/unnamed projection rules
		// uniform for callers that only ever look up NamedTypes.
		p, err := projectListElement(k.Type, m, Buffer)
		if err != nil {
			return nil, err
		}
		return &Struct{Fields: []StructField{{Name: "items", Projection: p}}}, nil

	case *wit.TypeDef:
		// Type alias: project through to the aliased definition.
		return projectKind(k.Kind, m)

	default:
		return nil, fmt.Errorf("no wire projection for %T", kind)
	}
}

func projectVariantLike(cases []wit.Case, m *Model) (Shape, error) {
	n := len(cases)
	union := &TaggedUnion{DiscriminantKind: DiscriminantKind(n)}
	for i, c := range cases {
		uc := UnionCase{Name: c.Name, Discriminant: i}
		if c.Type != nil {
			ref, err := refName(c.Type, m)
			if err != nil {
				return nil, fmt.Errorf("case %q: %w", c.Name, err)
			}
			p := Projection{Kind: OwnedPointer, RefName: ref}
			uc.Payload = &p
		}
		union.Cases = append(union.Cases, uc)
	}
	return union, nil
}

// projectField projects a WIT type occurring as a record field, tuple
// element, or (trivially-copyable) option element: these positions are
// always embedded by value, never as a top-level borrowed/owned
// container (only string/list get that treatment, and only at the
// top level of a function parameter or result — see ProjectParam /
// ProjectResult).
func projectField(t wit.Type, m *Model) (Projection, error) {
	switch v := t.(type) {
	case wit.Bool:
		return Projection{Kind: Value, Primitive: Bool}, nil
	case wit.S8:
		return Projection{Kind: Value, Primitive: S8}, nil
	case wit.U8:
		return Projection{Kind: Value, Primitive: U8}, nil
	case wit.S16:
		return Projection{Kind: Value, Primitive: S16}, nil
	case wit.U16:
		return Projection{Kind: Value, Primitive: U16}, nil
	case wit.S32:
		return Projection{Kind: Value, Primitive: S32}, nil
	case wit.U32:
		return Projection{Kind: Value, Primitive: U32}, nil
	case wit.S64:
		return Projection{Kind: Value, Primitive: S64}, nil
	case wit.U64:
		return Projection{Kind: Value, Primitive: U64}, nil
	case wit.F32:
		return Projection{Kind: Value, Primitive: F32}, nil
	case wit.F64:
		return Projection{Kind: Value, Primitive: F64}, nil
	case wit.Char:
		return Projection{Kind: Value, Primitive: Char}, nil
	case wit.String:
		// A string nested inside a record/tuple is always an owned
		// buffer: the enclosing aggregate is only ever handed across
		// the boundary as a whole, so its heap-carrying leaves are
		// always callee-allocated, freed when the aggregate is freed.
		return Projection{Kind: Buffer, Primitive: U8}, nil
	case *wit.TypeDef:
		if v.Name == nil {
			// Anonymous inline type, e.g. a record field typed
			// directly as `list<u8>` rather than through a named
			// type alias. Only anonymous lists are projectable;
			// any other anonymous aggregate has no wire projection.
			if l, ok := v.Kind.(*wit.List); ok {
				return projectListElement(l.Type, m, Buffer)
			}
			return Projection{}, fmt.Errorf("anonymous %T has no defined wire projection in field position", v.Kind)
		}
		ref, err := refName(v, m)
		if err != nil {
			return Projection{}, err
		}
		return Projection{Kind: StructValue, RefName: ref}, nil
	default:
		return Projection{}, fmt.Errorf("type %T has no defined wire projection in this position", t)
	}
}

// projectListElement projects list<T> as a Slice (input) or Buffer
// (output) container, with Primitive set to T's wire stride when T is a
// primitive, or to U8 with an opaque stride when T is a named
// non-trivial type (each element is then a wire struct of the
// referenced NamedType's size, which the emitter computes from its own
// target's struct layout).
func projectListElement(t wit.Type, m *Model, kind ProjectionKind) (Projection, error) {
	switch v := t.(type) {
	case wit.U8:
		return Projection{Kind: kind, Primitive: U8}, nil
	case *wit.TypeDef:
		ref, err := refName(v, m)
		if err != nil {
			return Projection{}, err
		}
		return Projection{Kind: kind, RefName: ref, Primitive: U8}, nil
	default:
		p, err := projectField(t, m)
		if err != nil {
			return Projection{}, err
		}
		p.Kind = kind
		return p, nil
	}
}

func refName(t wit.Type, m *Model) (string, error) {
	td, ok := t.(*wit.TypeDef)
	if !ok || td.Name == nil {
		return "", fmt.Errorf("cannot reference an anonymous type at the wire boundary")
	}
	return td.TypeName(), nil
}

func isHeapCarrierProjection(p Projection, m *Model) bool {
	switch p.Kind {
	case Buffer, OwnedPointer:
		return true
	case StructValue:
		for _, nt := range m.Types {
			if nt.WitName == p.RefName {
				return nt.HeapCarrier
			}
		}
		return false
	default:
		return false
	}
}

func pointerShape(refName string) Shape {
	return &OptionWrapper{Elem: Projection{Kind: OwnedPointer, RefName: refName}}
}

func flagsUnderlying(n int) PrimitiveKind {
	switch {
	case n <= 8:
		return U8
	case n <= 16:
		return U16
	case n <= 32:
		return U32
	default:
		return U64
	}
}

// ProjectParam projects a WIT type occurring as a function parameter
// (input/borrowed position): string and list<T> project as a borrowed
// Slice; everything else is identical to field projection.
func ProjectParam(t wit.Type, m *Model) (Projection, error) {
	switch v := t.(type) {
	case wit.String:
		return Projection{Kind: Slice, Primitive: U8}, nil
	case *wit.TypeDef:
		if l, ok := v.Kind.(*wit.List); ok {
			return projectListElement(l.Type, m, Slice)
		}
		return projectField(t, m)
	default:
		return projectField(t, m)
	}
}

// ProjectResult projects a WIT type occurring as a function result
// (output/owned position): string and list<T> project as an owned
// Buffer; everything else is identical to field projection.
func ProjectResult(t wit.Type, m *Model) (Projection, error) {
	switch v := t.(type) {
	case wit.String:
		return Projection{Kind: Buffer, Primitive: U8}, nil
	case *wit.TypeDef:
		if l, ok := v.Kind.(*wit.List); ok {
			return projectListElement(l.Type, m, Buffer)
		}
		return projectField(t, m)
	default:
		return projectField(t, m)
	}
}
