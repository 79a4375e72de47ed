package wit

import (
	"encoding/json"
	"fmt"
	"io"
)

// DecodeJSON decodes a resolved WIT JSON document (as produced by
// `wasm-tools component wit -j`) into a Resolve.
//
// Unlike the upstream wasm-tools-go decoder, which streams tokens through
// a generic arena/index codec to reproduce wasm-tools' JSON schema
// bit-for-bit, this decoder assumes the JSON producer is a trusted,
// already-resolved external input (spec Non-goal: the WIT parser itself
// is out of scope) and performs a direct two-pass decode: first into a
// plain document of index-addressed records, then resolved into the
// pointer graph that Resolve, World, Interface, and TypeDef expect.
func DecodeJSON(r io.Reader) (*Resolve, error) {
	var doc wireDocument
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("wit: decode JSON: %w", err)
	}
	return doc.resolve()
}

// wireDocument mirrors the top-level shape of a `wasm-tools component wit
// -j` document: flat, index-addressed arenas for worlds, interfaces,
// types, and packages, cross-referencing each other by integer index.
type wireDocument struct {
	Worlds     []wireWorld     `json:"worlds"`
	Interfaces []wireInterface `json:"interfaces"`
	Types      []wireTypeDef   `json:"types"`
	Packages   []wirePackage   `json:"packages"`
}

type wireWorld struct {
	Name    string            `json:"name"`
	Package *int              `json:"package"`
	Imports map[string]wireID `json:"imports"`
	Exports map[string]wireID `json:"exports"`
	Docs    wireDocs          `json:"docs"`
}

type wireInterface struct {
	Name      *string         `json:"name"`
	Package   *int            `json:"package"`
	Types     map[string]int  `json:"types"`
	Functions map[string]wireFunction `json:"functions"`
	Docs      wireDocs        `json:"docs"`
}

// wireID identifies a WorldItem reference: either a type, an interface,
// or an inline function, tagged by kind.
type wireID struct {
	Kind string `json:"kind"` // "type", "interface", or "function"
	Type *int   `json:"type,omitempty"`
	Interface *int `json:"interface,omitempty"`
	Function *wireFunction `json:"function,omitempty"`
}

type wireTypeDef struct {
	Name  *string       `json:"name"`
	Owner *wireOwner    `json:"owner"`
	Kind  wireTypeKind  `json:"kind"`
	Docs  wireDocs      `json:"docs"`
}

type wireOwner struct {
	World     *int `json:"world"`
	Interface *int `json:"interface"`
}

// wireTypeKind is decoded manually in resolve() via a second pass over
// raw JSON, since its shape is a tagged union keyed by a free-form string
// ("record", "variant", "enum", "flags", "tuple", "option", "result",
// "list", a primitive name, or {"type": <index>} for an alias).
type wireTypeKind struct {
	Raw json.RawMessage `json:"-"`
}

func (k *wireTypeKind) UnmarshalJSON(data []byte) error {
	k.Raw = append([]byte(nil), data...)
	return nil
}

type wireFunction struct {
	Name    string       `json:"name"`
	Params  []wireParam  `json:"params"`
	Results []wireParam  `json:"results"`
	Docs    wireDocs     `json:"docs"`
}

type wireParam struct {
	Name string        `json:"name"`
	Type json.RawMessage `json:"type"`
}

type wirePackage struct {
	Name       string         `json:"name"`
	Interfaces map[string]int `json:"interfaces"`
	Worlds     map[string]int `json:"worlds"`
	Docs       wireDocs       `json:"docs"`
}

type wireDocs struct {
	Contents *string `json:"contents"`
}

func (d wireDocs) toDocs() Docs {
	if d.Contents == nil {
		return Docs{}
	}
	return Docs{Contents: *d.Contents}
}

// resolve converts the flat wireDocument into the pointer-graph Resolve.
func (doc *wireDocument) resolve() (*Resolve, error) {
	res := &Resolve{}

	res.Packages = make([]*Package, len(doc.Packages))
	for i := range doc.Packages {
		id, err := ParseIdent(doc.Packages[i].Name)
		if err != nil {
			return nil, fmt.Errorf("wit: package %d: %w", i, err)
		}
		res.Packages[i] = &Package{Name: id, Docs: doc.Packages[i].Docs.toDocs()}
	}

	res.TypeDefs = make([]*TypeDef, len(doc.Types))
	for i := range doc.Types {
		res.TypeDefs[i] = &TypeDef{Name: doc.Types[i].Name, Docs: doc.Types[i].Docs.toDocs()}
	}

	res.Interfaces = make([]*Interface, len(doc.Interfaces))
	for i := range doc.Interfaces {
		iface := &Interface{Name: doc.Interfaces[i].Name, Docs: doc.Interfaces[i].Docs.toDocs()}
		if p := doc.Interfaces[i].Package; p != nil && *p < len(res.Packages) {
			iface.Package = res.Packages[*p]
		}
		res.Interfaces[i] = iface
	}

	res.Worlds = make([]*World, len(doc.Worlds))
	for i := range doc.Worlds {
		w := &World{Name: doc.Worlds[i].Name, Docs: doc.Worlds[i].Docs.toDocs()}
		if p := doc.Worlds[i].Package; p != nil && *p < len(res.Packages) {
			w.Package = res.Packages[*p]
		}
		res.Worlds[i] = w
	}

	// Second pass: resolve type kinds, now that every TypeDef has an
	// address, so record/variant/etc. fields can reference other types.
	for i := range doc.Types {
		kind, err := decodeTypeKind(doc.Types[i].Kind.Raw, res)
		if err != nil {
			return nil, fmt.Errorf("wit: type %d (%s): %w", i, nameOrAnon(doc.Types[i].Name), err)
		}
		res.TypeDefs[i].Kind = kind
		if o := doc.Types[i].Owner; o != nil {
			switch {
			case o.World != nil && *o.World < len(res.Worlds):
				res.TypeDefs[i].Owner = res.Worlds[*o.World]
			case o.Interface != nil && *o.Interface < len(res.Interfaces):
				res.TypeDefs[i].Owner = res.Interfaces[*o.Interface]
			}
		}
	}

	for i := range doc.Interfaces {
		iface := res.Interfaces[i]
		for name, idx := range doc.Interfaces[i].Types {
			if idx < 0 || idx >= len(res.TypeDefs) {
				continue
			}
			iface.TypeDefs.Set(name, res.TypeDefs[idx])
		}
		for name, fn := range doc.Interfaces[i].Functions {
			f, err := decodeFunction(name, fn, res)
			if err != nil {
				return nil, fmt.Errorf("wit: interface function %q: %w", name, err)
			}
			iface.Functions.Set(name, f)
		}
	}

	for i := range doc.Worlds {
		w := res.Worlds[i]
		for name, item := range doc.Worlds[i].Exports {
			wi, err := decodeWorldItem(name, item, res)
			if err != nil {
				return nil, fmt.Errorf("wit: world export %q: %w", name, err)
			}
			w.Exports.Set(name, wi)
		}
		for name, item := range doc.Worlds[i].Imports {
			wi, err := decodeWorldItem(name, item, res)
			if err != nil {
				return nil, fmt.Errorf("wit: world import %q: %w", name, err)
			}
			w.Imports.Set(name, wi)
		}
	}

	return res, nil
}

func nameOrAnon(name *string) string {
	if name == nil {
		return "<anonymous>"
	}
	return *name
}

func decodeWorldItem(name string, item wireID, res *Resolve) (WorldItem, error) {
	switch item.Kind {
	case "type":
		if item.Type == nil || *item.Type >= len(res.TypeDefs) {
			return nil, fmt.Errorf("type index out of range for %q", name)
		}
		return res.TypeDefs[*item.Type], nil
	case "function":
		if item.Function == nil {
			return nil, fmt.Errorf("missing function body for %q", name)
		}
		return decodeFunction(name, *item.Function, res)
	case "interface":
		if item.Interface == nil || *item.Interface >= len(res.Interfaces) {
			return nil, fmt.Errorf("interface index out of range for %q", name)
		}
		return &InterfaceRef{Interface: res.Interfaces[*item.Interface]}, nil
	default:
		return nil, fmt.Errorf("unknown world item kind %q for %q", item.Kind, name)
	}
}

func decodeFunction(name string, fn wireFunction, res *Resolve) (*Function, error) {
	f := &Function{Name: name, Docs: fn.Docs.toDocs()}
	if f.Name == "" {
		f.Name = fn.Name
	}
	for _, p := range fn.Params {
		t, err := decodeTypeRef(p.Type, res)
		if err != nil {
			return nil, fmt.Errorf("param %q: %w", p.Name, err)
		}
		f.Params = append(f.Params, Param{Name: p.Name, Type: t})
	}
	for _, p := range fn.Results {
		t, err := decodeTypeRef(p.Type, res)
		if err != nil {
			return nil, fmt.Errorf("result %q: %w", p.Name, err)
		}
		f.Results = append(f.Results, Param{Name: p.Name, Type: t})
	}
	return f, nil
}

// decodeTypeRef decodes a type occurring inline in a function signature:
// either a JSON string naming a primitive, or a JSON number indexing into
// res.TypeDefs.
func decodeTypeRef(raw json.RawMessage, res *Resolve) (Type, error) {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return ParseType(name)
	}
	var idx int
	if err := json.Unmarshal(raw, &idx); err == nil {
		if idx < 0 || idx >= len(res.TypeDefs) {
			return nil, fmt.Errorf("type index %d out of range", idx)
		}
		return res.TypeDefs[idx], nil
	}
	return nil, fmt.Errorf("unrecognised type reference: %s", string(raw))
}

// decodeTypeKind decodes the tagged-union shape of a TypeDef's Kind.
func decodeTypeKind(raw json.RawMessage, res *Resolve) (TypeDefKind, error) {
	// A bare JSON string means either a primitive or a type alias keyword.
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return ParseType(asString)
	}

	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(raw, &tagged); err != nil {
		return nil, fmt.Errorf("malformed type kind: %w", err)
	}

	if raw, ok := tagged["type"]; ok {
		t, err := decodeTypeRef(raw, res)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	if raw, ok := tagged["record"]; ok {
		var r struct {
			Fields []struct {
				Name string          `json:"name"`
				Type json.RawMessage `json:"type"`
				Docs wireDocs        `json:"docs"`
			} `json:"fields"`
		}
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, err
		}
		rec := &Record{Fields: make([]Field, len(r.Fields))}
		for i, f := range r.Fields {
			t, err := decodeTypeRef(f.Type, res)
			if err != nil {
				return nil, fmt.Errorf("record field %q: %w", f.Name, err)
			}
			rec.Fields[i] = Field{Name: f.Name, Type: t, Docs: f.Docs.toDocs()}
		}
		return rec, nil
	}
	if raw, ok := tagged["variant"]; ok {
		var v struct {
			Cases []struct {
				Name string           `json:"name"`
				Type *json.RawMessage `json:"type"`
				Docs wireDocs         `json:"docs"`
			} `json:"cases"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		variant := &Variant{Cases: make([]Case, len(v.Cases))}
		for i, c := range v.Cases {
			var t Type
			if c.Type != nil {
				var err error
				t, err = decodeTypeRef(*c.Type, res)
				if err != nil {
					return nil, fmt.Errorf("variant case %q: %w", c.Name, err)
				}
			}
			variant.Cases[i] = Case{Name: c.Name, Type: t, Docs: c.Docs.toDocs()}
		}
		return variant, nil
	}
	if raw, ok := tagged["enum"]; ok {
		var e struct {
			Cases []struct {
				Name string   `json:"name"`
				Docs wireDocs `json:"docs"`
			} `json:"cases"`
		}
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, err
		}
		enum := &Enum{Cases: make([]EnumCase, len(e.Cases))}
		for i, c := range e.Cases {
			enum.Cases[i] = EnumCase{Name: c.Name, Docs: c.Docs.toDocs()}
		}
		return enum, nil
	}
	if raw, ok := tagged["flags"]; ok {
		var fl struct {
			Flags []struct {
				Name string   `json:"name"`
				Docs wireDocs `json:"docs"`
			} `json:"flags"`
		}
		if err := json.Unmarshal(raw, &fl); err != nil {
			return nil, err
		}
		flags := &Flags{Flags: make([]Flag, len(fl.Flags))}
		for i, f := range fl.Flags {
			flags.Flags[i] = Flag{Name: f.Name, Docs: f.Docs.toDocs()}
		}
		return flags, nil
	}
	if raw, ok := tagged["tuple"]; ok {
		var tup struct {
			Types []json.RawMessage `json:"types"`
		}
		if err := json.Unmarshal(raw, &tup); err != nil {
			return nil, err
		}
		tuple := &Tuple{Types: make([]Type, len(tup.Types))}
		for i, raw := range tup.Types {
			t, err := decodeTypeRef(raw, res)
			if err != nil {
				return nil, fmt.Errorf("tuple element %d: %w", i, err)
			}
			tuple.Types[i] = t
		}
		return tuple, nil
	}
	if raw, ok := tagged["option"]; ok {
		t, err := decodeTypeRef(raw, res)
		if err != nil {
			return nil, err
		}
		return &Option{Type: t}, nil
	}
	if raw, ok := tagged["result"]; ok {
		var r struct {
			OK  *json.RawMessage `json:"ok"`
			Err *json.RawMessage `json:"err"`
		}
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, err
		}
		result := &Result{}
		if r.OK != nil {
			t, err := decodeTypeRef(*r.OK, res)
			if err != nil {
				return nil, fmt.Errorf("result ok: %w", err)
			}
			result.OK = t
		}
		if r.Err != nil {
			t, err := decodeTypeRef(*r.Err, res)
			if err != nil {
				return nil, fmt.Errorf("result err: %w", err)
			}
			result.Err = t
		}
		return result, nil
	}
	if raw, ok := tagged["list"]; ok {
		t, err := decodeTypeRef(raw, res)
		if err != nil {
			return nil, err
		}
		return &List{Type: t}, nil
	}
	if _, ok := tagged["resource"]; ok {
		return nil, fmt.Errorf("resources are not supported")
	}
	if _, ok := tagged["handle"]; ok {
		return nil, fmt.Errorf("resource handles are not supported")
	}
	if _, ok := tagged["future"]; ok {
		return nil, fmt.Errorf("futures are not supported")
	}
	if _, ok := tagged["stream"]; ok {
		return nil, fmt.Errorf("streams are not supported")
	}
	return nil, fmt.Errorf("unrecognised type kind: %s", string(raw))
}
