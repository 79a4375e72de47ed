// Package wit implements the input data model: a resolved WIT world, its
// type definitions, and its exported functions. It does not parse WIT
// source text itself; see [LoadWITFromPath] and [LoadJSON].
package wit

import (
	"fmt"

	"github.com/schell/witffi/internal/iterate"
	"github.com/schell/witffi/internal/ordered"
)

// Resolve represents a fully resolved set of WIT packages and worlds: a
// graph of packages merged together into slices organized by type, with
// everything topologically sorted and fully resolved.
type Resolve struct {
	Worlds     []*World
	Interfaces []*Interface
	TypeDefs   []*TypeDef
	Packages   []*Package
}

// World returns the single world this Resolve describes, failing if zero
// or more than one world is present. Per spec, worlds with multiple roots
// or import sections are out of scope; exactly one world is assumed.
func (r *Resolve) World() (*World, error) {
	switch len(r.Worlds) {
	case 0:
		return nil, fmt.Errorf("wit: no world found in resolved package")
	case 1:
		return r.Worlds[0], nil
	default:
		names := make([]string, len(r.Worlds))
		for i, w := range r.Worlds {
			names[i] = w.Name
		}
		return nil, fmt.Errorf("wit: expected exactly one world, found %d: %v", len(r.Worlds), names)
	}
}

// AllFunctions returns a sequence that yields each Function in a Resolve.
func (r *Resolve) AllFunctions() iterate.Seq[*Function] {
	return func(yield func(*Function) bool) {
		var done bool
		yield = iterate.Done(iterate.Once(yield), func() { done = true })
		for i := 0; i < len(r.Worlds) && !done; i++ {
			r.Worlds[i].AllFunctions()(yield)
		}
		for i := 0; i < len(r.Interfaces) && !done; i++ {
			r.Interfaces[i].AllFunctions()(yield)
		}
	}
}

// A World represents the root scope of a WIT file: its exported
// interfaces, free functions, and type definitions.
type World struct {
	_typeOwner

	Name      string
	Imports   ordered.Map[string, WorldItem]
	Exports   ordered.Map[string, WorldItem]
	Package   *Package
	Stability Stability
	Docs      Docs
}

// WITPackage returns the Package this World belongs to.
func (w *World) WITPackage() *Package { return w.Package }

// AllFunctions returns a sequence that yields each Function exported by a World.
func (w *World) AllFunctions() iterate.Seq[*Function] {
	return func(yield func(*Function) bool) {
		var done bool
		yield = iterate.Done(iterate.Once(yield), func() { done = true })
		w.Exports.All()(func(_ string, i WorldItem) bool {
			if f, ok := i.(*Function); ok {
				return yield(f)
			}
			return true
		})
		if done {
			return
		}
		w.Imports.All()(func(_ string, i WorldItem) bool {
			if f, ok := i.(*Function); ok {
				return yield(f)
			}
			return true
		})
	}
}

// A WorldItem is any item that can be exported from or imported into a
// World: currently an *Interface reference, a *TypeDef, or a *Function.
type WorldItem interface {
	isWorldItem()
}

type _worldItem struct{}

func (_worldItem) isWorldItem() {}

// InterfaceRef represents a reference to an Interface with a Stability attribute.
type InterfaceRef struct {
	_worldItem

	Interface *Interface
	Stability Stability
}

// An Interface is a named group of functions and types inside a World.
type Interface struct {
	_typeOwner

	Name      *string
	TypeDefs  ordered.Map[string, *TypeDef]
	Functions ordered.Map[string, *Function]
	Package   *Package
	Stability Stability
	Docs      Docs
}

// WITPackage returns the Package this Interface belongs to.
func (i *Interface) WITPackage() *Package { return i.Package }

// AllFunctions returns a sequence that yields each Function declared in an Interface.
func (i *Interface) AllFunctions() iterate.Seq[*Function] {
	return func(yield func(*Function) bool) {
		i.Functions.All()(func(_ string, f *Function) bool {
			return yield(f)
		})
	}
}

// TypeDef represents a WIT type definition. A TypeDef may be named or
// anonymous, and optionally belongs to a World or Interface.
type TypeDef struct {
	_type
	_worldItem
	Name      *string
	Kind      TypeDefKind
	Owner     TypeOwner
	Stability Stability
	Docs      Docs
}

// TypeName returns the WIT type name for t, or "" if t is anonymous.
func (t *TypeDef) TypeName() string {
	if t.Name != nil {
		return *t.Name
	}
	return ""
}

// Root returns the root TypeDef of a type alias t. If t is not an alias,
// Root returns t unchanged.
func (t *TypeDef) Root() *TypeDef {
	for {
		switch kind := t.Kind.(type) {
		case *TypeDef:
			t = kind
		default:
			return t
		}
	}
}

// TypeDefKind represents the underlying type in a TypeDef: one of Record,
// Flags, Tuple, Variant, Enum, Option, Result, List, or another TypeDef
// (an alias), or a Type (primitive).
type TypeDefKind interface {
	isTypeDefKind()
}

type _typeDefKind struct{}

func (_typeDefKind) isTypeDefKind() {}

// KindOf probes Type t to determine if it is a TypeDef with TypeDefKind K,
// returning the underlying Kind if present.
func KindOf[K TypeDefKind](t Type) (kind K) {
	if td, ok := t.(*TypeDef); ok {
		if kind, ok = td.Kind.(K); ok {
			return kind
		}
	}
	var zero K
	return zero
}

// Record represents a WIT record type: an ordered set of named fields.
type Record struct {
	_typeDefKind
	Fields []Field
}

// Field represents a named field in a Record.
type Field struct {
	Name string
	Type Type
	Docs Docs
}

// Flags represents a WIT flags type: an ordered set of named bits.
type Flags struct {
	_typeDefKind
	Flags []Flag
}

// Flag represents a single named bit in a Flags type.
type Flag struct {
	Name string
	Docs Docs
}

// Tuple represents a WIT tuple type: a fixed-length, positionally
// identified sequence of Types.
type Tuple struct {
	_typeDefKind
	Types []Type
}

// Despecialize despecializes Tuple t into a Record with 0-based integer
// field names ("0", "1", ...), the form the wire model projects.
func (t *Tuple) Despecialize() *Record {
	r := &Record{Fields: make([]Field, len(t.Types))}
	for i := range t.Types {
		r.Fields[i].Name = fmt.Sprintf("%d", i)
		r.Fields[i].Type = t.Types[i]
	}
	return r
}

// Variant represents a WIT variant type: an ordered set of named cases,
// each either payload-free or carrying one associated Type.
type Variant struct {
	_typeDefKind
	Cases []Case
}

// Case represents a single case in a Variant.
type Case struct {
	Name string
	Type Type // nil if this case carries no payload
	Docs Docs
}

// Types returns the unique associated types across a Variant's cases.
func (v *Variant) Types() []Type {
	var types []Type
	seen := make(map[Type]bool)
	for i := range v.Cases {
		t := v.Cases[i].Type
		if t == nil || seen[t] {
			continue
		}
		types = append(types, t)
		seen[t] = true
	}
	return types
}

// Enum represents a WIT enum type: a Variant with no associated payloads.
type Enum struct {
	_typeDefKind
	Cases []EnumCase
}

// EnumCase represents a single case in an Enum.
type EnumCase struct {
	Name string
	Docs Docs
}

// Option represents a WIT option<T> type: a nullable T.
type Option struct {
	_typeDefKind
	Type Type
}

// Result represents a WIT result<Ok,Err> type. Either branch may be nil
// (result or result<_,E> or result<T>).
type Result struct {
	_typeDefKind
	OK  Type
	Err Type
}

// Types returns the unique associated types in a Result.
func (r *Result) Types() []Type {
	var types []Type
	if r.OK != nil {
		types = append(types, r.OK)
	}
	if r.Err != nil && r.Err != r.OK {
		types = append(types, r.Err)
	}
	return types
}

// List represents a WIT list<T> type: a variable-length sequence of T.
type List struct {
	_typeDefKind
	Type Type
}

// TypeOwner is implemented by any type that can own a TypeDef: currently
// World and Interface.
type TypeOwner interface {
	AllFunctions() iterate.Seq[*Function]
	WITPackage() *Package
	isTypeOwner()
}

type _typeOwner struct{}

func (_typeOwner) isTypeOwner() {}

// Type is implemented by any type reference: a Primitive or a *TypeDef.
type Type interface {
	TypeDefKind
	TypeName() string
	isType()
}

type _type struct{ _typeDefKind }

func (_type) TypeName() string { return "" }
func (_type) isType()          {}

// ParseType parses a WIT primitive type name into its Type implementation.
func ParseType(s string) (Type, error) {
	switch s {
	case "bool":
		return Bool{}, nil
	case "s8":
		return S8{}, nil
	case "u8":
		return U8{}, nil
	case "s16":
		return S16{}, nil
	case "u16":
		return U16{}, nil
	case "s32":
		return S32{}, nil
	case "u32":
		return U32{}, nil
	case "s64":
		return S64{}, nil
	case "u64":
		return U64{}, nil
	case "f32", "float32":
		return F32{}, nil
	case "f64", "float64":
		return F64{}, nil
	case "char":
		return Char{}, nil
	case "string":
		return String{}, nil
	}
	return nil, fmt.Errorf("wit: unknown primitive type %q", s)
}

// Primitive is implemented by the built-in WIT primitive types.
type Primitive interface {
	Type
	isPrimitive()
}

type _primitive struct{ _type }

func (_primitive) isPrimitive() {}

// Bool represents the WIT primitive type bool.
type Bool struct{ _primitive }

// S8 represents the WIT primitive type s8 (signed 8-bit integer).
type S8 struct{ _primitive }

// U8 represents the WIT primitive type u8 (unsigned 8-bit integer).
type U8 struct{ _primitive }

// S16 represents the WIT primitive type s16.
type S16 struct{ _primitive }

// U16 represents the WIT primitive type u16.
type U16 struct{ _primitive }

// S32 represents the WIT primitive type s32.
type S32 struct{ _primitive }

// U32 represents the WIT primitive type u32.
type U32 struct{ _primitive }

// S64 represents the WIT primitive type s64.
type S64 struct{ _primitive }

// U64 represents the WIT primitive type u64.
type U64 struct{ _primitive }

// F32 represents the WIT primitive type f32 (IEEE-754 binary32).
type F32 struct{ _primitive }

// F64 represents the WIT primitive type f64 (IEEE-754 binary64).
type F64 struct{ _primitive }

// Char represents the WIT primitive type char (a Unicode scalar value).
type Char struct{ _primitive }

// String represents the WIT primitive type string.
type String struct{ _primitive }

// Function represents a WIT function: a freestanding function with a
// parameter list and an optional result, living in a World or Interface.
//
// Resources, and therefore methods/statics/constructors, are out of
// scope (spec Non-goal); every Function is freestanding.
type Function struct {
	_worldItem
	Name      string
	Params    []Param
	Results   []Param
	Stability Stability
	Docs      Docs
}

// Param represents a parameter to, or a named result of, a Function.
type Param struct {
	Name string
	Type Type
}

// Package represents a WIT package within a Resolve: a named collection
// of Interfaces and Worlds.
type Package struct {
	Name       Ident
	Interfaces ordered.Map[string, *Interface]
	Worlds     ordered.Map[string, *World]
	Docs       Docs
}

// Stability represents the version or feature-gated stability of a WIT item.
type Stability interface {
	isStability()
}

type _stability struct{}

func (_stability) isStability() {}

// Stable represents a stable WIT feature, e.g. @since(version = 1.2.3).
type Stable struct {
	_stability
	Since      string
	Deprecated *string
}

// Unstable represents an unstable WIT feature defined by name.
type Unstable struct {
	_stability
	Feature    string
	Deprecated *string
}

// Docs holds WIT documentation text extracted from comments. May be empty.
type Docs struct {
	Contents string
}
