package wit

import (
	"fmt"
	"strings"

	"github.com/schell/witffi/internal/visitor"
)

// TypeRegistry is the ordered, read-only view of every named, emittable
// type in a World: the type dependency graph flattened into topological
// order, one entry per named TypeDef, with heap-carrier and
// trivially-copyable facts precomputed up front.
//
// Resources and handles never reach this registry: a TypeDef whose
// Kind decodes to one of those is rejected at load time with an error
// before a TypeRegistry is ever built.
type TypeRegistry struct {
	entries []*RegistryEntry
	byType  map[*TypeDef]*RegistryEntry
}

// RegistryEntry describes one named type's place in the registry.
type RegistryEntry struct {
	TypeDef *TypeDef
}

// Dependencies returns the other named types e.TypeDef directly
// references (field types, case payloads, list/option element types,
// tuple elements), deduplicated, in first-reference order. Anonymous
// (inline) constructs are walked through transparently.
func (e *RegistryEntry) Dependencies() []*TypeDef {
	var deps []*TypeDef
	seen := make(map[*TypeDef]bool)
	var add func(t Type)
	add = func(t Type) {
		td, ok := t.(*TypeDef)
		if !ok {
			return
		}
		if td.Name == nil {
			walkTypeRefs(td.Kind, add)
			return
		}
		if !seen[td] {
			seen[td] = true
			deps = append(deps, td)
		}
	}
	walkTypeRefs(e.TypeDef.Kind, add)
	return deps
}

// HeapCarrier reports whether e.TypeDef's wire projection requires heap
// allocation: true iff any leaf in the type is a string, a list, an
// option wrapping a heap-carrying type, or a record/variant/tuple
// containing such a leaf.
func (e *RegistryEntry) HeapCarrier() bool {
	return kindIsHeapCarrier(e.TypeDef.Kind, make(map[TypeDefKind]bool))
}

// TriviallyCopyable reports whether e.TypeDef's wire projection is a
// plain value type with no heap allocation anywhere in its shape.
func (e *RegistryEntry) TriviallyCopyable() bool {
	return !e.HeapCarrier()
}

// CycleError reports that the named type dependency graph is cyclic.
// Cyclic types are never supported: every target representation this
// generator emits would require indirection it deliberately refuses to
// synthesise.
type CycleError struct {
	Path []string // dotted type names forming the cycle, first repeated at the end
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("wit: cyclic type dependency: %s", strings.Join(e.Path, " -> "))
}

// NewTypeRegistry walks w's type definitions and produces a TypeRegistry
// in topological order (a type is emitted after all its dependencies).
// It returns a *CycleError if the dependency graph is cyclic.
func NewTypeRegistry(w *World) (*TypeRegistry, error) {
	named := namedTypeDefs(w)

	reg := &TypeRegistry{byType: make(map[*TypeDef]*RegistryEntry, len(named))}
	for _, td := range named {
		reg.byType[td] = &RegistryEntry{TypeDef: td}
	}

	order := make([]*TypeDef, 0, len(named))
	visited := visitor.New[*TypeDef](func(td *TypeDef) bool {
		order = append(order, td)
		return true
	})
	gray := make(map[*TypeDef]bool)
	var path []string

	var visit func(td *TypeDef) error
	visit = func(td *TypeDef) error {
		if visited.Visited(td) {
			return nil
		}
		if gray[td] {
			path = append(path, td.TypeName())
			return &CycleError{Path: append([]string(nil), path...)}
		}
		gray[td] = true
		path = append(path, td.TypeName())
		for _, dep := range reg.byType[td].Dependencies() {
			if _, ok := reg.byType[dep]; !ok {
				continue // dependency outside this world's named set (shouldn't happen)
			}
			if err := visit(dep); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		gray[td] = false
		visited.Yield(td)
		return nil
	}

	for _, td := range named {
		if err := visit(td); err != nil {
			return nil, err
		}
	}

	reg.entries = make([]*RegistryEntry, len(order))
	for i, td := range order {
		reg.entries[i] = reg.byType[td]
	}
	return reg, nil
}

// Entries returns every named type in topological dependency order.
func (r *TypeRegistry) Entries() []*RegistryEntry { return r.entries }

// Lookup returns the RegistryEntry for td, or nil if td is not a named
// type known to this registry.
func (r *TypeRegistry) Lookup(td *TypeDef) *RegistryEntry { return r.byType[td] }

// namedTypeDefs collects every named TypeDef reachable from a World's
// exported/imported interfaces and functions, plus any type aliases
// declared directly on the world.
func namedTypeDefs(w *World) []*TypeDef {
	var named []*TypeDef
	seen := make(map[*TypeDef]bool)
	add := func(td *TypeDef) {
		if td != nil && td.Name != nil && !seen[td] {
			seen[td] = true
			named = append(named, td)
		}
	}

	collectFromItems := func(m func(yield func(string, WorldItem) bool)) {
		m(func(_ string, item WorldItem) bool {
			switch v := item.(type) {
			case *TypeDef:
				add(v)
			case *InterfaceRef:
				v.Interface.TypeDefs.All()(func(_ string, td *TypeDef) bool {
					add(td)
					return true
				})
			}
			return true
		})
	}
	collectFromItems(w.Exports.All())
	collectFromItems(w.Imports.All())

	// Pull in the named types a function signature refers to directly,
	// even if the owning interface wasn't walked above (e.g. a type
	// defined in an interface that is only referenced, not exported).
	// Only a named parameter or result type itself is added: named types
	// nested inside an anonymous one (such as list<foo>), and the
	// dependencies of the types added here, are not followed.
	w.AllFunctions()(func(f *Function) bool {
		for _, p := range f.Params {
			walkTypeRefs(p.Type, func(t Type) {
				if td, ok := t.(*TypeDef); ok {
					add(td)
				}
			})
		}
		for _, p := range f.Results {
			walkTypeRefs(p.Type, func(t Type) {
				if td, ok := t.(*TypeDef); ok {
					add(td)
				}
			})
		}
		return true
	})

	return named
}

// walkTypeRefs calls fn for every Type directly referenced by kind (one
// level of field/case/element types; fn is responsible for recursing
// into *TypeDef.Kind if the caller needs a deep walk).
func walkTypeRefs(kind TypeDefKind, fn func(Type)) {
	switch k := kind.(type) {
	case *Record:
		for _, f := range k.Fields {
			fn(f.Type)
		}
	case *Flags, *Enum:
		// no associated types
	case *Tuple:
		for _, t := range k.Types {
			fn(t)
		}
	case *Variant:
		for _, c := range k.Cases {
			if c.Type != nil {
				fn(c.Type)
			}
		}
	case *Option:
		fn(k.Type)
	case *Result:
		if k.OK != nil {
			fn(k.OK)
		}
		if k.Err != nil {
			fn(k.Err)
		}
	case *List:
		fn(k.Type)
	case *TypeDef:
		// type alias
		fn(k)
	}
}

// kindIsHeapCarrier recursively determines whether kind's wire shape
// carries a heap allocation anywhere. seen guards against revisiting the
// same TypeDefKind pointer (named types are only visited once; cycles
// are rejected before this is ever called on a real registry, but inline
// aliases can still repeat).
func kindIsHeapCarrier(kind TypeDefKind, seen map[TypeDefKind]bool) bool {
	if seen[kind] {
		return false
	}
	seen[kind] = true

	switch k := kind.(type) {
	case String:
		return true
	case *List:
		return true
	case *Record:
		for _, f := range k.Fields {
			if typeIsHeapCarrier(f.Type, seen) {
				return true
			}
		}
		return false
	case *Tuple:
		for _, t := range k.Types {
			if typeIsHeapCarrier(t, seen) {
				return true
			}
		}
		return false
	case *Variant:
		for _, c := range k.Cases {
			if c.Type != nil && typeIsHeapCarrier(c.Type, seen) {
				return true
			}
		}
		return false
	case *Option:
		return typeIsHeapCarrier(k.Type, seen)
	case *Result:
		if k.OK != nil && typeIsHeapCarrier(k.OK, seen) {
			return true
		}
		if k.Err != nil && typeIsHeapCarrier(k.Err, seen) {
			return true
		}
		return false
	case *Flags, *Enum:
		return false
	case *TypeDef:
		return kindIsHeapCarrier(k.Kind, seen)
	default:
		return false
	}
}

func typeIsHeapCarrier(t Type, seen map[TypeDefKind]bool) bool {
	if td, ok := t.(*TypeDef); ok {
		return kindIsHeapCarrier(td.Kind, seen)
	}
	return kindIsHeapCarrier(t, seen)
}
