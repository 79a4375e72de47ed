// Package names implements deterministic, context-sensitive identifier
// translation: mapping a WIT kebab-case identifier into each host
// language's idiomatic casing, and escaping reserved words with that
// language's own convention.
//
// Casing tables and keyword escape lists are transcribed from
// original_source/crates/witffi-core/src/names.rs, the Rust prototype
// this package replaces. Word splitting follows FieldsFunc on runs of
// non-letter/non-digit characters, lowercased first, then rejoined per
// target casing.
package names

import (
	"strings"
	"unicode"
)

// Target identifies a host language the generator emits for.
type Target int

const (
	Rust Target = iota
	C
	Swift
	Kotlin
	Go
)

func (t Target) String() string {
	switch t {
	case Rust:
		return "rust"
	case C:
		return "c"
	case Swift:
		return "swift"
	case Kotlin:
		return "kotlin"
	case Go:
		return "go"
	default:
		return "unknown"
	}
}

// words splits a kebab-case (or snake_case, or any non-alphanumeric
// separated) WIT identifier into its lowercase component words.
func words(ident string) []string {
	return strings.FieldsFunc(strings.ToLower(ident), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// pascalCase joins words as PascalCase, uppercasing an entire word if it
// appears in initialisms (e.g. "u256" -> "U256", "ipv4" -> "IPv4").
func pascalCase(ws []string) string {
	var b strings.Builder
	for _, w := range ws {
		if s, ok := initialisms[w]; ok {
			b.WriteString(s)
			continue
		}
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// camelCase joins words as lowerCamelCase: the first word lowercase, the
// rest capitalized (subject to the same initialisms table).
func camelCase(ws []string) string {
	if len(ws) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(ws[0])
	for _, w := range ws[1:] {
		if s, ok := initialisms[w]; ok {
			b.WriteString(s)
			continue
		}
		b.WriteString(capitalize(w))
	}
	return b.String()
}

func snakeCase(ws []string) string {
	return strings.Join(ws, "_")
}

func shoutySnakeCase(ws []string) string {
	upper := make([]string, len(ws))
	for i, w := range ws {
		upper[i] = strings.ToUpper(w)
	}
	return strings.Join(upper, "_")
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	r := []rune(w)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// initialisms maps WIT words to an opinionated, fully-uppercase (or
// mixed-case) rendering used in place of a plain capitalized word.
var initialisms = map[string]string{
	"u256":  "U256",
	"u128":  "U128",
	"ipv4":  "IPv4",
	"ipv6":  "IPv6",
	"uri":   "URI",
	"url":   "URL",
	"http":  "HTTP",
	"https": "HTTPS",
	"json":  "JSON",
	"jni":   "JNI",
	"abi":   "ABI",
	"jvm":   "JVM",
}

// TypeName returns the idiomatic type name for witIdent in the given
// target: PascalCase for Rust, Swift, Kotlin, and Go. For C, use
// [CTypeName], which additionally applies the configured type prefix.
func TypeName(target Target, witIdent string) string {
	name := pascalCase(words(witIdent))
	if target == Go {
		// Go type declarations may legally shadow predeclared
		// identifiers, but not reserved words used as statement
		// keywords; no Go type names actually collide in practice
		// (PascalCase never produces a reserved word), so no escape
		// is applied here, matching names.rs's to_rust_type/to_go_type
		// (which also never escape type positions).
		return name
	}
	return name
}

// CTypeName returns the C struct/enum type name for witIdent, a
// PascalCase name with the configured type prefix prepended verbatim
// (e.g. CTypeName("Ffi", "transaction-request") == "FfiTransactionRequest").
func CTypeName(prefix, witIdent string) string {
	return prefix + pascalCase(words(witIdent))
}

// ValueIdent returns the idiomatic value (field, parameter, function)
// identifier for witIdent: snake_case in Rust and C, lowerCamelCase in
// Swift, Kotlin, and Go.
func ValueIdent(target Target, witIdent string) string {
	ws := words(witIdent)
	var name string
	switch target {
	case Rust, C:
		name = snakeCase(ws)
	default:
		name = camelCase(ws)
	}
	return escapeKeyword(target, name, false)
}

// CFuncName returns the exported C function name for a WIT function
// fn declared in interface iface (iface may be "" for a world-level
// freestanding function), prefixed with the configured C function
// prefix: "<prefix>_<iface>_<fn>", entirely snake_case.
func CFuncName(prefix, iface, fn string) string {
	parts := []string{snakeCase(words(prefix))}
	if iface != "" {
		parts = append(parts, snakeCase(words(iface)))
	}
	parts = append(parts, snakeCase(words(fn)))
	return strings.Join(parts, "_")
}

// EnumDiscriminant returns the SHOUTY_SNAKE_CASE C enum variant name for
// a WIT enum/variant case named witIdent, prefixed with the enum's own
// type prefix (e.g. EnumDiscriminant("TRANSACTION_REQUEST", "native")
// == "TRANSACTION_REQUEST_NATIVE").
func EnumDiscriminant(prefix, witIdent string) string {
	return strings.ToUpper(prefix) + "_" + shoutySnakeCase(words(witIdent))
}

// escapeKeyword appends or wraps name if it collides with target's
// closed set of reserved words. typePosition distinguishes Go's
// predeclared-identifier list, which only needs escaping for values
// (type names never collide with e.g. "string" the predeclared type in
// a way that requires escaping, since a type declaration shadowing a
// predeclared identifier is legal Go).
func escapeKeyword(target Target, name string, typePosition bool) string {
	switch target {
	case Rust:
		if rustKeywords[name] {
			return name + "_"
		}
	case Go:
		if goReserved[name] || (!typePosition && goPredeclared[name]) {
			return name + "_"
		}
	case Swift:
		if swiftKeywords[name] {
			return "`" + name + "`"
		}
	case Kotlin:
		if kotlinHardKeywords[name] || kotlinSoftKeywords[name] {
			return "`" + name + "`"
		}
	}
	return name
}

// Keyword tables below are closed sets transcribed verbatim from
// original_source/crates/witffi-core/src/names.rs. New language
// keywords require an explicit update here.

var rustKeywords = setOf(
	"as", "break", "const", "continue", "crate", "else", "enum", "extern",
	"false", "fn", "for", "if", "impl", "in", "let", "loop", "match",
	"mod", "move", "mut", "pub", "ref", "return", "self", "Self",
	"static", "struct", "super", "trait", "true", "type", "unsafe",
	"use", "where", "while", "async", "await", "dyn", "abstract",
	"become", "box", "do", "final", "macro", "override", "priv",
	"typeof", "unsized", "virtual", "yield", "try",
)

var goReserved = setOf(
	"break", "case", "chan", "const", "continue", "default", "defer",
	"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
	"interface", "map", "package", "range", "return", "select",
	"struct", "switch", "type", "var",
)

var goPredeclared = setOf(
	"len", "cap", "make", "new", "append", "copy", "delete", "close",
	"panic", "recover", "print", "println", "error", "string", "bool",
	"int", "uint", "byte", "rune", "float32", "float64", "complex64",
	"complex128", "true", "false", "nil", "iota",
)

var swiftKeywords = setOf(
	"associatedtype", "class", "deinit", "enum", "extension",
	"fileprivate", "func", "import", "init", "inout", "internal",
	"let", "open", "operator", "private", "protocol", "public",
	"rethrows", "static", "struct", "subscript", "super", "typealias",
	"var", "break", "case", "continue", "default", "defer", "do",
	"else", "fallthrough", "for", "guard", "if", "in", "repeat",
	"return", "switch", "where", "while", "as", "catch", "false",
	"is", "nil", "self", "Self", "throw", "throws", "true", "try",
	"async", "await",
)

var kotlinHardKeywords = setOf(
	"as", "break", "class", "continue", "do", "else", "false", "for",
	"fun", "if", "in", "interface", "is", "null", "object", "package",
	"return", "super", "this", "throw", "true", "try", "typealias",
	"typeof", "val", "var", "when", "while",
)

var kotlinSoftKeywords = setOf(
	"by", "catch", "companion", "constructor", "data", "dynamic",
	"finally", "import", "init", "inner", "it", "out", "sealed",
	"where",
)

func setOf(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
