package names

import "testing"

// These cases mirror, input for input, the Rust unit tests in
// original_source/crates/witffi-core/src/names.rs (test_rust_names,
// test_c_names, test_swift_names, test_kotlin_names, test_go_names).
// Those tests are the golden oracle for this package's casing and
// keyword-escape behavior.

func TestTypeName(t *testing.T) {
	tests := []struct {
		target Target
		ident  string
		want   string
	}{
		{Rust, "transaction-request", "TransactionRequest"},
		{Rust, "u256", "U256"},
		{Swift, "transaction-request", "TransactionRequest"},
		{Kotlin, "transaction-request", "TransactionRequest"},
		{Go, "chain-id", "ChainId"},
	}
	for _, tt := range tests {
		t.Run(tt.target.String()+"/"+tt.ident, func(t *testing.T) {
			if got := TypeName(tt.target, tt.ident); got != tt.want {
				t.Errorf("TypeName(%v, %q) = %q, want %q", tt.target, tt.ident, got, tt.want)
			}
		})
	}
}

func TestCTypeName(t *testing.T) {
	if got, want := CTypeName("Ffi", "transaction-request"), "FfiTransactionRequest"; got != want {
		t.Errorf("CTypeName() = %q, want %q", got, want)
	}
}

func TestCFuncName(t *testing.T) {
	if got, want := CFuncName("zcash_eip681", "", "parse"), "zcash_eip681_parse"; got != want {
		t.Errorf("CFuncName() = %q, want %q", got, want)
	}
}

func TestEnumDiscriminant(t *testing.T) {
	if got, want := EnumDiscriminant("TRANSACTION_REQUEST", "native"), "TRANSACTION_REQUEST_NATIVE"; got != want {
		t.Errorf("EnumDiscriminant() = %q, want %q", got, want)
	}
}

func TestValueIdentRust(t *testing.T) {
	if got, want := ValueIdent(Rust, "type"), "type_"; got != want {
		t.Errorf("ValueIdent(Rust, %q) = %q, want %q", "type", got, want)
	}
}

func TestValueIdentSwift(t *testing.T) {
	if got, want := ValueIdent(Swift, "self"), "`self`"; got != want {
		t.Errorf("ValueIdent(Swift, %q) = %q, want %q", "self", got, want)
	}
}

func TestValueIdentKotlin(t *testing.T) {
	tests := []struct{ ident, want string }{
		{"when", "`when`"},
		{"fun", "`fun`"},
		{"val", "`val`"},
		{"var", "`var`"},
		{"is", "`is`"},
		{"in", "`in`"},
		{"object", "`object`"},
		{"data", "`data`"},
		{"sealed", "`sealed`"},
		{"companion", "`companion`"},
		{"it", "`it`"},
		{"out", "`out`"},
		{"foo-bar", "fooBar"},
	}
	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			if got := ValueIdent(Kotlin, tt.ident); got != tt.want {
				t.Errorf("ValueIdent(Kotlin, %q) = %q, want %q", tt.ident, got, tt.want)
			}
		})
	}
}

func TestValueIdentGo(t *testing.T) {
	tests := []struct{ ident, want string }{
		{"type", "type_"},
		{"string", "string_"},
		{"map", "map_"},
		{"error", "error_"},
		{"foo-bar", "fooBar"},
	}
	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			if got := ValueIdent(Go, tt.ident); got != tt.want {
				t.Errorf("ValueIdent(Go, %q) = %q, want %q", tt.ident, got, tt.want)
			}
		})
	}
}
