// Package wire defines the C-ABI projection of every WIT type: the
// "lingua franca" crossing the FFI boundary that every emitter
// (codegen/rust, codegen/cheader, codegen/swift, codegen/kotlin,
// codegen/golang) consumes instead of talking to the wit package
// directly.
//
// The two universal wire container shapes are grounded directly in
// original_source/crates/witffi-types/src/lib.rs:
//
//	#[repr(C)] struct FfiByteSlice  { ptr: *const u8, len: usize } // borrowed
//	#[repr(C)] struct FfiByteBuffer { ptr: *mut u8,   len: usize } // owned
package wire

// PrimitiveKind enumerates the wire-level primitive projections: every
// WIT primitive type maps onto exactly one of these.
type PrimitiveKind int

const (
	Bool PrimitiveKind = iota
	S8
	U8
	S16
	U16
	S32
	U32
	S64
	U64
	F32
	F64
	Char // 32-bit unsigned Unicode scalar value
)

// Size returns the wire byte width of a primitive, used to pick the
// smallest discriminant width for enums/variants and the element stride
// for fixed-width lists.
func (k PrimitiveKind) Size() int {
	switch k {
	case Bool, S8, U8:
		return 1
	case S16, U16:
		return 2
	case S32, U32, F32, Char:
		return 4
	case S64, U64, F64:
		return 8
	default:
		return 0
	}
}

func (k PrimitiveKind) String() string {
	switch k {
	case Bool:
		return "bool"
	case S8:
		return "s8"
	case U8:
		return "u8"
	case S16:
		return "s16"
	case U16:
		return "u16"
	case S32:
		return "s32"
	case U32:
		return "u32"
	case S64:
		return "s64"
	case U64:
		return "u64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case Char:
		return "char"
	default:
		return "unknown"
	}
}

// DiscriminantKind returns the narrowest unsigned primitive that can
// represent a discriminant with n distinct cases. A 16-bit discriminant
// is also allowed for the C enum case, which is always a plain
// sequential C enum rather than a tagged union.
func DiscriminantKind(n int) PrimitiveKind {
	switch {
	case n <= 1<<8:
		return U8
	case n <= 1<<16:
		return U16
	default:
		return U32
	}
}

// ContainerKind distinguishes the two universal heap-touching wire
// shapes used for strings and non-trivial lists.
type ContainerKind int

const (
	// BorrowedSlice is FfiByteSlice: a (const ptr, len) pair valid only
	// for the duration of a call, never freed by the callee. Used only
	// in input (parameter) position.
	BorrowedSlice ContainerKind = iota
	// OwnedBuffer is FfiByteBuffer: a (ptr, len) pair allocated by the
	// callee, freed exactly once by the caller. Used only in output
	// (return) position.
	OwnedBuffer
)
