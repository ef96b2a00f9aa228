package wasm

// ValueType describes a numeric type as encoded in the binary format.
//
// See https://www.w3.org/TR/wasm-core-1/#value-types%E2%91%A4
type ValueType byte

const (
	ValueTypeI32 ValueType = 0x7f
	ValueTypeI64 ValueType = 0x7e
	ValueTypeF32 ValueType = 0x7d
	ValueTypeF64 ValueType = 0x7c
)

func (vt ValueType) String() string {
	switch vt {
	case ValueTypeI32:
		return "i32"
	case ValueTypeI64:
		return "i64"
	case ValueTypeF32:
		return "f32"
	case ValueTypeF64:
		return "f64"
	}
	return "unknown"
}

// Index is the decoded form of all *idx immediates: function, type, local,
// global and label indices. Range checks against the enclosing module are the
// consumer's responsibility, not the decoder's.
type Index = uint32

// BlockType annotates block, loop and if instructions with their result
// type. A block either produces a single value or nothing; "nothing" is a
// distinguished encoding, not an error.
//
// See https://www.w3.org/TR/wasm-core-1/#binary-blocktype
type BlockType byte

// BlockTypeEmpty means the block produces no value.
const BlockTypeEmpty BlockType = 0x40

// ValueType returns the result type and true, or false for an empty block.
func (bt BlockType) ValueType() (ValueType, bool) {
	if bt == BlockTypeEmpty {
		return 0, false
	}
	return ValueType(bt), true
}

func (bt BlockType) String() string {
	vt, ok := bt.ValueType()
	if !ok {
		return "empty"
	}
	return vt.String()
}
