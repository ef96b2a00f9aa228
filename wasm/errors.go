package wasm

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedEOF is returned when the stream runs out of bytes before
	// an instruction or one of its operands is complete.
	ErrUnexpectedEOF = errors.New("unexpected end of instruction stream")

	// ErrNestingTooDeep is returned when blocks nest beyond the decoder's
	// recursion limit.
	ErrNestingTooDeep = errors.New("block nesting too deep")

	// ErrInvalidByte is returned when a byte in a fixed position has no
	// valid interpretation, such as an unknown block type.
	ErrInvalidByte = errors.New("invalid byte")
)

// UnsupportedOpcodeError is returned when a primary or secondary opcode byte
// has no dispatch entry. It carries the offending byte.
type UnsupportedOpcodeError struct {
	Opcode byte
	// Misc is true when Opcode is a secondary byte under OpcodeMiscPrefix.
	Misc bool
}

func (e *UnsupportedOpcodeError) Error() string {
	if e.Misc {
		return fmt.Sprintf("unsupported misc opcode: %#x", e.Opcode)
	}
	return fmt.Sprintf("unsupported opcode: %#x", e.Opcode)
}
