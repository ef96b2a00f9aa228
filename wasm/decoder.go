// Package wasm decodes a binary WebAssembly instruction stream into a tree
// of Instruction values. The two entry points are DecodeInstruction, which
// reads exactly one instruction, and DecodeBlock, which reads instructions
// until a block terminator. Decoding is purely sequential over the given
// reader and never backtracks; a decode error invalidates the whole
// in-progress decode.
package wasm

import (
	"errors"
	"fmt"
	"io"

	"github.com/wasmtools/wabin/wasm/ieee754"
	"github.com/wasmtools/wabin/wasm/leb128"
)

// maxNestingDepth bounds the recursion between instruction and block
// decoding so a hostile stream of nested block opcodes cannot exhaust the
// goroutine stack.
const maxNestingDepth = 1000

// DecodeInstruction reads one instruction from r, consuming exactly the
// bytes it requires. OpcodeElse and OpcodeEnd decode as plain zero-operand
// instructions; interpreting them as block boundaries is DecodeBlock's job.
//
// An opcode byte with no dispatch entry fails with UnsupportedOpcodeError;
// running out of bytes mid-instruction fails with ErrUnexpectedEOF.
func DecodeInstruction(r io.Reader) (*Instruction, error) {
	return decodeInstruction(r, 0)
}

// DecodeBlock reads instructions from r until a terminator opcode ends the
// block. It returns the block's body, excluding the terminator, and true
// when the terminator was OpcodeElse or false when it was OpcodeEnd.
func DecodeBlock(r io.Reader) ([]Instruction, bool, error) {
	return decodeBlock(r, 0)
}

func decodeInstruction(r io.Reader, depth int) (*Instruction, error) {
	b, err := readByte(r)
	if err != nil {
		return nil, fmt.Errorf("read opcode: %w", err)
	}

	op := Opcode(b)
	switch op {
	case OpcodeIf:
		return decodeIf(r, depth)
	case OpcodeBrTable:
		return decodeBrTable(r)
	case OpcodeMiscPrefix:
		return decodeMisc(r, depth)
	}

	e, ok := instructionTable[op]
	if !ok {
		return nil, &UnsupportedOpcodeError{Opcode: b}
	}

	i := &Instruction{Opcode: op}
	if err := decodeFields(r, e, i, depth); err != nil {
		return nil, err
	}
	return i, nil
}

func decodeMisc(r io.Reader, depth int) (*Instruction, error) {
	b, err := readByte(r)
	if err != nil {
		return nil, fmt.Errorf("read secondary opcode: %w", err)
	}

	e, ok := miscInstructionTable[MiscOpcode(b)]
	if !ok {
		return nil, &UnsupportedOpcodeError{Opcode: b, Misc: true}
	}

	i := &Instruction{Opcode: OpcodeMiscPrefix, Misc: MiscOpcode(b)}
	if err := decodeFields(r, e, i, depth); err != nil {
		return nil, err
	}
	return i, nil
}

// decodeIf reads the operands of an if instruction: the block's result
// type, the then-arm, and, only when the then-arm terminated at OpcodeElse,
// the otherwise-arm.
func decodeIf(r io.Reader, depth int) (*Instruction, error) {
	bt, err := decodeBlockTypeField(r)
	if err != nil {
		return nil, fmt.Errorf("decode if operands: %w", err)
	}

	then, elseFollows, err := decodeBlock(r, depth+1)
	if err != nil {
		return nil, fmt.Errorf("decode then-arm of if: %w", err)
	}

	i := &Instruction{Opcode: OpcodeIf, BlockType: bt, Block: then}
	if elseFollows {
		otherwise, _, err := decodeBlock(r, depth+1)
		if err != nil {
			return nil, fmt.Errorf("decode else-arm of if: %w", err)
		}
		i.Else = otherwise
	}
	return i, nil
}

// decodeBrTable reads a label count n followed by n+1 label indices; the
// final index is the default target.
func decodeBrTable(r io.Reader) (*Instruction, error) {
	n, err := leb128.DecodeUint32(r)
	if err != nil {
		return nil, fmt.Errorf("decode br_table label count: %w", eofErr(err))
	}

	labels := make([]Index, 0, min(uint64(n)+1, 64))
	for k := uint64(0); k < uint64(n)+1; k++ {
		l, err := leb128.DecodeUint32(r)
		if err != nil {
			return nil, fmt.Errorf("decode br_table label %d: %w", k, eofErr(err))
		}
		labels = append(labels, l)
	}
	return &Instruction{Opcode: OpcodeBrTable, Labels: labels}, nil
}

func decodeBlock(r io.Reader, depth int) ([]Instruction, bool, error) {
	if depth > maxNestingDepth {
		return nil, false, ErrNestingTooDeep
	}

	var body []Instruction
	for {
		i, err := decodeInstruction(r, depth)
		if err != nil {
			return nil, false, err
		}
		switch i.Opcode {
		case OpcodeEnd:
			return body, false, nil
		case OpcodeElse:
			return body, true, nil
		}
		body = append(body, *i)
	}
}

// decodeFields reads the immediates declared in the instruction's table row
// in stream order.
func decodeFields(r io.Reader, e *opcodeEntry, i *Instruction, depth int) error {
	reservedSeen := false
	for _, f := range e.fields {
		var err error
		switch f {
		case fieldI32:
			i.I32, err = leb128.DecodeInt32(r)
		case fieldI64:
			i.I64, err = leb128.DecodeInt64(r)
		case fieldF32:
			i.F32, err = ieee754.DecodeFloat32(r)
		case fieldF64:
			i.F64, err = ieee754.DecodeFloat64(r)
		case fieldIndex:
			i.Index, err = leb128.DecodeUint32(r)
		case fieldU32:
			var v uint32
			if v, err = leb128.DecodeUint32(r); err == nil {
				if reservedSeen {
					i.Reserved2 = v
				} else {
					i.Reserved = v
					reservedSeen = true
				}
			}
		case fieldMemArg:
			if i.Align, err = leb128.DecodeUint32(r); err == nil {
				i.Offset, err = leb128.DecodeUint32(r)
			}
		case fieldBlockType:
			i.BlockType, err = decodeBlockTypeField(r)
		case fieldBlock:
			// Terminator kind is irrelevant here: only if distinguishes
			// end from else, and it never comes through this path.
			i.Block, _, err = decodeBlock(r, depth+1)
			if err != nil {
				return fmt.Errorf("decode body of %s: %w", e.name, err)
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("decode %s operands: %w", e.name, eofErr(err))
		}
	}
	return nil
}

func decodeBlockTypeField(r io.Reader) (BlockType, error) {
	b, err := readByte(r)
	if err != nil {
		return 0, fmt.Errorf("read block type: %w", err)
	}
	switch bt := BlockType(b); bt {
	case BlockTypeEmpty, BlockType(ValueTypeI32), BlockType(ValueTypeI64),
		BlockType(ValueTypeF32), BlockType(ValueTypeF64):
		return bt, nil
	default:
		return 0, fmt.Errorf("%w: %#x is not a block type", ErrInvalidByte, b)
	}
}

func readByte(r io.Reader) (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, eofErr(err)
	}
	return b[0], nil
}

// eofErr folds the reader's end-of-input conditions into the package's
// sentinel so callers can test for truncation with a single errors.Is.
func eofErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrUnexpectedEOF
	}
	return err
}
