package wasm

import (
	"fmt"
	"strings"
)

// Instruction is one decoded instruction. Opcode selects the variant (with
// Misc as the secondary tag under OpcodeMiscPrefix) and determines which of
// the operand fields are meaningful; all others stay zero. An Instruction
// owns its operand data outright, including the nested Block and Else
// sequences, and must not be mutated once decoded.
type Instruction struct {
	Opcode Opcode
	// Misc is the secondary opcode, valid only when Opcode is OpcodeMiscPrefix.
	Misc MiscOpcode

	// constants

	I32 int32   // i32.const
	I64 int64   // i64.const
	F32 float32 // f32.const
	F64 float64 // f64.const

	// Index is the single-index immediate of br, br_if, call, local.*,
	// global.* and the type index of call_indirect.
	Index Index

	// Reserved and Reserved2 hold the fixed unsigned immediates trailing
	// call_indirect, memory.size, memory.grow and the bulk memory
	// instructions. In WebAssembly 1.0 they must encode zero, but checking
	// that is validation, not decoding.
	Reserved  uint32
	Reserved2 uint32

	// Align and Offset are the memory argument of load and store
	// instructions.
	Align  uint32
	Offset uint32

	// BlockType annotates block, loop and if.
	BlockType BlockType

	// Labels is the br_table target vector; the last entry is the default
	// label.
	Labels []Index

	// Block is the body of block and loop, or the then-arm of if.
	Block []Instruction

	// Else is the otherwise-arm of if; empty when the then-arm ended at
	// OpcodeEnd.
	Else []Instruction
}

// Name returns the instruction's conventional dotted name, such as
// "i32.add" or "memory.copy".
func (i *Instruction) Name() string {
	if i.Opcode == OpcodeMiscPrefix {
		if e, ok := miscInstructionTable[i.Misc]; ok {
			return e.name
		}
		return fmt.Sprintf("misc(%#x)", byte(i.Misc))
	}
	if e, ok := instructionTable[i.Opcode]; ok {
		return e.name
	}
	return fmt.Sprintf("unknown(%#x)", byte(i.Opcode))
}

// String renders the instruction and its immediates on one line. Nested
// blocks are summarized by length; use a consumer like cmd/wabin-dump to
// print whole trees.
func (i *Instruction) String() string {
	switch i.Opcode {
	case OpcodeI32Const:
		return fmt.Sprintf("i32.const %d", i.I32)
	case OpcodeI64Const:
		return fmt.Sprintf("i64.const %d", i.I64)
	case OpcodeF32Const:
		return fmt.Sprintf("f32.const %g", i.F32)
	case OpcodeF64Const:
		return fmt.Sprintf("f64.const %g", i.F64)
	case OpcodeBr, OpcodeBrIf, OpcodeCall, OpcodeCallIndirect,
		OpcodeLocalGet, OpcodeLocalSet, OpcodeLocalTee,
		OpcodeGlobalGet, OpcodeGlobalSet:
		return fmt.Sprintf("%s %d", i.Name(), i.Index)
	case OpcodeBrTable:
		var sb strings.Builder
		sb.WriteString("br_table")
		for _, l := range i.Labels {
			fmt.Fprintf(&sb, " %d", l)
		}
		return sb.String()
	case OpcodeBlock, OpcodeLoop:
		return fmt.Sprintf("%s (result %s) [%d]", i.Name(), i.BlockType, len(i.Block))
	case OpcodeIf:
		return fmt.Sprintf("if (result %s) [%d/%d]", i.BlockType, len(i.Block), len(i.Else))
	case OpcodeI32Load, OpcodeI64Load, OpcodeF32Load, OpcodeF64Load,
		OpcodeI32Load8S, OpcodeI32Load8U, OpcodeI32Load16S, OpcodeI32Load16U,
		OpcodeI64Load8S, OpcodeI64Load8U, OpcodeI64Load16S, OpcodeI64Load16U,
		OpcodeI64Load32S, OpcodeI64Load32U,
		OpcodeI32Store, OpcodeI64Store, OpcodeF32Store, OpcodeF64Store,
		OpcodeI32Store8, OpcodeI32Store16,
		OpcodeI64Store8, OpcodeI64Store16, OpcodeI64Store32:
		return fmt.Sprintf("%s offset=%d align=%d", i.Name(), i.Offset, i.Align)
	}
	return i.Name()
}
