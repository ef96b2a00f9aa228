package wasm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasmtools/wabin/wasm/leb128"
)

// TestDecodeInstruction_ZeroOperand checks the round trip for every
// fixed-shape opcode: the opcode byte(s) alone decode back to the bare
// variant.
func TestDecodeInstruction_ZeroOperand(t *testing.T) {
	for op, e := range instructionTable {
		if len(e.fields) != 0 || op == OpcodeIf || op == OpcodeBrTable {
			continue
		}

		i, err := DecodeInstruction(bytes.NewReader([]byte{byte(op)}))
		require.NoError(t, err, e.name)
		require.Equal(t, &Instruction{Opcode: op}, i, e.name)
	}

	for misc, e := range miscInstructionTable {
		if len(e.fields) != 0 {
			continue
		}

		i, err := DecodeInstruction(bytes.NewReader([]byte{byte(OpcodeMiscPrefix), byte(misc)}))
		require.NoError(t, err, e.name)
		require.Equal(t, &Instruction{Opcode: OpcodeMiscPrefix, Misc: misc}, i, e.name)
	}
}

func TestDecodeInstruction(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected *Instruction
	}{
		{
			name:     "i32.const",
			input:    []byte{0x41, 0xe5, 0x8e, 0x26}, // i32.const 624485
			expected: &Instruction{Opcode: OpcodeI32Const, I32: 624485},
		},
		{
			name:     "i32.const negative",
			input:    []byte{0x41, 0x7f}, // i32.const -1
			expected: &Instruction{Opcode: OpcodeI32Const, I32: -1},
		},
		{
			name:     "i64.const",
			input:    append([]byte{0x42}, leb128.EncodeInt64(-624485)...),
			expected: &Instruction{Opcode: OpcodeI64Const, I64: -624485},
		},
		{
			name:     "f32.const",
			input:    []byte{0x43, 0x00, 0x00, 0x80, 0x3f}, // f32.const 1.0
			expected: &Instruction{Opcode: OpcodeF32Const, F32: 1.0},
		},
		{
			name:     "f64.const",
			input:    []byte{0x44, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xf0, 0x3f}, // f64.const 1.0
			expected: &Instruction{Opcode: OpcodeF64Const, F64: 1.0},
		},
		{
			name:     "local.get",
			input:    []byte{0x20, 0x05}, // local.get 5
			expected: &Instruction{Opcode: OpcodeLocalGet, Index: 5},
		},
		{
			name:     "br",
			input:    []byte{0x0c, 0x01}, // br 1
			expected: &Instruction{Opcode: OpcodeBr, Index: 1},
		},
		{
			name:     "call",
			input:    append([]byte{0x10}, leb128.EncodeUint32(165675008)...),
			expected: &Instruction{Opcode: OpcodeCall, Index: 165675008},
		},
		{
			name:     "call_indirect",
			input:    []byte{0x11, 0x02, 0x00}, // call_indirect (type 2) (table 0)
			expected: &Instruction{Opcode: OpcodeCallIndirect, Index: 2},
		},
		{
			name:     "i32.load",
			input:    []byte{0x28, 0x02, 0x08}, // i32.load align=2 offset=8
			expected: &Instruction{Opcode: OpcodeI32Load, Align: 2, Offset: 8},
		},
		{
			name:     "i64.store32",
			input:    []byte{0x3e, 0x00, 0x10}, // i64.store32 align=0 offset=16
			expected: &Instruction{Opcode: OpcodeI64Store32, Offset: 16},
		},
		{
			name:     "memory.grow",
			input:    []byte{0x40, 0x00},
			expected: &Instruction{Opcode: OpcodeMemoryGrow},
		},
		{
			name:     "memory.copy",
			input:    []byte{0xfc, 0x0a, 0x00, 0x00},
			expected: &Instruction{Opcode: OpcodeMiscPrefix, Misc: MiscOpcodeMemoryCopy},
		},
		{
			name:     "memory.fill",
			input:    []byte{0xfc, 0x0b, 0x00},
			expected: &Instruction{Opcode: OpcodeMiscPrefix, Misc: MiscOpcodeMemoryFill},
		},
		{
			name: "empty block",
			input: []byte{
				0x02, 0x40, // block (result empty)
				0x0b, // end
			},
			expected: &Instruction{Opcode: OpcodeBlock, BlockType: BlockTypeEmpty},
		},
		{
			name: "block with body",
			input: []byte{
				0x02, 0x7f, // block (result i32)
				0x41, 0x2a, // i32.const 42
				0x0b, // end
			},
			expected: &Instruction{
				Opcode:    OpcodeBlock,
				BlockType: BlockType(ValueTypeI32),
				Block:     []Instruction{{Opcode: OpcodeI32Const, I32: 42}},
			},
		},
		{
			name: "loop",
			input: []byte{
				0x03, 0x40, // loop (result empty)
				0x01, // nop
				0x0b, // end
			},
			expected: &Instruction{
				Opcode:    OpcodeLoop,
				BlockType: BlockTypeEmpty,
				Block:     []Instruction{{Opcode: OpcodeNop}},
			},
		},
		{
			name: "nested blocks",
			input: []byte{
				0x02, 0x40, // block (result empty)
				0x02, 0x40, // block (result empty)
				0x01, // nop
				0x0b, // end (inner)
				0x0b, // end (outer)
			},
			expected: &Instruction{
				Opcode:    OpcodeBlock,
				BlockType: BlockTypeEmpty,
				Block: []Instruction{{
					Opcode:    OpcodeBlock,
					BlockType: BlockTypeEmpty,
					Block:     []Instruction{{Opcode: OpcodeNop}},
				}},
			},
		},
	}

	for _, tt := range tests {
		tc := tt

		t.Run(tc.name, func(t *testing.T) {
			r := bytes.NewReader(tc.input)
			i, err := DecodeInstruction(r)
			require.NoError(t, err)
			require.Equal(t, tc.expected, i)
			require.Zero(t, r.Len(), "decoder left bytes unconsumed")
		})
	}
}

func TestDecodeInstruction_If(t *testing.T) {
	t.Run("then and else", func(t *testing.T) {
		input := []byte{
			0x04, 0x40, // if (result empty)
			0x01, // nop
			0x05, // else
			0x1a, // drop
			0x0b, // end
		}
		i, err := DecodeInstruction(bytes.NewReader(input))
		require.NoError(t, err)
		require.Equal(t, &Instruction{
			Opcode:    OpcodeIf,
			BlockType: BlockTypeEmpty,
			Block:     []Instruction{{Opcode: OpcodeNop}},
			Else:      []Instruction{{Opcode: OpcodeDrop}},
		}, i)
	})

	t.Run("then only stops at end", func(t *testing.T) {
		input := []byte{
			0x04, 0x7f, // if (result i32)
			0x41, 0x01, // i32.const 1
			0x0b, // end
			// trailing bytes that belong to whatever follows the if
			0x41, 0x02,
		}
		r := bytes.NewReader(input)
		i, err := DecodeInstruction(r)
		require.NoError(t, err)
		require.Equal(t, &Instruction{
			Opcode:    OpcodeIf,
			BlockType: BlockType(ValueTypeI32),
			Block:     []Instruction{{Opcode: OpcodeI32Const, I32: 1}},
		}, i)
		require.Empty(t, i.Else)
		require.Equal(t, 2, r.Len(), "if decoded past its own end")
	})

	t.Run("empty arms", func(t *testing.T) {
		input := []byte{
			0x04, 0x40, // if (result empty)
			0x05, // else
			0x0b, // end
		}
		i, err := DecodeInstruction(bytes.NewReader(input))
		require.NoError(t, err)
		require.Empty(t, i.Block)
		require.Empty(t, i.Else)
	})
}

func TestDecodeInstruction_BrTable(t *testing.T) {
	t.Run("three labels plus default", func(t *testing.T) {
		input := []byte{
			0x0e,             // br_table
			0x03,             // 3 labels
			0x01, 0x02, 0x03, // targets
			0x00, // default
			// bytes past the vector must stay unread
			0x0b,
		}
		r := bytes.NewReader(input)
		i, err := DecodeInstruction(r)
		require.NoError(t, err)
		require.Equal(t, []Index{1, 2, 3, 0}, i.Labels)
		require.Equal(t, 1, r.Len(), "br_table read past its label vector")
	})

	t.Run("zero labels still has default", func(t *testing.T) {
		i, err := DecodeInstruction(bytes.NewReader([]byte{0x0e, 0x00, 0x07}))
		require.NoError(t, err)
		require.Equal(t, []Index{7}, i.Labels)
	})
}

func TestDecodeBlock(t *testing.T) {
	t.Run("only end", func(t *testing.T) {
		body, elseFollows, err := DecodeBlock(bytes.NewReader([]byte{0x0b}))
		require.NoError(t, err)
		assert.Empty(t, body)
		assert.False(t, elseFollows)
	})

	t.Run("only else", func(t *testing.T) {
		body, elseFollows, err := DecodeBlock(bytes.NewReader([]byte{0x05}))
		require.NoError(t, err)
		assert.Empty(t, body)
		assert.True(t, elseFollows)
	})

	t.Run("terminator not in body", func(t *testing.T) {
		input := []byte{
			0x01,       // nop
			0x41, 0x00, // i32.const 0
			0x1a, // drop
			0x0b, // end
		}
		body, elseFollows, err := DecodeBlock(bytes.NewReader(input))
		require.NoError(t, err)
		require.Equal(t, []Instruction{
			{Opcode: OpcodeNop},
			{Opcode: OpcodeI32Const},
			{Opcode: OpcodeDrop},
		}, body)
		assert.False(t, elseFollows)
	})

	t.Run("inner terminators consumed by nesting", func(t *testing.T) {
		input := []byte{
			0x04, 0x40, // if (result empty)
			0x05, // else
			0x0b, // end of if
			0x0b, // end of this block
		}
		body, elseFollows, err := DecodeBlock(bytes.NewReader(input))
		require.NoError(t, err)
		require.Len(t, body, 1)
		assert.Equal(t, OpcodeIf, body[0].Opcode)
		assert.False(t, elseFollows)
	})
}

// TestDecodeBlock_PrefixDeterministic checks that decoding depends only on
// the bytes consumed so far: two streams sharing a prefix decode the prefix
// identically.
func TestDecodeBlock_PrefixDeterministic(t *testing.T) {
	prefix := []byte{
		0x41, 0x01, // i32.const 1
		0x41, 0x02, // i32.const 2
		0x6a, // i32.add
	}

	a := bytes.NewReader(append(append([]byte{}, prefix...), 0x0b))
	b := bytes.NewReader(append(append([]byte{}, prefix...), 0x1a, 0x0b))

	for k := 0; k < 3; k++ {
		ia, err := DecodeInstruction(a)
		require.NoError(t, err)
		ib, err := DecodeInstruction(b)
		require.NoError(t, err)
		require.Equal(t, ia, ib, "instruction %d", k)
	}
}

func TestDecodeInstruction_Errors(t *testing.T) {
	tests := []struct {
		name        string
		input       []byte
		expectedErr error
	}{
		{
			name:        "empty stream",
			input:       []byte{},
			expectedErr: ErrUnexpectedEOF,
		},
		{
			name:        "truncated i32.const",
			input:       []byte{0x41},
			expectedErr: ErrUnexpectedEOF,
		},
		{
			name:        "truncated f32.const",
			input:       []byte{0x43, 0x00, 0x00}, // 2 of 4 bytes
			expectedErr: ErrUnexpectedEOF,
		},
		{
			name:        "truncated f64.const",
			input:       []byte{0x44, 0x00},
			expectedErr: ErrUnexpectedEOF,
		},
		{
			name:        "truncated memarg",
			input:       []byte{0x28, 0x02}, // align without offset
			expectedErr: ErrUnexpectedEOF,
		},
		{
			name:        "missing secondary opcode",
			input:       []byte{0xfc},
			expectedErr: ErrUnexpectedEOF,
		},
		{
			name:        "truncated br_table vector",
			input:       []byte{0x0e, 0x03, 0x01}, // promises 4 labels, has 1
			expectedErr: ErrUnexpectedEOF,
		},
		{
			name:        "block without terminator",
			input:       []byte{0x02, 0x40, 0x01}, // block, nop, no end
			expectedErr: ErrUnexpectedEOF,
		},
		{
			name: "truncation deep inside nesting",
			input: []byte{
				0x02, 0x40, // block
				0x03, 0x40, // loop
				0x04, 0x40, // if
				0x43, 0x00, // truncated f32.const
			},
			expectedErr: ErrUnexpectedEOF,
		},
		{
			name:        "invalid block type",
			input:       []byte{0x02, 0x7b},
			expectedErr: ErrInvalidByte,
		},
	}

	for _, tt := range tests {
		tc := tt

		t.Run(tc.name, func(t *testing.T) {
			i, err := DecodeInstruction(bytes.NewReader(tc.input))
			require.Nil(t, i)
			require.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func TestDecodeInstruction_UnsupportedOpcode(t *testing.T) {
	tests := []struct {
		name         string
		input        []byte
		expectedByte byte
		misc         bool
	}{
		{name: "reserved primary byte", input: []byte{0x1c}, expectedByte: 0x1c},
		{name: "gap in memory opcodes", input: []byte{0x27}, expectedByte: 0x27},
		{name: "unknown secondary byte", input: []byte{0xfc, 0x99}, expectedByte: 0x99, misc: true},
		{name: "inside a block", input: []byte{0x02, 0x40, 0x1c}, expectedByte: 0x1c},
	}

	for _, tt := range tests {
		tc := tt

		t.Run(tc.name, func(t *testing.T) {
			i, err := DecodeInstruction(bytes.NewReader(tc.input))
			require.Nil(t, i)

			var unsupported *UnsupportedOpcodeError
			require.ErrorAs(t, err, &unsupported)
			assert.Equal(t, tc.expectedByte, unsupported.Opcode)
			assert.Equal(t, tc.misc, unsupported.Misc)
		})
	}
}

func TestDecodeBlock_NestingTooDeep(t *testing.T) {
	// More unterminated blocks than the decoder allows; the limit trips
	// before the stream runs dry.
	input := bytes.Repeat([]byte{0x02, 0x40}, maxNestingDepth+2)

	_, _, err := DecodeBlock(bytes.NewReader(input))
	require.ErrorIs(t, err, ErrNestingTooDeep)
}
