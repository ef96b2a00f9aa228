package wasm

// fieldKind tags one immediate in an instruction's encoding. The set is
// closed: every row in the dispatch tables below must be expressible with
// these kinds, and table_test.go asserts that.
type fieldKind byte

const (
	// fieldI32 is a signed 32-bit LEB128 constant, stored in Instruction.I32.
	fieldI32 fieldKind = iota
	// fieldI64 is a signed 64-bit LEB128 constant, stored in Instruction.I64.
	fieldI64
	// fieldF32 is a little-endian IEEE 754 float32, stored in Instruction.F32.
	fieldF32
	// fieldF64 is a little-endian IEEE 754 float64, stored in Instruction.F64.
	fieldF64
	// fieldIndex is an unsigned 32-bit LEB128 index, stored in Instruction.Index.
	fieldIndex
	// fieldU32 is an unsigned 32-bit LEB128 value with fixed meaning per
	// opcode (table flag, memory index), stored in Instruction.Reserved and
	// then Instruction.Reserved2.
	fieldU32
	// fieldMemArg is the alignment/offset pair of memory instructions,
	// stored in Instruction.Align and Instruction.Offset.
	fieldMemArg
	// fieldBlockType is a one-byte optional result type, stored in
	// Instruction.BlockType.
	fieldBlockType
	// fieldBlock is a nested instruction sequence terminated by OpcodeEnd,
	// stored in Instruction.Block.
	fieldBlock
)

// opcodeEntry is one row of the dispatch table: the instruction's name in
// the conventional dotted spelling and its immediates in stream order.
type opcodeEntry struct {
	name   string
	fields []fieldKind
}

// instructionTable maps each primary opcode to its decoding rule. OpcodeIf
// and OpcodeBrTable appear with nil fields because their operand shape is
// control-flow-dependent and handled directly by the decoder; OpcodeElse and
// OpcodeEnd appear so the block decoder can consume them as terminators.
var instructionTable = map[Opcode]*opcodeEntry{
	OpcodeUnreachable:  {name: "unreachable"},
	OpcodeNop:          {name: "nop"},
	OpcodeBlock:        {name: "block", fields: []fieldKind{fieldBlockType, fieldBlock}},
	OpcodeLoop:         {name: "loop", fields: []fieldKind{fieldBlockType, fieldBlock}},
	OpcodeIf:           {name: "if"},
	OpcodeElse:         {name: "else"},
	OpcodeEnd:          {name: "end"},
	OpcodeBr:           {name: "br", fields: []fieldKind{fieldIndex}},
	OpcodeBrIf:         {name: "br_if", fields: []fieldKind{fieldIndex}},
	OpcodeBrTable:      {name: "br_table"},
	OpcodeReturn:       {name: "return"},
	OpcodeCall:         {name: "call", fields: []fieldKind{fieldIndex}},
	OpcodeCallIndirect: {name: "call_indirect", fields: []fieldKind{fieldIndex, fieldU32}},

	OpcodeDrop:   {name: "drop"},
	OpcodeSelect: {name: "select"},

	OpcodeLocalGet:  {name: "local.get", fields: []fieldKind{fieldIndex}},
	OpcodeLocalSet:  {name: "local.set", fields: []fieldKind{fieldIndex}},
	OpcodeLocalTee:  {name: "local.tee", fields: []fieldKind{fieldIndex}},
	OpcodeGlobalGet: {name: "global.get", fields: []fieldKind{fieldIndex}},
	OpcodeGlobalSet: {name: "global.set", fields: []fieldKind{fieldIndex}},

	OpcodeI32Load:    {name: "i32.load", fields: []fieldKind{fieldMemArg}},
	OpcodeI64Load:    {name: "i64.load", fields: []fieldKind{fieldMemArg}},
	OpcodeF32Load:    {name: "f32.load", fields: []fieldKind{fieldMemArg}},
	OpcodeF64Load:    {name: "f64.load", fields: []fieldKind{fieldMemArg}},
	OpcodeI32Load8S:  {name: "i32.load8_s", fields: []fieldKind{fieldMemArg}},
	OpcodeI32Load8U:  {name: "i32.load8_u", fields: []fieldKind{fieldMemArg}},
	OpcodeI32Load16S: {name: "i32.load16_s", fields: []fieldKind{fieldMemArg}},
	OpcodeI32Load16U: {name: "i32.load16_u", fields: []fieldKind{fieldMemArg}},
	OpcodeI64Load8S:  {name: "i64.load8_s", fields: []fieldKind{fieldMemArg}},
	OpcodeI64Load8U:  {name: "i64.load8_u", fields: []fieldKind{fieldMemArg}},
	OpcodeI64Load16S: {name: "i64.load16_s", fields: []fieldKind{fieldMemArg}},
	OpcodeI64Load16U: {name: "i64.load16_u", fields: []fieldKind{fieldMemArg}},
	OpcodeI64Load32S: {name: "i64.load32_s", fields: []fieldKind{fieldMemArg}},
	OpcodeI64Load32U: {name: "i64.load32_u", fields: []fieldKind{fieldMemArg}},
	OpcodeI32Store:   {name: "i32.store", fields: []fieldKind{fieldMemArg}},
	OpcodeI64Store:   {name: "i64.store", fields: []fieldKind{fieldMemArg}},
	OpcodeF32Store:   {name: "f32.store", fields: []fieldKind{fieldMemArg}},
	OpcodeF64Store:   {name: "f64.store", fields: []fieldKind{fieldMemArg}},
	OpcodeI32Store8:  {name: "i32.store8", fields: []fieldKind{fieldMemArg}},
	OpcodeI32Store16: {name: "i32.store16", fields: []fieldKind{fieldMemArg}},
	OpcodeI64Store8:  {name: "i64.store8", fields: []fieldKind{fieldMemArg}},
	OpcodeI64Store16: {name: "i64.store16", fields: []fieldKind{fieldMemArg}},
	OpcodeI64Store32: {name: "i64.store32", fields: []fieldKind{fieldMemArg}},
	OpcodeMemorySize: {name: "memory.size", fields: []fieldKind{fieldU32}},
	OpcodeMemoryGrow: {name: "memory.grow", fields: []fieldKind{fieldU32}},

	OpcodeI32Const: {name: "i32.const", fields: []fieldKind{fieldI32}},
	OpcodeI64Const: {name: "i64.const", fields: []fieldKind{fieldI64}},
	OpcodeF32Const: {name: "f32.const", fields: []fieldKind{fieldF32}},
	OpcodeF64Const: {name: "f64.const", fields: []fieldKind{fieldF64}},

	OpcodeI32Eqz: {name: "i32.eqz"},
	OpcodeI32Eq:  {name: "i32.eq"},
	OpcodeI32Ne:  {name: "i32.ne"},
	OpcodeI32LtS: {name: "i32.lt_s"},
	OpcodeI32LtU: {name: "i32.lt_u"},
	OpcodeI32GtS: {name: "i32.gt_s"},
	OpcodeI32GtU: {name: "i32.gt_u"},
	OpcodeI32LeS: {name: "i32.le_s"},
	OpcodeI32LeU: {name: "i32.le_u"},
	OpcodeI32GeS: {name: "i32.ge_s"},
	OpcodeI32GeU: {name: "i32.ge_u"},

	OpcodeI64Eqz: {name: "i64.eqz"},
	OpcodeI64Eq:  {name: "i64.eq"},
	OpcodeI64Ne:  {name: "i64.ne"},
	OpcodeI64LtS: {name: "i64.lt_s"},
	OpcodeI64LtU: {name: "i64.lt_u"},
	OpcodeI64GtS: {name: "i64.gt_s"},
	OpcodeI64GtU: {name: "i64.gt_u"},
	OpcodeI64LeS: {name: "i64.le_s"},
	OpcodeI64LeU: {name: "i64.le_u"},
	OpcodeI64GeS: {name: "i64.ge_s"},
	OpcodeI64GeU: {name: "i64.ge_u"},

	OpcodeF32Eq: {name: "f32.eq"},
	OpcodeF32Ne: {name: "f32.ne"},
	OpcodeF32Lt: {name: "f32.lt"},
	OpcodeF32Gt: {name: "f32.gt"},
	OpcodeF32Le: {name: "f32.le"},
	OpcodeF32Ge: {name: "f32.ge"},

	OpcodeF64Eq: {name: "f64.eq"},
	OpcodeF64Ne: {name: "f64.ne"},
	OpcodeF64Lt: {name: "f64.lt"},
	OpcodeF64Gt: {name: "f64.gt"},
	OpcodeF64Le: {name: "f64.le"},
	OpcodeF64Ge: {name: "f64.ge"},

	OpcodeI32Clz:    {name: "i32.clz"},
	OpcodeI32Ctz:    {name: "i32.ctz"},
	OpcodeI32Popcnt: {name: "i32.popcnt"},
	OpcodeI32Add:    {name: "i32.add"},
	OpcodeI32Sub:    {name: "i32.sub"},
	OpcodeI32Mul:    {name: "i32.mul"},
	OpcodeI32DivS:   {name: "i32.div_s"},
	OpcodeI32DivU:   {name: "i32.div_u"},
	OpcodeI32RemS:   {name: "i32.rem_s"},
	OpcodeI32RemU:   {name: "i32.rem_u"},
	OpcodeI32And:    {name: "i32.and"},
	OpcodeI32Or:     {name: "i32.or"},
	OpcodeI32Xor:    {name: "i32.xor"},
	OpcodeI32Shl:    {name: "i32.shl"},
	OpcodeI32ShrS:   {name: "i32.shr_s"},
	OpcodeI32ShrU:   {name: "i32.shr_u"},
	OpcodeI32Rotl:   {name: "i32.rotl"},
	OpcodeI32Rotr:   {name: "i32.rotr"},

	OpcodeI64Clz:    {name: "i64.clz"},
	OpcodeI64Ctz:    {name: "i64.ctz"},
	OpcodeI64Popcnt: {name: "i64.popcnt"},
	OpcodeI64Add:    {name: "i64.add"},
	OpcodeI64Sub:    {name: "i64.sub"},
	OpcodeI64Mul:    {name: "i64.mul"},
	OpcodeI64DivS:   {name: "i64.div_s"},
	OpcodeI64DivU:   {name: "i64.div_u"},
	OpcodeI64RemS:   {name: "i64.rem_s"},
	OpcodeI64RemU:   {name: "i64.rem_u"},
	OpcodeI64And:    {name: "i64.and"},
	OpcodeI64Or:     {name: "i64.or"},
	OpcodeI64Xor:    {name: "i64.xor"},
	OpcodeI64Shl:    {name: "i64.shl"},
	OpcodeI64ShrS:   {name: "i64.shr_s"},
	OpcodeI64ShrU:   {name: "i64.shr_u"},
	OpcodeI64Rotl:   {name: "i64.rotl"},
	OpcodeI64Rotr:   {name: "i64.rotr"},

	OpcodeF32Abs:      {name: "f32.abs"},
	OpcodeF32Neg:      {name: "f32.neg"},
	OpcodeF32Ceil:     {name: "f32.ceil"},
	OpcodeF32Floor:    {name: "f32.floor"},
	OpcodeF32Trunc:    {name: "f32.trunc"},
	OpcodeF32Nearest:  {name: "f32.nearest"},
	OpcodeF32Sqrt:     {name: "f32.sqrt"},
	OpcodeF32Add:      {name: "f32.add"},
	OpcodeF32Sub:      {name: "f32.sub"},
	OpcodeF32Mul:      {name: "f32.mul"},
	OpcodeF32Div:      {name: "f32.div"},
	OpcodeF32Min:      {name: "f32.min"},
	OpcodeF32Max:      {name: "f32.max"},
	OpcodeF32Copysign: {name: "f32.copysign"},

	OpcodeF64Abs:      {name: "f64.abs"},
	OpcodeF64Neg:      {name: "f64.neg"},
	OpcodeF64Ceil:     {name: "f64.ceil"},
	OpcodeF64Floor:    {name: "f64.floor"},
	OpcodeF64Trunc:    {name: "f64.trunc"},
	OpcodeF64Nearest:  {name: "f64.nearest"},
	OpcodeF64Sqrt:     {name: "f64.sqrt"},
	OpcodeF64Add:      {name: "f64.add"},
	OpcodeF64Sub:      {name: "f64.sub"},
	OpcodeF64Mul:      {name: "f64.mul"},
	OpcodeF64Div:      {name: "f64.div"},
	OpcodeF64Min:      {name: "f64.min"},
	OpcodeF64Max:      {name: "f64.max"},
	OpcodeF64Copysign: {name: "f64.copysign"},

	OpcodeI32WrapI64:   {name: "i32.wrap_i64"},
	OpcodeI32TruncF32S: {name: "i32.trunc_f32_s"},
	OpcodeI32TruncF32U: {name: "i32.trunc_f32_u"},
	OpcodeI32TruncF64S: {name: "i32.trunc_f64_s"},
	OpcodeI32TruncF64U: {name: "i32.trunc_f64_u"},

	OpcodeI64ExtendI32S: {name: "i64.extend_i32_s"},
	OpcodeI64ExtendI32U: {name: "i64.extend_i32_u"},
	OpcodeI64TruncF32S:  {name: "i64.trunc_f32_s"},
	OpcodeI64TruncF32U:  {name: "i64.trunc_f32_u"},
	OpcodeI64TruncF64S:  {name: "i64.trunc_f64_s"},
	OpcodeI64TruncF64U:  {name: "i64.trunc_f64_u"},

	OpcodeF32ConvertI32S: {name: "f32.convert_i32_s"},
	OpcodeF32ConvertI32U: {name: "f32.convert_i32_u"},
	OpcodeF32ConvertI64S: {name: "f32.convert_i64_s"},
	OpcodeF32ConvertI64U: {name: "f32.convert_i64_u"},
	OpcodeF32DemoteF64:   {name: "f32.demote_f64"},

	OpcodeF64ConvertI32S: {name: "f64.convert_i32_s"},
	OpcodeF64ConvertI32U: {name: "f64.convert_i32_u"},
	OpcodeF64ConvertI64S: {name: "f64.convert_i64_s"},
	OpcodeF64ConvertI64U: {name: "f64.convert_i64_u"},
	OpcodeF64PromoteF32:  {name: "f64.promote_f32"},

	OpcodeI32ReinterpretF32: {name: "i32.reinterpret_f32"},
	OpcodeI64ReinterpretF64: {name: "i64.reinterpret_f64"},
	OpcodeF32ReinterpretI32: {name: "f32.reinterpret_i32"},
	OpcodeF64ReinterpretI64: {name: "f64.reinterpret_i64"},

	OpcodeI32Extend8S:  {name: "i32.extend8_s"},
	OpcodeI32Extend16S: {name: "i32.extend16_s"},
	OpcodeI64Extend8S:  {name: "i64.extend8_s"},
	OpcodeI64Extend16S: {name: "i64.extend16_s"},
	OpcodeI64Extend32S: {name: "i64.extend32_s"},
}

// miscInstructionTable maps the secondary byte of two-byte opcodes to its
// decoding rule.
var miscInstructionTable = map[MiscOpcode]*opcodeEntry{
	MiscOpcodeI32TruncSatF32S: {name: "i32.trunc_sat_f32_s"},
	MiscOpcodeI32TruncSatF32U: {name: "i32.trunc_sat_f32_u"},
	MiscOpcodeI32TruncSatF64S: {name: "i32.trunc_sat_f64_s"},
	MiscOpcodeI32TruncSatF64U: {name: "i32.trunc_sat_f64_u"},
	MiscOpcodeI64TruncSatF32S: {name: "i64.trunc_sat_f32_s"},
	MiscOpcodeI64TruncSatF32U: {name: "i64.trunc_sat_f32_u"},
	MiscOpcodeI64TruncSatF64S: {name: "i64.trunc_sat_f64_s"},
	MiscOpcodeI64TruncSatF64U: {name: "i64.trunc_sat_f64_u"},

	MiscOpcodeMemoryCopy: {name: "memory.copy", fields: []fieldKind{fieldU32, fieldU32}},
	MiscOpcodeMemoryFill: {name: "memory.fill", fields: []fieldKind{fieldU32}},
}
