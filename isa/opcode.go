package isa

// Opcode is the high-nibble operation selector of an instruction word.
// Nibble 0x0 is unassigned: apart from the SYSCALL word 0x0000, it decodes
// to the Illegal format.
type Opcode uint16

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_ADD   = Opcode(0x1) // ADD
	OP_ADDI  = Opcode(0x2) // ADDI
	OP_SUB   = Opcode(0x3) // SUB
	OP_AND   = Opcode(0x4) // AND
	OP_OR    = Opcode(0x5) // OR
	OP_XOR   = Opcode(0x6) // XOR
	OP_NOT   = Opcode(0x7) // NOT
	OP_SHL   = Opcode(0x8) // SHL
	OP_SHR   = Opcode(0x9) // SHR
	OP_LOAD  = Opcode(0xA) // LOAD
	OP_STORE = Opcode(0xB) // STORE
	OP_LOADI = Opcode(0xC) // LOADI
	OP_JMP   = Opcode(0xD) // JMP
	OP_BEQ   = Opcode(0xE) // BEQ
	OP_BNE   = Opcode(0xF) // BNE
)

// Full-word special encodings. HALT is recognized before nibble dispatch
// would read 0xFFFF as a BNE; SYSCALL sits in the unassigned 0x0 nibble,
// so it shadows no instruction.
const (
	CODE_HALT    = uint16(0xFFFF)
	CODE_SYSCALL = uint16(0x0000)
)
