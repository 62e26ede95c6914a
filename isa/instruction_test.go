package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The six README encodings are bit-exact and authoritative.
func TestReferenceEncodings(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		word   uint16
		format Format
		text   string
	}){
		{0xC105, FMT_I, "LOADI R1, 0x05"},
		{0xC203, FMT_I, "LOADI R2, 0x03"},
		{0x1312, FMT_R, "ADD R3, R1, R2"},
		{0xFFFF, FMT_HALT, "HALT"},
		{0x2101, FMT_I, "ADDI R1, 0x01"},
		{0xF3FD, FMT_CONTROL, "BNE R3, -3"},
	}

	for _, entry := range table {
		in := Decode(entry.word)
		assert.Equal(entry.format, in.Format, entry.text)
		assert.Equal(entry.text, in.String())
		assert.Equal(entry.word, in.Encode(), entry.text)
	}
}

func TestDecodeFields(t *testing.T) {
	assert := assert.New(t)

	in := Decode(0x1312)
	assert.Equal(OP_ADD, in.Op)
	assert.Equal(3, in.Rd)
	assert.Equal(1, in.Rs)
	assert.Equal(2, in.Rt)

	in = Decode(0xC105)
	assert.Equal(OP_LOADI, in.Op)
	assert.Equal(1, in.Rd)
	assert.Equal(uint16(0x05), in.Imm)

	// M-type offsets sign-extend from 4 bits.
	in = Decode(0xA32F)
	assert.Equal(OP_LOAD, in.Op)
	assert.Equal(3, in.Rd)
	assert.Equal(2, in.Rs)
	assert.Equal(int16(-1), in.Off)

	in = Decode(0xB127)
	assert.Equal(OP_STORE, in.Op)
	assert.Equal(int16(7), in.Off)

	// Control offsets sign-extend from 8 bits.
	in = Decode(0xD0FF)
	assert.Equal(OP_JMP, in.Op)
	assert.Equal(int16(-1), in.Off)

	in = Decode(0xE47F)
	assert.Equal(OP_BEQ, in.Op)
	assert.Equal(4, in.Rd)
	assert.Equal(int16(127), in.Off)
}

// 0xFFFF is HALT before the 0xF nibble would claim it as BNE; every other
// 0xFxxx word is a real BNE, including 0xFFFE (BNE RF, -2).
func TestSpecialWordTieBreak(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(FMT_HALT, Decode(0xFFFF).Format)
	assert.Equal(uint16(0xFFFF), Decode(0xFFFF).Encode())

	in := Decode(0xFFFE)
	assert.Equal(FMT_CONTROL, in.Format)
	assert.Equal(OP_BNE, in.Op)
	assert.Equal(0xF, in.Rd)
	assert.Equal(int16(-2), in.Off)
	assert.Equal(uint16(0xFFFE), MakeControl(OP_BNE, 0xF, -2).Encode())

	// SYSCALL is the zero word; the rest of the 0x0 nibble stays illegal.
	assert.Equal(FMT_SYSCALL, Decode(0x0000).Format)
	assert.Equal(uint16(0x0000), Decode(0x0000).Encode())
	assert.Equal(FMT_ILLEGAL, Decode(0x0001).Format)
}

func TestIllegalOpcode(t *testing.T) {
	assert := assert.New(t)

	for _, word := range []uint16{0x0001, 0x0042, 0x0FFF} {
		in := Decode(word)
		assert.Equal(FMT_ILLEGAL, in.Format)
		assert.Equal(word, in.Encode())
	}
}

func TestSignExt(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(int16(7), SignExt4(0x7))
	assert.Equal(int16(-8), SignExt4(0x8))
	assert.Equal(int16(-1), SignExt4(0xF))
	assert.Equal(int16(127), SignExt8(0x7F))
	assert.Equal(int16(-128), SignExt8(0x80))
	assert.Equal(int16(-3), SignExt8(0xFD))
}

func TestMakeHelpers(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint16(0x1312), MakeR(OP_ADD, 3, 1, 2).Encode())
	assert.Equal(uint16(0xC105), MakeI(OP_LOADI, 1, 0x05).Encode())
	assert.Equal(uint16(0xB120), MakeM(OP_STORE, 1, 2, 0).Encode())
	assert.Equal(uint16(0xF3FD), MakeControl(OP_BNE, 3, -3).Encode())
	assert.Equal(uint16(0xD0FF), MakeControl(OP_JMP, 0, -1).Encode())
}
