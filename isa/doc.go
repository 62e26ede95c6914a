// Package isa defines the CVERE instruction set: a 16-bit fixed-width
// encoding with the opcode in the high nibble and three operand layouts
// (register, immediate, and memory forms), plus the two full-word special
// encodings for HALT and SYSCALL.
//
// Decoding is total: every 16-bit word decodes to an Instruction, with
// unassigned opcodes mapped to the Illegal format rather than an error.
package isa
