// Package vm implements the CVERE execution engine: the register file,
// protected linear memory, the fetch/decode/execute core, and the
// privilege-gated system call gateway.
//
// A VM is exclusively owned by its caller; Step and Run are synchronous and
// never suspend. Every architectural fault is returned as a structured error
// wrapping the program counter of the offending instruction.
package vm
