package vm

import (
	"errors"

	"github.com/cassitly/cvere-reality/translate"
)

var f = translate.From

var (
	// Control conditions. Both are recoverable: a cycle-bounded run may
	// be resumed, and a halted machine is simply finished.
	ErrCycleBudget = errors.New(f("cycle budget exhausted"))
	ErrHalted      = errors.New(f("machine halted"))

	// Image loader errors
	ErrImageBounds = errors.New(f("image exceeds loadable memory"))
	ErrNotExec     = errors.New(f("load address not executable"))
)

// Fault wraps an architectural fault with the address of the offending
// instruction. The machine keeps the fault sticky: it is returned from every
// subsequent Step or Run until the state is restored from a snapshot.
type Fault struct {
	PC  uint16
	Err error
}

func (flt *Fault) Error() string {
	return f("fault at 0x%04X: %v", flt.PC, flt.Err)
}

func (flt *Fault) Unwrap() error {
	return flt.Err
}

// ErrIllegal reports execution of an unassigned opcode.
type ErrIllegal struct {
	Word uint16
}

func (ei ErrIllegal) Error() string {
	return f("illegal instruction 0x%04X", ei.Word)
}

func (ei ErrIllegal) Is(err error) (ok bool) {
	_, ok = err.(ErrIllegal)
	return
}

// ErrProtection reports a memory access denied by the region's access flags
// or privilege requirement.
type ErrProtection struct {
	Addr uint16
	Ring Ring
}

func (ep ErrProtection) Error() string {
	return f("protection fault at 0x%04X from ring %d", ep.Addr, ep.Ring)
}

func (ep ErrProtection) Is(err error) (ok bool) {
	_, ok = err.(ErrProtection)
	return
}

// ErrInvalidAccess reports an access the address space cannot satisfy at
// all, such as an image load overlapping the reserved cells.
type ErrInvalidAccess struct {
	Addr uint16
	Ring Ring
}

func (ea ErrInvalidAccess) Error() string {
	return f("invalid access at 0x%04X from ring %d", ea.Addr, ea.Ring)
}

func (ea ErrInvalidAccess) Is(err error) (ok bool) {
	_, ok = err.(ErrInvalidAccess)
	return
}

// ErrUnknownSyscall reports a SYSCALL with no bound handler.
type ErrUnknownSyscall struct {
	Num uint16
}

func (eu ErrUnknownSyscall) Error() string {
	return f("unknown syscall 0x%02X", eu.Num)
}

func (eu ErrUnknownSyscall) Is(err error) (ok bool) {
	_, ok = err.(ErrUnknownSyscall)
	return
}

// ErrPrivilege reports a SYSCALL whose handler demands a more privileged
// ring than the caller's.
type ErrPrivilege struct {
	Num  uint16
	Ring Ring
}

func (ep ErrPrivilege) Error() string {
	return f("syscall 0x%02X denied to ring %d", ep.Num, ep.Ring)
}

func (ep ErrPrivilege) Is(err error) (ok bool) {
	_, ok = err.(ErrPrivilege)
	return
}
