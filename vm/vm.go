// Copyright 2025, Cassitly

package vm

import (
	"fmt"

	"github.com/cassitly/cvere-reality/isa"
)

// TraceFunc receives one record per completed step, in program order,
// before the next step begins.
type TraceFunc func(*Trace)

// Trace describes a single completed execution step.
type Trace struct {
	Cycle uint64
	PC    uint16
	Word  uint16
	Instr isa.Instruction
}

// VM is the execution engine state. A VM is exclusively owned by its
// caller; wrap it in your own mutual exclusion if it must be shared.
type VM struct {
	Mem  *Memory
	Regs Registers

	Cycles uint64
	Halted bool

	gateway map[uint16]Handler
	fault   error
}

// New returns a reset machine: memory zeroed, registers zeroed, PC=0,
// SP=0xFFFE, ring user.
func New() *VM {
	return &VM{
		Mem:     NewMemory(),
		Regs:    NewRegisters(),
		gateway: map[uint16]Handler{},
	}
}

// LoadProgram copies words into memory at base. The image must fit below
// the stack and the base must lie in an executable region.
func (v *VM) LoadProgram(words []uint16, base uint16) error {
	if int(base)+len(words) > LOAD_LIMIT {
		return ErrImageBounds
	}
	if !RegionOf(base).Exec {
		return ErrNotExec
	}
	return v.Mem.LoadImage(words, base)
}

// Fault returns the sticky architectural fault, or nil.
func (v *VM) Fault() error {
	return v.fault
}

func (v *VM) trap(pc uint16, err error) error {
	flt := &Fault{PC: pc, Err: err}
	v.fault = flt
	return flt
}

// Step executes exactly one instruction. done reports that the machine has
// reached HALT. A faulted machine returns its fault from every subsequent
// Step.
func (v *VM) Step() (done bool, err error) {
	return v.step(nil)
}

func (v *VM) step(tr *Trace) (done bool, err error) {
	if v.fault != nil {
		return false, v.fault
	}
	if v.Halted {
		return true, nil
	}

	pc := v.Regs.PC
	word, err := v.Mem.Fetch(pc, v.Regs.Ring())
	if err != nil {
		return false, v.trap(pc, err)
	}

	v.Regs.PC++
	v.Cycles++

	in := isa.Decode(word)
	if err = v.exec(pc, in); err != nil {
		return false, v.trap(pc, err)
	}

	if tr != nil {
		*tr = Trace{Cycle: v.Cycles, PC: pc, Word: word, Instr: in}
	}

	return v.Halted, nil
}

// Run steps until HALT, a fault, or max cycles. It returns the cycles
// actually consumed. Hitting the bound returns ErrCycleBudget wrapped with
// the resume PC; the machine stays resumable.
func (v *VM) Run(max uint64) (cycles uint64, err error) {
	return v.Trace(max, nil)
}

// Trace is Run with an observer: sink receives one record per completed
// step before the next step begins.
func (v *VM) Trace(max uint64, sink TraceFunc) (cycles uint64, err error) {
	var tr Trace

	for cycles < max {
		if v.Halted {
			return cycles, nil
		}

		done, err := v.step(&tr)
		if err != nil {
			return cycles, err
		}

		cycles++
		if sink != nil {
			sink(&tr)
		}
		if done {
			return cycles, nil
		}
	}

	if v.Halted {
		return cycles, nil
	}
	return cycles, &Fault{PC: v.Regs.PC, Err: ErrCycleBudget}
}

// exec dispatches one decoded instruction. pc is the address the
// instruction was fetched from; the PC register has already advanced.
func (v *VM) exec(pc uint16, in isa.Instruction) error {
	regs := &v.Regs

	switch in.Format {
	case isa.FMT_R:
		v.execALU(in)

	case isa.FMT_I:
		switch in.Op {
		case isa.OP_ADDI:
			rd := regs.Read(in.Rd)
			sum := uint32(rd) + uint32(in.Imm)
			res := uint16(sum)
			regs.SetFlags(Flags{
				Z: res == 0,
				N: res&0x8000 != 0,
				C: sum > 0xFFFF,
				V: (rd^res)&(in.Imm^res)&0x8000 != 0,
			})
			regs.Write(in.Rd, res)
		case isa.OP_LOADI:
			res := in.Imm
			regs.SetFlags(Flags{Z: res == 0})
			regs.Write(in.Rd, res)
		}

	case isa.FMT_M:
		addr := regs.Read(in.Rs) + uint16(in.Off)
		switch in.Op {
		case isa.OP_LOAD:
			value, err := v.Mem.LoadWord(addr, regs.Ring())
			if err != nil {
				return err
			}
			regs.Write(in.Rd, value)
		case isa.OP_STORE:
			if err := v.Mem.StoreWord(addr, regs.Read(in.Rd), regs.Ring()); err != nil {
				return err
			}
		}

	case isa.FMT_CONTROL:
		taken := false
		switch in.Op {
		case isa.OP_JMP:
			taken = true
		case isa.OP_BEQ:
			taken = regs.Read(in.Rd) == 0
		case isa.OP_BNE:
			taken = regs.Read(in.Rd) != 0
		}
		if taken {
			regs.PC += uint16(in.Off)
		}

	case isa.FMT_SYSCALL:
		return v.syscall()

	case isa.FMT_HALT:
		v.Halted = true

	case isa.FMT_ILLEGAL:
		return ErrIllegal{Word: in.Word}
	}

	return nil
}

// execALU performs an R-type operation. Arithmetic sets all four flags;
// logical and shift operations set Z/N and clear C/V.
func (v *VM) execALU(in isa.Instruction) {
	regs := &v.Regs
	rs := regs.Read(in.Rs)
	rt := regs.Read(in.Rt)

	var res uint16
	var fl Flags

	switch in.Op {
	case isa.OP_ADD:
		sum := uint32(rs) + uint32(rt)
		res = uint16(sum)
		fl.C = sum > 0xFFFF
		fl.V = (rs^res)&(rt^res)&0x8000 != 0
	case isa.OP_SUB:
		res = rs - rt
		fl.C = rs < rt
		fl.V = (rs^rt)&(rs^res)&0x8000 != 0
	case isa.OP_AND:
		res = rs & rt
	case isa.OP_OR:
		res = rs | rt
	case isa.OP_XOR:
		res = rs ^ rt
	case isa.OP_NOT:
		res = ^rs
	case isa.OP_SHL:
		res = rs << (rt & 0xF)
	case isa.OP_SHR:
		res = rs >> (rt & 0xF)
	}

	fl.Z = res == 0
	fl.N = res&0x8000 != 0
	regs.SetFlags(fl)
	regs.Write(in.Rd, res)
}

// String renders the machine state for dumps.
func (v *VM) String() string {
	return fmt.Sprintf("%vcycles: %d  halted: %t\n", v.Regs.String(), v.Cycles, v.Halted)
}
