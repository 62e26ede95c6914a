package vm

// HandlerFunc services one system call. It runs with a borrowed Context and
// returns the value stored to R1. A returned error becomes an architectural
// fault at the SYSCALL's PC.
type HandlerFunc func(ctx *Context) (uint16, error)

// Handler is a bound system call. MinRing is the least privileged ring
// allowed to invoke it.
type Handler struct {
	MinRing Ring
	Fn      HandlerFunc
}

// Bind installs a handler for syscall number num. Rebinding a number
// replaces the previous handler.
func (v *VM) Bind(num uint16, ring Ring, fn HandlerFunc) {
	v.gateway[num] = Handler{MinRing: ring, Fn: fn}
}

// syscall dispatches the SYSCALL instruction: number in R1, arguments in
// R2..R5, result written back to R1. Kernel handlers run with the
// code-write protection relaxed for exactly the duration of the call.
func (v *VM) syscall() error {
	num := v.Regs.Read(1)

	h, ok := v.gateway[num]
	if !ok {
		return ErrUnknownSyscall{Num: num}
	}

	ring := v.Regs.Ring()
	if h.MinRing < ring {
		return ErrPrivilege{Num: num, Ring: ring}
	}

	if h.MinRing == RING_KERNEL {
		release := v.Mem.unprotect()
		defer release()
	}

	ret, err := h.Fn(&Context{vm: v, ring: h.MinRing})
	if err != nil {
		return err
	}

	v.Regs.Write(1, ret)
	return nil
}

// Context is the borrowed view of the machine a handler runs with. Memory
// access goes through the handler's declared ring. Handlers must not retain
// the Context past return.
type Context struct {
	vm   *VM
	ring Ring
}

// Arg returns argument register R2+i (i in 0..3).
func (ctx *Context) Arg(i int) uint16 {
	if i < 0 || i > 3 {
		return 0
	}
	return ctx.vm.Regs.Read(2 + i)
}

// Reg reads a general-purpose register.
func (ctx *Context) Reg(i int) uint16 {
	return ctx.vm.Regs.Read(i)
}

// SetReg writes a general-purpose register.
func (ctx *Context) SetReg(i int, value uint16) {
	ctx.vm.Regs.Write(i, value)
}

// LoadWord reads memory at the handler's ring.
func (ctx *Context) LoadWord(addr uint16) (uint16, error) {
	return ctx.vm.Mem.LoadWord(addr, ctx.ring)
}

// StoreWord writes memory at the handler's ring.
func (ctx *Context) StoreWord(addr uint16, value uint16) error {
	return ctx.vm.Mem.StoreWord(addr, value, ctx.ring)
}

// Ring returns the caller's current privilege level.
func (ctx *Context) Ring() Ring {
	return ctx.vm.Regs.Ring()
}

// SetRing changes the current privilege level. The gateway is the only
// path that may alter CPL.
func (ctx *Context) SetRing(ring Ring) {
	ctx.vm.Regs.setRing(ring)
}

// Halt stops the machine after the current instruction completes.
func (ctx *Context) Halt() {
	ctx.vm.Halted = true
}

// Cycles returns the cycle counter.
func (ctx *Context) Cycles() uint64 {
	return ctx.vm.Cycles
}

// Snapshot captures the full architectural state.
func (ctx *Context) Snapshot() *Snapshot {
	return ctx.vm.Snapshot()
}

// Restore reinstates a previously captured state.
func (ctx *Context) Restore(snap *Snapshot) {
	ctx.vm.Restore(snap)
}
