package hostcall

import (
	"bufio"
	"fmt"
	"io"

	"github.com/cassitly/cvere-reality/vm"
)

// Console services the ring-2 console syscalls. Output defaults to discard
// and a nil Input reports end-of-file, so a machine with no console wired
// still runs.
type Console struct {
	Input  io.Reader
	Output io.Writer

	// Color holds the last SYS_COLOR value; rendering it is up to the
	// host.
	Color uint16

	in *bufio.Reader
}

// EOF_CHAR is returned by SYS_READ_CHAR when input is exhausted.
const EOF_CHAR = uint16(0xFFFF)

// Bind installs the console handlers.
func (con *Console) Bind(m *vm.VM) {
	m.Bind(SYS_EXIT, vm.RING_USER, con.exit)
	m.Bind(SYS_PRINT_CHAR, vm.RING_USER, con.printChar)
	m.Bind(SYS_PRINT_STR, vm.RING_USER, con.printStr)
	m.Bind(SYS_PRINT_HEX, vm.RING_USER, con.printHex)
	m.Bind(SYS_READ_CHAR, vm.RING_USER, con.readChar)
	m.Bind(SYS_READ_LINE, vm.RING_USER, con.readLine)
	m.Bind(SYS_CLEAR, vm.RING_USER, con.clear)
	m.Bind(SYS_COLOR, vm.RING_USER, con.setColor)
}

func (con *Console) out() io.Writer {
	if con.Output == nil {
		return io.Discard
	}
	return con.Output
}

func (con *Console) reader() *bufio.Reader {
	if con.in == nil && con.Input != nil {
		con.in = bufio.NewReader(con.Input)
	}
	return con.in
}

// exit halts the machine; R2 carries the exit code back in R1.
func (con *Console) exit(ctx *vm.Context) (uint16, error) {
	ctx.Halt()
	return ctx.Arg(0), nil
}

func (con *Console) printChar(ctx *vm.Context) (uint16, error) {
	fmt.Fprintf(con.out(), "%c", rune(ctx.Arg(0)))
	return 0, nil
}

// printStr writes the NUL-terminated string of cells starting at the
// address in R2. Each cell holds one character in its low byte.
func (con *Console) printStr(ctx *vm.Context) (uint16, error) {
	addr := ctx.Arg(0)
	count := uint16(0)

	for {
		cell, err := ctx.LoadWord(addr + count)
		if err != nil {
			return count, err
		}
		if cell == 0 {
			return count, nil
		}

		fmt.Fprintf(con.out(), "%c", rune(cell&0xFF))
		count++
		if count == 0 {
			// Wrapped the whole address space without a NUL.
			return count, nil
		}
	}
}

func (con *Console) printHex(ctx *vm.Context) (uint16, error) {
	fmt.Fprintf(con.out(), "0x%04X", ctx.Arg(0))
	return 0, nil
}

func (con *Console) readChar(ctx *vm.Context) (uint16, error) {
	in := con.reader()
	if in == nil {
		return EOF_CHAR, nil
	}

	b, err := in.ReadByte()
	if err != nil {
		return EOF_CHAR, nil
	}
	return uint16(b), nil
}

// readLine reads up to R3-1 characters into the buffer at R2, one character
// per cell, NUL-terminated: the limit in R3 counts the NUL. Returns the
// count of characters stored.
func (con *Console) readLine(ctx *vm.Context) (uint16, error) {
	addr := ctx.Arg(0)
	limit := ctx.Arg(1)
	if limit == 0 {
		return 0, nil
	}

	count := uint16(0)
	in := con.reader()

	for in != nil && count < limit-1 {
		b, err := in.ReadByte()
		if err != nil || b == '\n' {
			break
		}
		if err := ctx.StoreWord(addr+count, uint16(b)); err != nil {
			return count, err
		}
		count++
	}

	if err := ctx.StoreWord(addr+count, 0); err != nil {
		return count, err
	}
	return count, nil
}

func (con *Console) clear(ctx *vm.Context) (uint16, error) {
	fmt.Fprint(con.out(), "\x1b[2J\x1b[H")
	return 0, nil
}

func (con *Console) setColor(ctx *vm.Context) (uint16, error) {
	con.Color = ctx.Arg(0)
	return 0, nil
}
