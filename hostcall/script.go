package hostcall

import (
	"errors"
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/cassitly/cvere-reality/vm"
)

var (
	ErrScriptRing   = errors.New(f("ring out of range"))
	ErrScriptResult = errors.New(f("handler result is not an int"))
)

// Script holds syscall handlers defined in Starlark. A script registers
// each handler with the predeclared function
//
//	register(num, ring, fn)
//
// where fn(m, a, b, c, d) receives a machine value and the four argument
// registers, and returns the value for R1 (or None for 0). The machine
// value exposes peek(addr), poke(addr, value), reg(i), and setreg(i, value),
// all operating at the handler's declared ring.
type Script struct {
	calls []scriptCall
}

type scriptCall struct {
	num  uint16
	ring vm.Ring
	fn   starlark.Callable
}

// LoadScript parses and executes a handler script. src may be nil to read
// the named file, or a string/[]byte/io.Reader per the Starlark ExecFile
// contract.
func LoadScript(filename string, src any) (*Script, error) {
	script := &Script{}

	register := starlark.NewBuiltin("register", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var num, ring int
		var fn starlark.Callable
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, "num", &num, "ring", &ring, "fn", &fn); err != nil {
			return nil, err
		}
		if ring < int(vm.RING_KERNEL) || ring > int(vm.RING_USER) {
			return nil, ErrScriptRing
		}

		script.calls = append(script.calls, scriptCall{
			num:  uint16(num),
			ring: vm.Ring(ring),
			fn:   fn,
		})
		return starlark.None, nil
	})

	thread := &starlark.Thread{Name: "hostcall"}
	opts := &syntax.FileOptions{}
	pred := starlark.StringDict{"register": register}

	if _, err := starlark.ExecFileOptions(opts, thread, filename, src, pred); err != nil {
		return nil, err
	}

	return script, nil
}

// Bind installs every registered handler.
func (script *Script) Bind(m *vm.VM) {
	for _, call := range script.calls {
		m.Bind(call.num, call.ring, call.handler())
	}
}

func (call scriptCall) handler() vm.HandlerFunc {
	return func(ctx *vm.Context) (uint16, error) {
		thread := &starlark.Thread{Name: fmt.Sprintf("syscall-0x%02X", call.num)}

		args := starlark.Tuple{machineValue{ctx: ctx}}
		for i := 0; i < 4; i++ {
			args = append(args, starlark.MakeInt(int(ctx.Arg(i))))
		}

		result, err := starlark.Call(thread, call.fn, args, nil)
		if err != nil {
			return 0, err
		}

		switch value := result.(type) {
		case starlark.NoneType:
			return 0, nil
		case starlark.Int:
			ret, ok := value.Int64()
			if !ok {
				return 0, ErrScriptResult
			}
			return uint16(ret), nil
		}
		return 0, ErrScriptResult
	}
}

// machineValue is the Starlark view of the machine a script handler runs
// against.
type machineValue struct {
	ctx *vm.Context
}

var _ starlark.HasAttrs = machineValue{}

func (mv machineValue) String() string        { return "<machine>" }
func (mv machineValue) Type() string          { return "machine" }
func (mv machineValue) Freeze()               {}
func (mv machineValue) Truth() starlark.Bool  { return starlark.True }
func (mv machineValue) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: machine") }

func (mv machineValue) AttrNames() []string {
	return []string{"peek", "poke", "reg", "setreg"}
}

func (mv machineValue) Attr(name string) (starlark.Value, error) {
	switch name {
	case "peek":
		return starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var addr int
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "addr", &addr); err != nil {
				return nil, err
			}
			value, err := mv.ctx.LoadWord(uint16(addr))
			if err != nil {
				return nil, err
			}
			return starlark.MakeInt(int(value)), nil
		}), nil
	case "poke":
		return starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var addr, value int
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "addr", &addr, "value", &value); err != nil {
				return nil, err
			}
			if err := mv.ctx.StoreWord(uint16(addr), uint16(value)); err != nil {
				return nil, err
			}
			return starlark.None, nil
		}), nil
	case "reg":
		return starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var i int
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "i", &i); err != nil {
				return nil, err
			}
			return starlark.MakeInt(int(mv.ctx.Reg(i))), nil
		}), nil
	case "setreg":
		return starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var i, value int
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "i", &i, "value", &value); err != nil {
				return nil, err
			}
			mv.ctx.SetReg(i, uint16(value))
			return starlark.None, nil
		}), nil
	}
	return nil, nil
}
