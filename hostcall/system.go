package hostcall

import (
	"math"
	"math/rand"
	"time"

	"github.com/cassitly/cvere-reality/vm"
)

// System services the ring-2 time and math syscalls.
type System struct {
	// Seed fixes the random stream when nonzero; otherwise the stream
	// is time-seeded.
	Seed int64

	// Now substitutes the wall clock in tests.
	Now func() time.Time

	rng *rand.Rand
}

// Bind installs the system handlers.
func (sys *System) Bind(m *vm.VM) {
	m.Bind(SYS_TIME, vm.RING_USER, sys.cycles)
	m.Bind(SYS_REAL_TIME, vm.RING_USER, sys.realTime)
	m.Bind(SYS_RANDOM, vm.RING_USER, sys.random)
	m.Bind(SYS_SQRT, vm.RING_USER, sys.sqrt)
}

func (sys *System) random(ctx *vm.Context) (uint16, error) {
	if sys.rng == nil {
		seed := sys.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		sys.rng = rand.New(rand.NewSource(seed))
	}
	return uint16(sys.rng.Uint32()), nil
}

func (sys *System) cycles(ctx *vm.Context) (uint16, error) {
	return uint16(ctx.Cycles()), nil
}

func (sys *System) realTime(ctx *vm.Context) (uint16, error) {
	now := time.Now
	if sys.Now != nil {
		now = sys.Now
	}
	return uint16(now().Unix()), nil
}

func (sys *System) sqrt(ctx *vm.Context) (uint16, error) {
	return uint16(math.Sqrt(float64(ctx.Arg(0)))), nil
}
