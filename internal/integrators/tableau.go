package integrators

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/plasmalab/internal/dynamo"
)

// tableau is the Butcher tableau of an explicit Runge-Kutta method. Row s
// of a holds the weights of the earlier stages used to build stage s.
type tableau struct {
	c []float64
	a [][]float64
	b []float64
}

func (tb *tableau) stages() int { return len(tb.c) }

// stepper evaluates a tableau, reusing its stage buffers between steps. It
// is not safe for concurrent use.
type stepper struct {
	tb  *tableau
	k   []dynamo.State
	tmp dynamo.State
}

func newStepper(tb *tableau, extra int) stepper {
	return stepper{tb: tb, k: make([]dynamo.State, tb.stages()+extra)}
}

func (st *stepper) ensure(n int) {
	if len(st.tmp) == n {
		return
	}
	st.tmp = make(dynamo.State, n)
	for i := range st.k {
		st.k[i] = make(dynamo.State, n)
	}
}

// derive stores the derivative of sys at (x, t) in stage buffer i.
func (st *stepper) derive(i int, sys dynamo.System, x dynamo.State, t float64) {
	copy(st.k[i], sys.Derive(x, t))
}

// run evaluates every stage of the tableau for a step of dt from x and
// returns x + dt sum_s b_s k_s in a new state.
func (st *stepper) run(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	st.ensure(len(x))
	st.derive(0, sys, x, t)
	for s := 1; s < st.tb.stages(); s++ {
		combine(st.tmp, x, dt, st.tb.a[s], st.k)
		st.derive(s, sys, st.tmp, t+st.tb.c[s]*dt)
	}
	out := make(dynamo.State, len(x))
	combine(out, x, dt, st.tb.b, st.k)
	return out
}

// combine sets dst = x + dt sum_j w_j k_j. A nil x is taken as zero.
func combine(dst, x dynamo.State, dt float64, w []float64, k []dynamo.State) {
	if x == nil {
		clear(dst)
	} else {
		copy(dst, x)
	}
	for j, wj := range w {
		if wj != 0 {
			floats.AddScaled(dst, dt*wj, k[j])
		}
	}
}
