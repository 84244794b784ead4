package tracker

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/plasmalab/internal/dynamo"
	"github.com/san-kum/plasmalab/internal/integrators"
)

// Boris is the Boris particle pusher: half an electric kick, a rotation
// about B, the other half kick, then a drift. It conserves speed exactly in
// a pure magnetic field. Systems other than *Lorentz fall back to RK4.
type Boris struct {
	fallback *integrators.RK4
}

func NewBoris() *Boris {
	return &Boris{fallback: integrators.NewRK4()}
}

func (b *Boris) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	l, ok := sys.(*Lorentz)
	if !ok {
		return b.fallback.Step(sys, x, t, dt)
	}

	out := make(dynamo.State, len(x))
	dynamo.ParallelFor(l.Particles(), parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			r, v := Position(x, i), Velocity(x, i)
			e, bf := l.fields.At(r, t)
			h := 0.5 * l.ChargeToMass(i) * dt

			vMinus := r3.Add(v, r3.Scale(h, e))
			tv := r3.Scale(h, bf)
			s := r3.Scale(2/(1+r3.Dot(tv, tv)), tv)
			vPrime := r3.Add(vMinus, r3.Cross(vMinus, tv))
			vPlus := r3.Add(vMinus, r3.Cross(vPrime, s))
			vNew := r3.Add(vPlus, r3.Scale(h, e))

			setParticle(out, i, r3.Add(r, r3.Scale(dt, vNew)), vNew)
		}
	})
	return out
}
