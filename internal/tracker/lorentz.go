package tracker

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/plasmalab/internal/dynamo"
)

// stride is the number of state values per particle.
const stride = 6

// parallelThreshold is the particle count above which derivatives are
// computed on several goroutines.
const parallelThreshold = 256

// Body is the mass and charge of one tracked particle, in SI or in
// normalized units.
type Body struct {
	Mass   float64
	Charge float64
}

// Lorentz is the equation of motion m dv/dt = q (E + v x B).
type Lorentz struct {
	bodies []Body
	qm     []float64
	fields Fields
}

func NewLorentz(bodies []Body, fields Fields) *Lorentz {
	qm := make([]float64, len(bodies))
	for i, b := range bodies {
		qm[i] = b.Charge / b.Mass
	}
	return &Lorentz{bodies: bodies, qm: qm, fields: fields}
}

func (l *Lorentz) StateDim() int { return len(l.bodies) * stride }

// Particles returns the number of tracked particles.
func (l *Lorentz) Particles() int { return len(l.bodies) }

// ChargeToMass returns q/m of particle i.
func (l *Lorentz) ChargeToMass(i int) float64 { return l.qm[i] }

// Fields returns the applied fields.
func (l *Lorentz) Fields() Fields { return l.fields }

func (l *Lorentz) Derive(x dynamo.State, t float64) dynamo.State {
	dx := make(dynamo.State, len(x))
	dynamo.ParallelFor(len(l.bodies), parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			r, v := Position(x, i), Velocity(x, i)
			e, b := l.fields.At(r, t)
			a := r3.Scale(l.qm[i], r3.Add(e, r3.Cross(v, b)))
			o := i * stride
			dx[o], dx[o+1], dx[o+2] = v.X, v.Y, v.Z
			dx[o+3], dx[o+4], dx[o+5] = a.X, a.Y, a.Z
		}
	})
	return dx
}

// ErrorScale judges each particle's position error against its distance
// from the origin plus the larger lengths of its motion: the distance
// covered in dt and the local radius of curvature |v|^2/|a|, which is the
// Larmor radius for pure gyration. Velocity error is judged against the
// speed plus |a| dt.
func (l *Lorentz) ErrorScale(x, dx dynamo.State, dt float64, scale dynamo.State) {
	for i := range l.bodies {
		r, v := Position(x, i), Velocity(x, i)
		o := i*stride + 3
		a := r3.Vec{X: dx[o], Y: dx[o+1], Z: dx[o+2]}
		speed, accel := r3.Norm(v), r3.Norm(a)

		length := r3.Norm(r) + speed*dt + 0.5*accel*dt*dt
		if accel > 0 {
			length += speed * speed / accel
		}
		vel := speed + accel*dt

		o = i * stride
		for c := range 3 {
			scale[o+c] = length
			scale[o+3+c] = vel
		}
	}
}

// Energy returns the total kinetic energy.
func (l *Lorentz) Energy(x dynamo.State) float64 {
	var sum float64
	for i, b := range l.bodies {
		v := Velocity(x, i)
		sum += 0.5 * b.Mass * r3.Dot(v, v)
	}
	return sum
}

// Position returns the position of particle i in state x.
func Position(x dynamo.State, i int) r3.Vec {
	o := i * stride
	return r3.Vec{X: x[o], Y: x[o+1], Z: x[o+2]}
}

// Velocity returns the velocity of particle i in state x.
func Velocity(x dynamo.State, i int) r3.Vec {
	o := i*stride + 3
	return r3.Vec{X: x[o], Y: x[o+1], Z: x[o+2]}
}

func setParticle(x dynamo.State, i int, r, v r3.Vec) {
	o := i * stride
	x[o], x[o+1], x[o+2] = r.X, r.Y, r.Z
	x[o+3], x[o+4], x[o+5] = v.X, v.Y, v.Z
}

func finite(v r3.Vec) bool {
	return !math.IsNaN(v.X+v.Y+v.Z) && !math.IsInf(v.X+v.Y+v.Z, 0)
}
