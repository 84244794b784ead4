package tracker

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// VectorField evaluates a field at position r and time t.
type VectorField func(r r3.Vec, t float64) r3.Vec

// Constant returns a field with the same value everywhere.
func Constant(v r3.Vec) VectorField {
	return func(r3.Vec, float64) r3.Vec { return v }
}

// Fields pairs an electric and a magnetic field. A nil field is zero.
type Fields struct {
	E VectorField
	B VectorField
}

// At evaluates both fields.
func (f Fields) At(r r3.Vec, t float64) (e, b r3.Vec) {
	if f.E != nil {
		e = f.E(r, t)
	}
	if f.B != nil {
		b = f.B(r, t)
	}
	return e, b
}

// Uniform returns constant E and B fields.
func Uniform(e, b r3.Vec) Fields {
	return Fields{E: Constant(e), B: Constant(b)}
}

// CrossedEB returns E along y and B along z, giving a drift along x with
// speed e/b.
func CrossedEB(e, b float64) Fields {
	return Uniform(r3.Vec{Y: e}, r3.Vec{Z: b})
}

// Mirror returns a magnetic bottle with B_z = b0 (1 + z^2/l^2) on axis and
// the radial components needed to keep the field divergence free to first
// order in the distance from the axis.
func Mirror(b0, l float64) Fields {
	return Fields{B: func(r r3.Vec, _ float64) r3.Vec {
		k := b0 / (l * l)
		return r3.Vec{
			X: -k * r.X * r.Z,
			Y: -k * r.Y * r.Z,
			Z: b0 + k*r.Z*r.Z,
		}
	}}
}

// DriftVelocity returns the E x B drift E x B / |B|^2.
func DriftVelocity(e, b r3.Vec) r3.Vec {
	b2 := r3.Dot(b, b)
	if b2 == 0 {
		return r3.Vec{}
	}
	return r3.Scale(1/b2, r3.Cross(e, b))
}
