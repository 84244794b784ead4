package tracker

import (
	"errors"
	"math"
	"slices"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/plasmalab/internal/dynamo"
	"github.com/san-kum/plasmalab/internal/integrators"
)

func TestFieldsNilIsZero(t *testing.T) {
	e, b := Fields{}.At(r3.Vec{X: 1}, 0)
	if e != (r3.Vec{}) || b != (r3.Vec{}) {
		t.Errorf("got E=%v B=%v", e, b)
	}
}

func TestMirrorDivergenceFree(t *testing.T) {
	f := Mirror(2, 3)
	r := r3.Vec{X: 0.1, Y: -0.2, Z: 0.7}
	const h = 1e-6

	div := 0.0
	for _, d := range []r3.Vec{{X: h}, {Y: h}, {Z: h}} {
		_, bp := f.At(r3.Add(r, d), 0)
		_, bm := f.At(r3.Sub(r, d), 0)
		div += r3.Dot(r3.Sub(bp, bm), r3.Scale(1/h, d)) / (2 * h)
	}
	if math.Abs(div) > 1e-6 {
		t.Errorf("div B = %g", div)
	}

	_, b0 := f.At(r3.Vec{}, 0)
	if b0 != (r3.Vec{Z: 2}) {
		t.Errorf("B at the centre = %v", b0)
	}
}

func TestPresets(t *testing.T) {
	if got := Integrators(); !slices.Equal(got, []string{"boris", "euler", "rk4", "rk45"}) {
		t.Errorf("Integrators() = %v", got)
	}
	if got := FieldPresets(); !slices.Equal(got, []string{"exb", "mirror", "uniform"}) {
		t.Errorf("FieldPresets() = %v", got)
	}

	f, err := NewFields("uniform", FieldParams{"bz": 0.5, "ex": 2})
	if err != nil {
		t.Fatal(err)
	}
	e, b := f.At(r3.Vec{}, 0)
	if e != (r3.Vec{X: 2}) || b != (r3.Vec{Z: 0.5}) {
		t.Errorf("uniform preset gave E=%v B=%v", e, b)
	}

	if _, err := NewFields("tokamak", nil); !errors.Is(err, ErrUnknownFieldType) {
		t.Errorf("expected ErrUnknownFieldType, got %v", err)
	}
}

type decay struct{}

func (decay) StateDim() int { return 1 }

func (decay) Derive(x dynamo.State, t float64) dynamo.State { return dynamo.State{-x[0]} }

func TestBorisFallsBackToRK4(t *testing.T) {
	x := dynamo.State{1}
	got := NewBoris().Step(decay{}, x, 0, 0.1)
	want := integrators.NewRK4().Step(decay{}, x, 0, 0.1)
	if got[0] != want[0] {
		t.Errorf("got %g, want %g", got[0], want[0])
	}
}

func TestLorentzEnergy(t *testing.T) {
	l := NewLorentz([]Body{{Mass: 2, Charge: 1}, {Mass: 1, Charge: -1}}, Fields{})
	x := dynamo.State{0, 0, 0, 1, 0, 0, 5, 5, 5, 0, 2, 0}
	if got := l.Energy(x); got != 1+2 {
		t.Errorf("Energy = %g, want 3", got)
	}
	if l.StateDim() != 12 {
		t.Errorf("StateDim = %d", l.StateDim())
	}
	if v := Velocity(x, 1); v != (r3.Vec{Y: 2}) {
		t.Errorf("Velocity = %v", v)
	}
}

func TestDominantFrequency(t *testing.T) {
	const (
		n  = 1000
		dt = 0.01
		f  = 7.0
	)
	data := make([]float64, n)
	for i := range data {
		data[i] = 3 + math.Sin(2*math.Pi*f*float64(i)*dt)
	}
	got, err := DominantFrequency(data, dt)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-f) > 1/(n*dt) {
		t.Errorf("got %g, want %g", got, f)
	}

	if _, err := DominantFrequency(data[:3], dt); !errors.Is(err, ErrShortSeries) {
		t.Errorf("expected ErrShortSeries, got %v", err)
	}
}

func TestLorentzErrorScale(t *testing.T) {
	sys := NewLorentz([]Body{{Mass: 1, Charge: 1}, {Mass: 1, Charge: 1}}, Uniform(r3.Vec{}, r3.Vec{Z: 1}))
	x := make(dynamo.State, sys.StateDim())
	setParticle(x, 0, r3.Vec{}, r3.Vec{X: 1})
	setParticle(x, 1, r3.Vec{X: 3, Y: 4}, r3.Vec{})
	dx := sys.Derive(x, 0)

	scale := make(dynamo.State, len(x))
	sys.ErrorScale(x, dx, 0.1, scale)

	// Particle 0 gyrates with unit radius; particle 1 sits still at |r| = 5.
	want := dynamo.State{1.105, 1.105, 1.105, 1.1, 1.1, 1.1, 5, 5, 5, 0, 0, 0}
	for i := range want {
		if math.Abs(scale[i]-want[i]) > 1e-12 {
			t.Errorf("scale[%d] = %v, want %v", i, scale[i], want[i])
		}
	}

	// Equal errors in both blocks: the smaller velocity scale decides.
	e := make(dynamo.State, len(x))
	e[0], e[3] = 1e-3, 1e-3
	if got := dynamo.ErrorRatio(sys, x, dx, e, 0.1); math.Abs(got-1e-3/1.1) > 1e-12 {
		t.Errorf("ErrorRatio = %v, want %v", got, 1e-3/1.1)
	}
}
