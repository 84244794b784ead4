package tracker

import (
	"context"
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/plasmalab/internal/constants"
	"github.com/san-kum/plasmalab/internal/formulary"
	"github.com/san-kum/plasmalab/internal/particles"
	"github.com/san-kum/plasmalab/internal/quantity"
	"github.com/san-kum/plasmalab/internal/validate"
)

func relClose(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol*math.Max(math.Abs(a), math.Abs(b))
}

func dimensionless(t *testing.T, m, q float64) particles.Like {
	t.Helper()
	p, err := particles.NewDimensionlessParticle(m, q)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

// span returns half the extent of the saved x coordinates of particle i.
func span(res *Result, i int) float64 {
	xs := make([]float64, len(res.States))
	for k := range res.States {
		xs[k] = res.Position(k, i).X
	}
	return (floats.Max(xs) - floats.Min(xs)) / 2
}

func TestGyrationMatchesGyroradius(t *testing.T) {
	const (
		b     = 0.1
		vperp = 1e5
	)
	wc := constants.E * b / constants.ProtonMass
	period := 2 * math.Pi / wc

	tr, err := New(Config{
		Particles:  []particles.Specifier{"p+"},
		Positions:  []r3.Vec{{}},
		Velocities: []r3.Vec{{X: vperp}},
		Fields:     Uniform(r3.Vec{}, r3.Vec{Z: b}),
		Dt:         period / 200,
		Duration:   3 * period,
	})
	if err != nil {
		t.Fatal(err)
	}
	res, err := tr.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	want, err := formulary.Gyroradius(
		quantity.New(b, quantity.Tesla), "p+",
		formulary.WithVperp(quantity.New(vperp, quantity.MetrePerSecond)),
	)
	if err != nil {
		t.Fatal(err)
	}
	if got := span(res, 0); !relClose(got, want.Value(), 1e-3) {
		t.Errorf("gyration radius %g, Gyroradius %g", got, want.Value())
	}
	if drift := res.Metrics["energy_drift"]; drift > 1e-10 {
		t.Errorf("boris energy drift %g in a pure magnetic field", drift)
	}
}

func TestAdaptiveGyrationSI(t *testing.T) {
	const (
		b     = 0.1
		vperp = 1e5
	)
	period := 2 * math.Pi * constants.ProtonMass / (constants.E * b)
	tr, err := New(Config{
		Particles:  []particles.Specifier{"p+"},
		Positions:  []r3.Vec{{}},
		Velocities: []r3.Vec{{X: vperp}},
		Fields:     Uniform(r3.Vec{}, r3.Vec{Z: b}),
		Integrator: "rk45",
		Adaptive:   true,
		Tolerance:  1e-8,
		Dt:         period / 50,
		Duration:   2 * period,
	})
	if err != nil {
		t.Fatal(err)
	}
	res, err := tr.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	// The orbit of a proton launched along x in B along z is centred on -y.
	rho := constants.ProtonMass * vperp / (constants.E * b)
	centre := r3.Vec{Y: -rho}
	for k := range res.States {
		if got := r3.Norm(r3.Sub(res.Position(k, 0), centre)); !relClose(got, rho, 1e-5) {
			t.Fatalf("t=%g: distance from guiding centre %g, want %g", res.Times[k], got, rho)
		}
	}
	// Positions in metres and velocities in m/s are controlled separately,
	// so a loose relative tolerance does not force tiny steps.
	if res.StepsTaken > 2000 {
		t.Errorf("adaptive run took %d steps", res.StepsTaken)
	}
}

func TestGyrationIntegrators(t *testing.T) {
	for _, name := range []string{"boris", "rk4", "rk45"} {
		t.Run(name, func(t *testing.T) {
			tr, err := New(Config{
				Particles:  []particles.Specifier{dimensionless(t, 1, 1)},
				Positions:  []r3.Vec{{}},
				Velocities: []r3.Vec{{X: 1}},
				Fields:     Uniform(r3.Vec{}, r3.Vec{Z: 1}),
				Integrator: name,
				Dt:         2 * math.Pi / 400,
				Duration:   2 * math.Pi,
			})
			if err != nil {
				t.Fatal(err)
			}
			if !tr.Dimensionless() {
				t.Error("expected a dimensionless run")
			}
			res, err := tr.Run(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if got := span(res, 0); !relClose(got, 1, 1e-3) {
				t.Errorf("radius %g, want 1", got)
			}
			end := res.Position(len(res.States)-1, 0)
			if r3.Norm(end) > 1e-2 {
				t.Errorf("orbit did not close after one period: %v", end)
			}
		})
	}
}

func TestGyrationFrequency(t *testing.T) {
	tr, err := New(Config{
		Particles:  []particles.Specifier{dimensionless(t, 2, 1)},
		Positions:  []r3.Vec{{}},
		Velocities: []r3.Vec{{X: 1}},
		Fields:     Uniform(r3.Vec{}, r3.Vec{Z: 3}),
		Dt:         0.01,
		Duration:   100,
	})
	if err != nil {
		t.Fatal(err)
	}
	res, err := tr.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	got, err := res.Frequency(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := 1.5 / (2 * math.Pi)
	if math.Abs(got-want) > 1/res.Times[len(res.Times)-1] {
		t.Errorf("gyration frequency %g, want %g", got, want)
	}
}

func TestExBDrift(t *testing.T) {
	const (
		e = 1e3
		b = 0.1
	)
	wc := constants.E * b / constants.ProtonMass
	period := 2 * math.Pi / wc

	fields := CrossedEB(e, b)
	tr, err := New(Config{
		Particles:  []particles.Specifier{particles.Proton},
		Positions:  []r3.Vec{{}},
		Velocities: []r3.Vec{{}},
		Fields:     fields,
		Dt:         period / 200,
		Duration:   5 * period,
	})
	if err != nil {
		t.Fatal(err)
	}
	res, err := tr.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	last := len(res.States) - 1
	speed := res.Position(last, 0).X / res.Times[last]
	if !relClose(speed, e/b, 1e-2) {
		t.Errorf("drift speed %g, want %g", speed, e/b)
	}

	ev, bv := fields.At(r3.Vec{}, 0)
	if vd := DriftVelocity(ev, bv); !relClose(vd.X, e/b, 1e-12) || vd.Y != 0 || vd.Z != 0 {
		t.Errorf("DriftVelocity = %v", vd)
	}
}

func TestMirrorConfinement(t *testing.T) {
	tr, err := New(Config{
		Particles:         []particles.Specifier{dimensionless(t, 1, 1)},
		Positions:         []r3.Vec{{}},
		Velocities:        []r3.Vec{{X: 0.05, Z: 0.01}},
		Fields:            Mirror(1, 1),
		Dt:                0.05,
		Duration:          200,
		ConfinementRadius: 0.5,
	})
	if err != nil {
		t.Fatal(err)
	}
	res, err := tr.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Metrics["confinement"]; got != 1 {
		t.Errorf("confinement %g, want 1", got)
	}

	var zmax float64
	for _, r := range res.Trajectory(0) {
		zmax = math.Max(zmax, math.Abs(r.Z))
	}
	if zmax > 0.3 {
		t.Errorf("particle was not reflected, reached z = %g", zmax)
	}
}

func TestNewErrors(t *testing.T) {
	nanMass, err := particles.NewCustomParticle()
	if err != nil {
		t.Fatal(err)
	}
	one := []r3.Vec{{}}
	two := []r3.Vec{{}, {}}

	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"no particles", Config{}, ErrNoParticles},
		{"length mismatch", Config{Particles: []particles.Specifier{"p+"}, Positions: two, Velocities: one}, ErrLengthMismatch},
		{"mixed units", Config{
			Particles:  []particles.Specifier{"p+", dimensionless(t, 1, 1)},
			Positions:  two,
			Velocities: two,
		}, ErrMixedUnits},
		{"nan mass", Config{Particles: []particles.Specifier{nanMass}, Positions: one, Velocities: one}, ErrInvalidMass},
		{"zero mass", Config{Particles: []particles.Specifier{dimensionless(t, 0, 1)}, Positions: one, Velocities: one}, ErrInvalidMass},
		{"nan charge", Config{Particles: []particles.Specifier{dimensionless(t, 1, math.NaN())}, Positions: one, Velocities: one}, ErrInvalidCharge},
		{"bad specifier", Config{Particles: []particles.Specifier{"not a particle"}, Positions: one, Velocities: one}, particles.ErrInvalidParticle},
		{"unknown integrator", Config{Particles: []particles.Specifier{"e-"}, Positions: one, Velocities: one, Integrator: "leapfrog"}, ErrUnknownStepper},
		{"superluminal", Config{Particles: []particles.Specifier{"e-"}, Positions: one, Velocities: []r3.Vec{{X: 2 * constants.C}}}, validate.ErrRelativity},
		{"nan position", Config{Particles: []particles.Specifier{"e-"}, Positions: []r3.Vec{{X: math.NaN()}}, Velocities: one}, ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRunCancelled(t *testing.T) {
	tr, err := New(Config{
		Particles:  []particles.Specifier{"e-"},
		Positions:  []r3.Vec{{}},
		Velocities: []r3.Vec{{X: 1e5}},
		Fields:     Uniform(r3.Vec{}, r3.Vec{Z: 1e-3}),
		Dt:         1e-10,
		Duration:   1e-6,
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := tr.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if res == nil || res.StepsTaken != 0 {
		t.Errorf("expected an empty partial result, got %+v", res)
	}
}

func TestRunInvalidConfig(t *testing.T) {
	tr, err := New(Config{
		Particles:  []particles.Specifier{"e-"},
		Positions:  []r3.Vec{{}},
		Velocities: []r3.Vec{{}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tr.Run(context.Background()); err == nil {
		t.Error("expected an error for zero dt")
	}
}
