package integrators

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/plasmalab/internal/dynamo"
)

func TestTableauConsistency(t *testing.T) {
	tests := []struct {
		name string
		tb   *tableau
	}{
		{"euler", &eulerTableau},
		{"rk4", &rk4Tableau},
		{"dopri", &dopriTableau},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := floats.Sum(tt.tb.b); math.Abs(got-1) > 1e-14 {
				t.Errorf("sum b = %v, want 1", got)
			}
			for s, row := range tt.tb.a {
				if got := floats.Sum(row); math.Abs(got-tt.tb.c[s]) > 1e-14 {
					t.Errorf("row %d sums to %v, want c = %v", s, got, tt.tb.c[s])
				}
			}
		})
	}
	// Both embedded solutions are consistent, so their difference sums to 0.
	if got := floats.Sum(dopriErrW); math.Abs(got) > 1e-14 {
		t.Errorf("sum of error weights = %v, want 0", got)
	}
}

func TestCombine(t *testing.T) {
	k := []dynamo.State{{1, 2}, {10, 20}}
	dst := make(dynamo.State, 2)
	combine(dst, dynamo.State{100, 200}, 0.5, []float64{1, 0.5}, k)
	if dst[0] != 103 || dst[1] != 206 {
		t.Errorf("combine = %v, want [103 206]", dst)
	}
	combine(dst, nil, 2, []float64{0, 1}, k)
	if dst[0] != 20 || dst[1] != 40 {
		t.Errorf("combine from zero = %v, want [20 40]", dst)
	}
}

func TestStepDoesNotAlias(t *testing.T) {
	sys := gyration{w: 1}
	x0 := dynamo.State{0, 1, 1, 0}
	for _, integ := range []dynamo.Integrator{NewEuler(), NewRK4(), NewRK45()} {
		a := integ.Step(sys, x0, 0, 0.1)
		b := integ.Step(sys, x0, 0, 0.1)
		if &a[0] == &b[0] {
			t.Errorf("%T reuses its output buffer", integ)
		}
		if a[0] != b[0] || x0[0] != 0 {
			t.Errorf("%T: repeated steps differ or input modified", integ)
		}
	}
}
