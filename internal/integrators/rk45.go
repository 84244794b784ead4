package integrators

import (
	"math"

	"github.com/san-kum/plasmalab/internal/dynamo"
)

// Dormand-Prince 5(4). The fifth-order weights are used to advance; errW
// is the difference to the embedded fourth-order solution and includes the
// first-same-as-last stage evaluated at the new state.
var (
	dopriTableau = tableau{
		c: []float64{0, 1.0 / 5, 3.0 / 10, 4.0 / 5, 8.0 / 9, 1},
		a: [][]float64{
			nil,
			{1.0 / 5},
			{3.0 / 40, 9.0 / 40},
			{44.0 / 45, -56.0 / 15, 32.0 / 9},
			{19372.0 / 6561, -25360.0 / 2187, 64448.0 / 6561, -212.0 / 729},
			{9017.0 / 3168, -355.0 / 33, 46732.0 / 5247, 49.0 / 176, -5103.0 / 18656},
		},
		b: []float64{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84},
	}
	dopriErrW = []float64{71.0 / 57600, 0, -71.0 / 16695, 71.0 / 1920, -17253.0 / 339200, 22.0 / 525, -1.0 / 40}
)

// RK45 is the adaptive Dormand-Prince method. Its error is measured with
// dynamo.ErrorRatio, so systems that implement dynamo.ErrorScaler control
// positions and velocities against their own scales.
type RK45 struct {
	safety   float64
	minScale float64
	maxScale float64

	st stepper
}

func NewRK45() *RK45 {
	return &RK45{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
		st:       newStepper(&dopriTableau, 1),
	}
}

// Step takes one fifth-order step of size dt without error control.
func (r *RK45) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	return r.st.run(sys, x, t, dt)
}

// StepAdaptive takes a Dormand-Prince step and estimates its error from the
// embedded fourth-order solution. The state is returned even when the step
// is rejected.
func (r *RK45) StepAdaptive(sys dynamo.System, x dynamo.State, t, dt, tol float64) (dynamo.State, float64, error) {
	xNew := r.st.run(sys, x, t, dt)
	last := dopriTableau.stages()
	r.st.derive(last, sys, xNew, t+dt)

	combine(r.st.tmp, nil, dt, dopriErrW, r.st.k)
	errRatio := dynamo.ErrorRatio(sys, x, r.st.k[0], r.st.tmp, dt) / tol

	switch {
	case errRatio > 1:
		scale := math.Max(r.minScale, r.safety*math.Pow(errRatio, -0.25))
		return xNew, dt * scale, dynamo.ErrStepRejected
	case errRatio > 0:
		scale := math.Min(r.maxScale, r.safety*math.Pow(errRatio, -0.2))
		return xNew, dt * scale, nil
	default:
		return xNew, dt * r.maxScale, nil
	}
}
