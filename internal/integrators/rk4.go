package integrators

import "github.com/san-kum/plasmalab/internal/dynamo"

var rk4Tableau = tableau{
	c: []float64{0, 0.5, 0.5, 1},
	a: [][]float64{
		nil,
		{0.5},
		{0, 0.5},
		{0, 0, 1},
	},
	b: []float64{1.0 / 6, 1.0 / 3, 1.0 / 3, 1.0 / 6},
}

// RK4 is the classical fourth-order Runge-Kutta method.
type RK4 struct {
	st stepper
}

func NewRK4() *RK4 {
	return &RK4{st: newStepper(&rk4Tableau, 0)}
}

func (r *RK4) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	return r.st.run(sys, x, t, dt)
}
