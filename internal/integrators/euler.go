package integrators

import "github.com/san-kum/plasmalab/internal/dynamo"

var eulerTableau = tableau{
	c: []float64{0},
	a: [][]float64{nil},
	b: []float64{1},
}

// Euler is the first-order forward Euler method.
type Euler struct {
	st stepper
}

func NewEuler() *Euler {
	return &Euler{st: newStepper(&eulerTableau, 0)}
}

func (e *Euler) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	return e.st.run(sys, x, t, dt)
}
