package dynamo

import "math"

// errorFloor keeps the default scale positive for components that are zero
// and stationary.
const errorFloor = 1e-10

// ErrorScaler is implemented by systems whose state mixes quantities of
// different kinds, such as positions and velocities. ErrorScale fills scale
// with the magnitude against which the local error of each component is
// judged, given the state x and its derivative dx at the start of a step of
// size dt.
type ErrorScaler interface {
	ErrorScale(x, dx State, dt float64, scale State)
}

// ErrorRatio returns max_i |e_i| / scale_i for a local error estimate e.
// Systems that do not implement ErrorScaler are judged component by
// component against |x_i| + |dt dx_i|.
func ErrorRatio(sys System, x, dx, e State, dt float64) float64 {
	scale := make(State, len(x))
	if es, ok := sys.(ErrorScaler); ok {
		es.ErrorScale(x, dx, dt, scale)
	} else {
		for i := range x {
			scale[i] = math.Abs(x[i]) + math.Abs(dt*dx[i]) + errorFloor
		}
	}

	worst := 0.0
	for i, ei := range e {
		if ei == 0 {
			continue
		}
		worst = math.Max(worst, math.Abs(ei)/scale[i])
	}
	return worst
}
