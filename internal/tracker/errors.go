package tracker

import "errors"

var (
	ErrNoParticles      = errors.New("tracker: no particles")
	ErrLengthMismatch   = errors.New("tracker: particles, positions and velocities differ in length")
	ErrMixedUnits       = errors.New("tracker: SI and dimensionless particles cannot be mixed")
	ErrInvalidMass      = errors.New("tracker: particle mass must be positive and finite")
	ErrInvalidCharge    = errors.New("tracker: particle charge must be finite")
	ErrInvalidState     = errors.New("tracker: non-finite initial position or velocity")
	ErrUnknownStepper   = errors.New("tracker: unknown integrator")
	ErrUnknownFieldType = errors.New("tracker: unknown field preset")
)
