// Package constants exposes the physical constants used across plasmalab as
// float64 constants in SI units.
//
// The CODATA values come from gonum's unit/constant package; particle masses
// that gonum does not carry are listed here directly.
package constants

import (
	"math"

	"gonum.org/v1/gonum/unit/constant"
)

const (
	C    = float64(constant.LightSpeedInVacuum)
	E    = float64(constant.ElementaryCharge)
	Eps0 = float64(constant.ElectricConstant)
	Mu0  = float64(constant.MagneticConstant)
	KB   = float64(constant.Boltzmann)
	H    = float64(constant.Planck)
	Hbar = H / (2 * math.Pi)
	U    = float64(constant.AtomicMass)
)

// Particle rest masses in kg (CODATA 2018).
const (
	ElectronMass = 9.1093837015e-31
	ProtonMass   = 1.67262192369e-27
	NeutronMass  = 1.67492749804e-27
	DeuteronMass = 3.3435837724e-27
	TritonMass   = 5.0073567446e-27
	AlphaMass    = 6.6446573357e-27
	MuonMass     = 1.883531627e-28
	TauMass      = 3.16754e-27
)

// EV is one electronvolt in joules.
const EV = E

// KelvinPerEV is the temperature equivalent of one electronvolt.
const KelvinPerEV = E / KB
