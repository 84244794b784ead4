package formulary

import (
	"fmt"
	"math"

	"github.com/san-kum/plasmalab/internal/constants"
	"github.com/san-kum/plasmalab/internal/particles"
	"github.com/san-kum/plasmalab/internal/quantity"
	"github.com/san-kum/plasmalab/internal/validate"
)

func units(us ...quantity.Units) []quantity.Units { return us }

// Argument checks shared by many specs.
var (
	temperature = validate.Check{
		Units:         units(quantity.Kelvin),
		Equivalencies: []quantity.Equivalency{quantity.TemperatureEnergy()},
		AllowArray:    true,
	}
	density       = validate.Check{Units: units(quantity.PerCubicMetre), AllowArray: true}
	field         = validate.Check{Units: units(quantity.Tesla), AllowNegative: true, AllowArray: true}
	speed         = validate.Check{Units: units(quantity.MetrePerSecond), AllowNegative: true, AllowArray: true}
	length        = validate.Check{Units: units(quantity.Metre), ForbidZero: true, AllowArray: true}
	angularFreq   = validate.Check{Units: units(quantity.RadPerSecond)}
	signedFreq    = validate.Check{Units: units(quantity.RadPerSecond), AllowNegative: true}
	speedResult   = validate.Check{Units: units(quantity.MetrePerSecond)}
	lengthResult  = validate.Check{Units: units(quantity.Metre)}
	dimensionless = validate.Check{Units: units(quantity.Dimensionless)}
)

// particleMass returns the SI mass of a particle, honouring WithMass.
func particleMass(spec particles.Specifier, o options) (float64, error) {
	if o.mass != nil {
		m, err := o.mass.In(quantity.Kilogram)
		if err != nil {
			return 0, fmt.Errorf("mass override: %w", err)
		}
		return m, nil
	}
	p, err := particles.Resolve(spec)
	if err != nil {
		return 0, err
	}
	mq, err := p.Mass()
	if err != nil {
		return 0, err
	}
	m, err := mq.In(quantity.Kilogram)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", p.Symbol(), err)
	}
	if math.IsNaN(m) {
		return 0, fmt.Errorf("%w: mass of %s is undefined", particles.ErrMissingAtomicData, p.Symbol())
	}
	return m, nil
}

// chargeNumber returns the particle charge in units of e, honouring
// WithZMean.
func chargeNumber(spec particles.Specifier, o options) (float64, error) {
	if !math.IsNaN(o.zMean) {
		return o.zMean, nil
	}
	p, err := particles.Resolve(spec)
	if err != nil {
		return 0, err
	}
	q, err := p.Charge()
	if err != nil {
		return 0, err
	}
	c, err := q.In(quantity.Coulomb)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", p.Symbol(), err)
	}
	if math.IsNaN(c) {
		return 0, fmt.Errorf("%w: charge of %s is undefined", particles.ErrCharge, p.Symbol())
	}
	return c / constants.E, nil
}

func valueError(fn, arg string, v float64, reason error) error {
	return &validate.ValueError{Func: fn, Arg: arg, Value: v, Reason: reason}
}
