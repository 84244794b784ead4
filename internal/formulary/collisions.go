package formulary

import (
	"math"

	"go.uber.org/zap"

	"github.com/san-kum/plasmalab/internal/constants"
	"github.com/san-kum/plasmalab/internal/particles"
	"github.com/san-kum/plasmalab/internal/quantity"
	"github.com/san-kum/plasmalab/internal/validate"
)

// coulombLogWarning is the value below which the classical Coulomb
// logarithm is considered unreliable.
const coulombLogWarning = 2

// collisionPair holds the derived parameters of a binary collision in the
// classical picture.
type collisionPair struct {
	reducedMass float64
	speed       float64
	bPerp       float64
	deBroglie   float64
}

func (c collisionPair) impactParameterMin() float64 {
	return math.Max(c.bPerp, c.deBroglie)
}

func newCollisionPair(T float64, a, b particles.Specifier, o options) (collisionPair, error) {
	mu, err := particles.ReducedMass(a, b)
	if err != nil {
		return collisionPair{}, err
	}
	m := mu.Value()
	if math.IsNaN(m) {
		return collisionPair{}, valueError("CoulombLogarithm", "species", m, validate.ErrNaN)
	}
	za, err := chargeNumber(a, newOptions(nil))
	if err != nil {
		return collisionPair{}, err
	}
	zb, err := chargeNumber(b, newOptions(nil))
	if err != nil {
		return collisionPair{}, err
	}

	v := math.Sqrt(2 * constants.KB * T / m)
	if o.velocity != nil {
		vs, err := o.velocity.In(quantity.MetrePerSecond)
		if err != nil {
			return collisionPair{}, err
		}
		v = math.Abs(vs)
	}
	if v == 0 {
		return collisionPair{}, valueError("CoulombLogarithm", "V", v, validate.ErrZero)
	}

	q1q2 := math.Abs(za*zb) * constants.E * constants.E
	if q1q2 == 0 {
		return collisionPair{}, valueError("CoulombLogarithm", "species", 0, validate.ErrZero)
	}
	return collisionPair{
		reducedMass: m,
		speed:       v,
		bPerp:       q1q2 / (4 * math.Pi * constants.Eps0 * m * v * v),
		deBroglie:   constants.Hbar / (2 * m * v),
	}, nil
}

var coulombLogSpec = validate.Spec{
	Name: "CoulombLogarithm",
	Args: map[string]validate.Check{
		"T": {Units: units(quantity.Kelvin), Equivalencies: []quantity.Equivalency{quantity.TemperatureEnergy()}, ForbidZero: true, AllowArray: true},
		"n": {Units: units(quantity.PerCubicMetre), ForbidZero: true, AllowArray: true},
	},
	Return: validate.Check{Units: units(quantity.Dimensionless), AllowNegative: true},
}

// CoulombLogarithm returns the classical Coulomb logarithm
// ln(lambda_D / b_min) for collisions between species a and b, where b_min
// is the larger of the perpendicular impact parameter and the reduced
// de Broglie wavelength. The relative speed defaults to sqrt(2 k T / mu)
// and may be set with WithVelocity.
func CoulombLogarithm(T, n quantity.Quantity, a, b particles.Specifier, opts ...Option) (quantity.Quantity, error) {
	o := newOptions(opts)
	return validate.Validate(coulombLogSpec, func(args validate.Args) (quantity.Quantity, error) {
		pair, err := newCollisionPair(args.SI("T"), a, b, o)
		if err != nil {
			return quantity.Quantity{}, err
		}
		lD, err := DebyeLength(args["T"], args["n"])
		if err != nil {
			return quantity.Quantity{}, err
		}
		lnL := math.Log(lD.Value() / pair.impactParameterMin())
		if lnL < coulombLogWarning {
			logger.Warn("coulomb logarithm is small, classical model is unreliable",
				zap.Float64("lnLambda", lnL))
		}
		return quantity.New(lnL, quantity.Dimensionless), nil
	})(validate.Args{"T": T, "n": n})
}

var collisionFrequencySpec = validate.Spec{
	Name:   "CollisionFrequency",
	Args:   coulombLogSpec.Args,
	Return: validate.Check{Units: units(quantity.Hertz)},
}

// CollisionFrequency returns n sigma V lnLambda with the cross section
// sigma = pi (2 b_min)^2, b_min as in CoulombLogarithm. WithCoulombLog fixes
// lnLambda.
func CollisionFrequency(T, n quantity.Quantity, a, b particles.Specifier, opts ...Option) (quantity.Quantity, error) {
	o := newOptions(opts)
	return validate.Validate(collisionFrequencySpec, func(args validate.Args) (quantity.Quantity, error) {
		pair, err := newCollisionPair(args.SI("T"), a, b, o)
		if err != nil {
			return quantity.Quantity{}, err
		}
		lnL := o.coulombLog
		if math.IsNaN(lnL) {
			q, err := CoulombLogarithm(args["T"], args["n"], a, b, opts...)
			if err != nil {
				return quantity.Quantity{}, err
			}
			lnL = q.Value()
		}
		bMin := pair.impactParameterMin()
		sigma := math.Pi * 4 * bMin * bMin
		return quantity.New(args.SI("n")*sigma*pair.speed*lnL, quantity.Hertz), nil
	})(validate.Args{"T": T, "n": n})
}
