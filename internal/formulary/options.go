package formulary

import (
	"math"

	"github.com/san-kum/plasmalab/internal/quantity"
)

// Option adjusts optional parameters of a calculation.
type Option func(*options)

type options struct {
	method     string
	ndim       int
	signed     bool
	zMean      float64
	zRatio     float64
	mass       *quantity.Quantity
	vperp      *quantity.Quantity
	temp       *quantity.Quantity
	ne         *quantity.Quantity
	k          *quantity.Quantity
	velocity   *quantity.Quantity
	gammaE     float64
	gammaI     float64
	coulombLog float64
}

func newOptions(opts []Option) options {
	o := options{
		method:     "most_probable",
		ndim:       3,
		zMean:      math.NaN(),
		zRatio:     1,
		gammaE:     1,
		gammaI:     3,
		coulombLog: math.NaN(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMethod selects the thermal speed definition: "most_probable", "rms",
// "mean_magnitude" or "nrl".
func WithMethod(m string) Option { return func(o *options) { o.method = m } }

// WithNdim sets the number of velocity dimensions (1, 2 or 3).
func WithNdim(n int) Option { return func(o *options) { o.ndim = n } }

// Signed keeps the sign of the particle charge in frequencies.
func Signed() Option { return func(o *options) { o.signed = true } }

// WithZMean overrides the particle charge number.
func WithZMean(z float64) Option { return func(o *options) { o.zMean = z } }

// WithZRatio scales mass density by a charge ratio.
func WithZRatio(z float64) Option { return func(o *options) { o.zRatio = z } }

// WithMass overrides the particle mass.
func WithMass(m quantity.Quantity) Option { return func(o *options) { o.mass = &m } }

// WithVperp gives the perpendicular speed for Gyroradius.
func WithVperp(v quantity.Quantity) Option { return func(o *options) { o.vperp = &v } }

// WithTemperature gives the temperature for Gyroradius.
func WithTemperature(t quantity.Quantity) Option { return func(o *options) { o.temp = &t } }

// WithElectronDensity enables the dispersive term in IonSoundSpeed.
func WithElectronDensity(n quantity.Quantity) Option { return func(o *options) { o.ne = &n } }

// WithWavenumber enables the dispersive term in IonSoundSpeed.
func WithWavenumber(k quantity.Quantity) Option { return func(o *options) { o.k = &k } }

// WithVelocity sets the relative velocity used by collision calculations.
func WithVelocity(v quantity.Quantity) Option { return func(o *options) { o.velocity = &v } }

// WithGamma sets the electron and ion adiabatic indices.
func WithGamma(electron, ion float64) Option {
	return func(o *options) { o.gammaE, o.gammaI = electron, ion }
}

// WithCoulombLog fixes the Coulomb logarithm instead of computing it.
func WithCoulombLog(lnL float64) Option { return func(o *options) { o.coulombLog = lnL } }
