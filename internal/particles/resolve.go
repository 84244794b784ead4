package particles

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/plasmalab/internal/quantity"
)

// Specifier is anything Resolve accepts: a string, an integer atomic
// number, or a value implementing Like.
type Specifier = any

// Resolve turns a specifier into a particle. Values that already implement
// Like are returned unchanged.
func Resolve(spec Specifier) (Like, error) {
	switch v := spec.(type) {
	case Like:
		return v, nil
	case string:
		return resolveString(v)
	case int:
		return resolveAtomicNumber(v)
	case int8:
		return resolveAtomicNumber(int(v))
	case int16:
		return resolveAtomicNumber(int(v))
	case int32:
		return resolveAtomicNumber(int(v))
	case int64:
		return resolveAtomicNumber(int(v))
	case uint:
		return resolveAtomicNumber(int(v))
	case uint8:
		return resolveAtomicNumber(int(v))
	case uint16:
		return resolveAtomicNumber(int(v))
	case uint32:
		return resolveAtomicNumber(int(v))
	case nil:
		return nil, fmt.Errorf("%w: nil specifier", ErrInvalidParticle)
	}
	return nil, fmt.Errorf("%w: unsupported specifier type %T", ErrInvalidParticle, spec)
}

func resolveAtomicNumber(z int) (Like, error) {
	if z < 1 || z >= len(elements) {
		return nil, fmt.Errorf("%w: atomic number %d out of range", ErrInvalidParticle, z)
	}
	return newAtomic(z, 0, 0, false)
}

func resolveString(s string) (Like, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, &ParseError{Spec: s, Wrapped: fmt.Errorf("%w: empty specifier", ErrInvalidParticle)}
	}
	if c, ok, err := parseCustom(trimmed); ok {
		if err != nil {
			return nil, &ParseError{Spec: s, Wrapped: err}
		}
		return c, nil
	}
	p, err := build(trimmed, nil, nil)
	if err != nil {
		return nil, &ParseError{Spec: s, Wrapped: err}
	}
	return p, nil
}

func build(s string, massNumber, charge *int) (*Particle, error) {
	parsed, err := parseString(s)
	if err != nil {
		return nil, err
	}
	if parsed.special != "" {
		if massNumber != nil || charge != nil {
			return nil, fmt.Errorf("%w: %s takes no mass number or charge", ErrInvalidParticle, parsed.special)
		}
		return newSpecial(parsed.special), nil
	}
	if massNumber != nil {
		if parsed.a != 0 && parsed.a != *massNumber {
			return nil, fmt.Errorf("%w: mass number %d conflicts with %q", ErrInvalidParticle, *massNumber, s)
		}
		parsed.a = *massNumber
	}
	if charge != nil {
		if parsed.hasCharge && parsed.charge != *charge {
			return nil, fmt.Errorf("%w: charge %d conflicts with %q", ErrInvalidParticle, *charge, s)
		}
		parsed.charge, parsed.hasCharge = *charge, true
	}
	return newAtomic(parsed.z, parsed.a, parsed.charge, parsed.hasCharge)
}

// Option adjusts the particle built by New.
type Option func(*options)

type options struct {
	massNumber *int
	charge     *int
}

// WithMassNumber sets the isotope mass number.
func WithMassNumber(a int) Option {
	return func(o *options) { o.massNumber = &a }
}

// WithCharge sets the charge number.
func WithCharge(z int) Option {
	return func(o *options) { o.charge = &z }
}

// New resolves a symbol into a *Particle, applying mass number and charge
// options. Custom particles are not accepted here; use Resolve.
func New(symbol Specifier, opts ...Option) (*Particle, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	switch v := symbol.(type) {
	case *Particle:
		if o.massNumber == nil && o.charge == nil {
			return v, nil
		}
		return build(v.symbol, o.massNumber, o.charge)
	case string:
		p, err := build(strings.TrimSpace(v), o.massNumber, o.charge)
		if err != nil {
			return nil, &ParseError{Spec: v, Wrapped: err}
		}
		return p, nil
	}
	like, err := Resolve(symbol)
	if err != nil {
		return nil, err
	}
	p, ok := like.(*Particle)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not an atomic or elementary particle", ErrInvalidParticle, like.Symbol())
	}
	if o.massNumber == nil && o.charge == nil {
		return p, nil
	}
	return build(p.symbol, o.massNumber, o.charge)
}

// MustNew is New for specifiers known to be valid. It panics on error.
func MustNew(symbol Specifier, opts ...Option) *Particle {
	p, err := New(symbol, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Frequently used particles.
var (
	Proton   = MustNew("p+")
	Electron = MustNew("e-")
	Neutron  = MustNew("n")
	Positron = MustNew("e+")
	Deuteron = MustNew("D 1+")
	Triton   = MustNew("T 1+")
	Alpha    = MustNew("He-4 2+")
)

// AtomicNumber returns Z for an element specifier.
func AtomicNumber(spec Specifier) (int, error) {
	p, err := New(spec)
	if err != nil {
		return 0, err
	}
	return p.AtomicNumber()
}

// MassNumber returns A for an isotope specifier.
func MassNumber(spec Specifier) (int, error) {
	p, err := New(spec)
	if err != nil {
		return 0, err
	}
	return p.MassNumber()
}

// ParticleMass returns the mass of any particle specifier.
func ParticleMass(spec Specifier) (quantity.Quantity, error) {
	p, err := Resolve(spec)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return p.Mass()
}

// ReducedMass returns m_a m_b / (m_a + m_b).
func ReducedMass(a, b Specifier) (quantity.Quantity, error) {
	ma, err := ParticleMass(a)
	if err != nil {
		return quantity.Quantity{}, err
	}
	mb, err := ParticleMass(b)
	if err != nil {
		return quantity.Quantity{}, err
	}
	if !ma.Compatible(mb) {
		return quantity.Quantity{}, fmt.Errorf("%w: masses %v and %v", quantity.ErrUnitMismatch, ma, mb)
	}
	if math.IsInf(ma.Value(), 1) {
		return mb, nil
	}
	return ma.Scale(reducedMassOf(1, mb.Value()/ma.Value())), nil
}

// KnownIsotopes lists the mass numbers recognised for an element.
func KnownIsotopes(spec Specifier) ([]int, error) {
	z, err := AtomicNumber(spec)
	if err != nil {
		return nil, err
	}
	lo, hi := massNumberRange(z)
	out := make([]int, 0, hi-lo+1)
	for a := lo; a <= hi; a++ {
		out = append(out, a)
	}
	return out, nil
}

// StableIsotopes lists the stable mass numbers of an element.
func StableIsotopes(spec Specifier) ([]int, error) {
	z, err := AtomicNumber(spec)
	if err != nil {
		return nil, err
	}
	return append([]int(nil), stableIsotopes[z]...), nil
}

// IsStable reports whether an isotope or elementary particle is stable.
func IsStable(spec Specifier) (bool, error) {
	p, err := New(spec)
	if err != nil {
		return false, err
	}
	if p.special == "" && p.a == 0 {
		return false, fmt.Errorf("%w: stability of %s needs a mass number", ErrInvalidIsotope, p.symbol)
	}
	return p.categories["stable"], nil
}
