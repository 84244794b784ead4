package particles

import "errors"

var (
	// ErrInvalidParticle indicates a specifier that names no known particle.
	ErrInvalidParticle = errors.New("particles: invalid particle")

	// ErrInvalidElement indicates an operation that needs an element.
	ErrInvalidElement = errors.New("particles: invalid element")

	// ErrInvalidIsotope indicates an impossible or unknown mass number.
	ErrInvalidIsotope = errors.New("particles: invalid isotope")

	// ErrInvalidIon indicates an ionization state that cannot exist.
	ErrInvalidIon = errors.New("particles: invalid ion")

	// ErrCharge indicates missing or impossible charge information.
	ErrCharge = errors.New("particles: charge error")

	// ErrMissingAtomicData indicates a property that is not tabulated.
	ErrMissingAtomicData = errors.New("particles: missing atomic data")

	// ErrCategory indicates a malformed category query.
	ErrCategory = errors.New("particles: invalid category query")

	// ErrCount indicates a non-positive ionization or recombination count.
	ErrCount = errors.New("particles: count must be positive")
)

// ParseError records which specifier failed to resolve and why.
type ParseError struct {
	Spec    string
	Wrapped error
}

func (e *ParseError) Error() string {
	return e.Wrapped.Error() + " (specifier " + quote(e.Spec) + ")"
}

func (e *ParseError) Unwrap() error {
	return e.Wrapped
}

func quote(s string) string { return "\"" + s + "\"" }
