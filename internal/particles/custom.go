package particles

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/plasmalab/internal/constants"
	"github.com/san-kum/plasmalab/internal/quantity"
)

// CustomParticle is a user-defined particle with mass and charge in SI.
type CustomParticle struct {
	symbol     string
	mass       quantity.Quantity
	charge     quantity.Quantity
	categories map[string]bool
}

// CustomOption configures a CustomParticle.
type CustomOption func(*CustomParticle) error

// CustomMass sets the mass, which must be in units of mass and not negative.
func CustomMass(m quantity.Quantity) CustomOption {
	return func(c *CustomParticle) error {
		if m.IsBare() || !m.Compatible(quantity.Kilogram) {
			return fmt.Errorf("%w: custom mass %v is not a mass", ErrInvalidParticle, m)
		}
		if m.Value() < 0 {
			return fmt.Errorf("%w: custom mass %v is negative", ErrInvalidParticle, m)
		}
		c.mass = m
		return nil
	}
}

// CustomCharge sets the charge. A bare number is taken in units of the
// elementary charge.
func CustomCharge(q quantity.Quantity) CustomOption {
	return func(c *CustomParticle) error {
		if q.IsBare() {
			q = quantity.New(q.Value()*constants.E, quantity.Coulomb)
		}
		if !q.Compatible(quantity.Coulomb) {
			return fmt.Errorf("%w: custom charge %v is not a charge", ErrInvalidParticle, q)
		}
		c.charge = q
		return nil
	}
}

// CustomSymbol names the particle.
func CustomSymbol(s string) CustomOption {
	return func(c *CustomParticle) error {
		c.symbol = s
		return nil
	}
}

// CustomCategories adds categories, which must be valid category names.
func CustomCategories(categories ...string) CustomOption {
	return func(c *CustomParticle) error {
		for _, cat := range categories {
			if !validCategories[cat] {
				return fmt.Errorf("%w: unknown category %q", ErrCategory, cat)
			}
			c.categories[cat] = true
		}
		return nil
	}
}

// NewCustomParticle builds a custom particle. Unset mass and charge are NaN.
func NewCustomParticle(opts ...CustomOption) (*CustomParticle, error) {
	c := &CustomParticle{
		mass:       quantity.NaN(quantity.Kilogram),
		charge:     quantity.NaN(quantity.Coulomb),
		categories: categorySet("custom"),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *CustomParticle) sealed() {}

func (c *CustomParticle) Symbol() string {
	if c.symbol != "" {
		return c.symbol
	}
	return c.String()
}

func (c *CustomParticle) String() string {
	return fmt.Sprintf("CustomParticle(mass=%s, charge=%s)", c.mass, c.charge)
}

func (c *CustomParticle) Mass() (quantity.Quantity, error) { return c.mass, nil }

func (c *CustomParticle) Charge() (quantity.Quantity, error) { return c.charge, nil }

func (c *CustomParticle) IsCategory(q CategoryQuery) (bool, error) {
	return q.match(c.categories)
}

func (c *CustomParticle) Categories() []string { return sortedCategories(c.categories) }

// Equal compares mass, charge, symbol and categories; NaN equals NaN.
func (c *CustomParticle) Equal(other Like) bool {
	o, ok := other.(*CustomParticle)
	if !ok || o == nil {
		return false
	}
	return c.symbol == o.symbol && c.mass.Equal(o.mass) && c.charge.Equal(o.charge) &&
		strings.Join(c.Categories(), ",") == strings.Join(o.Categories(), ",")
}

// DimensionlessParticle carries mass and charge in normalized units.
type DimensionlessParticle struct {
	symbol string
	mass   float64
	charge float64
}

// NewDimensionlessParticle builds a particle for normalized unit systems.
// Pass math.NaN() for unknown values. Mass must not be negative.
func NewDimensionlessParticle(mass, charge float64) (*DimensionlessParticle, error) {
	if mass < 0 {
		return nil, fmt.Errorf("%w: dimensionless mass %g is negative", ErrInvalidParticle, mass)
	}
	return &DimensionlessParticle{mass: mass, charge: charge}, nil
}

// WithSymbol returns a copy carrying a display symbol.
func (d *DimensionlessParticle) WithSymbol(s string) *DimensionlessParticle {
	c := *d
	c.symbol = s
	return &c
}

func (d *DimensionlessParticle) sealed() {}

func (d *DimensionlessParticle) Symbol() string {
	if d.symbol != "" {
		return d.symbol
	}
	return d.String()
}

func (d *DimensionlessParticle) String() string {
	return fmt.Sprintf("DimensionlessParticle(mass=%s, charge=%s)", formatNumber(d.mass), formatNumber(d.charge))
}

func (d *DimensionlessParticle) Mass() (quantity.Quantity, error) {
	return quantity.New(d.mass, quantity.Dimensionless), nil
}

func (d *DimensionlessParticle) Charge() (quantity.Quantity, error) {
	return quantity.New(d.charge, quantity.Dimensionless), nil
}

func (d *DimensionlessParticle) IsCategory(q CategoryQuery) (bool, error) {
	return q.match(categorySet("custom"))
}

func (d *DimensionlessParticle) Categories() []string { return []string{"custom"} }

func (d *DimensionlessParticle) Equal(other Like) bool {
	o, ok := other.(*DimensionlessParticle)
	if !ok || o == nil {
		return false
	}
	return d.symbol == o.symbol && sameFloat(d.mass, o.mass) && sameFloat(d.charge, o.charge)
}

func sameFloat(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

func formatNumber(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// parseCustom reads the String form of custom and dimensionless particles.
func parseCustom(s string) (Like, bool, error) {
	var kind string
	switch {
	case strings.HasPrefix(s, "CustomParticle("):
		kind = "CustomParticle"
	case strings.HasPrefix(s, "DimensionlessParticle("):
		kind = "DimensionlessParticle"
	default:
		return nil, false, nil
	}
	if !strings.HasSuffix(s, ")") {
		return nil, true, fmt.Errorf("%w: unterminated %s", ErrInvalidParticle, kind)
	}
	body := strings.TrimSuffix(strings.TrimPrefix(s, kind+"("), ")")
	kwargs := map[string]string{}
	if strings.TrimSpace(body) != "" {
		for _, field := range strings.Split(body, ",") {
			k, v, ok := strings.Cut(field, "=")
			if !ok {
				return nil, true, fmt.Errorf("%w: malformed argument %q", ErrInvalidParticle, field)
			}
			kwargs[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	for k := range kwargs {
		if k != "mass" && k != "charge" {
			return nil, true, fmt.Errorf("%w: unknown argument %q", ErrInvalidParticle, k)
		}
	}

	if kind == "DimensionlessParticle" {
		mass, charge := math.NaN(), math.NaN()
		for k, v := range kwargs {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, true, fmt.Errorf("%w: %s %q", ErrInvalidParticle, k, v)
			}
			if k == "mass" {
				mass = f
			} else {
				charge = f
			}
		}
		d, err := NewDimensionlessParticle(mass, charge)
		return d, true, err
	}

	var opts []CustomOption
	for k, v := range kwargs {
		q, err := quantity.Parse(v)
		if err != nil {
			return nil, true, fmt.Errorf("%w: %s %q: %v", ErrInvalidParticle, k, v, err)
		}
		if k == "mass" {
			opts = append(opts, CustomMass(q))
		} else {
			opts = append(opts, CustomCharge(q))
		}
	}
	c, err := NewCustomParticle(opts...)
	return c, true, err
}
