package quantity

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/unit"

	"github.com/san-kum/plasmalab/internal/constants"
)

// Units is a named unit: a scale to SI and the SI dimensions it measures.
type Units struct {
	Symbol string
	Scale  float64
	dims   unit.Dimensions
}

// NewUnits builds a unit from its symbol, SI scale and dimensions.
func NewUnits(symbol string, scale float64, dims unit.Dimensions) Units {
	return Units{Symbol: symbol, Scale: scale, dims: cloneDims(dims)}
}

// Unit implements unit.Uniter; the value is the SI scale of the unit.
func (u Units) Unit() *unit.Unit {
	return unit.New(u.Scale, u.dims)
}

func (u Units) Dimensions() unit.Dimensions {
	return cloneDims(u.dims)
}

func (u Units) String() string {
	return u.Symbol
}

// Mul returns the product unit.
func (u Units) Mul(o Units) Units {
	return Units{
		Symbol: joinSymbols(u.Symbol, o.Symbol, " "),
		Scale:  u.Scale * o.Scale,
		dims:   addDims(u.dims, o.dims, 1),
	}
}

// Div returns the quotient unit.
func (u Units) Div(o Units) Units {
	return Units{
		Symbol: joinSymbols(u.Symbol, o.Symbol, " / "),
		Scale:  u.Scale / o.Scale,
		dims:   addDims(u.dims, o.dims, -1),
	}
}

// Pow raises the unit to an integer power.
func (u Units) Pow(n int) Units {
	d := make(unit.Dimensions, len(u.dims))
	for k, v := range u.dims {
		if v*n != 0 {
			d[k] = v * n
		}
	}
	sym := u.Symbol
	if n != 1 {
		sym = sym + "^" + strconv.Itoa(n)
	}
	return Units{Symbol: sym, Scale: math.Pow(u.Scale, float64(n)), dims: d}
}

// Compatible reports whether u measures the same dimensions as other.
func (u Units) Compatible(other unit.Uniter) bool {
	return unit.DimensionsMatch(u, other)
}

// Common units. Angles carry gonum's AngleDim so rad/s and Hz stay distinct.
var (
	Dimensionless = NewUnits("", 1, nil)
	Radian        = NewUnits("rad", 1, unit.Dimensions{unit.AngleDim: 1})

	Metre      = NewUnits("m", 1, unit.Dimensions{unit.LengthDim: 1})
	Centimetre = NewUnits("cm", 1e-2, unit.Dimensions{unit.LengthDim: 1})
	Kilometre  = NewUnits("km", 1e3, unit.Dimensions{unit.LengthDim: 1})
	Kilogram   = NewUnits("kg", 1, unit.Dimensions{unit.MassDim: 1})
	Gram       = NewUnits("g", 1e-3, unit.Dimensions{unit.MassDim: 1})
	AtomicMass = NewUnits("u", constants.U, unit.Dimensions{unit.MassDim: 1})
	Second     = NewUnits("s", 1, unit.Dimensions{unit.TimeDim: 1})
	Kelvin     = NewUnits("K", 1, unit.Dimensions{unit.TemperatureDim: 1})
	Ampere     = NewUnits("A", 1, unit.Dimensions{unit.CurrentDim: 1})
	Mole       = NewUnits("mol", 1, unit.Dimensions{unit.MoleDim: 1})

	Hertz           = NewUnits("Hz", 1, unit.Dimensions{unit.TimeDim: -1})
	RadPerSecond    = NewUnits("rad / s", 1, unit.Dimensions{unit.AngleDim: 1, unit.TimeDim: -1})
	MetrePerSecond  = NewUnits("m / s", 1, unit.Dimensions{unit.LengthDim: 1, unit.TimeDim: -1})
	PerMetre        = NewUnits("1 / m", 1, unit.Dimensions{unit.LengthDim: -1})
	RadPerMetre     = NewUnits("rad / m", 1, unit.Dimensions{unit.AngleDim: 1, unit.LengthDim: -1})
	PerCubicMetre   = NewUnits("m^-3", 1, unit.Dimensions{unit.LengthDim: -3})
	PerCubicCm      = NewUnits("cm^-3", 1e6, unit.Dimensions{unit.LengthDim: -3})
	KgPerCubicMetre = NewUnits("kg / m^3", 1, unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -3})
	SquareMetrePerS = NewUnits("m^2 / s", 1, unit.Dimensions{unit.LengthDim: 2, unit.TimeDim: -1})
	SecondPerRad    = NewUnits("s / rad", 1, unit.Dimensions{unit.TimeDim: 1, unit.AngleDim: -1})

	Joule        = NewUnits("J", 1, unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 2, unit.TimeDim: -2})
	ElectronVolt = NewUnits("eV", constants.EV, unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 2, unit.TimeDim: -2})
	Newton       = NewUnits("N", 1, unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 1, unit.TimeDim: -2})
	Pascal       = NewUnits("Pa", 1, unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -1, unit.TimeDim: -2})
	JPerCubicM   = NewUnits("J / m^3", 1, unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -1, unit.TimeDim: -2})
	PascalSecond = NewUnits("Pa s", 1, unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -1, unit.TimeDim: -1})
	Watt         = NewUnits("W", 1, unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 2, unit.TimeDim: -3})

	Coulomb         = NewUnits("C", 1, unit.Dimensions{unit.CurrentDim: 1, unit.TimeDim: 1})
	Volt            = NewUnits("V", 1, unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 2, unit.TimeDim: -3, unit.CurrentDim: -1})
	VoltPerMetre    = NewUnits("V / m", 1, unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 1, unit.TimeDim: -3, unit.CurrentDim: -1})
	Tesla           = NewUnits("T", 1, unit.Dimensions{unit.MassDim: 1, unit.TimeDim: -2, unit.CurrentDim: -1})
	Gauss           = NewUnits("G", 1e-4, unit.Dimensions{unit.MassDim: 1, unit.TimeDim: -2, unit.CurrentDim: -1})
	Ohm             = NewUnits("Ohm", 1, unit.Dimensions{unit.MassDim: 1, unit.LengthDim: 2, unit.TimeDim: -3, unit.CurrentDim: -2})
	Siemens         = NewUnits("S", 1, unit.Dimensions{unit.MassDim: -1, unit.LengthDim: -2, unit.TimeDim: 3, unit.CurrentDim: 2})
	SiemensPerMetre = NewUnits("S / m", 1, unit.Dimensions{unit.MassDim: -1, unit.LengthDim: -3, unit.TimeDim: 3, unit.CurrentDim: 2})
)

// symbols holds every unit Parse understands without a prefix.
var symbols = map[string]Units{
	"":         Dimensionless,
	"1":        Dimensionless,
	"rad":      Radian,
	"deg":      NewUnits("deg", math.Pi/180, unit.Dimensions{unit.AngleDim: 1}),
	"m":        Metre,
	"g":        Gram,
	"u":        AtomicMass,
	"amu":      AtomicMass,
	"s":        Second,
	"min":      NewUnits("min", 60, unit.Dimensions{unit.TimeDim: 1}),
	"h":        NewUnits("h", 3600, unit.Dimensions{unit.TimeDim: 1}),
	"K":        Kelvin,
	"A":        Ampere,
	"mol":      Mole,
	"Hz":       Hertz,
	"J":        Joule,
	"eV":       ElectronVolt,
	"erg":      NewUnits("erg", 1e-7, Joule.dims),
	"N":        Newton,
	"Pa":       Pascal,
	"bar":      NewUnits("bar", 1e5, Pascal.dims),
	"W":        Watt,
	"C":        Coulomb,
	"V":        Volt,
	"T":        Tesla,
	"G":        Gauss,
	"Ohm":      Ohm,
	"S":        Siemens,
	"c":        NewUnits("c", constants.C, MetrePerSecond.dims),
	"e":        NewUnits("e", constants.E, Coulomb.dims),
	"me":       NewUnits("me", constants.ElectronMass, Kilogram.dims),
	"mp":       NewUnits("mp", constants.ProtonMass, Kilogram.dims),
	"Angstrom": NewUnits("Angstrom", 1e-10, Metre.dims),
}

// prefixable lists the symbols that accept SI prefixes.
var prefixable = map[string]bool{
	"m": true, "g": true, "s": true, "K": true, "A": true, "mol": true,
	"Hz": true, "J": true, "eV": true, "N": true, "Pa": true, "W": true,
	"C": true, "V": true, "T": true, "G": true, "Ohm": true, "S": true,
	"rad": true, "bar": true,
}

var prefixes = map[string]float64{
	"Y": 1e24, "Z": 1e21, "E": 1e18, "P": 1e15, "T": 1e12, "G": 1e9,
	"M": 1e6, "k": 1e3, "h": 1e2, "da": 1e1,
	"d": 1e-1, "c": 1e-2, "m": 1e-3, "u": 1e-6, "µ": 1e-6, "n": 1e-9,
	"p": 1e-12, "f": 1e-15, "a": 1e-18, "z": 1e-21, "y": 1e-24,
}

// LookupUnit resolves a single unit symbol, with an optional SI prefix.
func LookupUnit(symbol string) (Units, bool) {
	if u, ok := symbols[symbol]; ok {
		return u, true
	}
	for p, scale := range prefixes {
		base, ok := strings.CutPrefix(symbol, p)
		if !ok || !prefixable[base] {
			continue
		}
		u := symbols[base]
		return NewUnits(symbol, u.Scale*scale, u.dims), true
	}
	return Units{}, false
}

// preferred maps dimension signatures to the symbol String uses for them.
var preferred = []Units{
	Kilogram, Metre, Second, Kelvin, Coulomb, Joule, Tesla, Hertz,
	RadPerSecond, MetrePerSecond, PerCubicMetre, Pascal, KgPerCubicMetre,
	SquareMetrePerS, Volt, VoltPerMetre, Ampere, Radian, SecondPerRad,
	PascalSecond, SiemensPerMetre, PerMetre, RadPerMetre,
}

func symbolFor(d unit.Dimensions) string {
	if len(d) == 0 {
		return ""
	}
	for _, u := range preferred {
		if sameDims(u.dims, d) {
			return u.Symbol
		}
	}
	return formatDims(d)
}

func formatDims(d unit.Dimensions) string {
	names := make([]string, 0, len(d))
	byName := make(map[string]int, len(d))
	for k, v := range d {
		names = append(names, k.String())
		byName[k.String()] = v
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if p := byName[n]; p == 1 {
			parts = append(parts, n)
		} else {
			parts = append(parts, n+"^"+strconv.Itoa(p))
		}
	}
	return strings.Join(parts, " ")
}

func joinSymbols(a, b, sep string) string {
	switch {
	case a == "":
		if sep == " / " {
			return "1" + sep + b
		}
		return b
	case b == "":
		return a
	}
	return a + sep + b
}

func cloneDims(d unit.Dimensions) unit.Dimensions {
	c := make(unit.Dimensions, len(d))
	for k, v := range d {
		if v != 0 {
			c[k] = v
		}
	}
	return c
}

func addDims(a, b unit.Dimensions, sign int) unit.Dimensions {
	c := cloneDims(a)
	for k, v := range b {
		c[k] += sign * v
		if c[k] == 0 {
			delete(c, k)
		}
	}
	return c
}

func sameDims(a, b unit.Dimensions) bool {
	return unit.DimensionsMatch(unit.New(1, a), unit.New(1, b))
}
