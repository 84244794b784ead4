package particles

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/san-kum/plasmalab/internal/constants"
	"github.com/san-kum/plasmalab/internal/quantity"
)

// Like is the capability set shared by every particle representation.
// It is implemented only by *Particle, *CustomParticle and
// *DimensionlessParticle.
type Like interface {
	Symbol() string
	Mass() (quantity.Quantity, error)
	Charge() (quantity.Quantity, error)
	IsCategory(q CategoryQuery) (bool, error)
	Categories() []string
	json.Marshaler
	fmt.Stringer

	sealed()
}

// Particle is a resolved elementary particle, atom, isotope or ion.
type Particle struct {
	symbol string

	// special is the zoo symbol for non-element particles.
	special string

	z         int
	a         int
	charge    int
	hasCharge bool

	mass       float64
	massKnown  bool
	categories map[string]bool
}

func (p *Particle) sealed() {}

func newSpecial(symbol string) *Particle {
	s := specials[symbol]
	p := &Particle{
		symbol:     symbol,
		special:    symbol,
		charge:     s.charge,
		hasCharge:  true,
		mass:       s.mass,
		massKnown:  s.mass > 0,
		categories: categorySet(s.classes...),
	}
	if s.charge == 0 {
		p.categories["uncharged"] = true
	} else {
		p.categories["charged"] = true
	}
	return p
}

// newAtomic validates and builds an element, isotope or ion.
func newAtomic(z, a, charge int, hasCharge bool) (*Particle, error) {
	if z < 1 || z >= len(elements) {
		return nil, fmt.Errorf("%w: atomic number %d", ErrInvalidParticle, z)
	}
	sym := elements[z].symbol
	if a != 0 {
		lo, hi := massNumberRange(z)
		switch {
		case a < z:
			return nil, fmt.Errorf("%w: %s-%d has fewer nucleons than protons", ErrInvalidIsotope, sym, a)
		case a < lo || a > hi:
			return nil, fmt.Errorf("%w: %s-%d is outside the known nuclide range", ErrInvalidIsotope, sym, a)
		}
	}
	if hasCharge {
		switch {
		case charge > z:
			return nil, fmt.Errorf("%w: charge %d exceeds atomic number %d of %s", ErrCharge, charge, z, sym)
		case charge < -3:
			return nil, fmt.Errorf("%w: charge %d is below -3 for %s", ErrCharge, charge, sym)
		}
	}

	p := &Particle{z: z, a: a, charge: charge, hasCharge: hasCharge}
	p.symbol = p.atomicSymbol()
	p.mass, p.massKnown = p.atomicMass()

	cats := categorySet("element", "matter", periodicTable(z).Category)
	if a != 0 {
		cats["isotope"] = true
		if isStableNuclide(z, a) {
			cats["stable"] = true
		} else {
			cats["unstable"] = true
		}
		if a%2 == 1 {
			cats["fermion"] = true
		} else {
			cats["boson"] = true
		}
	}
	if hasCharge {
		if charge == 0 {
			cats["uncharged"] = true
		} else {
			cats["charged"] = true
			cats["ion"] = true
		}
	}
	if z == 1 && a == 1 && hasCharge && charge == 1 {
		cats["proton"] = true
		cats["baryon"] = true
		cats["stable"] = true
	}
	if cat := periodicTable(z).Category; cat != "nonmetal" && cat != "noble gas" &&
		cat != "metalloid" && cat != "halogen" {
		cats["metal"] = true
	}
	p.categories = cats
	return p, nil
}

func (p *Particle) atomicSymbol() string {
	if p.z == 1 && p.a == 1 && p.hasCharge && p.charge == 1 {
		return "p+"
	}
	base := elements[p.z].symbol
	switch {
	case p.z == 1 && p.a == 2:
		base = "D"
	case p.z == 1 && p.a == 3:
		base = "T"
	case p.a != 0:
		base = base + "-" + strconv.Itoa(p.a)
	}
	if !p.hasCharge {
		return base
	}
	return base + " " + chargeSuffix(p.charge)
}

func chargeSuffix(c int) string {
	if c < 0 {
		return strconv.Itoa(-c) + "-"
	}
	return strconv.Itoa(c) + "+"
}

func (p *Particle) atomicMass() (float64, bool) {
	electrons := 0.0
	if p.hasCharge {
		electrons = float64(p.z - p.charge)
	}
	if p.a != 0 {
		if p.hasCharge && p.charge == p.z {
			return nuclideMass(p.z, p.a), true
		}
		if p.hasCharge {
			return nuclideMass(p.z, p.a) + electrons*constants.ElectronMass, true
		}
		m, _ := isotopeAtomicMass(p.z, p.a)
		return m, true
	}
	w := elements[p.z].weight
	if w == 0 {
		return 0, false
	}
	m := w * constants.U
	if p.hasCharge {
		m -= float64(p.charge) * constants.ElectronMass
	}
	return m, true
}

// Symbol returns the canonical symbol, e.g. "p+", "He-4 2+", "Fe".
func (p *Particle) Symbol() string { return p.symbol }

func (p *Particle) String() string { return p.symbol }

// Mass returns the rest mass. Elements without isotope information use the
// standard atomic weight.
func (p *Particle) Mass() (quantity.Quantity, error) {
	if !p.massKnown {
		return quantity.Quantity{}, fmt.Errorf("%w: mass of %s", ErrMissingAtomicData, p.symbol)
	}
	return quantity.New(p.mass, quantity.Kilogram), nil
}

// Charge returns the electric charge. Neutral atoms given without a
// charge state have no charge information and return ErrCharge.
func (p *Particle) Charge() (quantity.Quantity, error) {
	if !p.hasCharge {
		return quantity.Quantity{}, fmt.Errorf("%w: %s has no charge information", ErrCharge, p.symbol)
	}
	return quantity.New(float64(p.charge)*constants.E, quantity.Coulomb), nil
}

// ChargeNumber returns the charge in units of the elementary charge.
func (p *Particle) ChargeNumber() (int, error) {
	if !p.hasCharge {
		return 0, fmt.Errorf("%w: %s has no charge information", ErrCharge, p.symbol)
	}
	return p.charge, nil
}

func (p *Particle) IsCategory(q CategoryQuery) (bool, error) {
	return q.match(p.categories)
}

func (p *Particle) Categories() []string { return sortedCategories(p.categories) }

// Equal compares canonical identity.
func (p *Particle) Equal(other Like) bool {
	o, ok := other.(*Particle)
	if !ok || o == nil {
		return false
	}
	return p.symbol == o.symbol && p.special == o.special && p.z == o.z &&
		p.a == o.a && p.charge == o.charge && p.hasCharge == o.hasCharge
}

func (p *Particle) IsElement() bool { return p.z > 0 }

func (p *Particle) IsElectron() bool { return p.special == "e-" }

// IsIon reports a nonzero charge state on an element.
func (p *Particle) IsIon() bool { return p.z > 0 && p.hasCharge && p.charge != 0 }

func (p *Particle) requireElement(op string) error {
	if p.z == 0 {
		return fmt.Errorf("%w: %s of %s", ErrInvalidElement, op, p.symbol)
	}
	return nil
}

// AtomicNumber returns Z.
func (p *Particle) AtomicNumber() (int, error) {
	if err := p.requireElement("atomic number"); err != nil {
		return 0, err
	}
	return p.z, nil
}

// MassNumber returns A.
func (p *Particle) MassNumber() (int, error) {
	if p.a == 0 {
		return 0, fmt.Errorf("%w: %s has no mass number", ErrInvalidIsotope, p.symbol)
	}
	return p.a, nil
}

func (p *Particle) NeutronNumber() (int, error) {
	if p.special == "n" {
		return 1, nil
	}
	a, err := p.MassNumber()
	if err != nil {
		return 0, err
	}
	return a - p.z, nil
}

// Element returns the element symbol, e.g. "He" for an alpha particle.
func (p *Particle) Element() (string, error) {
	if err := p.requireElement("element"); err != nil {
		return "", err
	}
	return elements[p.z].symbol, nil
}

func (p *Particle) ElementName() (string, error) {
	if err := p.requireElement("element name"); err != nil {
		return "", err
	}
	return elements[p.z].name, nil
}

// Isotope returns the isotope symbol, e.g. "D" or "He-4".
func (p *Particle) Isotope() (string, error) {
	if p.a == 0 {
		return "", fmt.Errorf("%w: %s is not an isotope", ErrInvalidIsotope, p.symbol)
	}
	switch {
	case p.z == 1 && p.a == 2:
		return "D", nil
	case p.z == 1 && p.a == 3:
		return "T", nil
	}
	return elements[p.z].symbol + "-" + strconv.Itoa(p.a), nil
}

func (p *Particle) IsotopeName() (string, error) {
	if p.a == 0 {
		return "", fmt.Errorf("%w: %s is not an isotope", ErrInvalidIsotope, p.symbol)
	}
	switch {
	case p.z == 1 && p.a == 2:
		return "deuterium", nil
	case p.z == 1 && p.a == 3:
		return "tritium", nil
	}
	return elements[p.z].name + "-" + strconv.Itoa(p.a), nil
}

// IonicSymbol returns the symbol with charge, using isotope notation
// where known, e.g. "He-4 2+".
func (p *Particle) IonicSymbol() (string, error) {
	if p.symbol == "p+" || p.symbol == "p-" {
		return p.symbol, nil
	}
	if err := p.requireElement("ionic symbol"); err != nil {
		return "", err
	}
	if !p.hasCharge {
		return "", fmt.Errorf("%w: %s has no charge information", ErrCharge, p.symbol)
	}
	base := elements[p.z].symbol
	if iso, err := p.Isotope(); err == nil {
		base = iso
	}
	return base + " " + chargeSuffix(p.charge), nil
}

// RomanSymbol returns the spectroscopic notation, e.g. "He-4 III".
func (p *Particle) RomanSymbol() (string, error) {
	if err := p.requireElement("roman symbol"); err != nil {
		return "", err
	}
	if !p.hasCharge {
		return "", fmt.Errorf("%w: %s has no charge information", ErrCharge, p.symbol)
	}
	if p.charge < 0 {
		return "", fmt.Errorf("%w: negative ion %s has no roman symbol", ErrCharge, p.symbol)
	}
	base := elements[p.z].symbol
	if iso, err := p.Isotope(); err == nil {
		base = iso
	}
	return base + " " + toRoman(p.charge+1), nil
}

// BaryonNumber returns the number of baryons minus antibaryons.
func (p *Particle) BaryonNumber() (int, error) {
	if p.special != "" {
		return specials[p.special].baryon, nil
	}
	if p.a == 0 {
		return 0, fmt.Errorf("%w: baryon number of %s without mass number", ErrMissingAtomicData, p.symbol)
	}
	return p.a, nil
}

// LeptonNumber counts leptons minus antileptons, including bound electrons.
func (p *Particle) LeptonNumber() (int, error) {
	if p.special != "" {
		return specials[p.special].lepton, nil
	}
	if !p.hasCharge {
		return 0, fmt.Errorf("%w: lepton number of %s needs a charge state", ErrCharge, p.symbol)
	}
	return p.z - p.charge, nil
}

// Spin returns the intrinsic spin for elementary particles and protons.
func (p *Particle) Spin() (float64, error) {
	if p.special != "" {
		return specials[p.special].spin, nil
	}
	if p.categories["proton"] {
		return 0.5, nil
	}
	return 0, fmt.Errorf("%w: spin of %s", ErrMissingAtomicData, p.symbol)
}

// NuclideMass returns the mass of the nucleus alone.
func (p *Particle) NuclideMass() (quantity.Quantity, error) {
	if p.special == "n" {
		return quantity.New(constants.NeutronMass, quantity.Kilogram), nil
	}
	if p.a == 0 {
		return quantity.Quantity{}, fmt.Errorf("%w: nuclide mass of %s needs a mass number", ErrInvalidIsotope, p.symbol)
	}
	return quantity.New(nuclideMass(p.z, p.a), quantity.Kilogram), nil
}

// BindingEnergy returns the nuclear binding energy.
func (p *Particle) BindingEnergy() (quantity.Quantity, error) {
	if p.special == "n" {
		return quantity.New(0, quantity.Joule), nil
	}
	if p.a == 0 {
		return quantity.Quantity{}, fmt.Errorf("%w: binding energy of %s needs a mass number", ErrInvalidIsotope, p.symbol)
	}
	return quantity.New(bindingEnergy(p.z, p.a), quantity.Joule), nil
}

// MassEnergy returns the rest energy m c^2.
func (p *Particle) MassEnergy() (quantity.Quantity, error) {
	m, err := p.Mass()
	if err != nil {
		return quantity.Quantity{}, err
	}
	return quantity.New(m.Value()*constants.C*constants.C, quantity.Joule), nil
}

// StandardAtomicWeight returns the weight of a neutral element without
// isotope information.
func (p *Particle) StandardAtomicWeight() (quantity.Quantity, error) {
	if err := p.requireElement("standard atomic weight"); err != nil {
		return quantity.Quantity{}, err
	}
	if p.a != 0 || p.IsIon() {
		return quantity.Quantity{}, fmt.Errorf("%w: %s is an isotope or ion", ErrInvalidElement, p.symbol)
	}
	w := elements[p.z].weight
	if w == 0 {
		return quantity.Quantity{}, fmt.Errorf("%w: %s has no standard atomic weight", ErrMissingAtomicData, p.symbol)
	}
	return quantity.New(w, quantity.AtomicMass), nil
}

func (p *Particle) PeriodicTable() (PeriodicTable, error) {
	if err := p.requireElement("periodic table"); err != nil {
		return PeriodicTable{}, err
	}
	return periodicTable(p.z), nil
}

// Antiparticle returns the antimatter partner of an elementary particle.
func (p *Particle) Antiparticle() (*Particle, error) {
	switch {
	case p.special != "":
		anti := specials[p.special].anti
		if anti == "p+" {
			return Proton, nil
		}
		return newSpecial(anti), nil
	case p.categories["proton"]:
		return newSpecial("p-"), nil
	}
	return nil, fmt.Errorf("%w: %s has no tabulated antiparticle", ErrInvalidParticle, p.symbol)
}

// Ionize removes n electrons.
func (p *Particle) Ionize(n int) (*Particle, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: ionize by %d", ErrCount, n)
	}
	if err := p.requireElement("ionize"); err != nil {
		return nil, err
	}
	if !p.hasCharge {
		return nil, fmt.Errorf("%w: cannot ionize %s without a charge state", ErrCharge, p.symbol)
	}
	if p.charge+n > p.z {
		return nil, fmt.Errorf("%w: %s has only %d electrons", ErrInvalidIon, p.symbol, p.z-p.charge)
	}
	return newAtomic(p.z, p.a, p.charge+n, true)
}

// Recombine adds n electrons.
func (p *Particle) Recombine(n int) (*Particle, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: recombine by %d", ErrCount, n)
	}
	if err := p.requireElement("recombine"); err != nil {
		return nil, err
	}
	if !p.hasCharge {
		return nil, fmt.Errorf("%w: cannot recombine %s without a charge state", ErrCharge, p.symbol)
	}
	if p.charge-n < -3 {
		return nil, fmt.Errorf("%w: %s cannot take %d more electrons", ErrInvalidIon, p.symbol, n)
	}
	return newAtomic(p.z, p.a, p.charge-n, true)
}

// reducedMassOf returns m1 m2 / (m1 + m2).
func reducedMassOf(m1, m2 float64) float64 {
	if math.IsInf(m2, 1) {
		return m1
	}
	return m1 * m2 / (m1 + m2)
}
