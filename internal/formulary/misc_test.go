package formulary

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/plasmalab/internal/constants"
	"github.com/san-kum/plasmalab/internal/quantity"
	"github.com/san-kum/plasmalab/internal/validate"
)

func TestPressures(t *testing.T) {
	B := quantity.New(-0.5, quantity.Tesla)
	pmag, err := Pmag(B)
	if err != nil {
		t.Fatal(err)
	}
	if want := 0.25 / (2 * constants.Mu0); !relClose(pmag.Value(), want, 1e-12) {
		t.Errorf("MagneticPressure = %v, want %v", pmag.Value(), want)
	}
	ub, err := Ub(B)
	if err != nil {
		t.Fatal(err)
	}
	if ub.Value() != pmag.Value() || !ub.Compatible(quantity.JPerCubicM) {
		t.Errorf("MagneticEnergyDensity = %v, want %v J/m^3", ub, pmag.Value())
	}

	T := quantity.MustParse("100 eV")
	n := quantity.New(1e20, quantity.PerCubicMetre)
	pth, err := Pth(T, n)
	if err != nil {
		t.Fatal(err)
	}
	if want := 1e20 * 100 * constants.EV; !relClose(pth.Value(), want, 1e-12) {
		t.Errorf("ThermalPressure = %v, want %v", pth.Value(), want)
	}
	beta, err := Beta(T, n, B)
	if err != nil {
		t.Fatal(err)
	}
	if !relClose(beta.Value(), pth.Value()/pmag.Value(), 1e-12) {
		t.Errorf("Beta = %v, want %v", beta.Value(), pth.Value()/pmag.Value())
	}
	if _, err := Beta(T, n, quantity.New(0, quantity.Tesla)); !errors.Is(err, validate.ErrZero) {
		t.Errorf("Beta with B=0 error = %v, want ErrZero", err)
	}
}

func TestBohmDiffusion(t *testing.T) {
	d, err := DB(quantity.New(5800, quantity.Kelvin), quantity.New(0.3, quantity.Tesla))
	if err != nil {
		t.Fatal(err)
	}
	if want := constants.KB * 5800 / (16 * constants.E * 0.3); !relClose(d.Value(), want, 1e-12) {
		t.Errorf("BohmDiffusion = %v, want %v", d.Value(), want)
	}
}

func TestReynoldsNumbers(t *testing.T) {
	re, err := Re(
		quantity.New(1000, quantity.KgPerCubicMetre),
		quantity.New(10, quantity.MetrePerSecond),
		quantity.New(1, quantity.Metre),
		quantity.New(8.9e-4, quantity.PascalSecond),
	)
	if err != nil {
		t.Fatal(err)
	}
	if want := 1000 * 10 / 8.9e-4; !relClose(re.Value(), want, 1e-12) {
		t.Errorf("ReynoldsNumber = %v, want %v", re.Value(), want)
	}

	rm, err := Rm(
		quantity.New(-2, quantity.MetrePerSecond),
		quantity.New(3, quantity.Metre),
		quantity.New(1e6, quantity.SiemensPerMetre),
	)
	if err != nil {
		t.Fatal(err)
	}
	if want := -constants.Mu0 * 1e6 * 6; !relClose(rm.Value(), want, 1e-12) {
		t.Errorf("MagneticReynoldsNumber = %v, want %v", rm.Value(), want)
	}
	if _, err := ReynoldsNumber(
		quantity.New(1, quantity.KgPerCubicMetre),
		quantity.New(1, quantity.MetrePerSecond),
		quantity.New(0, quantity.Metre),
		quantity.New(1, quantity.PascalSecond),
	); !errors.Is(err, validate.ErrZero) {
		t.Errorf("L=0 error = %v, want ErrZero", err)
	}
}

func TestRelativity(t *testing.T) {
	g, err := LorentzFactor(quantity.New(0.6*constants.C, quantity.MetrePerSecond))
	if err != nil {
		t.Fatal(err)
	}
	if !relClose(g.Value(), 1.25, 1e-12) {
		t.Errorf("LorentzFactor(0.6c) = %v, want 1.25", g.Value())
	}
	if _, err := LorentzFactor(quantity.New(-constants.C, quantity.MetrePerSecond)); !errors.Is(err, validate.ErrRelativity) {
		t.Errorf("LorentzFactor(c) error = %v, want ErrRelativity", err)
	}

	e, err := RelativisticEnergy(quantity.New(constants.ElectronMass, quantity.Kilogram), quantity.New(0, quantity.MetrePerSecond))
	if err != nil {
		t.Fatal(err)
	}
	if want := constants.ElectronMass * constants.C * constants.C; !relClose(e.Value(), want, 1e-12) {
		t.Errorf("rest energy = %v, want %v", e.Value(), want)
	}
}

func TestSahaRatio(t *testing.T) {
	ne := quantity.New(1e19, quantity.PerCubicMetre)
	E := quantity.MustParse("13.6 eV")
	T := quantity.MustParse("1 eV")
	r, err := SahaRatio(2, 1, ne, E, T)
	if err != nil {
		t.Fatal(err)
	}
	kT := constants.EV
	want := 2 * 0.5 * math.Pow(2*math.Pi*constants.ElectronMass*kT/(constants.H*constants.H), 1.5) * math.Exp(-13.6) / 1e19
	if !relClose(r.Value(), want, 1e-9) {
		t.Errorf("SahaRatio = %v, want %v", r.Value(), want)
	}
	if _, err := SahaRatio(0, 1, ne, E, T); !errors.Is(err, validate.ErrValue) {
		t.Errorf("g_j=0 error = %v, want ErrValue", err)
	}
}

func TestThermalDeBroglie(t *testing.T) {
	l, err := ThermalDeBroglie(quantity.New(1e4, quantity.Kelvin))
	if err != nil {
		t.Fatal(err)
	}
	want := constants.H / math.Sqrt(2*math.Pi*constants.ElectronMass*constants.KB*1e4)
	if !relClose(l.Value(), want, 1e-12) {
		t.Errorf("ThermalDeBroglie = %v, want %v", l.Value(), want)
	}
}

func TestChemicalPotentialUnimplemented(t *testing.T) {
	_, err := ChemicalPotential(quantity.New(1e20, quantity.PerCubicMetre), quantity.New(1e4, quantity.Kelvin))
	if !errors.Is(err, validate.ErrNotImplemented) {
		t.Errorf("ChemicalPotential error = %v, want ErrNotImplemented", err)
	}
}
