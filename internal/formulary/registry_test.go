package formulary

import (
	"errors"
	"math"
	"reflect"
	"sort"
	"testing"

	"github.com/san-kum/plasmalab/internal/particles"
	"github.com/san-kum/plasmalab/internal/quantity"
	"github.com/san-kum/plasmalab/internal/validate"
)

func TestRegistryAliases(t *testing.T) {
	seen := map[string]string{}
	for _, e := range Registry {
		for _, name := range append([]string{e.Name}, e.Aliases...) {
			if prev, ok := seen[name]; ok {
				t.Errorf("name %q registered by both %s and %s", name, prev, e.Name)
			}
			seen[name] = e.Name

			got, ok := Lookup(name)
			if !ok {
				t.Errorf("Lookup(%q) failed", name)
				continue
			}
			if got.Name != e.Name {
				t.Errorf("Lookup(%q) = %s, want %s", name, got.Name, e.Name)
			}
		}
	}
	if !sort.SliceIsSorted(Registry, func(i, j int) bool { return Registry[i].Name < Registry[j].Name }) {
		t.Error("Registry is not sorted by name")
	}
	if _, ok := Lookup("vth"); !ok {
		t.Error("Lookup is not case-insensitive")
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup(nope) succeeded")
	}
}

func TestAliasVariables(t *testing.T) {
	pairs := []struct {
		alias, canonical any
	}{
		{Vth, ThermalSpeed}, {VthKappa, KappaThermalSpeed},
		{Oc, Gyrofrequency}, {Wc, Gyrofrequency},
		{Rc, Gyroradius}, {RhoC, Gyroradius},
		{Wp, PlasmaFrequency}, {LambdaD, DebyeLength}, {ND, DebyeNumber},
		{Cwp, InertialLength}, {Pmag, MagneticPressure}, {Ub, MagneticEnergyDensity},
		{Wuh, UpperHybridFrequency}, {Wlh, LowerHybridFrequency},
		{BetaH, HallParameter}, {Re, ReynoldsNumber}, {Rm, MagneticReynoldsNumber},
		{DB, BohmDiffusion}, {Cs, IonSoundSpeed}, {Rho, MassDensity},
		{Va, AlfvenSpeed}, {Pth, ThermalPressure},
	}
	for _, p := range pairs {
		a, c := reflect.ValueOf(p.alias), reflect.ValueOf(p.canonical)
		if a.Pointer() != c.Pointer() {
			t.Errorf("alias %v does not point at %v", a.Type(), c.Type())
		}
	}
}

func TestEntryCall(t *testing.T) {
	B := quantity.New(0.1, quantity.Tesla)
	e, ok := Lookup("Oc")
	if !ok {
		t.Fatal("Oc not registered")
	}
	got, err := e.Call(validate.Args{"B": B}, []particles.Specifier{"e-"})
	if err != nil {
		t.Fatal(err)
	}
	want, _ := Gyrofrequency(B, "e-")
	if got.Value() != want.Value() {
		t.Errorf("registry Oc = %v, direct = %v", got, want)
	}

	hz, err := e.CallHz(validate.Args{"B": B}, []particles.Specifier{"e-"})
	if err != nil {
		t.Fatal(err)
	}
	if !relClose(hz.Value(), want.Value()/(2*math.Pi), 1e-14) {
		t.Errorf("CallHz = %v, want %v", hz.Value(), want.Value()/(2*math.Pi))
	}

	if _, err := e.Call(validate.Args{}, []particles.Specifier{"e-"}); !errors.Is(err, validate.ErrMissingArgument) {
		t.Errorf("missing B: error = %v, want ErrMissingArgument", err)
	}
	if _, err := e.Call(validate.Args{"B": B}, nil); !errors.Is(err, validate.ErrMissingArgument) {
		t.Errorf("missing particle: error = %v, want ErrMissingArgument", err)
	}

	lD, _ := Lookup("LambdaD")
	if _, err := lD.CallHz(validate.Args{}, nil); !errors.Is(err, validate.ErrNotImplemented) {
		t.Errorf("CallHz on a length: error = %v, want ErrNotImplemented", err)
	}
}

func TestEntryOptionalArgs(t *testing.T) {
	e, _ := Lookup("Gyroradius")
	B := quantity.New(0.1, quantity.Tesla)
	v := quantity.New(1e5, quantity.MetrePerSecond)
	got, err := e.Call(validate.Args{"B": B, "Vperp": v}, []particles.Specifier{"p+"})
	if err != nil {
		t.Fatal(err)
	}
	want, _ := Gyroradius(B, "p+", WithVperp(v))
	if got.Value() != want.Value() {
		t.Errorf("registry Gyroradius = %v, want %v", got, want)
	}
}

func TestEntryCallArray(t *testing.T) {
	e, _ := Lookup("DebyeLength")
	T := quantity.NewArray([]float64{1e4, 1e5, 1e6}, quantity.Kelvin)
	n := quantity.NewArray([]float64{1e19}, quantity.PerCubicMetre)
	out, err := e.CallArray(validate.ArrayArgs{"T_e": T, "n_e": n}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != 3 {
		t.Fatalf("len = %d, want 3", out.Len())
	}
	for i := range 3 {
		want, _ := DebyeLength(T.At(i), n.At(0))
		if out.At(i).Value() != want.Value() {
			t.Errorf("element %d = %v, want %v", i, out.At(i), want)
		}
	}

	w, _ := Lookup("UpperHybridFrequency")
	_, err = w.CallArray(validate.ArrayArgs{
		"B":   quantity.NewArray([]float64{0.1, 0.2}, quantity.Tesla),
		"n_e": quantity.NewArray([]float64{1e19, 1e20, 1e21}, quantity.PerCubicMetre),
	}, nil)
	if !errors.Is(err, validate.ErrValue) {
		t.Errorf("mismatched lengths: error = %v, want ErrValue", err)
	}
}
