package formulary

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/plasmalab/internal/constants"
	"github.com/san-kum/plasmalab/internal/quantity"
	"github.com/san-kum/plasmalab/internal/validate"
)

func TestGyrofrequency(t *testing.T) {
	B := quantity.New(0.1, quantity.Tesla)
	tests := []struct {
		particle string
		opts     []Option
		want     float64
	}{
		{"e-", nil, 1.7588200107721634e10},
		{"e-", []Option{Signed()}, -1.7588200107721634e10},
		{"p+", []Option{Signed()}, constants.E * 0.1 / constants.ProtonMass},
		{"alpha", nil, 2 * constants.E * 0.1 / constants.AlphaMass},
		{"p+", []Option{WithZMean(3)}, 3 * constants.E * 0.1 / constants.ProtonMass},
	}
	for _, tt := range tests {
		w, err := Gyrofrequency(B, tt.particle, tt.opts...)
		if err != nil {
			t.Fatalf("Gyrofrequency(%s) error: %v", tt.particle, err)
		}
		if !relClose(w.Value(), tt.want, 1e-9) {
			t.Errorf("Gyrofrequency(%s) = %v, want %v", tt.particle, w.Value(), tt.want)
		}
	}
}

func TestHzVariants(t *testing.T) {
	B := quantity.New(0.3, quantity.Tesla)
	n := quantity.New(1e18, quantity.PerCubicMetre)

	w, err := Oc(B, "e-")
	if err != nil {
		t.Fatal(err)
	}
	f, err := GyrofrequencyHz(B, "e-")
	if err != nil {
		t.Fatal(err)
	}
	if !relClose(f.Value(), w.Value()/(2*math.Pi), 1e-14) || !f.Compatible(quantity.Hertz) {
		t.Errorf("GyrofrequencyHz = %v, want %v Hz", f, w.Value()/(2*math.Pi))
	}

	wp, err := Wp(n, "e-")
	if err != nil {
		t.Fatal(err)
	}
	fp, err := PlasmaFrequencyHz(n, "e-")
	if err != nil {
		t.Fatal(err)
	}
	if !relClose(fp.Value(), wp.Value()/(2*math.Pi), 1e-14) {
		t.Errorf("PlasmaFrequencyHz = %v, want %v", fp.Value(), wp.Value()/(2*math.Pi))
	}
}

func TestPlasmaFrequency(t *testing.T) {
	w, err := PlasmaFrequency(quantity.New(1e19, quantity.PerCubicMetre), "e-")
	if err != nil {
		t.Fatal(err)
	}
	if !relClose(w.Value(), 1.78398636597908e11, 1e-8) {
		t.Errorf("PlasmaFrequency = %v, want 1.784e11", w.Value())
	}
	cgs, err := PlasmaFrequency(quantity.MustParse("1e13 cm^-3"), "e-")
	if err != nil {
		t.Fatal(err)
	}
	if !relClose(cgs.Value(), w.Value(), 1e-12) {
		t.Errorf("cm^-3 input gives %v, want %v", cgs.Value(), w.Value())
	}
}

func TestHybridFrequencies(t *testing.T) {
	B := quantity.New(0.2, quantity.Tesla)
	n := quantity.New(5e19, quantity.PerCubicMetre)

	wpe, _ := PlasmaFrequency(n, "e-")
	wce, _ := Gyrofrequency(B, "e-")
	wuh, err := Wuh(B, n)
	if err != nil {
		t.Fatal(err)
	}
	if want := math.Hypot(wpe.Value(), wce.Value()); !relClose(wuh.Value(), want, 1e-12) {
		t.Errorf("UpperHybridFrequency = %v, want %v", wuh.Value(), want)
	}

	wci, _ := Gyrofrequency(B, "p+")
	wpi, _ := PlasmaFrequency(n, "p+")
	wlh, err := Wlh(B, n, "p+")
	if err != nil {
		t.Fatal(err)
	}
	want := 1 / math.Sqrt(1/(wci.Value()*wce.Value())+1/(wpi.Value()*wpi.Value()))
	if !relClose(wlh.Value(), want, 1e-12) {
		t.Errorf("LowerHybridFrequency = %v, want %v", wlh.Value(), want)
	}
	if wlh.Value() >= wuh.Value() {
		t.Errorf("lower hybrid %v above upper hybrid %v", wlh.Value(), wuh.Value())
	}
}

func TestGyroradius(t *testing.T) {
	B := quantity.New(0.1, quantity.Tesla)
	r, err := Gyroradius(B, "p+", WithVperp(quantity.New(-1e5, quantity.MetrePerSecond)))
	if err != nil {
		t.Fatal(err)
	}
	if want := 1e5 * constants.ProtonMass / (constants.E * 0.1); !relClose(r.Value(), want, 1e-12) {
		t.Errorf("Gyroradius = %v, want %v", r.Value(), want)
	}

	T := quantity.New(1e4, quantity.Kelvin)
	rT, err := RhoC(B, "e-", WithTemperature(T))
	if err != nil {
		t.Fatal(err)
	}
	vth, _ := ThermalSpeed(T, "e-")
	wc, _ := Gyrofrequency(B, "e-")
	if !relClose(rT.Value(), vth.Value()/wc.Value(), 1e-12) {
		t.Errorf("thermal Gyroradius = %v, want %v", rT.Value(), vth.Value()/wc.Value())
	}

	for name, opts := range map[string][]Option{
		"neither": nil,
		"both":    {WithVperp(quantity.New(1, quantity.MetrePerSecond)), WithTemperature(T)},
	} {
		if _, err := Rc(B, "p+", opts...); !errors.Is(err, validate.ErrValue) {
			t.Errorf("%s: error = %v, want ErrValue", name, err)
		}
	}
	if _, err := Gyroradius(quantity.New(0, quantity.Tesla), "p+", WithTemperature(T)); !errors.Is(err, validate.ErrZero) {
		t.Errorf("B=0 error = %v, want ErrZero", err)
	}
}
