package quantity

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/unit"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in    string
		units Units
		want  float64
	}{
		{"5 eV", ElectronVolt, 5},
		{"1e6 K", Kelvin, 1e6},
		{"100.0 g", Kilogram, 0.1},
		{"1e13 cm^-3", PerCubicMetre, 1e19},
		{"2.5 km/s", MetrePerSecond, 2500},
		{"3 kG", Tesla, 0.3},
		{"1 keV", Joule, 1.602176634e-16},
		{"4 kg m^-3", KgPerCubicMetre, 4},
		{"2 rad/s", RadPerSecond, 2},
		{"10 mT", Tesla, 0.01},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			q, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			got, err := q.In(tt.units)
			if err != nil {
				t.Fatalf("In(%s) error: %v", tt.units, err)
			}
			if math.Abs(got-tt.want) > 1e-9*math.Abs(tt.want) {
				t.Errorf("Parse(%q) = %v %s, want %v", tt.in, got, tt.units, tt.want)
			}
		})
	}
}

func TestParseBareAndSpecial(t *testing.T) {
	q, err := Parse("42")
	if err != nil {
		t.Fatal(err)
	}
	if !q.IsBare() || q.Value() != 42 {
		t.Errorf("Parse(42) = %v, want bare 42", q)
	}

	q, err = Parse("nan C")
	if err != nil {
		t.Fatal(err)
	}
	if !q.IsNaN() || !q.Compatible(Coulomb) {
		t.Errorf("Parse(nan C) = %v", q)
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "abc", "5 furlongs", "5 m/", "1 m^x"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", in)
		}
	}
	if _, err := Parse("5 furlongs"); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("unknown unit error = %v, want ErrUnknownUnit", err)
	}
}

func TestArithmetic(t *testing.T) {
	b := New(2, Tesla)
	n := New(3, Metre)

	if _, err := b.Add(n); !errors.Is(err, ErrUnitMismatch) {
		t.Errorf("Add across dimensions: err = %v, want ErrUnitMismatch", err)
	}

	sum, err := n.Add(New(100, Centimetre))
	if err != nil {
		t.Fatal(err)
	}
	if sum.Value() != 4 {
		t.Errorf("3 m + 100 cm = %v, want 4 m", sum)
	}

	area := n.Mul(n)
	side, err := area.Sqrt()
	if err != nil {
		t.Fatal(err)
	}
	if !side.IsClose(n, 1e-15) {
		t.Errorf("sqrt(n^2) = %v, want %v", side, n)
	}
	if _, err := n.Sqrt(); err == nil {
		t.Error("sqrt of metre should fail")
	}

	v := n.Div(New(1, Second))
	if !v.Compatible(MetrePerSecond) {
		t.Errorf("m / s dims = %v", v.Dimensions())
	}
}

func TestUniterInterop(t *testing.T) {
	q := FromUniter(unit.Length(2.5))
	if got := q.MustIn(Metre); got != 2.5 {
		t.Errorf("FromUniter(2.5 m) = %v", got)
	}
	if !unit.DimensionsMatch(New(1, Kelvin), unit.Temperature(1)) {
		t.Error("Kelvin quantity should match unit.Kelvin")
	}
}

func TestTemperatureEnergy(t *testing.T) {
	eq := TemperatureEnergy()
	k, ok := eq.Convert(New(1, ElectronVolt), Kelvin)
	if !ok {
		t.Fatal("eV -> K conversion not applied")
	}
	if math.Abs(k.Value()-11604.518) > 1e-3 {
		t.Errorf("1 eV = %v K, want 11604.518", k.Value())
	}
	if _, ok := eq.Convert(New(1, Metre), Kelvin); ok {
		t.Error("metre converted to kelvin")
	}
}

func TestStack(t *testing.T) {
	a, err := Stack(New(1, Kilogram), New(2, Gram))
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != 2 || a.At(1).Value() != 2e-3 {
		t.Errorf("Stack = %v", a)
	}
	if got := a.Sum().Value(); math.Abs(got-1.002) > 1e-15 {
		t.Errorf("Sum = %v, want 1.002", got)
	}
	if _, err := Stack(New(1, Kilogram), Bare(1)); !errors.Is(err, ErrUnitMismatch) {
		t.Errorf("mixed Stack err = %v", err)
	}
}

func TestArrayCompatible(t *testing.T) {
	a := NewArray([]float64{1, 2, 3}, SecondPerRad)
	if !a.Compatible(SecondPerRad) {
		t.Error("s/rad array not compatible with s/rad")
	}
	if a.Compatible(Second) {
		t.Error("s/rad array compatible with s")
	}
	if !NewArray([]float64{5}, Gram).Compatible(Kilogram) {
		t.Error("gram array not compatible with kilogram")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		q    Quantity
		want string
	}{
		{New(5.12, Kilogram), "5.12 kg"},
		{New(6.2, Coulomb), "6.2 C"},
		{NaN(Coulomb), "nan C"},
		{Bare(3), "3"},
	}
	for _, tt := range tests {
		if got := tt.q.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
