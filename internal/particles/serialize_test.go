package particles

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/plasmalab/internal/quantity"
)

type equaler interface {
	Like
	Equal(Like) bool
}

func TestJSONRoundTrip(t *testing.T) {
	custom, _ := NewCustomParticle(
		CustomMass(quantity.MustParse("5.12 kg")),
		CustomCharge(quantity.MustParse("nan C")),
		CustomSymbol("blob"),
		CustomCategories("charged"),
	)
	dimless, _ := NewDimensionlessParticle(5.2, math.NaN())

	for _, p := range []equaler{Proton, Alpha, MustNew("Fe-56 17+"), MustNew("Pb"), Electron, custom, dimless} {
		t.Run(p.Symbol(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := DumpParticle(&buf, p); err != nil {
				t.Fatal(err)
			}
			back, err := LoadParticle(&buf)
			if err != nil {
				t.Fatal(err)
			}
			if !p.Equal(back) {
				t.Errorf("round trip = %v, want %v", back, p)
			}
		})
	}
}

func TestJSONEnvelope(t *testing.T) {
	data, err := json.Marshal(MustNew("Pb"))
	if err != nil {
		t.Fatal(err)
	}
	var env map[string]map[string]any
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatal(err)
	}
	body := env["plasmapy_particle"]
	if body["type"] != "Particle" || body["module"] != "plasmapy.particles.particle_class" {
		t.Errorf("envelope = %v", body)
	}
	ctor, _ := body["__init__"].(map[string]any)
	args, _ := ctor["args"].([]any)
	if len(args) != 1 || args[0] != "Pb" {
		t.Errorf("args = %v", ctor["args"])
	}
}

func TestLoadsParticleErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", "{"},
		{"no envelope", `{"particle": {}}`},
		{"no type", `{"plasmapy_particle": {"__init__": {"args": ["e-"], "kwargs": {}}}}`},
		{"no init", `{"plasmapy_particle": {"type": "Particle"}}`},
		{"unknown type", `{"plasmapy_particle": {"type": "Quark", "__init__": {"args": [], "kwargs": {}}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadParticle(strings.NewReader(tt.in)); !errors.Is(err, ErrInvalidElement) {
				t.Errorf("err = %v, want ErrInvalidElement", err)
			}
		})
	}
}

func TestLoadsPythonStyleCustom(t *testing.T) {
	in := `{"plasmapy_particle": {"type": "CustomParticle", "module": "plasmapy.particles.particle_class",
		"date_created": "2020-07-20 17:50:16 UTC",
		"__init__": {"args": [], "kwargs": {"mass": "5.12 kg", "charge": "6.2 C"}}}}`
	p, err := LoadsParticle([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if got := p.String(); got != "CustomParticle(mass=5.12 kg, charge=6.2 C)" {
		t.Errorf("loaded %q", got)
	}
}

func TestDimensionlessNonFiniteJSON(t *testing.T) {
	d, _ := NewDimensionlessParticle(5.2, math.NaN())
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"charge":"NaN"`)) {
		t.Errorf("encoded = %s, want charge spelled \"NaN\"", data)
	}

	tests := []struct {
		name   string
		charge string
	}{
		{"bare token", `NaN`},
		{"quoted", `"NaN"`},
		{"lower case", `"nan"`},
		{"null", `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := `{"plasmapy_particle": {"type": "DimensionlessParticle", "module": "plasmapy.particles.particle_class",` +
				` "__init__": {"args": [], "kwargs": {"mass": 5.2, "charge": ` + tt.charge + `, "symbol": "NaN-ish"}}}}`
			p, err := LoadsParticle([]byte(in))
			if err != nil {
				t.Fatal(err)
			}
			if !d.WithSymbol("NaN-ish").Equal(p) {
				t.Errorf("decoded %v", p)
			}
			if p.Symbol() != "NaN-ish" {
				t.Errorf("symbol = %q, strings must not be rewritten", p.Symbol())
			}
		})
	}
}

func TestQuoteNonFinite(t *testing.T) {
	tests := []struct{ in, want string }{
		{`[NaN, Infinity, -Infinity, 1]`, `["NaN", "Infinity", "-Infinity", 1]`},
		{`{"a": "NaN \" Infinity"}`, `{"a": "NaN \" Infinity"}`},
		{`{"NaN": -1.5}`, `{"NaN": -1.5}`},
	}
	for _, tt := range tests {
		if got := string(quoteNonFinite([]byte(tt.in))); got != tt.want {
			t.Errorf("quoteNonFinite(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
