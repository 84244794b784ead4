package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/plasmalab/internal/quantity"
	"github.com/san-kum/plasmalab/internal/tracker"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DataDir != DefaultDataDir {
		t.Errorf("expected data dir %s, got %s", DefaultDataDir, cfg.DataDir)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected log level info, got %s", cfg.Log.Level)
	}
	if cfg.Track.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Track.Duration <= 0 {
		t.Error("duration should be positive")
	}
}

func TestDefaultConfigDoesNotAliasPreset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Track.FieldParams["bz"] = 42
	cfg.Track.Velocities[0][0] = 7

	p := TrackPresets[DefaultPreset]
	if p.FieldParams["bz"] == 42 || p.Velocities[0][0] == 7 {
		t.Error("modifying the default config changed the preset")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("gyration")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.FieldParams["bz"] != 0.1 {
		t.Errorf("expected bz 0.1, got %f", cfg.FieldParams["bz"])
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsBuildTrackers(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			tc, err := GetPreset(name).Tracker()
			if err != nil {
				t.Fatal(err)
			}
			if _, err := tracker.New(tc); err != nil {
				t.Errorf("preset %s: %v", name, err)
			}
		})
	}
}

func TestPlasmaPresetsParse(t *testing.T) {
	for _, name := range ListPlasmaPresets() {
		t.Run(name, func(t *testing.T) {
			pc, ok := GetPlasmaPreset(name)
			if !ok {
				t.Fatal("preset missing")
			}
			p, err := pc.Parse()
			if err != nil {
				t.Fatal(err)
			}
			if !p.Density.Compatible(quantity.PerCubicMetre) {
				t.Errorf("density %s is not a number density", p.Density)
			}
			if !p.Field.Compatible(quantity.Tesla) {
				t.Errorf("field %s is not a magnetic field", p.Field)
			}
		})
	}
}

func TestPlasmaParseDefaults(t *testing.T) {
	p, err := PlasmaConfig{Density: "1e19 m^-3", Temperature: "5 eV", Field: "1 T"}.Parse()
	if err != nil {
		t.Fatal(err)
	}
	if !p.IonTemp.Equal(p.Temperature) {
		t.Errorf("ion temperature %s, want %s", p.IonTemp, p.Temperature)
	}
	if p.Ion.Symbol() != "p+" {
		t.Errorf("default ion %s, want p+", p.Ion.Symbol())
	}

	if _, err := (PlasmaConfig{Density: "lots", Temperature: "5 eV", Field: "1 T"}).Parse(); err == nil {
		t.Error("expected an error for an unparseable density")
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "run.yaml", `
data_dir: /tmp/plasma
log:
  level: debug
track:
  particles: [e-]
  positions: [[0, 0, 0]]
  velocities: [[1.0e6, 0, 0]]
  field: uniform
  field_params: {bz: 0.01}
  dt: 1.0e-11
  duration: 1.0e-8
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != "/tmp/plasma" || cfg.Log.Level != "debug" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Track.Particles[0] != "e-" || cfg.Track.FieldParams["bz"] != 0.01 {
		t.Errorf("unexpected track config %+v", cfg.Track)
	}
	if cfg.Track.Integrator != "boris" {
		t.Errorf("integrator default lost, got %q", cfg.Track.Integrator)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "run.toml", `
data_dir = "out"

[log]
development = true

[track]
particles = ["p+"]
positions = [[0.0, 0.0, 0.0]]
velocities = [[0.0, 0.0, 0.0]]
field = "exb"
integrator = "rk4"

[track.field_params]
e = 100.0
b = 0.5
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != "out" || !cfg.Log.Development {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Track.Field != "exb" || cfg.Track.FieldParams["e"] != 100 || cfg.Track.Integrator != "rk4" {
		t.Errorf("unexpected track config %+v", cfg.Track)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PLASMALAB_DATA_DIR", "/var/runs")
	t.Setenv("PLASMALAB_LOG_LEVEL", "warn")
	t.Setenv("PLASMALAB_TRACK_INTEGRATOR", "rk45")
	t.Setenv("PLASMALAB_PLASMA_ION", "He+")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != "/var/runs" {
		t.Errorf("data dir %q", cfg.DataDir)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log level %q", cfg.Log.Level)
	}
	if cfg.Track.Integrator != "rk45" {
		t.Errorf("integrator %q", cfg.Track.Integrator)
	}
	if cfg.Plasma.Ion != "He+" {
		t.Errorf("ion %q", cfg.Plasma.Ion)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for _, ext := range []string{".yaml", ".toml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cfg"+ext)
			want := DefaultConfig()
			want.Track = *GetPreset("mirror")
			if err := Save(path, want); err != nil {
				t.Fatal(err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			if got.Track.Field != "mirror" || got.Track.FieldParams["b0"] != 0.01 || got.Track.ConfinementRadius != 0.5 {
				t.Errorf("round trip lost track fields: %+v", got.Track)
			}
		})
	}
}

func TestTrackerBadVector(t *testing.T) {
	c := GetPreset("gyration")
	c.Positions = [][]float64{{0, 0}}
	if _, err := c.Tracker(); err == nil {
		t.Error("expected an error for a two-component position")
	}

	c = GetPreset("gyration")
	c.Field = "tokamak"
	if _, err := c.Tracker(); err == nil {
		t.Error("expected an error for an unknown field")
	}
}
