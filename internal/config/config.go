package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/plasmalab/internal/particles"
	"github.com/san-kum/plasmalab/internal/quantity"
	"github.com/san-kum/plasmalab/internal/tracker"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "PLASMALAB_"

const (
	DefaultDataDir  = "runs"
	DefaultLogLevel = "info"
	DefaultPreset   = "gyration"
)

type Config struct {
	DataDir string       `yaml:"data_dir" toml:"data_dir" env:"DATA_DIR"`
	Log     LogConfig    `yaml:"log" toml:"log" envPrefix:"LOG_"`
	Track   TrackConfig  `yaml:"track" toml:"track" envPrefix:"TRACK_"`
	Plasma  PlasmaConfig `yaml:"plasma" toml:"plasma" envPrefix:"PLASMA_"`
}

type LogConfig struct {
	Level       string `yaml:"level" toml:"level" env:"LEVEL"`
	Development bool   `yaml:"development" toml:"development" env:"DEVELOPMENT"`
}

// TrackConfig is the file form of a tracker run. Positions and velocities
// are three-component vectors, one per particle.
type TrackConfig struct {
	Particles         []string           `yaml:"particles" toml:"particles"`
	Positions         [][]float64        `yaml:"positions" toml:"positions"`
	Velocities        [][]float64        `yaml:"velocities" toml:"velocities"`
	Field             string             `yaml:"field" toml:"field"`
	FieldParams       map[string]float64 `yaml:"field_params" toml:"field_params"`
	Integrator        string             `yaml:"integrator" toml:"integrator" env:"INTEGRATOR"`
	Dt                float64            `yaml:"dt" toml:"dt" env:"DT"`
	Duration          float64            `yaml:"duration" toml:"duration" env:"DURATION"`
	SaveEvery         int                `yaml:"save_every" toml:"save_every" env:"SAVE_EVERY"`
	Adaptive          bool               `yaml:"adaptive" toml:"adaptive" env:"ADAPTIVE"`
	Tolerance         float64            `yaml:"tolerance" toml:"tolerance" env:"TOLERANCE"`
	ConfinementRadius float64            `yaml:"confinement_radius" toml:"confinement_radius"`
}

// PlasmaConfig holds plasma parameters as quantity strings such as
// "1e19 m^-3" or "10 eV".
type PlasmaConfig struct {
	Density     string `yaml:"density" toml:"density" env:"DENSITY"`
	Temperature string `yaml:"temperature" toml:"temperature" env:"TEMPERATURE"`
	IonTemp     string `yaml:"ion_temperature" toml:"ion_temperature" env:"ION_TEMPERATURE"`
	Field       string `yaml:"field" toml:"field" env:"FIELD"`
	Ion         string `yaml:"ion" toml:"ion" env:"ION"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir: DefaultDataDir,
		Log:     LogConfig{Level: DefaultLogLevel},
		Track:   *GetPreset(DefaultPreset),
		Plasma:  PlasmaPresets["tokamak"],
	}
}

// Load reads a YAML or TOML file, chosen by extension, over the defaults
// and then applies environment overrides. An empty path loads only the
// defaults and the environment.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if isTOML(path) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("config: %s: %w", path, err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg from PLASMALAB_* variables.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	if isTOML(path) {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := toml.NewEncoder(f).Encode(cfg); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Tracker converts the run description into a tracker configuration.
func (c TrackConfig) Tracker() (tracker.Config, error) {
	fields, err := tracker.NewFields(c.Field, c.FieldParams)
	if err != nil {
		return tracker.Config{}, err
	}
	pos, err := vectors("positions", c.Positions)
	if err != nil {
		return tracker.Config{}, err
	}
	vel, err := vectors("velocities", c.Velocities)
	if err != nil {
		return tracker.Config{}, err
	}

	specs := make([]particles.Specifier, len(c.Particles))
	for i, p := range c.Particles {
		specs[i] = p
	}
	return tracker.Config{
		Particles:         specs,
		Positions:         pos,
		Velocities:        vel,
		Fields:            fields,
		Integrator:        c.Integrator,
		Dt:                c.Dt,
		Duration:          c.Duration,
		SaveEvery:         c.SaveEvery,
		Adaptive:          c.Adaptive,
		Tolerance:         c.Tolerance,
		ConfinementRadius: c.ConfinementRadius,
	}, nil
}

func vectors(name string, vs [][]float64) ([]r3.Vec, error) {
	out := make([]r3.Vec, len(vs))
	for i, v := range vs {
		if len(v) != 3 {
			return nil, fmt.Errorf("config: %s[%d] has %d components, want 3", name, i, len(v))
		}
		out[i] = r3.Vec{X: v[0], Y: v[1], Z: v[2]}
	}
	return out, nil
}

// Plasma is a parsed PlasmaConfig.
type Plasma struct {
	Density     quantity.Quantity
	Temperature quantity.Quantity
	IonTemp     quantity.Quantity
	Field       quantity.Quantity
	Ion         particles.Like
}

// Parse converts the quantity strings. An empty ion temperature copies the
// electron temperature and an empty ion means protons.
func (c PlasmaConfig) Parse() (*Plasma, error) {
	var p Plasma
	var err error
	if p.Density, err = parseField("density", c.Density); err != nil {
		return nil, err
	}
	if p.Temperature, err = parseField("temperature", c.Temperature); err != nil {
		return nil, err
	}
	p.IonTemp = p.Temperature
	if c.IonTemp != "" {
		if p.IonTemp, err = parseField("ion_temperature", c.IonTemp); err != nil {
			return nil, err
		}
	}
	if p.Field, err = parseField("field", c.Field); err != nil {
		return nil, err
	}
	ion := c.Ion
	if ion == "" {
		ion = "p+"
	}
	if p.Ion, err = particles.Resolve(ion); err != nil {
		return nil, fmt.Errorf("config: ion: %w", err)
	}
	return &p, nil
}

func parseField(name, s string) (quantity.Quantity, error) {
	q, err := quantity.Parse(s)
	if err != nil {
		return quantity.Quantity{}, fmt.Errorf("config: %s: %w", name, err)
	}
	return q, nil
}
