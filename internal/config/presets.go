package config

import (
	"maps"
	"slices"
	"sort"
)

// TrackPresets are ready-made tracker runs in SI units.
var TrackPresets = map[string]*TrackConfig{
	"gyration": {
		Particles:   []string{"p+"},
		Positions:   [][]float64{{0, 0, 0}},
		Velocities:  [][]float64{{1e5, 0, 0}},
		Field:       "uniform",
		FieldParams: map[string]float64{"bz": 0.1},
		Integrator:  "boris",
		Dt:          3e-9,
		Duration:    2e-6,
		SaveEvery:   1,
	},
	"exb": {
		Particles:   []string{"p+", "e-"},
		Positions:   [][]float64{{0, 0, 0}, {0, 0, 0}},
		Velocities:  [][]float64{{0, 0, 0}, {0, 0, 0}},
		Field:       "exb",
		FieldParams: map[string]float64{"e": 1e3, "b": 0.1},
		Integrator:  "boris",
		Dt:          1e-11,
		Duration:    3e-6,
		SaveEvery:   1000,
	},
	"mirror": {
		Particles:         []string{"e-"},
		Positions:         [][]float64{{0, 0, 0}},
		Velocities:        [][]float64{{1e6, 0, 2e5}},
		Field:             "mirror",
		FieldParams:       map[string]float64{"b0": 0.01, "l": 1},
		Integrator:        "boris",
		Dt:                1e-10,
		Duration:          1e-5,
		SaveEvery:         100,
		ConfinementRadius: 0.5,
	},
	"mirror-rk45": {
		Particles:         []string{"e-"},
		Positions:         [][]float64{{0, 0, 0}},
		Velocities:        [][]float64{{1e6, 0, 2e5}},
		Field:             "mirror",
		FieldParams:       map[string]float64{"b0": 0.01, "l": 1},
		Integrator:        "rk45",
		Dt:                1e-10,
		Duration:          1e-5,
		SaveEvery:         20,
		Adaptive:          true,
		Tolerance:         1e-8,
		ConfinementRadius: 0.5,
	},
}

// PlasmaPresets are typical parameter sets.
var PlasmaPresets = map[string]PlasmaConfig{
	"tokamak":        {Density: "1e20 m^-3", Temperature: "10 keV", Field: "5 T", Ion: "D+"},
	"corona":         {Density: "1e15 m^-3", Temperature: "100 eV", Field: "1e-3 T", Ion: "p+"},
	"solar-wind":     {Density: "5e6 m^-3", Temperature: "10 eV", IonTemp: "20 eV", Field: "5 nT", Ion: "p+"},
	"ionosphere":     {Density: "1e11 m^-3", Temperature: "0.1 eV", Field: "5e-5 T", Ion: "O+"},
	"glow-discharge": {Density: "1e16 m^-3", Temperature: "2 eV", IonTemp: "0.03 eV", Field: "0 T", Ion: "Ar+"},
}

// GetPreset returns a copy of a tracker preset, or nil.
func GetPreset(name string) *TrackConfig {
	p, ok := TrackPresets[name]
	if !ok {
		return nil
	}
	return p.Clone()
}

func ListPresets() []string {
	return sortedNames(TrackPresets)
}

// GetPlasmaPreset returns a plasma preset and whether it exists.
func GetPlasmaPreset(name string) (PlasmaConfig, bool) {
	p, ok := PlasmaPresets[name]
	return p, ok
}

func ListPlasmaPresets() []string {
	return sortedNames(PlasmaPresets)
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy.
func (c *TrackConfig) Clone() *TrackConfig {
	out := *c
	out.Particles = slices.Clone(c.Particles)
	out.Positions = cloneVectors(c.Positions)
	out.Velocities = cloneVectors(c.Velocities)
	out.FieldParams = maps.Clone(c.FieldParams)
	return &out
}

func cloneVectors(vs [][]float64) [][]float64 {
	if vs == nil {
		return nil
	}
	out := make([][]float64, len(vs))
	for i, v := range vs {
		out[i] = slices.Clone(v)
	}
	return out
}
