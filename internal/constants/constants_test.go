package constants

import (
	"math"
	"testing"
)

func TestDerivedConstants(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
		tol  float64
	}{
		{"speed of light", C, 299792458, 0},
		{"elementary charge", E, 1.602176634e-19, 1e-30},
		{"kelvin per eV", KelvinPerEV, 11604.518, 1e-3},
		{"mu0 eps0 c^2", Mu0 * Eps0 * C * C, 1, 1e-9},
		{"hbar", Hbar, 1.054571817e-34, 1e-42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > tt.tol {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestMassOrdering(t *testing.T) {
	if !(ElectronMass < MuonMass && MuonMass < ProtonMass && ProtonMass < NeutronMass && NeutronMass < TauMass) {
		t.Error("particle masses out of order")
	}
	if ratio := ProtonMass / ElectronMass; math.Abs(ratio-1836.15267) > 1e-4 {
		t.Errorf("mp/me = %v, want 1836.15267", ratio)
	}
}

// Fails to compile if any SI value becomes assignable.
const _ = C + E + Eps0 + Mu0 + KB + H + Hbar + U + EV + KelvinPerEV

func TestConstantsAreTyped(t *testing.T) {
	var got any = Hbar
	if _, ok := got.(float64); !ok {
		t.Errorf("Hbar has type %T, want float64", got)
	}
}
