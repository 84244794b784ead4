package particles

import (
	"math"

	"github.com/san-kum/plasmalab/internal/constants"
)

// stableIsotopes lists the mass numbers of stable nuclides by atomic number.
var stableIsotopes = map[int][]int{
	1: {1, 2}, 2: {3, 4}, 3: {6, 7}, 4: {9}, 5: {10, 11}, 6: {12, 13},
	7: {14, 15}, 8: {16, 17, 18}, 9: {19}, 10: {20, 21, 22}, 11: {23},
	12: {24, 25, 26}, 13: {27}, 14: {28, 29, 30}, 15: {31}, 16: {32, 33, 34, 36},
	17: {35, 37}, 18: {36, 38, 40}, 19: {39, 41}, 20: {40, 42, 43, 44, 46},
	21: {45}, 22: {46, 47, 48, 49, 50}, 23: {51}, 24: {50, 52, 53, 54}, 25: {55},
	26: {54, 56, 57, 58}, 27: {59}, 28: {58, 60, 61, 62, 64}, 29: {63, 65},
	30: {64, 66, 67, 68, 70}, 31: {69, 71}, 32: {70, 72, 73, 74}, 33: {75},
	34: {74, 76, 77, 78, 80}, 35: {79, 81}, 36: {78, 80, 82, 83, 84, 86},
	37: {85}, 38: {84, 86, 87, 88}, 39: {89}, 40: {90, 91, 92, 94}, 41: {93},
	42: {92, 94, 95, 96, 97, 98}, 44: {96, 98, 99, 100, 101, 102, 104},
	45: {103}, 46: {102, 104, 105, 106, 108, 110}, 47: {107, 109},
	48: {106, 108, 110, 111, 112, 114}, 49: {113},
	50: {112, 114, 115, 116, 117, 118, 119, 120, 122, 124}, 51: {121, 123},
	52: {120, 122, 123, 124, 125, 126}, 53: {127},
	54: {124, 126, 128, 129, 130, 131, 132, 134, 136}, 55: {133},
	56: {132, 134, 135, 136, 137, 138}, 57: {139}, 58: {136, 138, 140, 142},
	59: {141}, 60: {142, 143, 145, 146, 148}, 62: {144, 149, 150, 152, 154},
	63: {153}, 64: {154, 155, 156, 157, 158, 160}, 65: {159},
	66: {156, 158, 160, 161, 162, 163, 164}, 67: {165},
	68: {162, 164, 166, 167, 168, 170}, 69: {169},
	70: {168, 170, 171, 172, 173, 174, 176}, 71: {175},
	72: {176, 177, 178, 179, 180}, 73: {181}, 74: {182, 183, 184, 186},
	75: {185}, 76: {184, 187, 188, 189, 190, 192}, 77: {191, 193},
	78: {192, 194, 195, 196, 198}, 79: {197},
	80: {196, 198, 199, 200, 201, 202, 204}, 81: {203, 205},
	82: {204, 206, 207, 208},
}

type nuclide struct{ z, a int }

// atomicMasses holds measured neutral-atom masses in u (AME2016).
var atomicMasses = map[nuclide]float64{
	{1, 1}: 1.00782503223, {1, 2}: 2.01410177812, {1, 3}: 3.0160492779,
	{2, 3}: 3.0160293201, {2, 4}: 4.00260325413,
	{3, 6}: 6.0151228874, {3, 7}: 7.0160034366,
	{4, 7}: 7.016928717, {4, 9}: 9.012183065, {4, 10}: 10.013534695,
	{5, 10}: 10.01293695, {5, 11}: 11.00930536,
	{6, 12}: 12, {6, 13}: 13.00335483507, {6, 14}: 14.0032419884,
	{7, 14}: 14.00307400443, {7, 15}: 15.00010889888,
	{8, 16}: 15.99491461957, {8, 17}: 16.99913175650, {8, 18}: 17.99915961286,
	{9, 19}:  18.99840316273,
	{10, 20}: 19.9924401762, {10, 21}: 20.993846685, {10, 22}: 21.991385114,
	{11, 23}: 22.9897692820,
	{12, 24}: 23.985041697, {12, 25}: 24.985836976, {12, 26}: 25.982592968,
	{13, 27}: 26.98153853,
	{14, 28}: 27.97692653465, {14, 29}: 28.97649466490, {14, 30}: 29.973770136,
	{18, 36}: 35.967545105, {18, 38}: 37.96273211, {18, 40}: 39.9623831237,
	{26, 54}: 53.93960899, {26, 56}: 55.93493633, {26, 57}: 56.93539284, {26, 58}: 57.93327443,
	{28, 58}: 57.93534241, {29, 63}: 62.92959772, {29, 65}: 64.92778970,
	{36, 84}: 83.9114977282, {54, 132}: 131.9041550856,
	{74, 184}: 183.95093092, {79, 197}: 196.96656879,
	{82, 206}: 205.9744653, {82, 207}: 206.9758969, {82, 208}: 207.9766525,
	{92, 235}: 235.0439301, {92, 238}: 238.0507884,
}

// massNumberRange approximates the span of observed nuclides for an element.
func massNumberRange(z int) (lo, hi int) {
	lo = z + z/2
	if z == 1 {
		lo = 1
	}
	hi = max(2*z+6, int(2.7*float64(z)))
	return lo, hi
}

func isStableNuclide(z, a int) bool {
	for _, s := range stableIsotopes[z] {
		if s == a {
			return true
		}
	}
	return false
}

// Semi-empirical mass formula coefficients in MeV.
const (
	semfVolume    = 15.75
	semfSurface   = 17.8
	semfCoulomb   = 0.711
	semfAsymmetry = 23.7
	semfPairing   = 11.18
)

const mevToJoule = 1e6 * 1.602176634e-19

// semfBindingEnergy returns the Weizsaecker binding energy in J.
func semfBindingEnergy(z, a int) float64 {
	A, Z := float64(a), float64(z)
	b := semfVolume*A -
		semfSurface*math.Pow(A, 2.0/3) -
		semfCoulomb*Z*(Z-1)/math.Cbrt(A) -
		semfAsymmetry*(A-2*Z)*(A-2*Z)/A
	n := a - z
	switch {
	case z%2 == 0 && n%2 == 0:
		b += semfPairing / math.Sqrt(A)
	case z%2 == 1 && n%2 == 1:
		b -= semfPairing / math.Sqrt(A)
	}
	return math.Max(b, 0) * mevToJoule
}

// hydrogenAtomMass is the H-1 atomic mass in kg.
var hydrogenAtomMass = atomicMasses[nuclide{1, 1}] * constants.U

// isotopeAtomicMass returns the neutral-atom mass in kg, measured when
// tabulated and estimated from the mass formula otherwise.
func isotopeAtomicMass(z, a int) (mass float64, measured bool) {
	if m, ok := atomicMasses[nuclide{z, a}]; ok {
		return m * constants.U, true
	}
	b := semfBindingEnergy(z, a)
	return float64(z)*hydrogenAtomMass + float64(a-z)*constants.NeutronMass - b/(constants.C*constants.C), false
}

// nuclideMass returns the mass of the bare nucleus in kg.
func nuclideMass(z, a int) float64 {
	switch {
	case z == 1 && a == 1:
		return constants.ProtonMass
	case z == 1 && a == 2:
		return constants.DeuteronMass
	case z == 1 && a == 3:
		return constants.TritonMass
	case z == 2 && a == 4:
		return constants.AlphaMass
	}
	m, _ := isotopeAtomicMass(z, a)
	return m - float64(z)*constants.ElectronMass
}

// bindingEnergy is the nuclear binding energy in J from the nuclide mass.
func bindingEnergy(z, a int) float64 {
	free := float64(z)*constants.ProtonMass + float64(a-z)*constants.NeutronMass
	return (free - nuclideMass(z, a)) * constants.C * constants.C
}
