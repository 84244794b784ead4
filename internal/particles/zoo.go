package particles

import "github.com/san-kum/plasmalab/internal/constants"

// special describes a particle that is not an element or ion.
type special struct {
	symbol  string
	name    string
	anti    string
	charge  int
	mass    float64 // kg; zero when unknown
	spin    float64
	baryon  int
	lepton  int
	classes []string
}

var specials = map[string]special{
	"e-": {"e-", "electron", "e+", -1, constants.ElectronMass, 0.5, 0, 1,
		[]string{"electron", "lepton", "fermion", "matter", "stable"}},
	"e+": {"e+", "positron", "e-", 1, constants.ElectronMass, 0.5, 0, -1,
		[]string{"positron", "antilepton", "fermion", "antimatter", "stable"}},
	"mu-": {"mu-", "muon", "mu+", -1, constants.MuonMass, 0.5, 0, 1,
		[]string{"lepton", "fermion", "matter", "unstable"}},
	"mu+": {"mu+", "antimuon", "mu-", 1, constants.MuonMass, 0.5, 0, -1,
		[]string{"antilepton", "fermion", "antimatter", "unstable"}},
	"tau-": {"tau-", "tau", "tau+", -1, constants.TauMass, 0.5, 0, 1,
		[]string{"lepton", "fermion", "matter", "unstable"}},
	"tau+": {"tau+", "antitau", "tau-", 1, constants.TauMass, 0.5, 0, -1,
		[]string{"antilepton", "fermion", "antimatter", "unstable"}},
	"n": {"n", "neutron", "antineutron", 0, constants.NeutronMass, 0.5, 1, 0,
		[]string{"neutron", "baryon", "fermion", "matter", "unstable"}},
	"antineutron": {"antineutron", "antineutron", "n", 0, constants.NeutronMass, 0.5, -1, 0,
		[]string{"antibaryon", "fermion", "antimatter", "unstable"}},
	"p-": {"p-", "antiproton", "p+", -1, constants.ProtonMass, 0.5, -1, 0,
		[]string{"antibaryon", "fermion", "antimatter", "stable"}},
	"nu_e": {"nu_e", "electron neutrino", "anti_nu_e", 0, 0, 0.5, 0, 1,
		[]string{"neutrino", "lepton", "fermion", "matter", "stable"}},
	"anti_nu_e": {"anti_nu_e", "electron antineutrino", "nu_e", 0, 0, 0.5, 0, -1,
		[]string{"antineutrino", "antilepton", "fermion", "antimatter", "stable"}},
	"nu_mu": {"nu_mu", "muon neutrino", "anti_nu_mu", 0, 0, 0.5, 0, 1,
		[]string{"neutrino", "lepton", "fermion", "matter", "stable"}},
	"anti_nu_mu": {"anti_nu_mu", "muon antineutrino", "nu_mu", 0, 0, 0.5, 0, -1,
		[]string{"antineutrino", "antilepton", "fermion", "antimatter", "stable"}},
	"nu_tau": {"nu_tau", "tau neutrino", "anti_nu_tau", 0, 0, 0.5, 0, 1,
		[]string{"neutrino", "lepton", "fermion", "matter", "stable"}},
	"anti_nu_tau": {"anti_nu_tau", "tau antineutrino", "nu_tau", 0, 0, 0.5, 0, -1,
		[]string{"antineutrino", "antilepton", "fermion", "antimatter", "stable"}},
}

// aliases maps lower-cased names and alternative symbols to a canonical
// specifier, which is either a special symbol or an ionic symbol.
var aliases = map[string]string{
	"e-": "e-", "e": "e-", "electron": "e-", "beta-": "e-",
	"e+": "e+", "positron": "e+", "antielectron": "e+", "beta+": "e+",
	"mu-": "mu-", "mu": "mu-", "muon": "mu-", "muon-": "mu-",
	"mu+": "mu+", "antimuon": "mu+", "muon+": "mu+",
	"tau-": "tau-", "tau": "tau-", "tau particle": "tau-", "tau lepton": "tau-",
	"tau+": "tau+", "antitau": "tau+",
	"n": "n", "n-1": "n", "neutron": "n", "n0": "n",
	"antineutron": "antineutron",
	"p-":          "p-", "antiproton": "p-",
	"p+": "H-1 1+", "p": "H-1 1+", "proton": "H-1 1+",
	"nu_e": "nu_e", "electron neutrino": "nu_e",
	"anti_nu_e": "anti_nu_e", "electron antineutrino": "anti_nu_e",
	"nu_mu": "nu_mu", "muon neutrino": "nu_mu",
	"anti_nu_mu": "anti_nu_mu", "muon antineutrino": "anti_nu_mu",
	"nu_tau": "nu_tau", "tau neutrino": "nu_tau",
	"anti_nu_tau": "anti_nu_tau", "tau antineutrino": "anti_nu_tau",
	"alpha": "He-4 2+", "alpha particle": "He-4 2+",
	"deuteron": "H-2 1+", "triton": "H-3 1+",
	"deuterium": "H-2", "tritium": "H-3",
}
