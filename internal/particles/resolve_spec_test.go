package particles

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func mustResolve(spec Specifier) Like {
	GinkgoHelper()
	p, err := Resolve(spec)
	Expect(err).NotTo(HaveOccurred())
	return p
}

var _ = Describe("Resolve", func() {
	DescribeTable("equivalent specifiers resolve to the same particle",
		func(canonical string, aliases []string) {
			want := mustResolve(canonical).(*Particle)
			for _, a := range aliases {
				got := mustResolve(a)
				Expect(want.Equal(got)).To(BeTrue(), "%q resolved to %s, want %s", a, got.Symbol(), want.Symbol())
			}
		},
		Entry("hydrogen", "H", []string{"hydrogen", "hYdRoGeN"}),
		Entry("proton", "p+", []string{"proton", "H-1+", "H-1 1+", "H-1 +1", "p"}),
		Entry("deuterium", "D", []string{"H-2", "Hydrogen-2", "deuterium"}),
		Entry("tritium", "T", []string{"H-3", "tritium"}),
		Entry("alpha", "alpha", []string{"He-4++", "He-4 2+", "He-4 +2", "He-4 III"}),
		Entry("electron", "e-", []string{"electron", "e"}),
		Entry("positron", "e+", []string{"positron"}),
		Entry("antiproton", "p-", []string{"antiproton"}),
		Entry("neutron", "n", []string{"n-1", "neutron", "NEUTRON"}),
		Entry("muon", "muon", []string{"mu-", "muon-"}),
		Entry("tau", "tau", []string{"tau-"}),
		Entry("iron", "Fe", []string{"iron", "fe"}),
	)

	DescribeTable("canonical symbols",
		func(spec string, want string) {
			Expect(mustResolve(spec).Symbol()).To(Equal(want))
		},
		Entry("proton", "proton", "p+"),
		Entry("D+", "D+", "D 1+"),
		Entry("iron-56", "iron-56", "Fe-56"),
		Entry("Fe 26+", "Fe 26+", "Fe 26+"),
		Entry("He-4 III", "He-4 III", "He-4 2+"),
		Entry("Cl-", "Cl-", "Cl 1-"),
		Entry("Ar +1", "Ar +1", "Ar 1+"),
		Entry("  e-  ", "  e-  ", "e-"),
	)

	It("resolves every atomic number to its element and back", func() {
		for z := 1; z <= 118; z++ {
			p := mustResolve(z).(*Particle)
			got, err := p.AtomicNumber()
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(z))
			Expect(p.Symbol()).To(Equal(elements[z].symbol), "Z=%d", z)

			again := mustResolve(p.Symbol())
			Expect(p.Equal(again)).To(BeTrue(), "Z=%d: %s resolved to %s", z, p.Symbol(), again.Symbol())
		}
	})

	DescribeTable("invalid specifiers",
		func(spec any, want error) {
			_, err := Resolve(spec)
			Expect(err).To(MatchError(want))
		},
		Entry("unknown string", "a", ErrInvalidParticle),
		Entry("empty string", "", ErrInvalidParticle),
		Entry("heavy gold", "Au-818", ErrInvalidIsotope),
		Entry("light gold", "Au-12", ErrInvalidIsotope),
		Entry("fewer nucleons than protons", "He-1", ErrInvalidIsotope),
		Entry("overionized iron", "Fe 27+", ErrCharge),
		Entry("zero atomic number", 0, ErrInvalidParticle),
		Entry("atomic number past oganesson", 119, ErrInvalidParticle),
		Entry("unsupported type", 2.5, ErrInvalidParticle),
		Entry("bad roman numeral", "He IIII", ErrInvalidParticle),
		Entry("isotope of deuterium", "D-2", ErrInvalidParticle),
	)

	It("resolves atomic numbers to elements", func() {
		Expect(mustResolve(26).Symbol()).To(Equal("Fe"))
		Expect(mustResolve(int64(2)).Symbol()).To(Equal("He"))
	})

	It("returns particle values unchanged", func() {
		p := mustResolve("Fe 5+")
		Expect(mustResolve(p)).To(BeIdenticalTo(p))
	})

	It("applies mass number and charge options", func() {
		p, err := New("Fe", WithMassNumber(56), WithCharge(17))
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Symbol()).To(Equal("Fe-56 17+"))

		_, err = New("Fe-56", WithMassNumber(54))
		Expect(err).To(MatchError(ErrInvalidParticle))

		_, err = New("e-", WithCharge(1))
		Expect(err).To(MatchError(ErrInvalidParticle))
	})
})

var _ = Describe("Particle", func() {
	It("reports charge only when a charge state is known", func() {
		_, err := mustResolve("He-4").Charge()
		Expect(err).To(MatchError(ErrCharge))

		q, err := Electron.Charge()
		Expect(err).NotTo(HaveOccurred())
		Expect(q.Value()).To(BeNumerically("~", -1.602176634e-19, 1e-30))
	})

	DescribeTable("ionization failures",
		func(spec string, want error) {
			p, err := New(spec)
			Expect(err).NotTo(HaveOccurred())
			_, err = p.Ionize(1)
			Expect(err).To(MatchError(want))
		},
		Entry("neutral element without charge", "Fe", ErrCharge),
		Entry("fully stripped iron", "Fe 26+", ErrInvalidIon),
		Entry("electron", "e-", ErrInvalidElement),
	)

	It("ionizes and recombines", func() {
		p := MustNew("Fe 4+")
		up, err := p.Ionize(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(up.Equal(MustNew("Fe 5+"))).To(BeTrue())

		down, err := up.Recombine(2)
		Expect(err).NotTo(HaveOccurred())
		Expect(down.Symbol()).To(Equal("Fe 3+"))

		_, err = p.Ionize(0)
		Expect(err).To(MatchError(ErrCount))

		hydrogen, err := MustNew("H 0+").Ionize(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(hydrogen.Symbol()).To(Equal("H 1+"))
	})

	DescribeTable("antiparticles",
		func(a, b string) {
			pa, pb := MustNew(a), MustNew(b)
			anti, err := pa.Antiparticle()
			Expect(err).NotTo(HaveOccurred())
			Expect(anti.Equal(pb)).To(BeTrue())
			back, err := anti.Antiparticle()
			Expect(err).NotTo(HaveOccurred())
			Expect(back.Equal(pa)).To(BeTrue())
		},
		Entry("p+", "p+", "p-"),
		Entry("n", "n", "antineutron"),
		Entry("e-", "e-", "e+"),
		Entry("mu-", "mu-", "mu+"),
		Entry("tau-", "tau-", "tau+"),
		Entry("nu_e", "nu_e", "anti_nu_e"),
		Entry("nu_mu", "nu_mu", "anti_nu_mu"),
		Entry("nu_tau", "nu_tau", "anti_nu_tau"),
	)

	Describe("categories", func() {
		It("combines require, any-of and exclude", func() {
			q := CategoryQuery{AnyOf: []string{"ion"}, Exclude: []string{"lepton"}}
			ok, err := Proton.IsCategory(q)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())

			ok, err = Electron.IsCategory(q)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())

			ok, err = Proton.IsCategory(Require("element", "isotope", "ion", "fermion", "charged"))
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
		})

		It("rejects unknown and contradictory categories", func() {
			_, err := Proton.IsCategory(Require("quark"))
			Expect(err).To(MatchError(ErrCategory))

			_, err = Proton.IsCategory(CategoryQuery{Require: []string{"ion"}, Exclude: []string{"ion"}})
			Expect(err).To(MatchError(ErrCategory))
		})
	})
})
