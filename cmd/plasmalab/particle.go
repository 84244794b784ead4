package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/plasmalab/internal/particles"
)

var particleJSON bool

func newParticleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "particle [specifier]",
		Short:   "show a resolved particle",
		Example: `  plasmalab particle "He-4 2+"` + "\n" + `  plasmalab particle D+ --json`,
		Args:    cobra.ExactArgs(1),
		RunE:    showParticle,
	}
	cmd.Flags().BoolVar(&particleJSON, "json", false, "print the JSON form")
	return cmd
}

func showParticle(cmd *cobra.Command, args []string) error {
	p, err := particles.Resolve(args[0])
	if err != nil {
		return err
	}
	if particleJSON {
		return particles.DumpParticle(os.Stdout, p)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	row := func(name string, v any, err error) {
		if err != nil {
			return
		}
		fmt.Fprintf(w, "%s\t%v\n", name, v)
	}

	row("symbol", p.Symbol(), nil)
	m, err := p.Mass()
	row("mass", m, err)
	q, err := p.Charge()
	row("charge", q, err)

	if pp, ok := p.(*particles.Particle); ok {
		name, err := pp.ElementName()
		row("element", name, err)
		iso, err := pp.IsotopeName()
		row("isotope", iso, err)
		z, err := pp.AtomicNumber()
		row("atomic number", z, err)
		a, err := pp.MassNumber()
		row("mass number", a, err)
		zc, err := pp.ChargeNumber()
		row("charge number", zc, err)
		roman, err := pp.RomanSymbol()
		row("roman symbol", roman, err)
		spin, err := pp.Spin()
		row("spin", spin, err)
		b, err := pp.BaryonNumber()
		row("baryon number", b, err)
		l, err := pp.LeptonNumber()
		row("lepton number", l, err)
		be, err := pp.BindingEnergy()
		row("binding energy", be, err)
		me, err := pp.MassEnergy()
		row("mass energy", me, err)
		pt, err := pp.PeriodicTable()
		row("periodic table", fmt.Sprintf("group %d, period %d, block %s, %s", pt.Group, pt.Period, pt.Block, pt.Category), err)
		if el, err := pp.Element(); err == nil {
			if stable, err := particles.StableIsotopes(el); err == nil {
				row("stable isotopes", fmt.Sprint(stable), nil)
			}
		}
	}
	row("categories", strings.Join(p.Categories(), ", "), nil)
	return w.Flush()
}
