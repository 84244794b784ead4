package main

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/plasmalab/internal/formulary"
	"github.com/san-kum/plasmalab/internal/particles"
	"github.com/san-kum/plasmalab/internal/quantity"
)

var (
	specProbe   string
	specDensity string
	specTe      string
	specTi      string
	specIon     string
	specMin     string
	specMax     string
	specPoints  int
	specAngle   float64
	specHeight  int
)

func newSpectrumCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spectrum",
		Short: "plot a Thomson scattering spectrum",
		Example: `  plasmalab spectrum --density "1e19 m^-3" --te "10 eV"
  plasmalab spectrum --density "1e24 m^-3" --te "50 eV" --min "531 nm" --max "533 nm"`,
		Args: cobra.NoArgs,
		RunE: runSpectrum,
	}
	cmd.Flags().StringVar(&specProbe, "probe", "532 nm", "probe wavelength")
	cmd.Flags().StringVar(&specDensity, "density", "1e19 m^-3", "electron density")
	cmd.Flags().StringVar(&specTe, "te", "10 eV", "electron temperature")
	cmd.Flags().StringVar(&specTi, "ti", "10 eV", "ion temperature")
	cmd.Flags().StringVar(&specIon, "ion", "p+", "ion species")
	cmd.Flags().StringVar(&specMin, "min", "500 nm", "shortest scattered wavelength")
	cmd.Flags().StringVar(&specMax, "max", "564 nm", "longest scattered wavelength")
	cmd.Flags().IntVar(&specPoints, "points", 400, "number of wavelengths")
	cmd.Flags().Float64Var(&specAngle, "angle", 90, "scattering angle in degrees")
	cmd.Flags().IntVar(&specHeight, "height", 15, "plot height")
	return cmd
}

func runSpectrum(cmd *cobra.Command, args []string) error {
	qs := make(map[string]quantity.Quantity)
	for name, s := range map[string]string{
		"probe": specProbe, "density": specDensity, "te": specTe, "ti": specTi,
		"min": specMin, "max": specMax,
	} {
		q, err := quantity.Parse(s)
		if err != nil {
			return fmt.Errorf("--%s: %w", name, err)
		}
		qs[name] = q
	}
	if specPoints < 2 {
		return fmt.Errorf("--points must be at least 2")
	}

	lo, err := qs["min"].In(quantity.Metre)
	if err != nil {
		return fmt.Errorf("--min: %w", err)
	}
	hi, err := qs["max"].In(quantity.Metre)
	if err != nil {
		return fmt.Errorf("--max: %w", err)
	}
	grid := make([]float64, specPoints)
	floats.Span(grid, lo, hi)

	theta := specAngle * math.Pi / 180
	alpha, skw, err := formulary.ThomsonSpectralDensity(quantity.NewArray(grid, quantity.Metre), formulary.ThomsonParams{
		ProbeWavelength: qs["probe"],
		N:               qs["density"],
		Te:              []quantity.Quantity{qs["te"]},
		Ti:              []quantity.Quantity{qs["ti"]},
		Ions:            []particles.Specifier{specIon},
		ProbeDir:        r3.Vec{X: 1},
		ScatterDir:      r3.Vec{X: math.Cos(theta), Y: math.Sin(theta)},
	})
	if err != nil {
		return err
	}

	values := skw.Values()
	regime := "non-collective"
	if alpha >= 1 {
		regime = "collective"
	}
	caption := printer.Sprintf("S(k,w) [s/rad], %.4g nm to %.4g nm, alpha %.3g (%s)", lo*1e9, hi*1e9, alpha, regime)
	fmt.Println(asciigraph.Plot(values,
		asciigraph.Height(specHeight),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	))

	peak := floats.MaxIdx(values)
	printer.Printf("\npeak %.4g s/rad at %.5g nm\n", values[peak], grid[peak]*1e9)
	logger.Debug("spectrum computed", zap.Float64("alpha", alpha), zap.Int("points", specPoints))
	return nil
}
