package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/plasmalab/internal/config"
	"github.com/san-kum/plasmalab/internal/storage"
	"github.com/san-kum/plasmalab/internal/tracker"
)

var (
	trackDt         float64
	trackDuration   float64
	trackIntegrator string
	trackSaveEvery  int
	trackNoSave     bool
)

func newTrackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track [preset]",
		Short: "track particles through a field",
		Long: `Track particles using a named preset, or the track section of the
config file when no preset is given. Runs are saved under the data
directory unless --no-save is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTrack,
	}
	cmd.Flags().Float64Var(&trackDt, "dt", 0, "timestep in seconds (overrides preset)")
	cmd.Flags().Float64Var(&trackDuration, "time", 0, "duration in seconds (overrides preset)")
	cmd.Flags().StringVar(&trackIntegrator, "integrator", "", "boris, euler, rk4 or rk45")
	cmd.Flags().IntVar(&trackSaveEvery, "save-every", 0, "keep every n-th state")
	cmd.Flags().BoolVar(&trackNoSave, "no-save", false, "do not store the run")
	return cmd
}

func runTrack(cmd *cobra.Command, args []string) error {
	tc := cfg.Track.Clone()
	presetName := ""
	if len(args) == 1 {
		presetName = args[0]
		tc = config.GetPreset(presetName)
		if tc == nil {
			return fmt.Errorf("unknown preset %q, see plasmalab presets", presetName)
		}
	}
	if trackDt > 0 {
		tc.Dt = trackDt
	}
	if trackDuration > 0 {
		tc.Duration = trackDuration
	}
	if trackIntegrator != "" {
		tc.Integrator = trackIntegrator
	}
	if trackSaveEvery > 0 {
		tc.SaveEvery = trackSaveEvery
	}

	trCfg, err := tc.Tracker()
	if err != nil {
		return err
	}
	tr, err := tracker.New(trCfg)
	if err != nil {
		return err
	}
	res, err := tr.Run(cmd.Context())
	if err != nil {
		return err
	}

	species := make([]string, len(tr.Particles()))
	for i, p := range tr.Particles() {
		species[i] = p.Symbol()
	}
	printer.Printf("tracked %d particles for %d steps with %s\n", len(species), res.StepsTaken, tr.IntegratorName())
	printer.Printf("energy drift %.3e\n", res.EnergyDrift)
	for name, v := range res.Metrics {
		printer.Printf("%s %.6g\n", name, v)
	}
	if !tc.Adaptive {
		for i, sym := range species {
			if f, err := res.Frequency(i, 0); err == nil {
				printer.Printf("%s vx oscillation %.6g Hz\n", sym, f)
			}
		}
	}

	if trackNoSave {
		return nil
	}
	units := "SI"
	if tr.Dimensionless() {
		units = "dimensionless"
	}
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(storage.RunMetadata{
		Preset:      presetName,
		Species:     species,
		Units:       units,
		Field:       tc.Field,
		FieldParams: tc.FieldParams,
		Integrator:  tr.IntegratorName(),
		Dt:          tc.Dt,
		Duration:    tc.Duration,
		Columns:     columns(species),
	}, &res.Result)
	if err != nil {
		return err
	}
	logger.Info("run saved", zap.String("id", id), zap.String("dir", cfg.DataDir))
	fmt.Println("saved run", id)
	return nil
}

func columns(species []string) []string {
	names := []string{"x", "y", "z", "vx", "vy", "vz"}
	out := make([]string, 0, len(species)*len(names))
	for i := range species {
		for _, n := range names {
			out = append(out, fmt.Sprintf("p%d_%s", i, n))
		}
	}
	return out
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list tracker and plasma presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TRACK\tPARTICLES\tFIELD\tINTEG\tDT\tDURATION")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%v\t%s\t%s\t%.3gs\t%.3gs\n", name, p.Particles, p.Field, p.Integrator, p.Dt, p.Duration)
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "PLASMA\tDENSITY\tT_E\tB\tION")
			for _, name := range config.ListPlasmaPresets() {
				p, _ := config.GetPlasmaPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", name, p.Density, p.Temperature, p.Field, p.Ion)
			}
			return w.Flush()
		},
	}
}

func newRunsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := storage.New(cfg.DataDir).List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no runs found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPRESET\tTIME\tSPECIES\tFIELD\tINTEG\tSTEPS\tDRIFT")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%s\t%s\t%d\t%.2e\n",
					run.ID,
					run.Preset,
					run.Timestamp.Local().Format("2006-01-02 15:04:05"),
					run.Species,
					run.Field,
					run.Integrator,
					run.Steps,
					run.EnergyDrift,
				)
			}
			return w.Flush()
		},
	}
}

var plotParticle int

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the trajectory of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	cmd.Flags().IntVar(&plotParticle, "particle", 0, "particle index")
	return cmd
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}
	if plotParticle < 0 || plotParticle >= len(meta.Species) {
		return fmt.Errorf("run has %d particles", len(meta.Species))
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("species: %v, field: %s, integrator: %s\n", meta.Species, meta.Field, meta.Integrator)
	printer.Printf("samples: %d over %.4g s\n\n", len(states), times[len(times)-1])

	for c, name := range []string{"x", "y", "z"} {
		data := make([]float64, len(states))
		for k, s := range states {
			r := tracker.Position(s, plotParticle)
			data[k] = [3]float64{r.X, r.Y, r.Z}[c]
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s of %s vs time", name, meta.Species[plotParticle])),
		))
		fmt.Println()
	}

	speed := make([]float64, len(states))
	for k, s := range states {
		v := tracker.Velocity(s, plotParticle)
		speed[k] = math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
	}
	fmt.Println(asciigraph.Plot(speed,
		asciigraph.Height(6),
		asciigraph.Width(80),
		asciigraph.Caption("speed vs time"),
	))
	return nil
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [run_id]",
		Short: "print a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(cfg.DataDir).Export(args[0], os.Stdout)
		},
	}
}
