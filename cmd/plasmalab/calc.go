package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/plasmalab/internal/batch"
	"github.com/san-kum/plasmalab/internal/formulary"
	"github.com/san-kum/plasmalab/internal/particles"
	"github.com/san-kum/plasmalab/internal/quantity"
	"github.com/san-kum/plasmalab/internal/validate"
)

var (
	calcArgs      []string
	calcParticles []string
	calcHz        bool
	calcUnits     string
	calcMethod    string
	calcNdim      int
)

func newCalcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc [function]",
		Short: "evaluate a formulary function",
		Example: `  plasmalab calc DebyeLength --arg T_e="10 eV" --arg n_e="1e19 m^-3"
  plasmalab calc Wc --arg B="0.1 T" --particle p+ --hz`,
		Args: cobra.ExactArgs(1),
		RunE: runCalc,
	}
	cmd.Flags().StringArrayVarP(&calcArgs, "arg", "a", nil, `argument as name="value unit"`)
	cmd.Flags().StringArrayVarP(&calcParticles, "particle", "p", nil, "particle specifier, repeat for two-particle functions")
	cmd.Flags().BoolVar(&calcHz, "hz", false, "return an angular frequency in Hz")
	cmd.Flags().StringVarP(&calcUnits, "units", "u", "", "display units, default SI")
	cmd.Flags().StringVar(&calcMethod, "method", "", "thermal speed method")
	cmd.Flags().IntVar(&calcNdim, "ndim", 0, "thermal speed dimensions")
	return cmd
}

func runCalc(cmd *cobra.Command, args []string) error {
	entry, ok := formulary.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown function %q, see plasmalab functions", args[0])
	}

	vals, err := parseArgFlags(calcArgs)
	if err != nil {
		return err
	}
	ps := make([]particles.Specifier, len(calcParticles))
	for i, p := range calcParticles {
		ps[i] = p
	}
	var opts []formulary.Option
	if calcMethod != "" {
		opts = append(opts, formulary.WithMethod(calcMethod))
	}
	if calcNdim != 0 {
		opts = append(opts, formulary.WithNdim(calcNdim))
	}

	var q quantity.Quantity
	if calcHz {
		q, err = entry.CallHz(vals, ps, opts...)
	} else {
		q, err = entry.Call(vals, ps, opts...)
	}
	if err != nil {
		return err
	}

	if calcUnits == "" {
		printer.Printf("%s = %s\n", entry.Name, q)
		return nil
	}
	u, err := quantity.ParseUnits(calcUnits)
	if err != nil {
		return err
	}
	v, err := q.In(u)
	if err != nil {
		return err
	}
	printer.Printf("%s = %.6g %s\n", entry.Name, v, u.Symbol)
	return nil
}

// parseArgFlags turns name=value flags into formulary arguments.
func parseArgFlags(flags []string) (validate.Args, error) {
	out := make(validate.Args, len(flags))
	for _, f := range flags {
		name, raw, ok := strings.Cut(f, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("argument %q is not name=value", f)
		}
		q, err := quantity.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", name, err)
		}
		out[strings.TrimSpace(name)] = q
	}
	return out, nil
}

func newFunctionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "functions",
		Short: "list formulary functions and their aliases",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tALIASES\tARGS\tOPTIONAL\tPARTICLES\tHZ\tDESCRIPTION")
			for _, e := range formulary.Registry {
				hz := ""
				if e.HasHz {
					hz = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
					e.Name,
					strings.Join(e.Aliases, ","),
					strings.Join(e.Args, ","),
					strings.Join(e.Optional, ","),
					e.Particles,
					hz,
					e.Doc,
				)
			}
			return w.Flush()
		},
	}
}

func newBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch [file.yaml]",
		Short: "evaluate a YAML list of calculations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := batch.LoadBatch(args[0])
			if err != nil {
				return err
			}
			results, runErr := batch.Run(cmd.Context(), b, logger.Named("batch"))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "LABEL\tFUNCTION\tRESULT")
			for _, r := range results {
				fmt.Fprintf(w, "%s\t%s\t%s\n", r.Label, r.Function, formatResult(r))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			return runErr
		},
	}
}

func formatResult(r batch.Result) string {
	switch {
	case r.Err != nil:
		return "error: " + r.Err.Error()
	case r.Sweep != nil:
		return printer.Sprintf("%d points, %s", r.Values.Len(), r.Values)
	}
	v, err := r.Display()
	if err != nil {
		return "error: " + err.Error()
	}
	if r.Units == "" {
		return r.Value.String()
	}
	return printer.Sprintf("%.6g %s", v, r.Units)
}
