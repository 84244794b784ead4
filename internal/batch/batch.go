// Package batch evaluates formulary functions listed in a YAML file.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/plasmalab/internal/formulary"
	"github.com/san-kum/plasmalab/internal/particles"
	"github.com/san-kum/plasmalab/internal/quantity"
	"github.com/san-kum/plasmalab/internal/validate"
)

var ErrUnknownFunction = errors.New("batch: unknown function")

// Batch is a named list of calculations.
type Batch struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// ContinueOnError keeps evaluating after a failed calculation; the
	// failures are returned together.
	ContinueOnError bool          `yaml:"continue_on_error"`
	Calculations    []Calculation `yaml:"calculations"`
}

// Calculation is one function call. Args hold quantity strings such as
// "10 eV".
type Calculation struct {
	Label     string            `yaml:"label"`
	Function  string            `yaml:"function"`
	Args      map[string]string `yaml:"args"`
	Particles []string          `yaml:"particles"`
	Hz        bool              `yaml:"hz"`
	// Units converts the result for display; empty keeps SI.
	Units   string  `yaml:"units"`
	Options Options `yaml:"options"`
	Sweep   *Sweep  `yaml:"sweep"`
}

// Options map to the formulary's functional options.
type Options struct {
	Method     string  `yaml:"method"`
	Ndim       int     `yaml:"ndim"`
	ZMean      float64 `yaml:"z_mean"`
	CoulombLog float64 `yaml:"coulomb_log"`
	Signed     bool    `yaml:"signed"`
}

// Sweep replaces one argument with Num values from Min to Max.
type Sweep struct {
	Arg   string  `yaml:"arg"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Num   int     `yaml:"num"`
	Units string  `yaml:"units"`
	Log   bool    `yaml:"log"`
}

// Result is the outcome of one calculation. Values is set for sweeps,
// Value otherwise.
type Result struct {
	Label    string
	Function string
	Value    quantity.Quantity
	Sweep    []float64
	Values   quantity.Array
	Units    string
	Err      error
}

// Display returns the scalar result in the requested units.
func (r Result) Display() (float64, error) {
	return inUnits(r.Value, r.Units)
}

func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Batch, error) {
	var b Batch
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	return &b, nil
}

// Run evaluates every calculation in order. The context is checked between
// calculations.
func Run(ctx context.Context, b *Batch, logger *zap.Logger) ([]Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	results := make([]Result, 0, len(b.Calculations))
	var errs error

	for i, c := range b.Calculations {
		if err := ctx.Err(); err != nil {
			return results, multierr.Append(errs, err)
		}
		label := c.Label
		if label == "" {
			label = fmt.Sprintf("#%d %s", i+1, c.Function)
		}
		logger.Debug("evaluating", zap.String("label", label), zap.String("function", c.Function))

		res, err := evaluate(c)
		res.Label = label
		if err != nil {
			err = fmt.Errorf("calculation %s: %w", label, err)
			res.Err = err
			results = append(results, res)
			logger.Warn("calculation failed", zap.String("label", label), zap.Error(err))
			if !b.ContinueOnError {
				return results, err
			}
			errs = multierr.Append(errs, err)
			continue
		}
		results = append(results, res)
	}

	logger.Info("batch finished",
		zap.String("name", b.Name),
		zap.Int("calculations", len(results)),
		zap.Int("failed", len(multierr.Errors(errs))))
	return results, errs
}

func evaluate(c Calculation) (Result, error) {
	res := Result{Function: c.Function, Units: c.Units}
	entry, ok := formulary.Lookup(c.Function)
	if !ok {
		return res, fmt.Errorf("%w: %q", ErrUnknownFunction, c.Function)
	}
	res.Function = entry.Name

	args, err := parseArgs(c.Args)
	if err != nil {
		return res, err
	}
	ps := make([]particles.Specifier, len(c.Particles))
	for i, p := range c.Particles {
		ps[i] = p
	}
	opts := c.Options.formulary()

	if c.Sweep != nil {
		return sweep(entry, c, args, ps, opts, res)
	}

	if c.Hz {
		res.Value, err = entry.CallHz(args, ps, opts...)
	} else {
		res.Value, err = entry.Call(args, ps, opts...)
	}
	if err != nil {
		return res, err
	}
	if _, err := inUnits(res.Value, c.Units); err != nil {
		return res, err
	}
	return res, nil
}

func sweep(entry formulary.Entry, c Calculation, args validate.Args, ps []particles.Specifier, opts []formulary.Option, res Result) (Result, error) {
	s := c.Sweep
	if s.Num < 2 {
		return res, fmt.Errorf("batch: sweep over %q needs at least 2 points", s.Arg)
	}
	if c.Hz {
		return res, fmt.Errorf("batch: sweeps are evaluated in SI: %w", validate.ErrNotImplemented)
	}
	u := quantity.Dimensionless
	if s.Units != "" {
		var err error
		if u, err = quantity.ParseUnits(s.Units); err != nil {
			return res, err
		}
	}

	res.Sweep = make([]float64, s.Num)
	if s.Log {
		if s.Min <= 0 || s.Max <= 0 {
			return res, fmt.Errorf("batch: log sweep over %q needs positive bounds", s.Arg)
		}
		floats.LogSpan(res.Sweep, s.Min, s.Max)
	} else {
		floats.Span(res.Sweep, s.Min, s.Max)
	}

	arrays := make(validate.ArrayArgs, len(args)+1)
	for name, q := range args {
		arrays[name] = quantity.Scalar(q)
	}
	arrays[s.Arg] = quantity.NewArray(res.Sweep, u)

	vals, err := entry.CallArray(arrays, ps, opts...)
	if err != nil {
		return res, err
	}
	res.Values = vals
	return res, nil
}

func parseArgs(raw map[string]string) (validate.Args, error) {
	args := make(validate.Args, len(raw))
	for name, s := range raw {
		q, err := quantity.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", name, err)
		}
		args[name] = q
	}
	return args, nil
}

func (o Options) formulary() []formulary.Option {
	var opts []formulary.Option
	if o.Method != "" {
		opts = append(opts, formulary.WithMethod(o.Method))
	}
	if o.Ndim != 0 {
		opts = append(opts, formulary.WithNdim(o.Ndim))
	}
	if o.ZMean != 0 {
		opts = append(opts, formulary.WithZMean(o.ZMean))
	}
	if o.CoulombLog != 0 {
		opts = append(opts, formulary.WithCoulombLog(o.CoulombLog))
	}
	if o.Signed {
		opts = append(opts, formulary.Signed())
	}
	return opts
}

func inUnits(q quantity.Quantity, units string) (float64, error) {
	if units == "" {
		return q.Value(), nil
	}
	u, err := quantity.ParseUnits(units)
	if err != nil {
		return 0, err
	}
	return q.In(u)
}
