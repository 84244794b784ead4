package tracker

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/plasmalab/internal/constants"
	"github.com/san-kum/plasmalab/internal/dynamo"
	"github.com/san-kum/plasmalab/internal/metrics"
	"github.com/san-kum/plasmalab/internal/particles"
	"github.com/san-kum/plasmalab/internal/quantity"
	"github.com/san-kum/plasmalab/internal/validate"
)

// Config describes a tracking run. Positions and Velocities are indexed
// like Particles and are read in SI units unless every particle is
// dimensionless.
type Config struct {
	Particles  []particles.Specifier
	Positions  []r3.Vec
	Velocities []r3.Vec
	Fields     Fields

	// Integrator names a stepper from Integrators; empty selects boris.
	Integrator string
	Dt         float64
	Duration   float64
	SaveEvery  int
	Adaptive   bool
	Tolerance  float64

	// ConfinementRadius enables the confinement metric when positive.
	ConfinementRadius float64
}

// Tracker holds resolved particles and the equation of motion for a run.
type Tracker struct {
	cfg           Config
	particles     []particles.Like
	system        *Lorentz
	integrator    dynamo.Integrator
	integName     string
	dimensionless bool
}

// New resolves the particles in cfg and checks the initial conditions.
func New(cfg Config) (*Tracker, error) {
	n := len(cfg.Particles)
	if n == 0 {
		return nil, ErrNoParticles
	}
	if len(cfg.Positions) != n || len(cfg.Velocities) != n {
		return nil, fmt.Errorf("%w: %d particles, %d positions, %d velocities",
			ErrLengthMismatch, n, len(cfg.Positions), len(cfg.Velocities))
	}

	name := cfg.Integrator
	if name == "" {
		name = DefaultIntegrator
	}
	integ, err := NewIntegrator(name)
	if err != nil {
		return nil, err
	}

	tr := &Tracker{cfg: cfg, integrator: integ, integName: name}
	bodies := make([]Body, n)
	for i, spec := range cfg.Particles {
		p, err := particles.Resolve(spec)
		if err != nil {
			return nil, fmt.Errorf("tracker: particle %d: %w", i, err)
		}
		body, dimensionless, err := bodyOf(p)
		if err != nil {
			return nil, fmt.Errorf("particle %d (%s): %w", i, p.Symbol(), err)
		}
		if i == 0 {
			tr.dimensionless = dimensionless
		} else if dimensionless != tr.dimensionless {
			return nil, fmt.Errorf("%w: particle %d is %s", ErrMixedUnits, i, p.Symbol())
		}
		if !finite(cfg.Positions[i]) || !finite(cfg.Velocities[i]) {
			return nil, fmt.Errorf("%w: particle %d", ErrInvalidState, i)
		}
		if !dimensionless {
			if speed := r3.Norm(cfg.Velocities[i]); speed >= constants.C {
				return nil, &validate.RelativityError{Func: "tracker", Speed: speed}
			}
		}
		tr.particles = append(tr.particles, p)
		bodies[i] = body
	}
	tr.system = NewLorentz(bodies, cfg.Fields)
	return tr, nil
}

func bodyOf(p particles.Like) (Body, bool, error) {
	m, err := p.Mass()
	if err != nil {
		return Body{}, false, err
	}
	q, err := p.Charge()
	if err != nil {
		return Body{}, false, err
	}
	dimensionless := m.IsDimensionless()
	if !dimensionless && !m.Compatible(quantity.Kilogram) {
		return Body{}, false, fmt.Errorf("%w: mass %s is not a mass", ErrInvalidMass, m)
	}
	if v := m.Value(); math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return Body{}, false, fmt.Errorf("%w: got %s", ErrInvalidMass, m)
	}
	if v := q.Value(); math.IsNaN(v) || math.IsInf(v, 0) {
		return Body{}, false, fmt.Errorf("%w: got %s", ErrInvalidCharge, q)
	}
	return Body{Mass: m.Value(), Charge: q.Value()}, dimensionless, nil
}

// System returns the equation of motion.
func (tr *Tracker) System() *Lorentz { return tr.system }

// Particles returns the resolved particles in input order.
func (tr *Tracker) Particles() []particles.Like { return tr.particles }

// Dimensionless reports whether the run uses normalized units.
func (tr *Tracker) Dimensionless() bool { return tr.dimensionless }

// IntegratorName returns the selected stepper.
func (tr *Tracker) IntegratorName() string { return tr.integName }

// InitialState packs the configured positions and velocities.
func (tr *Tracker) InitialState() dynamo.State {
	x := make(dynamo.State, tr.system.StateDim())
	for i := range tr.particles {
		setParticle(x, i, tr.cfg.Positions[i], tr.cfg.Velocities[i])
	}
	return x
}

// Run integrates the particles for cfg.Duration. Cancelling ctx stops the
// run between steps and returns the partial result with ctx.Err().
func (tr *Tracker) Run(ctx context.Context) (*Result, error) {
	sim := dynamo.New(tr.system, tr.integrator)
	sim.AddMetric(metrics.NewEnergy(tr.system))
	sim.AddMetric(metrics.NewEnergyDrift(tr.system))
	if tr.cfg.ConfinementRadius > 0 {
		sim.AddMetric(metrics.NewConfinement(tr.cfg.ConfinementRadius, stride))
	}

	cfg := dynamo.DefaultConfig()
	cfg.Dt = tr.cfg.Dt
	cfg.Duration = tr.cfg.Duration
	cfg.SaveEvery = tr.cfg.SaveEvery
	cfg.Adaptive = tr.cfg.Adaptive
	if tr.cfg.Tolerance > 0 {
		cfg.Tolerance = tr.cfg.Tolerance
	}
	cfg.MinDt = tr.cfg.Dt * 1e-6
	cfg.MaxDt = tr.cfg.Dt * 100

	logger.Debug("tracker run starting",
		zap.Int("particles", len(tr.particles)),
		zap.String("integrator", tr.integName),
		zap.Float64("dt", cfg.Dt),
		zap.Float64("duration", cfg.Duration),
		zap.Bool("adaptive", cfg.Adaptive))
	start := time.Now()

	res, err := sim.Run(ctx, tr.InitialState(), cfg)
	if res == nil {
		return nil, err
	}
	out := &Result{Result: *res, Particles: len(tr.particles)}

	fields := []zap.Field{
		zap.Int("steps", res.StepsTaken),
		zap.Duration("elapsed", time.Since(start)),
		zap.Float64("energy_drift", res.EnergyDrift),
	}
	if err != nil {
		logger.Debug("tracker run stopped", append(fields, zap.Error(err))...)
		return out, err
	}
	logger.Debug("tracker run finished", fields...)
	return out, nil
}

// Result is a finished or partial tracking run.
type Result struct {
	dynamo.Result
	Particles int
}

// Position returns the position of particle i at saved sample k.
func (r *Result) Position(k, i int) r3.Vec { return Position(r.States[k], i) }

// Velocity returns the velocity of particle i at saved sample k.
func (r *Result) Velocity(k, i int) r3.Vec { return Velocity(r.States[k], i) }

// Trajectory returns the saved positions of particle i.
func (r *Result) Trajectory(i int) []r3.Vec {
	out := make([]r3.Vec, len(r.States))
	for k := range r.States {
		out[k] = r.Position(k, i)
	}
	return out
}
