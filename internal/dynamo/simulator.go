package dynamo

import (
	"context"
	"errors"
	"fmt"
	"math"
)

type Simulator struct {
	sys        System
	integrator Integrator
	metrics    []Metric
	observers  []Observer
}

func New(sys System, integrator Integrator) *Simulator {
	return &Simulator{
		sys:        sys,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates from x0 for cfg.Duration. The context is checked once per
// step; on cancellation the partial result is returned with ctx.Err().
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if dim := s.sys.StateDim(); len(x0) != dim {
		return nil, fmt.Errorf("%w: state has %d values, system wants %d", ErrDimensionMismatch, len(x0), dim)
	}
	saveEvery := max(cfg.SaveEvery, 1)

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	result := &Result{
		States:  make([]State, 0, steps/saveEvery+2),
		Times:   make([]float64, 0, steps/saveEvery+2),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	initialEnergy := s.computeEnergy(x)
	saved := true

	for i := 0; s.more(i, steps, t, cfg); i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(x, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, t)
		}

		var newX State
		used := dt
		if cfg.Adaptive {
			var err error
			used = math.Min(dt, cfg.Duration-t)
			newX, used, dt, err = s.adaptiveStep(x, t, used, cfg)
			if err != nil {
				return result, &SimulationError{Step: i, Time: t, State: x.Clone(), Wrapped: err}
			}
		} else {
			newX = s.integrator.Step(s.sys, x, t, dt)
		}

		if cfg.ValidateState && !newX.IsValid() {
			return result, &SimulationError{Step: i, Time: t, State: x.Clone(), Wrapped: ErrInvalidState}
		}

		x = newX
		if cfg.Adaptive {
			t += used
		} else {
			t = float64(i+1) * cfg.Dt
		}
		result.StepsTaken++

		saved = result.StepsTaken%saveEvery == 0
		if saved {
			result.States = append(result.States, x.Clone())
			result.Times = append(result.Times, t)
		}
	}
	if !saved {
		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)
	}

	for _, m := range s.metrics {
		m.Observe(x, t)
	}

	finalEnergy := s.computeEnergy(x)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) more(i, steps int, t float64, cfg Config) bool {
	if cfg.Adaptive {
		return cfg.Duration-t > 1e-12*cfg.Duration
	}
	return i < steps
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrParameterBounds, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrParameterBounds, cfg.Duration)
	}
	if cfg.Adaptive && cfg.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance must be positive for adaptive stepping", ErrParameterBounds)
	}
	if cfg.Adaptive && (cfg.MinDt <= 0 || cfg.MaxDt < cfg.MinDt) {
		return fmt.Errorf("%w: need 0 < min dt <= max dt, got %g and %g", ErrParameterBounds, cfg.MinDt, cfg.MaxDt)
	}
	return nil
}

func (s *Simulator) computeEnergy(x State) float64 {
	if ec, ok := s.sys.(Hamiltonian); ok {
		return ec.Energy(x)
	}
	return 0
}

// adaptiveStep returns the new state, the dt actually taken and the dt to
// try next.
func (s *Simulator) adaptiveStep(x State, t, dt float64, cfg Config) (State, float64, float64, error) {
	if adaptive, ok := s.integrator.(AdaptiveIntegrator); ok {
		for {
			newX, next, err := adaptive.StepAdaptive(s.sys, x, t, dt, cfg.Tolerance)
			switch {
			case errors.Is(err, ErrStepRejected):
				if next < cfg.MinDt {
					return nil, 0, 0, fmt.Errorf("%w: dt %g", ErrStepTooSmall, next)
				}
				dt = next
				continue
			case err != nil:
				return nil, 0, 0, err
			}
			return newX, dt, math.Min(next, cfg.MaxDt), nil
		}
	}

	// Step doubling for fixed-step integrators.
	dx := s.sys.Derive(x, t).Clone()
	for {
		x1 := s.integrator.Step(s.sys, x, t, dt)
		xHalf := s.integrator.Step(s.sys, x, t, dt/2)
		x2 := s.integrator.Step(s.sys, xHalf, t+dt/2, dt/2)

		err := ErrorRatio(s.sys, x, dx, x1.Sub(x2), dt)

		if err > cfg.Tolerance {
			if dt/2 < cfg.MinDt {
				return nil, 0, 0, fmt.Errorf("%w: dt %g", ErrStepTooSmall, dt/2)
			}
			dt /= 2
			continue
		}

		next := dt
		if err < cfg.Tolerance/10 {
			next = math.Min(dt*2, cfg.MaxDt)
		}
		return x2, dt, next, nil
	}
}
