// Package dynamo provides the simulation primitives shared by the particle
// tracker: state vectors, ODE systems, integrators and the Simulator that
// drives them.
//
//   - [State]: flat state vector
//   - [System]: ODE right-hand side dX/dt = f(X, t)
//   - [Integrator]: fixed-step numerical integrator
//   - [Simulator]: runs a system from an initial state
//
// # Example
//
//	sys := tracker.NewLorentz(bodies, fields)
//	sim := dynamo.New(sys, integrators.NewRK4())
//	result, err := sim.Run(ctx, x0, cfg)
//
// Simulator instances are not safe for concurrent use.
package dynamo
