// Package tracker follows charged particles through electric and magnetic
// fields.
//
// Particles are resolved through the particles package and only their mass
// and charge are used. Either every particle carries SI units or every
// particle is dimensionless; positions, velocities and fields are then read
// in the same system. Motion is integrated as a dynamo.System whose state
// holds x, y, z, vx, vy, vz for each particle in turn. The default stepper
// is the Boris pusher; the generic euler, rk4 and rk45 integrators can be
// selected by name.
package tracker
