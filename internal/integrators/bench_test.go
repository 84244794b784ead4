package integrators

import (
	"testing"

	"github.com/san-kum/plasmalab/internal/dynamo"
)

func BenchmarkEuler(b *testing.B) {
	integrator := NewEuler()
	sys := gyration{w: 1}
	x := dynamo.State{0, 1, 1, 0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(sys, x, 0, 0.01)
	}
}

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4()
	sys := gyration{w: 1}
	x := dynamo.State{0, 1, 1, 0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(sys, x, 0, 0.01)
	}
}

func BenchmarkRK45(b *testing.B) {
	integrator := NewRK45()
	sys := gyration{w: 1}
	x := dynamo.State{0, 1, 1, 0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(sys, x, 0, 0.01)
	}
}
