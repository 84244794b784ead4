package metrics

import (
	"math"

	"github.com/san-kum/plasmalab/internal/dynamo"
)

// Confinement is the fraction of observed states in which every particle
// lies within radius of the origin. The state is read as blocks of stride
// values whose first three entries are a position.
type Confinement struct {
	name       string
	radius     float64
	stride     int
	violations int
	samples    int
}

func NewConfinement(radius float64, stride int) *Confinement {
	if stride < 3 {
		stride = 3
	}
	return &Confinement{
		name:   "confinement",
		radius: radius,
		stride: stride,
	}
}

func (c *Confinement) Name() string {
	return c.name
}

func (c *Confinement) Observe(x dynamo.State, t float64) {
	c.samples++
	for o := 0; o+2 < len(x); o += c.stride {
		if math.Sqrt(x[o]*x[o]+x[o+1]*x[o+1]+x[o+2]*x[o+2]) > c.radius {
			c.violations++
			return
		}
	}
}

func (c *Confinement) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Confinement) Reset() {
	c.violations = 0
	c.samples = 0
}
