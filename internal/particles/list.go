package particles

import (
	"fmt"
	"strings"

	"github.com/san-kum/plasmalab/internal/quantity"
)

// List is an ordered collection of resolved particles.
type List struct {
	items []Like
}

// NewList resolves every specifier. The first invalid one aborts.
func NewList(specs ...Specifier) (*List, error) {
	l := &List{items: make([]Like, 0, len(specs))}
	for i, s := range specs {
		p, err := Resolve(s)
		if err != nil {
			return nil, fmt.Errorf("particle %d: %w", i, err)
		}
		l.items = append(l.items, p)
	}
	return l, nil
}

func (l *List) Len() int { return len(l.items) }

func (l *List) At(i int) Like { return l.items[i] }

// Particles returns a copy of the underlying slice.
func (l *List) Particles() []Like {
	return append([]Like(nil), l.items...)
}

// Append resolves and adds more particles.
func (l *List) Append(specs ...Specifier) error {
	more, err := NewList(specs...)
	if err != nil {
		return err
	}
	l.items = append(l.items, more.items...)
	return nil
}

// Symbols returns the symbol of every particle.
func (l *List) Symbols() []string {
	out := make([]string, len(l.items))
	for i, p := range l.items {
		out[i] = p.Symbol()
	}
	return out
}

// Masses returns the masses aligned by index.
func (l *List) Masses() (quantity.Array, error) {
	return l.collect((Like).Mass)
}

// Charges returns the charges aligned by index.
func (l *List) Charges() (quantity.Array, error) {
	return l.collect((Like).Charge)
}

func (l *List) collect(get func(Like) (quantity.Quantity, error)) (quantity.Array, error) {
	qs := make([]quantity.Quantity, len(l.items))
	for i, p := range l.items {
		q, err := get(p)
		if err != nil {
			return quantity.Array{}, fmt.Errorf("particle %d (%s): %w", i, p.Symbol(), err)
		}
		qs[i] = q
	}
	return quantity.Stack(qs...)
}

func (l *List) String() string {
	return "ParticleList(" + strings.Join(l.Symbols(), ", ") + ")"
}
