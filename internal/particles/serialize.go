package particles

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/san-kum/plasmalab/internal/quantity"
)

const (
	envelopeKey = "plasmapy_particle"
	classModule = "plasmapy.particles.particle_class"
)

type envelope struct {
	Particle *payload `json:"plasmapy_particle"`
}

type payload struct {
	Type        string    `json:"type"`
	Module      string    `json:"module"`
	DateCreated string    `json:"date_created"`
	Init        *initArgs `json:"__init__"`
}

type initArgs struct {
	Args   []any          `json:"args"`
	Kwargs map[string]any `json:"kwargs"`
}

func marshalEnvelope(kind string, args []any, kwargs map[string]any) ([]byte, error) {
	if args == nil {
		args = []any{}
	}
	if kwargs == nil {
		kwargs = map[string]any{}
	}
	return json.Marshal(envelope{Particle: &payload{
		Type:        kind,
		Module:      classModule,
		DateCreated: time.Now().UTC().Format("2006-01-02 15:04:05 MST"),
		Init:        &initArgs{Args: args, Kwargs: kwargs},
	}})
}

func (p *Particle) MarshalJSON() ([]byte, error) {
	return marshalEnvelope("Particle", []any{p.symbol}, nil)
}

func (c *CustomParticle) MarshalJSON() ([]byte, error) {
	kwargs := map[string]any{
		"mass":   c.mass.String(),
		"charge": c.charge.String(),
	}
	if c.symbol != "" {
		kwargs["symbol"] = c.symbol
	}
	if cats := c.Categories(); len(cats) > 1 {
		kwargs["categories"] = cats
	}
	return marshalEnvelope("CustomParticle", nil, kwargs)
}

func (d *DimensionlessParticle) MarshalJSON() ([]byte, error) {
	kwargs := map[string]any{
		"mass":   jsonNumber(d.mass),
		"charge": jsonNumber(d.charge),
	}
	if d.symbol != "" {
		kwargs["symbol"] = d.symbol
	}
	return marshalEnvelope("DimensionlessParticle", nil, kwargs)
}

// jsonNumber keeps finite values numeric. NaN and the infinities, which JSON
// cannot represent, are written as the strings "NaN", "Infinity" and
// "-Infinity".
func jsonNumber(v float64) any {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return v
}

// quoteNonFinite rewrites the bare NaN, Infinity and -Infinity tokens that
// Python's json module emits into strings so encoding/json can decode them.
func quoteNonFinite(data []byte) []byte {
	out := make([]byte, 0, len(data))
	inString, escaped := false, false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			out = append(out, c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			out = append(out, c)
			continue
		}
		matched := false
		for _, tok := range []string{"NaN", "Infinity", "-Infinity"} {
			if bytes.HasPrefix(data[i:], []byte(tok)) {
				out = append(out, '"')
				out = append(out, tok...)
				out = append(out, '"')
				i += len(tok) - 1
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, c)
		}
	}
	return out
}

// LoadsParticle decodes a particle from its JSON envelope.
func LoadsParticle(data []byte) (Like, error) {
	var env envelope
	if err := json.Unmarshal(quoteNonFinite(data), &env); err != nil {
		return nil, fmt.Errorf("%w: decode particle json: %v", ErrInvalidElement, err)
	}
	if env.Particle == nil {
		return nil, fmt.Errorf("%w: missing %q object", ErrInvalidElement, envelopeKey)
	}
	pl := env.Particle
	if pl.Type == "" {
		return nil, fmt.Errorf("%w: particle json has no type", ErrInvalidElement)
	}
	if pl.Init == nil {
		return nil, fmt.Errorf("%w: particle json has no __init__", ErrInvalidElement)
	}

	switch pl.Type {
	case "Particle":
		if len(pl.Init.Args) != 1 {
			return nil, fmt.Errorf("%w: Particle takes one argument, got %d", ErrInvalidElement, len(pl.Init.Args))
		}
		sym, ok := pl.Init.Args[0].(string)
		if !ok {
			if f, isNum := pl.Init.Args[0].(float64); isNum && f == math.Trunc(f) {
				return Resolve(int(f))
			}
			return nil, fmt.Errorf("%w: Particle argument %v", ErrInvalidElement, pl.Init.Args[0])
		}
		return Resolve(sym)
	case "CustomParticle":
		return loadCustom(pl.Init.Kwargs)
	case "DimensionlessParticle":
		return loadDimensionless(pl.Init.Kwargs)
	}
	return nil, fmt.Errorf("%w: unknown particle type %q", ErrInvalidElement, pl.Type)
}

func loadCustom(kwargs map[string]any) (Like, error) {
	var opts []CustomOption
	for k, v := range kwargs {
		switch k {
		case "mass", "charge":
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%w: custom %s must be a string, got %v", ErrInvalidParticle, k, v)
			}
			q, err := quantity.Parse(s)
			if err != nil {
				return nil, fmt.Errorf("%w: custom %s %q: %v", ErrInvalidParticle, k, s, err)
			}
			if k == "mass" {
				opts = append(opts, CustomMass(q))
			} else {
				opts = append(opts, CustomCharge(q))
			}
		case "symbol":
			if s, ok := v.(string); ok {
				opts = append(opts, CustomSymbol(s))
			}
		case "categories":
			list, _ := v.([]any)
			cats := make([]string, 0, len(list))
			for _, c := range list {
				if s, ok := c.(string); ok && s != "custom" {
					cats = append(cats, s)
				}
			}
			opts = append(opts, CustomCategories(cats...))
		default:
			return nil, fmt.Errorf("%w: unknown argument %q", ErrInvalidParticle, k)
		}
	}
	return NewCustomParticle(opts...)
}

func loadDimensionless(kwargs map[string]any) (Like, error) {
	mass, charge := math.NaN(), math.NaN()
	symbol := ""
	for k, v := range kwargs {
		if k == "symbol" {
			symbol, _ = v.(string)
			continue
		}
		f, err := floatArg(v)
		if err != nil {
			return nil, fmt.Errorf("%w: dimensionless %s: %v", ErrInvalidParticle, k, err)
		}
		switch k {
		case "mass":
			mass = f
		case "charge":
			charge = f
		default:
			return nil, fmt.Errorf("%w: unknown argument %q", ErrInvalidParticle, k)
		}
	}
	d, err := NewDimensionlessParticle(mass, charge)
	if err != nil {
		return nil, err
	}
	if symbol != "" {
		d = d.WithSymbol(symbol)
	}
	return d, nil
}

func floatArg(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case string:
		return strconv.ParseFloat(x, 64)
	case nil:
		return math.NaN(), nil
	}
	return 0, fmt.Errorf("unsupported value %v", v)
}

// LoadParticle reads a particle envelope from r.
func LoadParticle(r io.Reader) (Like, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read particle json: %w", err)
	}
	return LoadsParticle(data)
}

// DumpParticle writes p as an indented JSON envelope.
func DumpParticle(w io.Writer, p Like) error {
	data, err := p.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode particle json: %w", err)
	}
	var pretty any
	if err := json.Unmarshal(data, &pretty); err != nil {
		return fmt.Errorf("encode particle json: %w", err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(pretty)
}
