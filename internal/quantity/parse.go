package quantity

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Parse reads "<number> [unit expression]", e.g. "5 eV", "1e19 m^-3",
// "2.5 km/s" or "nan C". A number with no unit yields a bare value.
func Parse(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Quantity{}, fmt.Errorf("%w: empty quantity", ErrParse)
	}
	num, rest := splitNumber(s)
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("%w: number %q in %q", ErrParse, num, s)
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return Bare(v), nil
	}
	u, err := ParseUnits(rest)
	if err != nil {
		return Quantity{}, err
	}
	return New(v, u), nil
}

// MustParse is Parse for literals known to be valid. It panics on error.
func MustParse(s string) Quantity {
	q, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return q
}

// splitNumber separates the leading float literal from the unit text.
func splitNumber(s string) (string, string) {
	if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		return s[:i], s[i:]
	}
	// "5eV" style: take the longest prefix that parses as a number.
	for i := len(s); i > 0; i-- {
		if _, err := strconv.ParseFloat(s[:i], 64); err == nil {
			return s[:i], s[i:]
		}
	}
	return s, ""
}

// ParseUnits parses a unit expression. Factors are separated by spaces or
// "*", "/" divides by the factor that follows it, and powers are written
// with "^" or "**".
func ParseUnits(expr string) (Units, error) {
	expr = strings.ReplaceAll(expr, "**", "^")
	expr = strings.ReplaceAll(expr, "*", " ")
	expr = strings.ReplaceAll(expr, "/", " / ")
	fields := strings.Fields(expr)
	if len(fields) == 0 {
		return Units{}, fmt.Errorf("%w: empty unit expression", ErrParse)
	}

	result := Dimensionless
	divide := false
	for _, f := range fields {
		if f == "/" {
			if divide {
				return Units{}, fmt.Errorf("%w: unexpected '/' in %q", ErrParse, expr)
			}
			divide = true
			continue
		}
		u, err := parseFactor(f)
		if err != nil {
			return Units{}, err
		}
		if divide {
			result = result.Div(u)
			divide = false
		} else {
			result = result.Mul(u)
		}
	}
	if divide {
		return Units{}, fmt.Errorf("%w: dangling '/' in %q", ErrParse, expr)
	}
	result.Symbol = strings.TrimSpace(strings.Join(strings.Fields(expr), " "))
	return result, nil
}

func parseFactor(f string) (Units, error) {
	sym, pow := f, 1
	if i := strings.IndexByte(f, '^'); i >= 0 {
		p, err := strconv.Atoi(f[i+1:])
		if err != nil {
			return Units{}, fmt.Errorf("%w: exponent in %q", ErrParse, f)
		}
		sym, pow = f[:i], p
	}
	u, ok := LookupUnit(sym)
	if !ok {
		return Units{}, fmt.Errorf("%w: %q", ErrUnknownUnit, sym)
	}
	if pow != 1 {
		u = u.Pow(pow)
	}
	return u, nil
}
