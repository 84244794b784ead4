package particles

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// parsed is the raw result of reading a particle string.
type parsed struct {
	special   string
	z         int
	a         int
	charge    int
	hasCharge bool
}

var (
	isotopePattern = regexp.MustCompile(`^([A-Za-z]+)(?:-(\d+))?(?:\s*([+-]+|\d+[+-]|[+-]\d+))?$`)
	romanPattern   = regexp.MustCompile(`^([A-Za-z]+)(?:-(\d+))?\s+([IVXLC]+)$`)
	chargeNumeric  = regexp.MustCompile(`^(\d+)([+-])$|^([+-])(\d+)$`)
)

var symbolIndex, lowerSymbol, lowerName = buildIndexes()

func buildIndexes() (symbols, lowerSymbols, lowerNames map[string]int) {
	symbols = make(map[string]int, len(elements))
	lowerSymbols = make(map[string]int, len(elements))
	lowerNames = make(map[string]int, len(elements)+3)
	for z := 1; z < len(elements); z++ {
		e := elements[z]
		symbols[e.symbol] = z
		lowerSymbols[strings.ToLower(e.symbol)] = z
		lowerNames[strings.ToLower(e.name)] = z
	}
	lowerNames["aluminum"] = 13
	lowerNames["cesium"] = 55
	lowerNames["sulphur"] = 16
	return symbols, lowerSymbols, lowerNames
}

// parseString applies the particle grammar: named particles and aliases,
// then element[-A][ charge], then roman numeral ionization states.
func parseString(s string) (parsed, error) {
	if target, ok := lookupAlias(s); ok {
		if _, isSpecial := specials[target]; isSpecial {
			return parsed{special: target}, nil
		}
		s = target
	}

	if m := isotopePattern.FindStringSubmatch(s); m != nil {
		p, err := parseElement(m[1], m[2])
		if err != nil {
			return parsed{}, err
		}
		if m[3] != "" {
			c, err := parseCharge(m[3])
			if err != nil {
				return parsed{}, err
			}
			p.charge, p.hasCharge = c, true
		}
		return p, nil
	}

	if m := romanPattern.FindStringSubmatch(s); m != nil {
		p, err := parseElement(m[1], m[2])
		if err != nil {
			return parsed{}, err
		}
		n, ok := fromRoman(m[3])
		if !ok {
			return parsed{}, fmt.Errorf("%w: bad roman numeral %q", ErrInvalidParticle, m[3])
		}
		p.charge, p.hasCharge = n-1, true
		return p, nil
	}

	return parsed{}, fmt.Errorf("%w: %q matches no particle", ErrInvalidParticle, s)
}

func lookupAlias(s string) (string, bool) {
	if t, ok := aliases[s]; ok {
		return t, true
	}
	if _, isElement := symbolIndex[s]; isElement {
		return "", false
	}
	lower := strings.ToLower(s)
	if len(lower) < 3 || strings.ContainsAny(lower, "+-_0123456789") {
		return "", false
	}
	t, ok := aliases[lower]
	return t, ok
}

// parseElement resolves an element token and optional mass number text.
func parseElement(token, massText string) (parsed, error) {
	var p parsed
	switch token {
	case "D":
		p.z, p.a = 1, 2
	case "T":
		p.z, p.a = 1, 3
	default:
		z, ok := symbolIndex[token]
		if !ok {
			z, ok = lowerSymbol[strings.ToLower(token)]
		}
		if !ok {
			z, ok = lowerName[strings.ToLower(token)]
		}
		if !ok {
			return parsed{}, fmt.Errorf("%w: unknown element %q", ErrInvalidParticle, token)
		}
		p.z = z
	}
	if massText != "" {
		if p.a != 0 {
			return parsed{}, fmt.Errorf("%w: %q already names an isotope", ErrInvalidParticle, token)
		}
		a, err := strconv.Atoi(massText)
		if err != nil {
			return parsed{}, fmt.Errorf("%w: mass number %q", ErrInvalidParticle, massText)
		}
		p.a = a
	}
	return p, nil
}

func parseCharge(s string) (int, error) {
	if strings.Trim(s, "+") == "" {
		return len(s), nil
	}
	if strings.Trim(s, "-") == "" {
		return -len(s), nil
	}
	m := chargeNumeric.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: charge %q", ErrInvalidParticle, s)
	}
	digits, sign := m[1], m[2]
	if digits == "" {
		digits, sign = m[4], m[3]
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: charge %q", ErrInvalidParticle, s)
	}
	if sign == "-" {
		n = -n
	}
	return n, nil
}
