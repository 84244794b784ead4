package particles

import (
	"fmt"
	"sort"
)

// validCategories lists every category name IsCategory accepts.
var validCategories = map[string]bool{
	"actinide": true, "alkali metal": true, "alkaline earth metal": true,
	"antibaryon": true, "antilepton": true, "antimatter": true,
	"antineutrino": true, "baryon": true, "boson": true, "charged": true,
	"custom": true, "electron": true, "element": true, "fermion": true,
	"halogen": true, "ion": true, "isotope": true, "lanthanide": true,
	"lepton": true, "matter": true, "metal": true, "metalloid": true,
	"neutrino": true, "neutron": true, "noble gas": true, "nonmetal": true,
	"positron": true, "post-transition metal": true, "proton": true,
	"stable": true, "transition metal": true, "uncharged": true,
	"unstable": true,
}

// ValidCategories returns the accepted category names in sorted order.
func ValidCategories() []string {
	out := make([]string, 0, len(validCategories))
	for c := range validCategories {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// CategoryQuery selects particles by category. A particle matches when it
// has every Require category, at least one AnyOf category (if any are
// given) and none of the Exclude categories.
type CategoryQuery struct {
	Require []string
	AnyOf   []string
	Exclude []string
}

// Require builds a query needing all of the given categories.
func Require(categories ...string) CategoryQuery {
	return CategoryQuery{Require: categories}
}

func (q CategoryQuery) validate() error {
	for _, group := range [][]string{q.Require, q.AnyOf, q.Exclude} {
		for _, c := range group {
			if !validCategories[c] {
				return fmt.Errorf("%w: unknown category %q", ErrCategory, c)
			}
		}
	}
	excluded := make(map[string]bool, len(q.Exclude))
	for _, c := range q.Exclude {
		excluded[c] = true
	}
	for _, c := range append(append([]string{}, q.Require...), q.AnyOf...) {
		if excluded[c] {
			return fmt.Errorf("%w: category %q is both required and excluded", ErrCategory, c)
		}
	}
	return nil
}

func (q CategoryQuery) match(set map[string]bool) (bool, error) {
	if err := q.validate(); err != nil {
		return false, err
	}
	for _, c := range q.Require {
		if !set[c] {
			return false, nil
		}
	}
	if len(q.AnyOf) > 0 {
		found := false
		for _, c := range q.AnyOf {
			if set[c] {
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}
	for _, c := range q.Exclude {
		if set[c] {
			return false, nil
		}
	}
	return true, nil
}

func categorySet(cs ...string) map[string]bool {
	m := make(map[string]bool, len(cs))
	for _, c := range cs {
		m[c] = true
	}
	return m
}

func sortedCategories(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
