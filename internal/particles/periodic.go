package particles

// PeriodicTable locates an element in the periodic table.
type PeriodicTable struct {
	Group    int
	Period   int
	Block    string
	Category string
}

var periodStarts = [...]int{1, 3, 11, 19, 37, 55, 87, 119}

var (
	metalloids = map[int]bool{5: true, 14: true, 32: true, 33: true, 51: true, 52: true}
	nonmetals  = map[int]bool{1: true, 6: true, 7: true, 8: true, 15: true, 16: true, 34: true}
)

func periodicTable(z int) PeriodicTable {
	period := 1
	for period < len(periodStarts)-1 && z >= periodStarts[period] {
		period++
	}
	o := z - periodStarts[period-1]

	var group int
	switch period {
	case 1:
		group = 1
		if z == 2 {
			group = 18
		}
	case 2, 3:
		group = o + 1
		if o >= 2 {
			group = o + 11
		}
	case 4, 5:
		group = o + 1
	default:
		switch {
		case o < 2:
			group = o + 1
		case o <= 16:
			group = 3
		default:
			group = o - 13
		}
	}

	t := PeriodicTable{Group: group, Period: period}
	fBlock := period >= 6 && o >= 2 && o <= 16
	switch {
	case fBlock:
		t.Block = "f"
	case group <= 2 || z == 2:
		t.Block = "s"
	case group >= 13:
		t.Block = "p"
	default:
		t.Block = "d"
	}

	switch {
	case fBlock && period == 6:
		t.Category = "lanthanide"
	case fBlock:
		t.Category = "actinide"
	case group == 18:
		t.Category = "noble gas"
	case nonmetals[z]:
		t.Category = "nonmetal"
	case group == 1:
		t.Category = "alkali metal"
	case group == 2:
		t.Category = "alkaline earth metal"
	case metalloids[z]:
		t.Category = "metalloid"
	case group == 17:
		t.Category = "halogen"
	case group >= 3 && group <= 12:
		t.Category = "transition metal"
	default:
		t.Category = "post-transition metal"
	}
	return t
}
