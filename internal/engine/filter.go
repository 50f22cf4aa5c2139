package engine

import "strings"

// Selection holds the user-chosen filter values per dimension. An empty
// slice means no restriction on that dimension, so the zero Selection
// passes the whole dataset through.
type Selection struct {
	Brands    []string
	Countries []string
	Genders   []string
}

func (s Selection) IsEmpty() bool {
	return len(s.Brands) == 0 && len(s.Countries) == 0 && len(s.Genders) == 0
}

// Filter returns the view of rows matching the selection. Dimensions are
// AND-combined; values within a dimension are OR-combined and matched
// case-insensitively. Row order follows the source store, and the store is
// never mutated. An empty result is a valid view.
func Filter(cs *ColumnStore, sel Selection) View {
	if sel.IsEmpty() {
		return NewView(cs)
	}

	// Resolve selected values against the dictionaries once, so the row
	// loop is a plain array lookup per dimension.
	brandOK := allowedIDs(cs.BrandDict, sel.Brands)
	countryOK := allowedIDs(cs.CountryDict, sel.Countries)
	genderOK := allowedIDs(cs.GenderDict, sel.Genders)

	rows := make([]int, 0, cs.Len())
	for i := 0; i < cs.Len(); i++ {
		if brandOK != nil && !brandOK[cs.BrandIDs[i]] {
			continue
		}
		if countryOK != nil && !countryOK[cs.CountryIDs[i]] {
			continue
		}
		if genderOK != nil && !genderOK[cs.GenderIDs[i]] {
			continue
		}
		rows = append(rows, i)
	}
	return View{cs: cs, rows: rows}
}

// allowedIDs marks which dictionary IDs pass the selection. A nil result
// means the dimension is unrestricted.
func allowedIDs(dictionary []string, selected []string) []bool {
	if len(selected) == 0 {
		return nil
	}
	set := make(map[string]bool, len(selected))
	for _, s := range selected {
		set[strings.ToLower(strings.TrimSpace(s))] = true
	}
	ok := make([]bool, len(dictionary))
	for id, label := range dictionary {
		ok[id] = set[strings.ToLower(label)]
	}
	return ok
}
