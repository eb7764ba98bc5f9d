package pricing

import "sort"

// Selection is one interaction's filter state: which regions and which year
// range a view should cover. It is rebuilt per request and never stored.
type Selection struct {
	Regions  []Region `json:"regions"`
	YearFrom int      `json:"year_from"`
	YearTo   int      `json:"year_to"`
}

// NewSelection builds a selection with duplicate regions removed and the
// remainder sorted into canonical order.
func NewSelection(regions []Region, yearFrom, yearTo int) Selection {
	seen := make(map[Region]struct{}, len(regions))
	unique := make([]Region, 0, len(regions))
	for _, r := range regions {
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		unique = append(unique, r)
	}
	sort.Slice(unique, func(i, j int) bool {
		return unique[i].Order() < unique[j].Order()
	})
	return Selection{Regions: unique, YearFrom: yearFrom, YearTo: yearTo}
}

// AllRegionsSelection selects every region over the given year range.
func AllRegionsSelection(yearFrom, yearTo int) Selection {
	return NewSelection(AllRegions, yearFrom, yearTo)
}

// IsEmpty reports whether the selection can match nothing: no regions, or an
// inverted year range. An inverted range is a defined empty state, not an
// error.
func (s Selection) IsEmpty() bool {
	return len(s.Regions) == 0 || s.YearFrom > s.YearTo
}

// Matches reports whether a record falls inside the selection.
func (s Selection) Matches(rec PriceRecord) bool {
	if rec.Year < s.YearFrom || rec.Year > s.YearTo {
		return false
	}
	for _, r := range s.Regions {
		if r == rec.Region {
			return true
		}
	}
	return false
}
