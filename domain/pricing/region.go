package pricing

import "fmt"

// Region identifies one of Norway's five electricity price areas.
type Region string

const (
	RegionNO1 Region = "NO1" // Øst-Norge
	RegionNO2 Region = "NO2" // Sør-Norge
	RegionNO3 Region = "NO3" // Midt-Norge
	RegionNO4 Region = "NO4" // Nord-Norge
	RegionNO5 Region = "NO5" // Vest-Norge
)

// AllRegions lists the five price areas in canonical order. Every grouped
// query result is ordered by this sequence so chart axes stay stable
// between interactions.
var AllRegions = []Region{RegionNO1, RegionNO2, RegionNO3, RegionNO4, RegionNO5}

var regionDisplayNames = map[Region]string{
	RegionNO1: "Øst-Norge",
	RegionNO2: "Sør-Norge",
	RegionNO3: "Midt-Norge",
	RegionNO4: "Nord-Norge",
	RegionNO5: "Vest-Norge",
}

var regionOrder = map[Region]int{
	RegionNO1: 0,
	RegionNO2: 1,
	RegionNO3: 2,
	RegionNO4: 3,
	RegionNO5: 4,
}

// IsValid reports whether r is one of the five known price areas.
func (r Region) IsValid() bool {
	_, ok := regionOrder[r]
	return ok
}

// DisplayName returns the Norwegian display name for the region
// (e.g. "Øst-Norge" for NO1).
func (r Region) DisplayName() string {
	if name, ok := regionDisplayNames[r]; ok {
		return name
	}
	return string(r)
}

// Order returns the region's position in the canonical NO1..NO5 ordering.
// Unknown regions sort after all known ones.
func (r Region) Order() int {
	if idx, ok := regionOrder[r]; ok {
		return idx
	}
	return len(regionOrder)
}

// ParseRegion maps a user-supplied identifier ("NO1", "no3") to a Region.
func ParseRegion(s string) (Region, error) {
	r := Region(normalizeRegionCode(s))
	if !r.IsValid() {
		return "", fmt.Errorf("unknown region %q", s)
	}
	return r, nil
}

func normalizeRegionCode(s string) string {
	out := make([]rune, 0, len(s))
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z':
			out = append(out, c-('a'-'A'))
		case c == ' ' || c == '\t':
			// skip
		default:
			out = append(out, c)
		}
	}
	return string(out)
}
