package pricing

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSelectionArgs turns raw query parameters into a Selection. regionsCSV
// is a comma-separated region list; empty means all regions. Empty from/to
// fall back to the given defaults. Unknown regions and non-numeric years are
// input errors; an inverted range is not — it parses into the defined empty
// selection.
func ParseSelectionArgs(regionsCSV, from, to string, defaultFrom, defaultTo int) (Selection, error) {
	regions := AllRegions
	if strings.TrimSpace(regionsCSV) != "" {
		regions = nil
		for _, part := range strings.Split(regionsCSV, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			region, err := ParseRegion(part)
			if err != nil {
				return Selection{}, err
			}
			regions = append(regions, region)
		}
	}

	yearFrom, err := parseYearArg("from", from, defaultFrom)
	if err != nil {
		return Selection{}, err
	}
	yearTo, err := parseYearArg("to", to, defaultTo)
	if err != nil {
		return Selection{}, err
	}
	return NewSelection(regions, yearFrom, yearTo), nil
}

func parseYearArg(name, value string, fallback int) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	year, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid %s year %q", name, value)
	}
	return year, nil
}
