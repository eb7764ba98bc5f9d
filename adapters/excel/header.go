package excel

import (
	"fmt"
	"strings"

	"strompris/domain/pricing"
	apperrors "strompris/internal/errors"
)

// Column roles a header can resolve to. The sheet must carry either a
// year+month pair or a single date column, plus all five region columns.
type columnRole int

const (
	roleUnknown columnRole = iota
	roleYear
	roleMonth
	roleDate
	roleRegion
)

// Statically declared header lookup, lowercased. Covers the English and
// Norwegian spellings seen in the source spreadsheets. Region headers also
// resolve through a parenthetical area code, so "Øst-Norge (NO1)" maps to
// NO1 without its own alias entry.
var (
	yearAliases  = map[string]bool{"year": true, "år": true, "aar": true}
	monthAliases = map[string]bool{"month": true, "måned": true, "maaned": true, "mnd": true}
	dateAliases  = map[string]bool{"date": true, "dato": true}

	regionAliases = map[string]pricing.Region{
		"no1":        pricing.RegionNO1,
		"no2":        pricing.RegionNO2,
		"no3":        pricing.RegionNO3,
		"no4":        pricing.RegionNO4,
		"no5":        pricing.RegionNO5,
		"øst-norge":  pricing.RegionNO1,
		"sør-norge":  pricing.RegionNO2,
		"midt-norge": pricing.RegionNO3,
		"nord-norge": pricing.RegionNO4,
		"vest-norge": pricing.RegionNO5,
		"oslo":       pricing.RegionNO1,
		"kristiansand": pricing.RegionNO2,
		"trondheim":  pricing.RegionNO3,
		"tromsø":     pricing.RegionNO4,
		"bergen":     pricing.RegionNO5,
	}

	// English and Norwegian month names for sheets that spell the month out.
	monthNames = map[string]int{
		"january": 1, "february": 2, "march": 3, "april": 4, "may": 5,
		"june": 6, "july": 7, "august": 8, "september": 9, "october": 10,
		"november": 11, "december": 12,
		"januar": 1, "februar": 2, "mars": 3, "mai": 5, "juni": 6,
		"juli": 7, "oktober": 10, "desember": 12,
	}
)

// resolveHeader maps one trimmed header cell to its role. Region headers are
// matched on the parenthetical code ("øst-norge(NO1)" style) and the alias
// table; a header whose name and code disagree, or whose code names a price
// area we do not know, is a schema error.
func resolveHeader(header string) (columnRole, pricing.Region, error) {
	key := strings.ToLower(strings.TrimSpace(header))
	if key == "" {
		return roleUnknown, "", nil
	}

	if code, rest, ok := splitParenthetical(key); ok {
		byCode, codeKnown := regionAliases[code]
		byName, nameKnown := regionAliases[rest]
		switch {
		case codeKnown && nameKnown && byCode != byName:
			return roleUnknown, "", apperrors.SchemaError(
				fmt.Sprintf("header %q: name maps to %s but code to %s", header, byName, byCode))
		case codeKnown:
			return roleRegion, byCode, nil
		case looksLikeAreaCode(code):
			return roleUnknown, "", apperrors.SchemaError(
				fmt.Sprintf("header %q: unknown price area code %q", header, code))
		}
		// "Year (2014-2024)" style annotations fall through on the base name.
		key = rest
	}

	switch {
	case yearAliases[key]:
		return roleYear, "", nil
	case monthAliases[key]:
		return roleMonth, "", nil
	case dateAliases[key]:
		return roleDate, "", nil
	}
	if region, ok := regionAliases[key]; ok {
		return roleRegion, region, nil
	}
	return roleUnknown, "", nil
}

// looksLikeAreaCode reports whether a parenthetical reads as a Nordic price
// area code ("no" plus digits), known or not.
func looksLikeAreaCode(s string) bool {
	if len(s) < 3 || !strings.HasPrefix(s, "no") {
		return false
	}
	for _, c := range s[2:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// splitParenthetical extracts a trailing "(...)" annotation, returning its
// lowercased content and the trimmed text before it.
func splitParenthetical(s string) (inner, rest string, ok bool) {
	open := strings.LastIndex(s, "(")
	if open < 0 || !strings.HasSuffix(s, ")") {
		return "", s, false
	}
	inner = strings.TrimSpace(s[open+1 : len(s)-1])
	rest = strings.TrimSpace(s[:open])
	return inner, rest, inner != ""
}

// parseMonthCell accepts a month number ("1", "01") or a spelled-out month
// name in English or Norwegian.
func parseMonthCell(cell string) (int, bool) {
	key := strings.ToLower(strings.TrimSpace(cell))
	if key == "" {
		return 0, false
	}
	if m, ok := monthNames[key]; ok {
		return m, true
	}
	m := 0
	for _, c := range key {
		if c < '0' || c > '9' {
			return 0, false
		}
		m = m*10 + int(c-'0')
		if m > 12 {
			return 0, false
		}
	}
	if m < 1 {
		return 0, false
	}
	return m, true
}
