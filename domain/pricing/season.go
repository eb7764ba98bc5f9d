package pricing

// Season is a fixed calendar grouping of months.
type Season string

const (
	SeasonWinter Season = "Winter"
	SeasonSpring Season = "Spring"
	SeasonSummer Season = "Summer"
	SeasonAutumn Season = "Autumn"
)

// AllSeasons lists the seasons in calendar order, winter first. Grouped
// seasonal results follow this ordering.
var AllSeasons = []Season{SeasonWinter, SeasonSpring, SeasonSummer, SeasonAutumn}

// monthSeasons maps month number (1..12) to its season:
// Dec/Jan/Feb winter, Mar/Apr/May spring, Jun/Jul/Aug summer, Sep/Oct/Nov autumn.
var monthSeasons = [13]Season{
	0: "", // months are 1-indexed
	1: SeasonWinter, 2: SeasonWinter,
	3: SeasonSpring, 4: SeasonSpring, 5: SeasonSpring,
	6: SeasonSummer, 7: SeasonSummer, 8: SeasonSummer,
	9: SeasonAutumn, 10: SeasonAutumn, 11: SeasonAutumn,
	12: SeasonWinter,
}

var seasonOrder = map[Season]int{
	SeasonWinter: 0,
	SeasonSpring: 1,
	SeasonSummer: 2,
	SeasonAutumn: 3,
}

// SeasonForMonth returns the season for a month in 1..12. It is a pure
// function of the month; out-of-range months yield the empty Season.
func SeasonForMonth(month int) Season {
	if month < 1 || month > 12 {
		return ""
	}
	return monthSeasons[month]
}

// Order returns the season's position in calendar order (Winter=0 .. Autumn=3).
func (s Season) Order() int {
	if idx, ok := seasonOrder[s]; ok {
		return idx
	}
	return len(seasonOrder)
}
