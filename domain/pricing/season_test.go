package pricing

import "testing"

// TestSeasonForMonth asserts the full calendar mapping, every month.
func TestSeasonForMonth(t *testing.T) {
	expected := map[int]Season{
		1:  SeasonWinter,
		2:  SeasonWinter,
		3:  SeasonSpring,
		4:  SeasonSpring,
		5:  SeasonSpring,
		6:  SeasonSummer,
		7:  SeasonSummer,
		8:  SeasonSummer,
		9:  SeasonAutumn,
		10: SeasonAutumn,
		11: SeasonAutumn,
		12: SeasonWinter,
	}

	for month := 1; month <= 12; month++ {
		if got := SeasonForMonth(month); got != expected[month] {
			t.Errorf("SeasonForMonth(%d) = %s, want %s", month, got, expected[month])
		}
	}
}

func TestSeasonForMonthOutOfRange(t *testing.T) {
	for _, month := range []int{0, 13, -1, 100} {
		if got := SeasonForMonth(month); got != "" {
			t.Errorf("SeasonForMonth(%d) = %s, want empty", month, got)
		}
	}
}

func TestSeasonCalendarOrder(t *testing.T) {
	for i, s := range AllSeasons {
		if s.Order() != i {
			t.Errorf("season %s order = %d, want %d", s, s.Order(), i)
		}
	}
}
