package query

import (
	"math"
	"testing"

	"strompris/domain/pricing"
	"strompris/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullDataset(t *testing.T) *pricing.Dataset {
	t.Helper()
	ds, err := testkit.NewGridGenerator(testkit.DefaultGridConfig()).GenerateDataset()
	require.NoError(t, err)
	return ds
}

func mustDataset(t *testing.T, records []pricing.PriceRecord) *pricing.Dataset {
	t.Helper()
	ds, err := pricing.NewDataset(records)
	require.NoError(t, err)
	return ds
}

func record(year, month int, region pricing.Region, price float64) pricing.PriceRecord {
	return pricing.PriceRecord{
		Year:   year,
		Month:  month,
		Region: region,
		Price:  price,
		Season: pricing.SeasonForMonth(month),
	}
}

func TestMonthlyFiltersAndOrders(t *testing.T) {
	ds := fullDataset(t)
	sel := pricing.NewSelection([]pricing.Region{pricing.RegionNO1, pricing.RegionNO4}, 2018, 2020)

	points := Monthly(ds, sel)
	assert.Len(t, points, 3*12*2)

	for i, p := range points {
		assert.Contains(t, sel.Regions, p.Region)
		assert.GreaterOrEqual(t, p.Year, 2018)
		assert.LessOrEqual(t, p.Year, 2020)
		if i > 0 {
			prev := points[i-1]
			inOrder := p.Year > prev.Year ||
				(p.Year == prev.Year && p.Month > prev.Month) ||
				(p.Year == prev.Year && p.Month == prev.Month && p.Region.Order() > prev.Region.Order())
			assert.True(t, inOrder, "points out of order at %d: %+v after %+v", i, p, prev)
		}
	}
}

// Annual mean must equal the arithmetic mean of the 12 monthly prices for
// that year and region.
func TestAnnualConsistentWithMonthly(t *testing.T) {
	ds := fullDataset(t)
	sel := pricing.AllRegionsSelection(2016, 2019)

	annual := Annual(ds, sel)
	monthly := Monthly(ds, sel)
	require.NotEmpty(t, annual)

	for _, a := range annual {
		sum := 0.0
		n := 0
		for _, p := range monthly {
			if p.Year == a.Year && p.Region == a.Region {
				sum += p.Price
				n++
			}
		}
		require.Equal(t, 12, n, "expected 12 monthly prices for %d/%s", a.Year, a.Region)
		assert.InDelta(t, sum/12, a.Mean, 1e-9)
	}
}

func TestAnnualOrdering(t *testing.T) {
	ds := fullDataset(t)
	annual := Annual(ds, pricing.AllRegionsSelection(2014, 2024))

	require.Len(t, annual, 11*len(pricing.AllRegions))
	for i := 1; i < len(annual); i++ {
		prev, cur := annual[i-1], annual[i]
		inOrder := cur.Year > prev.Year ||
			(cur.Year == prev.Year && cur.Region.Order() > prev.Region.Order())
		assert.True(t, inOrder, "annual means out of order at %d", i)
	}
}

func TestSeasonalDistributions(t *testing.T) {
	ds := fullDataset(t)
	sel := pricing.NewSelection([]pricing.Region{pricing.RegionNO2}, 2014, 2024)

	groups := Seasonal(ds, sel)
	require.Len(t, groups, len(pricing.AllSeasons))

	for i, g := range groups {
		assert.Equal(t, pricing.AllSeasons[i], g.Season, "seasons must follow calendar order")
		assert.Equal(t, pricing.RegionNO2, g.Region)
		// 11 years x 3 months per season
		assert.Len(t, g.Prices, 33)
		assert.LessOrEqual(t, g.Box.Min, g.Box.Q1)
		assert.LessOrEqual(t, g.Box.Q1, g.Box.Median)
		assert.LessOrEqual(t, g.Box.Median, g.Box.Q3)
		assert.LessOrEqual(t, g.Box.Q3, g.Box.Max)
	}
}

// Comparison min/max must bound every monthly price for the region in range.
func TestRegionalComparisonBoundsMonthly(t *testing.T) {
	ds := fullDataset(t)
	sel := pricing.AllRegionsSelection(2015, 2022)

	comparison := RegionalComparison(ds, sel)
	monthly := Monthly(ds, sel)
	require.Len(t, comparison, len(pricing.AllRegions))

	byRegion := make(map[pricing.Region]pricing.RegionStats)
	for _, c := range comparison {
		byRegion[c.Region] = c
	}
	for _, p := range monthly {
		c := byRegion[p.Region]
		assert.GreaterOrEqual(t, p.Price, c.Min, "%s price below reported min", p.Region)
		assert.LessOrEqual(t, p.Price, c.Max, "%s price above reported max", p.Region)
	}
}

func TestRegionalComparisonCoefVar(t *testing.T) {
	ds := fullDataset(t)
	comparison := RegionalComparison(ds, pricing.AllRegionsSelection(2014, 2024))

	for _, c := range comparison {
		require.NotZero(t, c.Mean)
		assert.InDelta(t, c.StdDev/c.Mean, c.CoefVar, 1e-12)
		assert.InDelta(t, c.Max-c.Min, c.Range, 1e-12)
		assert.Equal(t, 2024, c.LatestYear)
		assert.Equal(t, 11*12, c.Count)
	}
}

// The worked example from the data contract: two January 2020 rows.
func TestKnownRowsExample(t *testing.T) {
	ds := mustDataset(t, []pricing.PriceRecord{
		record(2020, 1, pricing.RegionNO1, 150.0),
		record(2020, 1, pricing.RegionNO2, 140.0),
	})
	sel := pricing.AllRegionsSelection(2020, 2020)

	annual := Annual(ds, sel)
	require.Len(t, annual, 2)
	assert.Equal(t, pricing.RegionNO1, annual[0].Region)
	assert.Equal(t, 150.0, annual[0].Mean)
	assert.Equal(t, 140.0, annual[1].Mean)

	seasonal := Seasonal(ds, pricing.NewSelection([]pricing.Region{pricing.RegionNO1}, 2020, 2020))
	require.Len(t, seasonal, 1)
	assert.Equal(t, pricing.SeasonWinter, seasonal[0].Season)
	assert.Equal(t, []float64{150.0}, seasonal[0].Prices)
}

// Every query type must return an empty (not nil-error) result for an empty
// region set, an inverted year range, and a range with no data.
func TestEmptySelectionLaw(t *testing.T) {
	ds := fullDataset(t)
	selections := map[string]pricing.Selection{
		"no regions":     pricing.NewSelection(nil, 2014, 2024),
		"inverted range": pricing.NewSelection(pricing.AllRegions, 2024, 2014),
		"range w/o data": pricing.NewSelection(pricing.AllRegions, 1990, 1995),
	}

	for name, sel := range selections {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, Monthly(ds, sel))
			assert.Empty(t, Annual(ds, sel))
			assert.Empty(t, Seasonal(ds, sel))
			assert.Empty(t, RegionalComparison(ds, sel))
			trend := Trend(ds, sel)
			require.NotNil(t, trend)
			assert.Empty(t, trend.Years)
			assert.Nil(t, Overview(ds, sel))
		})
	}
}

func TestTrendYearOverYear(t *testing.T) {
	records := []pricing.PriceRecord{}
	// NO1 flat at 100 in 2020, flat at 110 in 2021: +10%.
	for month := 1; month <= 12; month++ {
		records = append(records,
			record(2020, month, pricing.RegionNO1, 100.0),
			record(2021, month, pricing.RegionNO1, 110.0),
		)
	}
	ds := mustDataset(t, records)

	trend := Trend(ds, pricing.NewSelection([]pricing.Region{pricing.RegionNO1}, 2020, 2021))
	require.Len(t, trend.Years, 2)

	assert.Nil(t, trend.Years[0].ChangePct, "first year has no previous year")
	require.NotNil(t, trend.Years[1].ChangePct)
	assert.InDelta(t, 10.0, *trend.Years[1].ChangePct, 1e-9)

	// Two flat years: the regression line connects the annual means exactly.
	assert.InDelta(t, 10.0, trend.Slope, 1e-9)
	assert.InDelta(t, 1.0, trend.RSquared, 1e-9)
}

func TestOverviewLatestYearMetrics(t *testing.T) {
	records := []pricing.PriceRecord{}
	for month := 1; month <= 12; month++ {
		records = append(records,
			record(2023, month, pricing.RegionNO1, 80.0),
			record(2023, month, pricing.RegionNO4, 40.0),
			record(2024, month, pricing.RegionNO1, 120.0),
			record(2024, month, pricing.RegionNO4, 60.0),
		)
	}
	ds := mustDataset(t, records)

	overview := Overview(ds, pricing.AllRegionsSelection(2014, 2024))
	require.NotNil(t, overview)
	assert.Equal(t, 2024, overview.LatestYear)
	assert.InDelta(t, 90.0, overview.AveragePrice, 1e-9)
	assert.Equal(t, pricing.RegionNO1, overview.HighestRegion)
	assert.InDelta(t, 120.0, overview.HighestPrice, 1e-9)
	assert.Equal(t, pricing.RegionNO4, overview.LowestRegion)
	assert.InDelta(t, 60.0, overview.LowestPrice, 1e-9)
	assert.InDelta(t, 60.0, overview.PriceRange, 1e-9)
}

func TestCoefVarZeroMean(t *testing.T) {
	records := []pricing.PriceRecord{}
	for month := 1; month <= 12; month++ {
		records = append(records, record(2020, month, pricing.RegionNO3, 0.0))
	}
	ds := mustDataset(t, records)

	comparison := RegionalComparison(ds, pricing.AllRegionsSelection(2020, 2020))
	require.Len(t, comparison, 1)
	assert.Zero(t, comparison[0].CoefVar)
	assert.False(t, math.IsNaN(comparison[0].CoefVar))
}

// Selections arrive straight from query parameters, so an absurd year range
// must cost no more than the data it can possibly match. The year loops
// clamp to the dataset's bounds; with an unclamped loop this test would
// never finish.
func TestHugeYearRangeClampsToData(t *testing.T) {
	records := []pricing.PriceRecord{}
	for month := 1; month <= 12; month++ {
		records = append(records,
			record(2020, month, pricing.RegionNO1, 100.0),
			record(2021, month, pricing.RegionNO1, 110.0),
		)
	}
	ds := mustDataset(t, records)

	huge := pricing.AllRegionsSelection(0, math.MaxInt)
	exact := pricing.AllRegionsSelection(2020, 2021)

	assert.Equal(t, Annual(ds, exact), Annual(ds, huge))
	assert.Equal(t, Trend(ds, exact), Trend(ds, huge))

	trend := Trend(ds, huge)
	require.Len(t, trend.Years, 2)
	require.NotNil(t, trend.Years[1].ChangePct)
	assert.InDelta(t, 10.0, *trend.Years[1].ChangePct, 1e-9)
}
