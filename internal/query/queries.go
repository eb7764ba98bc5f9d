// Package query implements the view-facing query operations as pure
// functions over (dataset, selection). Every grouped output is ordered by
// its grouping key's natural order — chronological, season calendar order,
// canonical region order — so repeated queries render identical chart axes.
package query

import (
	"github.com/montanaflynn/stats"

	"strompris/domain/pricing"
)

// Monthly filters the dataset to the selection without aggregating. The
// dataset is already in (year, month, region) order, so filtering preserves
// the ordering line and heatmap views need.
func Monthly(ds *pricing.Dataset, sel pricing.Selection) []pricing.MonthlyPoint {
	points := []pricing.MonthlyPoint{}
	if sel.IsEmpty() {
		return points
	}
	for _, rec := range ds.Records() {
		if !sel.Matches(rec) {
			continue
		}
		points = append(points, pricing.MonthlyPoint{
			Year:   rec.Year,
			Month:  rec.Month,
			Region: rec.Region,
			Price:  rec.Price,
		})
	}
	return points
}

// Annual returns the mean price per (year, region), year ascending then
// canonical region order.
func Annual(ds *pricing.Dataset, sel pricing.Selection) []pricing.AnnualMean {
	means := []pricing.AnnualMean{}
	if sel.IsEmpty() {
		return means
	}

	grouped := make(map[int]map[pricing.Region][]float64)
	for _, rec := range ds.Records() {
		if !sel.Matches(rec) {
			continue
		}
		if grouped[rec.Year] == nil {
			grouped[rec.Year] = make(map[pricing.Region][]float64)
		}
		grouped[rec.Year][rec.Region] = append(grouped[rec.Year][rec.Region], rec.Price)
	}

	from, to := clampYears(ds, sel)
	for year := from; year <= to; year++ {
		byRegion := grouped[year]
		if byRegion == nil {
			continue
		}
		for _, region := range sel.Regions {
			prices, ok := byRegion[region]
			if !ok {
				continue
			}
			mean, err := stats.Mean(prices)
			if err != nil {
				continue
			}
			means = append(means, pricing.AnnualMean{Year: year, Region: region, Mean: mean})
		}
	}
	return means
}

// Seasonal returns the full price distribution per (season, region) within
// the selected range, calendar season order then canonical region order.
// Prices inside each group stay in chronological order.
func Seasonal(ds *pricing.Dataset, sel pricing.Selection) []pricing.SeasonalGroup {
	groups := []pricing.SeasonalGroup{}
	if sel.IsEmpty() {
		return groups
	}

	type key struct {
		season pricing.Season
		region pricing.Region
	}
	grouped := make(map[key][]float64)
	for _, rec := range ds.Records() {
		if !sel.Matches(rec) {
			continue
		}
		k := key{season: rec.Season, region: rec.Region}
		grouped[k] = append(grouped[k], rec.Price)
	}

	for _, season := range pricing.AllSeasons {
		for _, region := range sel.Regions {
			prices, ok := grouped[key{season: season, region: region}]
			if !ok {
				continue
			}
			box, err := boxStats(prices)
			if err != nil {
				continue
			}
			groups = append(groups, pricing.SeasonalGroup{
				Season: season,
				Region: region,
				Prices: prices,
				Box:    box,
			})
		}
	}
	return groups
}

// RegionalComparison returns summary statistics per selected region across
// the whole year range, canonical region order.
func RegionalComparison(ds *pricing.Dataset, sel pricing.Selection) []pricing.RegionStats {
	result := []pricing.RegionStats{}
	if sel.IsEmpty() {
		return result
	}

	type regionData struct {
		prices     []float64
		latestYear int
		latest     []float64
	}
	grouped := make(map[pricing.Region]*regionData)
	for _, rec := range ds.Records() {
		if !sel.Matches(rec) {
			continue
		}
		data := grouped[rec.Region]
		if data == nil {
			data = &regionData{}
			grouped[rec.Region] = data
		}
		data.prices = append(data.prices, rec.Price)
		if rec.Year > data.latestYear {
			data.latestYear = rec.Year
			data.latest = data.latest[:0]
		}
		if rec.Year == data.latestYear {
			data.latest = append(data.latest, rec.Price)
		}
	}

	for _, region := range sel.Regions {
		data, ok := grouped[region]
		if !ok {
			continue
		}
		summary, err := summarizeRegion(region, data.prices, data.latestYear, data.latest)
		if err != nil {
			continue
		}
		result = append(result, summary)
	}
	return result
}

// clampYears intersects the selection's year range with the years the
// dataset actually holds. Selections arrive straight from query parameters,
// so iteration cost has to track the data, not the requested range.
func clampYears(ds *pricing.Dataset, sel pricing.Selection) (from, to int) {
	min, max := ds.YearBounds()
	from, to = sel.YearFrom, sel.YearTo
	if from < min {
		from = min
	}
	if to > max {
		to = max
	}
	return from, to
}

func summarizeRegion(region pricing.Region, prices []float64, latestYear int, latest []float64) (pricing.RegionStats, error) {
	mean, err := stats.Mean(prices)
	if err != nil {
		return pricing.RegionStats{}, err
	}
	min, err := stats.Min(prices)
	if err != nil {
		return pricing.RegionStats{}, err
	}
	max, err := stats.Max(prices)
	if err != nil {
		return pricing.RegionStats{}, err
	}
	stdDev, err := stats.StandardDeviation(prices)
	if err != nil {
		return pricing.RegionStats{}, err
	}
	latestMean, err := stats.Mean(latest)
	if err != nil {
		return pricing.RegionStats{}, err
	}

	coefVar := 0.0
	if mean != 0 {
		coefVar = stdDev / mean
	}
	return pricing.RegionStats{
		Region:         region,
		DisplayName:    region.DisplayName(),
		Count:          len(prices),
		Mean:           mean,
		Min:            min,
		Max:            max,
		Range:          max - min,
		StdDev:         stdDev,
		CoefVar:        coefVar,
		LatestYear:     latestYear,
		LatestYearMean: latestMean,
	}, nil
}

func boxStats(prices []float64) (pricing.BoxStats, error) {
	min, err := stats.Min(prices)
	if err != nil {
		return pricing.BoxStats{}, err
	}
	max, err := stats.Max(prices)
	if err != nil {
		return pricing.BoxStats{}, err
	}
	median, err := stats.Median(prices)
	if err != nil {
		return pricing.BoxStats{}, err
	}
	quartiles, err := stats.Quartile(prices)
	if err != nil {
		return pricing.BoxStats{}, err
	}
	return pricing.BoxStats{
		Min:    min,
		Q1:     quartiles.Q1,
		Median: median,
		Q3:     quartiles.Q3,
		Max:    max,
	}, nil
}
