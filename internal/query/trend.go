package query

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"strompris/domain/pricing"
)

// Trend computes the yearly development of the selection as a whole: one
// mean across all selected regions per year, the percent change from the
// previous year (nil for the first), and a least-squares trend line over
// the annual means.
func Trend(ds *pricing.Dataset, sel pricing.Selection) *pricing.TrendResult {
	result := &pricing.TrendResult{Years: []pricing.YearlyMean{}}
	if sel.IsEmpty() {
		return result
	}

	grouped := make(map[int][]float64)
	for _, rec := range ds.Records() {
		if !sel.Matches(rec) {
			continue
		}
		grouped[rec.Year] = append(grouped[rec.Year], rec.Price)
	}

	var prev *float64
	from, to := clampYears(ds, sel)
	for year := from; year <= to; year++ {
		prices, ok := grouped[year]
		if !ok {
			continue
		}
		mean, err := stats.Mean(prices)
		if err != nil {
			continue
		}
		point := pricing.YearlyMean{Year: year, Mean: mean}
		if prev != nil && *prev != 0 {
			change := (mean - *prev) / *prev * 100
			point.ChangePct = &change
		}
		m := mean
		prev = &m
		result.Years = append(result.Years, point)
	}

	if len(result.Years) >= 2 {
		xs := make([]float64, len(result.Years))
		ys := make([]float64, len(result.Years))
		for i, y := range result.Years {
			xs[i] = float64(y.Year)
			ys[i] = y.Mean
		}
		alpha, beta := stat.LinearRegression(xs, ys, nil, false)
		result.Intercept = alpha
		result.Slope = beta
		result.RSquared = stat.RSquared(xs, ys, nil, alpha, beta)
	} else if len(result.Years) == 1 {
		result.Intercept = result.Years[0].Mean
	}
	return result
}

// Overview computes the headline metrics for the latest year the selection
// covers: the average across selected regions and the highest- and
// lowest-priced regions by that year's mean. Nil means no data matched.
func Overview(ds *pricing.Dataset, sel pricing.Selection) *pricing.Overview {
	if sel.IsEmpty() {
		return nil
	}

	latestYear := 0
	grouped := make(map[pricing.Region][]float64)
	for _, rec := range ds.Records() {
		if !sel.Matches(rec) {
			continue
		}
		if rec.Year > latestYear {
			latestYear = rec.Year
			grouped = make(map[pricing.Region][]float64)
		}
		if rec.Year == latestYear {
			grouped[rec.Region] = append(grouped[rec.Region], rec.Price)
		}
	}
	if latestYear == 0 {
		return nil
	}

	overview := &pricing.Overview{LatestYear: latestYear}
	var all []float64
	first := true
	for _, region := range sel.Regions {
		prices, ok := grouped[region]
		if !ok {
			continue
		}
		all = append(all, prices...)
		mean, err := stats.Mean(prices)
		if err != nil {
			continue
		}
		if first || mean > overview.HighestPrice {
			overview.HighestRegion = region
			overview.HighestPrice = mean
		}
		if first || mean < overview.LowestPrice {
			overview.LowestRegion = region
			overview.LowestPrice = mean
		}
		first = false
	}
	if len(all) == 0 {
		return nil
	}

	average, err := stats.Mean(all)
	if err != nil {
		return nil
	}
	overview.AveragePrice = average
	overview.PriceRange = overview.HighestPrice - overview.LowestPrice
	return overview
}
