package ports

import "strompris/domain/pricing"

// PriceQueries is the view-facing query surface. One operation per view
// type, all pure over the published dataset and a per-interaction selection.
// An empty selection yields an empty result from every query, never an error.
type PriceQueries interface {
	// Monthly returns the unaggregated filtered observations for line and
	// heatmap views, ordered by year, month, then canonical region.
	Monthly(sel pricing.Selection) ([]pricing.MonthlyPoint, error)

	// Annual returns the mean price per (year, region), year ascending.
	Annual(sel pricing.Selection) ([]pricing.AnnualMean, error)

	// Seasonal returns the full price distribution per (season, region) in
	// calendar order, for box-plot views.
	Seasonal(sel pricing.Selection) ([]pricing.SeasonalGroup, error)

	// RegionalComparison returns summary statistics per region in canonical
	// order.
	RegionalComparison(sel pricing.Selection) ([]pricing.RegionStats, error)

	// Trend returns the whole-selection yearly means with year-over-year
	// changes and a least-squares trend line.
	Trend(sel pricing.Selection) (*pricing.TrendResult, error)

	// Overview returns the headline metrics for the latest selected year,
	// or nil when the selection matches nothing.
	Overview(sel pricing.Selection) (*pricing.Overview, error)
}
