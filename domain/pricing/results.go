package pricing

// View result types. Each query produces one of these; they are computed on
// demand, handed to the renderer, and discarded. Field values are final —
// the renderer never re-aggregates.

// ChartKind tags a result with the chart the renderer should draw from it.
type ChartKind string

const (
	ChartLine    ChartKind = "line"
	ChartBar     ChartKind = "bar"
	ChartBox     ChartKind = "box"
	ChartHeatmap ChartKind = "heatmap"
)

// MonthlyPoint is one unaggregated observation for line and heatmap views.
type MonthlyPoint struct {
	Year   int     `json:"year"`
	Month  int     `json:"month"`
	Region Region  `json:"region"`
	Price  float64 `json:"price"`
}

// AnnualMean is the mean price for one (year, region) group.
type AnnualMean struct {
	Year   int     `json:"year"`
	Region Region  `json:"region"`
	Mean   float64 `json:"mean"`
}

// BoxStats is the five-number summary a box plot renders.
type BoxStats struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// SeasonalGroup carries the full price distribution for one (season, region)
// group. Box plots need spread, not just central tendency, so the raw prices
// travel with the summary.
type SeasonalGroup struct {
	Season Season    `json:"season"`
	Region Region    `json:"region"`
	Prices []float64 `json:"prices"`
	Box    BoxStats  `json:"box"`
}

// RegionStats summarizes one region across the selected range.
type RegionStats struct {
	Region         Region  `json:"region"`
	DisplayName    string  `json:"display_name"`
	Count          int     `json:"count"`
	Mean           float64 `json:"mean"`
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
	Range          float64 `json:"range"`
	StdDev         float64 `json:"std_dev"`
	CoefVar        float64 `json:"coef_var"` // stddev/mean, 0 when mean is 0
	LatestYear     int     `json:"latest_year"`
	LatestYearMean float64 `json:"latest_year_mean"`
}

// YearlyMean is one point of the whole-selection trend: the mean across all
// selected regions for one year, with the percent change from the previous
// year. ChangePct is nil for the first year in range.
type YearlyMean struct {
	Year      int      `json:"year"`
	Mean      float64  `json:"mean"`
	ChangePct *float64 `json:"change_pct,omitempty"`
}

// TrendResult is the yearly development of the selection as a whole, with a
// least-squares trend line over the annual means.
type TrendResult struct {
	Years     []YearlyMean `json:"years"`
	Slope     float64      `json:"slope"` // øre/kWh per year
	Intercept float64      `json:"intercept"`
	RSquared  float64      `json:"r_squared"`
}

// Overview carries the headline metrics shown above the charts. A nil
// Overview means the selection matched nothing.
type Overview struct {
	LatestYear    int     `json:"latest_year"`
	AveragePrice  float64 `json:"average_price"` // latest-year mean across selected regions
	HighestRegion Region  `json:"highest_region"`
	HighestPrice  float64 `json:"highest_price"`
	LowestRegion  Region  `json:"lowest_region"`
	LowestPrice   float64 `json:"lowest_price"`
	PriceRange    float64 `json:"price_range"`
}
