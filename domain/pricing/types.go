package pricing

import "fmt"

// Schema bounds for the bundled price history. Loads outside these years are
// rejected during schema validation; the bounds are configurable per store.
const (
	DefaultMinYear = 2014
	DefaultMaxYear = 2024
)

// PriceRecord is one tidy observation: the average spot price for one region
// in one month, in øre/kWh incl. MVA.
type PriceRecord struct {
	Year   int     `json:"year"`
	Month  int     `json:"month"` // 1..12
	Region Region  `json:"region"`
	Price  float64 `json:"price"` // øre/kWh, non-negative
	Season Season  `json:"season"`
}

// Key uniquely identifies the record within a dataset.
func (r PriceRecord) Key() RecordKey {
	return RecordKey{Year: r.Year, Month: r.Month, Region: r.Region}
}

// RecordKey is the (year, month, region) identity of a price observation.
type RecordKey struct {
	Year   int
	Month  int
	Region Region
}

func (k RecordKey) String() string {
	return fmt.Sprintf("%04d-%02d/%s", k.Year, k.Month, k.Region)
}

// RawRow is one spreadsheet row after header resolution: the time structure
// is parsed, region cells are still raw strings. Value validation belongs to
// the transformer.
type RawRow struct {
	Year  int
	Month int
	Cells map[Region]string
}

// RawPriceSheet is the as-read spreadsheet with headers already mapped to
// canonical regions. Built once by the reader, consumed once by ToTidy.
type RawPriceSheet struct {
	Source  string // file path, for error messages
	MinYear int
	MaxYear int
	Rows    []RawRow
}
