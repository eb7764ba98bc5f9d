package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"strompris/domain/pricing"
	apperrors "strompris/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader reads a monthly price spreadsheet into a RawPriceSheet. It
// handles .xlsx/.xlsm via excelize and .csv via encoding/csv; both formats
// go through the same header resolution and schema validation.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	minYear  int
	maxYear  int
}

// NewDataReader creates a reader with the default schema year bounds.
func NewDataReader(filePath string) *DataReader {
	return NewDataReaderWithBounds(filePath, pricing.DefaultMinYear, pricing.DefaultMaxYear)
}

// NewDataReaderWithBounds creates a reader that accepts years in
// [minYear, maxYear] only.
func NewDataReaderWithBounds(filePath string, minYear, maxYear int) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType, minYear: minYear, maxYear: maxYear}
}

// ReadSheet reads, validates, and returns the raw price sheet. File-level
// failures carry FILE_ERROR; layout failures carry SCHEMA_ERROR.
func (r *DataReader) ReadSheet() (*pricing.RawPriceSheet, error) {
	log.Printf("[DataReader] Reading %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); err != nil {
		return nil, apperrors.FileError(fmt.Sprintf("price file not found: %s", r.filePath), err)
	}

	ext := strings.ToLower(filepath.Ext(r.filePath))
	switch ext {
	case ".xlsx", ".xlsm":
		rows, err := r.readExcelRows()
		if err != nil {
			return nil, err
		}
		return r.buildSheet(rows)
	case ".csv":
		rows, err := r.readCSVRows()
		if err != nil {
			return nil, err
		}
		return r.buildSheet(rows)
	default:
		return nil, apperrors.FileError(fmt.Sprintf("unsupported file type %q", ext), nil)
	}
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, apperrors.FileError("failed to open Excel file", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.SchemaError("workbook contains no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.FileError(fmt.Sprintf("failed to read sheet %q", sheets[0]), err)
	}
	log.Printf("[DataReader] Sheet %q read in %.2fms (%d rows)",
		sheets[0], float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, apperrors.FileError("failed to open CSV file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // length checked per row during validation
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.FileError("failed to read CSV file", err)
	}
	log.Printf("[DataReader] CSV file read (%d rows)", len(rows))
	return rows, nil
}

// columnLayout is the resolved header structure of one sheet.
type columnLayout struct {
	yearCol  int
	monthCol int
	dateCol  int
	regions  map[int]pricing.Region // column index -> region
}

// resolveColumns validates the header row against the static lookup table.
// Every non-empty header must resolve; unknown columns (extra regions,
// stray annotation columns) reject the load.
func resolveColumns(headers []string) (*columnLayout, error) {
	layout := &columnLayout{yearCol: -1, monthCol: -1, dateCol: -1, regions: make(map[int]pricing.Region)}
	seen := make(map[pricing.Region]string)

	for i, header := range headers {
		trimmed := strings.TrimSpace(header)
		if trimmed == "" {
			continue
		}
		role, region, err := resolveHeader(trimmed)
		if err != nil {
			return nil, err
		}
		switch role {
		case roleYear:
			if layout.yearCol >= 0 {
				return nil, apperrors.SchemaError("duplicate year column")
			}
			layout.yearCol = i
		case roleMonth:
			if layout.monthCol >= 0 {
				return nil, apperrors.SchemaError("duplicate month column")
			}
			layout.monthCol = i
		case roleDate:
			if layout.dateCol >= 0 {
				return nil, apperrors.SchemaError("duplicate date column")
			}
			layout.dateCol = i
		case roleRegion:
			if prev, dup := seen[region]; dup {
				return nil, apperrors.SchemaError(fmt.Sprintf("columns %q and %q both map to %s", prev, trimmed, region))
			}
			seen[region] = trimmed
			layout.regions[i] = region
		default:
			return nil, apperrors.SchemaError(fmt.Sprintf("unrecognized column %q", trimmed))
		}
	}

	hasYearMonth := layout.yearCol >= 0 && layout.monthCol >= 0
	hasDate := layout.dateCol >= 0
	switch {
	case hasDate && (layout.yearCol >= 0 || layout.monthCol >= 0):
		return nil, apperrors.SchemaError("sheet mixes a date column with year/month columns")
	case !hasDate && !hasYearMonth:
		return nil, apperrors.SchemaError("sheet needs year and month columns, or a date column")
	}

	for _, region := range pricing.AllRegions {
		if _, ok := seen[region]; !ok {
			return nil, apperrors.SchemaError(fmt.Sprintf("missing region column for %s (%s)", region, region.DisplayName()))
		}
	}
	return layout, nil
}

// buildSheet turns raw string rows into a validated RawPriceSheet: resolved
// headers, parsed time structure, complete monthly grid minYear-01 through
// maxYear-12 with every month exactly once.
func (r *DataReader) buildSheet(rows [][]string) (*pricing.RawPriceSheet, error) {
	if len(rows) < 2 {
		return nil, apperrors.SchemaError("file must have a header row and at least one data row")
	}

	layout, err := resolveColumns(rows[0])
	if err != nil {
		return nil, err
	}

	sheet := &pricing.RawPriceSheet{Source: r.filePath}
	seen := make(map[[2]int]bool)
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-indexed, after the header
		if isBlankRow(row) {
			return nil, apperrors.SchemaError(fmt.Sprintf("blank row %d", rowNum))
		}

		year, month, err := r.parseRowTime(layout, row, rowNum)
		if err != nil {
			return nil, err
		}
		if year < r.minYear || year > r.maxYear {
			return nil, apperrors.SchemaError(fmt.Sprintf("row %d: year %d outside %d..%d", rowNum, year, r.minYear, r.maxYear))
		}
		if seen[[2]int{year, month}] {
			return nil, apperrors.SchemaError(fmt.Sprintf("row %d: duplicate month %04d-%02d", rowNum, year, month))
		}
		seen[[2]int{year, month}] = true

		cells := make(map[pricing.Region]string, len(layout.regions))
		for col, region := range layout.regions {
			if col >= len(row) {
				return nil, apperrors.SchemaError(fmt.Sprintf("row %d: missing cell for %s", rowNum, region))
			}
			cells[region] = strings.TrimSpace(row[col])
		}

		if len(sheet.Rows) == 0 || year < sheet.MinYear {
			sheet.MinYear = year
		}
		if year > sheet.MaxYear {
			sheet.MaxYear = year
		}
		sheet.Rows = append(sheet.Rows, pricing.RawRow{Year: year, Month: month, Cells: cells})
	}

	// The grid must be complete: no missing months anywhere in the range.
	for year := sheet.MinYear; year <= sheet.MaxYear; year++ {
		for month := 1; month <= 12; month++ {
			if !seen[[2]int{year, month}] {
				return nil, apperrors.SchemaError(fmt.Sprintf("missing month %04d-%02d", year, month))
			}
		}
	}

	log.Printf("[DataReader] Validated %d monthly rows, %d..%d", len(sheet.Rows), sheet.MinYear, sheet.MaxYear)
	return sheet, nil
}

func (r *DataReader) parseRowTime(layout *columnLayout, row []string, rowNum int) (year, month int, err error) {
	if layout.dateCol >= 0 {
		if layout.dateCol >= len(row) {
			return 0, 0, apperrors.SchemaError(fmt.Sprintf("row %d: missing date cell", rowNum))
		}
		return parseDateCell(strings.TrimSpace(row[layout.dateCol]), rowNum)
	}

	if layout.yearCol >= len(row) || layout.monthCol >= len(row) {
		return 0, 0, apperrors.SchemaError(fmt.Sprintf("row %d: missing year/month cells", rowNum))
	}
	year, err = parseYearCell(strings.TrimSpace(row[layout.yearCol]))
	if err != nil {
		return 0, 0, apperrors.SchemaError(fmt.Sprintf("row %d: %v", rowNum, err))
	}
	month, ok := parseMonthCell(row[layout.monthCol])
	if !ok {
		return 0, 0, apperrors.SchemaError(fmt.Sprintf("row %d: unparsable month %q", rowNum, strings.TrimSpace(row[layout.monthCol])))
	}
	return year, month, nil
}

// parseDateCell accepts YYYY-MM or YYYY-MM-DD.
func parseDateCell(cell string, rowNum int) (year, month int, err error) {
	for _, format := range []string{"2006-01", "2006-01-02"} {
		if t, parseErr := time.Parse(format, cell); parseErr == nil {
			return t.Year(), int(t.Month()), nil
		}
	}
	return 0, 0, apperrors.SchemaError(fmt.Sprintf("row %d: unparsable date %q", rowNum, cell))
}

func parseYearCell(cell string) (int, error) {
	year, err := strconv.Atoi(cell)
	if err != nil {
		return 0, fmt.Errorf("unparsable year %q", cell)
	}
	return year, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
