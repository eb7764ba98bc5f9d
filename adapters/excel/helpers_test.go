package excel

import (
	"encoding/csv"
	"os"
)

// writeRawCSV writes arbitrary rows without the testkit's fixed header, so
// schema-rejection tests can produce deliberately broken files.
func writeRawCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}
