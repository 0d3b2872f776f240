package extractor

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// ReadRows loads a tabular statement export (the CSV form of a spreadsheet
// download) into raw rows. The delimiter is sniffed from the first line;
// German exports use semicolons, others commas. Row lengths vary between
// the metadata preamble and the transaction table, so no field count is
// enforced.
func ReadRows(filePath string) ([][]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading rows from %s: %w", filePath, err)
	}
	defer f.Close()

	firstLine := make([]byte, 1024)
	n, _ := f.Read(firstLine)
	if _, err := f.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("reading rows from %s: %w", filePath, err)
	}

	comma := ','
	if strings.Count(string(firstLine[:n]), ";") > strings.Count(string(firstLine[:n]), ",") {
		comma = ';'
	}

	r := csv.NewReader(f)
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading rows from %s: %w", filePath, err)
	}
	return rows, nil
}
