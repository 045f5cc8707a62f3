package csvdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/domain"
)

// ReadRows reads a delimited export into flat records keyed by the
// header row. Ragged rows are tolerated: missing trailing fields stay
// empty, surplus fields are dropped.
func ReadRows(path string) ([]domain.Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	for i, name := range header {
		header[i] = strings.TrimSpace(name)
	}

	var rows []domain.Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if isBlank(record) {
			continue
		}

		row := make(domain.Row, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteRows exports records as CSV with the given column order.
func WriteRows(path string, columns []string, rows []domain.Row) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("writing header of %s: %w", path, err)
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, name := range columns {
			record[i] = row[name]
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
