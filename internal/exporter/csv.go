package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV streams the records as CSV. A UTF-8 BOM is prepended so Excel
// opens the download correctly.
func WriteCSV(w io.Writer, records [][]string) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(w)
	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
