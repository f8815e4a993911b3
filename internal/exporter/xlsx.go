package exporter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Wait Times"

// WriteXLSX renders the records as a single-sheet Excel workbook. Numeric
// cells are written as numbers so spreadsheet formulas work on them.
func WriteXLSX(w io.Writer, records [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	for rowIdx, record := range records {
		for colIdx, raw := range record {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return fmt.Errorf("failed to resolve cell (%d,%d): %w", rowIdx, colIdx, err)
			}
			if err := f.SetCellValue(sheetName, cell, cellValue(rowIdx, raw)); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// cellValue keeps the header row textual and converts numeric-looking data
// cells to numbers.
func cellValue(rowIdx int, raw string) interface{} {
	if rowIdx == 0 || raw == "" {
		return raw
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	return raw
}
