package tabular

import (
	"encoding/csv"
	"fmt"
	"io"

	"marketlens/domain/table"

	"github.com/xuri/excelize/v2"
)

// WriteCSV serializes a table with a header row. Dates render in canonical
// YYYY-MM-DD form, numerics as plain decimals, missing cells as empty
// strings, so the output round-trips through the loaders.
func WriteCSV(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			record[i] = row.Get(col).Render()
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX serializes a table to a single-sheet workbook using the same
// cell formatting conventions as WriteCSV.
func WriteXLSX(w io.Writer, t *table.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range t.Rows {
		cells := make([]interface{}, len(t.Columns))
		for j, col := range t.Columns {
			v := row.Get(col)
			if v.IsNumeric() {
				cells[j] = *v.NumericVal
			} else {
				cells[j] = v.Render()
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	return f.Write(w)
}
