package csvexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteWorkbook writes tables to w as an XLSX workbook with one sheet per table.
func WriteWorkbook(w io.Writer, tables []Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), t.Name); err != nil {
				return fmt.Errorf("csvexport.WriteWorkbook: %w", err)
			}
		} else if _, err := f.NewSheet(t.Name); err != nil {
			return fmt.Errorf("csvexport.WriteWorkbook: %w", err)
		}

		if err := writeSheetRow(f, t.Name, 1, t.Columns); err != nil {
			return err
		}
		for r, row := range t.Rows {
			if err := writeSheetRow(f, t.Name, r+2, row); err != nil {
				return err
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("csvexport.WriteWorkbook: %w", err)
	}
	return nil
}

func writeSheetRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("csvexport.WriteWorkbook: %w", err)
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("csvexport.WriteWorkbook: sheet %s row %d: %w", sheet, row, err)
	}
	return nil
}
