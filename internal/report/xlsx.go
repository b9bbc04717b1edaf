package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

type XLSXRenderer struct{}

func NewXLSXRenderer() *XLSXRenderer {
	return &XLSXRenderer{}
}

func (r *XLSXRenderer) SupportedFormat() Format {
	return FormatXLSX
}

// Render writes one sheet per section with a bold header row.
func (r *XLSXRenderer) Render(data *Data, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	all := sections(data)
	for _, s := range all {
		if _, err := f.NewSheet(s.title); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", s.title, err)
		}

		if err := writeSheetRow(f, s.title, 1, s.header); err != nil {
			return err
		}
		last, _ := excelize.ColumnNumberToName(len(s.header))
		if err := f.SetCellStyle(s.title, "A1", last+"1", bold); err != nil {
			return err
		}
		for j, row := range s.rows {
			if err := writeSheetRow(f, s.title, j+2, row); err != nil {
				return err
			}
		}
	}
	_ = f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex(all[0].title); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheetRow(f *excelize.File, sheet string, line int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, line)
	if err != nil {
		return err
	}
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, line, err)
	}
	return nil
}
