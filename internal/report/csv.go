package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

type CSVRenderer struct{}

func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

func (r *CSVRenderer) SupportedFormat() Format {
	return FormatCSV
}

// Render writes every section one after the other, separated by an empty
// row.
func (r *CSVRenderer) Render(data *Data, w io.Writer) error {
	var csvRows [][]string

	csvRows = append(csvRows, []string{"RACKTABLES TO DEVICE42 MIGRATION REPORT"})
	csvRows = append(csvRows, []string{""})

	for _, s := range sections(data) {
		csvRows = append(csvRows, []string{strings.ToUpper(s.title)})
		csvRows = append(csvRows, s.header)
		csvRows = append(csvRows, s.rows...)
		csvRows = append(csvRows, []string{""})
	}

	return r.writeRows(w, csvRows)
}

func (r *CSVRenderer) writeRows(w io.Writer, csvRows [][]string) error {
	writer := csv.NewWriter(w)

	for _, row := range csvRows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return nil
}
