package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/migration"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Renderer writes a run report in one format.
type Renderer interface {
	Render(data *Data, w io.Writer) error
	SupportedFormat() Format
}

// Data is everything a report shows about a run.
type Data struct {
	RunID   uuid.UUID
	DryRun  bool
	Summary migration.Summary
}

func NewRenderer(format Format) (Renderer, error) {
	switch format {
	case FormatCSV:
		return NewCSVRenderer(), nil
	case FormatXLSX:
		return NewXLSXRenderer(), nil
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch Format(ext) {
	case FormatCSV, FormatXLSX:
		return Format(ext), nil
	default:
		return "", fmt.Errorf("cannot tell the report format of %q: use .csv or .xlsx", path)
	}
}

// WriteFile renders data into path, in the format of its extension.
func WriteFile(path string, data *Data) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	r, err := NewRenderer(format)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	if err := r.Render(data, f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// section is a titled table shared by the renderers.
type section struct {
	title  string
	header []string
	rows   [][]string
}

func sections(data *Data) []section {
	s := data.Summary
	totals := s.Totals()

	run := section{
		title:  "Summary",
		header: []string{"Field", "Value"},
		rows: [][]string{
			{"Run ID", data.RunID.String()},
			{"Dry Run", strconv.FormatBool(data.DryRun)},
			{"Started", formatTime(s.StartedAt)},
			{"Finished", formatTime(s.FinishedAt)},
			{"Success", strconv.Itoa(totals.Success)},
			{"Skipped", strconv.Itoa(totals.Skipped)},
			{"Failed", strconv.Itoa(totals.Failed)},
			{"Total", strconv.Itoa(totals.Total())},
		},
	}

	stages := section{title: "Stages", header: []string{"Stage", "Duration"}}
	for _, st := range s.Stages {
		stages.rows = append(stages.rows, []string{st.Stage, st.Duration.Round(time.Millisecond).String()})
	}

	entities := section{title: "Entities", header: []string{"Entity", "Success", "Skipped", "Failed"}}
	for _, e := range s.ByEntity() {
		entities.rows = append(entities.rows, []string{
			string(e.Entity),
			strconv.Itoa(e.Success),
			strconv.Itoa(e.Skipped),
			strconv.Itoa(e.Failed),
		})
	}

	outcomes := section{
		title:  "Outcomes",
		header: []string{"Stage", "Entity", "Source ID", "Name", "Status", "Reason", "Device42 ID"},
	}
	for _, o := range s.Outcomes {
		outcomes.rows = append(outcomes.rows, []string{
			o.Stage,
			string(o.Entity),
			formatID(o.SourceID),
			o.Name,
			string(o.Status),
			o.Reason,
			formatID(o.RemoteID),
		})
	}

	return []section{run, stages, entities, outcomes}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
