package report_test

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/d42"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/migration"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/report"
)

func newData() *report.Data {
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &report.Data{
		RunID:  uuid.MustParse("0b0b7f5e-5a43-4b53-9a0c-1d3b1b0e2f10"),
		DryRun: true,
		Summary: migration.Summary{
			StartedAt:  started,
			FinishedAt: started.Add(90 * time.Second),
			Stages: []migration.StageTiming{
				{Stage: "racks", Duration: 1500 * time.Millisecond},
				{Stage: "devices", Duration: 3 * time.Second},
			},
			Outcomes: []migration.Outcome{
				{Stage: "racks", Entity: d42.EntityRack, SourceID: 7, Name: "R1", Status: migration.StatusSuccess, RemoteID: 1001},
				{Stage: "devices", Entity: d42.EntityDevice, SourceID: 11, Name: "srv1", Status: migration.StatusFailed, Reason: "HTTP 500"},
				{Stage: "devices", Entity: d42.EntityDevice, SourceID: 12, Name: "", Status: migration.StatusSkipped, Reason: "missing name"},
			},
		},
	}
}

var _ = Describe("report", func() {
	Context("format", func() {
		It("is taken from the extension", func() {
			f, err := report.FormatFromPath("/tmp/run.XLSX")
			Expect(err).To(BeNil())
			Expect(f).To(Equal(report.FormatXLSX))

			f, err = report.FormatFromPath("run.csv")
			Expect(err).To(BeNil())
			Expect(f).To(Equal(report.FormatCSV))
		})

		It("rejects unknown extensions", func() {
			_, err := report.FormatFromPath("run.pdf")
			Expect(err).NotTo(BeNil())

			_, err = report.NewRenderer("pdf")
			Expect(err).NotTo(BeNil())
		})
	})

	Context("csv", func() {
		It("renders the summary and every outcome", func() {
			var buf bytes.Buffer
			Expect(report.NewCSVRenderer().Render(newData(), &buf)).To(Succeed())

			reader := csv.NewReader(&buf)
			reader.FieldsPerRecord = -1
			rows, err := reader.ReadAll()
			Expect(err).To(BeNil())

			Expect(rows).To(ContainElement([]string{"Run ID", "0b0b7f5e-5a43-4b53-9a0c-1d3b1b0e2f10"}))
			Expect(rows).To(ContainElement([]string{"Failed", "1"}))
			Expect(rows).To(ContainElement([]string{"Total", "3"}))
			Expect(rows).To(ContainElement([]string{"racks", "1.5s"}))
			Expect(rows).To(ContainElement([]string{"devices", "device", "11", "srv1", "failed", "HTTP 500", ""}))
			Expect(rows).To(ContainElement([]string{"racks", "rack", "7", "R1", "success", "", "1001"}))
		})
	})

	Context("xlsx", func() {
		It("renders one sheet per section", func() {
			var buf bytes.Buffer
			Expect(report.NewXLSXRenderer().Render(newData(), &buf)).To(Succeed())

			f, err := excelize.OpenReader(&buf)
			Expect(err).To(BeNil())
			defer f.Close()

			Expect(f.GetSheetList()).To(Equal([]string{"Summary", "Stages", "Entities", "Outcomes"}))

			rows, err := f.GetRows("Outcomes")
			Expect(err).To(BeNil())
			Expect(rows).To(HaveLen(4))
			Expect(rows[0][0]).To(Equal("Stage"))
			Expect(rows[2][3]).To(Equal("srv1"))
			Expect(rows[2][5]).To(Equal("HTTP 500"))

			entities, err := f.GetRows("Entities")
			Expect(err).To(BeNil())
			Expect(entities).To(ContainElement([]string{"device", "0", "1", "1"}))
		})
	})

	Context("file", func() {
		It("writes the report next to the run", func() {
			path := filepath.Join(GinkgoT().TempDir(), "run.csv")
			Expect(report.WriteFile(path, newData())).To(Succeed())

			content, err := os.ReadFile(path)
			Expect(err).To(BeNil())
			Expect(string(content)).To(ContainSubstring("RACKTABLES TO DEVICE42 MIGRATION REPORT"))
		})
	})
})
