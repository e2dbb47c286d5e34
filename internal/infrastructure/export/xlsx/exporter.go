package xlsx

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/trinamix-ai/documantra-saas/internal/core/domain"
	"github.com/trinamix-ai/documantra-saas/internal/core/ports"
)

const jobsSheet = "Classifications"

// Exporter renders the most recent classification jobs as an XLSX workbook.
type Exporter struct {
	jobs    ports.JobReader
	maxRows int
	logger  *slog.Logger
}

func NewExporter(jobs ports.JobReader, maxRows int, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	if maxRows <= 0 {
		maxRows = 500
	}
	return &Exporter{jobs: jobs, maxRows: maxRows, logger: logger}
}

func (e *Exporter) ExportXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	jobs, err := e.jobs.ListRecent(ctx, e.maxRows)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	raw, err := WriteJobs(jobs)
	if err != nil {
		return nil, err
	}

	e.logger.Info("export_xlsx_ok",
		"rows", len(jobs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return raw, nil
}

// WriteJobs lays out one row per job under a fixed header row.
func WriteJobs(jobs []domain.ClassificationJob) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if index, _ := f.GetSheetIndex(jobsSheet); index == -1 {
		if _, err := f.NewSheet(jobsSheet); err != nil {
			return nil, fmt.Errorf("create sheet: %w", err)
		}
	}
	_ = f.DeleteSheet("Sheet1")
	activeIndex, _ := f.GetSheetIndex(jobsSheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{"Job ID", "File", "Status", "Classification", "Model Answer", "Error", "Created At", "Updated At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(jobsSheet, cell, h)
	}

	for idx, job := range jobs {
		row := idx + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(jobsSheet, cell, v)
		}
		write(1, job.ID)
		write(2, job.Filename)
		write(3, string(job.Status))
		write(4, job.Label)
		write(5, job.Answer)
		write(6, job.Error)
		write(7, formatTime(job.CreatedAt))
		write(8, formatTime(job.UpdatedAt))
	}

	_ = f.SetColWidth(jobsSheet, "A", "A", 38)
	_ = f.SetColWidth(jobsSheet, "B", "B", 32)
	_ = f.SetColWidth(jobsSheet, "C", "C", 12)
	_ = f.SetColWidth(jobsSheet, "D", "E", 28)
	_ = f.SetColWidth(jobsSheet, "F", "F", 48)
	_ = f.SetColWidth(jobsSheet, "G", "H", 22)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
