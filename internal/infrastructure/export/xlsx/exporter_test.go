package xlsx

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/trinamix-ai/documantra-saas/internal/core/domain"
)

type jobReaderFake struct {
	jobs  []domain.ClassificationJob
	err   error
	limit int
}

func (f *jobReaderFake) GetByID(context.Context, string) (*domain.ClassificationJob, error) {
	return nil, errors.New("not implemented")
}

func (f *jobReaderFake) ListRecent(_ context.Context, limit int) ([]domain.ClassificationJob, error) {
	f.limit = limit
	return f.jobs, f.err
}

func TestExportXLSXWritesOneRowPerJob(t *testing.T) {
	created := time.Date(2026, 10, 17, 8, 30, 0, 0, time.UTC)
	reader := &jobReaderFake{jobs: []domain.ClassificationJob{
		{ID: "job-1", Filename: "po.pdf", Status: domain.JobStatusDone, Label: "PO/pdf", Answer: "PO", CreatedAt: created, UpdatedAt: created},
		{ID: "job-2", Filename: "notes.docx", Status: domain.JobStatusFailed, Error: "boom", CreatedAt: created},
	}}

	raw, err := NewExporter(reader, 25, nil).ExportXLSX(context.Background())
	if err != nil {
		t.Fatalf("ExportXLSX() error = %v", err)
	}
	if reader.limit != 25 {
		t.Fatalf("expected export limit 25, got %d", reader.limit)
	}

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(jobsSheet)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Job ID" || rows[1][3] != "PO/pdf" || rows[1][6] != "2026-10-17T08:30:00Z" {
		t.Fatalf("unexpected rows %q", rows)
	}
	if rows[2][2] != "failed" || rows[2][5] != "boom" {
		t.Fatalf("unexpected failed row %q", rows[2])
	}
}

func TestExportXLSXPropagatesReaderError(t *testing.T) {
	reader := &jobReaderFake{err: errors.New("db down")}
	if _, err := NewExporter(reader, 0, nil).ExportXLSX(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
