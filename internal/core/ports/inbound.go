package ports

import (
	"context"
	"io"

	"github.com/trinamix-ai/documantra-saas/internal/core/domain"
)

// DocumentClassifier is the inbound contract for the one-document pipeline.
type DocumentClassifier interface {
	ClassifyFile(ctx context.Context, path string) (domain.ClassificationResult, error)
}

// JobSubmitter accepts an upload and queues it for classification.
type JobSubmitter interface {
	Submit(ctx context.Context, filename string, body io.Reader) (*domain.ClassificationJob, error)
}

// JobReader is the read model for job state.
type JobReader interface {
	GetByID(ctx context.Context, id string) (*domain.ClassificationJob, error)
	ListRecent(ctx context.Context, limit int) ([]domain.ClassificationJob, error)
}

// JobProcessor runs a queued job to completion.
type JobProcessor interface {
	ProcessByID(ctx context.Context, jobID string) (domain.ClassificationResult, error)
}

// JobExporter renders recent jobs as a spreadsheet.
type JobExporter interface {
	ExportXLSX(ctx context.Context) ([]byte, error)
}
