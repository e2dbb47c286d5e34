package ports

import (
	"context"
	"io"

	"github.com/trinamix-ai/documantra-saas/internal/core/domain"
)

// TextExtractionService turns raw document bytes into pages of text lines.
type TextExtractionService interface {
	ExtractText(ctx context.Context, content []byte, compartmentID string) ([]domain.Page, error)
}

// ChatClassificationService sends a single-turn, non-streaming chat request and returns the answer text.
type ChatClassificationService interface {
	Chat(ctx context.Context, req domain.ChatRequest) (string, error)
}

// JobRepository persists async classification jobs.
type JobRepository interface {
	Create(ctx context.Context, job *domain.ClassificationJob) error
	GetByID(ctx context.Context, id string) (*domain.ClassificationJob, error)
	UpdateStatus(ctx context.Context, id string, status domain.JobStatus, errMessage string) error
	SaveResult(ctx context.Context, id string, result domain.ClassificationResult) error
	ListRecent(ctx context.Context, limit int) ([]domain.ClassificationJob, error)
}

// ObjectStorage stores uploaded documents on a filesystem the pipeline can read by path.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Path(key string) string
}

// MessageQueue publishes/consumes classification requests.
type MessageQueue interface {
	PublishClassificationRequested(ctx context.Context, jobID string) error
	SubscribeClassificationRequested(ctx context.Context, handler func(context.Context, string) error) error
}

// RecordQuerier runs the read probes exposed by the HTTP surface.
type RecordQuerier interface {
	ServerTime(ctx context.Context) ([]map[string]any, error)
	SampleDocuments(ctx context.Context, limit int) ([]map[string]any, error)
}
