package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/trinamix-ai/documantra-saas/internal/core/domain"
)

type submitRepoFake struct {
	created *domain.ClassificationJob
	err     error
}

func (f *submitRepoFake) Create(_ context.Context, job *domain.ClassificationJob) error {
	if f.err != nil {
		return f.err
	}
	copyJob := *job
	f.created = &copyJob
	return nil
}

func (f *submitRepoFake) GetByID(context.Context, string) (*domain.ClassificationJob, error) {
	return nil, errors.New("not implemented")
}
func (f *submitRepoFake) UpdateStatus(context.Context, string, domain.JobStatus, string) error {
	return errors.New("not implemented")
}
func (f *submitRepoFake) SaveResult(context.Context, string, domain.ClassificationResult) error {
	return errors.New("not implemented")
}
func (f *submitRepoFake) ListRecent(context.Context, int) ([]domain.ClassificationJob, error) {
	return nil, errors.New("not implemented")
}

type storageFake struct {
	savedKey  string
	savedBody string
	err       error
}

func (f *storageFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.err != nil {
		return f.err
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.savedKey = key
	f.savedBody = string(raw)
	return nil
}

func (f *storageFake) Open(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

func (f *storageFake) Path(key string) string { return "/storage/" + key }

type queueFake struct {
	jobID string
	err   error
}

func (f *queueFake) PublishClassificationRequested(_ context.Context, jobID string) error {
	if f.err != nil {
		return f.err
	}
	f.jobID = jobID
	return nil
}

func (f *queueFake) SubscribeClassificationRequested(context.Context, func(context.Context, string) error) error {
	return errors.New("not implemented")
}

func TestSubmitSuccess(t *testing.T) {
	repo := &submitRepoFake{}
	storage := &storageFake{}
	queue := &queueFake{}
	uc := NewSubmitJobUseCase(repo, storage, queue)

	job, err := uc.Submit(context.Background(), "march invoice.pdf", bytes.NewBufferString("%PDF"))
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if job.ID == "" {
		t.Fatalf("expected job id")
	}
	if job.Status != domain.JobStatusQueued {
		t.Fatalf("expected status queued, got %s", job.Status)
	}
	if repo.created == nil || repo.created.Filename != "march invoice.pdf" {
		t.Fatalf("expected repo.Create with original filename, got %+v", repo.created)
	}
	if queue.jobID != job.ID {
		t.Fatalf("expected queued job id %s, got %s", job.ID, queue.jobID)
	}
	if !strings.HasSuffix(storage.savedKey, "_march_invoice.pdf") {
		t.Fatalf("expected sanitized key suffix, got %s", storage.savedKey)
	}
	if storage.savedBody != "%PDF" {
		t.Fatalf("expected saved body, got %s", storage.savedBody)
	}
}

func TestSubmitRejectsEmptyFilename(t *testing.T) {
	uc := NewSubmitJobUseCase(&submitRepoFake{}, &storageFake{}, &queueFake{})

	_, err := uc.Submit(context.Background(), "  ", bytes.NewBufferString("x"))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSubmitQueueError(t *testing.T) {
	uc := NewSubmitJobUseCase(&submitRepoFake{}, &storageFake{}, &queueFake{err: errors.New("queue down")})

	_, err := uc.Submit(context.Background(), "report.csv", bytes.NewBufferString("a,b"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "publish classification request") {
		t.Fatalf("expected publish error, got %v", err)
	}
}

func TestSanitizeFilenameKeepsExtension(t *testing.T) {
	if got := sanitizeFilename("../../etc/Q3 ledger(v2).xlsx"); got != "Q3_ledger_v2_.xlsx" {
		t.Fatalf("unexpected sanitized name %q", got)
	}
}
