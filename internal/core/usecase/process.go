package usecase

import (
	"context"
	"fmt"

	"github.com/trinamix-ai/documantra-saas/internal/core/domain"
	"github.com/trinamix-ai/documantra-saas/internal/core/ports"
)

type ProcessJobUseCase struct {
	repo       ports.JobRepository
	storage    ports.ObjectStorage
	classifier ports.DocumentClassifier
}

func NewProcessJobUseCase(
	repo ports.JobRepository,
	storage ports.ObjectStorage,
	classifier ports.DocumentClassifier,
) *ProcessJobUseCase {
	return &ProcessJobUseCase{
		repo:       repo,
		storage:    storage,
		classifier: classifier,
	}
}

func (uc *ProcessJobUseCase) ProcessByID(ctx context.Context, jobID string) (domain.ClassificationResult, error) {
	if err := uc.markStatus(ctx, jobID, domain.JobStatusProcessing, ""); err != nil {
		return domain.ClassificationResult{}, fmt.Errorf("set status=processing: %w", err)
	}

	result, err := uc.run(ctx, jobID)
	if err != nil {
		if failErr := uc.markFailed(ctx, jobID, err); failErr != nil {
			return domain.ClassificationResult{}, fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return domain.ClassificationResult{}, err
	}

	if err := uc.markStatus(ctx, jobID, domain.JobStatusDone, ""); err != nil {
		return result, fmt.Errorf("set status=done: %w", err)
	}
	return result, nil
}

func (uc *ProcessJobUseCase) run(ctx context.Context, jobID string) (domain.ClassificationResult, error) {
	job, err := uc.repo.GetByID(ctx, jobID)
	if err != nil {
		return domain.ClassificationResult{}, fmt.Errorf("fetch job by id: %w", err)
	}

	result, err := uc.classifier.ClassifyFile(ctx, uc.storage.Path(job.StoragePath))
	if err != nil {
		return domain.ClassificationResult{}, fmt.Errorf("classify stored document: %w", err)
	}
	// Report the uploaded name rather than the storage key.
	result.File = job.Filename

	if err := uc.repo.SaveResult(ctx, jobID, result); err != nil {
		return domain.ClassificationResult{}, fmt.Errorf("save classification result: %w", err)
	}
	return result, nil
}

func (uc *ProcessJobUseCase) markStatus(ctx context.Context, jobID string, status domain.JobStatus, errMessage string) error {
	return uc.repo.UpdateStatus(ctx, jobID, status, errMessage)
}

func (uc *ProcessJobUseCase) markFailed(ctx context.Context, jobID string, processErr error) error {
	if processErr == nil {
		return nil
	}
	return uc.markStatus(ctx, jobID, domain.JobStatusFailed, processErr.Error())
}
