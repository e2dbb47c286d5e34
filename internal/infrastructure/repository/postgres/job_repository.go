package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/trinamix-ai/documantra-saas/internal/core/domain"
)

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026101701)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS classification_jobs (
	id TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	storage_path TEXT NOT NULL,
	status TEXT NOT NULL,
	category TEXT,
	label TEXT,
	answer TEXT,
	error_message TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_classification_jobs_status ON classification_jobs(status);
CREATE INDEX IF NOT EXISTS idx_classification_jobs_created_at ON classification_jobs(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *JobRepository) Create(ctx context.Context, job *domain.ClassificationJob) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO classification_jobs (
	id, filename, storage_path, status, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6)
`, job.ID, job.Filename, job.StoragePath, string(job.Status), job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert classification job: %w", err)
	}
	return nil
}

const selectJobColumns = `
SELECT id, filename, storage_path, status,
	COALESCE(category, ''), COALESCE(label, ''), COALESCE(answer, ''), COALESCE(error_message, ''),
	created_at, updated_at
FROM classification_jobs`

func (r *JobRepository) GetByID(ctx context.Context, id string) (*domain.ClassificationJob, error) {
	row := r.db.QueryRowContext(ctx, selectJobColumns+`
WHERE id = $1
`, id)

	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrJobNotFound, "get classification job", fmt.Errorf("id=%s", id))
		}
		return nil, fmt.Errorf("scan classification job: %w", err)
	}
	return &job, nil
}

func (r *JobRepository) ListRecent(ctx context.Context, limit int) ([]domain.ClassificationJob, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx, selectJobColumns+`
ORDER BY created_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list classification jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]domain.ClassificationJob, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan classification job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate classification jobs: %w", err)
	}
	return jobs, nil
}

func (r *JobRepository) UpdateStatus(ctx context.Context, id string, status domain.JobStatus, errMessage string) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE classification_jobs
SET status = $2, error_message = $3, updated_at = $4
WHERE id = $1
`, id, string(status), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update job status: %w", err)
	}
	return requireAffected(result, "update job status", id)
}

func (r *JobRepository) SaveResult(ctx context.Context, id string, res domain.ClassificationResult) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE classification_jobs
SET category = $2, label = $3, answer = $4, updated_at = $5
WHERE id = $1
`, id, string(res.Category.Kind), res.Label, res.Answer, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save classification result: %w", err)
	}
	return requireAffected(result, "save classification result", id)
}

func requireAffected(result sql.Result, operation, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", operation, err)
	}
	if rows == 0 {
		return domain.WrapError(domain.ErrJobNotFound, operation, fmt.Errorf("id=%s", id))
	}
	return nil
}

type jobScanner interface {
	Scan(dest ...any) error
}

func scanJob(row jobScanner) (domain.ClassificationJob, error) {
	var job domain.ClassificationJob
	var status, category string
	err := row.Scan(
		&job.ID,
		&job.Filename,
		&job.StoragePath,
		&status,
		&category,
		&job.Label,
		&job.Answer,
		&job.Error,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return domain.ClassificationJob{}, err
	}
	job.Status = domain.JobStatus(status)
	job.Category = domain.CategoryKind(category)
	return job, nil
}
