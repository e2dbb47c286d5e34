package domain

import "time"

type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusDone       JobStatus = "done"
	JobStatusFailed     JobStatus = "failed"
)

// ClassificationJob tracks one uploaded document through the async worker.
type ClassificationJob struct {
	ID          string       `json:"id"`
	Filename    string       `json:"filename"`
	StoragePath string       `json:"storage_path"`
	Status      JobStatus    `json:"status"`
	Category    CategoryKind `json:"category,omitempty"`
	Label       string       `json:"label,omitempty"`
	Answer      string       `json:"answer,omitempty"`
	Error       string       `json:"error,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
