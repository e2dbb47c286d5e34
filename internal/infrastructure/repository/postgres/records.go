package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const (
	serverTimeQuery      = `SELECT now() AS server_time`
	sampleDocumentsQuery = `SELECT document_id, document_name FROM documantra_docs LIMIT $1`
)

// RecordStore runs ad-hoc statements and returns rows as column-name maps.
type RecordStore struct {
	db          *sql.DB
	waitTimeout time.Duration
}

// NewRecordStore bounds every call by waitTimeout when it is positive.
func NewRecordStore(db *sql.DB, waitTimeout time.Duration) *RecordStore {
	return &RecordStore{db: db, waitTimeout: waitTimeout}
}

func (s *RecordStore) Select(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	out := make([]map[string]any, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		targets := make([]any, len(columns))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		record := make(map[string]any, len(columns))
		for i, name := range columns {
			if raw, ok := values[i].([]byte); ok {
				record[name] = string(raw)
				continue
			}
			record[name] = values[i]
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// Exec runs a write statement in its own transaction and returns the rows affected.
func (s *RecordStore) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("exec: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return affected, nil
}

func (s *RecordStore) ServerTime(ctx context.Context) ([]map[string]any, error) {
	return s.Select(ctx, serverTimeQuery)
}

func (s *RecordStore) SampleDocuments(ctx context.Context, limit int) ([]map[string]any, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.Select(ctx, sampleDocumentsQuery, limit)
}

func (s *RecordStore) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.waitTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.waitTimeout)
}
