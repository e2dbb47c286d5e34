package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/trinamix-ai/documantra-saas/internal/config"
)

// Pool is a pgx connection pool exposed through database/sql.
type Pool struct {
	DB   *sql.DB
	pgx  *pgxpool.Pool
	conf config.Database
}

// OpenPool builds the pool from the database properties and pings it once.
// Credentials from the properties file override any in the DSN.
func OpenPool(ctx context.Context, cfg config.Database) (*Pool, error) {
	poolCfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	db.SetMaxOpenConns(cfg.MaxPoolSize)
	db.SetMaxIdleConns(cfg.MinPoolSize)
	if cfg.IdleTimeout > 0 {
		db.SetConnMaxIdleTime(cfg.IdleTimeout)
	}

	pingCtx := ctx
	if cfg.WaitTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.WaitTimeout)
		defer cancel()
	}
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return &Pool{DB: db, pgx: pool, conf: cfg}, nil
}

func poolConfig(cfg config.Database) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	poolCfg.ConnConfig.User = cfg.User
	poolCfg.ConnConfig.Password = cfg.Password
	poolCfg.MinConns = int32(cfg.MinPoolSize)
	poolCfg.MaxConns = int32(cfg.MaxPoolSize)
	if cfg.IdleTimeout > 0 {
		poolCfg.MaxConnIdleTime = cfg.IdleTimeout
	}
	return poolCfg, nil
}

// Records returns a RecordStore bound to this pool's acquire timeout.
func (p *Pool) Records() *RecordStore {
	return NewRecordStore(p.DB, p.conf.WaitTimeout)
}

func (p *Pool) Close() {
	_ = p.DB.Close()
	p.pgx.Close()
}
