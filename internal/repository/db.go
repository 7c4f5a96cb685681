package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/upay-labs/docuflow/internal/common"
)

// Open connects using the configured driver. "pgx" targets Postgres;
// "sqlite" targets a local file for single-binary deployments. The DDL and
// all queries are written to run on both.
func Open(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	logger.Info("connecting to database", "driver", cfg.Driver)
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MaxConnLifetime)

	pingCtx := ctx
	if cfg.HealthTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.HealthTimeout)
		defer cancel()
	}
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("database ping failed", "error", err)
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	logger.Info("successfully connected to database")
	return db, nil
}

// EnsureSchema creates the pipeline tables when they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	original_filename TEXT NOT NULL,
	stored_filename TEXT NOT NULL,
	file_path TEXT NOT NULL,
	file_size_mb DOUBLE PRECISION NOT NULL DEFAULT 0,
	file_type TEXT NOT NULL,
	category TEXT,
	city TEXT NOT NULL DEFAULT '',
	center_id TEXT,
	status TEXT NOT NULL,
	uploader_id TEXT NOT NULL,
	uploaded_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS queue_entries (
	id TEXT PRIMARY KEY,
	document_id TEXT NOT NULL UNIQUE,
	status TEXT NOT NULL,
	progress_percent INTEGER NOT NULL DEFAULT 0,
	priority INTEGER NOT NULL DEFAULT 0,
	error_log TEXT,
	queued_at TIMESTAMPTZ NOT NULL,
	completed_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS extracted_fields (
	id TEXT PRIMARY KEY,
	document_id TEXT NOT NULL,
	field_name TEXT NOT NULL,
	field_value TEXT NOT NULL,
	confidence_score INTEGER NOT NULL DEFAULT 0,
	field_position TEXT NOT NULL DEFAULT '',
	validation_status TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_documents_status ON documents(status);
CREATE INDEX IF NOT EXISTS idx_queue_entries_status ON queue_entries(status);
CREATE INDEX IF NOT EXISTS idx_extracted_fields_document ON extracted_fields(document_id);
`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}
	return nil
}

// Close closes the database connection gracefully.
func Close(db *sql.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
		return
	}
	logger.Info("database connection closed")
}

// HealthCheck pings the database with a bounded timeout.
func HealthCheck(ctx context.Context, db *sql.DB, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return db.PingContext(ctx)
}
