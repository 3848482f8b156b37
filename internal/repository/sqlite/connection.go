package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"scandoc/internal/domain/repositories"
	"scandoc/internal/repository/sqlite/migrations"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	DB     *sql.DB
	Logger *slog.Logger
}

// Open opens (or creates) the document store database, applies the
// pragmas the store relies on and runs pending schema migrations.
// Concurrent reads are always safe; writes serialize through SQLite's
// single-writer model plus the transactions the repositories take.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Referential integrity for documents.folder_id, WAL for concurrent
	// readers during writes.
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// GetExecutor returns the appropriate query executor for the context.
// If a transaction is present in the context, it returns the
// transaction; otherwise the database handle. This lets repositories
// automatically participate in transactions when they exist.
func GetExecutor(ctx context.Context, db *sql.DB) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return db
}

// withTx runs fn inside a transaction. If the context already carries
// one, fn joins it and commit/rollback stay with the outer owner;
// otherwise a transaction is opened for the duration of fn. The
// folder-count bookkeeping depends on this: the triggering write and
// the recount must never interleave with another writer.
func withTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context) error) error {
	if repositories.GetTx(ctx) != nil {
		return fn(ctx)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(repositories.SetTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
