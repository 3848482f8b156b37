package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"scandoc/internal/domain"
	"scandoc/internal/domain/repositories"
)

// SettingsRepository implements the SettingsRepository interface over
// SQLite
type SettingsRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(config *RepositoryConfig) repositories.SettingsRepository {
	return &SettingsRepository{
		db:     config.DB,
		logger: config.Logger,
	}
}

// Set stores a value under a key with upsert semantics
func (r *SettingsRepository) Set(ctx context.Context, key, value string) error {
	executor := GetExecutor(ctx, r.db)

	query := `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := executor.ExecContext(ctx, query, key, value); err != nil {
		return storageErr("set setting", err)
	}

	return nil
}

// Get retrieves a value by key
func (r *SettingsRepository) Get(ctx context.Context, key string) (string, error) {
	executor := GetExecutor(ctx, r.db)

	var value string
	err := executor.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if IsNoRowsError(err) {
			return "", &domain.NotFoundError{Message: fmt.Sprintf("setting %q not found", key)}
		}
		return "", storageErr("get setting", err)
	}

	return value, nil
}

// Delete removes a key; deleting an unknown key is a no-op
func (r *SettingsRepository) Delete(ctx context.Context, key string) error {
	executor := GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key); err != nil {
		return storageErr("delete setting", err)
	}

	return nil
}
