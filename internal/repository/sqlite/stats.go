package sqlite

import (
	"context"
	"database/sql"

	"scandoc/internal/domain/models"
	"scandoc/internal/domain/repositories"
)

// StatsRepository implements the StatsRepository interface over SQLite
type StatsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(config *RepositoryConfig) repositories.StatsRepository {
	return &StatsRepository{db: config.DB}
}

// Stats returns counts of documents, folders and settings
func (r *StatsRepository) Stats(ctx context.Context) (*models.StoreStats, error) {
	executor := GetExecutor(ctx, r.db)

	var stats models.StoreStats
	row := executor.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM documents),
			(SELECT COUNT(*) FROM folders),
			(SELECT COUNT(*) FROM settings)
	`)
	if err := row.Scan(&stats.Documents, &stats.Folders, &stats.Settings); err != nil {
		return nil, storageErr("store stats", err)
	}

	return &stats, nil
}
