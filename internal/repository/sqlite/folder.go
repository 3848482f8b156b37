package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"scandoc/internal/domain"
	"scandoc/internal/domain/models"
	"scandoc/internal/domain/repositories"
)

const folderColumns = `id, name, description, parent_id, document_count, created_at, updated_at`

// FolderRepository implements the FolderRepository interface over SQLite
type FolderRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &FolderRepository{
		db:     config.DB,
		logger: config.Logger,
	}
}

// Create inserts a folder with upsert-on-id semantics. The stored
// document_count is always recomputed, never trusted from the caller.
func (r *FolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	return withTx(ctx, r.db, func(txCtx context.Context) error {
		executor := GetExecutor(txCtx, r.db)

		query := `
			INSERT INTO folders (id, name, description, parent_id, document_count, created_at, updated_at)
			VALUES (?, ?, ?, ?,
				(SELECT COUNT(*) FROM documents WHERE folder_id = ?),
				?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				description = excluded.description,
				parent_id = excluded.parent_id,
				updated_at = excluded.updated_at
		`
		_, err := executor.ExecContext(txCtx, query,
			folder.ID,
			folder.Name,
			folder.Description,
			folder.ParentID,
			folder.ID,
			folder.CreatedAt,
			folder.UpdatedAt,
		)
		if err != nil {
			return storageErr("create folder", err)
		}

		return nil
	})
}

// GetByID retrieves a folder by ID
func (r *FolderRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	query := `SELECT ` + folderColumns + ` FROM folders WHERE id = ?`

	executor := GetExecutor(ctx, r.db)

	var folder models.Folder
	err := executor.QueryRowContext(ctx, query, id).Scan(
		&folder.ID,
		&folder.Name,
		&folder.Description,
		&folder.ParentID,
		&folder.DocumentCount,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)
	if err != nil {
		if IsNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", id)}
		}
		return nil, storageErr("get folder", err)
	}

	return &folder, nil
}

// GetAll lists all folders, newest created first
func (r *FolderRepository) GetAll(ctx context.Context) ([]models.Folder, error) {
	query := `SELECT ` + folderColumns + ` FROM folders ORDER BY created_at DESC, id`

	executor := GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, storageErr("list folders", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		err := rows.Scan(
			&folder.ID,
			&folder.Name,
			&folder.Description,
			&folder.ParentID,
			&folder.DocumentCount,
			&folder.CreatedAt,
			&folder.UpdatedAt,
		)
		if err != nil {
			return nil, storageErr("scan folder", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate folders", err)
	}

	// Return empty slice instead of nil
	if folders == nil {
		folders = []models.Folder{}
	}

	return folders, nil
}

// Update replaces name, description and parent by id
func (r *FolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	executor := GetExecutor(ctx, r.db)

	query := `
		UPDATE folders
		SET name = ?, description = ?, parent_id = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := executor.ExecContext(ctx, query,
		folder.Name,
		folder.Description,
		folder.ParentID,
		folder.UpdatedAt,
		folder.ID,
	)
	if err != nil {
		return storageErr("update folder", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storageErr("update folder", err)
	}
	if rows == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", folder.ID)}
	}

	return nil
}

// Delete unfiles the folder's documents and removes the folder row in
// one transaction. Contained documents survive with folder_id NULL.
func (r *FolderRepository) Delete(ctx context.Context, id string) error {
	return withTx(ctx, r.db, func(txCtx context.Context) error {
		executor := GetExecutor(txCtx, r.db)

		unfile := `UPDATE documents SET folder_id = NULL, updated_at = ? WHERE folder_id = ?`
		if _, err := executor.ExecContext(txCtx, unfile, time.Now().UTC(), id); err != nil {
			return storageErr("unfile documents", err)
		}

		if _, err := executor.ExecContext(txCtx, `DELETE FROM folders WHERE id = ?`, id); err != nil {
			return storageErr("delete folder", err)
		}

		r.logger.Debug("folder deleted", "id", id)

		return nil
	})
}
