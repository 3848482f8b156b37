package repositories

import (
	"context"

	"scandoc/internal/domain/models"
)

// FolderRepository defines data access operations for folders
type FolderRepository interface {
	// Create inserts a folder with upsert-on-id semantics, mirroring
	// DocumentRepository.Create.
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by id; domain.ErrNotFound if missing.
	GetByID(ctx context.Context, id string) (*models.Folder, error)

	// GetAll lists every folder, newest created first.
	GetAll(ctx context.Context) ([]models.Folder, error)

	// Update replaces name, description, parent and updated_at by id.
	// DocumentCount is store-maintained and ignored on write. A missing
	// id yields domain.ErrNotFound.
	Update(ctx context.Context, folder *models.Folder) error

	// Delete unfiles the folder's documents and removes the folder row
	// in one transaction; both happen or neither does. Deleting an
	// unknown id is a no-op. Contained documents are never deleted.
	Delete(ctx context.Context, id string) error
}
