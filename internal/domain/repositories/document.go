package repositories

import (
	"context"

	"scandoc/internal/domain/models"
)

// DocumentRepository defines data access operations for documents.
//
// Every write that changes which folder a document belongs to (Create,
// Update, Delete, ClearFolder) recomputes the affected folders'
// DocumentCount inside the same transaction as the triggering write.
type DocumentRepository interface {
	// Create inserts a document. Insert is an idempotent upsert: a
	// colliding id replaces the existing record.
	Create(ctx context.Context, doc *models.Document) error

	// GetByID retrieves a document by id. A missing id yields
	// domain.ErrNotFound; callers that consider absence normal match it
	// with errors.Is.
	GetByID(ctx context.Context, id string) (*models.Document, error)

	// GetAll lists every document, newest created first.
	GetAll(ctx context.Context) ([]models.Document, error)

	// Update replaces the full record by id. A missing id yields
	// domain.ErrNotFound.
	Update(ctx context.Context, doc *models.Document) error

	// Delete removes the record. Deleting an unknown id is a no-op.
	// Files referenced by the record are the lifecycle layer's
	// responsibility, not the store's.
	Delete(ctx context.Context, id string) error

	// ListByFolder lists documents in a folder, newest created first.
	// nil selects unfiled documents.
	ListByFolder(ctx context.Context, folderID *string) ([]models.Document, error)

	// Search lists documents whose title or extracted text contains the
	// query, case-insensitively. An empty query matches everything.
	Search(ctx context.Context, query string) ([]models.Document, error)

	// ClearFolder unfiles every document in the given folder (folder id
	// set to NULL, updated_at refreshed).
	ClearFolder(ctx context.Context, folderID string) error
}
