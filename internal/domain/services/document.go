package services

import (
	"context"

	"scandoc/internal/domain/models"
)

// DocumentService sequences the multi-step operations that touch both
// the store and the external collaborators, keeping the persisted
// record consistent with the derived artifacts on disk.
type DocumentService interface {
	// CreateDocument assigns a fresh id and timestamps and persists the
	// record. Fails with a validation error if the request has no pages.
	CreateDocument(ctx context.Context, req *CreateDocumentRequest) (*models.Document, error)

	// GetDocument retrieves a document by id.
	GetDocument(ctx context.Context, id string) (*models.Document, error)

	// RunOCR extracts text from every page in order and persists the
	// concatenated result. A failed page contributes an empty string
	// (best-effort); a cancelled context persists nothing.
	RunOCR(ctx context.Context, id, languageCode string) (*models.Document, error)

	// GenerateExport renders the document to a PDF and persists the new
	// path. A previously exported file is removed once replaced.
	GenerateExport(ctx context.Context, id string) (*models.Document, error)

	// ApplyFilter runs the image filter on a single page and replaces
	// that page's path. Fails with a validation error if the page index
	// is out of range or the filter kind is unknown.
	ApplyFilter(ctx context.Context, id string, pageIndex int, kind models.FilterKind) (*models.Document, error)

	// DeleteDocument removes the document's artifact files best-effort
	// and then the store record.
	DeleteDocument(ctx context.Context, id string) error

	// MoveToFolder reassigns the document's folder; nil unfiles it.
	MoveToFolder(ctx context.Context, id string, folderID *string) (*models.Document, error)

	// SetFavorite flips the favorite flag.
	SetFavorite(ctx context.Context, id string, favorite bool) (*models.Document, error)

	// SetTags replaces the document's tags.
	SetTags(ctx context.Context, id string, tags []string) (*models.Document, error)

	// LockDocument hashes the password and marks the document locked.
	LockDocument(ctx context.Context, id, password string) (*models.Document, error)

	// UnlockDocument verifies the password and clears the lock.
	UnlockDocument(ctx context.Context, id, password string) (*models.Document, error)
}

// CreateDocumentRequest represents a document creation request
type CreateDocumentRequest struct {
	Title      string         `json:"title"`
	ImagePaths []string       `json:"image_paths"`
	FolderID   *string        `json:"folder_id,omitempty"` // nil = unfiled
	Metadata   map[string]any `json:"metadata,omitempty"`
	Tags       []string       `json:"tags,omitempty"`
}
