package services

import (
	"context"

	"scandoc/internal/domain/models"
)

// FolderService handles folder business logic
type FolderService interface {
	// CreateFolder creates a new folder.
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)

	// GetFolder retrieves a folder by id.
	GetFolder(ctx context.Context, id string) (*models.Folder, error)

	// ListFolders lists all folders.
	ListFolders(ctx context.Context) ([]models.Folder, error)

	// UpdateFolder renames or re-describes a folder.
	UpdateFolder(ctx context.Context, id string, req *UpdateFolderRequest) (*models.Folder, error)

	// DeleteFolder removes the folder; its documents become unfiled,
	// never deleted.
	DeleteFolder(ctx context.Context, id string) error
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	ParentID    *string `json:"parent_id,omitempty"`
}

// UpdateFolderRequest represents a folder update request
type UpdateFolderRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}
