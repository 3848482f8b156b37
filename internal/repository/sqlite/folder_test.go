package sqlite

import (
	"context"
	"testing"
	"time"

	"scandoc/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFolderRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	config := newTestConfig(t)
	repo := NewFolderRepository(config)

	description := "yearly tax paperwork"
	parent := newTestFolder("Finance")
	require.NoError(t, repo.Create(ctx, parent))

	folder := newTestFolder("Taxes")
	folder.Description = &description
	folder.ParentID = &parent.ID
	require.NoError(t, repo.Create(ctx, folder))

	got, err := repo.GetByID(ctx, folder.ID)
	require.NoError(t, err)
	assert.Equal(t, "Taxes", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, description, *got.Description)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, parent.ID, *got.ParentID)
	assert.Equal(t, 0, got.DocumentCount)
}

func TestFolderRepository_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	config := newTestConfig(t)
	repo := NewFolderRepository(config)

	_, err := repo.GetByID(ctx, "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFolderRepository_CreateUpsertKeepsDocumentCount(t *testing.T) {
	ctx := context.Background()
	config := newTestConfig(t)
	folderRepo := NewFolderRepository(config)
	docRepo := NewDocumentRepository(config)

	folder := newTestFolder("Scans")
	require.NoError(t, folderRepo.Create(ctx, folder))
	require.NoError(t, docRepo.Create(ctx, newTestDocument("In Folder", &folder.ID)))

	// Re-creating the same id renames it but must not clobber the count
	renamed := newTestFolder("Scans Renamed")
	renamed.ID = folder.ID
	require.NoError(t, folderRepo.Create(ctx, renamed))

	got, err := folderRepo.GetByID(ctx, folder.ID)
	require.NoError(t, err)
	assert.Equal(t, "Scans Renamed", got.Name)
	assert.Equal(t, 1, got.DocumentCount)
}

func TestFolderRepository_Update(t *testing.T) {
	ctx := context.Background()
	config := newTestConfig(t)
	repo := NewFolderRepository(config)

	folder := newTestFolder("Old Name")
	require.NoError(t, repo.Create(ctx, folder))

	folder.Name = "New Name"
	folder.UpdatedAt = folder.UpdatedAt.Add(time.Minute)
	require.NoError(t, repo.Update(ctx, folder))

	got, err := repo.GetByID(ctx, folder.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
}

func TestFolderRepository_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	config := newTestConfig(t)
	repo := NewFolderRepository(config)

	ghost := newTestFolder("Ghost")
	ghost.ID = uuid.NewString()

	err := repo.Update(ctx, ghost)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFolderRepository_DeleteUnfilesDocuments(t *testing.T) {
	ctx := context.Background()
	config := newTestConfig(t)
	folderRepo := NewFolderRepository(config)
	docRepo := NewDocumentRepository(config)

	folder := newTestFolder("Doomed")
	require.NoError(t, folderRepo.Create(ctx, folder))

	doc := newTestDocument("Survivor", &folder.ID)
	require.NoError(t, docRepo.Create(ctx, doc))

	require.NoError(t, folderRepo.Delete(ctx, folder.ID))

	_, err := folderRepo.GetByID(ctx, folder.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The document survives, unfiled, with updated_at refreshed
	got, err := docRepo.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Nil(t, got.FolderID)
	assert.True(t, got.UpdatedAt.After(doc.UpdatedAt))
}

func TestFolderRepository_Delete_Idempotent(t *testing.T) {
	ctx := context.Background()
	config := newTestConfig(t)
	repo := NewFolderRepository(config)

	require.NoError(t, repo.Delete(ctx, "never-existed"))
}

func TestFolderRepository_GetAll(t *testing.T) {
	ctx := context.Background()
	config := newTestConfig(t)
	repo := NewFolderRepository(config)

	got, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)

	require.NoError(t, repo.Create(ctx, newTestFolder("One")))
	require.NoError(t, repo.Create(ctx, newTestFolder("Two")))

	got, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
