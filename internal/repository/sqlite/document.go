package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"scandoc/internal/domain"
	"scandoc/internal/domain/models"
	"scandoc/internal/domain/repositories"
)

const documentColumns = `id, title, image_paths, pdf_path, extracted_text, folder_id,
		created_at, updated_at, metadata, tags, is_favorite, is_locked, password_hash`

// DocumentRepository implements the DocumentRepository interface over
// SQLite. Writes that change a document's folder membership recompute
// the affected folders' document_count inside the same transaction.
type DocumentRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &DocumentRepository{
		db:     config.DB,
		logger: config.Logger,
	}
}

// Create inserts a document with upsert-on-id semantics
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	imagePaths, tags, metadata, err := encodeDocumentJSON(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	return withTx(ctx, r.db, func(txCtx context.Context) error {
		executor := GetExecutor(txCtx, r.db)

		// A replaced record may move between folders; its previous
		// folder needs a recount too.
		prevFolder, _, err := r.currentFolder(txCtx, doc.ID)
		if err != nil {
			return err
		}

		query := `
			INSERT INTO documents (` + documentColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				title = excluded.title,
				image_paths = excluded.image_paths,
				pdf_path = excluded.pdf_path,
				extracted_text = excluded.extracted_text,
				folder_id = excluded.folder_id,
				updated_at = excluded.updated_at,
				metadata = excluded.metadata,
				tags = excluded.tags,
				is_favorite = excluded.is_favorite,
				is_locked = excluded.is_locked,
				password_hash = excluded.password_hash
		`
		_, err = executor.ExecContext(txCtx, query,
			doc.ID,
			doc.Title,
			imagePaths,
			doc.PDFPath,
			doc.ExtractedText,
			doc.FolderID,
			doc.CreatedAt,
			doc.UpdatedAt,
			metadata,
			tags,
			doc.IsFavorite,
			doc.IsLocked,
			doc.PasswordHash,
		)
		if err != nil {
			if IsConstraintError(err) {
				return &domain.ConflictError{
					Message:      fmt.Sprintf("document %q references an unknown folder", doc.ID),
					ResourceType: "document",
					ResourceID:   doc.ID,
				}
			}
			return storageErr("create document", err)
		}

		return r.recountFolders(txCtx, prevFolder, doc.FolderID)
	})
}

// GetByID retrieves a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = ?`

	executor := GetExecutor(ctx, r.db)
	doc, err := scanDocument(executor.QueryRowContext(ctx, query, id))
	if err != nil {
		if IsNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("document %s not found", id)}
		}
		return nil, storageErr("get document", err)
	}

	return doc, nil
}

// GetAll lists all documents, newest created first
func (r *DocumentRepository) GetAll(ctx context.Context) ([]models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents ORDER BY created_at DESC, id`
	return r.queryDocuments(ctx, query)
}

// Update replaces the full record by id
func (r *DocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	imagePaths, tags, metadata, err := encodeDocumentJSON(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	return withTx(ctx, r.db, func(txCtx context.Context) error {
		executor := GetExecutor(txCtx, r.db)

		prevFolder, exists, err := r.currentFolder(txCtx, doc.ID)
		if err != nil {
			return err
		}
		if !exists {
			return &domain.NotFoundError{Message: fmt.Sprintf("document %s not found", doc.ID)}
		}

		query := `
			UPDATE documents
			SET title = ?, image_paths = ?, pdf_path = ?, extracted_text = ?, folder_id = ?,
				updated_at = ?, metadata = ?, tags = ?, is_favorite = ?, is_locked = ?, password_hash = ?
			WHERE id = ?
		`
		_, err = executor.ExecContext(txCtx, query,
			doc.Title,
			imagePaths,
			doc.PDFPath,
			doc.ExtractedText,
			doc.FolderID,
			doc.UpdatedAt,
			metadata,
			tags,
			doc.IsFavorite,
			doc.IsLocked,
			doc.PasswordHash,
			doc.ID,
		)
		if err != nil {
			if IsConstraintError(err) {
				return &domain.ConflictError{
					Message:      fmt.Sprintf("document %q references an unknown folder", doc.ID),
					ResourceType: "document",
					ResourceID:   doc.ID,
				}
			}
			return storageErr("update document", err)
		}

		return r.recountFolders(txCtx, prevFolder, doc.FolderID)
	})
}

// Delete removes the record; deleting an unknown id is a no-op
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	return withTx(ctx, r.db, func(txCtx context.Context) error {
		executor := GetExecutor(txCtx, r.db)

		prevFolder, exists, err := r.currentFolder(txCtx, id)
		if err != nil {
			return err
		}
		if !exists {
			return nil
		}

		if _, err := executor.ExecContext(txCtx, `DELETE FROM documents WHERE id = ?`, id); err != nil {
			return storageErr("delete document", err)
		}

		r.logger.Debug("document row deleted", "id", id)

		return r.recountFolders(txCtx, prevFolder)
	})
}

// ListByFolder lists documents filtered by exact folder match; nil
// selects unfiled documents
func (r *DocumentRepository) ListByFolder(ctx context.Context, folderID *string) ([]models.Document, error) {
	if folderID == nil {
		query := `SELECT ` + documentColumns + ` FROM documents WHERE folder_id IS NULL ORDER BY created_at DESC, id`
		return r.queryDocuments(ctx, query)
	}

	query := `SELECT ` + documentColumns + ` FROM documents WHERE folder_id = ? ORDER BY created_at DESC, id`
	return r.queryDocuments(ctx, query, *folderID)
}

// Search lists documents whose title or extracted text contains the
// query. Matching is explicitly case-insensitive: both sides are
// lowered, so the behavior does not depend on column collation. An
// empty query matches everything.
func (r *DocumentRepository) Search(ctx context.Context, query string) ([]models.Document, error) {
	if query == "" {
		return r.GetAll(ctx)
	}

	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	stmt := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE LOWER(title) LIKE ? ESCAPE '\'
		   OR LOWER(IFNULL(extracted_text, '')) LIKE ? ESCAPE '\'
		ORDER BY created_at DESC, id
	`
	return r.queryDocuments(ctx, stmt, pattern, pattern)
}

// ClearFolder unfiles every document in the folder and recounts it in
// the same transaction
func (r *DocumentRepository) ClearFolder(ctx context.Context, folderID string) error {
	return withTx(ctx, r.db, func(txCtx context.Context) error {
		executor := GetExecutor(txCtx, r.db)

		query := `UPDATE documents SET folder_id = NULL, updated_at = ? WHERE folder_id = ?`
		if _, err := executor.ExecContext(txCtx, query, time.Now().UTC(), folderID); err != nil {
			return storageErr("clear folder", err)
		}

		return r.recountFolders(txCtx, &folderID)
	})
}

// currentFolder reads a document's folder id, reporting whether the row
// exists at all.
func (r *DocumentRepository) currentFolder(ctx context.Context, id string) (*string, bool, error) {
	executor := GetExecutor(ctx, r.db)

	var folderID *string
	err := executor.QueryRowContext(ctx, `SELECT folder_id FROM documents WHERE id = ?`, id).Scan(&folderID)
	if err != nil {
		if IsNoRowsError(err) {
			return nil, false, nil
		}
		return nil, false, storageErr("get document folder", err)
	}
	return folderID, true, nil
}

// recountFolders recomputes document_count for each distinct non-nil
// folder id. Runs on the ambient transaction so the count can never
// drift from the write that triggered it.
func (r *DocumentRepository) recountFolders(ctx context.Context, folderIDs ...*string) error {
	executor := GetExecutor(ctx, r.db)

	seen := make(map[string]struct{}, len(folderIDs))
	for _, folderID := range folderIDs {
		if folderID == nil {
			continue
		}
		if _, ok := seen[*folderID]; ok {
			continue
		}
		seen[*folderID] = struct{}{}

		query := `
			UPDATE folders
			SET document_count = (SELECT COUNT(*) FROM documents WHERE folder_id = folders.id)
			WHERE id = ?
		`
		if _, err := executor.ExecContext(ctx, query, *folderID); err != nil {
			return storageErr("recount folder", err)
		}
	}

	return nil
}

func (r *DocumentRepository) queryDocuments(ctx context.Context, query string, args ...any) ([]models.Document, error) {
	executor := GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list documents", err)
	}
	defer rows.Close()

	var documents []models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, storageErr("scan document", err)
		}
		documents = append(documents, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate documents", err)
	}

	// Return empty slice instead of nil
	if documents == nil {
		documents = []models.Document{}
	}

	return documents, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*models.Document, error) {
	var doc models.Document
	var imagePaths, metadata, tags string

	err := row.Scan(
		&doc.ID,
		&doc.Title,
		&imagePaths,
		&doc.PDFPath,
		&doc.ExtractedText,
		&doc.FolderID,
		&doc.CreatedAt,
		&doc.UpdatedAt,
		&metadata,
		&tags,
		&doc.IsFavorite,
		&doc.IsLocked,
		&doc.PasswordHash,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(imagePaths), &doc.ImagePaths); err != nil {
		return nil, fmt.Errorf("decode image paths: %w", err)
	}
	if err := json.Unmarshal([]byte(metadata), &doc.Metadata); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &doc.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}

	return &doc, nil
}

// encodeDocumentJSON serializes the slice/map fields for storage. Page
// order is preserved exactly as given.
func encodeDocumentJSON(doc *models.Document) (imagePaths, tags, metadata string, err error) {
	paths := doc.ImagePaths
	if paths == nil {
		paths = []string{}
	}
	b, err := json.Marshal(paths)
	if err != nil {
		return "", "", "", err
	}
	imagePaths = string(b)

	tagList := doc.Tags
	if tagList == nil {
		tagList = []string{}
	}
	b, err = json.Marshal(tagList)
	if err != nil {
		return "", "", "", err
	}
	tags = string(b)

	meta := doc.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	b, err = json.Marshal(meta)
	if err != nil {
		return "", "", "", err
	}
	metadata = string(b)

	return imagePaths, tags, metadata, nil
}

// escapeLike escapes LIKE wildcards so a user query matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
