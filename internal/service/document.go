package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"scandoc/internal/config"
	"scandoc/internal/domain"
	"scandoc/internal/domain/models"
	"scandoc/internal/domain/repositories"
	"scandoc/internal/domain/services"
	"scandoc/internal/filters"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// PageBreakSeparator joins per-page OCR output in the persisted
// extracted text. The marker is part of the stored format; changing it
// would silently alter every document's text.
const PageBreakSeparator = "\n\n--- Page Break ---\n\n"

// documentService implements the DocumentService interface
type documentService struct {
	docRepo    repositories.DocumentRepository
	folderRepo repositories.FolderRepository
	ocr        services.OCRService
	pdf        services.PDFService
	filter     services.ImageFilterService
	registry   *filters.Registry
	locks      *keyedMutex
	logger     *slog.Logger
}

// NewDocumentService creates a new document lifecycle service
func NewDocumentService(
	docRepo repositories.DocumentRepository,
	folderRepo repositories.FolderRepository,
	ocr services.OCRService,
	pdf services.PDFService,
	filter services.ImageFilterService,
	registry *filters.Registry,
	logger *slog.Logger,
) services.DocumentService {
	return &documentService{
		docRepo:    docRepo,
		folderRepo: folderRepo,
		ocr:        ocr,
		pdf:        pdf,
		filter:     filter,
		registry:   registry,
		locks:      newKeyedMutex(),
		logger:     logger,
	}
}

// CreateDocument assigns a fresh id and timestamps and persists the
// record
func (s *documentService) CreateDocument(ctx context.Context, req *services.CreateDocumentRequest) (*models.Document, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if req.FolderID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.FolderID); err != nil {
			return nil, err
		}
	}

	var metadata map[string]any
	if req.Metadata != nil {
		metadata = make(map[string]any, len(req.Metadata))
		for k, v := range req.Metadata {
			metadata[k] = v
		}
	}

	now := time.Now().UTC()
	doc := &models.Document{
		ID:         uuid.NewString(),
		Title:      strings.TrimSpace(req.Title),
		ImagePaths: append([]string(nil), req.ImagePaths...),
		FolderID:   req.FolderID,
		CreatedAt:  now,
		UpdatedAt:  now,
		Metadata:   metadata,
		Tags:       append([]string(nil), req.Tags...),
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document created",
		"id", doc.ID,
		"title", doc.Title,
		"pages", doc.PageCount(),
		"folder_id", req.FolderID,
	)

	return doc, nil
}

// GetDocument retrieves a document by id
func (s *documentService) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	return s.docRepo.GetByID(ctx, id)
}

// RunOCR extracts text from every page in order and persists the
// concatenated result. A page the collaborator fails on contributes an
// empty string; the scan workflow is never blocked by a single bad
// page. Nothing is persisted if the context is cancelled mid-run.
func (s *documentService) RunOCR(ctx context.Context, id, languageCode string) (*models.Document, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(doc.ImagePaths))
	for i, path := range doc.ImagePaths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := s.ocr.ExtractText(ctx, path, languageCode)
		if err != nil {
			collabErr := &domain.CollaboratorError{Collaborator: "ocr", Err: err}
			s.logger.Warn("page OCR failed, continuing with empty text",
				"id", id,
				"page", i,
				"error", collabErr,
			)
			text = ""
		}
		texts = append(texts, text)
	}

	// All-or-nothing at the persist boundary: a cancelled run discards
	// the per-page work instead of writing a partial result.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	joined := strings.Join(texts, PageBreakSeparator)
	doc.ExtractedText = &joined
	if doc.Metadata == nil {
		doc.Metadata = map[string]any{}
	}
	doc.Metadata["ocr_language"] = languageCode
	doc.UpdatedAt = time.Now().UTC()

	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("OCR completed",
		"id", id,
		"language", languageCode,
		"pages", len(texts),
		"has_text", doc.HasOCRText(),
	)

	return doc, nil
}

// GenerateExport renders the document to a PDF and persists the new
// path. The previously exported file, if any, is removed once the new
// record is safely persisted.
func (s *documentService) GenerateExport(ctx context.Context, id string) (*models.Document, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	extracted := ""
	if doc.ExtractedText != nil {
		extracted = *doc.ExtractedText
	}

	path, err := s.pdf.Generate(ctx, doc.Title, doc.ImagePaths, extracted)
	if err != nil {
		collabErr := &domain.CollaboratorError{Collaborator: "pdf", Err: err}
		s.logger.Warn("PDF export failed, document unchanged", "id", id, "error", collabErr)
		return doc, nil
	}
	if path == "" {
		s.logger.Warn("PDF collaborator produced no output, document unchanged", "id", id)
		return doc, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	previous := doc.PDFPath
	doc.PDFPath = &path
	doc.UpdatedAt = time.Now().UTC()

	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	if previous != nil && *previous != path {
		s.removeFile(*previous, "stale pdf")
	}

	s.logger.Info("PDF exported", "id", id, "path", path)

	return doc, nil
}

// ApplyFilter runs the image filter collaborator on one page and
// replaces that page's path, leaving the others untouched
func (s *documentService) ApplyFilter(ctx context.Context, id string, pageIndex int, kind models.FilterKind) (*models.Document, error) {
	if !s.registry.Has(kind) {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("unknown filter kind: %q", string(kind))}
	}

	unlock := s.locks.lock(id)
	defer unlock()

	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if pageIndex < 0 || pageIndex >= doc.PageCount() {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("page index %d out of range for %d pages", pageIndex, doc.PageCount()),
		}
	}

	previous := doc.ImagePaths[pageIndex]
	newPath, err := s.filter.Apply(ctx, previous, kind)
	if err != nil {
		collabErr := &domain.CollaboratorError{Collaborator: "filter", Err: err}
		s.logger.Warn("filter failed, page unchanged", "id", id, "page", pageIndex, "error", collabErr)
		return doc, nil
	}
	if newPath == "" || newPath == previous {
		return doc, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc.ImagePaths[pageIndex] = newPath
	doc.UpdatedAt = time.Now().UTC()

	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	s.removeFile(previous, "replaced page image")

	s.logger.Info("filter applied",
		"id", id,
		"page", pageIndex,
		"kind", string(kind),
	)

	return doc, nil
}

// DeleteDocument removes the document's artifact files and then the
// store record. Files go first: a crash mid-delete leaves at most a
// record pointing at missing files, which readers already tolerate,
// never an unreachable file on disk.
func (s *documentService) DeleteDocument(ctx context.Context, id string) error {
	unlock := s.locks.lock(id)
	defer unlock()

	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	for _, path := range doc.ImagePaths {
		s.removeFile(path, "page image")
	}
	if doc.PDFPath != nil {
		s.removeFile(*doc.PDFPath, "pdf")
	}

	if err := s.docRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("document deleted", "id", id, "pages", doc.PageCount())

	return nil
}

// MoveToFolder reassigns the document's folder; nil unfiles it
func (s *documentService) MoveToFolder(ctx context.Context, id string, folderID *string) (*models.Document, error) {
	if folderID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *folderID); err != nil {
			return nil, err
		}
	}

	return s.mutate(ctx, id, func(doc *models.Document) error {
		doc.FolderID = folderID
		return nil
	})
}

// SetFavorite flips the favorite flag
func (s *documentService) SetFavorite(ctx context.Context, id string, favorite bool) (*models.Document, error) {
	return s.mutate(ctx, id, func(doc *models.Document) error {
		doc.IsFavorite = favorite
		return nil
	})
}

// SetTags replaces the document's tags
func (s *documentService) SetTags(ctx context.Context, id string, tags []string) (*models.Document, error) {
	return s.mutate(ctx, id, func(doc *models.Document) error {
		doc.Tags = append([]string(nil), tags...)
		return nil
	})
}

// LockDocument hashes the password and marks the document locked. The
// clear text never reaches the store.
func (s *documentService) LockDocument(ctx context.Context, id, password string) (*models.Document, error) {
	if password == "" {
		return nil, &domain.ValidationError{Message: "password must not be empty"}
	}

	return s.mutate(ctx, id, func(doc *models.Document) error {
		if err := doc.SetPassword(password); err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		doc.IsLocked = true
		return nil
	})
}

// UnlockDocument verifies the password and clears the lock
func (s *documentService) UnlockDocument(ctx context.Context, id, password string) (*models.Document, error) {
	return s.mutate(ctx, id, func(doc *models.Document) error {
		if !doc.IsLocked {
			return nil
		}
		if !doc.VerifyPassword(password) {
			return &domain.ValidationError{Message: "wrong password"}
		}
		doc.IsLocked = false
		doc.PasswordHash = nil
		return nil
	})
}

// mutate runs a read-modify-write cycle under the document's lock.
func (s *documentService) mutate(ctx context.Context, id string, fn func(doc *models.Document) error) (*models.Document, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(doc); err != nil {
		return nil, err
	}
	doc.UpdatedAt = time.Now().UTC()

	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// removeFile deletes an artifact best-effort: a missing file is fine,
// anything else is logged and ignored.
func (s *documentService) removeFile(path, what string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove file", "what", what, "path", path, "error", err)
	}
}

// validateCreateRequest validates a document creation request
func (s *documentService) validateCreateRequest(req *services.CreateDocumentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxTitleLength),
		),
		validation.Field(&req.ImagePaths,
			validation.Required.Error("at least one page image is required"),
			validation.Each(validation.Required),
		),
	)
}
