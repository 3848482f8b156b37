package services

import (
	"context"

	"scandoc/internal/domain/models"
)

// The collaborators are the external engines the lifecycle layer calls
// into. They are implemented by the host application (platform OCR, PDF
// renderer, image pipeline); this core only defines the contracts and
// degrades gracefully when a call fails.

// OCRService extracts text from a single page image. A failed
// extraction is reported through the error; the caller treats it as an
// empty page rather than aborting the document.
type OCRService interface {
	ExtractText(ctx context.Context, imagePath, languageCode string) (string, error)
}

// PDFService renders a document's pages (and optionally its extracted
// text) into a PDF file and returns the file path. An empty path with a
// nil error means the collaborator declined to produce output.
type PDFService interface {
	Generate(ctx context.Context, title string, imagePaths []string, extractedText string) (string, error)
}

// ImageFilterService applies a filter to one page image and returns the
// path of the processed image. An empty path with a nil error means the
// page is unchanged.
type ImageFilterService interface {
	Apply(ctx context.Context, imagePath string, kind models.FilterKind) (string, error)
}
