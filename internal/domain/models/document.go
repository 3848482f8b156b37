package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Document is a scanned, possibly multi-page, user artifact. ImagePaths
// holds one opaque file reference per page in page order. ExtractedText
// and PDFPath are derived artifacts and are never assumed to be in sync
// with the pages: a document can legitimately carry pages with no OCR
// text, or a PDF older than its latest text.
type Document struct {
	ID            string         `json:"id" db:"id"`
	Title         string         `json:"title" db:"title"`
	ImagePaths    []string       `json:"image_paths" db:"image_paths"`
	PDFPath       *string        `json:"pdf_path,omitempty" db:"pdf_path"`           // NULL until export is performed
	ExtractedText *string        `json:"extracted_text,omitempty" db:"extracted_text"` // NULL until OCR is run
	FolderID      *string        `json:"folder_id,omitempty" db:"folder_id"`         // NULL = unfiled
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
	Metadata      map[string]any `json:"metadata" db:"metadata"`
	Tags          []string       `json:"tags" db:"tags"`
	IsFavorite    bool           `json:"is_favorite" db:"is_favorite"`
	IsLocked      bool           `json:"is_locked" db:"is_locked"`
	PasswordHash  *string        `json:"-" db:"password_hash"` // bcrypt hash, never the clear text
}

// PageCount reports the number of scanned pages.
func (d *Document) PageCount() int { return len(d.ImagePaths) }

// HasOCRText reports whether OCR has produced non-empty text.
func (d *Document) HasOCRText() bool {
	return d.ExtractedText != nil && *d.ExtractedText != ""
}

// HasPDF reports whether an export artifact exists.
func (d *Document) HasPDF() bool { return d.PDFPath != nil }

// SetPassword hashes the given password with bcrypt and stores the hash.
func (d *Document) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	h := string(hash)
	d.PasswordHash = &h
	return nil
}

// VerifyPassword checks a password against the stored hash. A document
// without a hash never verifies.
func (d *Document) VerifyPassword(password string) bool {
	if d.PasswordHash == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(*d.PasswordHash), []byte(password)) == nil
}

// Clone returns a deep copy. The store and the index hand out clones so
// callers can mutate a copy and write it back without aliasing shared
// state.
func (d *Document) Clone() *Document {
	c := *d
	c.ImagePaths = append([]string(nil), d.ImagePaths...)
	c.Tags = append([]string(nil), d.Tags...)
	if d.Metadata != nil {
		c.Metadata = make(map[string]any, len(d.Metadata))
		for k, v := range d.Metadata {
			c.Metadata[k] = v
		}
	}
	if d.PDFPath != nil {
		p := *d.PDFPath
		c.PDFPath = &p
	}
	if d.ExtractedText != nil {
		t := *d.ExtractedText
		c.ExtractedText = &t
	}
	if d.FolderID != nil {
		f := *d.FolderID
		c.FolderID = &f
	}
	if d.PasswordHash != nil {
		h := *d.PasswordHash
		c.PasswordHash = &h
	}
	return &c
}
