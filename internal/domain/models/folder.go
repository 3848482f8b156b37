package models

import (
	"time"
)

// Folder is a named grouping of documents. DocumentCount is denormalized
// and maintained by the store: it is recomputed inside the same
// transaction as any write that changes which documents belong to the
// folder, never cached opportunistically.
type Folder struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Description   *string   `json:"description,omitempty" db:"description"`
	ParentID      *string   `json:"parent_id,omitempty" db:"parent_id"` // NULL = top level; acyclicity is the caller's responsibility
	DocumentCount int       `json:"document_count" db:"document_count"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
