package storage

import (
	"time"
)

// Folder is a node of the user-owned document tree. Path is the materialized
// filesystem-like location ("/Manuals/2024"), stored redundantly with the
// ParentID back-reference and kept consistent across renames and moves.
type Folder struct {
	ID          string    `json:"id" db:"id"`
	OwnerID     string    `json:"owner_id" db:"owner_id"`
	ParentID    *string   `json:"parent_id" db:"parent_id"` // NULL = root level
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	Path        string    `json:"path" db:"path"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
