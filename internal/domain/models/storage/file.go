package storage

import (
	"time"
)

// File is a leaf of the document tree. The raw bytes live in the blob store
// under FileKey; this row is the metadata the user actually sees. Renames and
// moves touch Path only, never FileKey.
type File struct {
	ID          string    `json:"id" db:"id"`
	OwnerID     string    `json:"owner_id" db:"owner_id"`
	FolderID    *string   `json:"folder_id" db:"folder_id"` // NULL = root level
	FileName    string    `json:"file_name" db:"file_name"`
	Description *string   `json:"description,omitempty" db:"description"`
	Tags        []string  `json:"tags" db:"tags"`
	Path        string    `json:"path" db:"path"`
	FileKey     string    `json:"file_key" db:"file_key"`
	FileSize    int64     `json:"file_size" db:"file_size"`
	FileType    string    `json:"file_type" db:"file_type"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
