package storage

import (
	"context"

	"aeromaint/internal/domain/models/storage"
)

// FileRepository defines data access operations for file metadata.
// Blob bytes are not handled here; see the blob package.
type FileRepository interface {
	// Create inserts a new file row (path already materialized)
	Create(ctx context.Context, file *storage.File) error

	// GetByID retrieves a file by ID for the given owner
	GetByID(ctx context.Context, id, ownerID string) (*storage.File, error)

	// Update persists name, folder, description, tags and path changes
	Update(ctx context.Context, file *storage.File) error

	// UpdatePath rewrites only the materialized path (used by the cascade)
	UpdatePath(ctx context.Context, id, ownerID, path string) error

	// Delete removes the file metadata row
	Delete(ctx context.Context, id, ownerID string) error

	// ListByFolder lists files in a folder (nil folderID = root level)
	ListByFolder(ctx context.Context, folderID *string, ownerID string) ([]storage.File, error)

	// FindByNameInFolder returns the sibling with the given file name, or nil
	FindByNameInFolder(ctx context.Context, ownerID, fileName string, folderID *string) (*storage.File, error)

	// GetAllByOwner retrieves all files of an owner (flat list)
	GetAllByOwner(ctx context.Context, ownerID string) ([]storage.File, error)
}
