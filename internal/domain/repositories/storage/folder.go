package storage

import (
	"context"

	"aeromaint/internal/domain/models/storage"
)

// FolderRepository defines data access operations for folders.
// Every lookup is scoped to an owner id; a folder belonging to another owner
// is indistinguishable from a missing one.
type FolderRepository interface {
	// Create inserts a new folder row (path already materialized)
	Create(ctx context.Context, folder *storage.Folder) error

	// GetByID retrieves a folder by ID for the given owner
	GetByID(ctx context.Context, id, ownerID string) (*storage.Folder, error)

	// Update persists name, parent, description and path changes
	Update(ctx context.Context, folder *storage.Folder) error

	// UpdatePath rewrites only the materialized path (used by the cascade)
	UpdatePath(ctx context.Context, id, ownerID, path string) error

	// Delete removes the folder row; descendant folder and file rows are
	// removed by the store's cascading foreign keys
	Delete(ctx context.Context, id, ownerID string) error

	// ListChildren lists immediate child folders (nil parentID = root level)
	ListChildren(ctx context.Context, parentID *string, ownerID string) ([]storage.Folder, error)

	// FindByNameAndParent returns the sibling with the given name, or nil
	FindByNameAndParent(ctx context.Context, ownerID, name string, parentID *string) (*storage.Folder, error)

	// GetAllByOwner retrieves all folders of an owner (flat list)
	GetAllByOwner(ctx context.Context, ownerID string) ([]storage.Folder, error)
}
