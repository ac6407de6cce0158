package storage

import (
	"context"

	"aeromaint/internal/domain/models/storage"
	"aeromaint/internal/httputil"
)

// FolderService handles folder business logic
type FolderService interface {
	// CreateFolder creates a new folder with a materialized path
	CreateFolder(ctx context.Context, ownerID string, req *CreateFolderRequest) (*storage.Folder, error)

	// GetFolder retrieves a folder by id
	GetFolder(ctx context.Context, ownerID, folderID string) (*storage.Folder, error)

	// UpdateFolder updates a folder (rename, move or description change),
	// cascading path recomputation to every descendant when needed
	UpdateFolder(ctx context.Context, ownerID, folderID string, req *UpdateFolderRequest) (*storage.Folder, error)

	// DeleteFolder deletes a folder and its entire subtree, cleaning up
	// descendant blobs on a best-effort basis
	DeleteFolder(ctx context.Context, ownerID, folderID string) error

	// ListContents lists immediate child folders and files
	// (nil folderID = root level)
	ListContents(ctx context.Context, ownerID string, folderID *string) (*FolderContents, error)
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	ParentID    *string `json:"parent_id,omitempty"` // null for root
}

// UpdateFolderRequest represents a folder update request.
// ParentID uses tri-state semantics: absent = keep, null = move to root,
// value = move under that folder.
type UpdateFolderRequest struct {
	Name        *string                 `json:"name,omitempty"`
	Description httputil.OptionalString `json:"description,omitempty"`
	ParentID    httputil.OptionalString `json:"parent_id,omitempty"`
}

// FolderContents represents a folder with its immediate children
type FolderContents struct {
	Folder  *storage.Folder  `json:"folder,omitempty"` // null for root
	Folders []storage.Folder `json:"folders"`
	Files   []storage.File   `json:"files"`
}
