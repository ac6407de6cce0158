package storage

import (
	"context"

	"aeromaint/internal/domain/models/storage"
	"aeromaint/internal/httputil"
)

// FileService handles file business logic, coordinating the metadata store
// with the blob store.
type FileService interface {
	// CreateFile uploads the bytes to the blob store and records the
	// metadata row with the returned blob key
	CreateFile(ctx context.Context, ownerID string, req *CreateFileRequest) (*storage.File, error)

	// GetFile retrieves file metadata by id
	GetFile(ctx context.Context, ownerID, fileID string) (*storage.File, error)

	// DownloadFile retrieves the metadata and the raw bytes
	DownloadFile(ctx context.Context, ownerID, fileID string) (*storage.File, []byte, error)

	// UpdateFile updates metadata (rename, move, description, tags) and
	// recomputes the path; the blob key is never changed here
	UpdateFile(ctx context.Context, ownerID, fileID string, req *UpdateFileRequest) (*storage.File, error)

	// DeleteFile deletes the blob on a best-effort basis and then removes
	// the metadata row; blob failures never surface to the caller
	DeleteFile(ctx context.Context, ownerID, fileID string) error
}

// CreateFileRequest represents a file upload. Data and ContentType come from
// the multipart body; the rest from form fields.
type CreateFileRequest struct {
	FileName    string
	Description *string
	Tags        []string
	FolderID    *string // null for root
	Data        []byte
	ContentType string
}

// UpdateFileRequest represents a file metadata update.
// FolderID uses tri-state semantics: absent = keep, null = move to root,
// value = move into that folder.
type UpdateFileRequest struct {
	FileName    *string                 `json:"file_name,omitempty"`
	Description httputil.OptionalString `json:"description,omitempty"`
	Tags        *[]string               `json:"tags,omitempty"`
	FolderID    httputil.OptionalString `json:"folder_id,omitempty"`
}
