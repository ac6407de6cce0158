package storage

import (
	"context"

	"aeromaint/internal/domain/models/storage"
)

// TreeService builds the nested folder/file tree for an owner
type TreeService interface {
	// GetTree returns the full nested tree for the owner
	GetTree(ctx context.Context, ownerID string) (*storage.TreeNode, error)
}
