package storage

import "time"

// TreeNode represents the root of an owner's storage tree
type TreeNode struct {
	Folders []*FolderTreeNode `json:"folders"`
	Files   []FileTreeNode    `json:"files"`
}

// FolderTreeNode represents a folder in the tree with nested children
type FolderTreeNode struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	ParentID *string           `json:"parent_id"`
	Path     string            `json:"path"`
	Folders  []*FolderTreeNode `json:"folders"` // Pointers for proper nesting
	Files    []FileTreeNode    `json:"files"`
}

// FileTreeNode represents a file in the tree (metadata only, no content)
type FileTreeNode struct {
	ID        string    `json:"id"`
	FileName  string    `json:"file_name"`
	FolderID  *string   `json:"folder_id"`
	Path      string    `json:"path"`
	FileSize  int64     `json:"file_size"`
	FileType  string    `json:"file_type"`
	UpdatedAt time.Time `json:"updated_at"`
}
