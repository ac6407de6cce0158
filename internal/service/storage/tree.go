package storage

import (
	"context"
	"log/slog"

	models "aeromaint/internal/domain/models/storage"
	storageRepo "aeromaint/internal/domain/repositories/storage"
	storageSvc "aeromaint/internal/domain/services/storage"
)

// treeService implements the TreeService interface
type treeService struct {
	folderRepo storageRepo.FolderRepository
	fileRepo   storageRepo.FileRepository
	logger     *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(
	folderRepo storageRepo.FolderRepository,
	fileRepo storageRepo.FileRepository,
	logger *slog.Logger,
) storageSvc.TreeService {
	return &treeService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		logger:     logger,
	}
}

// GetTree builds and returns the nested folder/file tree for an owner
func (s *treeService) GetTree(ctx context.Context, ownerID string) (*models.TreeNode, error) {
	allFolders, err := s.folderRepo.GetAllByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	allFiles, err := s.fileRepo.GetAllByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	// Build folder hierarchy using a multi-pass algorithm.
	// First pass: create all folder nodes.
	folderMap := make(map[string]*models.FolderTreeNode)
	var rootFolderIDs []string

	for _, folder := range allFolders {
		folderMap[folder.ID] = &models.FolderTreeNode{
			ID:       folder.ID,
			Name:     folder.Name,
			ParentID: folder.ParentID,
			Path:     folder.Path,
			Folders:  []*models.FolderTreeNode{},
			Files:    []models.FileTreeNode{},
		}
	}

	// Second pass: nest folders by connecting children to parents
	for _, folder := range allFolders {
		node := folderMap[folder.ID]
		if folder.ParentID == nil {
			rootFolderIDs = append(rootFolderIDs, folder.ID)
		} else if parent, ok := folderMap[*folder.ParentID]; ok {
			parent.Folders = append(parent.Folders, node)
		}
	}

	// Third pass: attach files to their folders
	rootFiles := make([]models.FileTreeNode, 0)
	for _, file := range allFiles {
		fileNode := models.FileTreeNode{
			ID:        file.ID,
			FileName:  file.FileName,
			FolderID:  file.FolderID,
			Path:      file.Path,
			FileSize:  file.FileSize,
			FileType:  file.FileType,
			UpdatedAt: file.UpdatedAt,
		}

		if file.FolderID == nil {
			rootFiles = append(rootFiles, fileNode)
		} else if parent, ok := folderMap[*file.FolderID]; ok {
			parent.Files = append(parent.Files, fileNode)
		}
	}

	rootFolders := make([]*models.FolderTreeNode, 0, len(rootFolderIDs))
	for _, id := range rootFolderIDs {
		rootFolders = append(rootFolders, folderMap[id])
	}

	return &models.TreeNode{
		Folders: rootFolders,
		Files:   rootFiles,
	}, nil
}
