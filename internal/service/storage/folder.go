package storage

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"aeromaint/internal/blob"
	"aeromaint/internal/config"
	"aeromaint/internal/domain"
	models "aeromaint/internal/domain/models/storage"
	"aeromaint/internal/domain/repositories"
	storageRepo "aeromaint/internal/domain/repositories/storage"
	storageSvc "aeromaint/internal/domain/services/storage"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var noSlashes = regexp.MustCompile(`^[^/]+$`)

type folderService struct {
	folderRepo storageRepo.FolderRepository
	fileRepo   storageRepo.FileRepository
	blobs      blob.Store
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo storageRepo.FolderRepository,
	fileRepo storageRepo.FileRepository,
	blobs blob.Store,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) storageSvc.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		blobs:      blobs,
		txManager:  txManager,
		logger:     logger,
	}
}

// CreateFolder creates a new folder with its path materialized from the
// parent's current path.
func (s *folderService) CreateFolder(ctx context.Context, ownerID string, req *storageSvc.CreateFolderRequest) (*models.Folder, error) {
	// Normalize empty string to nil for root-level folders
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}
	req.Name = strings.TrimSpace(req.Name)

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Resolve the parent, which also proves ownership and existence
	parentPath := ""
	if req.ParentID != nil {
		parent, err := s.folderRepo.GetByID(ctx, *req.ParentID, ownerID)
		if err != nil {
			return nil, fmt.Errorf("parent folder: %w", err)
		}
		parentPath = parent.Path
	}

	if err := s.checkFolderNameFree(ctx, ownerID, req.Name, req.ParentID, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	folder := &models.Folder{
		OwnerID:     ownerID,
		ParentID:    req.ParentID,
		Name:        req.Name,
		Description: req.Description,
		Path:        FolderPath(parentPath, req.Name),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"owner_id", ownerID,
		"parent_id", folder.ParentID,
		"path", folder.Path,
	)

	return folder, nil
}

// GetFolder retrieves a folder by id for the owner
func (s *folderService) GetFolder(ctx context.Context, ownerID, folderID string) (*models.Folder, error) {
	return s.folderRepo.GetByID(ctx, folderID, ownerID)
}

// UpdateFolder updates a folder (rename, move or description change).
// When the materialized path changes, the new path is pushed depth-first
// through every descendant folder and file inside a single transaction, so a
// mid-cascade failure rolls back cleanly.
func (s *folderService) UpdateFolder(ctx context.Context, ownerID, folderID string, req *storageSvc.UpdateFolderRequest) (*models.Folder, error) {
	// Trim before validating so a whitespace-only rename fails the
	// non-empty check instead of committing an empty name
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}

	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder, err := s.folderRepo.GetByID(ctx, folderID, ownerID)
	if err != nil {
		return nil, err
	}
	oldPath := folder.Path

	if req.Name != nil {
		folder.Name = *req.Name
	}

	// Tri-state: only touch the parent if the field was present in the request
	if req.ParentID.Present {
		if req.ParentID.Value != nil && *req.ParentID.Value != "" {
			parent, err := s.folderRepo.GetByID(ctx, *req.ParentID.Value, ownerID)
			if err != nil {
				return nil, fmt.Errorf("destination folder: %w", err)
			}

			// A folder must never become a child of itself or of one of
			// its own descendants; the store does not enforce this.
			if err := s.validateNoCycle(ctx, ownerID, folderID, parent); err != nil {
				return nil, err
			}

			folder.ParentID = &parent.ID
		} else {
			// null = move to root
			folder.ParentID = nil
		}
	}

	if req.Description.Present {
		folder.Description = req.Description.Value
	}

	// Re-resolve the parent path for the (possibly new) location
	parentPath := ""
	if folder.ParentID != nil {
		parent, err := s.folderRepo.GetByID(ctx, *folder.ParentID, ownerID)
		if err != nil {
			return nil, fmt.Errorf("parent folder: %w", err)
		}
		parentPath = parent.Path
	}

	if req.Name != nil || req.ParentID.Present {
		if err := s.checkFolderNameFree(ctx, ownerID, folder.Name, folder.ParentID, folder.ID); err != nil {
			return nil, err
		}
	}

	folder.Path = FolderPath(parentPath, folder.Name)
	folder.UpdatedAt = time.Now()

	if folder.Path == oldPath {
		// Description-only edits change no descendant; skip the cascade
		if err := s.folderRepo.Update(ctx, folder); err != nil {
			return nil, err
		}
		return folder, nil
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.folderRepo.Update(txCtx, folder); err != nil {
			return err
		}
		return s.cascadePaths(txCtx, folder)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"owner_id", ownerID,
		"old_path", oldPath,
		"path", folder.Path,
	)

	return folder, nil
}

// cascadePaths recomputes and persists the path of every descendant of
// folder, depth-first. folder's own path must already be up to date.
func (s *folderService) cascadePaths(ctx context.Context, folder *models.Folder) error {
	files, err := s.fileRepo.ListByFolder(ctx, &folder.ID, folder.OwnerID)
	if err != nil {
		return fmt.Errorf("list files for cascade: %w", err)
	}
	for _, file := range files {
		if err := s.fileRepo.UpdatePath(ctx, file.ID, folder.OwnerID, FilePath(folder.Path, file.FileName)); err != nil {
			return fmt.Errorf("cascade file path: %w", err)
		}
	}

	children, err := s.folderRepo.ListChildren(ctx, &folder.ID, folder.OwnerID)
	if err != nil {
		return fmt.Errorf("list child folders for cascade: %w", err)
	}
	for i := range children {
		child := &children[i]
		child.Path = FolderPath(folder.Path, child.Name)
		if err := s.folderRepo.UpdatePath(ctx, child.ID, folder.OwnerID, child.Path); err != nil {
			return fmt.Errorf("cascade folder path: %w", err)
		}
		if err := s.cascadePaths(ctx, child); err != nil {
			return err
		}
	}

	return nil
}

// DeleteFolder deletes a folder and its whole subtree. Descendant blobs are
// removed first on a best-effort basis; the metadata delete proceeds no
// matter how the blob cleanup went, because the metadata store is the source
// of truth for what the user sees. A leaked blob is recoverable later; a
// user-visible delete blocked by a flaky content store is not.
func (s *folderService) DeleteFolder(ctx context.Context, ownerID, folderID string) error {
	folder, err := s.folderRepo.GetByID(ctx, folderID, ownerID)
	if err != nil {
		return err
	}

	keys, err := s.collectFileKeys(ctx, ownerID, folderID)
	if err != nil {
		return err
	}

	failed := deleteBlobs(ctx, s.blobs, s.logger, keys)

	// FK cascade removes every descendant folder and file row with this one
	if err := s.folderRepo.Delete(ctx, folderID, ownerID); err != nil {
		return err
	}

	s.logger.Info("folder deleted",
		"id", folderID,
		"name", folder.Name,
		"owner_id", ownerID,
		"path", folder.Path,
		"blobs_total", len(keys),
		"blobs_failed", failed,
	)

	return nil
}

// collectFileKeys gathers the blob keys of every file in the folder and all
// of its descendant folders, depth-first.
func (s *folderService) collectFileKeys(ctx context.Context, ownerID, folderID string) ([]string, error) {
	files, err := s.fileRepo.ListByFolder(ctx, &folderID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list files for deletion: %w", err)
	}

	var keys []string
	for _, file := range files {
		keys = append(keys, file.FileKey)
	}

	children, err := s.folderRepo.ListChildren(ctx, &folderID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list child folders for deletion: %w", err)
	}
	for _, child := range children {
		childKeys, err := s.collectFileKeys(ctx, ownerID, child.ID)
		if err != nil {
			return nil, err
		}
		keys = append(keys, childKeys...)
	}

	return keys, nil
}

// ListContents lists immediate child folders and files (nil folderID = root)
func (s *folderService) ListContents(ctx context.Context, ownerID string, folderID *string) (*storageSvc.FolderContents, error) {
	var folder *models.Folder
	var err error

	if folderID != nil && *folderID != "" {
		folder, err = s.folderRepo.GetByID(ctx, *folderID, ownerID)
		if err != nil {
			return nil, err
		}
	} else {
		folderID = nil
	}

	folders, err := s.folderRepo.ListChildren(ctx, folderID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list child folders: %w", err)
	}

	files, err := s.fileRepo.ListByFolder(ctx, folderID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	if folders == nil {
		folders = []models.Folder{}
	}
	if files == nil {
		files = []models.File{}
	}

	return &storageSvc.FolderContents{
		Folder:  folder,
		Folders: folders,
		Files:   files,
	}, nil
}

// checkFolderNameFree enforces sibling uniqueness (same owner, same parent)
// before any mutation commits. selfID is excluded so a rename that keeps the
// name is not a conflict with itself.
func (s *folderService) checkFolderNameFree(ctx context.Context, ownerID, name string, parentID *string, selfID string) error {
	sibling, err := s.folderRepo.FindByNameAndParent(ctx, ownerID, name, parentID)
	if err != nil {
		return fmt.Errorf("check for duplicate names: %w", err)
	}
	if sibling != nil && sibling.ID != selfID {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("a folder named %q already exists in this location", name),
			ResourceType: "folder",
			ResourceID:   sibling.ID,
		}
	}
	return nil
}

// validateNoCycle ensures moving a folder under newParent cannot create a
// cycle, by walking newParent's ancestor chain up to the root.
func (s *folderService) validateNoCycle(ctx context.Context, ownerID, folderID string, newParent *models.Folder) error {
	if newParent.ID == folderID {
		return fmt.Errorf("%w: cannot move a folder into itself", domain.ErrValidation)
	}

	current := newParent
	for current.ParentID != nil {
		if *current.ParentID == folderID {
			return fmt.Errorf("%w: cannot move a folder into one of its own descendants", domain.ErrValidation)
		}

		parent, err := s.folderRepo.GetByID(ctx, *current.ParentID, ownerID)
		if err != nil {
			return err
		}
		current = parent
	}

	return nil
}

func (s *folderService) validateCreateRequest(req *storageSvc.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
			validation.Match(noSlashes).Error("folder name cannot contain slashes"),
		),
	)
}

func (s *folderService) validateUpdateRequest(req *storageSvc.UpdateFolderRequest) error {
	if req.Name == nil && !req.ParentID.Present && !req.Description.Present {
		return fmt.Errorf("at least one field must be provided")
	}

	if req.Name != nil {
		return validation.ValidateStruct(req,
			validation.Field(&req.Name,
				validation.Required,
				validation.Length(1, config.MaxFolderNameLength),
				validation.Match(noSlashes).Error("folder name cannot contain slashes"),
			),
		)
	}

	return nil
}
