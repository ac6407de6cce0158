package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"aeromaint/internal/blob"
	"aeromaint/internal/config"
	"aeromaint/internal/domain"
	models "aeromaint/internal/domain/models/storage"
	storageRepo "aeromaint/internal/domain/repositories/storage"
	storageSvc "aeromaint/internal/domain/services/storage"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type fileService struct {
	fileRepo   storageRepo.FileRepository
	folderRepo storageRepo.FolderRepository
	blobs      blob.Store
	logger     *slog.Logger
}

// NewFileService creates a new file service
func NewFileService(
	fileRepo storageRepo.FileRepository,
	folderRepo storageRepo.FolderRepository,
	blobs blob.Store,
	logger *slog.Logger,
) storageSvc.FileService {
	return &fileService{
		fileRepo:   fileRepo,
		folderRepo: folderRepo,
		blobs:      blobs,
		logger:     logger,
	}
}

// CreateFile uploads the bytes first, then records the metadata row with the
// key the blob store returned. A metadata row is never created without a
// successful upload. The reverse is not guaranteed: if the metadata write
// fails after the upload, the blob stays behind as an orphan and is logged.
func (s *fileService) CreateFile(ctx context.Context, ownerID string, req *storageSvc.CreateFileRequest) (*models.File, error) {
	// Normalize empty string to nil for root-level files
	if req.FolderID != nil && *req.FolderID == "" {
		req.FolderID = nil
	}
	req.FileName = strings.TrimSpace(req.FileName)

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folderPath := ""
	if req.FolderID != nil {
		folder, err := s.folderRepo.GetByID(ctx, *req.FolderID, ownerID)
		if err != nil {
			return nil, fmt.Errorf("containing folder: %w", err)
		}
		folderPath = folder.Path
	}

	if err := s.checkFileNameFree(ctx, ownerID, req.FileName, req.FolderID, ""); err != nil {
		return nil, err
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key, err := s.blobs.Put(ctx, req.Data, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload file content: %w", err)
	}

	now := time.Now()
	file := &models.File{
		OwnerID:     ownerID,
		FolderID:    req.FolderID,
		FileName:    req.FileName,
		Description: req.Description,
		Tags:        normalizeTags(req.Tags),
		Path:        FilePath(folderPath, req.FileName),
		FileKey:     key,
		FileSize:    int64(len(req.Data)),
		FileType:    contentType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.fileRepo.Create(ctx, file); err != nil {
		// The upload already happened; the orphaned blob is left to a
		// later sweep rather than risking a delete of live content.
		s.logger.Warn("file metadata write failed after upload, blob orphaned",
			"key", key,
			"file_name", req.FileName,
			"owner_id", ownerID,
			"error", err,
		)
		return nil, err
	}

	s.logger.Info("file created",
		"id", file.ID,
		"file_name", file.FileName,
		"owner_id", ownerID,
		"path", file.Path,
		"file_size", file.FileSize,
		"file_key", file.FileKey,
	)

	return file, nil
}

// GetFile retrieves file metadata by id for the owner
func (s *fileService) GetFile(ctx context.Context, ownerID, fileID string) (*models.File, error) {
	return s.fileRepo.GetByID(ctx, fileID, ownerID)
}

// DownloadFile retrieves the metadata row and the raw bytes
func (s *fileService) DownloadFile(ctx context.Context, ownerID, fileID string) (*models.File, []byte, error) {
	file, err := s.fileRepo.GetByID(ctx, fileID, ownerID)
	if err != nil {
		return nil, nil, err
	}

	data, err := s.blobs.Get(ctx, file.FileKey)
	if err != nil {
		return nil, nil, fmt.Errorf("download file content: %w", err)
	}

	return file, data, nil
}

// UpdateFile updates metadata (rename, move, description, tags). A move is
// the single-level case of the folder cascade: revalidate uniqueness at the
// destination, recompute the path, persist. The blob key never changes here.
func (s *fileService) UpdateFile(ctx context.Context, ownerID, fileID string, req *storageSvc.UpdateFileRequest) (*models.File, error) {
	// Trim before validating so a whitespace-only rename fails the
	// non-empty check instead of committing an empty name
	if req.FileName != nil {
		trimmed := strings.TrimSpace(*req.FileName)
		req.FileName = &trimmed
	}

	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	file, err := s.fileRepo.GetByID(ctx, fileID, ownerID)
	if err != nil {
		return nil, err
	}

	if req.FileName != nil {
		file.FileName = *req.FileName
	}

	// Tri-state: only touch the folder if the field was present in the request
	if req.FolderID.Present {
		if req.FolderID.Value != nil && *req.FolderID.Value != "" {
			folder, err := s.folderRepo.GetByID(ctx, *req.FolderID.Value, ownerID)
			if err != nil {
				return nil, fmt.Errorf("destination folder: %w", err)
			}
			file.FolderID = &folder.ID
		} else {
			// null = move to root
			file.FolderID = nil
		}
	}

	if req.Description.Present {
		file.Description = req.Description.Value
	}
	if req.Tags != nil {
		file.Tags = normalizeTags(*req.Tags)
	}

	folderPath := ""
	if file.FolderID != nil {
		folder, err := s.folderRepo.GetByID(ctx, *file.FolderID, ownerID)
		if err != nil {
			return nil, fmt.Errorf("containing folder: %w", err)
		}
		folderPath = folder.Path
	}

	if req.FileName != nil || req.FolderID.Present {
		if err := s.checkFileNameFree(ctx, ownerID, file.FileName, file.FolderID, file.ID); err != nil {
			return nil, err
		}
	}

	file.Path = FilePath(folderPath, file.FileName)
	file.UpdatedAt = time.Now()

	if err := s.fileRepo.Update(ctx, file); err != nil {
		return nil, err
	}

	s.logger.Info("file updated",
		"id", file.ID,
		"file_name", file.FileName,
		"owner_id", ownerID,
		"path", file.Path,
	)

	return file, nil
}

// DeleteFile deletes the blob best-effort, then the metadata row. A failed
// blob delete is logged and otherwise ignored; the caller always sees the
// metadata outcome.
func (s *fileService) DeleteFile(ctx context.Context, ownerID, fileID string) error {
	file, err := s.fileRepo.GetByID(ctx, fileID, ownerID)
	if err != nil {
		return err
	}

	opCtx, cancel := context.WithTimeout(ctx, blobDeleteTimeout)
	if err := s.blobs.Delete(opCtx, file.FileKey); err != nil {
		s.logger.Warn("blob delete failed", "key", file.FileKey, "file_id", fileID, "error", err)
	}
	cancel()

	if err := s.fileRepo.Delete(ctx, fileID, ownerID); err != nil {
		return err
	}

	s.logger.Info("file deleted",
		"id", fileID,
		"file_name", file.FileName,
		"owner_id", ownerID,
		"path", file.Path,
	)

	return nil
}

// checkFileNameFree enforces sibling uniqueness (same owner, same folder)
// before any mutation commits. selfID is excluded so a move that keeps the
// name is not a conflict with itself.
func (s *fileService) checkFileNameFree(ctx context.Context, ownerID, fileName string, folderID *string, selfID string) error {
	sibling, err := s.fileRepo.FindByNameInFolder(ctx, ownerID, fileName, folderID)
	if err != nil {
		return fmt.Errorf("check for duplicate names: %w", err)
	}
	if sibling != nil && sibling.ID != selfID {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("a file named %q already exists in this location", fileName),
			ResourceType: "file",
			ResourceID:   sibling.ID,
		}
	}
	return nil
}

// normalizeTags trims, drops empties and deduplicates while keeping order
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func (s *fileService) validateCreateRequest(req *storageSvc.CreateFileRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.FileName,
			validation.Required,
			validation.Length(1, config.MaxFileNameLength),
			validation.Match(noSlashes).Error("file name cannot contain slashes"),
		),
		validation.Field(&req.Data, validation.Required.Error("file content cannot be empty")),
		validation.Field(&req.Tags, validation.Length(0, config.MaxTags)),
	)
}

func (s *fileService) validateUpdateRequest(req *storageSvc.UpdateFileRequest) error {
	if req.FileName == nil && !req.FolderID.Present && !req.Description.Present && req.Tags == nil {
		return fmt.Errorf("at least one field must be provided")
	}

	rules := []*validation.FieldRules{}
	if req.FileName != nil {
		rules = append(rules,
			validation.Field(&req.FileName,
				validation.Required,
				validation.Length(1, config.MaxFileNameLength),
				validation.Match(noSlashes).Error("file name cannot contain slashes"),
			),
		)
	}
	if req.Tags != nil {
		rules = append(rules, validation.Field(&req.Tags, validation.Length(0, config.MaxTags)))
	}

	if len(rules) == 0 {
		return nil
	}
	return validation.ValidateStruct(req, rules...)
}
