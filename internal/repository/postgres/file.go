package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"aeromaint/internal/domain"
	"aeromaint/internal/domain/models/storage"
	storageRepo "aeromaint/internal/domain/repositories/storage"
)

// PostgresFileRepository implements the FileRepository interface
type PostgresFileRepository struct {
	pool *pgxpool.Pool
}

// NewFileRepository creates a new file repository
func NewFileRepository(config *RepositoryConfig) storageRepo.FileRepository {
	return &PostgresFileRepository{
		pool: config.Pool,
	}
}

const fileColumns = `id, owner_id, folder_id, file_name, description, tags, path, file_key, file_size, file_type, created_at, updated_at`

func scanFile(row interface{ Scan(dest ...any) error }, file *storage.File) error {
	return row.Scan(
		&file.ID,
		&file.OwnerID,
		&file.FolderID,
		&file.FileName,
		&file.Description,
		&file.Tags,
		&file.Path,
		&file.FileKey,
		&file.FileSize,
		&file.FileType,
		&file.CreatedAt,
		&file.UpdatedAt,
	)
}

// Create inserts a new file metadata row
func (r *PostgresFileRepository) Create(ctx context.Context, file *storage.File) error {
	query := `
		INSERT INTO files (owner_id, folder_id, file_name, description, tags, path, file_key, file_size, file_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		file.OwnerID,
		file.FolderID,
		file.FileName,
		file.Description,
		file.Tags,
		file.Path,
		file.FileKey,
		file.FileSize,
		file.FileType,
		file.CreatedAt,
		file.UpdatedAt,
	).Scan(&file.ID, &file.CreatedAt, &file.UpdatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("file '%s': %w", file.FileName, domain.ErrConflict)
		}
		if isPgForeignKeyError(err) {
			return fmt.Errorf("folder for file '%s': %w", file.FileName, domain.ErrNotFound)
		}
		return fmt.Errorf("create file: %w", err)
	}

	return nil
}

// GetByID retrieves a file by ID scoped to the owner
func (r *PostgresFileRepository) GetByID(ctx context.Context, id, ownerID string) (*storage.File, error) {
	query := `
		SELECT ` + fileColumns + `
		FROM files
		WHERE id = $1 AND owner_id = $2
	`

	var file storage.File
	err := scanFile(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id, ownerID), &file)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get file: %w", err)
	}

	return &file, nil
}

// Update persists name, folder, description, tags and path changes.
// The blob key is deliberately not part of the statement.
func (r *PostgresFileRepository) Update(ctx context.Context, file *storage.File) error {
	query := `
		UPDATE files
		SET folder_id = $1, file_name = $2, description = $3, tags = $4, path = $5, updated_at = $6
		WHERE id = $7 AND owner_id = $8
	`

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		file.FolderID,
		file.FileName,
		file.Description,
		file.Tags,
		file.Path,
		file.UpdatedAt,
		file.ID,
		file.OwnerID,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("file '%s': %w", file.FileName, domain.ErrConflict)
		}
		return fmt.Errorf("update file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", file.ID, domain.ErrNotFound)
	}

	return nil
}

// UpdatePath rewrites only the materialized path
func (r *PostgresFileRepository) UpdatePath(ctx context.Context, id, ownerID, path string) error {
	query := `
		UPDATE files
		SET path = $1
		WHERE id = $2 AND owner_id = $3
	`

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, path, id, ownerID)
	if err != nil {
		return fmt.Errorf("update file path: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete removes the file metadata row
func (r *PostgresFileRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := `
		DELETE FROM files
		WHERE id = $1 AND owner_id = $2
	`

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListByFolder lists files in a folder (nil folderID = root level)
func (r *PostgresFileRepository) ListByFolder(ctx context.Context, folderID *string, ownerID string) ([]storage.File, error) {
	var query string
	var args []interface{}

	if folderID == nil {
		query = `
			SELECT ` + fileColumns + `
			FROM files
			WHERE owner_id = $1 AND folder_id IS NULL
			ORDER BY file_name ASC
		`
		args = append(args, ownerID)
	} else {
		query = `
			SELECT ` + fileColumns + `
			FROM files
			WHERE owner_id = $1 AND folder_id = $2
			ORDER BY file_name ASC
		`
		args = append(args, ownerID, *folderID)
	}

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	var files []storage.File
	for rows.Next() {
		var file storage.File
		if err := scanFile(rows, &file); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}

	return files, nil
}

// FindByNameInFolder returns the sibling with the given file name, or nil
func (r *PostgresFileRepository) FindByNameInFolder(ctx context.Context, ownerID, fileName string, folderID *string) (*storage.File, error) {
	var query string
	var args []interface{}

	if folderID == nil {
		query = `
			SELECT ` + fileColumns + `
			FROM files
			WHERE owner_id = $1 AND file_name = $2 AND folder_id IS NULL
		`
		args = append(args, ownerID, fileName)
	} else {
		query = `
			SELECT ` + fileColumns + `
			FROM files
			WHERE owner_id = $1 AND file_name = $2 AND folder_id = $3
		`
		args = append(args, ownerID, fileName, *folderID)
	}

	var file storage.File
	err := scanFile(GetExecutor(ctx, r.pool).QueryRow(ctx, query, args...), &file)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, nil // Not found, not an error
		}
		return nil, fmt.Errorf("find file by name in folder: %w", err)
	}

	return &file, nil
}

// GetAllByOwner retrieves all files of an owner (flat list)
func (r *PostgresFileRepository) GetAllByOwner(ctx context.Context, ownerID string) ([]storage.File, error) {
	query := `
		SELECT ` + fileColumns + `
		FROM files
		WHERE owner_id = $1
		ORDER BY path ASC
	`

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get all files: %w", err)
	}
	defer rows.Close()

	var files []storage.File
	for rows.Next() {
		var file storage.File
		if err := scanFile(rows, &file); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}

	return files, nil
}
