package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"aeromaint/internal/domain"
	"aeromaint/internal/domain/models/storage"
	storageRepo "aeromaint/internal/domain/repositories/storage"
)

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool *pgxpool.Pool
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) storageRepo.FolderRepository {
	return &PostgresFolderRepository{
		pool: config.Pool,
	}
}

const folderColumns = `id, owner_id, parent_id, name, description, path, created_at, updated_at`

func scanFolder(row interface{ Scan(dest ...any) error }, folder *storage.Folder) error {
	return row.Scan(
		&folder.ID,
		&folder.OwnerID,
		&folder.ParentID,
		&folder.Name,
		&folder.Description,
		&folder.Path,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)
}

// Create inserts a new folder row
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *storage.Folder) error {
	query := `
		INSERT INTO folders (owner_id, parent_id, name, description, path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		folder.OwnerID,
		folder.ParentID,
		folder.Name,
		folder.Description,
		folder.Path,
		folder.CreatedAt,
		folder.UpdatedAt,
	).Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("folder '%s': %w", folder.Name, domain.ErrConflict)
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID scoped to the owner
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id, ownerID string) (*storage.Folder, error) {
	query := `
		SELECT ` + folderColumns + `
		FROM folders
		WHERE id = $1 AND owner_id = $2
	`

	var folder storage.Folder
	err := scanFolder(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id, ownerID), &folder)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// Update persists name, parent, description and path changes
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *storage.Folder) error {
	query := `
		UPDATE folders
		SET parent_id = $1, name = $2, description = $3, path = $4, updated_at = $5
		WHERE id = $6 AND owner_id = $7
	`

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		folder.ParentID,
		folder.Name,
		folder.Description,
		folder.Path,
		folder.UpdatedAt,
		folder.ID,
		folder.OwnerID,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("folder '%s': %w", folder.Name, domain.ErrConflict)
		}
		return fmt.Errorf("update folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}

	return nil
}

// UpdatePath rewrites only the materialized path
func (r *PostgresFolderRepository) UpdatePath(ctx context.Context, id, ownerID, path string) error {
	query := `
		UPDATE folders
		SET path = $1
		WHERE id = $2 AND owner_id = $3
	`

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, path, id, ownerID)
	if err != nil {
		return fmt.Errorf("update folder path: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete removes the folder row. Descendant folder and file rows go with it
// through the ON DELETE CASCADE foreign keys declared in the schema.
func (r *PostgresFolderRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := `
		DELETE FROM folders
		WHERE id = $1 AND owner_id = $2
	`

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListChildren lists immediate child folders (nil parentID = root level)
func (r *PostgresFolderRepository) ListChildren(ctx context.Context, parentID *string, ownerID string) ([]storage.Folder, error) {
	var query string
	var args []interface{}

	if parentID == nil {
		query = `
			SELECT ` + folderColumns + `
			FROM folders
			WHERE owner_id = $1 AND parent_id IS NULL
			ORDER BY name ASC
		`
		args = append(args, ownerID)
	} else {
		query = `
			SELECT ` + folderColumns + `
			FROM folders
			WHERE owner_id = $1 AND parent_id = $2
			ORDER BY name ASC
		`
		args = append(args, ownerID, *parentID)
	}

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list folder children: %w", err)
	}
	defer rows.Close()

	var folders []storage.Folder
	for rows.Next() {
		var folder storage.Folder
		if err := scanFolder(rows, &folder); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

// FindByNameAndParent returns the sibling with the given name, or nil
func (r *PostgresFolderRepository) FindByNameAndParent(ctx context.Context, ownerID, name string, parentID *string) (*storage.Folder, error) {
	var query string
	var args []interface{}

	if parentID == nil {
		query = `
			SELECT ` + folderColumns + `
			FROM folders
			WHERE owner_id = $1 AND name = $2 AND parent_id IS NULL
		`
		args = append(args, ownerID, name)
	} else {
		query = `
			SELECT ` + folderColumns + `
			FROM folders
			WHERE owner_id = $1 AND name = $2 AND parent_id = $3
		`
		args = append(args, ownerID, name, *parentID)
	}

	var folder storage.Folder
	err := scanFolder(GetExecutor(ctx, r.pool).QueryRow(ctx, query, args...), &folder)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, nil // Not found, not an error
		}
		return nil, fmt.Errorf("find folder by name and parent: %w", err)
	}

	return &folder, nil
}

// GetAllByOwner retrieves all folders of an owner (flat list)
func (r *PostgresFolderRepository) GetAllByOwner(ctx context.Context, ownerID string) ([]storage.Folder, error) {
	query := `
		SELECT ` + folderColumns + `
		FROM folders
		WHERE owner_id = $1
		ORDER BY path ASC
	`

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get all folders: %w", err)
	}
	defer rows.Close()

	var folders []storage.Folder
	for rows.Next() {
		var folder storage.Folder
		if err := scanFolder(rows, &folder); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}
