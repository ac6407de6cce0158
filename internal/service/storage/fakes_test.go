package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"aeromaint/internal/domain"
	models "aeromaint/internal/domain/models/storage"
	"aeromaint/internal/domain/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string {
	return &s
}

// fakeFolderRepo is an in-memory FolderRepository. Delete mimics the
// database's cascading foreign keys by removing descendant folders and files,
// which needs a back-reference to the file fake.
type fakeFolderRepo struct {
	folders map[string]*models.Folder
	files   *fakeFileRepo
	nextID  int
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: make(map[string]*models.Folder)}
}

func (r *fakeFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	r.nextID++
	folder.ID = fmt.Sprintf("folder-%d", r.nextID)
	stored := *folder
	r.folders[folder.ID] = &stored
	return nil
}

func (r *fakeFolderRepo) GetByID(ctx context.Context, id, ownerID string) (*models.Folder, error) {
	folder, ok := r.folders[id]
	if !ok || folder.OwnerID != ownerID {
		return nil, &domain.NotFoundError{Message: "folder not found"}
	}
	copied := *folder
	return &copied, nil
}

func (r *fakeFolderRepo) Update(ctx context.Context, folder *models.Folder) error {
	stored, ok := r.folders[folder.ID]
	if !ok || stored.OwnerID != folder.OwnerID {
		return &domain.NotFoundError{Message: "folder not found"}
	}
	copied := *folder
	r.folders[folder.ID] = &copied
	return nil
}

func (r *fakeFolderRepo) UpdatePath(ctx context.Context, id, ownerID, path string) error {
	folder, ok := r.folders[id]
	if !ok || folder.OwnerID != ownerID {
		return &domain.NotFoundError{Message: "folder not found"}
	}
	folder.Path = path
	return nil
}

func (r *fakeFolderRepo) Delete(ctx context.Context, id, ownerID string) error {
	folder, ok := r.folders[id]
	if !ok || folder.OwnerID != ownerID {
		return &domain.NotFoundError{Message: "folder not found"}
	}

	// Cascade like the FK constraints would
	for _, child := range r.folders {
		if child.ParentID != nil && *child.ParentID == id {
			_ = r.Delete(ctx, child.ID, ownerID)
		}
	}
	if r.files != nil {
		for fid, file := range r.files.files {
			if file.FolderID != nil && *file.FolderID == id {
				delete(r.files.files, fid)
			}
		}
	}
	delete(r.folders, id)
	return nil
}

func (r *fakeFolderRepo) ListChildren(ctx context.Context, parentID *string, ownerID string) ([]models.Folder, error) {
	var out []models.Folder
	for _, folder := range r.folders {
		if folder.OwnerID != ownerID {
			continue
		}
		if sameRef(folder.ParentID, parentID) {
			out = append(out, *folder)
		}
	}
	return out, nil
}

func (r *fakeFolderRepo) FindByNameAndParent(ctx context.Context, ownerID, name string, parentID *string) (*models.Folder, error) {
	for _, folder := range r.folders {
		if folder.OwnerID == ownerID && folder.Name == name && sameRef(folder.ParentID, parentID) {
			copied := *folder
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeFolderRepo) GetAllByOwner(ctx context.Context, ownerID string) ([]models.Folder, error) {
	var out []models.Folder
	for _, folder := range r.folders {
		if folder.OwnerID == ownerID {
			out = append(out, *folder)
		}
	}
	return out, nil
}

// fakeFileRepo is an in-memory FileRepository
type fakeFileRepo struct {
	files  map[string]*models.File
	nextID int
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{files: make(map[string]*models.File)}
}

func (r *fakeFileRepo) Create(ctx context.Context, file *models.File) error {
	r.nextID++
	file.ID = fmt.Sprintf("file-%d", r.nextID)
	stored := *file
	r.files[file.ID] = &stored
	return nil
}

func (r *fakeFileRepo) GetByID(ctx context.Context, id, ownerID string) (*models.File, error) {
	file, ok := r.files[id]
	if !ok || file.OwnerID != ownerID {
		return nil, &domain.NotFoundError{Message: "file not found"}
	}
	copied := *file
	return &copied, nil
}

func (r *fakeFileRepo) Update(ctx context.Context, file *models.File) error {
	stored, ok := r.files[file.ID]
	if !ok || stored.OwnerID != file.OwnerID {
		return &domain.NotFoundError{Message: "file not found"}
	}
	copied := *file
	copied.FileKey = stored.FileKey // Update never touches the blob key
	r.files[file.ID] = &copied
	return nil
}

func (r *fakeFileRepo) UpdatePath(ctx context.Context, id, ownerID, path string) error {
	file, ok := r.files[id]
	if !ok || file.OwnerID != ownerID {
		return &domain.NotFoundError{Message: "file not found"}
	}
	file.Path = path
	return nil
}

func (r *fakeFileRepo) Delete(ctx context.Context, id, ownerID string) error {
	file, ok := r.files[id]
	if !ok || file.OwnerID != ownerID {
		return &domain.NotFoundError{Message: "file not found"}
	}
	delete(r.files, id)
	return nil
}

func (r *fakeFileRepo) ListByFolder(ctx context.Context, folderID *string, ownerID string) ([]models.File, error) {
	var out []models.File
	for _, file := range r.files {
		if file.OwnerID != ownerID {
			continue
		}
		if sameRef(file.FolderID, folderID) {
			out = append(out, *file)
		}
	}
	return out, nil
}

func (r *fakeFileRepo) FindByNameInFolder(ctx context.Context, ownerID, fileName string, folderID *string) (*models.File, error) {
	for _, file := range r.files {
		if file.OwnerID == ownerID && file.FileName == fileName && sameRef(file.FolderID, folderID) {
			copied := *file
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeFileRepo) GetAllByOwner(ctx context.Context, ownerID string) ([]models.File, error) {
	var out []models.File
	for _, file := range r.files {
		if file.OwnerID == ownerID {
			out = append(out, *file)
		}
	}
	return out, nil
}

func sameRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// fakeBlobStore is an in-memory blob.Store. Delete is called concurrently by
// the cleanup worker pool, so everything is guarded by a mutex. Keys listed
// in failDeletes return an error from Delete while keeping the object.
type fakeBlobStore struct {
	mu          sync.Mutex
	objects     map[string][]byte
	types       map[string]string
	failDeletes map[string]bool
	deleted     []string
	putErr      error
	nextKey     int
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{
		objects:     make(map[string][]byte),
		types:       make(map[string]string),
		failDeletes: make(map[string]bool),
	}
}

func (s *fakeBlobStore) Put(ctx context.Context, data []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return "", s.putErr
	}
	s.nextKey++
	key := fmt.Sprintf("blob-%d", s.nextKey)
	s.objects[key] = data
	s.types[key] = contentType
	return key, nil
}

func (s *fakeBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("object %s not found", key)
	}
	return data, nil
}

func (s *fakeBlobStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDeletes[key] {
		return fmt.Errorf("transient store error for %s", key)
	}
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeBlobStore) deletedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.deleted)
}

func (s *fakeBlobStore) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok
}

// fakeTxManager runs the function directly without a real transaction
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	m.calls++
	return fn(ctx)
}
