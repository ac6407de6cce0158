package storage

import (
	"context"
	"testing"

	models "aeromaint/internal/domain/models/storage"
	storageSvc "aeromaint/internal/domain/services/storage"
)

func TestGetTree(t *testing.T) {
	env := newFolderTestEnv()
	ctx := context.Background()
	trees := NewTreeService(env.folderRepo, env.fileRepo, testLogger())

	manualsID := env.mustCreateFolder(t, "Manuals", nil)
	yearID := env.mustCreateFolder(t, "2024", &manualsID)
	env.mustCreateFolder(t, "Work Orders", nil)
	env.mustCreateFile(t, "overhaul.pdf", &yearID)
	env.mustCreateFile(t, "loose.pdf", nil)

	tree, err := trees.GetTree(ctx, testOwner)
	if err != nil {
		t.Fatalf("GetTree failed: %v", err)
	}

	if len(tree.Folders) != 2 {
		t.Fatalf("%d root folders, want 2", len(tree.Folders))
	}
	if len(tree.Files) != 1 {
		t.Fatalf("%d root files, want 1", len(tree.Files))
	}
	if tree.Files[0].FileName != "loose.pdf" {
		t.Errorf("root file = %q, want loose.pdf", tree.Files[0].FileName)
	}

	var manuals *models.FolderTreeNode
	for _, node := range tree.Folders {
		if node.ID == manualsID {
			manuals = node
		}
	}
	if manuals == nil {
		t.Fatal("Manuals folder missing from tree roots")
	}
	if len(manuals.Folders) != 1 || manuals.Folders[0].ID != yearID {
		t.Fatal("2024 folder not nested under Manuals")
	}

	year := manuals.Folders[0]
	if year.Path != "/Manuals/2024" {
		t.Errorf("nested folder path = %q, want /Manuals/2024", year.Path)
	}
	if len(year.Files) != 1 || year.Files[0].FileName != "overhaul.pdf" {
		t.Error("overhaul.pdf not attached to its folder")
	}
	if len(year.Files) == 1 && year.Files[0].Path != "/Manuals/2024/overhaul.pdf" {
		t.Errorf("nested file path = %q, want /Manuals/2024/overhaul.pdf", year.Files[0].Path)
	}
}

func TestGetTreeEmpty(t *testing.T) {
	env := newFolderTestEnv()
	trees := NewTreeService(env.folderRepo, env.fileRepo, testLogger())

	tree, err := trees.GetTree(context.Background(), testOwner)
	if err != nil {
		t.Fatalf("GetTree failed: %v", err)
	}
	if tree.Files == nil || tree.Folders == nil {
		t.Error("empty tree returned nil slices, want empty slices")
	}
	if len(tree.Folders) != 0 || len(tree.Files) != 0 {
		t.Errorf("empty tree has %d folders, %d files", len(tree.Folders), len(tree.Files))
	}
}

func TestGetTreeScopedToOwner(t *testing.T) {
	env := newFolderTestEnv()
	ctx := context.Background()
	trees := NewTreeService(env.folderRepo, env.fileRepo, testLogger())

	env.mustCreateFolder(t, "Manuals", nil)

	if _, err := env.folders.CreateFolder(ctx, "owner-2", &storageSvc.CreateFolderRequest{Name: "Private"}); err != nil {
		t.Fatalf("CreateFolder for second owner failed: %v", err)
	}

	tree, err := trees.GetTree(ctx, testOwner)
	if err != nil {
		t.Fatalf("GetTree failed: %v", err)
	}
	if len(tree.Folders) != 1 || tree.Folders[0].Name != "Manuals" {
		t.Errorf("tree leaked another owner's folders: %+v", tree.Folders)
	}
}
