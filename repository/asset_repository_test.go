package repository

import (
	"errors"
	"path/filepath"
	"sort"
	"testing"

	"gorm.io/gorm"

	"github.com/voigt-garten/gartenbackend/database"
	"github.com/voigt-garten/gartenbackend/media"
	"github.com/voigt-garten/gartenbackend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.InitGormDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("InitGormDB: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		t.Fatalf("AutoMigrateModels: %v", err)
	}
	return db
}

func sampleAsset(id, category string, uploadedAt int64) *models.Asset {
	return &models.Asset{
		ID:           id,
		FileName:     category + "/" + id + ".jpg",
		OriginalName: id + ".png",
		Category:     category,
		Kind:         "image",
		SizeBytes:    1234,
		UploadedAt:   uploadedAt,
		OriginalPath: category + "/" + id + "_original.png",
	}
}

func TestAssetRepositoryCreateAndGet(t *testing.T) {
	repo := NewAssetRepository(newTestDB(t))

	asset := sampleAsset("abc123def456", "garten", 1000)
	asset.FileName = `garten\abc123def456.jpg` // windows-style path must be normalized
	if err := repo.Create(asset); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID("abc123def456")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.FileName != "garten/abc123def456.jpg" {
		t.Errorf("FileName %q, not slash-normalized", got.FileName)
	}
	if got.Category != "garten" || got.SizeBytes != 1234 {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
}

func TestAssetRepositoryGetByIDNotFound(t *testing.T) {
	repo := NewAssetRepository(newTestDB(t))

	_, err := repo.GetByID("nope")
	if !errors.Is(err, media.ErrNotFound) {
		t.Errorf("got err %v, want media.ErrNotFound", err)
	}
}

func TestAssetRepositoryCreateDefaultsCategory(t *testing.T) {
	repo := NewAssetRepository(newTestDB(t))

	asset := sampleAsset("a1b2c3d4e5f6", "", 1000)
	if err := repo.Create(asset); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.GetByID("a1b2c3d4e5f6")
	if err != nil {
		t.Fatal(err)
	}
	if got.Category != media.DefaultCategory {
		t.Errorf("category %q, want %q", got.Category, media.DefaultCategory)
	}
}

func TestAssetRepositoryListOrdering(t *testing.T) {
	repo := NewAssetRepository(newTestDB(t))

	for _, a := range []*models.Asset{
		sampleAsset("aaaaaaaaaaaa", "garten", 100),
		sampleAsset("bbbbbbbbbbbb", "garten", 300),
		sampleAsset("cccccccccccc", "blumen", 200),
	} {
		if err := repo.Create(a); err != nil {
			t.Fatal(err)
		}
	}

	all, err := repo.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("ListAll returned %d assets", len(all))
	}
	if all[0].ID != "bbbbbbbbbbbb" || all[2].ID != "aaaaaaaaaaaa" {
		t.Errorf("not ordered newest first: %s, %s, %s", all[0].ID, all[1].ID, all[2].ID)
	}

	garten, err := repo.ListByCategory("garten")
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(garten) != 2 {
		t.Errorf("ListByCategory(garten) returned %d assets", len(garten))
	}
}

func TestAssetRepositoryListCategories(t *testing.T) {
	repo := NewAssetRepository(newTestDB(t))

	for _, a := range []*models.Asset{
		sampleAsset("aaaaaaaaaaaa", "garten", 100),
		sampleAsset("bbbbbbbbbbbb", "garten", 200),
		sampleAsset("cccccccccccc", "blumen", 300),
	} {
		if err := repo.Create(a); err != nil {
			t.Fatal(err)
		}
	}

	categories, err := repo.ListCategories()
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	sort.Strings(categories)
	if len(categories) != 2 || categories[0] != "blumen" || categories[1] != "garten" {
		t.Errorf("categories = %v", categories)
	}
}

func TestAssetRepositoryDelete(t *testing.T) {
	repo := NewAssetRepository(newTestDB(t))

	if err := repo.Create(sampleAsset("aaaaaaaaaaaa", "garten", 100)); err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete("aaaaaaaaaaaa"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID("aaaaaaaaaaaa"); !errors.Is(err, media.ErrNotFound) {
		t.Errorf("asset still retrievable after delete: %v", err)
	}

	if err := repo.Delete("aaaaaaaaaaaa"); !errors.Is(err, media.ErrNotFound) {
		t.Errorf("second delete: got %v, want media.ErrNotFound", err)
	}
}
