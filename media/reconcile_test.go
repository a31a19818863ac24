package media

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSweepOrphans(t *testing.T) {
	repo := newMemoryAssetRepo()
	ing, store := newTestIngestor(t, repo, NewImageGenerator(), nil)

	result, err := ing.Ingest(context.Background(), Upload{
		FileName:    "teich.png",
		Data:        pngBytes(t, 32, 32),
		Category:    "garten",
		DisplayName: "Teich",
	})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	// drop stray files the metadata knows nothing about
	for _, stray := range []string{"garten/lost-10.jpg", "garten/lost-2.jpg", "blumen/alt.jpg"} {
		if _, err := store.Save(stray, bytes.NewReader([]byte("x"))); err != nil {
			t.Fatal(err)
		}
	}

	report, err := ing.SweepOrphans()
	if err != nil {
		t.Fatalf("SweepOrphans: %v", err)
	}

	want := []string{"blumen/alt.jpg", "garten/lost-2.jpg", "garten/lost-10.jpg"}
	if !reflect.DeepEqual(report.Orphans, want) {
		t.Errorf("orphans = %v, want %v (natural order)", report.Orphans, want)
	}

	asset, err := repo.GetByID(result.ID)
	if err != nil {
		t.Fatal(err)
	}
	if report.Scanned != len(asset.AllPaths())+len(want) {
		t.Errorf("scanned %d files, want %d", report.Scanned, len(asset.AllPaths())+len(want))
	}

	// the sweep must not delete anything
	for _, stray := range want {
		if !store.Exists(stray) {
			t.Errorf("sweep removed %q", stray)
		}
	}
}

func TestSweepOrphansEmptyGallery(t *testing.T) {
	repo := newMemoryAssetRepo()
	ing, store := newTestIngestor(t, repo, NewImageGenerator(), nil)

	// an empty subdirectory must not count as an orphan
	if err := os.MkdirAll(filepath.Join(store.Root(), "garten"), 0755); err != nil {
		t.Fatal(err)
	}

	report, err := ing.SweepOrphans()
	if err != nil {
		t.Fatalf("SweepOrphans: %v", err)
	}
	if len(report.Orphans) != 0 || report.Scanned != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
}
