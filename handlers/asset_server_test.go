package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestGalleryAssetServer(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "garten"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "garten", "teich.jpg"), []byte("jpeg bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	server := GalleryAssetServer(dir)

	req := httptest.NewRequest(http.MethodGet, "/images/gallery/garten/teich.jpg", nil)
	rec := httptest.NewRecorder()
	server(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if rec.Body.String() != "jpeg bytes" {
		t.Errorf("body %q", rec.Body.String())
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "public, max-age=86400" {
		t.Errorf("Cache-Control %q", cc)
	}
}

func TestGalleryAssetServerMissingFile(t *testing.T) {
	server := GalleryAssetServer(t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/images/gallery/garten/nie-da.jpg", nil)
	rec := httptest.NewRecorder()
	server(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status %d, want 404", rec.Code)
	}
}

func TestGalleryAssetServerRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	// place a file outside the gallery root
	outside := filepath.Join(filepath.Dir(dir), "secret.txt")
	if err := os.WriteFile(outside, []byte("secret"), 0644); err != nil {
		t.Fatal(err)
	}
	defer os.Remove(outside)

	server := GalleryAssetServer(dir)

	req := httptest.NewRequest(http.MethodGet, "/images/gallery/", nil)
	req.URL.Path = "/images/gallery/../secret.txt"
	rec := httptest.NewRecorder()
	server(rec, req)

	if rec.Code == http.StatusOK {
		t.Errorf("traversal request served with status 200")
	}
}
