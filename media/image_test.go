package media

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestPNG writes a w x h PNG where the left half is solid red and the
// right half carries the given alpha.
func writeTestPNG(t *testing.T, path string, w, h int, rightAlpha uint8) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{R: 255, A: rightAlpha})
			}
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func decodeJPEG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	img, err := jpeg.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}

func TestToWebFormatPreservesDimensions(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	dst := filepath.Join(dir, "out.jpg")
	writeTestPNG(t, src, 320, 240, 255)

	gen := NewImageGenerator()
	if !gen.ToWebFormat(src, dst, 85) {
		t.Fatal("ToWebFormat returned false for a valid PNG")
	}

	out := decodeJPEG(t, dst)
	if got := out.Bounds(); got.Dx() != 320 || got.Dy() != 240 {
		t.Errorf("output dimensions %dx%d, want 320x240", got.Dx(), got.Dy())
	}
}

func TestToWebFormatFlattensTransparency(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	dst := filepath.Join(dir, "out.jpg")
	// right half fully transparent, should come out white
	writeTestPNG(t, src, 100, 100, 0)

	gen := NewImageGenerator()
	if !gen.ToWebFormat(src, dst, 90) {
		t.Fatal("ToWebFormat returned false")
	}

	out := decodeJPEG(t, dst)
	r, g, b, _ := out.At(90, 50).RGBA()
	// JPEG is lossy, allow some wiggle around pure white
	if r>>8 < 240 || g>>8 < 240 || b>>8 < 240 {
		t.Errorf("transparent region not flattened to white: got r=%d g=%d b=%d", r>>8, g>>8, b>>8)
	}
}

func TestToThumbnailSquareCrop(t *testing.T) {
	dir := t.TempDir()
	gen := NewImageGenerator()

	tests := []struct {
		name    string
		w, h    int
		boxSize int
		want    int
	}{
		{"landscape downscaled", 640, 480, 200, 200},
		{"portrait downscaled", 300, 500, 200, 200},
		{"smaller than box kept", 120, 160, 200, 120},
		{"exact box", 200, 200, 200, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := filepath.Join(dir, tt.name+".png")
			dst := filepath.Join(dir, tt.name+"_thumb.jpg")
			writeTestPNG(t, src, tt.w, tt.h, 255)

			if !gen.ToThumbnail(src, dst, tt.boxSize, 80) {
				t.Fatal("ToThumbnail returned false")
			}
			out := decodeJPEG(t, dst)
			if got := out.Bounds(); got.Dx() != tt.want || got.Dy() != tt.want {
				t.Errorf("thumbnail is %dx%d, want %dx%d square", got.Dx(), got.Dy(), tt.want, tt.want)
			}
		})
	}
}

func TestImageGeneratorRejectsCorruptSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "broken.png")
	dst := filepath.Join(dir, "out.jpg")
	if err := os.WriteFile(src, []byte("definitely not a png"), 0644); err != nil {
		t.Fatal(err)
	}

	gen := NewImageGenerator()
	if gen.ToWebFormat(src, dst, 85) {
		t.Error("ToWebFormat returned true for a corrupt source")
	}
	if gen.ToThumbnail(src, dst, 200, 80) {
		t.Error("ToThumbnail returned true for a corrupt source")
	}
	if _, err := os.Stat(dst); err == nil {
		t.Error("destination file written despite corrupt source")
	}
}

func TestImageGeneratorMissingSource(t *testing.T) {
	dir := t.TempDir()
	gen := NewImageGenerator()
	if gen.ToWebFormat(filepath.Join(dir, "nope.png"), filepath.Join(dir, "out.jpg"), 85) {
		t.Error("ToWebFormat returned true for a missing source")
	}
}
