package media

import (
	"image"
	"image/color"
	"image/draw"
	"log"

	"github.com/disintegration/imaging"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// ImageGenerator produces web-format images and square thumbnails from
// arbitrary source rasters. Both operations report failure as false and
// never as an error; the caller falls back to the original artifact.
type ImageGenerator struct{}

func NewImageGenerator() *ImageGenerator {
	return &ImageGenerator{}
}

// ToWebFormat re-encodes the source image as JPEG at the given quality,
// preserving dimensions. Transparent or palette sources are composited onto
// an opaque white background first since JPEG carries no alpha.
func (g *ImageGenerator) ToWebFormat(srcPath, dstPath string, quality int) bool {
	img, err := imaging.Open(srcPath, imaging.AutoOrientation(true))
	if err != nil {
		log.Printf("media.image: decode failed for %s: %v", srcPath, err)
		return false
	}

	flattened := flattenOntoWhite(img)

	if err := imaging.Save(flattened, dstPath, imaging.JPEGQuality(quality)); err != nil {
		log.Printf("media.image: encode failed for %s: %v", dstPath, err)
		return false
	}
	return true
}

// ToThumbnail produces a boxSize x boxSize square preview: a centered crop
// to min(width, height) followed by a Lanczos resize down to boxSize.
func (g *ImageGenerator) ToThumbnail(srcPath, dstPath string, boxSize, quality int) bool {
	img, err := imaging.Open(srcPath, imaging.AutoOrientation(true))
	if err != nil {
		log.Printf("media.image: decode failed for %s: %v", srcPath, err)
		return false
	}

	flattened := flattenOntoWhite(img)

	bounds := flattened.Bounds()
	minDim := bounds.Dx()
	if bounds.Dy() < minDim {
		minDim = bounds.Dy()
	}
	if minDim <= 0 {
		log.Printf("media.image: invalid dimensions %dx%d for %s", bounds.Dx(), bounds.Dy(), srcPath)
		return false
	}

	thumb := imaging.CropCenter(flattened, minDim, minDim)
	if minDim > boxSize {
		thumb = imaging.Resize(thumb, boxSize, boxSize, imaging.Lanczos)
	}

	if err := imaging.Save(thumb, dstPath, imaging.JPEGQuality(quality)); err != nil {
		log.Printf("media.image: encode failed for %s: %v", dstPath, err)
		return false
	}
	return true
}

// flattenOntoWhite composites the image over an opaque white background and
// returns plain RGB pixels. Already-opaque images pass through a cheap draw.
func flattenOntoWhite(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	background := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	draw.Draw(background, background.Bounds(), img, bounds.Min, draw.Over)
	return background
}
