package media

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// VideoGenerator produces web-optimized videos and poster thumbnails by
// shelling out to ffmpeg. Both operations run under a bounded wall-clock
// timeout; a hung or killed subprocess is an ordinary failure, reported as
// false, never a crash.
type VideoGenerator struct {
	ffmpegPath    string
	optimizeLimit time.Duration
	posterLimit   time.Duration
	images        *ImageGenerator
}

func NewVideoGenerator(ffmpegPath string, optimizeLimit, posterLimit time.Duration, images *ImageGenerator) *VideoGenerator {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &VideoGenerator{
		ffmpegPath:    ffmpegPath,
		optimizeLimit: optimizeLimit,
		posterLimit:   posterLimit,
		images:        images,
	}
}

// Optimize transcodes the source into a web-streamable mp4: constrained
// quality for size, even pixel dimensions (odd dimensions are rejected by
// libx264), and moov atom relocated to the front so playback can start
// before the download finishes. Success requires exit code 0 and an existing
// destination file.
func (g *VideoGenerator) Optimize(ctx context.Context, srcPath, dstPath string) bool {
	ctx, cancel := context.WithTimeout(ctx, g.optimizeLimit)
	defer cancel()

	cmd := exec.CommandContext(ctx, g.ffmpegPath,
		"-y", "-i", srcPath,
		"-c:v", "libx264", "-preset", "medium", "-crf", "28",
		"-c:a", "aac", "-b:a", "128k",
		"-movflags", "+faststart",
		"-vf", "scale=trunc(iw/2)*2:trunc(ih/2)*2",
		dstPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		log.Printf("media.video: optimize failed for %s: %v - %s", srcPath, err, tail(stderr.String()))
		os.Remove(dstPath) // drop any partial output
		return false
	}

	info, err := os.Stat(dstPath)
	if err != nil || info.Size() == 0 {
		log.Printf("media.video: optimize produced no output for %s", srcPath)
		return false
	}

	if srcInfo, err := os.Stat(srcPath); err == nil {
		log.Printf("media.video: optimized %s: %.1fMB -> %.1fMB", filepath.Base(srcPath),
			float64(srcInfo.Size())/1024/1024, float64(info.Size())/1024/1024)
	}
	return true
}

// Poster extracts a single frame one second into the video, scaled to fill
// and center-cropped to boxSize (the same fill-then-crop policy as the image
// thumbnailer), and re-encodes it into the thumbnail container. When the
// re-encode fails the raw extracted frame is kept as the poster instead of
// silently producing nothing.
func (g *VideoGenerator) Poster(ctx context.Context, srcPath, dstPath string, boxSize, quality int) bool {
	ctx, cancel := context.WithTimeout(ctx, g.posterLimit)
	defer cancel()

	tempFrame := filepath.Join(filepath.Dir(dstPath), uuid.NewString()+"_frame.jpg")
	defer os.Remove(tempFrame)

	cmd := exec.CommandContext(ctx, g.ffmpegPath,
		"-y", "-i", srcPath,
		"-ss", "00:00:01", "-vframes", "1",
		"-vf", fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d", boxSize, boxSize, boxSize, boxSize),
		tempFrame,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		log.Printf("media.video: frame extraction failed for %s: %v - %s", srcPath, err, tail(stderr.String()))
		return false
	}
	if !fileExists(tempFrame) {
		log.Printf("media.video: frame extraction produced no output for %s", srcPath)
		return false
	}

	if g.images != nil && g.images.ToWebFormat(tempFrame, dstPath, quality) {
		return true
	}

	// keep the raw frame rather than losing the poster entirely
	if err := os.Rename(tempFrame, dstPath); err != nil {
		log.Printf("media.video: failed to keep raw poster frame for %s: %v", srcPath, err)
		return false
	}
	log.Printf("media.video: re-encode unavailable, kept raw poster frame for %s", srcPath)
	return true
}

// tail trims ffmpeg's chatty stderr down to its last line for logging.
func tail(s string) string {
	const max = 200
	if len(s) > max {
		s = s[len(s)-max:]
	}
	return s
}
