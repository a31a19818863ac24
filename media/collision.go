package media

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// maxCollisionProbes bounds the suffix search before falling back to a
// timestamped name, which is guaranteed unique enough to terminate.
const maxCollisionProbes = 100

// ResolveCollision returns a base name whose "{base}{ext}" target does not
// exist in dir. The original base is returned untouched when free; otherwise
// "base-2", "base-3", ... are probed in order. The check-then-use sequence is
// not protected against a concurrent ingestion picking the same name in the
// same instant; callers needing that guarantee must serialize per directory.
func ResolveCollision(dir, base, ext string) string {
	if !fileExists(filepath.Join(dir, base+ext)) {
		return base
	}
	for i := 2; i <= maxCollisionProbes; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !fileExists(filepath.Join(dir, candidate+ext)) {
			return candidate
		}
	}
	fallback := fmt.Sprintf("%s-%d", base, time.Now().Unix())
	log.Printf("media.collision: exhausted %d probes for %q in %s, using %q", maxCollisionProbes, base, dir, fallback)
	return fallback
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
