package media

import (
	"regexp"
	"strings"
)

const slugMaxLength = 50

var (
	slugDisallowed  = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespace  = regexp.MustCompile(`\s+`)
	slugHyphenRuns  = regexp.MustCompile(`-+`)
	filenameUnsafe  = regexp.MustCompile(`[^A-Za-z0-9._-]`)
	filenameDotRuns = regexp.MustCompile(`\.{2,}`)
)

var umlautReplacer = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
	"Ä", "ae", "Ö", "oe", "Ü", "ue",
)

// Slugify converts free-form display text into a filesystem- and URL-safe
// base name: lowercase [a-z0-9-], whitespace collapsed to single hyphens,
// common Germanic umlauts transliterated, truncated to 50 characters.
// Returns "" when nothing usable remains.
func Slugify(text string) string {
	if text == "" {
		return ""
	}
	s := strings.ToLower(text)
	s = umlautReplacer.Replace(s)
	s = slugDisallowed.ReplaceAllString(s, "")
	s = slugWhitespace.ReplaceAllString(strings.TrimSpace(s), "-")
	s = slugHyphenRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > slugMaxLength {
		s = s[:slugMaxLength]
		s = strings.Trim(s, "-")
	}
	return s
}

// SanitizeFilename strips path separators and anything outside
// [A-Za-z0-9._-] from a caller-supplied filename. The result is safe to
// embed in a stored path; it is retained for display and audit only.
func SanitizeFilename(name string) string {
	// drop any directory components the client may have sent
	if idx := strings.LastIndexAny(name, `/\`); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.ReplaceAll(name, " ", "_")
	name = filenameUnsafe.ReplaceAllString(name, "")
	name = filenameDotRuns.ReplaceAllString(name, ".")
	name = strings.Trim(name, "._-")
	return name
}
