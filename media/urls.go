package media

import "strings"

// GalleryURLPrefix is where the asset server mounts the gallery root.
const GalleryURLPrefix = "/images/gallery/"

// PublicURL maps a stored path fragment to its public URL. Historical rows
// hold fragments in three shapes: already category-prefixed
// ("garten/teich.jpg"), bare ("teich.jpg", needs the category inserted), or
// already a full gallery-rooted URL. Resolution is idempotent.
func PublicURL(fragment, category string) string {
	if fragment == "" {
		return ""
	}
	if strings.HasPrefix(fragment, GalleryURLPrefix) {
		return fragment
	}
	fragment = strings.TrimPrefix(fragment, "/")
	if category != "" && !strings.HasPrefix(fragment, category+"/") {
		fragment = category + "/" + fragment
	}
	return GalleryURLPrefix + fragment
}
