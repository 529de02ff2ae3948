package music

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// MakeSlug generates a URL-safe base slug from a display name.
// Example: "Road Trip Mix!" -> "road-trip-mix"
func MakeSlug(name string) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.ReplaceAll(base, " ", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" {
		base = "playlist"
	}
	return base
}

// EnsureShareSlug ensures playlist.ShareSlug exists and is persisted.
// Must be called AFTER the playlist has an ID (after Create). The ID suffix
// keeps slugs unique without a retry loop.
func EnsureShareSlug(db *gorm.DB, playlist *Playlist) (string, error) {
	if playlist == nil {
		return "", fmt.Errorf("playlist is nil")
	}

	if playlist.ShareSlug != nil && strings.TrimSpace(*playlist.ShareSlug) != "" {
		return strings.TrimSpace(*playlist.ShareSlug), nil
	}

	if playlist.ID == 0 {
		return "", fmt.Errorf("playlist ID missing (call EnsureShareSlug after Create)")
	}

	slug := fmt.Sprintf("%s-%d", MakeSlug(playlist.Name), playlist.ID)
	playlist.ShareSlug = &slug

	if err := db.
		Model(&Playlist{}).
		Where("id = ?", playlist.ID).
		Update("share_slug", slug).Error; err != nil {
		return "", err
	}

	return slug, nil
}
