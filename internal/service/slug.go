package service

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var slugSeparatorRuns = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a display name into a URL-safe token: lowercase, runs of
// non-alphanumeric characters collapsed to single hyphens, leading and
// trailing hyphens stripped. An empty or symbol-only name yields "", which
// callers must reject before persisting.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugSeparatorRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// uniqueSlug returns a slug that is free within the namespace of model's
// table. The base candidate is returned as-is when free, otherwise base-1,
// base-2, ... until a free one is found. When excludeID names a row whose
// current slug already equals base, that slug is kept unchanged; the row is
// not renamed away from a value it already owns.
//
// The check-then-use is bounded by the caller's transaction; concurrent
// writers racing on the same base are resolved by the unique index on slug.
func uniqueSlug(tx *gorm.DB, model interface{}, base string, excludeID uint) (string, error) {
	if base == "" {
		return "", nil
	}

	if excludeID > 0 {
		var own int64
		if err := tx.Model(model).
			Where("slug = ? AND id = ?", base, excludeID).
			Count(&own).Error; err != nil {
			return "", err
		}
		if own > 0 {
			return base, nil
		}
	}

	candidate := base
	for counter := 1; ; counter++ {
		var taken int64
		if err := tx.Model(model).Where("slug = ?", candidate).Count(&taken).Error; err != nil {
			return "", err
		}
		if taken == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}

// isUniqueViolation reports whether err is a unique-index failure from the
// storage layer, the losing side of a slug race.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
