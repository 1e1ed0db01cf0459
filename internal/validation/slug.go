package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var categorySlugRegex = regexp.MustCompile(`^[a-z0-9-]{2,64}$`)

// Slugs that would collide with routes or tooling.
var reservedCategorySlugs = map[string]struct{}{
	"api":        {},
	"auth":       {},
	"posts":      {},
	"comments":   {},
	"categories": {},
	"users":      {},
	"profile":    {},
	"swagger":    {},
	"metrics":    {},
	"health":     {},
	"login":      {},
	"signup":     {},
}

// ValidateCategorySlug validates slug format and reserved names.
func ValidateCategorySlug(slug string) error {
	if !categorySlugRegex.MatchString(slug) {
		return fmt.Errorf("slug must be 2-64 characters and contain only lowercase letters, numbers, and hyphens")
	}

	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return fmt.Errorf("slug cannot start or end with a hyphen")
	}

	if _, exists := reservedCategorySlugs[slug]; exists {
		return fmt.Errorf("slug is reserved")
	}

	return nil
}
