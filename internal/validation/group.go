package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var groupSlugRegex = regexp.MustCompile(`^[a-z0-9-]{3,50}$`)

// Slugs that would collide with routed paths or read as official.
var reservedGroupSlugs = map[string]struct{}{
	"admin":   {},
	"api":     {},
	"auth":    {},
	"create":  {},
	"follow":  {},
	"group":   {},
	"health":  {},
	"media":   {},
	"metrics": {},
	"posts":   {},
	"profile": {},
}

// ValidateGroupSlug validates group slug format and reserved names.
func ValidateGroupSlug(slug string) error {
	if !groupSlugRegex.MatchString(slug) {
		return fmt.Errorf("slug must be 3-50 characters and contain only lowercase letters, numbers, and hyphens")
	}
	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return fmt.Errorf("slug cannot start or end with a hyphen")
	}
	if _, reserved := reservedGroupSlugs[slug]; reserved {
		return fmt.Errorf("slug %q is reserved", slug)
	}
	return nil
}
