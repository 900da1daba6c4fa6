package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

var groupSlugRegex = regexp.MustCompile(`^[a-z0-9-]{1,50}$`)

// ValidateGroupSlug validates the URL segment used by /group/:slug.
func ValidateGroupSlug(slug string) error {
	if !groupSlugRegex.MatchString(slug) {
		return errors.New("slug must be 1-50 characters and contain only lowercase letters, numbers, and hyphens")
	}
	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return errors.New("slug cannot start or end with a hyphen")
	}
	return nil
}

// ValidateGroupTitle requires a non-blank title of at most 200 characters.
func ValidateGroupTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errors.New("title is required")
	}
	if utf8.RuneCountInString(title) > 200 {
		return errors.New("title must be at most 200 characters")
	}
	return nil
}
