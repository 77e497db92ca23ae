package generator

import (
	"regexp"
	"strings"
)

var slugStripRe = regexp.MustCompile(`[^a-z0-9\s-]`)
var slugSpaceRe = regexp.MustCompile(`[\s-]+`)

// Slugify derives the article slug deterministically from the headline:
// lowercase, punctuation stripped, whitespace collapsed to single hyphens.
// The same headline always yields the same slug, which is what lets the
// unique index catch cross-run duplicates.
func Slugify(headline string) string {
	slug := strings.ToLower(headline)
	slug = slugStripRe.ReplaceAllString(slug, "")
	slug = slugSpaceRe.ReplaceAllString(strings.TrimSpace(slug), "-")
	return strings.Trim(slug, "-")
}
