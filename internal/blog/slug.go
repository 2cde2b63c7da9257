package blog

import (
	"regexp"
	"strings"
)

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a title: lowercase, every run of
// non-alphanumeric characters collapsed to a single hyphen, then the first
// 8 characters of the blog id appended so duplicate titles stay unique.
func Slugify(title, blogID string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(title), "-")
	s = strings.Trim(s, "-")

	suffix := blogID
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	if s == "" {
		return suffix
	}
	return s + "-" + suffix
}
