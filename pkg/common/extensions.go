package common

import (
	"net/url"
	"strings"
)

// IsImageFormat returns true if the URL's path looks like an image file. Query strings are ignored.
func IsImageFormat(rawURL string) bool {
	path := rawURL
	if parsed, err := url.Parse(rawURL); err == nil {
		path = parsed.Path
	}
	path = strings.ToLower(path)
	return strings.HasSuffix(path, ".jpg") ||
		strings.HasSuffix(path, ".jpeg") ||
		strings.HasSuffix(path, ".png") ||
		strings.HasSuffix(path, ".gif") ||
		strings.HasSuffix(path, ".webp")
}
