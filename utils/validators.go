package utils

import (
	"net/url"
	"time"
)

// IsValidURL reports whether the attachment link is a well-formed
// absolute http(s) URL. The empty string counts as absent, not invalid.
func IsValidURL(raw string) bool {
	if raw == "" {
		return true
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}

	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// IsValidYear accepts model years from the dawn of the automobile up to
// next year's models.
func IsValidYear(year int) bool {
	return year >= 1900 && year <= time.Now().Year()+1
}
