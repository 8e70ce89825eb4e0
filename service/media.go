package service

import (
	"net/url"
	"strings"

	"github.com/AbuAli85/Contract-Management-System-sub011/model"
)

// PlaceholderImageURL is substituted for missing or malformed media URLs.
const PlaceholderImageURL = "https://placehold.co/400x200/png?text=No+Image"

// MediaResolver guarantees media slots hold a usable image URL.
type MediaResolver struct {
	placeholder string
}

// NewMediaResolver returns a resolver using placeholder for unusable
// values. An empty or malformed placeholder falls back to the default.
func NewMediaResolver(placeholder string) *MediaResolver {
	if !isImageURL(strings.TrimSpace(placeholder)) {
		placeholder = PlaceholderImageURL
	}
	return &MediaResolver{placeholder: strings.TrimSpace(placeholder)}
}

// Placeholder returns the URL used for unusable values.
func (m *MediaResolver) Placeholder() string {
	return m.placeholder
}

// EnsureValidURL returns v when it is an absolute URL (a hierarchical URL
// with a host, or an opaque one such as a data: URI) and the placeholder
// otherwise. Applying it to its own output is a no-op.
func (m *MediaResolver) EnsureValidURL(v any) string {
	s, ok := v.(string)
	if !ok {
		return m.placeholder
	}
	s = strings.TrimSpace(s)
	if !isImageURL(s) {
		return m.placeholder
	}
	return s
}

// Resolve rewrites every media slot of data in place.
func (m *MediaResolver) Resolve(data map[string]any) {
	for _, slot := range model.MediaSlots {
		data[slot] = m.EnsureValidURL(data[slot])
	}
}

// EnsureValidURL applies the default placeholder policy.
func EnsureValidURL(v any) string {
	return defaultResolver.EnsureValidURL(v)
}

var defaultResolver = NewMediaResolver(PlaceholderImageURL)

func isImageURL(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		return false
	}
	// data: URIs are opaque; hierarchical URLs need a host.
	if u.Opaque != "" {
		return true
	}
	return u.Host != ""
}
