package model

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidURL is returned for input that cannot be stashed as a link.
var ErrInvalidURL = errors.New("invalid URL")

// Link represents a stashed URL and its display title.
type Link struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// NewLinkParams holds parameters for creating a new Link.
type NewLinkParams struct {
	URL   string
	Title string
}

// NewLink creates a Link, collapsing whitespace in the title.
// An empty title falls back to the URL.
func NewLink(params NewLinkParams) Link {
	title := strings.Join(strings.Fields(params.Title), " ")
	if title == "" {
		title = params.URL
	}

	return Link{
		URL:   params.URL,
		Title: title,
	}
}

// NormalizeURL trims raw and defaults a missing scheme to https.
// The URL is otherwise kept as typed.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidURL)
	}

	if !hasAuthorityScheme(raw) {
		if u, err := url.Parse(raw); err == nil && isOpaque(u) {
			// mailto:, tel: and the like have no host
			return raw, nil
		}
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: %q has no host", ErrInvalidURL, raw)
	}
	return raw, nil
}

// hasAuthorityScheme reports whether raw starts with "scheme://",
// ignoring any "://" inside the path, query or fragment.
func hasAuthorityScheme(raw string) bool {
	head := raw
	if i := strings.IndexAny(head, "/?#"); i >= 0 {
		head = head[:i]
	}
	return strings.HasSuffix(head, ":") && strings.HasPrefix(raw[len(head):], "//") && len(head) > 1
}

// isOpaque reports whether u is a scheme:data URL rather than host:port.
func isOpaque(u *url.URL) bool {
	if u.Scheme == "" || u.Opaque == "" {
		return false
	}
	port := u.Opaque
	if i := strings.IndexAny(port, "/?#"); i >= 0 {
		port = port[:i]
	}
	for _, r := range port {
		if r < '0' || r > '9' {
			return true
		}
	}
	return port == ""
}
