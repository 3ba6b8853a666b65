// Package fetcher retrieves HTML documents for conversion.
// Implement the Fetcher interface to plug in a different retrieval
// strategy, e.g. one that handles authentication.
package fetcher

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"
)

// Fetcher abstracts page fetching strategies.
type Fetcher interface {
	// Fetch retrieves the page at url.
	Fetch(ctx context.Context, url string, opts Options) (Page, error)

	// Type returns a string identifying the fetcher type (e.g. "static").
	Type() string
}

// Options controls a single fetch. Zero values fall back to the fetcher's
// configuration.
type Options struct {
	UserAgent   string
	Timeout     time.Duration
	Headers     map[string]string
	MaxBodySize int
}

// Page is a fetched HTML document.
type Page struct {
	URL         string
	HTML        string
	Title       string
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
}

// Error types for distinguishing failure reasons.
// Check with errors.Is(err, fetcher.ErrUnsupportedScheme).
var (
	// ErrUnsupportedScheme is returned for anything other than http and https.
	ErrUnsupportedScheme = errors.New("unsupported URL scheme")
	// ErrHTTPStatus indicates a non-success response.
	ErrHTTPStatus = errors.New("unexpected HTTP status")
	// ErrNotHTML indicates the response is not an HTML document.
	ErrNotHTML = errors.New("response is not HTML")
)

// IsURL reports whether s looks like something Fetch can retrieve. The CLI
// uses it to tell URL arguments from file paths.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.Host != ""
	}
	return false
}
