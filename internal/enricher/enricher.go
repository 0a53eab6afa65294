// Package enricher derives a human-readable title for a URL from its page metadata.
package enricher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html/charset"
)

const (
	userAgent = "linkstash/1.0 (+https://github.com/kshyr/linkstash)"

	// maxBodyBytes bounds how much of a page is read; titles live in <head>.
	maxBodyBytes = 2 << 20
)

var (
	ErrEnrich     = errors.New("error reading link")
	ErrHTTPStatus = errors.New("unexpected HTTP status")
)

// Enricher resolves a URL to a display title.
type Enricher interface {
	Enrich(ctx context.Context, url string) (string, error)
}

// HTMLEnricher fetches a page over HTTP and reads its title metadata.
type HTMLEnricher struct {
	httpClient *http.Client
	logger     *log.Logger
}

// HTMLEnricherParams holds parameters for creating an HTMLEnricher.
type HTMLEnricherParams struct {
	Timeout    time.Duration // 0 = no timeout
	HTTPClient *http.Client  // overrides Timeout when set
	Logger     *log.Logger
}

// NewHTMLEnricher creates an HTMLEnricher.
func NewHTMLEnricher(params HTMLEnricherParams) *HTMLEnricher {
	client := params.HTTPClient
	if client == nil {
		client = &http.Client{
			Timeout: params.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Follow redirects but limit to 10
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		}
	}

	logger := params.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &HTMLEnricher{httpClient: client, logger: logger}
}

// Enrich fetches url and returns its title. A page without title metadata
// yields "" and no error. Every failure wraps ErrEnrich.
func (e *HTMLEnricher) Enrich(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEnrich, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	e.logger.Debug("fetching page title", "url", url)
	start := time.Now()

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEnrich, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %w: %s", ErrEnrich, ErrHTTPStatus, resp.Status)
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, maxBodyBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("%w: decoding body: %w", ErrEnrich, err)
	}

	title, err := ParseTitle(body)
	if err != nil {
		return "", fmt.Errorf("%w: parsing HTML: %w", ErrEnrich, err)
	}

	e.logger.Debug("page title fetched", "url", url, "title", title, "took", time.Since(start))
	return title, nil
}
