package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"dcrhub/internal/config"
	"dcrhub/pkg/utils"
)

// CacheBustParam is the query parameter carrying the per-request token.
const CacheBustParam = "cb"

const snippetLength = 250

// Scraper errors.
var (
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	ErrResponseTooLarge     = errors.New("response exceeds buffer limit")
)

// StatusError reports a non-success HTTP response.
type StatusError struct {
	URL        string
	Snippet    string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: HTTP %d for %s", ErrUnexpectedStatusCode, e.StatusCode, e.URL)
}

// Unwrap lets errors.Is match ErrUnexpectedStatusCode.
func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatusCode
}

// Scraper performs single-attempt GET requests that bypass HTTP caches.
// Failed requests are not retried.
type Scraper struct {
	client       *http.Client
	headers      *utils.HTTPHelper
	strings      *utils.StringHelper
	newToken     func() string
	bufferSizeKb int
}

// NewScraper creates a new scraper instance with default config.
func NewScraper() *Scraper {
	return NewScraperWithConfig(config.Default().Fetch)
}

// NewScraperWithConfig creates a scraper from fetch settings.
func NewScraperWithConfig(cfg config.FetchConfig) *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: cfg.GetTimeout(),
		},
		headers:      utils.NewHTTPHelper(cfg.UserAgent),
		strings:      utils.NewStringHelper(),
		newToken:     uuid.NewString,
		bufferSizeKb: cfg.BufferSizeKb,
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (s *Scraper) WithHTTPClient(client *http.Client) *Scraper {
	s.client = client

	return s
}

// CacheBust returns rawURL with a unique cache-busting query parameter.
func CacheBust(rawURL, token string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", eris.Wrapf(err, "parse url %q", rawURL)
	}

	q := u.Query()
	q.Set(CacheBustParam, token)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// ScrapeWithMetrics returns (content, statusCode, duration, error).
// Local paths and file:// URLs are read from disk.
func (s *Scraper) ScrapeWithMetrics(ctx context.Context, rawURL string) ([]byte, int, time.Duration, error) {
	startTime := time.Now()

	if path, ok := localPath(rawURL); ok {
		content, err := s.ReadLocalFile(path)

		return content, 0, time.Since(startTime), err
	}

	target, err := CacheBust(rawURL, s.newToken())
	if err != nil {
		return nil, 0, time.Since(startTime), err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, 0, time.Since(startTime), eris.Wrap(err, "failed to create request")
	}

	req.Header = s.headers.BuildHeaders(nil)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, time.Since(startTime), eris.Wrapf(err, "request failed for %s", rawURL)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	limit := int64(s.bufferSizeKb) * 1024
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))

	duration := time.Since(startTime)

	if err != nil {
		return nil, resp.StatusCode, duration, eris.Wrap(err, "failed to read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, duration, &StatusError{
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Snippet:    s.strings.TruncateString(s.strings.NormalizeWhitespace(string(body)), snippetLength),
		}
	}

	if int64(len(body)) > limit {
		return nil, resp.StatusCode, duration, fmt.Errorf("%w: %d KB", ErrResponseTooLarge, s.bufferSizeKb)
	}

	return body, resp.StatusCode, duration, nil
}

// Scrape fetches and returns content from the given URL.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) ([]byte, error) {
	content, _, _, err := s.ScrapeWithMetrics(ctx, rawURL)

	return content, err
}

// ReadLocalFile reads content from a local file path.
func (s *Scraper) ReadLocalFile(filePath string) ([]byte, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read local file %s: %w", filePath, err)
	}

	return content, nil
}

// localPath reports whether rawURL names a file rather than an HTTP resource.
func localPath(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}

	switch strings.ToLower(u.Scheme) {
	case "":
		return rawURL, true
	case "file":
		return u.Path, true
	}

	return "", false
}
