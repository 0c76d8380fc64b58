package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dcrhub/internal/config"
)

func TestCacheBust(t *testing.T) {
	got, err := CacheBust("https://example.com/results.json?x=1", "abc")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/results.json?cb=abc&x=1", got)

	got, err = CacheBust("https://example.com/results.json?cb=old", "new")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/results.json?cb=new", got)
}

func TestScraper_SendsNoStoreRequestWithFreshToken(t *testing.T) {
	var (
		mu     sync.Mutex
		tokens []string
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		tokens = append(tokens, r.URL.Query().Get(CacheBustParam))
		mu.Unlock()

		assert.Equal(t, "no-store", r.Header.Get("Cache-Control"))
		assert.Equal(t, "DCRHub-Viewer/1.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"races":[]}`))
	}))
	defer srv.Close()

	s := NewScraper()

	for range 2 {
		body, status, _, err := s.ScrapeWithMetrics(context.Background(), srv.URL+"/results.json")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `{"races":[]}`, string(body))
	}

	mu.Lock()
	defer mu.Unlock()

	require.Len(t, tokens, 2)
	assert.NotEmpty(t, tokens[0])
	assert.NotEqual(t, tokens[0], tokens[1])
}

func TestScraper_NonSuccessStatus(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "  not\n\nfound  ", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewScraper().Scrape(context.Background(), srv.URL+"/results.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatusCode)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, "not found", statusErr.Snippet)
	assert.Equal(t, int32(1), calls.Load(), "failed requests are not retried")
}

func TestScraper_ResponseTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 2048)))
	}))
	defer srv.Close()

	cfg := config.Default().Fetch
	cfg.BufferSizeKb = 1

	_, err := NewScraperWithConfig(cfg).Scrape(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrResponseTooLarge)
}

func TestScraper_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewScraper().Scrape(ctx, srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context canceled")
}

func TestScraper_LocalFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o600))

	s := NewScraper()

	body, err := s.Scrape(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))

	body, err = s.Scrape(context.Background(), "file://"+path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))

	_, err = s.Scrape(context.Background(), filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
