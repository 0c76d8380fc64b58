package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPHelper_IsValidURL(t *testing.T) {
	h := NewHTTPHelper("")

	assert.True(t, h.IsValidURL("https://example.com/results.json"))
	assert.True(t, h.IsValidURL("http://localhost:8080/"))
	assert.False(t, h.IsValidURL("results.json"))
	assert.False(t, h.IsValidURL("file:///tmp/results.json"))
	assert.False(t, h.IsValidURL("https://"))
}

func TestHTTPHelper_BuildHeaders(t *testing.T) {
	headers := NewHTTPHelper("").BuildHeaders(map[string]string{"Accept": "text/plain"})

	assert.Equal(t, DefaultUserAgent, headers.Get("User-Agent"))
	assert.Equal(t, "no-store", headers.Get("Cache-Control"))
	assert.Equal(t, "text/plain", headers.Get("Accept"))

	assert.Equal(t, "agent/2", NewHTTPHelper("agent/2").BuildHeaders(nil).Get("User-Agent"))
}

func TestStringHelper(t *testing.T) {
	s := NewStringHelper()

	assert.Equal(t, "a b c", s.NormalizeWhitespace(" a\n b\t\tc "))
	assert.Equal(t, "abc...", s.TruncateString("abcdef", 3))
	assert.Equal(t, "abc", s.TruncateString("abc", 3))
	assert.Equal(t, "沙田...", s.TruncateString("沙田馬場", 2))
}
