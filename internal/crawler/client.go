// Package crawler fetches and decodes the JSON documents behind the viewer.
package crawler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidJSON indicates a body that is not a single JSON document.
var ErrInvalidJSON = errors.New("invalid JSON document")

// Document is a decoded JSON payload together with its raw bytes.
type Document struct {
	Value any
	URL   string
	Raw   []byte
}

// Client fetches JSON documents.
type Client struct {
	scraper *Scraper
}

// NewClient creates a new client with default dependencies.
func NewClient() *Client {
	return &Client{scraper: NewScraper()}
}

// NewClientWithDeps creates a new client with an injected scraper.
func NewClientWithDeps(scraper *Scraper) *Client {
	return &Client{scraper: scraper}
}

// FetchJSON fetches url once and decodes the body. Numbers are kept as
// json.Number so producers' numeric fields render exactly as published.
func (c *Client) FetchJSON(ctx context.Context, url string) (*Document, error) {
	body, err := c.scraper.Scrape(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}

	value, err := DecodeJSON(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", url, err)
	}

	return &Document{URL: url, Raw: body, Value: value}, nil
}

// DecodeJSON decodes exactly one JSON value from data. Anything after the
// value other than whitespace is rejected.
func DecodeJSON(data []byte) (any, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: malformed or trailing data", ErrInvalidJSON)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}

	return value, nil
}
