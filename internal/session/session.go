// Package session loads the results and racecards documents at most once per
// URL and keeps the decoded snapshots for the session lifetime.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"dcrhub/internal/crawler"
	"dcrhub/internal/logger"
	"dcrhub/internal/models"
	"dcrhub/internal/normalizer"
	"dcrhub/internal/racecards"
	"dcrhub/pkg/metadata"
)

// Status tags the state of one source.
type Status int

// Source states. A source moves from StatusEmpty to exactly one of the others.
const (
	StatusEmpty Status = iota
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	}

	return "empty"
}

// DataLoadError reports a network, HTTP status or JSON failure for one source.
type DataLoadError struct {
	Cause      error
	URL        string
	StatusCode int
}

func (e *DataLoadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("load %s: HTTP %d", e.URL, e.StatusCode)
	}

	return fmt.Sprintf("load %s: %v", e.URL, e.Cause)
}

func (e *DataLoadError) Unwrap() error {
	return e.Cause
}

// Snapshot is the state of one source. Races and Meetings are never nil.
type Snapshot struct {
	Err       error
	URL       string
	UpdatedAt string
	Digest    string
	Races     []models.CanonicalRace
	Meetings  []models.Meeting
	Status    Status
}

type kind string

const (
	kindResults kind = "results"
	kindCards   kind = "cards"
)

// Fetcher retrieves and decodes one JSON document.
type Fetcher interface {
	FetchJSON(ctx context.Context, url string) (*crawler.Document, error)
}

// Session owns the write-once snapshots of every source it has loaded.
type Session struct {
	fetcher   Fetcher
	processor *normalizer.Processor
	log       *logger.Logger
	group     singleflight.Group
	entries   map[string]*Snapshot
	mu        sync.RWMutex
}

// New creates a session that fetches through client.
func New(client Fetcher, log *logger.Logger) *Session {
	return NewWithDeps(client, normalizer.NewProcessor(), log)
}

// NewWithDeps creates a session with an injected processor.
func NewWithDeps(client Fetcher, processor *normalizer.Processor, log *logger.Logger) *Session {
	if log == nil {
		log = logger.NewNop()
	}

	return &Session{
		fetcher:   client,
		processor: processor,
		log:       log,
		entries:   make(map[string]*Snapshot),
	}
}

// LoadOnce returns the normalized races behind url, fetching them only on the
// first call. A failed load is remembered: later calls return the same
// *DataLoadError and an empty collection without fetching again.
func (s *Session) LoadOnce(ctx context.Context, url string) ([]models.CanonicalRace, error) {
	snap := s.load(ctx, kindResults, url)

	return snap.Races, snap.Err
}

// LoadCardsOnce is LoadOnce for the racecards document.
func (s *Session) LoadCardsOnce(ctx context.Context, url string) ([]models.Meeting, error) {
	snap := s.load(ctx, kindCards, url)

	return snap.Meetings, snap.Err
}

// Snapshot returns the current results snapshot for url without fetching.
func (s *Session) Snapshot(url string) Snapshot {
	return s.snapshot(kindResults, url)
}

// CardsSnapshot returns the current racecards snapshot for url without fetching.
func (s *Session) CardsSnapshot(url string) Snapshot {
	return s.snapshot(kindCards, url)
}

// Status reports the state of the results source at url.
func (s *Session) Status(url string) Status {
	return s.Snapshot(url).Status
}

func (s *Session) snapshot(k kind, url string) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, ok := s.entries[key(k, url)]; ok {
		return *e
	}

	return emptySnapshot(url)
}

func (s *Session) load(ctx context.Context, k kind, url string) Snapshot {
	if snap := s.snapshot(k, url); snap.Status != StatusEmpty {
		return snap
	}

	v, _, _ := s.group.Do(key(k, url), func() (any, error) {
		// A caller that lost the race to a finished flight sees its entry here.
		if snap := s.snapshot(k, url); snap.Status != StatusEmpty {
			return snap, nil
		}

		snap := s.fetch(ctx, k, url)

		s.mu.Lock()
		s.entries[key(k, url)] = &snap
		s.mu.Unlock()

		return snap, nil
	})

	return v.(Snapshot)
}

func (s *Session) fetch(ctx context.Context, k kind, url string) Snapshot {
	log := s.log.With("source", string(k), "url", url)
	log.Debug("Loading document")

	doc, err := s.fetcher.FetchJSON(ctx, url)
	if err == nil {
		var snap Snapshot

		snap, err = s.decode(k, doc)
		if err == nil {
			snap.URL = url
			snap.Status = StatusLoaded
			snap.Digest = metadata.Digest(doc.Raw)
			log.Info("Loaded document", "races", len(snap.Races), "meetings", len(snap.Meetings))

			return snap
		}
	}

	loadErr := &DataLoadError{URL: url, Cause: err}

	var statusErr *crawler.StatusError
	if errors.As(err, &statusErr) {
		loadErr.StatusCode = statusErr.StatusCode
	}

	log.Error("Failed to load document", "error", err, "status_code", loadErr.StatusCode)

	snap := emptySnapshot(url)
	snap.Status = StatusFailed
	snap.Err = loadErr

	return snap
}

func (s *Session) decode(k kind, doc *crawler.Document) (Snapshot, error) {
	snap := emptySnapshot(doc.URL)

	switch k {
	case kindCards:
		cards, err := racecards.Normalize(doc.Value)
		if err != nil {
			return snap, err
		}

		snap.Meetings = cards.Meetings
		snap.UpdatedAt = cards.UpdatedAt
	default:
		results, err := s.processor.Process(doc.Value)
		if err != nil {
			return snap, err
		}

		snap.Races = results.Races
		snap.UpdatedAt = results.UpdatedAt
	}

	return snap, nil
}

func emptySnapshot(url string) Snapshot {
	return Snapshot{
		URL:      url,
		Races:    []models.CanonicalRace{},
		Meetings: []models.Meeting{},
	}
}

func key(k kind, url string) string {
	return string(k) + " " + url
}
