// Package state keeps the filter inputs, the shareable URL and the rendered
// result list consistent with each other.
package state

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"

	"dcrhub/internal/filter"
	"dcrhub/internal/logger"
	"dcrhub/internal/models"
	"dcrhub/internal/session"
	"dcrhub/internal/view"
)

// DefaultDebounce is the quiet period after the last edit before recomputing.
const DefaultDebounce = 250 * time.Millisecond

// Renderer is the rendering surface.
type Renderer interface {
	Render(records []models.DisplayRecord, status string)
	RenderError(message string)
}

// Source provides the results collection.
type Source interface {
	LoadOnce(ctx context.Context, url string) ([]models.CanonicalRace, error)
	Snapshot(url string) session.Snapshot
}

// Synchronizer drives the load, filter and render cycle. All state changes
// happen under one mutex, so timer callbacks and caller edits never interleave.
// The renderer is called with the mutex held and must not block on the caller
// of SetInput or Clear.
type Synchronizer struct {
	source     Source
	renderer   Renderer
	log        *logger.Logger
	debouncer  *Debouncer
	page       *url.URL
	resultsURL string
	inputs     models.FilterState
	state      models.FilterState
	mu         sync.Mutex
	shownAny   bool
}

// New creates a synchronizer for the results document at resultsURL.
func New(source Source, resultsURL string, renderer Renderer, log *logger.Logger) *Synchronizer {
	if log == nil {
		log = logger.NewNop()
	}

	return &Synchronizer{
		source:     source,
		renderer:   renderer,
		log:        log,
		resultsURL: resultsURL,
		debouncer:  NewDebouncer(DefaultDebounce),
		page:       &url.URL{},
	}
}

// WithDebounce replaces the debounce delay. Call it before Init.
func (s *Synchronizer) WithDebounce(delay time.Duration) *Synchronizer {
	s.debouncer = NewDebouncer(delay)

	return s
}

// Init seeds every filter from the page URL, falling back to inputs, then
// loads the results and renders them. A load failure renders the error
// message unless a non-empty list is already shown; the error is returned
// for logging only.
func (s *Synchronizer) Init(ctx context.Context, pageURL string, inputs models.FilterState) error {
	if _, err := s.Seed(pageURL, inputs); err != nil {
		return err
	}

	return s.Load(ctx)
}

// Seed takes the filters from the page URL, falling back to inputs, and
// renders the loading status. It returns the seeded filters so the caller can
// show them in its inputs.
func (s *Synchronizer) Seed(pageURL string, inputs models.FilterState) (models.FilterState, error) {
	page, err := url.Parse(pageURL)
	if err != nil {
		return inputs, eris.Wrapf(err, "parse page url %q", pageURL)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.page = page
	s.state = seed(page.Query(), inputs)
	s.inputs = s.state
	s.renderer.Render([]models.DisplayRecord{}, view.LoadingStatus)

	return s.state, nil
}

// Load fetches the results once and renders the current filters over them.
func (s *Synchronizer) Load(ctx context.Context) error {
	_, err := s.source.LoadOnce(ctx, s.resultsURL)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.log.Error("Failed to load results", "url", s.resultsURL, "error", err)

		if !s.shownAny {
			s.renderer.RenderError(view.LoadErrorMessage)
		}

		return err
	}

	s.recomputeLocked()

	return nil
}

// SetInput records an edit to one filter. The edit is applied after the
// debounce delay; a newer edit to the same field replaces it.
func (s *Synchronizer) SetInput(field models.FilterField, value string) {
	s.mu.Lock()
	s.inputs = s.inputs.With(field, value)
	s.mu.Unlock()

	s.debouncer.Trigger(string(field), s.apply)
}

// Clear resets every filter, drops pending edits and recomputes at once.
func (s *Synchronizer) Clear() {
	s.debouncer.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.inputs = models.FilterState{}
	s.state = models.FilterState{}
	s.writeURLLocked()
	s.recomputeLocked()
}

// Flush applies pending edits immediately.
func (s *Synchronizer) Flush() {
	s.debouncer.Stop()
	s.apply()
}

// Close drops pending edits.
func (s *Synchronizer) Close() {
	s.debouncer.Stop()
}

// ShareableURL returns the page address encoding the applied filters.
func (s *Synchronizer) ShareableURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.page.String()
}

// State returns the applied filters.
func (s *Synchronizer) State() models.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *Synchronizer) apply() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.inputs
	s.log.Debug("Applying filters", "date", s.state.Date, "course", s.state.Course, "q", s.state.Query)
	s.writeURLLocked()
	s.recomputeLocked()
}

// recomputeLocked renders the filtered snapshot. Nothing is rendered while
// the first load is still pending, so the loading status stays visible.
func (s *Synchronizer) recomputeLocked() {
	snap := s.source.Snapshot(s.resultsURL)
	if snap.Status == session.StatusEmpty {
		return
	}

	races := filter.Apply(snap.Races, filter.Build(s.state))
	records := view.ProjectAll(races)

	s.renderer.Render(records, view.StatusLine(len(records), snap.UpdatedAt))

	if len(records) > 0 {
		s.shownAny = true
	}
}

func (s *Synchronizer) writeURLLocked() {
	q := s.page.Query()

	for _, field := range models.FilterFields {
		value := strings.TrimSpace(s.state.Get(field))

		if field == models.FieldDate {
			if iso, ok := filter.NormalizeDateInput(value); ok {
				value = iso
			}
		}

		if value == "" {
			q.Del(string(field))
		} else {
			q.Set(string(field), value)
		}
	}

	s.page.RawQuery = q.Encode()
}

// seed takes each filter from a non-empty URL parameter, else from inputs.
func seed(q url.Values, inputs models.FilterState) models.FilterState {
	state := inputs

	for _, field := range models.FilterFields {
		if v := strings.TrimSpace(q.Get(string(field))); v != "" {
			state = state.With(field, v)
		}
	}

	return state
}
