// Package normalizer maps loosely-structured race documents onto the
// canonical shapes used by the rest of the viewer.
package normalizer

import (
	"fmt"

	"dcrhub/internal/models"
)

// Processor validates a decoded results document and normalizes its races.
type Processor struct {
	validator   *Validator
	transformer *Transformer
}

// NewProcessor creates a new processor instance.
func NewProcessor() *Processor {
	return &Processor{
		validator:   NewValidator(),
		transformer: NewTransformer(),
	}
}

// NewProcessorWithDeps creates a processor with injected dependencies.
func NewProcessorWithDeps(validator *Validator, transformer *Transformer) *Processor {
	return &Processor{
		validator:   validator,
		transformer: transformer,
	}
}

// Process turns a decoded JSON document into a ResultsDocument. The races come
// from a "races" array or from a bare top-level array, in source order.
func (p *Processor) Process(doc any) (models.ResultsDocument, error) {
	if err := p.validator.Validate(doc); err != nil {
		return models.ResultsDocument{Races: []models.CanonicalRace{}}, fmt.Errorf("validation failed: %w", err)
	}

	var (
		items     []any
		updatedAt string
	)

	switch d := doc.(type) {
	case []any:
		items = d
	case map[string]any:
		if v, ok := lookup(d, collectionKeys); ok {
			items, _ = v.([]any)
		}

		updatedAt = firstText(d, updatedAtKeys)
	}

	races := make([]models.CanonicalRace, 0, len(items))

	for _, item := range items {
		raw, ok := asRecord(item)
		if !ok {
			raw = map[string]any{}
		}

		races = append(races, p.transformer.Transform(models.RawRecord(raw)))
	}

	return models.ResultsDocument{UpdatedAt: updatedAt, Races: races}, nil
}
