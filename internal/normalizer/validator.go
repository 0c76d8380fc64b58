package normalizer

import (
	"errors"
	"fmt"
)

// Document validation errors.
var (
	ErrUnsupportedDocument = errors.New("unsupported document: expected a JSON object or array")
	ErrMissingCollection   = errors.New("document has no races collection")
)

// Validator checks the top-level shape of a results document.
type Validator struct {
	// Strict rejects objects that carry no races collection.
	Strict bool
}

// NewValidator creates a lenient validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate accepts an object (with an optional races array) or a bare array.
func (v *Validator) Validate(doc any) error {
	switch d := doc.(type) {
	case []any:
		return nil
	case map[string]any:
		if !v.Strict {
			return nil
		}

		if _, ok := d["races"].([]any); !ok {
			return ErrMissingCollection
		}

		return nil
	case nil:
		return fmt.Errorf("%w: got null", ErrUnsupportedDocument)
	}

	return fmt.Errorf("%w: got %T", ErrUnsupportedDocument, doc)
}
