package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator_Validate(t *testing.T) {
	tests := []struct {
		name    string
		data    any
		strict  bool
		wantErr error
	}{
		{name: "object", data: map[string]any{"races": []any{}}},
		{name: "object without races", data: map[string]any{}},
		{name: "array", data: []any{}},
		{name: "nil", data: nil, wantErr: ErrUnsupportedDocument},
		{name: "string", data: "races", wantErr: ErrUnsupportedDocument},
		{name: "strict without races", data: map[string]any{"meetings": []any{}}, strict: true, wantErr: ErrMissingCollection},
		{name: "strict with races", data: map[string]any{"races": []any{}}, strict: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator()
			v.Strict = tt.strict

			err := v.Validate(tt.data)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
