package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateResponse(t *testing.T) {
	schema := TriviaSchema()

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid set", triviaJSON, false},
		{"empty results", `{"results":[]}`, false},
		{"not json", `{"results":`, true},
		{"missing answers", `{"results":[{"question":"q"}]}`, true},
		{"wrong flag type", `{"results":[{"question":"q","answers":[{"text":"a","is_correct":"yes"}]}]}`, true},
		{"extra property", `{"results":[],"category":"science"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(schema, json.RawMessage(tt.raw))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var invalid *ErrInvalidResponse
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.raw, string(invalid.Content))
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	assert.NoError(t, validateResponse(nil, json.RawMessage(`not even json`)))
}

func TestCompileSchema_Cached(t *testing.T) {
	first, err := compileSchema(TriviaSchema())
	require.NoError(t, err)
	second, err := compileSchema(TriviaSchema())
	require.NoError(t, err)
	assert.Same(t, first, second)
}
