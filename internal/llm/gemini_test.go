package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestBuildGeminiSchema_TriviaSet(t *testing.T) {
	schema := buildGeminiSchema(TriviaSchema().Definition)

	assert.Equal(t, genai.TypeObject, schema.Type)
	assert.Equal(t, []string{"results"}, schema.Required)

	results := schema.Properties["results"]
	require.NotNil(t, results)
	assert.Equal(t, genai.TypeArray, results.Type)

	item := results.Items
	require.NotNil(t, item)
	assert.ElementsMatch(t, []string{"question", "answers"}, item.Required)

	answer := item.Properties["answers"].Items
	require.NotNil(t, answer)
	assert.Equal(t, genai.TypeBoolean, answer.Properties["is_correct"].Type)
	assert.Equal(t, genai.TypeString, answer.Properties["text"].Type)
}

func TestBuildGeminiSchema_Enum(t *testing.T) {
	schema := buildGeminiSchema(map[string]any{
		"type": "string",
		"enum": []any{"easy", "medium", "hard"},
	})
	assert.Equal(t, []string{"easy", "medium", "hard"}, schema.Enum)
}

func TestMapGeminiType(t *testing.T) {
	assert.Equal(t, genai.TypeInteger, mapGeminiType("integer"))
	assert.Equal(t, genai.TypeNumber, mapGeminiType("number"))
	assert.Equal(t, genai.TypeString, mapGeminiType("null"))
}

func TestMapGeminiStopReason(t *testing.T) {
	truncated := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonMaxTokens}},
	}
	assert.Equal(t, "max_tokens", mapGeminiStopReason(truncated))
	assert.Equal(t, "end", mapGeminiStopReason(&genai.GenerateContentResponse{}))
}
