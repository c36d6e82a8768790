package trivia

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSource_JSON(t *testing.T) {
	path := writeFile(t, "quiz.json", samplePayload)

	items, err := NewFileSource(path).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestFileSource_YAML(t *testing.T) {
	path := writeFile(t, "quiz.yaml", `
results:
  - question: "Largest planet?"
    answers:
      - text: Jupiter
        is_correct: true
      - text: Mars
        is_correct: false
`)

	src := NewFileSource(path)
	items, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Largest planet?", items[0].Question)
	assert.Equal(t, "Jupiter", items[0].Answers[0].Text)
	assert.Equal(t, "file:"+path, src.Describe())
}

func TestFileSource_Missing(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.json")).Fetch(context.Background())
	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, KindTransport, le.Kind)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFileSource_InvalidYAML(t *testing.T) {
	path := writeFile(t, "quiz.yml", "results: [unclosed")

	_, err := NewFileSource(path).Fetch(context.Background())
	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, KindDecode, le.Kind)
}
