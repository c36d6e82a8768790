package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileSource reads a trivia payload from a local JSON or YAML file.
// YAML files use the same field names as the JSON wire format.
type FileSource struct {
	path string
}

// NewFileSource creates a source backed by path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Describe() string { return "file:" + s.path }

func (s *FileSource) Fetch(ctx context.Context) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, &LoadError{Kind: KindTransport, Source: s.Describe(), Err: err}
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &LoadError{Kind: KindTransport, Source: s.Describe(), Err: err}
	}

	if isYAML(s.path) {
		raw, err = yamlToJSON(raw)
		if err != nil {
			return nil, &LoadError{Kind: KindDecode, Source: s.Describe(), Err: err}
		}
	}

	items, err := Decode(raw)
	if err != nil {
		return nil, &LoadError{Kind: KindDecode, Source: s.Describe(), Err: err}
	}
	return items, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// yamlToJSON re-encodes a YAML document as JSON so it runs through the
// same schema validation as remote payloads.
func yamlToJSON(raw []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return json.Marshal(normalizeYAML(doc))
}

// normalizeYAML converts map[any]any nodes (possible with non-string keys)
// into map[string]any so encoding/json accepts them.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeYAML(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return m
	case []any:
		for i, val := range t {
			t[i] = normalizeYAML(val)
		}
		return t
	default:
		return v
	}
}
