package trivia

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// SchemaName identifies the trivia payload schema.
const SchemaName = "trivia-set"

// Definition returns the JSON Schema for the wire payload.
//
// The lenient form accepts extra properties so public endpoints that add
// metadata (category, difficulty) still validate. The strict form forbids
// them, which structured-output LLM APIs require.
func Definition(strict bool) map[string]any {
	answer := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text":       map[string]any{"type": "string", "description": "Answer text shown to the player"},
			"is_correct": map[string]any{"type": "boolean", "description": "True for the single correct answer"},
		},
		"required": []any{"text", "is_correct"},
	}
	item := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{"type": "string", "description": "Question text"},
			"answers": map[string]any{
				"type":        "array",
				"description": "Answer choices, exactly one correct",
				"items":       answer,
			},
		},
		"required": []any{"question", "answers"},
	}
	root := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"results": map[string]any{
				"type":  "array",
				"items": item,
			},
		},
		"required": []any{"results"},
	}
	if strict {
		answer["additionalProperties"] = false
		item["additionalProperties"] = false
		root["additionalProperties"] = false
	}
	return root
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// validatePayload checks a parsed JSON document against the lenient schema.
func validatePayload(doc any) error {
	compileOnce.Do(func() {
		compiled, compileErr = compileDefinition(Definition(false))
	})
	if compileErr != nil {
		return fmt.Errorf("compile schema: %w", compileErr)
	}
	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compileDefinition(def map[string]any) (*jsonschema.Schema, error) {
	// The compiler wants a plain decoded JSON value, not Go maps with typed slices.
	raw, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", SchemaName)
	if err := c.AddResource(url, parsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(url)
}
