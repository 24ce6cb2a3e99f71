package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://habla-catalog.json"

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func nonEmptyString() map[string]any {
	return map[string]any{"type": "string", "minLength": 1}
}

// documentSchema describes the catalog file after YAML decoding.
var documentSchema = map[string]any{
	"type":     "object",
	"required": []any{"levels"},
	"properties": map[string]any{
		"levels": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"key", "title", "lessons"},
				"properties": map[string]any{
					"key":   nonEmptyString(),
					"title": nonEmptyString(),
					"lessons": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items":    lessonSchema,
					},
				},
			},
		},
		"cultural_facts": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "title", "content"},
				"properties": map[string]any{
					"id":      map[string]any{"type": "integer"},
					"title":   nonEmptyString(),
					"content": nonEmptyString(),
					"emoji":   map[string]any{"type": "string"},
					"country": map[string]any{"type": "string"},
				},
			},
		},
	},
}

var lessonSchema = map[string]any{
	"type":     "object",
	"required": []any{"id", "title", "vocabulary", "grammar", "dialogue"},
	"properties": map[string]any{
		"id":    map[string]any{"type": "integer"},
		"title": nonEmptyString(),
		"vocabulary": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "english", "spanish"},
				"properties": map[string]any{
					"id":            map[string]any{"type": "integer"},
					"english":       nonEmptyString(),
					"spanish":       nonEmptyString(),
					"pronunciation": map[string]any{"type": "string"},
					"example":       map[string]any{"type": "string"},
					"translation":   map[string]any{"type": "string"},
				},
			},
		},
		"grammar": map[string]any{
			"type":     "object",
			"required": []any{"title", "rules"},
			"properties": map[string]any{
				"title":       nonEmptyString(),
				"explanation": map[string]any{"type": "string"},
				"rules": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []any{"concept", "usage", "example"},
					},
				},
			},
		},
		"dialogue": map[string]any{
			"type":     "object",
			"required": []any{"title", "lines"},
			"properties": map[string]any{
				"title":    nonEmptyString(),
				"scenario": map[string]any{"type": "string"},
				"lines": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type":     "object",
						"required": []any{"speaker", "spanish", "blank", "options"},
						"properties": map[string]any{
							"speaker": nonEmptyString(),
							"spanish": nonEmptyString(),
							"english": map[string]any{"type": "string"},
							"blank":   nonEmptyString(),
							"options": map[string]any{
								"type":     "array",
								"minItems": 2,
								"items":    nonEmptyString(),
							},
						},
					},
				},
			},
		},
	},
}

// getCompiledSchema compiles the document schema once.
func getCompiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value, so round-trip
		// the Go literal through encoding/json.
		defBytes, err := json.Marshal(documentSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

// validateShape checks a decoded YAML tree against the document schema.
func validateShape(tree any) error {
	compiled, err := getCompiledSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}

	raw, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("catalog is not JSON-compatible: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("parse catalog tree: %w", err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
