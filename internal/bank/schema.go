package bank

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://lisquiz-bank.json"

var scalarSchema = map[string]any{
	"type": []any{"string", "number", "boolean"},
}

// Schema is the JSON Schema every bank document must satisfy.
var Schema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"format":  map[string]any{"type": "string"},
		"id":      map[string]any{"type": "string", "pattern": "^[A-Za-z0-9][A-Za-z0-9_.-]*$"},
		"title":   map[string]any{"type": "string"},
		"variant": map[string]any{"type": "string", "enum": []any{"choice", "blank", "sort", "audio"}},
		"boxes": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"left":  map[string]any{"type": "string"},
				"right": map[string]any{"type": "string"},
			},
			"additionalProperties": false,
		},
		"voice": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"lang":  map[string]any{"type": "string"},
				"rate":  map[string]any{"type": "number", "exclusiveMinimum": 0},
				"pitch": map[string]any{"type": "number", "exclusiveMinimum": 0},
			},
			"additionalProperties": false,
		},
		"questions": map[string]any{
			"type":  []any{"array", "null"},
			"items": itemSchema,
		},
	},
	"required":             []any{"questions"},
	"additionalProperties": false,
}

var itemSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"question": map[string]any{"type": "string"},
		"options": map[string]any{
			"type":  "array",
			"items": scalarSchema,
		},
		"correct": scalarSchema,
		"key": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type": "string",
				"enum": []any{"left", "right"},
			},
		},
		"explanation": map[string]any{"type": "string"},
		"image":       map[string]any{"type": "string"},
		"alt":         map[string]any{"type": "string"},
		"voice":       map[string]any{"type": "string"},
		"lang":        map[string]any{"type": "string"},
		"rate":        map[string]any{"type": "number", "exclusiveMinimum": 0},
		"pitch":       map[string]any{"type": "number", "exclusiveMinimum": 0},
	},
	"additionalProperties": false,
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		def, err := roundTrip(Schema)
		if err != nil {
			compileErr = fmt.Errorf("marshal bank schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add bank schema: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// validateDocument checks a decoded YAML document against Schema.
func validateDocument(doc any) error {
	if doc == nil {
		return &ValidationError{Err: fmt.Errorf("empty document")}
	}
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	// yaml.v3 yields ints and nested maps the validator does not expect;
	// a JSON round trip turns the document into plain JSON values.
	parsed, err := roundTrip(doc)
	if err != nil {
		return &ValidationError{Err: err}
	}
	if err := schema.Validate(parsed); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

func roundTrip(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
