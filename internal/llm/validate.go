package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled holds response schemas by Schema.Name. Names are fixed per
// request type, so the map stays small.
var compiled struct {
	mu      sync.Mutex
	schemas map[string]*jsonschema.Schema
}

// validateResponse checks raw against schema. A nil schema accepts
// anything. Failures are *ErrInvalidResponse so the retry decorator can
// ask the model again.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return invalidResponse(raw, fmt.Errorf("response is not JSON: %w", err))
	}
	s, err := compileSchema(schema)
	if err != nil {
		return invalidResponse(raw, fmt.Errorf("schema %q: %w", schema.Name, err))
	}
	if err := s.Validate(doc); err != nil {
		return invalidResponse(raw, fmt.Errorf("response does not match %q: %w", schema.Name, err))
	}
	return nil
}

func invalidResponse(raw json.RawMessage, err error) error {
	return &ErrInvalidResponse{Content: raw, Err: err}
}

func compileSchema(schema *Schema) (*jsonschema.Schema, error) {
	compiled.mu.Lock()
	defer compiled.mu.Unlock()
	if s, ok := compiled.schemas[schema.Name]; ok {
		return s, nil
	}

	def, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, err
	}
	url := "schema://llm/" + schema.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, err
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, err
	}

	if compiled.schemas == nil {
		compiled.schemas = make(map[string]*jsonschema.Schema)
	}
	compiled.schemas[schema.Name] = s
	return s, nil
}
