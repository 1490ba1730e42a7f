package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"seogen/internal/domain"
)

// Type is a JSON value type understood by both backends.
type Type string

const (
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
)

// Schema describes the JSON shape a model must produce. The same value is sent
// to providers that accept a response schema and used to validate every answer.
// A Schema must not be copied after first use.
type Schema struct {
	Type        Type
	Description string
	Items       *Schema
	Properties  map[string]*Schema
	Required    []string

	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

// String is shorthand for a described string property.
func String(description string) *Schema {
	return &Schema{Type: TypeString, Description: description}
}

// Integer is shorthand for a described integer property.
func Integer(description string) *Schema {
	return &Schema{Type: TypeInteger, Description: description}
}

// StringArray is shorthand for an array of strings.
func StringArray(description string) *Schema {
	return &Schema{Type: TypeArray, Description: description, Items: &Schema{Type: TypeString}}
}

// ArrayOf wraps item in an array schema.
func ArrayOf(item *Schema) *Schema {
	return &Schema{Type: TypeArray, Items: item}
}

// Gemini renders the schema in the OpenAPI subset accepted by generateContent.
func (s *Schema) Gemini() map[string]any {
	out := map[string]any{"type": strings.ToUpper(string(s.Type))}
	s.fill(out, func(p *Schema, _ bool) map[string]any { return p.Gemini() })
	return out
}

// JSONSchema renders the schema as a JSON Schema document. Properties left out
// of Required also accept null, which the alternate backend uses for fields it
// cannot fill.
func (s *Schema) JSONSchema() map[string]any {
	return s.jsonSchema(false)
}

func (s *Schema) jsonSchema(nullable bool) map[string]any {
	out := map[string]any{"type": string(s.Type)}
	if nullable {
		out["type"] = []string{string(s.Type), "null"}
	}
	s.fill(out, func(p *Schema, optional bool) map[string]any { return p.jsonSchema(optional) })
	return out
}

func (s *Schema) fill(out map[string]any, render func(p *Schema, optional bool) map[string]any) {
	if s.Description != "" {
		out["description"] = s.Description
	}
	if s.Items != nil {
		out["items"] = render(s.Items, false)
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, p := range s.Properties {
			props[name] = render(p, !slices.Contains(s.Required, name))
		}
		out["properties"] = props
	}
	if len(s.Required) > 0 {
		out["required"] = s.Required
	}
}

func (s *Schema) compile() (*jsonschema.Schema, error) {
	s.once.Do(func() {
		b, err := json.Marshal(s.JSONSchema())
		if err != nil {
			s.err = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
			s.err = fmt.Errorf("add schema: %w", err)
			return
		}
		s.compiled, s.err = compiler.Compile("schema.json")
		if s.err != nil {
			s.err = fmt.Errorf("compile schema: %w", s.err)
		}
	})
	return s.compiled, s.err
}

// Validate checks data against the schema. Mismatches wrap domain.ErrFormat.
func (s *Schema) Validate(data []byte) error {
	compiled, err := s.compile()
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("%w: unmarshal data: %v", domain.ErrFormat, err)
	}
	if err := compiled.Validate(v); err != nil {
		return fmt.Errorf("%w: json does not match schema: %v", domain.ErrFormat, err)
	}
	return nil
}
