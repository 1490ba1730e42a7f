package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"seogen/internal/domain"
)

// ExtractJSON isolates the JSON value in a model answer. Models occasionally wrap
// their output in Markdown fences or add a sentence around it despite being told
// not to.
func ExtractJSON(text string) ([]byte, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, fmt.Errorf("%w: empty model output", domain.ErrFormat)
	}

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			// drop the language tag ("json", "JSON", ...)
			s = s[nl+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}

	if json.Valid([]byte(s)) {
		return []byte(s), nil
	}

	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return nil, fmt.Errorf("%w: no JSON value in model output", domain.ErrFormat)
	}
	closer := byte('}')
	if s[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(s, closer)
	if end <= start {
		return nil, fmt.Errorf("%w: unterminated JSON value in model output", domain.ErrFormat)
	}
	candidate := []byte(s[start : end+1])
	if !json.Valid(candidate) {
		return nil, fmt.Errorf("%w: invalid JSON in model output", domain.ErrFormat)
	}
	return candidate, nil
}

// DecodeResponse isolates the JSON in text, checks it against schema when one is
// given and returns the compacted document.
func DecodeResponse(text string, schema *Schema) (json.RawMessage, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}
	if schema != nil {
		if err := schema.Validate(raw); err != nil {
			return nil, err
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFormat, err)
	}
	return buf.Bytes(), nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
