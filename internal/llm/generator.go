package llm

import (
	"context"
	"encoding/json"
)

// Attachment is a binary document sent inline with a prompt.
type Attachment struct {
	Data     []byte
	MIMEType string
}

// Request is one generation call.
type Request struct {
	// System is an optional system instruction.
	System string
	Prompt string
	// Schema constrains and validates the answer. Providers that accept a
	// response schema also receive it on the wire.
	Schema *Schema
	// Attachment, when set, requires a vision-capable model.
	Attachment *Attachment
}

// Response carries a validated JSON answer and the model that produced it.
type Response struct {
	JSON  json.RawMessage
	Model string
}

// Generator abstracts a generation backend.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}
