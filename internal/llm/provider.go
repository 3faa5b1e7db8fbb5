package llm

import (
	"context"
	"encoding/json"
)

// Provider is the abstraction over hosted language models. Callers send a
// Request and get back JSON, validated against the request schema when
// one is given.
type Provider interface {
	// Generate sends the prompt and returns the model output. With a
	// Schema set, the provider uses its native structured output mode
	// and Content is the validated JSON document.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider calls.
	ModelID() string
}

// Request describes one generation call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Quiz generation sends a single user
	// message.
	Messages []Message

	// Schema, when set, is the JSON Schema the output must satisfy.
	// When nil, Content carries the raw text.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness (0.0 - 1.0). Zero leaves the
	// provider default in place.
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema document.
type Schema struct {
	// Name identifies the schema, e.g. "quiz-question-set". It doubles as
	// the compiled-schema cache key.
	Name string

	Description string

	// Definition is the JSON Schema as nested maps.
	Definition map[string]any
}

// Response holds the model output.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
