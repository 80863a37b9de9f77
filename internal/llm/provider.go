package llm

import (
	"context"
	"encoding/json"
)

// Provider is a structured-completion backend. Callers send a prompt
// together with a JSON Schema and receive JSON conforming to it.
type Provider interface {
	// Generate sends the request and blocks until the provider answers.
	// When req.Schema is set the returned Content has been validated
	// against it. A provider that completes without producing structured
	// output (refusal, content filter) returns *ErrNoOutput.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider sends requests to.
	ModelID() string
}

// Request is a single-turn exchange: one system prompt plus the user
// message(s) and the schema the answer must follow.
type Request struct {
	// System sets the assistant's role.
	System string

	// Messages holds the conversation. Problem generation sends exactly
	// one user message.
	Messages []Message

	// Schema is the structured output format. Nil means free text, which
	// is returned as raw bytes in Response.Content.
	Schema *Schema

	// MaxTokens caps the response length. Zero lets the provider decide
	// where the SDK allows it.
	MaxTokens int

	// Temperature controls randomness in the range 0.0 - 1.0.
	Temperature float64
}

// Message is one turn of the conversation.
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

// Schema names a JSON Schema for structured output.
type Schema struct {
	// Name is sent as the schema name (OpenAI) and used as the cache key
	// for compiled validators, e.g. "programming-problem".
	Name string

	// Description tells the model what the object represents.
	Description string

	// Definition is the JSON Schema document.
	Definition map[string]any
}

// Response holds the provider's answer.
type Response struct {
	// Content is the JSON document produced by the model.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "refusal".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// resolveModel maps a short alias such as "gpt-4o" to the vendor model ID.
// Anything not in aliases is taken to be a full ID already.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
