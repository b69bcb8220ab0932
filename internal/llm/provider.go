package llm

import (
	"context"
	"encoding/json"
)

// Provider is the abstraction over the generative model backends.
// Question generation sends a prompt (and usually a diagram image) and
// expects structured JSON back.
type Provider interface {
	// Generate sends a request to the model and returns its response.
	// When the request carries a Schema, the provider uses its native
	// structured-output mechanism and validates the returned JSON
	// against the schema before handing it back.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider targets.
	ModelID() string
}

// Request describes a single generation call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Batch generation uses a single
	// user message holding the question prompt.
	Messages []Message

	// Images are attachments sent alongside the messages. The physics
	// pipeline attaches exactly one diagram per request.
	Images []ImageAttachment

	// Schema, when set, is the JSON Schema the response must conform to.
	// When nil the response Content is the raw model text.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls sampling randomness (0.0 - 1.0).
	Temperature float64
}

// ImageAttachment is an inline image sent with a request.
type ImageAttachment struct {
	// MIMEType is the image media type, e.g. "image/png".
	MIMEType string

	// Data is the raw image bytes.
	Data []byte
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

// Schema describes the JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema (tool name for Anthropic, schema name
	// for OpenAI). Kebab-case, e.g. "physics-question-list".
	Name string

	// Description tells the model what the schema represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model output.
type Response struct {
	// Content is the generated output. With a Schema set this is the
	// validated JSON; otherwise the raw text wrapped as a JSON string.
	Content json.RawMessage

	// Usage reports token consumption for this call.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to: "end", "max_tokens", "error".
	StopReason string
}

// Usage tracks token consumption for a single call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
