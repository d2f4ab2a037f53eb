package model

import "github.com/tripweaver-ai/tripweaver/tool"

// Role represents the role of a message author.
type Role string

// Role constants for message authors.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Message represents a single message in a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NewSystemMessage creates a new system message.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates a new assistant message.
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// GenerationConfig contains configuration for text generation.
type GenerationConfig struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens *int `json:"max_tokens,omitempty"`

	// Temperature controls randomness (0.0 to 2.0).
	Temperature *float64 `json:"temperature,omitempty"`

	// TopP controls nucleus sampling (0.0 to 1.0).
	TopP *float64 `json:"top_p,omitempty"`
}

// StructuredOutput requires the model to respond strictly in the declared
// JSON schema.
type StructuredOutput struct {
	// Name labels the schema on the wire.
	Name string `json:"name"`

	// Description explains the expected structure to the model.
	Description string `json:"description,omitempty"`

	// Schema is the JSON schema the response must satisfy.
	Schema *tool.Schema `json:"schema"`

	// Strict enables exact schema adherence where the provider supports it.
	Strict bool `json:"strict,omitempty"`
}

// Request is the request to the model.
type Request struct {
	// Messages is the conversation to complete.
	Messages []Message `json:"messages"`

	// GenerationConfig contains the generation parameters.
	GenerationConfig `json:",inline"`

	// StructuredOutput, when set, constrains the response to a schema.
	StructuredOutput *StructuredOutput `json:"structured_output,omitempty"`
}
