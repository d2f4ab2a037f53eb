package model

// Usage reports token accounting for one call.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the model's answer to one request. For schema-constrained
// requests Content holds the JSON document the model produced; callers
// validate it before use.
type Response struct {
	// Content is the completion text.
	Content string `json:"content"`

	// Model is the identifier reported by the provider.
	Model string `json:"model,omitempty"`

	// FinishReason reports why generation stopped, e.g. "stop", "length".
	FinishReason string `json:"finish_reason,omitempty"`

	// Usage reports token accounting when the provider returns it.
	Usage *Usage `json:"usage,omitempty"`
}
