// Package model provides the interface for working with LLM completion
// services.
package model

import "context"

// Model is the interface to a completion service. Implementations support
// plain chat completion and schema-constrained structured output.
//
// A schema-constrained call may still return non-conformant data; callers
// must validate the returned content against the declared schema before
// trusting it.
type Model interface {
	// GenerateContent performs one completion call.
	GenerateContent(ctx context.Context, request *Request) (*Response, error)

	// Info returns basic information about the model.
	Info() Info
}

// Info holds basic model information.
type Info struct {
	// Name is the model identifier, e.g. "gpt-4o-mini".
	Name string `json:"name"`
}
