// Package prompt provides a structured system for managing, versioning, and
// rendering prompt templates for language models.
package prompt

import (
	"context"
)

// Template represents a versioned prompt template with optional variable
// placeholders of the form {{name}}.
type Template struct {
	// ID is the unique identifier of the template, e.g. "travel-planner".
	ID string `json:"id"`

	// Name is a human-readable name for the template.
	Name string `json:"name"`

	// Description provides details about the template's purpose.
	Description string `json:"description"`

	// Version tracks the template version for observability.
	Version string `json:"version"`

	// Content contains the template text with optional placeholders.
	Content string `json:"content"`

	// Variables holds metadata about the placeholders in Content.
	Variables []Variable `json:"variables,omitempty"`

	// Config carries the model settings the template was tuned for.
	Config Config `json:"config"`
}

// Config is the model configuration bag attached to a template.
type Config struct {
	// ModelName selects the completion model, empty for the service default.
	ModelName string `json:"modelName,omitempty"`

	// Temperature overrides the sampling temperature when set.
	Temperature *float64 `json:"temperature,omitempty"`
}

// Variable represents a placeholder that can be replaced with a value.
type Variable struct {
	// Name is the identifier of the variable in the template.
	Name string `json:"name"`

	// Description explains what the variable represents.
	Description string `json:"description,omitempty"`

	// Required indicates the variable must be provided for rendering.
	Required bool `json:"required"`

	// DefaultValue is used when the variable is not provided.
	DefaultValue string `json:"default_value,omitempty"`
}

// Repository provides storage and retrieval of prompt templates.
type Repository interface {
	// Get retrieves a template by its ID.
	Get(ctx context.Context, id string) (*Template, error)

	// Save persists a template.
	Save(ctx context.Context, template *Template) error

	// List returns all stored templates.
	List(ctx context.Context) ([]*Template, error)
}

// Renderer processes a template by replacing variables with values.
type Renderer interface {
	// Render returns the final prompt text.
	Render(ctx context.Context, template *Template, variables map[string]string) (string, error)
}

// Common errors returned by the prompt package.
var (
	ErrTemplateNotFound   = Error{Code: "template_not_found", Message: "template not found"}
	ErrMissingRequiredVar = Error{Code: "missing_required_variable", Message: "missing required variable"}
	ErrInvalidTemplate    = Error{Code: "invalid_template", Message: "invalid template format"}
)

// Error represents errors in the prompt system.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Is matches errors by code so wrapped instances compare equal to the
// package sentinels.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	return ok && t.Code == e.Code
}

// WithCause attaches an underlying cause to the error.
func (e Error) WithCause(cause error) Error {
	e.Cause = cause
	return e
}
