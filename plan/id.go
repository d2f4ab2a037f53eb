package plan

import "github.com/google/uuid"

// NewID mints a plan identifier.
func NewID() string {
	return uuid.NewString()
}
