package tool

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidInput reports tool arguments that violate the declared input
// schema.
var ErrInvalidInput = errors.New("tool input does not satisfy the input schema")

// ValidateInput checks JSON-encoded arguments against the declaration's
// input schema. A declaration without an input schema accepts anything.
func ValidateInput(decl *Declaration, jsonArgs []byte) error {
	if decl == nil || decl.InputSchema == nil {
		return nil
	}
	schemaLoader := gojsonschema.NewGoLoader(decl.InputSchema)
	documentLoader := gojsonschema.NewBytesLoader(jsonArgs)
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(details, "; "))
	}
	return nil
}
