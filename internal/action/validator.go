package action

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/wagiedev/action-bridge-go/internal/errors"
)

// Validator checks encoded requests against an action's input schema.
// It is immutable after construction and safe for concurrent use.
type Validator struct {
	schema   *jsonschema.Schema
	resolved *jsonschema.Resolved
}

// NewValidator compiles schema. It fails if the schema is malformed or has
// unresolvable references.
func NewValidator(schema *jsonschema.Schema) (*Validator, error) {
	if schema == nil {
		return nil, fmt.Errorf("compile input schema: schema is nil")
	}

	resolved, err := schema.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("compile input schema: %w", err)
	}

	return &Validator{schema: schema, resolved: resolved}, nil
}

// Schema returns the schema the validator was built from.
func (v *Validator) Schema() *jsonschema.Schema {
	return v.schema
}

// Validate checks one encoded request. Failures are *errors.InvalidInputError.
func (v *Validator) Validate(request []byte) error {
	var instance any
	if err := json.Unmarshal(request, &instance); err != nil {
		return &errors.InvalidInputError{Err: err}
	}

	if err := v.resolved.Validate(instance); err != nil {
		return &errors.InvalidInputError{Err: err}
	}

	return nil
}
