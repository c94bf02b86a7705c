// Package validators contains input validation for decrypted flow payloads.
//
// Validation runs after the envelope codec has done its work: the payload is
// already well-formed JSON, but field-level constraints (known action, CEP
// format) still need to hold before the screen router acts on it.
package validators

import "context"

// Validator validates a domain object, optionally restricted to the given
// field names. With no fields listed, all supported fields are checked.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
