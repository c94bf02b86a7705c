package validators

import "errors"

var (
	// ErrUnsupportedType is returned when a validator receives an object
	// type it does not know how to check.
	ErrUnsupportedType = errors.New("unsupported type for validation")

	ErrNoAction      = errors.New("flow request has no action")
	ErrUnknownAction = errors.New("unknown flow action")
	ErrInvalidCEP    = errors.New("invalid cep format")
)
