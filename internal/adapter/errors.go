package adapter

import "errors"

var (
	// ErrCEPNotFound indicates a well-formed CEP that the upstream API
	// does not know.
	ErrCEPNotFound = errors.New("cep not found")
	// ErrAddressLookup indicates a transport failure or an upstream
	// non-2xx response after all retries were exhausted.
	ErrAddressLookup = errors.New("address lookup failed")
)
