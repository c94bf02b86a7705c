// Package adapter provides transport-layer abstractions for communicating
// with external APIs the screen router depends on.
//
// The primary abstraction is [AddressProvider], which decouples the service
// layer from the concrete CEP lookup API. The package ships a ViaCEP
// implementation ([NewViaCEPAdapter]).
//
// Error values defined in errors.go are mapped from HTTP responses so that
// callers can use [errors.Is] for transport-agnostic error handling.
package adapter

import (
	"context"

	"github.com/flowsuite/flow-endpoint/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/address_provider_mock.go -package=mock

// AddressProvider resolves a Brazilian postal code (CEP) to a street
// address. Implementations are responsible for serialisation, retries, and
// mapping transport-level errors to the sentinel values defined in this
// package.
type AddressProvider interface {
	// Lookup resolves cep (8 digits, no punctuation) to an address.
	// Returns [ErrCEPNotFound] if the CEP is well-formed but unknown, or
	// [ErrAddressLookup] on transport and server failures.
	Lookup(ctx context.Context, cep string) (models.Address, error)
}
