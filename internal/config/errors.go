package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrNoPrivateKeyConfigured indicates that no RSA private key path was
	// provided. The service cannot decrypt any envelope without it.
	ErrNoPrivateKeyConfigured = errors.New("no RSA private key configured")
	// ErrInvalidServerConfigs indicates invalid server settings (for
	// example, an empty listen address after defaults were applied).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidAddressConfigs indicates invalid CEP lookup settings (for
	// example, an empty base URL after defaults were applied).
	ErrInvalidAddressConfigs = errors.New("invalid address lookup configuration")
)
