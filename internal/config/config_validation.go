package config

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants the service relies on at startup.
//
// The RSA private key path is mandatory: without it every inbound envelope
// would fail to decrypt, so the service refuses to start instead of failing
// on every request with a partially-initialized key.
func (cfg *StructuredConfig) validate() error {
	if cfg.Security.PrivateKeyPath == "" {
		return ErrNoPrivateKeyConfigured
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Address.BaseURL == "" {
		return ErrInvalidAddressConfigs
	}

	return nil
}
