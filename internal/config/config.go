package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// flow-endpoint service. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the version string and
	// flow token parameters.
	App App `envPrefix:"APP_"`

	// Security holds the cryptographic material configuration: the RSA
	// private key used to unwrap AES session keys and the shared secret
	// used to verify webhook signatures.
	Security Security `envPrefix:"SECURITY_"`

	// Server holds network address and timeout settings for the HTTP
	// server.
	Server Server `envPrefix:"SERVER_"`

	// Address holds configuration for the outbound CEP lookup API.
	Address Address `envPrefix:"ADDRESS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged with the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Exposed via the /api/version/ endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// TokenSignKey is the secret key used to sign and verify flow tokens.
	// When empty, flow token validation is disabled and the token is
	// passed through as an opaque string.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued flow token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long an issued flow token remains valid
	// (e.g. "24h", "30m").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
}

// Security holds the process-wide secret configuration. All fields are loaded
// once at startup and treated as immutable for the life of the process.
type Security struct {
	// PrivateKeyPath is the path to the PEM-encoded RSA private key whose
	// public half is registered with the WhatsApp Business platform.
	// A missing or unparsable key prevents the service from starting.
	// Env: SECURITY_PRIVATE_KEY_PATH
	PrivateKeyPath string `env:"PRIVATE_KEY_PATH"`

	// PrivateKeyPassphrase is the passphrase of the private key, if the
	// PEM file is encrypted. Empty for unencrypted keys.
	// Env: SECURITY_PRIVATE_KEY_PASSPHRASE
	PrivateKeyPassphrase string `env:"PRIVATE_KEY_PASSPHRASE"`

	// AppSecret is the Meta app secret used to verify the
	// x-hub-signature-256 header over the raw request body. When empty,
	// signature verification is skipped with a logged warning.
	// Env: SECURITY_APP_SECRET
	AppSecret string `env:"APP_SECRET"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Address holds settings for the outbound ViaCEP address lookup client.
type Address struct {
	// BaseURL is the base URL of the CEP lookup API
	// (default "https://viacep.com.br").
	// Env: ADDRESS_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout bounds a single lookup request including retries.
	// Env: ADDRESS_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RetryCount is the number of additional attempts made after a failed
	// lookup request (5xx or transport error).
	// Env: ADDRESS_RETRY_COUNT
	RetryCount int `env:"RETRY_COUNT"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (earlier sources win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
