package crypto

import "errors"

// Error taxonomy of the envelope codec. Callers match with [errors.Is]; the
// HTTP layer translates all of them into the protocol-mandated empty 200
// response, so none of these values ever reach the wire.
var (
	// ErrSignature indicates a missing or invalid x-hub-signature-256
	// header. Raised before any decryption is attempted.
	ErrSignature = errors.New("webhook signature verification failed")

	// ErrDecryption indicates a malformed envelope field, an RSA unwrap
	// failure, a GCM authentication failure, or non-JSON plaintext. The
	// specific cause is wrapped for internal logging only.
	ErrDecryption = errors.New("envelope decryption failed")

	// ErrEncryption indicates a failure while producing the response
	// ciphertext. Always fatal for the request.
	ErrEncryption = errors.New("envelope encryption failed")

	// ErrPrivateKey indicates that the configured RSA private key could
	// not be read or parsed. Raised at startup, never per request.
	ErrPrivateKey = errors.New("invalid RSA private key")
)
