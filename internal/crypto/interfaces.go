package crypto

import (
	"encoding/json"

	"github.com/flowsuite/flow-endpoint/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/envelope_codec_mock.go -package=mock

// Decrypted is the result of opening one inbound envelope: the plaintext
// payload plus the session key material required to encrypt the response.
//
// AESKey and IV are valid for exactly one request/response cycle. They must
// be threaded through the screen router call unchanged and discarded when
// the response has been encrypted; they are never logged or persisted.
type Decrypted struct {
	// Plaintext is the decrypted payload, guaranteed to be valid JSON.
	Plaintext json.RawMessage

	// AESKey is the unwrapped 16-byte AES-128 session key.
	AESKey []byte

	// IV is the GCM nonce the request was encrypted with. The response
	// uses its bitwise complement, never the value itself.
	IV []byte
}

// EnvelopeCodec is the cryptographic core of the webhook: signature
// verification, envelope decryption, and response encryption. It holds only
// immutable key material and is safe for concurrent use.
//
// The codec is deliberately ignorant of the payload shape: plaintext goes
// in and out as opaque JSON, and screen routing happens elsewhere.
type EnvelopeCodec interface {
	// VerifySignature checks the x-hub-signature-256 header against an
	// HMAC-SHA256 digest of the exact raw request body. Returns
	// [ErrSignature] on a missing header or mismatch. When no shared
	// secret is configured the check is skipped with a logged warning.
	VerifySignature(body []byte, signatureHeader string) error

	// Decrypt opens the envelope: RSA-OAEP unwrap of the AES session key,
	// AES-128-GCM decryption of the payload, and a JSON validity check.
	// All failures return [ErrDecryption] with the cause wrapped for
	// internal logging.
	Decrypt(envelope models.EncryptedEnvelope) (Decrypted, error)

	// Encrypt serializes response to compact JSON and encrypts it with
	// aesKey and the bitwise complement of requestIV, returning the
	// base64 ciphertext-plus-tag string that forms the HTTP response
	// body. Failures return [ErrEncryption].
	Encrypt(response any, aesKey, requestIV []byte) (string, error)
}
