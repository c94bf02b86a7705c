// Package crypto implements the cryptographic envelope of the WhatsApp
// Flows data exchange protocol.
//
// Every inbound request carries an AES-128 session key wrapped with the
// service's RSA public key (OAEP, SHA-256), a GCM nonce, and the payload
// encrypted with AES-128-GCM. The response is encrypted with the same
// session key and the bitwise complement of the request nonce, then sent
// back as a single base64 string.
//
// The package also verifies the x-hub-signature-256 HMAC header over the raw
// request body and loads the long-lived RSA private key at startup.
//
// All state is function-local or read-only after construction, so a single
// [EnvelopeCodec] is safe for concurrent use across requests.
package crypto
