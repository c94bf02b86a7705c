package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/flowsuite/flow-endpoint/internal/logger"
	"github.com/flowsuite/flow-endpoint/models"
)

const (
	// aesKeySize is the session key length mandated by the protocol (AES-128).
	aesKeySize = 16

	// gcmTagSize is the length of the GCM authentication tag that trails
	// the ciphertext on both request and response.
	gcmTagSize = 16
)

// envelopeCodec is the private implementation of [EnvelopeCodec].
type envelopeCodec struct {
	// privateKey is the long-lived RSA key whose public half is
	// registered with the WhatsApp platform. Loaded once at startup and
	// read-only afterwards.
	privateKey *rsa.PrivateKey

	// appSecret is the shared secret for x-hub-signature-256
	// verification. Empty means verification is skipped (with a warning).
	appSecret string

	logger *logger.Logger
}

// NewEnvelopeCodec constructs an [EnvelopeCodec] from immutable key material.
// privateKey must be non-nil; use [LoadPrivateKey] to obtain it at startup.
//
// The returned codec is safe for concurrent use; all per-request state is
// function-local.
func NewEnvelopeCodec(privateKey *rsa.PrivateKey, appSecret string, logger *logger.Logger) (EnvelopeCodec, error) {
	if privateKey == nil {
		return nil, fmt.Errorf("%w: nil private key", ErrPrivateKey)
	}

	if appSecret == "" {
		logger.Warn().Msg("no app secret configured, webhook signature verification is disabled")
	}

	return &envelopeCodec{
		privateKey: privateKey,
		appSecret:  appSecret,
		logger:     logger,
	}, nil
}

// Decrypt implements [EnvelopeCodec].
//
// The payload buffer carries the 16-byte GCM authentication tag as its last
// 16 bytes regardless of payload size; gcm.Open consumes the concatenated
// ciphertext||tag directly, so the tag split is implicit. An undersized
// buffer is rejected before the cipher ever sees it.
func (c *envelopeCodec) Decrypt(envelope models.EncryptedEnvelope) (Decrypted, error) {
	wrappedKey, err := base64.StdEncoding.DecodeString(envelope.EncryptedAESKey)
	if err != nil {
		return Decrypted{}, fmt.Errorf("%w: decode encrypted_aes_key: %v", ErrDecryption, err)
	}

	iv, err := base64.StdEncoding.DecodeString(envelope.InitialVector)
	if err != nil {
		return Decrypted{}, fmt.Errorf("%w: decode initial_vector: %v", ErrDecryption, err)
	}
	if len(iv) == 0 {
		return Decrypted{}, fmt.Errorf("%w: empty initial_vector", ErrDecryption)
	}

	flowData, err := base64.StdEncoding.DecodeString(envelope.EncryptedFlowData)
	if err != nil {
		return Decrypted{}, fmt.Errorf("%w: decode encrypted_flow_data: %v", ErrDecryption, err)
	}
	if len(flowData) <= gcmTagSize {
		return Decrypted{}, fmt.Errorf("%w: encrypted_flow_data shorter than the auth tag", ErrDecryption)
	}

	aesKey, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, c.privateKey, wrappedKey, nil)
	if err != nil {
		return Decrypted{}, fmt.Errorf("%w: unwrap session key: %v", ErrDecryption, err)
	}
	if len(aesKey) != aesKeySize {
		return Decrypted{}, fmt.Errorf("%w: unwrapped session key is %d bytes, want %d", ErrDecryption, len(aesKey), aesKeySize)
	}

	gcm, err := newGCM(aesKey, len(iv))
	if err != nil {
		return Decrypted{}, fmt.Errorf("%w: %v", ErrDecryption, err)
	}

	plaintext, err := gcm.Open(nil, iv, flowData, nil)
	if err != nil {
		// auth tag mismatch or corrupted ciphertext; reject, never retry
		return Decrypted{}, fmt.Errorf("%w: open payload: %v", ErrDecryption, err)
	}

	if !json.Valid(plaintext) {
		return Decrypted{}, fmt.Errorf("%w: decrypted payload is not valid JSON", ErrDecryption)
	}

	return Decrypted{
		Plaintext: plaintext,
		AESKey:    aesKey,
		IV:        iv,
	}, nil
}

// Encrypt implements [EnvelopeCodec].
func (c *envelopeCodec) Encrypt(response any, aesKey, requestIV []byte) (string, error) {
	plaintext, err := json.Marshal(response)
	if err != nil {
		return "", fmt.Errorf("%w: marshal response: %v", ErrEncryption, err)
	}

	gcm, err := newGCM(aesKey, len(requestIV))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncryption, err)
	}

	// Seal appends the 16-byte auth tag to the ciphertext.
	sealed := gcm.Seal(nil, flipIV(requestIV), plaintext, nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// newGCM builds an AES-GCM cipher with a nonce size matching the request IV,
// so the codec stays wire-compatible whether the platform sends the
// 12-byte GCM standard nonce or a 16-byte one.
func newGCM(aesKey []byte, nonceSize int) (cipher.AEAD, error) {
	block, err := aes.NewCipher(aesKey)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}

// flipIV returns the bitwise complement of the request IV.
//
// The WhatsApp Flows wire format requires the response nonce to be the
// bit-complement of the request nonce, not a fresh random one. This is a
// fixed compatibility contract with the client; replacing it with a random
// nonce breaks client-side decryption.
func flipIV(iv []byte) []byte {
	flipped := make([]byte, len(iv))
	for i, b := range iv {
		flipped[i] = ^b
	}
	return flipped
}
