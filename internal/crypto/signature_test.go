package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/flowsuite/flow-endpoint/internal/logger"
)

func signBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

func newSignatureCodec(t *testing.T, secret string) EnvelopeCodec {
	t.Helper()

	codec, err := NewEnvelopeCodec(testKey, secret, logger.Nop())
	if err != nil {
		t.Fatalf("NewEnvelopeCodec error: %v", err)
	}
	return codec
}

func TestVerifySignature_ValidSignature(t *testing.T) {
	codec := newSignatureCodec(t, "shared-secret")
	body := []byte(`{"encrypted_aes_key":"...","encrypted_flow_data":"...","initial_vector":"..."}`)

	if err := codec.VerifySignature(body, signBody(body, "shared-secret")); err != nil {
		t.Fatalf("VerifySignature error: %v", err)
	}
}

// TestVerifySignature_SignedOverDifferentBytes covers the subtle failure
// mode where the signature is valid for a slightly different body, e.g. one
// with trailing whitespace stripped by an intermediary.
func TestVerifySignature_SignedOverDifferentBytes(t *testing.T) {
	codec := newSignatureCodec(t, "shared-secret")
	body := []byte(`{"action":"ping"}`)
	signed := signBody(append(body, '\n'), "shared-secret")

	if err := codec.VerifySignature(body, signed); !errors.Is(err, ErrSignature) {
		t.Fatalf("err = %v, want ErrSignature", err)
	}
}

func TestVerifySignature_RejectsBadHeaders(t *testing.T) {
	codec := newSignatureCodec(t, "shared-secret")
	body := []byte(`{"action":"ping"}`)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"missing scheme prefix", hex.EncodeToString(make([]byte, 32))},
		{"not hex", "sha256=zzzz"},
		{"wrong secret", signBody(body, "other-secret")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := codec.VerifySignature(body, tt.header); !errors.Is(err, ErrSignature) {
				t.Fatalf("err = %v, want ErrSignature", err)
			}
		})
	}
}

// TestVerifySignature_Idempotent verifies the check is a pure function of
// (body, signature, secret).
func TestVerifySignature_Idempotent(t *testing.T) {
	codec := newSignatureCodec(t, "shared-secret")
	body := []byte(`{"action":"ping"}`)
	header := signBody(body, "shared-secret")

	for i := 0; i < 5; i++ {
		if err := codec.VerifySignature(body, header); err != nil {
			t.Fatalf("iteration %d: VerifySignature error: %v", i, err)
		}
	}

	bad := signBody(body, "other-secret")
	for i := 0; i < 5; i++ {
		if err := codec.VerifySignature(body, bad); !errors.Is(err, ErrSignature) {
			t.Fatalf("iteration %d: err = %v, want ErrSignature", i, err)
		}
	}
}

// TestVerifySignature_NoSecretSkipsCheck documents the configured opt-out:
// with no app secret the check passes with a logged warning. It never passes
// silently when a secret is configured but the header is absent.
func TestVerifySignature_NoSecretSkipsCheck(t *testing.T) {
	codec := newSignatureCodec(t, "")

	if err := codec.VerifySignature([]byte(`{"action":"ping"}`), ""); err != nil {
		t.Fatalf("VerifySignature error: %v", err)
	}
}
