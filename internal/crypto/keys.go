package crypto

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	"golang.org/x/crypto/ssh"
)

// LoadPrivateKey reads and parses the PEM-encoded RSA private key at path.
// passphrase must be non-empty if and only if the key file is encrypted.
//
// The key is loaded exactly once at startup; a failure here must abort the
// service so that no request is ever handled with a partially-initialized
// key.
func LoadPrivateKey(path, passphrase string) (*rsa.PrivateKey, error) {
	pemBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read key file: %v", ErrPrivateKey, err)
	}

	return ParsePrivateKey(pemBytes, passphrase)
}

// ParsePrivateKey parses a PEM-encoded RSA private key.
//
// Unencrypted keys are accepted in PKCS#8 and PKCS#1 form. Encrypted keys
// are parsed through x/crypto/ssh, which handles the legacy DEK-Info PEM
// encryption the WhatsApp tooling produces.
func ParsePrivateKey(pemBytes []byte, passphrase string) (*rsa.PrivateKey, error) {
	if passphrase != "" {
		key, err := ssh.ParseRawPrivateKeyWithPassphrase(pemBytes, []byte(passphrase))
		if err != nil {
			return nil, fmt.Errorf("%w: decrypt key: %v", ErrPrivateKey, err)
		}

		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: key is not RSA", ErrPrivateKey)
		}
		return rsaKey, nil
	}

	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrPrivateKey)
	}

	// PKCS#8 first, PKCS#1 fallback
	if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: key is not RSA", ErrPrivateKey)
		}
		return rsaKey, nil
	}

	rsaKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: parse key: %v", ErrPrivateKey, err)
	}

	return rsaKey, nil
}
