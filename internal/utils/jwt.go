package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateFlowToken creates a signed HMAC-SHA256 flow token.
//
// The token is embedded in the flow when it is sent to a user and echoed
// back by the WhatsApp client in every data exchange, which lets the
// endpoint tie a webhook call to the conversation that started it.
//
// Claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the conversation/flow identifier
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// All parameters are required. Returns an error if any of them are empty or
// zero, or if signing fails.
func GenerateFlowToken(issuer, flowID string, tokenDuration time.Duration, signKey string) (string, error) {
	if issuer == "" || flowID == "" || tokenDuration == 0 || signKey == "" {
		return "", errors.New("invalid params for generating flow token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   flowID,
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing flow token: %w", err)
	}

	return tokenString, nil
}

// ValidateFlowToken verifies the given flow token string and extracts the
// conversation/flow identifier from its subject claim.
//
// Validation includes:
//   - Signature verification using the provided sign key (HS256 only)
//   - Issuer (iss) claim check against the provided issuer
//   - Expiration (exp) claim check
//   - Subject (sub) claim presence
//
// Returns the flow identifier or an error describing the first failed check.
func ValidateFlowToken(tokenString, issuer, signKey string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(signKey), nil
		},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("error parsing flow token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.New("flow token has no subject claim")
	}

	return claims.Subject, nil
}
