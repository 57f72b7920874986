// Package identity resolves the caller behind a request: verifying opaque
// ID tokens issued by the external identity provider and looking up stored
// user profiles.
package identity

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrNoSubject    = errors.New("token carries no subject")
	ErrNoSigningKey = errors.New("token verification is not configured")
)

// Verifier resolves an opaque ID token to a stable user identifier.
type Verifier interface {
	Verify(idToken string) (string, error)
}

// HMACVerifier validates HS256-signed tokens from the identity provider and
// extracts the subject claim as the user id.
type HMACVerifier struct {
	key []byte
}

func NewHMACVerifier(signingKey string) *HMACVerifier {
	return &HMACVerifier{key: []byte(signingKey)}
}

func (v *HMACVerifier) Verify(idToken string) (string, error) {
	if len(v.key) == 0 {
		return "", ErrNoSigningKey
	}

	token, err := jwt.Parse(idToken, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.key, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	subject, _ := claims["sub"].(string)
	if subject == "" {
		return "", ErrNoSubject
	}

	return subject, nil
}
