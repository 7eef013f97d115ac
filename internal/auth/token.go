package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned whenever a token fails signature or encoding
// verification.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the subject identifier under the "userId" key. Tokens have no
// expiry: verification is purely a signature check with no store lookup, so a
// token stays valid until it structurally fails.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// Tokens signs and verifies HS256 session tokens.
type Tokens struct {
	secret []byte
}

// NewTokens builds a token service around a shared HMAC secret.
func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret)}
}

// Issue signs a session token for the given subject.
func (t *Tokens) Issue(subjectID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: subjectID})
	return token.SignedString(t.secret)
}

// Verify checks the token signature and returns the subject identifier.
func (t *Tokens) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
