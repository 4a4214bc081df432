package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token is malformed, tampered with or expired.
var ErrInvalidToken = errors.New("invalid or expired token")

const issuer = "dms-api"

// Signer issues and verifies identity tokens. It is a capability interface so
// the signing algorithm can be swapped without touching authorization logic.
type Signer interface {
	Sign(identity Identity) (string, error)
	Verify(token string) (Identity, error)
}

type claims struct {
	jwt.RegisteredClaims
	RoleID int `json:"roleId"`
}

// JWTSigner signs identities as HS256 JWTs.
type JWTSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTSigner builds a signer with the given secret and token lifetime.
func NewJWTSigner(secret string, ttl time.Duration) *JWTSigner {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTSigner{secret: []byte(secret), ttl: ttl}
}

// Sign produces a signed token embedding the identity's user id and role.
func (s *JWTSigner) Sign(identity Identity) (string, error) {
	if identity.UserID == "" {
		return "", errors.New("user id is required")
	}
	if !identity.Role.Valid() {
		return "", errors.New("invalid role")
	}

	now := time.Now().UTC()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		RoleID: int(identity.Role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(s.secret)
}

// Verify checks the token signature and expiry and returns the embedded identity.
func (s *JWTSigner) Verify(token string) (Identity, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}

	identity := Identity{UserID: c.Subject, Role: Role(c.RoleID)}
	if identity.UserID == "" || !identity.Role.Valid() {
		return Identity{}, ErrInvalidToken
	}
	return identity, nil
}

var _ Signer = (*JWTSigner)(nil)
