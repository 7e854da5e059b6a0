package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the authenticated actor identity. The subject is the opaque
// actor id stamped onto uploaded_by/deleted_by.
type Claims struct {
	jwt.RegisteredClaims
}

// Manager validates and issues HMAC-signed bearer tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager returns a token manager, or nil when no secret is configured;
// a nil manager means all requests are treated as anonymous.
func NewManager(secret string, ttl time.Duration) *Manager {
	if secret == "" {
		return nil
	}
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue mints a token for the given actor id.
func (m *Manager) Issue(actorID string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actorID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Validate parses and verifies a token, returning its claims.
func (m *Manager) Validate(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
