package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"curator/internal/domain"
	dErrors "curator/pkg/domain-errors"
)

// TokenManager issues and parses the bearer tokens used by the HTTP facade.
// Tokens carry the identity the services need for authorization and audit
// attribution; they hold no other session state.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

type claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs a token for the identity, valid for the configured TTL.
func (m *TokenManager) Issue(identity domain.Identity, now time.Time) (string, error) {
	c := claims{
		Username: identity.Username,
		Role:     string(identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(identity.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse validates a token and recovers the identity it carries.
func (m *TokenManager) Parse(tokenString string) (domain.Identity, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return domain.Identity{}, dErrors.New(dErrors.CodePermissionDenied, "invalid or expired token")
	}
	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return domain.Identity{}, dErrors.New(dErrors.CodePermissionDenied, "malformed token subject")
	}
	return domain.Identity{
		UserID:   userID,
		Username: c.Username,
		Role:     domain.Role(c.Role),
	}, nil
}
