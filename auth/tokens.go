// fightclub/auth/tokens.go
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers every verification failure: bad signature, wrong
// algorithm, expiry, malformed structure. Callers get no finer detail.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the verified identity carried by a token.
type Claims struct {
	UserID    int64
	Username  string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// TokenService issues and verifies HMAC-signed, time-limited identity tokens.
// It holds no per-session state; verification is a pure function of the token
// and the secret.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), now: time.Now}
}

// NewTokenServiceAt is like NewTokenService with an injectable clock.
func NewTokenServiceAt(secret string, now func() time.Time) *TokenService {
	return &TokenService{secret: []byte(secret), now: now}
}

// Issue signs a token for the given subject. Remember-me sessions differ only
// in TTL; the claims are otherwise identical.
func (ts *TokenService) Issue(userID int64, username string, ttl time.Duration) (string, error) {
	now := ts.now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Username: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ts.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning its claims or ErrInvalidToken.
func (ts *TokenService) Verify(tokenString string) (*Claims, error) {
	var parsed tokenClaims
	_, err := jwt.ParseWithClaims(tokenString, &parsed, func(token *jwt.Token) (any, error) {
		return ts.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(ts.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(parsed.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, ErrInvalidToken
	}
	if parsed.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	claims := &Claims{
		UserID:    userID,
		Username:  parsed.Username,
		TokenID:   parsed.ID,
		ExpiresAt: parsed.ExpiresAt.Time,
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time
	}
	return claims, nil
}
