// internal/app/system/auth/tokens.go
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKind selects which signing secret and lifetime a token uses.
type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

var (
	// ErrTokenExpired is returned when a token's signature checks out but it
	// is past its expiry. Callers surface this distinctly from ErrTokenInvalid.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned for malformed tokens, bad signatures, and
	// kind mismatches (a refresh token presented where an access token is
	// expected, or vice versa).
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims is the signed payload carried by access and refresh tokens.
type Claims struct {
	UserID string `json:"user_id"`
	Kind   string `json:"kind"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 tokens. Access and refresh tokens
// use separate secrets so a leaked refresh secret cannot mint access tokens.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenManager constructs a TokenManager with the given secrets and
// lifetimes.
func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (m *TokenManager) params(kind TokenKind) ([]byte, time.Duration) {
	if kind == RefreshToken {
		return m.refreshSecret, m.refreshTTL
	}
	return m.accessSecret, m.accessTTL
}

// Issue signs a token of the given kind for userID.
func (m *TokenManager) Issue(userID string, kind TokenKind) (string, error) {
	secret, ttl := m.params(kind)
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Kind:   string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// IssueAccess signs a short-lived access token for userID.
func (m *TokenManager) IssueAccess(userID string) (string, error) {
	return m.Issue(userID, AccessToken)
}

// IssueRefresh signs a long-lived refresh token for userID.
func (m *TokenManager) IssueRefresh(userID string) (string, error) {
	return m.Issue(userID, RefreshToken)
}

// Verify parses and validates a token of the given kind, returning the user
// id it carries. Expired tokens return ErrTokenExpired; everything else that
// fails returns ErrTokenInvalid.
func (m *TokenManager) Verify(token string, kind TokenKind) (string, error) {
	secret, _ := m.params(kind)
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if !parsed.Valid || claims.Kind != string(kind) || claims.UserID == "" {
		return "", ErrTokenInvalid
	}
	return claims.UserID, nil
}
