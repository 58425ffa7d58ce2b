package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"commentboard/api/internal/config"
	"commentboard/api/internal/ids"
)

var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// TokenKind selects the signing secret and lifetime for a token. Access and
// reset tokens share the access secret; refresh tokens use their own. A kind
// claim inside the token keeps the shared-secret kinds from being swapped.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
	TokenKindReset   TokenKind = "reset"
)

type tokenClaims struct {
	UserID string    `json:"uid"`
	Kind   TokenKind `json:"tkn"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies the three token kinds. It is a pure
// function of its configuration and holds no mutable state.
type TokenService struct {
	cfg config.SecurityConfig
	now func() time.Time
}

func NewTokenService(cfg config.SecurityConfig) *TokenService {
	return &TokenService{cfg: cfg, now: time.Now}
}

func (s *TokenService) IssueAccess(userID string) (string, error) {
	return s.issue(userID, TokenKindAccess)
}

func (s *TokenService) IssueRefresh(userID string) (string, error) {
	return s.issue(userID, TokenKindRefresh)
}

func (s *TokenService) IssueReset(userID string) (string, error) {
	return s.issue(userID, TokenKindReset)
}

func (s *TokenService) issue(userID string, kind TokenKind) (string, error) {
	now := s.now()
	// The jti keeps every issued token unique: iat/exp have second
	// precision, so two same-second logins would otherwise mint identical
	// refresh tokens and collide in the session store.
	claims := tokenClaims{
		UserID: userID,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        ids.New(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl(kind))),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(s.secret(kind))
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signed, nil
}

// Verify checks signature and expiry together and returns the embedded user
// identity. A structurally valid token of the wrong kind fails verification.
func (s *TokenService) Verify(tokenStr string, kind TokenKind) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret(kind), nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid || claims.Kind != kind || claims.UserID == "" {
		return "", ErrTokenInvalid
	}
	return claims.UserID, nil
}

func (s *TokenService) secret(kind TokenKind) []byte {
	if kind == TokenKindRefresh {
		return []byte(s.cfg.JWTRefreshSecret)
	}
	return []byte(s.cfg.JWTAccessSecret)
}

func (s *TokenService) ttl(kind TokenKind) time.Duration {
	switch kind {
	case TokenKindRefresh:
		return s.cfg.JWTRefreshTTL
	case TokenKindReset:
		return s.cfg.ResetTokenTTL
	default:
		return s.cfg.JWTAccessTTL
	}
}

// RefreshTokenTTL exposes the configured refresh lifetime so callers can
// derive the matching session expiry.
func (s *TokenService) RefreshTokenTTL() time.Duration {
	return s.cfg.JWTRefreshTTL
}

// ResetTokenTTL exposes the configured reset-token lifetime.
func (s *TokenService) ResetTokenTTL() time.Duration {
	return s.cfg.ResetTokenTTL
}
