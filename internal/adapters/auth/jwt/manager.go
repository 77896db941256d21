package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"petify/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("jwt manager not configured")
	ErrInvalidToken  = errors.New("invalid token")
)

const defaultTTL = 7 * 24 * time.Hour

// Config del emisor de tokens.
// Secret normalmente viene de JWT_SECRET.
type Config struct {
	Secret   string
	Audience string
	TTL      time.Duration
}

type Manager struct {
	secret   []byte
	audience string
	ttl      time.Duration
	now      func() time.Time
}

type accessClaims struct {
	gojwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

func NewManager(cfg Config) *Manager {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Manager{
		secret:   []byte(strings.TrimSpace(cfg.Secret)),
		audience: strings.TrimSpace(cfg.Audience),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *Manager) IsConfigured() bool {
	return m != nil && len(m.secret) > 0
}

// Issue firma un HS256 con el user id como subject.
func (m *Manager) Issue(c auth.Claims) (auth.Token, error) {
	if !m.IsConfigured() {
		return auth.Token{}, ErrNotConfigured
	}
	if strings.TrimSpace(c.UserID) == "" {
		return auth.Token{}, errors.New("jwt: user id required")
	}

	now := m.now()
	exp := now.Add(m.ttl)
	claims := accessClaims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   c.UserID,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(exp),
		},
		Email: c.Email,
	}
	if m.audience != "" {
		claims.Audience = gojwt.ClaimStrings{m.audience}
	}

	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return auth.Token{}, fmt.Errorf("jwt: sign: %w", err)
	}
	return auth.Token{AccessToken: signed, ExpiresAt: exp}, nil
}

// Parse valida firma, expiración y audiencia y devuelve los claims.
func (m *Manager) Parse(token string) (auth.Claims, error) {
	if !m.IsConfigured() {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithTimeFunc(m.now),
		gojwt.WithExpirationRequired(),
	}
	if m.audience != "" {
		opts = append(opts, gojwt.WithAudience(m.audience))
	}

	var claims accessClaims
	parsed, err := gojwt.ParseWithClaims(token, &claims, func(*gojwt.Token) (any, error) {
		return m.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	sub := strings.TrimSpace(claims.Subject)
	if sub == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return auth.Claims{UserID: sub, Email: claims.Email}, nil
}
