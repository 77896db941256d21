package jwt

import (
	"context"
	"errors"
	"strings"

	"petify/internal/ports/auth"
)

var (
	ErrTokenEmpty = errors.New("token is empty")
)

// Verifier implementa auth.AuthVerifier solo con la firma del token.
// La resolución a un usuario activo la hace users.Identity encima de esto.
type Verifier struct {
	manager *Manager
}

func NewVerifier(m *Manager) *Verifier {
	return &Verifier{manager: m}
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if v == nil || v.manager == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}
	return v.manager.Parse(token)
}
