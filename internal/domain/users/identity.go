package users

import (
	"context"

	"petify/internal/platform/apperr"
	"petify/internal/ports/auth"
)

// Identity resuelve un bearer token a un usuario activo. Envuelve al
// verificador de firma (jwt) y agrega el chequeo contra la base.
type Identity struct {
	tokens auth.AuthVerifier
	repo   Repository
}

func NewIdentity(tokens auth.AuthVerifier, repo Repository) *Identity {
	return &Identity{tokens: tokens, repo: repo}
}

func (i *Identity) Verify(ctx context.Context, token string) (auth.Claims, error) {
	claims, err := i.tokens.Verify(ctx, token)
	if err != nil {
		return auth.Claims{}, apperr.ErrUnauthenticated
	}

	u, err := i.repo.GetByID(ctx, claims.UserID)
	if err != nil || !u.IsActive {
		return auth.Claims{}, apperr.ErrUnauthenticated
	}
	return auth.Claims{UserID: u.ID, Email: u.Email}, nil
}
