package auth

import "context"

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer firma tokens para un usuario ya autenticado.
type TokenIssuer interface {
	Issue(claims Claims) (Token, error)
}

// PasswordHasher abstrae el hash de credenciales (bcrypt en prod).
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}
