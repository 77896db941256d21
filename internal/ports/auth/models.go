package auth

import "time"

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
}

// Token es un access token emitido para un usuario.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}
