package users

import "context"

type Repository interface {
	// Create devuelve apperr.ErrConflict si el email ya existe.
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Update(ctx context.Context, u User) error
	// Delete borra el usuario y en cascada sus mascotas.
	Delete(ctx context.Context, id string) error
	// Exists indica si hay al menos un usuario (guard del seed).
	Exists(ctx context.Context) (bool, error)
}
