package events

import "context"

type Repository interface {
	Create(ctx context.Context, e Event) error
	GetByID(ctx context.Context, id string) (Event, error)
	// ListByOwner devuelve los eventos de todas las mascotas del usuario.
	ListByOwner(ctx context.Context, ownerUserID string) ([]Event, error)
	Update(ctx context.Context, e Event) error
	Delete(ctx context.Context, id string) error
}
