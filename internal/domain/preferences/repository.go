package preferences

import "context"

type Repository interface {
	GetByPet(ctx context.Context, petID string) (Preference, error)
	// Upsert inserta o actualiza por pet_id y devuelve la fila guardada
	// (con el id existente si ya había una).
	Upsert(ctx context.Context, p Preference) (Preference, error)
}
