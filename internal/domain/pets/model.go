package pets

import "time"

// Pet es la raíz de la cadena de ownership: todo hijo (preferencias,
// hábitos, historial, eventos) se autoriza contra OwnerUserID.
type Pet struct {
	ID          string
	OwnerUserID string

	Name    string
	Species string // кот, собака, dog, cat... texto libre
	Breed   *string

	// BirthDate se guarda tal cual lo manda el cliente (YYYY-MM-DD habitualmente).
	BirthDate *string
	Notes     *string

	CreatedAt time.Time
}
