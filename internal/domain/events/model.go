package events

import "time"

// Event es una entrada del calendario de una mascota.
// StartAt/EndAt se guardan como los manda el cliente (ISO 8601 habitualmente).
type Event struct {
	ID    string
	PetID string

	Type  string
	Title string

	StartAt  string
	EndAt    *string
	Location *string
	Notes    *string

	Status    Status
	CreatedAt time.Time
}
