package events

type Status string

const (
	StatusPlanned   Status = "planned"
	StatusDone      Status = "done"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPlanned, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// Tipos que usa el frontend. El campo es texto libre, no se valida contra esta lista.
const (
	TypeFeeding  = "feeding"
	TypeWalk     = "walk"
	TypeVetVisit = "vet_visit"
)
