package pets

import (
	"context"
	"errors"
	"strings"

	"petify/internal/platform/apperr"
)

// Decision es el resultado de la regla de ownership.
type Decision int

const (
	Allow Decision = iota
	Deny
	NotFound
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	default:
		return "not_found"
	}
}

// Lookup indica cómo se llegó a la mascota.
type Lookup int

const (
	// LookupOwnerScoped: el pet id vino del cliente (URL o payload).
	// Un pet ajeno se reporta como inexistente.
	LookupOwnerScoped Lookup = iota
	// LookupViaChild: se resolvió primero un hijo por id global y luego su pet.
	// Un pet ajeno se reporta como forbidden.
	LookupViaChild
)

// Authorize es la regla pura: no carga nada, no tiene side effects.
// pet == nil significa que no existe.
func Authorize(requesterID string, pet *Pet, lookup Lookup) Decision {
	if pet == nil {
		return NotFound
	}
	if pet.OwnerUserID != requesterID {
		if lookup == LookupViaChild {
			return Deny
		}
		return NotFound
	}
	return Allow
}

// AuthorizeOwned carga el pet por id y exige que sea del requester.
// Missing o ajeno => "Pet not found".
func (s *Service) AuthorizeOwned(ctx context.Context, petID, requesterID string) (Pet, error) {
	return s.authorize(ctx, petID, requesterID, LookupOwnerScoped)
}

// AuthorizeParent se usa después de cargar un hijo por su id: ajeno => forbidden.
func (s *Service) AuthorizeParent(ctx context.Context, petID, requesterID string) (Pet, error) {
	return s.authorize(ctx, petID, requesterID, LookupViaChild)
}

func (s *Service) authorize(ctx context.Context, petID, requesterID string, lookup Lookup) (Pet, error) {
	if strings.TrimSpace(requesterID) == "" {
		return Pet{}, apperr.ErrUnauthenticated
	}

	var found *Pet
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(petID))
	switch {
	case err == nil:
		found = &p
	case errors.Is(err, apperr.ErrNotFound):
		found = nil
	default:
		return Pet{}, err
	}

	switch Authorize(requesterID, found, lookup) {
	case Allow:
		return p, nil
	case Deny:
		return Pet{}, apperr.ErrForbidden
	default:
		return Pet{}, apperr.NotFound("Pet")
	}
}
