package preferences

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"petify/internal/domain/pets"
	"petify/internal/platform/apperr"
	"petify/internal/platform/patch"
	"petify/internal/ports/storage"
)

type PetAuthorizer interface {
	AuthorizeOwned(ctx context.Context, petID, requesterID string) (pets.Pet, error)
}

type Service struct {
	repo Repository
	pets PetAuthorizer
	tx   storage.TxRunner
}

func NewService(repo Repository, petsAuth PetAuthorizer, tx storage.TxRunner) *Service {
	return &Service{repo: repo, pets: petsAuth, tx: tx}
}

// UpdateInput: campos ausentes conservan el valor guardado.
type UpdateInput struct {
	Likes     patch.Field[string]
	Dislikes  patch.Field[string]
	FoodNotes patch.Field[string]
}

// Get distingue "Pet not found" (missing o ajeno) de "Preferences not found" (sin fila todavía).
func (s *Service) Get(ctx context.Context, requesterID, petID string) (Preference, error) {
	p, err := s.pets.AuthorizeOwned(ctx, petID, requesterID)
	if err != nil {
		return Preference{}, err
	}

	pref, err := s.repo.GetByPet(ctx, p.ID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Preference{}, apperr.NotFound("Preferences")
		}
		return Preference{}, err
	}
	return pref, nil
}

// Upsert crea la fila si no existe; nunca deja dos filas para el mismo pet.
func (s *Service) Upsert(ctx context.Context, requesterID, petID string, in UpdateInput) (Preference, error) {
	var out Preference
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		p, err := s.pets.AuthorizeOwned(ctx, petID, requesterID)
		if err != nil {
			return err
		}

		pref, err := s.repo.GetByPet(ctx, p.ID)
		switch {
		case err == nil:
		case errors.Is(err, apperr.ErrNotFound):
			pref = Preference{ID: uuid.NewString(), PetID: p.ID}
		default:
			return err
		}

		in.Likes.Apply(&pref.Likes)
		in.Dislikes.Apply(&pref.Dislikes)
		in.FoodNotes.Apply(&pref.FoodNotes)

		saved, err := s.repo.Upsert(ctx, pref)
		if err != nil {
			return err
		}
		out = saved
		return nil
	})
	return out, err
}
