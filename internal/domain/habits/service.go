package habits

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"petify/internal/domain/pets"
	"petify/internal/platform/apperr"
	"petify/internal/platform/patch"
	"petify/internal/ports/storage"
)

type PetAuthorizer interface {
	AuthorizeOwned(ctx context.Context, petID, requesterID string) (pets.Pet, error)
	AuthorizeParent(ctx context.Context, petID, requesterID string) (pets.Pet, error)
}

type Service struct {
	repo Repository
	pets PetAuthorizer
	tx   storage.TxRunner
	now  func() time.Time
}

func NewService(repo Repository, petsAuth PetAuthorizer, tx storage.TxRunner) *Service {
	return &Service{
		repo: repo,
		pets: petsAuth,
		tx:   tx,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

type CreateInput struct {
	Title       string
	Description *string
}

type UpdateInput struct {
	Title       patch.Field[string]
	Description patch.Field[string]
}

func (s *Service) ListByPet(ctx context.Context, requesterID, petID string) ([]Habit, error) {
	p, err := s.pets.AuthorizeOwned(ctx, petID, requesterID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByPet(ctx, p.ID)
}

func (s *Service) Create(ctx context.Context, requesterID, petID string, in CreateInput) (Habit, error) {
	if strings.TrimSpace(in.Title) == "" {
		return Habit{}, apperr.Invalid("title", "is required")
	}

	var out Habit
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		p, err := s.pets.AuthorizeOwned(ctx, petID, requesterID)
		if err != nil {
			return err
		}
		h := Habit{
			ID:          uuid.NewString(),
			PetID:       p.ID,
			Title:       strings.TrimSpace(in.Title),
			Description: in.Description,
			CreatedAt:   s.now(),
		}
		if err := s.repo.Create(ctx, h); err != nil {
			return err
		}
		out = h
		return nil
	})
	return out, err
}

func (s *Service) Get(ctx context.Context, requesterID, id string) (Habit, error) {
	return s.load(ctx, requesterID, id)
}

func (s *Service) Update(ctx context.Context, requesterID, id string, in UpdateInput) (Habit, error) {
	if in.Title.Present && (in.Title.IsNull() || strings.TrimSpace(*in.Title.Value) == "") {
		return Habit{}, apperr.Invalid("title", "must be a non-empty string")
	}

	var out Habit
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		h, err := s.load(ctx, requesterID, id)
		if err != nil {
			return err
		}
		if in.Title.Present {
			h.Title = strings.TrimSpace(*in.Title.Value)
		}
		in.Description.Apply(&h.Description)

		if err := s.repo.Update(ctx, h); err != nil {
			return err
		}
		out = h
		return nil
	})
	return out, err
}

func (s *Service) Delete(ctx context.Context, requesterID, id string) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		h, err := s.load(ctx, requesterID, id)
		if err != nil {
			return err
		}
		return s.repo.Delete(ctx, h.ID)
	})
}

func (s *Service) load(ctx context.Context, requesterID, id string) (Habit, error) {
	h, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Habit{}, apperr.NotFound("Habit")
		}
		return Habit{}, err
	}
	if _, err := s.pets.AuthorizeParent(ctx, h.PetID, requesterID); err != nil {
		return Habit{}, err
	}
	return h, nil
}
