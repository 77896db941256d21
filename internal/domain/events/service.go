package events

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

// PetAuthorizer es lo único que events necesita de pets.
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
	PetID    string
	Type     string
	Title    string
	StartAt  string
	EndAt    *string
	Location *string
	Notes    *string
}

type UpdateInput struct {
	Type     patch.Field[string]
	Title    patch.Field[string]
	StartAt  patch.Field[string]
	EndAt    patch.Field[string]
	Location patch.Field[string]
	Notes    patch.Field[string]
	Status   patch.Field[Status]
}

func (s *Service) List(ctx context.Context, requesterID string) ([]Event, error) {
	if strings.TrimSpace(requesterID) == "" {
		return nil, apperr.ErrUnauthenticated
	}
	return s.repo.ListByOwner(ctx, requesterID)
}

// Create: el pet_id viene en el payload => pet ajeno es "Pet not found".
func (s *Service) Create(ctx context.Context, requesterID string, in CreateInput) (Event, error) {
	if err := in.validate(); err != nil {
		return Event{}, err
	}

	var out Event
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		p, err := s.pets.AuthorizeOwned(ctx, in.PetID, requesterID)
		if err != nil {
			return err
		}

		e := Event{
			ID:        uuid.NewString(),
			PetID:     p.ID,
			Type:      strings.TrimSpace(in.Type),
			Title:     strings.TrimSpace(in.Title),
			StartAt:   strings.TrimSpace(in.StartAt),
			EndAt:     in.EndAt,
			Location:  in.Location,
			Notes:     in.Notes,
			Status:    StatusPlanned,
			CreatedAt: s.now(),
		}
		if err := s.repo.Create(ctx, e); err != nil {
			return err
		}
		out = e
		return nil
	})
	return out, err
}

func (s *Service) Get(ctx context.Context, requesterID, id string) (Event, error) {
	return s.load(ctx, requesterID, id)
}

func (s *Service) Update(ctx context.Context, requesterID, id string, in UpdateInput) (Event, error) {
	if err := in.validate(); err != nil {
		return Event{}, err
	}

	var out Event
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		e, err := s.load(ctx, requesterID, id)
		if err != nil {
			return err
		}

		if in.Type.Present {
			e.Type = strings.TrimSpace(*in.Type.Value)
		}
		if in.Title.Present {
			e.Title = strings.TrimSpace(*in.Title.Value)
		}
		if in.StartAt.Present {
			e.StartAt = strings.TrimSpace(*in.StartAt.Value)
		}
		if in.Status.Present {
			e.Status = *in.Status.Value
		}
		in.EndAt.Apply(&e.EndAt)
		in.Location.Apply(&e.Location)
		in.Notes.Apply(&e.Notes)

		if err := s.repo.Update(ctx, e); err != nil {
			return err
		}
		out = e
		return nil
	})
	return out, err
}

func (s *Service) Delete(ctx context.Context, requesterID, id string) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		e, err := s.load(ctx, requesterID, id)
		if err != nil {
			return err
		}
		return s.repo.Delete(ctx, e.ID)
	})
}

// Complete marca done sin mirar el estado actual (un cancelled también pasa a done).
func (s *Service) Complete(ctx context.Context, requesterID, id string) (Event, error) {
	var out Event
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		e, err := s.load(ctx, requesterID, id)
		if err != nil {
			return err
		}
		e.Status = StatusDone
		if err := s.repo.Update(ctx, e); err != nil {
			return err
		}
		out = e
		return nil
	})
	return out, err
}

// load resuelve el evento por id global y luego su pet: ajeno => forbidden.
func (s *Service) load(ctx context.Context, requesterID, id string) (Event, error) {
	e, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Event{}, apperr.NotFound("Event")
		}
		return Event{}, err
	}
	if _, err := s.pets.AuthorizeParent(ctx, e.PetID, requesterID); err != nil {
		return Event{}, err
	}
	return e, nil
}

func (in CreateInput) validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(in.PetID) == "" {
		fields["pet_id"] = "is required"
	}
	if strings.TrimSpace(in.Type) == "" {
		fields["type"] = "is required"
	}
	if strings.TrimSpace(in.Title) == "" {
		fields["title"] = "is required"
	}
	if strings.TrimSpace(in.StartAt) == "" {
		fields["start_at"] = "is required"
	}
	if len(fields) > 0 {
		return &apperr.ValidationError{Fields: fields}
	}
	return nil
}

func (in UpdateInput) validate() error {
	fields := map[string]string{}
	requireValue := func(name string, f patch.Field[string]) {
		if f.Present && (f.IsNull() || strings.TrimSpace(*f.Value) == "") {
			fields[name] = "must be a non-empty string"
		}
	}
	requireValue("type", in.Type)
	requireValue("title", in.Title)
	requireValue("start_at", in.StartAt)

	if in.Status.Present && (in.Status.IsNull() || !in.Status.Value.Valid()) {
		fields["status"] = "must be one of: planned done cancelled"
	}
	if len(fields) > 0 {
		return &apperr.ValidationError{Fields: fields}
	}
	return nil
}
