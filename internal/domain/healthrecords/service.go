package healthrecords

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
	RecordType string
	Title      string
	Details    *string
	RecordDate *string
}

type UpdateInput struct {
	RecordType patch.Field[string]
	Title      patch.Field[string]
	Details    patch.Field[string]
	RecordDate patch.Field[string]
}

func (s *Service) ListByPet(ctx context.Context, requesterID, petID string) ([]HealthRecord, error) {
	p, err := s.pets.AuthorizeOwned(ctx, petID, requesterID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByPet(ctx, p.ID)
}

func (s *Service) Create(ctx context.Context, requesterID, petID string, in CreateInput) (HealthRecord, error) {
	fields := map[string]string{}
	if strings.TrimSpace(in.RecordType) == "" {
		fields["record_type"] = "is required"
	}
	if strings.TrimSpace(in.Title) == "" {
		fields["title"] = "is required"
	}
	if len(fields) > 0 {
		return HealthRecord{}, &apperr.ValidationError{Fields: fields}
	}

	var out HealthRecord
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		p, err := s.pets.AuthorizeOwned(ctx, petID, requesterID)
		if err != nil {
			return err
		}
		h := HealthRecord{
			ID:         uuid.NewString(),
			PetID:      p.ID,
			RecordType: strings.TrimSpace(in.RecordType),
			Title:      strings.TrimSpace(in.Title),
			Details:    in.Details,
			RecordDate: in.RecordDate,
			CreatedAt:  s.now(),
		}
		if err := s.repo.Create(ctx, h); err != nil {
			return err
		}
		out = h
		return nil
	})
	return out, err
}

func (s *Service) Get(ctx context.Context, requesterID, id string) (HealthRecord, error) {
	return s.load(ctx, requesterID, id)
}

func (s *Service) Update(ctx context.Context, requesterID, id string, in UpdateInput) (HealthRecord, error) {
	fields := map[string]string{}
	if in.RecordType.Present && (in.RecordType.IsNull() || strings.TrimSpace(*in.RecordType.Value) == "") {
		fields["record_type"] = "must be a non-empty string"
	}
	if in.Title.Present && (in.Title.IsNull() || strings.TrimSpace(*in.Title.Value) == "") {
		fields["title"] = "must be a non-empty string"
	}
	if len(fields) > 0 {
		return HealthRecord{}, &apperr.ValidationError{Fields: fields}
	}

	var out HealthRecord
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		h, err := s.load(ctx, requesterID, id)
		if err != nil {
			return err
		}
		if in.RecordType.Present {
			h.RecordType = strings.TrimSpace(*in.RecordType.Value)
		}
		if in.Title.Present {
			h.Title = strings.TrimSpace(*in.Title.Value)
		}
		in.Details.Apply(&h.Details)
		in.RecordDate.Apply(&h.RecordDate)

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

func (s *Service) load(ctx context.Context, requesterID, id string) (HealthRecord, error) {
	h, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return HealthRecord{}, apperr.NotFound("Record")
		}
		return HealthRecord{}, err
	}
	if _, err := s.pets.AuthorizeParent(ctx, h.PetID, requesterID); err != nil {
		return HealthRecord{}, err
	}
	return h, nil
}
