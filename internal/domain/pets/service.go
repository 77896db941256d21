package pets

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"petify/internal/platform/apperr"
	"petify/internal/platform/patch"
	"petify/internal/ports/storage"
)

type Service struct {
	repo Repository
	tx   storage.TxRunner
	now  func() time.Time
}

func NewService(repo Repository, tx storage.TxRunner) *Service {
	return &Service{
		repo: repo,
		tx:   tx,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

type CreateInput struct {
	Name      string
	Species   string
	Breed     *string
	BirthDate *string
	Notes     *string
}

// UpdateInput: sólo se tocan los campos Present. Name/Species no admiten null.
type UpdateInput struct {
	Name      patch.Field[string]
	Species   patch.Field[string]
	Breed     patch.Field[string]
	BirthDate patch.Field[string]
	Notes     patch.Field[string]
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, apperr.ErrUnauthenticated
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, apperr.Invalid("name", "is required")
	}
	if strings.TrimSpace(in.Species) == "" {
		return Pet{}, apperr.Invalid("species", "is required")
	}

	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		Species:     strings.TrimSpace(in.Species),
		Breed:       in.Breed,
		BirthDate:   in.BirthDate,
		Notes:       in.Notes,
		CreatedAt:   s.now(),
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, p)
	})
	if err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, requesterID string) ([]Pet, error) {
	if strings.TrimSpace(requesterID) == "" {
		return nil, apperr.ErrUnauthenticated
	}
	return s.repo.ListByOwner(ctx, requesterID)
}

// Get: missing o ajeno => 404 "Pet not found".
func (s *Service) Get(ctx context.Context, requesterID, petID string) (Pet, error) {
	return s.AuthorizeOwned(ctx, petID, requesterID)
}

func (s *Service) Update(ctx context.Context, requesterID, petID string, in UpdateInput) (Pet, error) {
	if err := in.validate(); err != nil {
		return Pet{}, err
	}

	var out Pet
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		p, err := s.AuthorizeOwned(ctx, petID, requesterID)
		if err != nil {
			return err
		}

		if in.Name.Present {
			p.Name = strings.TrimSpace(*in.Name.Value)
		}
		if in.Species.Present {
			p.Species = strings.TrimSpace(*in.Species.Value)
		}
		in.Breed.Apply(&p.Breed)
		in.BirthDate.Apply(&p.BirthDate)
		in.Notes.Apply(&p.Notes)

		if err := s.repo.Update(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	return out, err
}

func (s *Service) Delete(ctx context.Context, requesterID, petID string) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		p, err := s.AuthorizeOwned(ctx, petID, requesterID)
		if err != nil {
			return err
		}
		return s.repo.Delete(ctx, p.ID)
	})
}

func (in UpdateInput) validate() error {
	fields := map[string]string{}
	if in.Name.Present && (in.Name.IsNull() || strings.TrimSpace(*in.Name.Value) == "") {
		fields["name"] = "must be a non-empty string"
	}
	if in.Species.Present && (in.Species.IsNull() || strings.TrimSpace(*in.Species.Value) == "") {
		fields["species"] = "must be a non-empty string"
	}
	if len(fields) > 0 {
		return &apperr.ValidationError{Fields: fields}
	}
	return nil
}
