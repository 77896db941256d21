package memory

import (
	"context"
	"time"

	"petify/internal/domain/clinics"
	"petify/internal/platform/apperr"
)

type clinicRepo struct {
	s *Store
}

func NewClinicRepo(s *Store) clinics.Repository {
	return &clinicRepo{s: s}
}

func (r *clinicRepo) List(ctx context.Context) ([]clinics.Clinic, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]clinics.Clinic, 0, len(r.s.clinics))
	for _, c := range r.s.clinics {
		out = append(out, c)
	}
	byCreated(out,
		func(c clinics.Clinic) time.Time { return c.CreatedAt },
		func(c clinics.Clinic) string { return c.ID },
	)
	return out, nil
}

func (r *clinicRepo) GetByID(ctx context.Context, id string) (clinics.Clinic, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.clinics[id]
	if !ok {
		return clinics.Clinic{}, apperr.ErrNotFound
	}
	return c, nil
}

func (r *clinicRepo) Create(ctx context.Context, c clinics.Clinic) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.clinics[c.ID]; exists {
		return apperr.ErrConflict
	}
	r.s.clinics[c.ID] = c
	return nil
}

func (r *clinicRepo) ExistsByNameAddress(ctx context.Context, name string, address *string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.clinics {
		if c.Name == name && sameAddress(c.Address, address) {
			return true, nil
		}
	}
	return false, nil
}

func sameAddress(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
