package memory

import (
	"context"
	"time"

	"petify/internal/domain/healthrecords"
	"petify/internal/platform/apperr"
)

type recordRepo struct {
	s *Store
}

func NewHealthRecordRepo(s *Store) healthrecords.Repository {
	return &recordRepo{s: s}
}

func (r *recordRepo) Create(ctx context.Context, h healthrecords.HealthRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.pets[h.PetID]; !ok {
		return apperr.NotFound("Pet")
	}
	if _, exists := r.s.records[h.ID]; exists {
		return apperr.ErrConflict
	}
	r.s.records[h.ID] = h
	return nil
}

func (r *recordRepo) GetByID(ctx context.Context, id string) (healthrecords.HealthRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	h, ok := r.s.records[id]
	if !ok {
		return healthrecords.HealthRecord{}, apperr.ErrNotFound
	}
	return h, nil
}

func (r *recordRepo) ListByPet(ctx context.Context, petID string) ([]healthrecords.HealthRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]healthrecords.HealthRecord, 0)
	for _, h := range r.s.records {
		if h.PetID == petID {
			out = append(out, h)
		}
	}
	byCreated(out,
		func(h healthrecords.HealthRecord) time.Time { return h.CreatedAt },
		func(h healthrecords.HealthRecord) string { return h.ID },
	)
	return out, nil
}

func (r *recordRepo) Update(ctx context.Context, h healthrecords.HealthRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.records[h.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.s.records[h.ID] = h
	return nil
}

func (r *recordRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.records[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.s.records, id)
	return nil
}
