package memory

import (
	"context"

	"petify/internal/domain/preferences"
	"petify/internal/platform/apperr"
)

type preferenceRepo struct {
	s *Store
}

func NewPreferenceRepo(s *Store) preferences.Repository {
	return &preferenceRepo{s: s}
}

func (r *preferenceRepo) GetByPet(ctx context.Context, petID string) (preferences.Preference, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.prefs {
		if p.PetID == petID {
			return p, nil
		}
	}
	return preferences.Preference{}, apperr.ErrNotFound
}

// Upsert respeta la unicidad de pet_id: si ya hay fila, conserva su id.
func (r *preferenceRepo) Upsert(ctx context.Context, p preferences.Preference) (preferences.Preference, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.pets[p.PetID]; !ok {
		return preferences.Preference{}, apperr.NotFound("Pet")
	}
	for id, existing := range r.s.prefs {
		if existing.PetID == p.PetID {
			p.ID = id
			break
		}
	}
	r.s.prefs[p.ID] = p
	return p, nil
}
