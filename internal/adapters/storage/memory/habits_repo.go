package memory

import (
	"context"
	"time"

	"petify/internal/domain/habits"
	"petify/internal/platform/apperr"
)

type habitRepo struct {
	s *Store
}

func NewHabitRepo(s *Store) habits.Repository {
	return &habitRepo{s: s}
}

func (r *habitRepo) Create(ctx context.Context, h habits.Habit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.pets[h.PetID]; !ok {
		return apperr.NotFound("Pet")
	}
	if _, exists := r.s.habits[h.ID]; exists {
		return apperr.ErrConflict
	}
	r.s.habits[h.ID] = h
	return nil
}

func (r *habitRepo) GetByID(ctx context.Context, id string) (habits.Habit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	h, ok := r.s.habits[id]
	if !ok {
		return habits.Habit{}, apperr.ErrNotFound
	}
	return h, nil
}

func (r *habitRepo) ListByPet(ctx context.Context, petID string) ([]habits.Habit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]habits.Habit, 0)
	for _, h := range r.s.habits {
		if h.PetID == petID {
			out = append(out, h)
		}
	}
	byCreated(out,
		func(h habits.Habit) time.Time { return h.CreatedAt },
		func(h habits.Habit) string { return h.ID },
	)
	return out, nil
}

func (r *habitRepo) Update(ctx context.Context, h habits.Habit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.habits[h.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.s.habits[h.ID] = h
	return nil
}

func (r *habitRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.habits[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.s.habits, id)
	return nil
}
