package memory

import (
	"context"
	"time"

	"petify/internal/domain/events"
	"petify/internal/platform/apperr"
)

type eventRepo struct {
	s *Store
}

func NewEventRepo(s *Store) events.Repository {
	return &eventRepo{s: s}
}

func (r *eventRepo) Create(ctx context.Context, e events.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.pets[e.PetID]; !ok {
		return apperr.NotFound("Pet")
	}
	if _, exists := r.s.events[e.ID]; exists {
		return apperr.ErrConflict
	}
	r.s.events[e.ID] = e
	return nil
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (events.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.events[id]
	if !ok {
		return events.Event{}, apperr.ErrNotFound
	}
	return e, nil
}

// ListByOwner hace el equivalente al JOIN events -> pets filtrando por dueño.
func (r *eventRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]events.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]events.Event, 0)
	for _, e := range r.s.events {
		if p, ok := r.s.pets[e.PetID]; ok && p.OwnerUserID == ownerUserID {
			out = append(out, e)
		}
	}
	byCreated(out,
		func(e events.Event) time.Time { return e.CreatedAt },
		func(e events.Event) string { return e.ID },
	)
	return out, nil
}

func (r *eventRepo) Update(ctx context.Context, e events.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.events[e.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.s.events[e.ID] = e
	return nil
}

func (r *eventRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.events[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.s.events, id)
	return nil
}
