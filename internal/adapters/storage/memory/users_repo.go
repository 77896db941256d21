package memory

import (
	"context"

	"petify/internal/domain/users"
	"petify/internal/platform/apperr"
)

type userRepo struct {
	s *Store
}

func NewUserRepo(s *Store) users.Repository {
	return &userRepo{s: s}
}

func (r *userRepo) Create(ctx context.Context, u users.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.users[u.ID]; exists {
		return apperr.ErrConflict
	}
	for _, other := range r.s.users {
		if other.Email == u.Email {
			return apperr.ErrConflict
		}
	}
	r.s.users[u.ID] = u
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return users.User{}, apperr.ErrNotFound
	}
	return u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return users.User{}, apperr.ErrNotFound
}

func (r *userRepo) Update(ctx context.Context, u users.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[u.ID]; !ok {
		return apperr.ErrNotFound
	}
	for _, other := range r.s.users {
		if other.ID != u.ID && other.Email == u.Email {
			return apperr.ErrConflict
		}
	}
	r.s.users[u.ID] = u
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return apperr.ErrNotFound
	}
	for petID, p := range r.s.pets {
		if p.OwnerUserID == id {
			r.s.deletePetLocked(petID)
		}
	}
	delete(r.s.users, id)
	return nil
}

func (r *userRepo) Exists(ctx context.Context) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.users) > 0, nil
}
