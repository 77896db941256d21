package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petify/internal/adapters/storage/memory"
	"petify/internal/domain/events"
	"petify/internal/domain/habits"
	"petify/internal/domain/pets"
	"petify/internal/domain/preferences"
	"petify/internal/domain/users"
	"petify/internal/platform/apperr"
)

func seedOwner(t *testing.T, s *memory.Store, id string) {
	t.Helper()
	require.NoError(t, memory.NewUserRepo(s).Create(context.Background(), users.User{
		ID: id, Email: id + "@petify.dev", IsActive: true, CreatedAt: time.Now(),
	}))
}

func TestDeletePet_Cascades(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedOwner(t, s, "u1")

	petRepo := memory.NewPetRepo(s)
	habitRepo := memory.NewHabitRepo(s)
	eventRepo := memory.NewEventRepo(s)
	prefRepo := memory.NewPreferenceRepo(s)

	require.NoError(t, petRepo.Create(ctx, pets.Pet{ID: "p1", OwnerUserID: "u1", Name: "Rex", Species: "dog"}))
	require.NoError(t, habitRepo.Create(ctx, habits.Habit{ID: "h1", PetID: "p1", Title: "walks"}))
	require.NoError(t, eventRepo.Create(ctx, events.Event{ID: "e1", PetID: "p1", Type: "walk", Title: "walk", StartAt: "x", Status: events.StatusPlanned}))
	_, err := prefRepo.Upsert(ctx, preferences.Preference{ID: "pr1", PetID: "p1"})
	require.NoError(t, err)

	require.NoError(t, petRepo.Delete(ctx, "p1"))

	_, err = habitRepo.GetByID(ctx, "h1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = eventRepo.GetByID(ctx, "e1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = prefRepo.GetByPet(ctx, "p1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteUser_CascadesToPets(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedOwner(t, s, "u1")
	petRepo := memory.NewPetRepo(s)
	require.NoError(t, petRepo.Create(ctx, pets.Pet{ID: "p1", OwnerUserID: "u1", Name: "Rex", Species: "dog"}))

	require.NoError(t, memory.NewUserRepo(s).Delete(ctx, "u1"))

	_, err := petRepo.GetByID(ctx, "p1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRunInTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedOwner(t, s, "u1")
	petRepo := memory.NewPetRepo(s)

	boom := errors.New("boom")
	err := s.RunInTx(ctx, func(ctx context.Context) error {
		require.NoError(t, petRepo.Create(ctx, pets.Pet{ID: "p1", OwnerUserID: "u1", Name: "Rex", Species: "dog"}))
		// anidada: se une a la externa
		return s.RunInTx(ctx, func(ctx context.Context) error { return boom })
	})
	require.ErrorIs(t, err, boom)

	_, err = petRepo.GetByID(ctx, "p1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPreferenceUpsert_KeepsSingleRow(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedOwner(t, s, "u1")
	require.NoError(t, memory.NewPetRepo(s).Create(ctx, pets.Pet{ID: "p1", OwnerUserID: "u1", Name: "Rex", Species: "dog"}))

	repo := memory.NewPreferenceRepo(s)
	likes := "balls"
	first, err := repo.Upsert(ctx, preferences.Preference{ID: "a", PetID: "p1", Likes: &likes})
	require.NoError(t, err)

	second, err := repo.Upsert(ctx, preferences.Preference{ID: "b", PetID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	got, err := repo.GetByPet(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)
	assert.Nil(t, got.Likes)
}
