package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"petify/internal/adapters/storage/postgres"
	"petify/internal/domain/clinics"
	"petify/internal/domain/events"
	"petify/internal/domain/habits"
	"petify/internal/domain/pets"
	"petify/internal/domain/preferences"
	"petify/internal/domain/users"
	"petify/internal/platform/apperr"
)

var (
	once      sync.Once
	sharedDSN string
	initErr   error
)

// setupDB levanta un Postgres (una vez por corrida) y aplica migraciones.
// Requiere Docker; se habilita con PETIFY_PG_TESTS=1.
func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	if os.Getenv("PETIFY_PG_TESTS") != "1" {
		t.Skip("set PETIFY_PG_TESTS=1 to run postgres tests")
	}

	once.Do(func() {
		sharedDSN, initErr = startContainer()
	})
	require.NoError(t, initErr)

	db, err := postgres.Open(postgres.Options{DSN: sharedDSN, MaxOpenConns: 5})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, postgres.Migrate(context.Background(), db))
	return db
}

func startContainer() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "petify",
				"POSTGRES_PASSWORD": "petify",
				"POSTGRES_DB":       "petify_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("mapped port: %w", err)
	}
	return fmt.Sprintf("postgres://petify:petify@%s:%s/petify_test?sslmode=disable", host, port.Port()), nil
}

func ptr[T any](v T) *T { return &v }

func newUser(t *testing.T, db *sql.DB) users.User {
	t.Helper()
	u := users.User{
		ID:             uuid.NewString(),
		Email:          uuid.NewString() + "@petify.dev",
		HashedPassword: "x",
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, postgres.NewUsersRepo(db).Create(context.Background(), u))
	return u
}

func newPet(t *testing.T, db *sql.DB, owner string) pets.Pet {
	t.Helper()
	p := pets.Pet{
		ID:          uuid.NewString(),
		OwnerUserID: owner,
		Name:        "Барсик",
		Species:     "Кот",
		Breed:       ptr("Британец"),
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, postgres.NewPetsRepo(db).Create(context.Background(), p))
	return p
}

func TestUsersRepo_EmailUniqueCaseInsensitive(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := postgres.NewUsersRepo(db)

	u := newUser(t, db)

	err := repo.Create(ctx, users.User{ID: uuid.NewString(), Email: strings.ToUpper(u.Email), HashedPassword: "y", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	got, err := repo.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	exists, err := repo.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPetsRepo_CRUDAndCascade(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	petsRepo := postgres.NewPetsRepo(db)
	habitsRepo := postgres.NewHabitsRepo(db)
	eventsRepo := postgres.NewEventsRepo(db)
	prefsRepo := postgres.NewPreferencesRepo(db)

	u := newUser(t, db)
	p := newPet(t, db, u.ID)

	p.Notes = ptr("Любит спать на клавиатуре")
	p.Breed = nil
	require.NoError(t, petsRepo.Update(ctx, p))

	got, err := petsRepo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Breed)
	assert.Equal(t, "Любит спать на клавиатуре", *got.Notes)

	list, err := petsRepo.ListByOwner(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	h := habits.Habit{ID: uuid.NewString(), PetID: p.ID, Title: "Спит днём", CreatedAt: time.Now().UTC()}
	require.NoError(t, habitsRepo.Create(ctx, h))
	e := events.Event{ID: uuid.NewString(), PetID: p.ID, Type: "feeding", Title: "Кормление", StartAt: "2025-01-01T10:00:00", Status: events.StatusPlanned, CreatedAt: time.Now().UTC()}
	require.NoError(t, eventsRepo.Create(ctx, e))
	_, err = prefsRepo.Upsert(ctx, preferences.Preference{ID: uuid.NewString(), PetID: p.ID, Likes: ptr("Рыба")})
	require.NoError(t, err)

	byOwner, err := eventsRepo.ListByOwner(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, byOwner, 1)
	assert.Equal(t, events.StatusPlanned, byOwner[0].Status)

	require.NoError(t, petsRepo.Delete(ctx, p.ID))

	_, err = habitsRepo.GetByID(ctx, h.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = eventsRepo.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = prefsRepo.GetByPet(ctx, p.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.ErrorIs(t, petsRepo.Delete(ctx, p.ID), apperr.ErrNotFound)
}

func TestPreferencesRepo_UpsertKeepsRow(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := postgres.NewPreferencesRepo(db)

	p := newPet(t, db, newUser(t, db).ID)

	first, err := repo.Upsert(ctx, preferences.Preference{ID: uuid.NewString(), PetID: p.ID, Likes: ptr("Мячи")})
	require.NoError(t, err)

	second, err := repo.Upsert(ctx, preferences.Preference{ID: uuid.NewString(), PetID: p.ID, Dislikes: ptr("Громкие звуки")})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Nil(t, second.Likes)
	assert.Equal(t, "Громкие звуки", *second.Dislikes)
}

func TestChildCreate_UnknownPetIsNotFound(t *testing.T) {
	db := setupDB(t)
	err := postgres.NewHabitsRepo(db).Create(context.Background(), habits.Habit{
		ID: uuid.NewString(), PetID: uuid.NewString(), Title: "x", CreatedAt: time.Now(),
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestTxManager_Rollback(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	tx := postgres.NewTxManager(db)
	petsRepo := postgres.NewPetsRepo(db)

	u := newUser(t, db)
	id := uuid.NewString()

	err := tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := petsRepo.Create(ctx, pets.Pet{ID: id, OwnerUserID: u.ID, Name: "Рекс", Species: "Собака", CreatedAt: time.Now()}); err != nil {
			return err
		}
		return fmt.Errorf("abort")
	})
	require.Error(t, err)

	_, err = petsRepo.GetByID(ctx, id)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestClinicsRepo_ExistsByNameAddress(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := postgres.NewClinicsRepo(db)

	name := "ВетМир " + uuid.NewString()
	require.NoError(t, repo.Create(ctx, clinics.Clinic{
		ID: uuid.NewString(), Name: name, Address: ptr("ул. Ленина, 10"),
		Lat: ptr(53.1959), Lng: ptr(50.1002), Source: ptr("seed"), CreatedAt: time.Now().UTC(),
	}))

	ok, err := repo.ExistsByNameAddress(ctx, name, ptr("ул. Ленина, 10"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ExistsByNameAddress(ctx, name, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, list)
}
