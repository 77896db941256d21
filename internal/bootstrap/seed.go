// Package bootstrap corre lo que pasa antes de servir: espera de la base,
// migraciones y datos demo.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"petify/internal/domain/clinics"
	"petify/internal/domain/events"
	"petify/internal/domain/habits"
	"petify/internal/domain/healthrecords"
	"petify/internal/domain/pets"
	"petify/internal/domain/preferences"
	"petify/internal/domain/users"
	"petify/internal/platform/apperr"
	"petify/internal/platform/logger"
	"petify/internal/ports/auth"
	"petify/internal/ports/storage"
)

const (
	DemoEmail    = "test@petify.dev"
	DemoPassword = "Test12345"

	sourceSeed = "seed"
)

// Repos agrupa lo que el seed necesita escribir.
type Repos struct {
	Users         users.Repository
	Pets          pets.Repository
	Preferences   preferences.Repository
	Habits        habits.Repository
	HealthRecords healthrecords.Repository
	Events        events.Repository
	Clinics       clinics.Repository
}

type Seeder struct {
	repos  Repos
	tx     storage.TxRunner
	hasher auth.PasswordHasher
	log    logger.Logger
	now    func() time.Time
}

func NewSeeder(repos Repos, tx storage.TxRunner, hasher auth.PasswordHasher, log logger.Logger) *Seeder {
	if log == nil {
		log = logger.Nop()
	}
	return &Seeder{
		repos:  repos,
		tx:     tx,
		hasher: hasher,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Seed carga los datos demo si no hay ningún usuario. Devuelve true si insertó.
// Todo va en una sola transacción: si algo falla no queda nada a medias.
// Si otra instancia sembró en paralelo, el insert del usuario demo choca con
// el email único y se toma como ya sembrado.
func (s *Seeder) Seed(ctx context.Context) (bool, error) {
	seeded := false
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		exists, err := s.repos.Users.Exists(ctx)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
		if err := s.insertDemo(ctx); err != nil {
			return err
		}
		seeded = true
		return nil
	})
	if errors.Is(err, apperr.ErrConflict) {
		exists, xerr := s.repos.Users.Exists(ctx)
		if xerr == nil && exists {
			s.log.Info("demo data seeded by another instance", nil)
			return false, nil
		}
	}
	if err != nil {
		return false, fmt.Errorf("seed demo data: %w", err)
	}

	if seeded {
		s.log.Info("demo data seeded", map[string]any{"email": DemoEmail})
	}
	return seeded, nil
}

func (s *Seeder) insertDemo(ctx context.Context) error {
	now := s.now()

	hash, err := s.hasher.Hash(DemoPassword)
	if err != nil {
		return err
	}
	user := users.User{
		ID:             uuid.NewString(),
		Email:          DemoEmail,
		HashedPassword: hash,
		IsActive:       true,
		IsVerified:     true,
		CreatedAt:      now,
	}
	if err := s.repos.Users.Create(ctx, user); err != nil {
		return err
	}

	cat := pets.Pet{
		ID:          uuid.NewString(),
		OwnerUserID: user.ID,
		Name:        "Барсик",
		Species:     "Кот",
		Breed:       ptr("Британец"),
		BirthDate:   ptr("2021-05-12"),
		Notes:       ptr("Любит спать на клавиатуре"),
		CreatedAt:   now,
	}
	dog := pets.Pet{
		ID:          uuid.NewString(),
		OwnerUserID: user.ID,
		Name:        "Рекс",
		Species:     "Собака",
		Breed:       ptr("Лабрадор"),
		BirthDate:   ptr("2020-03-01"),
		Notes:       ptr("Очень активный"),
		CreatedAt:   now,
	}
	for _, p := range []pets.Pet{cat, dog} {
		if err := s.repos.Pets.Create(ctx, p); err != nil {
			return err
		}
	}

	prefs := []preferences.Preference{
		{ID: uuid.NewString(), PetID: cat.ID, Likes: ptr("Рыба, коробки"), Dislikes: ptr("Пылесос")},
		{ID: uuid.NewString(), PetID: dog.ID, Likes: ptr("Мячи, прогулки"), Dislikes: ptr("Громкие звуки")},
	}
	for _, p := range prefs {
		if _, err := s.repos.Preferences.Upsert(ctx, p); err != nil {
			return err
		}
	}

	hs := []habits.Habit{
		{ID: uuid.NewString(), PetID: cat.ID, Title: "Спит днём", CreatedAt: now},
		{ID: uuid.NewString(), PetID: dog.ID, Title: "Просится гулять утром", CreatedAt: now},
	}
	for _, h := range hs {
		if err := s.repos.Habits.Create(ctx, h); err != nil {
			return err
		}
	}

	if err := s.repos.HealthRecords.Create(ctx, healthrecords.HealthRecord{
		ID:         uuid.NewString(),
		PetID:      cat.ID,
		RecordType: "vaccination",
		Title:      "Вакцинация",
		Details:    ptr("Комплексная вакцина"),
		CreatedAt:  now,
	}); err != nil {
		return err
	}

	evs := []events.Event{
		{
			ID:        uuid.NewString(),
			PetID:     cat.ID,
			Type:      events.TypeFeeding,
			Title:     "Кормление",
			StartAt:   now.Add(time.Hour).Format(time.RFC3339),
			Status:    events.StatusPlanned,
			CreatedAt: now,
		},
		{
			ID:        uuid.NewString(),
			PetID:     dog.ID,
			Type:      events.TypeWalk,
			Title:     "Прогулка",
			StartAt:   now.Add(2 * time.Hour).Format(time.RFC3339),
			Status:    events.StatusPlanned,
			CreatedAt: now,
		},
	}
	for _, e := range evs {
		if err := s.repos.Events.Create(ctx, e); err != nil {
			return err
		}
	}

	cs := []clinics.Clinic{
		{ID: uuid.NewString(), Name: "ВетМир", Address: ptr("ул. Ленина, 10"), Lat: ptr(53.1959), Lng: ptr(50.1002), Source: ptr(sourceSeed), CreatedAt: now},
		{ID: uuid.NewString(), Name: "Айболит", Address: ptr("пр. Кирова, 45"), Lat: ptr(53.2121), Lng: ptr(50.1803), Source: ptr(sourceSeed), CreatedAt: now},
	}
	for _, c := range cs {
		if err := s.repos.Clinics.Create(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func ptr[T any](v T) *T { return &v }
