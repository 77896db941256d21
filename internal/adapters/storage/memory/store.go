package memory

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"petify/internal/domain/clinics"
	"petify/internal/domain/events"
	"petify/internal/domain/habits"
	"petify/internal/domain/healthrecords"
	"petify/internal/domain/pets"
	"petify/internal/domain/preferences"
	"petify/internal/domain/users"
)

// Store guarda todas las tablas en memoria detrás de un único lock, así los
// deletes en cascada y RunInTx ven un estado consistente.
// Sirve para modo dev (sin DATABASE_URL) y para tests.
type Store struct {
	mu sync.RWMutex

	// txMu serializa transacciones: una a la vez, igual que un rollback por snapshot.
	txMu sync.Mutex

	users   map[string]users.User
	pets    map[string]pets.Pet
	prefs   map[string]preferences.Preference
	habits  map[string]habits.Habit
	records map[string]healthrecords.HealthRecord
	events  map[string]events.Event
	clinics map[string]clinics.Clinic
}

func NewStore() *Store {
	return &Store{
		users:   make(map[string]users.User),
		pets:    make(map[string]pets.Pet),
		prefs:   make(map[string]preferences.Preference),
		habits:  make(map[string]habits.Habit),
		records: make(map[string]healthrecords.HealthRecord),
		events:  make(map[string]events.Event),
		clinics: make(map[string]clinics.Clinic),
	}
}

type txKey struct{}

type snapshot struct {
	users   map[string]users.User
	pets    map[string]pets.Pet
	prefs   map[string]preferences.Preference
	habits  map[string]habits.Habit
	records map[string]healthrecords.HealthRecord
	events  map[string]events.Event
	clinics map[string]clinics.Clinic
}

// RunInTx ejecuta fn y, si devuelve error, restaura el estado previo.
// Llamadas anidadas se unen a la transacción externa.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		users:   maps.Clone(s.users),
		pets:    maps.Clone(s.pets),
		prefs:   maps.Clone(s.prefs),
		habits:  maps.Clone(s.habits),
		records: maps.Clone(s.records),
		events:  maps.Clone(s.events),
		clinics: maps.Clone(s.clinics),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.pets = snap.pets
	s.prefs = snap.prefs
	s.habits = snap.habits
	s.records = snap.records
	s.events = snap.events
	s.clinics = snap.clinics
}

// deletePetLocked borra la mascota y sus hijos. Requiere s.mu tomado.
func (s *Store) deletePetLocked(petID string) {
	delete(s.pets, petID)
	for id, p := range s.prefs {
		if p.PetID == petID {
			delete(s.prefs, id)
		}
	}
	for id, h := range s.habits {
		if h.PetID == petID {
			delete(s.habits, id)
		}
	}
	for id, r := range s.records {
		if r.PetID == petID {
			delete(s.records, id)
		}
	}
	for id, e := range s.events {
		if e.PetID == petID {
			delete(s.events, id)
		}
	}
}

// byCreated ordena por created_at asc y desempata por id (orden estable en dev).
func byCreated[T any](items []T, created func(T) time.Time, id func(T) string) {
	sort.Slice(items, func(i, j int) bool {
		ci, cj := created(items[i]), created(items[j])
		if ci.Equal(cj) {
			return id(items[i]) < id(items[j])
		}
		return ci.Before(cj)
	})
}
