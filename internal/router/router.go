package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "petify/docs"
	mem "petify/internal/adapters/storage/memory"
	pg "petify/internal/adapters/storage/postgres"
	"petify/internal/bootstrap"
	"petify/internal/domain/clinics"
	"petify/internal/domain/events"
	"petify/internal/domain/habits"
	"petify/internal/domain/healthrecords"
	"petify/internal/domain/pets"
	"petify/internal/domain/preferences"
	"petify/internal/domain/users"
	"petify/internal/middleware"
	"petify/internal/platform/httpx"
	"petify/internal/platform/logger"
	"petify/internal/ports/auth"
	"petify/internal/ports/storage"
)

// Storage es el backend elegido en main: repos + la tx que comparten.
type Storage struct {
	Repos bootstrap.Repos
	Tx    storage.TxRunner
}

// MemoryStorage arma todos los repos sobre un único store in-memory (modo dev / tests).
func MemoryStorage() Storage {
	s := mem.NewStore()
	return Storage{
		Repos: bootstrap.Repos{
			Users:         mem.NewUserRepo(s),
			Pets:          mem.NewPetRepo(s),
			Preferences:   mem.NewPreferenceRepo(s),
			Habits:        mem.NewHabitRepo(s),
			HealthRecords: mem.NewHealthRecordRepo(s),
			Events:        mem.NewEventRepo(s),
			Clinics:       mem.NewClinicRepo(s),
		},
		Tx: s,
	}
}

func PostgresStorage(db *sql.DB) Storage {
	return Storage{
		Repos: bootstrap.Repos{
			Users:         pg.NewUsersRepo(db),
			Pets:          pg.NewPetsRepo(db),
			Preferences:   pg.NewPreferencesRepo(db),
			Habits:        pg.NewHabitsRepo(db),
			HealthRecords: pg.NewHealthRecordsRepo(db),
			Events:        pg.NewEventsRepo(db),
			Clinics:       pg.NewClinicsRepo(db),
		},
		Tx: pg.NewTxManager(db),
	}
}

type Options struct {
	Logger  logger.Logger
	Storage Storage

	// Tokens verifica la firma; Issuer firma en /auth/login.
	Tokens auth.AuthVerifier
	Issuer auth.TokenIssuer
	Hasher auth.PasswordHasher

	CORSOrigins []string

	// AuthLimiter se aplica a register/login. nil => sin límite.
	AuthLimiter func(http.Handler) http.Handler
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	repos := opts.Storage.Repos
	tx := opts.Storage.Tx

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Services por módulo
	usersSvc := users.NewService(repos.Users, opts.Hasher, opts.Issuer, tx)
	petsSvc := pets.NewService(repos.Pets, tx)
	prefsSvc := preferences.NewService(repos.Preferences, petsSvc, tx)
	habitsSvc := habits.NewService(repos.Habits, petsSvc, tx)
	recordsSvc := healthrecords.NewService(repos.HealthRecords, petsSvc, tx)
	eventsSvc := events.NewService(repos.Events, petsSvc, tx)
	clinicsSvc := clinics.NewService(repos.Clinics)

	var verifier auth.AuthVerifier
	if opts.Tokens != nil {
		verifier = users.NewIdentity(opts.Tokens, repos.Users)
	}
	r.Use(middleware.AuthContext(verifier))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, httpx.StatusResponse{Status: "Petify backend is running"})
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	users.RegisterAuthRoutes(r, usersSvc, opts.AuthLimiter)

	// Rutas por módulo, todas autenticadas
	r.Group(func(ar chi.Router) {
		ar.Use(middleware.RequireAuth)

		users.RegisterUserRoutes(ar, usersSvc)
		pets.RegisterRoutes(ar, petsSvc)
		preferences.RegisterRoutes(ar, prefsSvc)
		habits.RegisterRoutes(ar, habitsSvc)
		healthrecords.RegisterRoutes(ar, recordsSvc)
		events.RegisterRoutes(ar, eventsSvc)
		clinics.RegisterRoutes(ar, clinicsSvc)
	})

	return r
}
