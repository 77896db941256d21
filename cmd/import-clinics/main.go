// Command import-clinics carga clínicas veterinarias desde OpenStreetMap
// Nominatim a la base de Petify.
//
//	import-clinics -q "ветеринарная клиника" -city Samara -limit 20
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"petify/internal/adapters/geo/nominatim"
	pg "petify/internal/adapters/storage/postgres"
	"petify/internal/bootstrap"
	"petify/internal/domain/clinics"
	"petify/internal/platform/config"
	"petify/internal/platform/httpclient"
	"petify/internal/platform/logger"
)

func main() {
	query := flag.String("q", "ветеринарная клиника", "texto a buscar")
	city := flag.String("city", "", "ciudad (opcional, se agrega a la búsqueda)")
	limit := flag.Int("limit", 20, "máximo de resultados (1..50)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{Level: logger.ParseLevel("info")}).Error("config error", map[string]any{"error": err})
		os.Exit(1)
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    "import-clinics",
		Env:    cfg.App.Env,
	})

	if cfg.UsesMemoryStore() {
		log.Error("DATABASE_URL is required", nil)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, *query, *city, *limit); err != nil {
		log.Error("import failed", map[string]any{"error": err})
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger, query, city string, limit int) error {
	db, err := pg.Open(pg.Options{
		DSN:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	err = bootstrap.WaitReady(ctx, cfg.Database.ConnectAttempts, cfg.Database.ConnectDelay, func(ctx context.Context) error {
		if err := pg.Ping(ctx, db); err != nil {
			return err
		}
		return pg.Migrate(ctx, db)
	}, log)
	if err != nil {
		return err
	}

	hc, err := httpclient.New(httpclient.Options{
		BaseURL:   cfg.Clinics.NominatimURL,
		Timeout:   cfg.Clinics.Timeout,
		UserAgent: cfg.Clinics.UserAgent,
	})
	if err != nil {
		return err
	}

	importer := clinics.NewImporter(pg.NewClinicsRepo(db), nominatim.New(hc), pg.NewTxManager(db), log)
	res, err := importer.Import(ctx, query, city, limit)
	if err != nil {
		return err
	}

	log.Info("done", map[string]any{"found": res.Found, "inserted": res.Inserted, "skipped": res.Skipped})
	return nil
}
