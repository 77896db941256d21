package clinics

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"petify/internal/platform/logger"
	"petify/internal/ports/storage"
)

const SourceNominatim = "nominatim"

// Place es un resultado de geocoding ya normalizado.
type Place struct {
	Name    string
	Address string
	Lat     float64
	Lng     float64
}

type Geocoder interface {
	Search(ctx context.Context, query string, limit int) ([]Place, error)
}

type ImportResult struct {
	Found    int
	Inserted int
	Skipped  int
}

// Importer carga clínicas desde un Geocoder. Se corre fuera de banda (cmd/import-clinics).
type Importer struct {
	repo Repository
	geo  Geocoder
	tx   storage.TxRunner
	log  logger.Logger
	now  func() time.Time
}

func NewImporter(repo Repository, geo Geocoder, tx storage.TxRunner, log logger.Logger) *Importer {
	if log == nil {
		log = logger.Nop()
	}
	return &Importer{
		repo: repo,
		geo:  geo,
		tx:   tx,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Import busca `query` (+ ciudad opcional) e inserta los lugares cuyo par
// (name, address) no esté guardado. Todo el lote va en una transacción.
func (i *Importer) Import(ctx context.Context, query, city string, limit int) (ImportResult, error) {
	q := strings.TrimSpace(query)
	if c := strings.TrimSpace(city); c != "" {
		q += ", " + c
	}

	places, err := i.geo.Search(ctx, q, limit)
	if err != nil {
		return ImportResult{}, err
	}

	res := ImportResult{Found: len(places)}
	err = i.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, p := range places {
			name := strings.TrimSpace(p.Name)
			if name == "" {
				res.Skipped++
				continue
			}
			addr := strPtr(strings.TrimSpace(p.Address))

			exists, err := i.repo.ExistsByNameAddress(ctx, name, addr)
			if err != nil {
				return err
			}
			if exists {
				res.Skipped++
				continue
			}

			lat, lng := p.Lat, p.Lng
			src := SourceNominatim
			c := Clinic{
				ID:        uuid.NewString(),
				Name:      name,
				Address:   addr,
				Lat:       &lat,
				Lng:       &lng,
				Source:    &src,
				CreatedAt: i.now(),
			}
			if err := i.repo.Create(ctx, c); err != nil {
				return err
			}
			res.Inserted++
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}

	i.log.Info("clinics imported", map[string]any{
		"query":    q,
		"found":    res.Found,
		"inserted": res.Inserted,
		"skipped":  res.Skipped,
	})
	return res, nil
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
