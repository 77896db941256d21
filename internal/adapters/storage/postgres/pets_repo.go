package postgres

import (
	"context"
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"petify/internal/domain/pets"
	"petify/internal/platform/apperr"
)

const petColumns = `id, user_id, name, species, breed, birth_date, notes, created_at`

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := conn(ctx, r.db).ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		p.ID,
		p.OwnerUserID,
		p.Name,
		p.Species,
		p.Breed,
		p.BirthDate,
		p.Notes,
		p.CreatedAt,
	)
	return mapError(err, "pet")
}

// Update reescribe los campos editables; el dueño y created_at no cambian.
func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	query, args, err := psql.Update("pets").
		SetMap(sq.Eq{
			"name":       p.Name,
			"species":    p.Species,
			"breed":      p.Breed,
			"birth_date": p.BirthDate,
			"notes":      p.Notes,
		}).
		Where(sq.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(err, "pet")
	}
	return expectOne(res, "pet")
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, apperr.ErrNotFound
	}

	row := conn(ctx, r.db).QueryRowContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE id = $1
	`, id)

	p, err := scanPet(row)
	if err != nil {
		return pets.Pet{}, mapError(err, "pet")
	}
	return p, nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := conn(ctx, r.db).QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`, ownerUserID)
	if err != nil {
		return nil, mapError(err, "pet")
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, mapError(err, "pet")
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete: los hijos se borran por ON DELETE CASCADE.
func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "pet")
	}
	return expectOne(res, "pet")
}

// rowScanner cubre *sql.Row y *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(s rowScanner) (pets.Pet, error) {
	var p pets.Pet
	err := s.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&p.BirthDate,
		&p.Notes,
		&p.CreatedAt,
	)
	return p, err
}
