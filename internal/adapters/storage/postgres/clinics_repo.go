package postgres

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"petify/internal/domain/clinics"
)

const clinicColumns = `id, name, address, phone, lat, lng, source, created_at`

type ClinicsRepo struct {
	db *sql.DB
}

func NewClinicsRepo(db *sql.DB) *ClinicsRepo {
	return &ClinicsRepo{db: db}
}

func (r *ClinicsRepo) List(ctx context.Context) ([]clinics.Clinic, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, `
		SELECT `+clinicColumns+`
		FROM clinics
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, mapError(err, "clinic")
	}
	defer rows.Close()

	out := make([]clinics.Clinic, 0)
	for rows.Next() {
		c, err := scanClinic(rows)
		if err != nil {
			return nil, mapError(err, "clinic")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ClinicsRepo) GetByID(ctx context.Context, id string) (clinics.Clinic, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+clinicColumns+` FROM clinics WHERE id = $1`, id)
	c, err := scanClinic(row)
	if err != nil {
		return clinics.Clinic{}, mapError(err, "clinic")
	}
	return c, nil
}

func (r *ClinicsRepo) Create(ctx context.Context, c clinics.Clinic) error {
	query, args, err := psql.Insert("clinics").
		Columns("id", "name", "address", "phone", "lat", "lng", "source", "created_at").
		Values(c.ID, c.Name, c.Address, c.Phone, c.Lat, c.Lng, c.Source, c.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}
	_, err = conn(ctx, r.db).ExecContext(ctx, query, args...)
	return mapError(err, "clinic")
}

// ExistsByNameAddress: address nil se compara con IS NULL (sq.Eq lo resuelve).
func (r *ClinicsRepo) ExistsByNameAddress(ctx context.Context, name string, address *string) (bool, error) {
	var addr any
	if address != nil {
		addr = *address
	}

	query, args, err := psql.Select("1").
		From("clinics").
		Where(sq.Eq{"name": name, "address": addr}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, err
	}

	var exists bool
	if err := conn(ctx, r.db).QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, mapError(err, "clinic")
	}
	return exists, nil
}

func scanClinic(s rowScanner) (clinics.Clinic, error) {
	var c clinics.Clinic
	err := s.Scan(&c.ID, &c.Name, &c.Address, &c.Phone, &c.Lat, &c.Lng, &c.Source, &c.CreatedAt)
	return c, err
}
