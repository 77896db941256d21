package postgres

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"petify/internal/domain/healthrecords"
)

const recordColumns = `id, pet_id, record_type, title, details, record_date, created_at`

type HealthRecordsRepo struct {
	db *sql.DB
}

func NewHealthRecordsRepo(db *sql.DB) *HealthRecordsRepo {
	return &HealthRecordsRepo{db: db}
}

func (r *HealthRecordsRepo) Create(ctx context.Context, h healthrecords.HealthRecord) error {
	_, err := conn(ctx, r.db).ExecContext(ctx, `
		INSERT INTO health_records (`+recordColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, h.ID, h.PetID, h.RecordType, h.Title, h.Details, h.RecordDate, h.CreatedAt)
	return mapError(err, "health record")
}

func (r *HealthRecordsRepo) GetByID(ctx context.Context, id string) (healthrecords.HealthRecord, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+recordColumns+` FROM health_records WHERE id = $1`, id)
	h, err := scanRecord(row)
	if err != nil {
		return healthrecords.HealthRecord{}, mapError(err, "health record")
	}
	return h, nil
}

func (r *HealthRecordsRepo) ListByPet(ctx context.Context, petID string) ([]healthrecords.HealthRecord, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM health_records
		WHERE pet_id = $1
		ORDER BY created_at ASC, id ASC
	`, petID)
	if err != nil {
		return nil, mapError(err, "health record")
	}
	defer rows.Close()

	out := make([]healthrecords.HealthRecord, 0)
	for rows.Next() {
		h, err := scanRecord(rows)
		if err != nil {
			return nil, mapError(err, "health record")
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *HealthRecordsRepo) Update(ctx context.Context, h healthrecords.HealthRecord) error {
	query, args, err := psql.Update("health_records").
		SetMap(sq.Eq{
			"record_type": h.RecordType,
			"title":       h.Title,
			"details":     h.Details,
			"record_date": h.RecordDate,
		}).
		Where(sq.Eq{"id": h.ID}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(err, "health record")
	}
	return expectOne(res, "health record")
}

func (r *HealthRecordsRepo) Delete(ctx context.Context, id string) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM health_records WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "health record")
	}
	return expectOne(res, "health record")
}

func scanRecord(s rowScanner) (healthrecords.HealthRecord, error) {
	var h healthrecords.HealthRecord
	err := s.Scan(&h.ID, &h.PetID, &h.RecordType, &h.Title, &h.Details, &h.RecordDate, &h.CreatedAt)
	return h, err
}
