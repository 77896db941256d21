package postgres

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"petify/internal/domain/events"
)

const eventColumns = `e.id, e.pet_id, e.type, e.title, e.start_at, e.end_at, e.location, e.notes, e.status, e.created_at`

type EventsRepo struct {
	db *sql.DB
}

func NewEventsRepo(db *sql.DB) *EventsRepo {
	return &EventsRepo{db: db}
}

func (r *EventsRepo) Create(ctx context.Context, e events.Event) error {
	_, err := conn(ctx, r.db).ExecContext(ctx, `
		INSERT INTO events (
			id, pet_id, type, title,
			start_at, end_at, location, notes,
			status, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		e.ID,
		e.PetID,
		e.Type,
		e.Title,
		e.StartAt,
		e.EndAt,
		e.Location,
		e.Notes,
		string(e.Status),
		e.CreatedAt,
	)
	return mapError(err, "event")
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (events.Event, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events e WHERE e.id = $1`, id)
	e, err := scanEvent(row)
	if err != nil {
		return events.Event{}, mapError(err, "event")
	}
	return e, nil
}

func (r *EventsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]events.Event, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, `
		SELECT `+eventColumns+`
		FROM events e
		JOIN pets p ON p.id = e.pet_id
		WHERE p.user_id = $1
		ORDER BY e.created_at ASC, e.id ASC
	`, ownerUserID)
	if err != nil {
		return nil, mapError(err, "event")
	}
	defer rows.Close()

	out := make([]events.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, mapError(err, "event")
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EventsRepo) Update(ctx context.Context, e events.Event) error {
	query, args, err := psql.Update("events").
		SetMap(sq.Eq{
			"type":     e.Type,
			"title":    e.Title,
			"start_at": e.StartAt,
			"end_at":   e.EndAt,
			"location": e.Location,
			"notes":    e.Notes,
			"status":   string(e.Status),
		}).
		Where(sq.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(err, "event")
	}
	return expectOne(res, "event")
}

func (r *EventsRepo) Delete(ctx context.Context, id string) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "event")
	}
	return expectOne(res, "event")
}

func scanEvent(s rowScanner) (events.Event, error) {
	var (
		e      events.Event
		status string
	)
	err := s.Scan(
		&e.ID,
		&e.PetID,
		&e.Type,
		&e.Title,
		&e.StartAt,
		&e.EndAt,
		&e.Location,
		&e.Notes,
		&status,
		&e.CreatedAt,
	)
	e.Status = events.Status(status)
	return e, err
}
