package postgres

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"petify/internal/domain/habits"
)

const habitColumns = `id, pet_id, title, description, created_at`

type HabitsRepo struct {
	db *sql.DB
}

func NewHabitsRepo(db *sql.DB) *HabitsRepo {
	return &HabitsRepo{db: db}
}

func (r *HabitsRepo) Create(ctx context.Context, h habits.Habit) error {
	_, err := conn(ctx, r.db).ExecContext(ctx, `
		INSERT INTO habits (`+habitColumns+`) VALUES ($1,$2,$3,$4,$5)
	`, h.ID, h.PetID, h.Title, h.Description, h.CreatedAt)
	return mapError(err, "habit")
}

func (r *HabitsRepo) GetByID(ctx context.Context, id string) (habits.Habit, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+habitColumns+` FROM habits WHERE id = $1`, id)
	h, err := scanHabit(row)
	if err != nil {
		return habits.Habit{}, mapError(err, "habit")
	}
	return h, nil
}

func (r *HabitsRepo) ListByPet(ctx context.Context, petID string) ([]habits.Habit, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, `
		SELECT `+habitColumns+`
		FROM habits
		WHERE pet_id = $1
		ORDER BY created_at ASC, id ASC
	`, petID)
	if err != nil {
		return nil, mapError(err, "habit")
	}
	defer rows.Close()

	out := make([]habits.Habit, 0)
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, mapError(err, "habit")
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *HabitsRepo) Update(ctx context.Context, h habits.Habit) error {
	query, args, err := psql.Update("habits").
		Set("title", h.Title).
		Set("description", h.Description).
		Where(sq.Eq{"id": h.ID}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(err, "habit")
	}
	return expectOne(res, "habit")
}

func (r *HabitsRepo) Delete(ctx context.Context, id string) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "habit")
	}
	return expectOne(res, "habit")
}

func scanHabit(s rowScanner) (habits.Habit, error) {
	var h habits.Habit
	err := s.Scan(&h.ID, &h.PetID, &h.Title, &h.Description, &h.CreatedAt)
	return h, err
}
