package postgres

import (
	"context"
	"database/sql"

	"petify/internal/domain/preferences"
)

type PreferencesRepo struct {
	db *sql.DB
}

func NewPreferencesRepo(db *sql.DB) *PreferencesRepo {
	return &PreferencesRepo{db: db}
}

func (r *PreferencesRepo) GetByPet(ctx context.Context, petID string) (preferences.Preference, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx, `
		SELECT id, pet_id, likes, dislikes, food_notes
		FROM preferences
		WHERE pet_id = $1
	`, petID)

	var p preferences.Preference
	if err := row.Scan(&p.ID, &p.PetID, &p.Likes, &p.Dislikes, &p.FoodNotes); err != nil {
		return preferences.Preference{}, mapError(err, "preference")
	}
	return p, nil
}

// Upsert por pet_id: si dos requests crean a la vez, gana el ON CONFLICT
// y el id devuelto es siempre el de la fila existente.
func (r *PreferencesRepo) Upsert(ctx context.Context, p preferences.Preference) (preferences.Preference, error) {
	query, args, err := psql.Insert("preferences").
		Columns("id", "pet_id", "likes", "dislikes", "food_notes").
		Values(p.ID, p.PetID, p.Likes, p.Dislikes, p.FoodNotes).
		Suffix(`ON CONFLICT (pet_id) DO UPDATE
			SET likes = EXCLUDED.likes,
			    dislikes = EXCLUDED.dislikes,
			    food_notes = EXCLUDED.food_notes
			RETURNING id, pet_id, likes, dislikes, food_notes`).
		ToSql()
	if err != nil {
		return preferences.Preference{}, err
	}

	var out preferences.Preference
	if err := conn(ctx, r.db).QueryRowContext(ctx, query, args...).
		Scan(&out.ID, &out.PetID, &out.Likes, &out.Dislikes, &out.FoodNotes); err != nil {
		return preferences.Preference{}, mapError(err, "preference")
	}
	return out, nil
}
