package postgres

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"petify/internal/domain/users"
)

const userColumns = `id, email, hashed_password, is_active, is_superuser, is_verified, created_at`

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

// Create: email duplicado => ErrConflict (índice único sobre lower(email)).
func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := conn(ctx, r.db).ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, u.ID, u.Email, u.HashedPassword, u.IsActive, u.IsSuperuser, u.IsVerified, u.CreatedAt)
	return mapError(err, "user")
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return r.scan(row)
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	return r.scan(row)
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	query, args, err := psql.Update("users").
		SetMap(sq.Eq{
			"email":           u.Email,
			"hashed_password": u.HashedPassword,
			"is_active":       u.IsActive,
			"is_superuser":    u.IsSuperuser,
			"is_verified":     u.IsVerified,
		}).
		Where(sq.Eq{"id": u.ID}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(err, "user")
	}
	return expectOne(res, "user")
}

func (r *UsersRepo) Delete(ctx context.Context, id string) error {
	res, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "user")
	}
	return expectOne(res, "user")
}

func (r *UsersRepo) Exists(ctx context.Context) (bool, error) {
	var exists bool
	err := conn(ctx, r.db).QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users)`).Scan(&exists)
	if err != nil {
		return false, mapError(err, "user")
	}
	return exists, nil
}

func (r *UsersRepo) scan(row *sql.Row) (users.User, error) {
	var u users.User
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.HashedPassword,
		&u.IsActive,
		&u.IsSuperuser,
		&u.IsVerified,
		&u.CreatedAt,
	); err != nil {
		return users.User{}, mapError(err, "user")
	}
	return u, nil
}
