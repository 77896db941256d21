package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"petify/internal/platform/apperr"
)

// mapError traduce errores de sql/pgconn a la taxonomía de apperr.
// Los errores de context pasan tal cual (envueltos).
func mapError(err error, entity string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", entity, err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", entity, apperr.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s: %w", entity, apperr.ErrConflict)
		case "23503": // foreign_key_violation: el padre no existe
			return fmt.Errorf("%s: %w", entity, apperr.ErrNotFound)
		case "23514", "23502": // check_violation, not_null_violation
			return fmt.Errorf("%s: %w", entity, apperr.ErrInvalidInput)
		}
	}

	return fmt.Errorf("%s: %w", entity, err)
}

// expectOne convierte "0 filas afectadas" en ErrNotFound.
func expectOne(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(err, entity)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, apperr.ErrNotFound)
	}
	return nil
}
