package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"petify/internal/platform/apperr"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"no rows", sql.ErrNoRows, apperr.ErrNotFound},
		{"unique", &pgconn.PgError{Code: "23505"}, apperr.ErrConflict},
		{"fk", &pgconn.PgError{Code: "23503"}, apperr.ErrNotFound},
		{"check", &pgconn.PgError{Code: "23514"}, apperr.ErrInvalidInput},
		{"ctx", context.Canceled, context.Canceled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, mapError(tc.in, "pet"), tc.want)
		})
	}

	assert.NoError(t, mapError(nil, "pet"))

	other := errors.New("boom")
	err := mapError(other, "pet")
	assert.ErrorIs(t, err, other)
	assert.Equal(t, "pet: boom", err.Error())
}
