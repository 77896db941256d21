package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petify/internal/platform/apperr"
)

func writeErr(err error) (int, ErrorResponse) {
	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), err)

	var body ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec.Code, body
}

func TestWriteError_Mapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		detail string
	}{
		{apperr.NotFound("Pet"), http.StatusNotFound, "Pet not found"},
		{apperr.ErrForbidden, http.StatusForbidden, "Forbidden"},
		{apperr.ErrUnauthenticated, http.StatusUnauthorized, "Unauthorized"},
		{apperr.WithDetail(apperr.ErrBadRequest, "LOGIN_BAD_CREDENTIALS"), http.StatusBadRequest, "LOGIN_BAD_CREDENTIALS"},
		{apperr.Invalid("name", "is required"), http.StatusUnprocessableEntity, "validation failed"},
		{errors.New("db exploded"), http.StatusInternalServerError, "internal error"},
	}

	for _, tc := range cases {
		status, body := writeErr(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.detail, body.Detail)
	}
}

type createReq struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

func TestDecodeJSON(t *testing.T) {
	var dst createReq
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope"}`))

	err := DecodeJSON(r, &dst)
	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "is required", verr.Fields["name"])
	assert.Equal(t, "must be a valid email", verr.Fields["email"])

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name": 5}`))
	err = DecodeJSON(r, &dst)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.ErrorIs(t, DecodeJSON(r, &dst), apperr.ErrInvalidInput)
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, ValidateVar("email", "a@b.co", "email"))

	err := ValidateVar("email", "nope", "email")
	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "must be a valid email", verr.Fields["email"])
}

func TestDeleted(t *testing.T) {
	rec := httptest.NewRecorder()
	Deleted(rec)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"deleted"}`, rec.Body.String())
}
