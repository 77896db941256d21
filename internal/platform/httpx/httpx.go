// Package httpx junta los helpers HTTP que antes estaban duplicados en cada
// handler (writeJSON) más el decode+validación de payloads.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"petify/internal/platform/apperr"
	"petify/internal/platform/logger"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ErrorResponse es el body de todo error: {"detail": "..."}.
type ErrorResponse struct {
	Detail string            `json:"detail"`
	Errors map[string]string `json:"errors,omitempty"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Deleted es el acuse estándar de los DELETE de dominio.
func Deleted(w http.ResponseWriter) {
	WriteJSON(w, http.StatusOK, StatusResponse{Status: "deleted"})
}

func WriteDetail(w http.ResponseWriter, status int, detail string) {
	WriteJSON(w, status, ErrorResponse{Detail: detail})
}

// WriteError mapea la taxonomía de apperr a status HTTP.
// Los 5xx se loguean con el logger del request; el mensaje nunca sale al cliente.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *apperr.ValidationError

	switch {
	case errors.As(err, &verr):
		WriteJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Detail: "validation failed", Errors: verr.Fields})
	case errors.Is(err, apperr.ErrInvalidInput):
		WriteDetail(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, apperr.ErrUnauthenticated):
		WriteDetail(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, apperr.ErrForbidden):
		WriteDetail(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, apperr.ErrNotFound):
		WriteDetail(w, http.StatusNotFound, publicMessage(err, "not found"))
	case errors.Is(err, apperr.ErrBadRequest):
		WriteDetail(w, http.StatusBadRequest, publicMessage(err, "bad request"))
	case errors.Is(err, apperr.ErrConflict):
		WriteDetail(w, http.StatusConflict, publicMessage(err, "conflict"))
	default:
		logger.FromContext(r.Context()).Error("request failed", map[string]any{
			"method": r.Method,
			"path":   r.URL.Path,
			"error":  err,
		})
		WriteDetail(w, http.StatusInternalServerError, "internal error")
	}
}

func publicMessage(err error, fallback string) string {
	var detail *apperr.Detail
	if errors.As(err, &detail) {
		return detail.Msg
	}
	return fallback
}

// DecodeJSON decodifica el body en dst y corre las tags `validate`.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return apperr.Invalid("body", "is required")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return invalidJSON(err)
	}
	return Validate(dst)
}

// Validate corre el validador sobre un struct ya poblado.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Invalid("payload", "invalid payload")
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = formatFieldError(fe)
	}
	return &apperr.ValidationError{Fields: fields}
}

// ValidateVar valida un valor suelto (campos patch.Field que no llevan tags).
func ValidateVar(field string, v any, tag string) error {
	err := validate.Var(v, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return apperr.Invalid(field, formatFieldError(verrs[0]))
	}
	return apperr.Invalid(field, "invalid value")
}

func invalidJSON(err error) error {
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		return apperr.Invalid(ute.Field, "must be "+ute.Type.String())
	}
	return apperr.Invalid("payload", "invalid json")
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be >= " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be <= " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
