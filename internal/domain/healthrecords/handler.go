package healthrecords

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"petify/internal/middleware"
	"petify/internal/platform/apperr"
	"petify/internal/platform/httpx"
	"petify/internal/platform/patch"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/pets/{petID}/health-records", listRecordsHandler(svc))
	r.Post("/pets/{petID}/health-records", createRecordHandler(svc))

	r.Get("/health-records/{recordID}", getRecordHandler(svc))
	r.Put("/health-records/{recordID}", updateRecordHandler(svc))
	r.Delete("/health-records/{recordID}", deleteRecordHandler(svc))
}

type createRecordRequest struct {
	RecordType string  `json:"record_type" validate:"required"`
	Title      string  `json:"title" validate:"required"`
	Details    *string `json:"details"`
	RecordDate *string `json:"record_date"`
}

type updateRecordRequest struct {
	RecordType patch.Field[string] `json:"record_type" swaggertype:"string"`
	Title      patch.Field[string] `json:"title" swaggertype:"string"`
	Details    patch.Field[string] `json:"details" swaggertype:"string"`
	RecordDate patch.Field[string] `json:"record_date" swaggertype:"string"`
}

type recordResponse struct {
	ID         string    `json:"id"`
	PetID      string    `json:"pet_id"`
	RecordType string    `json:"record_type"`
	Title      string    `json:"title"`
	Details    *string   `json:"details"`
	RecordDate *string   `json:"record_date"`
	CreatedAt  time.Time `json:"created_at"`
}

// listRecordsHandler godoc
// @Summary Historial médico de una mascota
// @Tags health-records
// @Produce json
// @Security BearerAuth
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} recordResponse
// @Failure 404 {object} httpx.ErrorResponse "Pet not found"
// @Router /pets/{petID}/health-records [get]
func listRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperr.ErrUnauthenticated)
			return
		}

		items, err := svc.ListByPet(r.Context(), uid, chi.URLParam(r, "petID"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		out := make([]recordResponse, 0, len(items))
		for _, h := range items {
			out = append(out, toRecordResponse(h))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// createRecordHandler godoc
// @Summary Agregar registro médico
// @Tags health-records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param petID path string true "ID de la mascota"
// @Param payload body createRecordRequest true "Registro"
// @Success 200 {object} recordResponse
// @Failure 404 {object} httpx.ErrorResponse "Pet not found"
// @Failure 422 {object} httpx.ErrorResponse
// @Router /pets/{petID}/health-records [post]
func createRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperr.ErrUnauthenticated)
			return
		}

		var req createRecordRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		h, err := svc.Create(r.Context(), uid, chi.URLParam(r, "petID"), CreateInput{
			RecordType: req.RecordType,
			Title:      req.Title,
			Details:    req.Details,
			RecordDate: req.RecordDate,
		})
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toRecordResponse(h))
	}
}

// getRecordHandler godoc
// @Summary Obtener registro médico
// @Tags health-records
// @Produce json
// @Security BearerAuth
// @Param recordID path string true "ID del registro"
// @Success 200 {object} recordResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse "Record not found"
// @Router /health-records/{recordID} [get]
func getRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperr.ErrUnauthenticated)
			return
		}

		h, err := svc.Get(r.Context(), uid, chi.URLParam(r, "recordID"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toRecordResponse(h))
	}
}

// updateRecordHandler godoc
// @Summary Actualizar registro médico
// @Tags health-records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param recordID path string true "ID del registro"
// @Param payload body updateRecordRequest true "Campos a modificar"
// @Success 200 {object} recordResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse "Record not found"
// @Router /health-records/{recordID} [put]
func updateRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperr.ErrUnauthenticated)
			return
		}

		var req updateRecordRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		h, err := svc.Update(r.Context(), uid, chi.URLParam(r, "recordID"), UpdateInput{
			RecordType: req.RecordType,
			Title:      req.Title,
			Details:    req.Details,
			RecordDate: req.RecordDate,
		})
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toRecordResponse(h))
	}
}

// deleteRecordHandler godoc
// @Summary Borrar registro médico
// @Tags health-records
// @Produce json
// @Security BearerAuth
// @Param recordID path string true "ID del registro"
// @Success 200 {object} httpx.StatusResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse "Record not found"
// @Router /health-records/{recordID} [delete]
func deleteRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperr.ErrUnauthenticated)
			return
		}

		if err := svc.Delete(r.Context(), uid, chi.URLParam(r, "recordID")); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.Deleted(w)
	}
}

func toRecordResponse(h HealthRecord) recordResponse {
	return recordResponse{
		ID:         h.ID,
		PetID:      h.PetID,
		RecordType: h.RecordType,
		Title:      h.Title,
		Details:    h.Details,
		RecordDate: h.RecordDate,
		CreatedAt:  h.CreatedAt,
	}
}
