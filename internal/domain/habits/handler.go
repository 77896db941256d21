package habits

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
	r.Get("/pets/{petID}/habits", listHabitsHandler(svc))
	r.Post("/pets/{petID}/habits", createHabitHandler(svc))

	r.Get("/habits/{habitID}", getHabitHandler(svc))
	r.Put("/habits/{habitID}", updateHabitHandler(svc))
	r.Delete("/habits/{habitID}", deleteHabitHandler(svc))
}

type createHabitRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
}

type updateHabitRequest struct {
	Title       patch.Field[string] `json:"title" swaggertype:"string"`
	Description patch.Field[string] `json:"description" swaggertype:"string"`
}

type habitResponse struct {
	ID          string    `json:"id"`
	PetID       string    `json:"pet_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// listHabitsHandler godoc
// @Summary Hábitos de una mascota
// @Tags habits
// @Produce json
// @Security BearerAuth
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} habitResponse
// @Failure 404 {object} httpx.ErrorResponse "Pet not found"
// @Router /pets/{petID}/habits [get]
func listHabitsHandler(svc *Service) http.HandlerFunc {
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

		out := make([]habitResponse, 0, len(items))
		for _, h := range items {
			out = append(out, toHabitResponse(h))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// createHabitHandler godoc
// @Summary Agregar hábito
// @Tags habits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param petID path string true "ID de la mascota"
// @Param payload body createHabitRequest true "Hábito"
// @Success 200 {object} habitResponse
// @Failure 404 {object} httpx.ErrorResponse "Pet not found"
// @Failure 422 {object} httpx.ErrorResponse
// @Router /pets/{petID}/habits [post]
func createHabitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperr.ErrUnauthenticated)
			return
		}

		var req createHabitRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		h, err := svc.Create(r.Context(), uid, chi.URLParam(r, "petID"), CreateInput{
			Title:       req.Title,
			Description: req.Description,
		})
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toHabitResponse(h))
	}
}

// getHabitHandler godoc
// @Summary Obtener hábito
// @Tags habits
// @Produce json
// @Security BearerAuth
// @Param habitID path string true "ID del hábito"
// @Success 200 {object} habitResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse "Habit not found"
// @Router /habits/{habitID} [get]
func getHabitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperr.ErrUnauthenticated)
			return
		}

		h, err := svc.Get(r.Context(), uid, chi.URLParam(r, "habitID"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toHabitResponse(h))
	}
}

// updateHabitHandler godoc
// @Summary Actualizar hábito
// @Tags habits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param habitID path string true "ID del hábito"
// @Param payload body updateHabitRequest true "Campos a modificar"
// @Success 200 {object} habitResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse "Habit not found"
// @Router /habits/{habitID} [put]
func updateHabitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperr.ErrUnauthenticated)
			return
		}

		var req updateHabitRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		h, err := svc.Update(r.Context(), uid, chi.URLParam(r, "habitID"), UpdateInput{
			Title:       req.Title,
			Description: req.Description,
		})
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toHabitResponse(h))
	}
}

// deleteHabitHandler godoc
// @Summary Borrar hábito
// @Tags habits
// @Produce json
// @Security BearerAuth
// @Param habitID path string true "ID del hábito"
// @Success 200 {object} httpx.StatusResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse "Habit not found"
// @Router /habits/{habitID} [delete]
func deleteHabitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperr.ErrUnauthenticated)
			return
		}

		if err := svc.Delete(r.Context(), uid, chi.URLParam(r, "habitID")); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.Deleted(w)
	}
}

func toHabitResponse(h Habit) habitResponse {
	return habitResponse{
		ID:          h.ID,
		PetID:       h.PetID,
		Title:       h.Title,
		Description: h.Description,
		CreatedAt:   h.CreatedAt,
	}
}
