package preferences

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"petify/internal/middleware"
	"petify/internal/platform/apperr"
	"petify/internal/platform/httpx"
	"petify/internal/platform/patch"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/pets/{petID}/preferences", getPreferencesHandler(svc))
	r.Put("/pets/{petID}/preferences", updatePreferencesHandler(svc))
}

type updatePreferencesRequest struct {
	Likes     patch.Field[string] `json:"likes" swaggertype:"string"`
	Dislikes  patch.Field[string] `json:"dislikes" swaggertype:"string"`
	FoodNotes patch.Field[string] `json:"food_notes" swaggertype:"string"`
}

type preferenceResponse struct {
	ID        string  `json:"id"`
	PetID     string  `json:"pet_id"`
	Likes     *string `json:"likes"`
	Dislikes  *string `json:"dislikes"`
	FoodNotes *string `json:"food_notes"`
}

// getPreferencesHandler godoc
// @Summary Preferencias de una mascota
// @Tags preferences
// @Produce json
// @Security BearerAuth
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} preferenceResponse
// @Failure 404 {object} httpx.ErrorResponse "Pet not found / Preferences not found"
// @Router /pets/{petID}/preferences [get]
func getPreferencesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperr.ErrUnauthenticated)
			return
		}

		p, err := svc.Get(r.Context(), uid, chi.URLParam(r, "petID"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPreferenceResponse(p))
	}
}

// updatePreferencesHandler godoc
// @Summary Guardar preferencias
// @Description Upsert: crea las preferencias si no existen. Campos no enviados se conservan.
// @Tags preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePreferencesRequest true "Preferencias"
// @Success 200 {object} preferenceResponse
// @Failure 404 {object} httpx.ErrorResponse "Pet not found"
// @Router /pets/{petID}/preferences [put]
func updatePreferencesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperr.ErrUnauthenticated)
			return
		}

		var req updatePreferencesRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		p, err := svc.Upsert(r.Context(), uid, chi.URLParam(r, "petID"), UpdateInput{
			Likes:     req.Likes,
			Dislikes:  req.Dislikes,
			FoodNotes: req.FoodNotes,
		})
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPreferenceResponse(p))
	}
}

func toPreferenceResponse(p Preference) preferenceResponse {
	return preferenceResponse{
		ID:        p.ID,
		PetID:     p.PetID,
		Likes:     p.Likes,
		Dislikes:  p.Dislikes,
		FoodNotes: p.FoodNotes,
	}
}
