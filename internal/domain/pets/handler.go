package pets

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"petify/internal/middleware"
	"petify/internal/platform/apperr"
	"petify/internal/platform/httpx"
	"petify/internal/platform/patch"
)

// RegisterRoutes registra rutas planas (sin r.Route) porque preferencias,
// hábitos e historial cuelgan de /pets/{petID}/... desde sus propios paquetes.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/pets", listPetsHandler(svc))
	r.Post("/pets", createPetHandler(svc))

	r.Get("/pets/{petID}", getPetHandler(svc))
	r.Put("/pets/{petID}", updatePetHandler(svc))
	r.Delete("/pets/{petID}", deletePetHandler(svc))
}

type createPetRequest struct {
	Name      string  `json:"name" validate:"required"`
	Species   string  `json:"species" validate:"required"`
	Breed     *string `json:"breed"`
	BirthDate *string `json:"birth_date"` // texto libre, normalmente YYYY-MM-DD
	Notes     *string `json:"notes"`
}

// updatePetRequest: PUT parcial. Campo ausente = no tocar, null = limpiar.
type updatePetRequest struct {
	Name      patch.Field[string] `json:"name" swaggertype:"string"`
	Species   patch.Field[string] `json:"species" swaggertype:"string"`
	Breed     patch.Field[string] `json:"breed" swaggertype:"string"`
	BirthDate patch.Field[string] `json:"birth_date" swaggertype:"string"`
	Notes     patch.Field[string] `json:"notes" swaggertype:"string"`
}

type petResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	Breed     *string   `json:"breed"`
	BirthDate *string   `json:"birth_date"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// listPetsHandler godoc
// @Summary Listar mis mascotas
// @Tags pets
// @Produce json
// @Security BearerAuth
// @Success 200 {array} petResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperr.ErrUnauthenticated)
			return
		}

		items, err := svc.List(r.Context(), uid)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description La mascota queda asociada al usuario autenticado.
// @Tags pets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 200 {object} petResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperr.ErrUnauthenticated)
			return
		}

		var req createPetRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		p, err := svc.Create(r.Context(), uid, CreateInput{
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			BirthDate: req.BirthDate,
			Notes:     req.Notes,
		})
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// getPetHandler godoc
// @Summary Perfil de mascota
// @Description Una mascota de otro usuario se reporta igual que una inexistente.
// @Tags pets
// @Produce json
// @Security BearerAuth
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 404 {object} httpx.ErrorResponse "Pet not found"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
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
		httpx.WriteJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota
// @Description Sólo se modifican los campos enviados; null limpia breed, birth_date o notes.
// @Tags pets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a modificar"
// @Success 200 {object} petResponse
// @Failure 404 {object} httpx.ErrorResponse "Pet not found"
// @Failure 422 {object} httpx.ErrorResponse
// @Router /pets/{petID} [put]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperr.ErrUnauthenticated)
			return
		}

		var req updatePetRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		p, err := svc.Update(r.Context(), uid, chi.URLParam(r, "petID"), UpdateInput{
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			BirthDate: req.BirthDate,
			Notes:     req.Notes,
		})
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// deletePetHandler godoc
// @Summary Borrar mascota
// @Description Borra también preferencias, hábitos, historial y eventos.
// @Tags pets
// @Produce json
// @Security BearerAuth
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} httpx.StatusResponse
// @Failure 404 {object} httpx.ErrorResponse "Pet not found"
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperr.ErrUnauthenticated)
			return
		}

		if err := svc.Delete(r.Context(), uid, chi.URLParam(r, "petID")); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.Deleted(w)
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:        p.ID,
		Name:      p.Name,
		Species:   p.Species,
		Breed:     p.Breed,
		BirthDate: p.BirthDate,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
	}
}
