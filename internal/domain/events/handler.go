package events

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
	r.Route("/events", func(er chi.Router) {
		er.Get("/", listEventsHandler(svc))
		er.Post("/", createEventHandler(svc))

		er.Get("/{eventID}", getEventHandler(svc))
		er.Put("/{eventID}", updateEventHandler(svc))
		er.Delete("/{eventID}", deleteEventHandler(svc))
		er.Patch("/{eventID}/complete", completeEventHandler(svc))
	})
}

type createEventRequest struct {
	PetID    string  `json:"pet_id" validate:"required"`
	Type     string  `json:"type" validate:"required"` // feeding / walk / vet_visit
	Title    string  `json:"title" validate:"required"`
	StartAt  string  `json:"start_at" validate:"required"`
	EndAt    *string `json:"end_at"`
	Location *string `json:"location"`
	Notes    *string `json:"notes"`
}

type updateEventRequest struct {
	Type     patch.Field[string] `json:"type" swaggertype:"string"`
	Title    patch.Field[string] `json:"title" swaggertype:"string"`
	StartAt  patch.Field[string] `json:"start_at" swaggertype:"string"`
	EndAt    patch.Field[string] `json:"end_at" swaggertype:"string"`
	Location patch.Field[string] `json:"location" swaggertype:"string"`
	Notes    patch.Field[string] `json:"notes" swaggertype:"string"`
	Status   patch.Field[Status] `json:"status" swaggertype:"string" enums:"planned,done,cancelled"`
}

type eventResponse struct {
	ID        string    `json:"id"`
	PetID     string    `json:"pet_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	StartAt   string    `json:"start_at"`
	EndAt     *string   `json:"end_at"`
	Location  *string   `json:"location"`
	Notes     *string   `json:"notes"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// listEventsHandler godoc
// @Summary Listar eventos
// @Description Eventos de todas las mascotas del usuario autenticado.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {array} eventResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /events [get]
func listEventsHandler(svc *Service) http.HandlerFunc {
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

		out := make([]eventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEventResponse(e))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// createEventHandler godoc
// @Summary Crear evento
// @Description El evento nace en estado planned. Un pet_id ajeno se reporta como inexistente.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body createEventRequest true "Datos del evento"
// @Success 200 {object} eventResponse
// @Failure 404 {object} httpx.ErrorResponse "Pet not found"
// @Failure 422 {object} httpx.ErrorResponse
// @Router /events [post]
func createEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperr.ErrUnauthenticated)
			return
		}

		var req createEventRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		e, err := svc.Create(r.Context(), uid, CreateInput{
			PetID:    req.PetID,
			Type:     req.Type,
			Title:    req.Title,
			StartAt:  req.StartAt,
			EndAt:    req.EndAt,
			Location: req.Location,
			Notes:    req.Notes,
		})
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toEventResponse(e))
	}
}

// getEventHandler godoc
// @Summary Ver evento
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "ID del evento"
// @Success 200 {object} eventResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse "Event not found"
// @Router /events/{eventID} [get]
func getEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperr.ErrUnauthenticated)
			return
		}

		e, err := svc.Get(r.Context(), uid, chi.URLParam(r, "eventID"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toEventResponse(e))
	}
}

// updateEventHandler godoc
// @Summary Actualizar evento
// @Description Actualización parcial; también permite cambiar status.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "ID del evento"
// @Param payload body updateEventRequest true "Campos a modificar"
// @Success 200 {object} eventResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse "Event not found"
// @Failure 422 {object} httpx.ErrorResponse
// @Router /events/{eventID} [put]
func updateEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperr.ErrUnauthenticated)
			return
		}

		var req updateEventRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		e, err := svc.Update(r.Context(), uid, chi.URLParam(r, "eventID"), UpdateInput{
			Type:     req.Type,
			Title:    req.Title,
			StartAt:  req.StartAt,
			EndAt:    req.EndAt,
			Location: req.Location,
			Notes:    req.Notes,
			Status:   req.Status,
		})
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toEventResponse(e))
	}
}

// deleteEventHandler godoc
// @Summary Borrar evento
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "ID del evento"
// @Success 200 {object} httpx.StatusResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse "Event not found"
// @Router /events/{eventID} [delete]
func deleteEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperr.ErrUnauthenticated)
			return
		}

		if err := svc.Delete(r.Context(), uid, chi.URLParam(r, "eventID")); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.Deleted(w)
	}
}

// completeEventHandler godoc
// @Summary Completar evento
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "ID del evento"
// @Success 200 {object} eventResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse "Event not found"
// @Router /events/{eventID}/complete [patch]
func completeEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperr.ErrUnauthenticated)
			return
		}

		e, err := svc.Complete(r.Context(), uid, chi.URLParam(r, "eventID"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toEventResponse(e))
	}
}

func toEventResponse(e Event) eventResponse {
	return eventResponse{
		ID:        e.ID,
		PetID:     e.PetID,
		Type:      e.Type,
		Title:     e.Title,
		StartAt:   e.StartAt,
		EndAt:     e.EndAt,
		Location:  e.Location,
		Notes:     e.Notes,
		Status:    e.Status,
		CreatedAt: e.CreatedAt,
	}
}
