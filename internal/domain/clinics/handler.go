package clinics

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"petify/internal/platform/apperr"
	"petify/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/clinics/search", searchClinicsHandler(svc))
	r.Get("/clinics/{clinicID}", getClinicHandler(svc))
}

type clinicResponse struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Address *string  `json:"address"`
	Phone   *string  `json:"phone"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
	Source  *string  `json:"source"`
}

type searchResponse struct {
	Items []clinicResponse `json:"items"`
}

// searchClinicsHandler godoc
// @Summary Buscar clínicas
// @Description lat, lng y radius son obligatorios; por ahora se devuelven todas las clínicas.
// @Tags clinics
// @Produce json
// @Security BearerAuth
// @Param lat query number true "Latitud"
// @Param lng query number true "Longitud"
// @Param radius query int true "Radio en metros"
// @Success 200 {object} searchResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /clinics/search [get]
func searchClinicsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseSearchQuery(r)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		items, err := svc.Search(r.Context(), q)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		out := searchResponse{Items: make([]clinicResponse, 0, len(items))}
		for _, c := range items {
			out.Items = append(out.Items, toClinicResponse(c))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// getClinicHandler godoc
// @Summary Ver clínica
// @Description Si la clínica no existe responde 200 con body null.
// @Tags clinics
// @Produce json
// @Security BearerAuth
// @Param clinicID path string true "ID de la clínica"
// @Success 200 {object} clinicResponse
// @Router /clinics/{clinicID} [get]
func getClinicHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.Get(r.Context(), chi.URLParam(r, "clinicID"))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		if c == nil {
			httpx.WriteJSON(w, http.StatusOK, nil)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toClinicResponse(*c))
	}
}

func parseSearchQuery(r *http.Request) (SearchQuery, error) {
	vals := r.URL.Query()
	fields := map[string]string{}
	var q SearchQuery

	parseFloat := func(name string, dst *float64) {
		raw := strings.TrimSpace(vals.Get(name))
		if raw == "" {
			fields[name] = "is required"
			return
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fields[name] = "must be a number"
			return
		}
		*dst = v
	}
	parseFloat("lat", &q.Lat)
	parseFloat("lng", &q.Lng)

	if raw := strings.TrimSpace(vals.Get("radius")); raw == "" {
		fields["radius"] = "is required"
	} else if v, err := strconv.Atoi(raw); err != nil {
		fields["radius"] = "must be an integer"
	} else {
		q.Radius = v
	}

	if len(fields) > 0 {
		return SearchQuery{}, &apperr.ValidationError{Fields: fields}
	}
	return q, nil
}

func toClinicResponse(c Clinic) clinicResponse {
	return clinicResponse{
		ID:      c.ID,
		Name:    c.Name,
		Address: c.Address,
		Phone:   c.Phone,
		Lat:     c.Lat,
		Lng:     c.Lng,
		Source:  c.Source,
	}
}
