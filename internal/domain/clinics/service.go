package clinics

import (
	"context"
	"errors"
	"strings"

	"petify/internal/platform/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search devuelve todas las clínicas. Lat/Lng/Radius se validan en el borde
// pero todavía no filtran (no hay geo-búsqueda).
func (s *Service) Search(ctx context.Context, _ SearchQuery) ([]Clinic, error) {
	return s.repo.List(ctx)
}

// Get devuelve nil, nil si la clínica no existe: la API responde null con 200.
func (s *Service) Get(ctx context.Context, id string) (*Clinic, error) {
	c, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
