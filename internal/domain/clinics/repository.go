package clinics

import "context"

type Repository interface {
	List(ctx context.Context) ([]Clinic, error)
	GetByID(ctx context.Context, id string) (Clinic, error)
	Create(ctx context.Context, c Clinic) error
	// ExistsByNameAddress evita duplicar clínicas en imports repetidos.
	ExistsByNameAddress(ctx context.Context, name string, address *string) (bool, error)
}
