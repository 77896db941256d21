package healthrecords

import "context"

type Repository interface {
	Create(ctx context.Context, h HealthRecord) error
	GetByID(ctx context.Context, id string) (HealthRecord, error)
	ListByPet(ctx context.Context, petID string) ([]HealthRecord, error)
	Update(ctx context.Context, h HealthRecord) error
	Delete(ctx context.Context, id string) error
}
