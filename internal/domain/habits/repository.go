package habits

import "context"

type Repository interface {
	Create(ctx context.Context, h Habit) error
	GetByID(ctx context.Context, id string) (Habit, error)
	ListByPet(ctx context.Context, petID string) ([]Habit, error)
	Update(ctx context.Context, h Habit) error
	Delete(ctx context.Context, id string) error
}
