package habits

import "time"

type Habit struct {
	ID          string
	PetID       string
	Title       string
	Description *string
	CreatedAt   time.Time
}
