package users

import "time"

type User struct {
	ID             string
	Email          string // siempre en minúsculas
	HashedPassword string

	IsActive    bool
	IsSuperuser bool
	IsVerified  bool

	CreatedAt time.Time
}
