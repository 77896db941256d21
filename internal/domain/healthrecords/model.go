package healthrecords

import "time"

type HealthRecord struct {
	ID         string
	PetID      string
	RecordType string // vaccination, checkup, treatment... texto libre
	Title      string
	Details    *string
	RecordDate *string
	CreatedAt  time.Time
}
