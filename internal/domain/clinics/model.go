package clinics

import "time"

// Clinic no tiene dueño. Sólo lectura vía API; se carga con seed o importer.
type Clinic struct {
	ID      string
	Name    string
	Address *string
	Phone   *string
	Lat     *float64
	Lng     *float64
	Source  *string // "seed", "nominatim"

	CreatedAt time.Time
}

// SearchQuery: los tres son obligatorios en la API pero todavía no filtran.
type SearchQuery struct {
	Lat    float64
	Lng    float64
	Radius int
}
