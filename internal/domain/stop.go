package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripStop is an ordered city segment within a trip ("section" in the UI).
// Position starts at 1 and is assigned as max(position)+1 at insert time;
// deleting a stop never renumbers the rest, so gaps are normal.
// CityName and CityCountry are denormalized from the cities join for display.
type TripStop struct {
	ID          uuid.UUID `db:"id" json:"id"`
	TripID      uuid.UUID `db:"trip_id" json:"trip_id"`
	CityID      uuid.UUID `db:"city_id" json:"city_id"`
	Position    int       `db:"position" json:"position"`
	StartDate   time.Time `db:"start_date" json:"start_date"`
	EndDate     time.Time `db:"end_date" json:"end_date"`
	Notes       *string   `db:"notes" json:"notes,omitempty"`
	CityName    string    `db:"city_name" json:"city_name"`
	CityCountry string    `db:"city_country" json:"country"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
