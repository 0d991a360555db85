package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a bookable item from the shared catalog. Attaching one to a
// stop creates a TripActivity join row carrying the per-trip details.
type Activity struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Category  *string   `db:"category" json:"category,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TripActivity is an activity scheduled on a specific stop. Name and
// Category come from the activities join; Cost feeds the trip's estimated
// total alongside expenses.
type TripActivity struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	TripStopID    uuid.UUID  `db:"trip_stop_id" json:"trip_stop_id"`
	ActivityID    uuid.UUID  `db:"activity_id" json:"activity_id"`
	ScheduledDate *time.Time `db:"scheduled_date" json:"scheduled_date,omitempty"`
	Cost          *float64   `db:"cost" json:"cost,omitempty"`
	Name          string     `db:"name" json:"name"`
	Category      *string    `db:"category" json:"category,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}
