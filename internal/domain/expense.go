package domain

import (
	"time"

	"github.com/google/uuid"
)

// Expense is an ad hoc cost logged against a trip, independent of any stop.
// It contributes to the same estimated total as activity costs.
type Expense struct {
	ID          uuid.UUID `db:"id" json:"id"`
	TripID      uuid.UUID `db:"trip_id" json:"trip_id"`
	Description *string   `db:"description" json:"description,omitempty"`
	Amount      float64   `db:"amount" json:"amount"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
