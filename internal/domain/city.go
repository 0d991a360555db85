package domain

import (
	"time"

	"github.com/google/uuid"
)

// City rows are created lazily the first time a stop references a
// (name, country) pair that has not been seen before. Uniqueness of the
// pair is an existence check, not a schema constraint.
type City struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Country         string    `db:"country" json:"country"`
	PopularityScore int       `db:"popularity_score" json:"popularity_score"`
	CostIndex       int       `db:"cost_index" json:"cost_index"`
	Timezone        string    `db:"timezone" json:"timezone"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
