package domain

import (
	"time"

	"github.com/google/uuid"
)

type Trip struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	UserID        uuid.UUID  `db:"user_id" json:"user_id"`
	Name          string     `db:"name" json:"name"`
	StartDate     time.Time  `db:"start_date" json:"start_date"`
	EndDate       time.Time  `db:"end_date" json:"end_date"`
	Description   *string    `db:"description" json:"description,omitempty"`
	CoverImageURL *string    `db:"cover_image_url" json:"cover_image_url,omitempty"`
	BudgetTotal   *float64   `db:"budget_total" json:"budget_total,omitempty"`
	ShareSlug     *string    `db:"share_slug" json:"share_slug,omitempty"`
	IsPublic      bool       `db:"is_public" json:"is_public"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// TripSummary is a trips row decorated with the aggregates the list and
// community views show. Both numbers are computed in SQL at read time and
// never stored: estimated_total_cost is the sum of attached activity costs
// plus ad hoc expenses, city_count the number of stops.
type TripSummary struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	Name               string    `db:"name" json:"name"`
	StartDate          time.Time `db:"start_date" json:"start_date"`
	EndDate            time.Time `db:"end_date" json:"end_date"`
	CoverImageURL      *string   `db:"cover_image_url" json:"cover_image_url,omitempty"`
	EstimatedTotalCost float64   `db:"estimated_total_cost" json:"estimated_total_cost"`
	CityCount          int       `db:"city_count" json:"city_count"`
}

// PublicTrip is a shared trip as seen through its slug, with the owner's
// display name attached for the community feed.
type PublicTrip struct {
	TripSummary
	Description *string `db:"description" json:"description,omitempty"`
	ShareSlug   string  `db:"share_slug" json:"share_slug"`
	OwnerName   string  `db:"owner_name" json:"owner_name"`
}
