package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/globetrotter-app/globetrotter-api/internal/domain"
)

type TripFields struct {
	Name          string
	StartDate     time.Time
	EndDate       time.Time
	Description   *string
	CoverImageURL *string
	BudgetTotal   *float64
}

// TripRepository scopes every single-trip operation by owner so that
// "doesn't exist" and "exists but not yours" are indistinguishable to
// callers: both surface as sql.ErrNoRows / zero rows affected.
type TripRepository interface {
	Create(ctx context.Context, userID uuid.UUID, fields TripFields) (*domain.Trip, error)
	FindByID(ctx context.Context, userID, tripID uuid.UUID) (*domain.Trip, error)
	ListSummaries(ctx context.Context, userID uuid.UUID) ([]domain.TripSummary, error)
	Update(ctx context.Context, userID, tripID uuid.UUID, fields TripFields) (*domain.Trip, error)
	Delete(ctx context.Context, userID, tripID uuid.UUID) error
	SetShareSlug(ctx context.Context, tripID uuid.UUID, slug string) error
	FindPublicBySlug(ctx context.Context, slug string) (*domain.PublicTrip, error)
	ListPublic(ctx context.Context, limit, offset int) ([]domain.PublicTrip, error)
}
