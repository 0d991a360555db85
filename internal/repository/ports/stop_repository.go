package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/globetrotter-app/globetrotter-api/internal/domain"
)

type StopFields struct {
	CityID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	Notes     *string
}

type StopRepository interface {
	// Create assigns position = max(position)+1 for the trip inside the
	// insert statement itself, so concurrent additions cannot observe the
	// same maximum.
	Create(ctx context.Context, tripID uuid.UUID, fields StopFields) (*domain.TripStop, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.TripStop, error)
	Update(ctx context.Context, tripID, stopID uuid.UUID, fields StopFields) (*domain.TripStop, error)
	Delete(ctx context.Context, tripID, stopID uuid.UUID) error
}
