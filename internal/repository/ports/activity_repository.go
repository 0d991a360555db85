package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/globetrotter-app/globetrotter-api/internal/domain"
)

type ActivityRepository interface {
	FindByNameCategory(ctx context.Context, name string, category *string) (*domain.Activity, error)
	Create(ctx context.Context, name string, category *string) (*domain.Activity, error)
	Attach(ctx context.Context, tripStopID, activityID uuid.UUID, scheduledDate *time.Time, cost *float64) (*domain.TripActivity, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.TripActivity, error)
}
