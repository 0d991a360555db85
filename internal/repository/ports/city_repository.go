package ports

import (
	"context"

	"github.com/globetrotter-app/globetrotter-api/internal/domain"
)

type CityRepository interface {
	FindByNameCountry(ctx context.Context, name, country string) (*domain.City, error)
	Create(ctx context.Context, name, country string, popularityScore, costIndex int, timezone string) (*domain.City, error)
}
