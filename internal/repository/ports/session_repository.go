package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/globetrotter-app/globetrotter-api/internal/domain"
)

type SessionRepository interface {
	Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (*domain.Session, error)
	FindActive(ctx context.Context, token string) (*domain.Session, error)
	Deactivate(ctx context.Context, token string) error
}
