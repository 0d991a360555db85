package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/globetrotter-app/globetrotter-api/internal/domain"
)

type UserProfileUpdate struct {
	FullName        *string
	Phone           *string
	City            *string
	Country         *string
	About           *string
	ProfileImageURL *string
}

type UserRepository interface {
	Create(ctx context.Context, fullName, email string, passwordHash, passwordSalt []byte, profile UserProfileUpdate) (*domain.User, error)
	UpsertByEmail(ctx context.Context, email string, fullName *string, imageURL *string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update UserProfileUpdate) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
}
