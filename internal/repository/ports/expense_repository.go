package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/globetrotter-app/globetrotter-api/internal/domain"
)

type ExpenseRepository interface {
	Create(ctx context.Context, tripID uuid.UUID, description *string, amount float64) (*domain.Expense, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)
}
