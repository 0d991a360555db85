package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/globetrotter-app/globetrotter-api/internal/domain"
)

type ExpenseRepository struct {
	db *sqlx.DB
}

func NewExpenseRepo(db *sqlx.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, tripID uuid.UUID, description *string, amount float64) (*domain.Expense, error) {
	const query = `
        INSERT INTO expenses (trip_id, description, amount)
        VALUES ($1, $2, $3)
        RETURNING id, trip_id, description, amount, created_at`

	row := r.db.QueryRowxContext(ctx, query, tripID, description, amount)
	var expense domain.Expense
	if err := row.StructScan(&expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *ExpenseRepository) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	const query = `
        SELECT id, trip_id, description, amount, created_at
        FROM expenses
        WHERE trip_id = $1
        ORDER BY created_at ASC`

	expenses := []domain.Expense{}
	if err := r.db.SelectContext(ctx, &expenses, query, tripID); err != nil {
		return nil, err
	}
	return expenses, nil
}
