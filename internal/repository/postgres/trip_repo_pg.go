package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/globetrotter-app/globetrotter-api/internal/domain"
	"github.com/globetrotter-app/globetrotter-api/internal/repository/ports"
)

const tripColumns = `id, user_id, name, start_date, end_date, description, cover_image_url, budget_total, share_slug, is_public, created_at, updated_at`

// Correlated subqueries keep the cost aggregate correct when a trip has
// both several stops and several expenses; a flat LEFT JOIN would
// multiply rows and overcount.
const tripAggregates = `
        COALESCE((SELECT SUM(ta.cost)
                  FROM trip_activities ta
                  JOIN trip_stops ts ON ts.id = ta.trip_stop_id
                  WHERE ts.trip_id = t.id), 0)
      + COALESCE((SELECT SUM(e.amount) FROM expenses e WHERE e.trip_id = t.id), 0) AS estimated_total_cost,
        (SELECT COUNT(*) FROM trip_stops ts WHERE ts.trip_id = t.id) AS city_count`

type TripRepository struct {
	db *sqlx.DB
}

func NewTripRepo(db *sqlx.DB) *TripRepository {
	return &TripRepository{db: db}
}

func (r *TripRepository) Create(ctx context.Context, userID uuid.UUID, fields ports.TripFields) (*domain.Trip, error) {
	const query = `
        INSERT INTO trips (user_id, name, start_date, end_date, description, cover_image_url, budget_total)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + tripColumns

	row := r.db.QueryRowxContext(ctx, query, userID, fields.Name, fields.StartDate, fields.EndDate,
		fields.Description, fields.CoverImageURL, fields.BudgetTotal)
	var trip domain.Trip
	if err := row.StructScan(&trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *TripRepository) FindByID(ctx context.Context, userID, tripID uuid.UUID) (*domain.Trip, error) {
	const query = `SELECT ` + tripColumns + ` FROM trips WHERE id = $1 AND user_id = $2`
	var trip domain.Trip
	if err := r.db.GetContext(ctx, &trip, query, tripID, userID); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *TripRepository) ListSummaries(ctx context.Context, userID uuid.UUID) ([]domain.TripSummary, error) {
	const query = `
        SELECT t.id, t.name, t.start_date, t.end_date, t.cover_image_url,` + tripAggregates + `
        FROM trips t
        WHERE t.user_id = $1
        ORDER BY t.start_date ASC`

	summaries := []domain.TripSummary{}
	if err := r.db.SelectContext(ctx, &summaries, query, userID); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *TripRepository) Update(ctx context.Context, userID, tripID uuid.UUID, fields ports.TripFields) (*domain.Trip, error) {
	const query = `
        UPDATE trips
        SET name = $3,
            start_date = $4,
            end_date = $5,
            description = $6,
            cover_image_url = $7,
            budget_total = $8,
            updated_at = NOW()
        WHERE id = $1 AND user_id = $2
        RETURNING ` + tripColumns

	row := r.db.QueryRowxContext(ctx, query, tripID, userID, fields.Name, fields.StartDate,
		fields.EndDate, fields.Description, fields.CoverImageURL, fields.BudgetTotal)
	var trip domain.Trip
	if err := row.StructScan(&trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *TripRepository) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = $1 AND user_id = $2`, tripID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *TripRepository) SetShareSlug(ctx context.Context, tripID uuid.UUID, slug string) error {
	const query = `
        UPDATE trips SET share_slug = $2, is_public = TRUE, updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, tripID, slug)
	return err
}

func (r *TripRepository) FindPublicBySlug(ctx context.Context, slug string) (*domain.PublicTrip, error) {
	const query = `
        SELECT t.id, t.name, t.start_date, t.end_date, t.cover_image_url, t.description,
               t.share_slug, u.full_name AS owner_name,` + tripAggregates + `
        FROM trips t
        JOIN users u ON u.id = t.user_id
        WHERE t.share_slug = $1 AND t.is_public = TRUE`

	var trip domain.PublicTrip
	if err := r.db.GetContext(ctx, &trip, query, slug); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *TripRepository) ListPublic(ctx context.Context, limit, offset int) ([]domain.PublicTrip, error) {
	const query = `
        SELECT t.id, t.name, t.start_date, t.end_date, t.cover_image_url, t.description,
               t.share_slug, u.full_name AS owner_name,` + tripAggregates + `
        FROM trips t
        JOIN users u ON u.id = t.user_id
        WHERE t.is_public = TRUE AND t.share_slug IS NOT NULL
        ORDER BY t.updated_at DESC
        LIMIT $1 OFFSET $2`

	trips := []domain.PublicTrip{}
	if err := r.db.SelectContext(ctx, &trips, query, limit, offset); err != nil {
		return nil, err
	}
	return trips, nil
}
