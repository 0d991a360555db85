package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/globetrotter-app/globetrotter-api/internal/domain"
)

type ActivityRepository struct {
	db *sqlx.DB
}

func NewActivityRepo(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) FindByNameCategory(ctx context.Context, name string, category *string) (*domain.Activity, error) {
	const query = `
        SELECT id, name, category, created_at
        FROM activities
        WHERE name = $1 AND category IS NOT DISTINCT FROM $2
        LIMIT 1`

	var activity domain.Activity
	if err := r.db.GetContext(ctx, &activity, query, name, category); err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *ActivityRepository) Create(ctx context.Context, name string, category *string) (*domain.Activity, error) {
	const query = `
        INSERT INTO activities (name, category)
        VALUES ($1, $2)
        RETURNING id, name, category, created_at`

	row := r.db.QueryRowxContext(ctx, query, name, category)
	var activity domain.Activity
	if err := row.StructScan(&activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *ActivityRepository) Attach(ctx context.Context, tripStopID, activityID uuid.UUID, scheduledDate *time.Time, cost *float64) (*domain.TripActivity, error) {
	const query = `
        WITH inserted AS (
            INSERT INTO trip_activities (trip_stop_id, activity_id, scheduled_date, cost)
            VALUES ($1, $2, $3, $4)
            RETURNING *
        )
        SELECT ta.id, ta.trip_stop_id, ta.activity_id, ta.scheduled_date, ta.cost,
               a.name, a.category, ta.created_at
        FROM inserted ta
        JOIN activities a ON a.id = ta.activity_id`

	row := r.db.QueryRowxContext(ctx, query, tripStopID, activityID, scheduledDate, cost)
	var attached domain.TripActivity
	if err := row.StructScan(&attached); err != nil {
		return nil, err
	}
	return &attached, nil
}

func (r *ActivityRepository) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.TripActivity, error) {
	const query = `
        SELECT ta.id, ta.trip_stop_id, ta.activity_id, ta.scheduled_date, ta.cost,
               a.name, a.category, ta.created_at
        FROM trip_activities ta
        JOIN activities a ON a.id = ta.activity_id
        JOIN trip_stops ts ON ts.id = ta.trip_stop_id
        WHERE ts.trip_id = $1
        ORDER BY ta.scheduled_date ASC NULLS LAST, ta.created_at ASC`

	activities := []domain.TripActivity{}
	if err := r.db.SelectContext(ctx, &activities, query, tripID); err != nil {
		return nil, err
	}
	return activities, nil
}
