package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/globetrotter-app/globetrotter-api/internal/domain"
	"github.com/globetrotter-app/globetrotter-api/internal/repository/ports"
)

const stopColumns = `ts.id, ts.trip_id, ts.city_id, ts.position, ts.start_date, ts.end_date, ts.notes,
               c.name AS city_name, c.country AS city_country, ts.created_at, ts.updated_at`

type StopRepository struct {
	db *sqlx.DB
}

func NewStopRepo(db *sqlx.DB) *StopRepository {
	return &StopRepository{db: db}
}

// Create computes the next position inside the INSERT itself so two
// concurrent additions to the same trip cannot read the same maximum.
func (r *StopRepository) Create(ctx context.Context, tripID uuid.UUID, fields ports.StopFields) (*domain.TripStop, error) {
	const query = `
        WITH inserted AS (
            INSERT INTO trip_stops (trip_id, city_id, position, start_date, end_date, notes)
            SELECT $1, $2, COALESCE(MAX(position), 0) + 1, $3, $4, $5
            FROM trip_stops
            WHERE trip_id = $1
            RETURNING *
        )
        SELECT ` + stopColumns + `
        FROM inserted ts
        LEFT JOIN cities c ON c.id = ts.city_id`

	row := r.db.QueryRowxContext(ctx, query, tripID, fields.CityID, fields.StartDate, fields.EndDate, fields.Notes)
	var stop domain.TripStop
	if err := row.StructScan(&stop); err != nil {
		return nil, err
	}
	return &stop, nil
}

func (r *StopRepository) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.TripStop, error) {
	const query = `
        SELECT ` + stopColumns + `
        FROM trip_stops ts
        LEFT JOIN cities c ON c.id = ts.city_id
        WHERE ts.trip_id = $1
        ORDER BY ts.position ASC`

	stops := []domain.TripStop{}
	if err := r.db.SelectContext(ctx, &stops, query, tripID); err != nil {
		return nil, err
	}
	return stops, nil
}

func (r *StopRepository) Update(ctx context.Context, tripID, stopID uuid.UUID, fields ports.StopFields) (*domain.TripStop, error) {
	const query = `
        WITH updated AS (
            UPDATE trip_stops
            SET city_id = $3,
                start_date = $4,
                end_date = $5,
                notes = $6,
                updated_at = NOW()
            WHERE id = $1 AND trip_id = $2
            RETURNING *
        )
        SELECT ` + stopColumns + `
        FROM updated ts
        LEFT JOIN cities c ON c.id = ts.city_id`

	row := r.db.QueryRowxContext(ctx, query, stopID, tripID, fields.CityID, fields.StartDate, fields.EndDate, fields.Notes)
	var stop domain.TripStop
	if err := row.StructScan(&stop); err != nil {
		return nil, err
	}
	return &stop, nil
}

// Delete removes the row outright; surviving stops keep their positions,
// so the sequence may have gaps afterwards.
func (r *StopRepository) Delete(ctx context.Context, tripID, stopID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trip_stops WHERE id = $1 AND trip_id = $2`, stopID, tripID)
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
