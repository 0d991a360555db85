package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/globetrotter-app/globetrotter-api/internal/domain"
)

const cityColumns = `id, name, country, popularity_score, cost_index, timezone, created_at`

type CityRepository struct {
	db *sqlx.DB
}

func NewCityRepo(db *sqlx.DB) *CityRepository {
	return &CityRepository{db: db}
}

func (r *CityRepository) FindByNameCountry(ctx context.Context, name, country string) (*domain.City, error) {
	const query = `SELECT ` + cityColumns + ` FROM cities WHERE name = $1 AND country = $2 LIMIT 1`
	var city domain.City
	if err := r.db.GetContext(ctx, &city, query, name, country); err != nil {
		return nil, err
	}
	return &city, nil
}

func (r *CityRepository) Create(ctx context.Context, name, country string, popularityScore, costIndex int, timezone string) (*domain.City, error) {
	const query = `
        INSERT INTO cities (name, country, popularity_score, cost_index, timezone)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + cityColumns

	row := r.db.QueryRowxContext(ctx, query, name, country, popularityScore, costIndex, timezone)
	var city domain.City
	if err := row.StructScan(&city); err != nil {
		return nil, err
	}
	return &city, nil
}
