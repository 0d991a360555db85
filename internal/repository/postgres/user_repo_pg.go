package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/globetrotter-app/globetrotter-api/internal/domain"
	"github.com/globetrotter-app/globetrotter-api/internal/repository/ports"
)

const userColumns = `id, email, full_name, phone, city, country, about, profile_image_url, password_hash, password_salt, is_admin, created_at, updated_at`

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, fullName, email string, passwordHash, passwordSalt []byte, profile ports.UserProfileUpdate) (*domain.User, error) {
	const query = `
        INSERT INTO users (full_name, email, password_hash, password_salt, phone, city, country, about, profile_image_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING ` + userColumns

	row := r.db.QueryRowxContext(ctx, query, fullName, email, passwordHash, passwordSalt,
		profile.Phone, profile.City, profile.Country, profile.About, profile.ProfileImageURL)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpsertByEmail(ctx context.Context, email string, fullName *string, imageURL *string) (*domain.User, error) {
	const query = `
        INSERT INTO users (email, full_name, profile_image_url)
        VALUES ($1, COALESCE($2, ''), $3)
        ON CONFLICT (email) DO UPDATE
        SET full_name = COALESCE(NULLIF(EXCLUDED.full_name, ''), users.full_name),
            profile_image_url = COALESCE(EXCLUDED.profile_image_url, users.profile_image_url),
            updated_at = NOW()
        RETURNING ` + userColumns

	row := r.db.QueryRowxContext(ctx, query, email, fullName, imageURL)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile merges field by field: a nil pointer keeps the stored value.
func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, update ports.UserProfileUpdate) (*domain.User, error) {
	const query = `
        UPDATE users
        SET full_name = COALESCE($2, full_name),
            phone = COALESCE($3, phone),
            city = COALESCE($4, city),
            country = COALESCE($5, country),
            about = COALESCE($6, about),
            profile_image_url = COALESCE($7, profile_image_url),
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + userColumns

	row := r.db.QueryRowxContext(ctx, query, id, update.FullName, update.Phone,
		update.City, update.Country, update.About, update.ProfileImageURL)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	users := []domain.User{}
	if err := r.db.SelectContext(ctx, &users, query, limit, offset); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, err
	}
	return count, nil
}
