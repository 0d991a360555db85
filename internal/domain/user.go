package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Email           string    `db:"email" json:"email"`
	FullName        string    `db:"full_name" json:"full_name"`
	Phone           *string   `db:"phone" json:"phone,omitempty"`
	City            *string   `db:"city" json:"city,omitempty"`
	Country         *string   `db:"country" json:"country,omitempty"`
	About           *string   `db:"about" json:"about,omitempty"`
	ProfileImageURL *string   `db:"profile_image_url" json:"profile_image_url,omitempty"`
	PasswordHash    []byte    `db:"password_hash" json:"-"`
	PasswordSalt    []byte    `db:"password_salt" json:"-"`
	IsAdmin         bool      `db:"is_admin" json:"is_admin"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
