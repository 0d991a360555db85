package service

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/api/idtoken"

	"github.com/globetrotter-app/globetrotter-api/internal/domain"
	"github.com/globetrotter-app/globetrotter-api/internal/repository/ports"
	"github.com/globetrotter-app/globetrotter-api/internal/util"
)

var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrSignupValidation   = errors.New("full name, email and password are required")
	ErrLoginValidation    = errors.New("email and password are required")
)

type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	jwt      *util.JWTManager
	aud      string
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionRepository, jwt *util.JWTManager, googleAud string) *AuthService {
	return &AuthService{users: users, sessions: sessions, jwt: jwt, aud: googleAud}
}

type SignupInput struct {
	FullName string
	Email    string
	Password string
	Phone    *string
	City     *string
	Country  *string
	About    *string
}

// Signup registers a new account. The email existence check runs before
// the insert, and the users.email unique constraint backstops the race
// between the two; either path reports ErrEmailTaken.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*domain.User, string, error) {
	fullName := strings.TrimSpace(input.FullName)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if fullName == "" || email == "" || input.Password == "" {
		return nil, "", ErrSignupValidation
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !isNotFound(err) {
		return nil, "", err
	}

	hash, salt, err := util.DerivePassword(input.Password)
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.Create(ctx, fullName, email, hash, salt, ports.UserProfileUpdate{
		Phone:   input.Phone,
		City:    input.City,
		Country: input.Country,
		About:   input.About,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login deliberately reports the same error for an unknown email and a
// wrong password. Missing fields are a validation error, not an auth
// failure.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", ErrLoginValidation
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !util.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// LoginWithGoogle exchanges a verified Google ID token for a local
// account (created on first sign-in) and a bearer token.
func (s *AuthService) LoginWithGoogle(ctx context.Context, idTok string) (*domain.User, string, error) {
	payload, err := idtoken.Validate(ctx, idTok, s.aud)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, "", ErrInvalidCredentials
	}

	var fullName, imageURL *string
	if name, ok := payload.Claims["name"].(string); ok && name != "" {
		fullName = &name
	}
	if picture, ok := payload.Claims["picture"].(string); ok && picture != "" {
		imageURL = &picture
	}

	user, err := s.users.UpsertByEmail(ctx, strings.ToLower(email), fullName, imageURL)
	if err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate resolves a bearer token to its user. The JWT signature and
// expiry are checked first, then the server-side session row, so a logged
// out token fails even while the JWT itself is still valid.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	session, err := s.sessions.FindActive(ctx, token)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if user.ID != claims.UserID {
		return nil, ErrInvalidToken
	}
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Deactivate(ctx, token)
}

func (s *AuthService) issueToken(ctx context.Context, user *domain.User) (string, error) {
	token, expiresAt, err := s.jwt.Generate(user.ID, user.Email)
	if err != nil {
		return "", err
	}
	if _, err := s.sessions.Create(ctx, user.ID, token, expiresAt); err != nil {
		return "", err
	}
	return token, nil
}
