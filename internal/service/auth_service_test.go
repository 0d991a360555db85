package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/globetrotter-app/globetrotter-api/internal/domain"
	"github.com/globetrotter-app/globetrotter-api/internal/repository/ports"
	"github.com/globetrotter-app/globetrotter-api/internal/util"
)

type memoryUserRepo struct {
	byEmail map[string]*domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{byEmail: map[string]*domain.User{}}
}

func (r *memoryUserRepo) Create(ctx context.Context, fullName, email string, passwordHash, passwordSalt []byte, profile ports.UserProfileUpdate) (*domain.User, error) {
	if _, exists := r.byEmail[email]; exists {
		return nil, errAlwaysUnique{}
	}
	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		FullName:     fullName,
		Phone:        profile.Phone,
		City:         profile.City,
		Country:      profile.Country,
		About:        profile.About,
		PasswordHash: passwordHash,
		PasswordSalt: passwordSalt,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	r.byEmail[email] = user
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepo) UpsertByEmail(ctx context.Context, email string, fullName *string, imageURL *string) (*domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		name := email
		if fullName != nil {
			name = *fullName
		}
		user = &domain.User{ID: uuid.New(), Email: email, FullName: name, ProfileImageURL: imageURL}
		r.byEmail[email] = user
	} else {
		if fullName != nil {
			user.FullName = *fullName
		}
		if imageURL != nil {
			user.ProfileImageURL = imageURL
		}
	}
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range r.byEmail {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memoryUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, update ports.UserProfileUpdate) (*domain.User, error) {
	for _, user := range r.byEmail {
		if user.ID != id {
			continue
		}
		if update.FullName != nil {
			user.FullName = *update.FullName
		}
		if update.Phone != nil {
			user.Phone = update.Phone
		}
		if update.City != nil {
			user.City = update.City
		}
		if update.Country != nil {
			user.Country = update.Country
		}
		if update.About != nil {
			user.About = update.About
		}
		if update.ProfileImageURL != nil {
			user.ProfileImageURL = update.ProfileImageURL
		}
		copied := *user
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (r *memoryUserRepo) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users := []domain.User{}
	for _, user := range r.byEmail {
		users = append(users, *user)
	}
	return users, nil
}

func (r *memoryUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.byEmail)), nil
}

// errAlwaysUnique mimics a users.email unique constraint violation without
// a real database connection.
type errAlwaysUnique struct{}

func (errAlwaysUnique) Error() string { return "duplicate key value violates unique constraint" }

type memorySessionRepo struct {
	byToken map[string]*domain.Session
	nextID  int64
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{byToken: map[string]*domain.Session{}}
}

func (r *memorySessionRepo) Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (*domain.Session, error) {
	r.nextID++
	session := &domain.Session{
		ID:        r.nextID,
		UserID:    userID,
		Token:     token,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
		IsActive:  true,
	}
	r.byToken[token] = session
	copied := *session
	return &copied, nil
}

func (r *memorySessionRepo) FindActive(ctx context.Context, token string) (*domain.Session, error) {
	session, ok := r.byToken[token]
	if !ok || !session.IsActive || time.Now().After(session.ExpiresAt) {
		return nil, sql.ErrNoRows
	}
	copied := *session
	return &copied, nil
}

func (r *memorySessionRepo) Deactivate(ctx context.Context, token string) error {
	if session, ok := r.byToken[token]; ok {
		session.IsActive = false
	}
	return nil
}

func newAuthFixture() (*AuthService, *memoryUserRepo, *memorySessionRepo) {
	users := newMemoryUserRepo()
	sessions := newMemorySessionRepo()
	jwt := util.NewJWTManager("test-secret", time.Hour)
	return NewAuthService(users, sessions, jwt, ""), users, sessions
}

func signupInput() SignupInput {
	return SignupInput{FullName: "Ada Lovelace", Email: "ada@example.com", Password: "correct horse"}
}

func TestAuthServiceSignup(t *testing.T) {
	svc, users, sessions := newAuthFixture()
	ctx := context.Background()

	user, token, err := svc.Signup(ctx, signupInput())
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("expected normalized email, got %s", user.Email)
	}
	if token == "" {
		t.Fatalf("expected a token on signup")
	}
	if len(users.byEmail) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users.byEmail))
	}
	if _, err := sessions.FindActive(ctx, token); err != nil {
		t.Fatalf("expected an active session for the signup token: %v", err)
	}
}

func TestAuthServiceSignupNormalizesEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	input := signupInput()
	input.Email = "  Ada@Example.COM "
	user, _, err := svc.Signup(ctx, input)
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("expected lowercased trimmed email, got %q", user.Email)
	}
}

func TestAuthServiceSignupDuplicateEmail(t *testing.T) {
	svc, users, _ := newAuthFixture()
	ctx := context.Background()

	if _, _, err := svc.Signup(ctx, signupInput()); err != nil {
		t.Fatalf("first Signup returned error: %v", err)
	}
	if _, _, err := svc.Signup(ctx, signupInput()); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(users.byEmail) != 1 {
		t.Fatalf("duplicate signup must not create a second user, got %d", len(users.byEmail))
	}
}

func TestAuthServiceSignupValidation(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	cases := []SignupInput{
		{Email: "ada@example.com", Password: "pw"},
		{FullName: "Ada", Password: "pw"},
		{FullName: "Ada", Email: "ada@example.com"},
		{FullName: "   ", Email: "ada@example.com", Password: "pw"},
	}
	for _, input := range cases {
		if _, _, err := svc.Signup(ctx, input); !errors.Is(err, ErrSignupValidation) {
			t.Fatalf("expected ErrSignupValidation for %+v, got %v", input, err)
		}
	}
}

func TestAuthServiceLogin(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	if _, _, err := svc.Signup(ctx, signupInput()); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}

	user, token, err := svc.Login(ctx, "ada@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" || user == nil {
		t.Fatalf("expected user and token from login")
	}

	// Unknown email and wrong password must be indistinguishable.
	_, _, wrongPass := svc.Login(ctx, "ada@example.com", "wrong")
	_, _, unknown := svc.Login(ctx, "nobody@example.com", "correct horse")
	if !errors.Is(wrongPass, ErrInvalidCredentials) || !errors.Is(unknown, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both failure modes, got %v and %v", wrongPass, unknown)
	}
}

func TestAuthServiceLoginMissingFields(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	if _, _, err := svc.Signup(ctx, signupInput()); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}

	// Missing fields are a validation error, distinct from bad
	// credentials, so the handler can answer 400 instead of 401.
	cases := []struct{ email, password string }{
		{"", ""},
		{"ada@example.com", ""},
		{"", "correct horse"},
		{"   ", "correct horse"},
	}
	for _, tc := range cases {
		_, _, err := svc.Login(ctx, tc.email, tc.password)
		if !errors.Is(err, ErrLoginValidation) {
			t.Fatalf("expected ErrLoginValidation for (%q, %q), got %v", tc.email, tc.password, err)
		}
	}
}

func TestAuthServiceAuthenticate(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	created, token, err := svc.Signup(ctx, signupInput())
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}

	user, err := svc.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("expected user %s, got %s", created.ID, user.ID)
	}

	if _, err := svc.Authenticate(ctx, "not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage token, got %v", err)
	}
}

func TestAuthServiceLogoutRevokesToken(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, token, err := svc.Signup(ctx, signupInput())
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	// The JWT is still within its validity window, but the session row is
	// deactivated, so the token must be rejected.
	if _, err := svc.Authenticate(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after logout, got %v", err)
	}
}

func TestAuthServiceTokenFromForeignSecret(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	other := util.NewJWTManager("other-secret", time.Hour)
	forged, _, err := other.Generate(uuid.New(), "mallory@example.com")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if _, err := svc.Authenticate(ctx, forged); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}
