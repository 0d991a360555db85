package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/globetrotter-app/globetrotter-api/internal/domain"
	"github.com/globetrotter-app/globetrotter-api/internal/repository/ports"
	"github.com/globetrotter-app/globetrotter-api/internal/util"
)

var (
	ErrTripNotFound   = errors.New("trip not found")
	ErrStopNotFound   = errors.New("stop not found")
	ErrTripValidation = errors.New("validation error")
)

const (
	defaultCityPopularity = 50
	defaultCityCostIndex  = 50
	defaultCityTimezone   = "UTC"

	shareSlugLength = 7
)

type TripService struct {
	trips      ports.TripRepository
	stops      ports.StopRepository
	cities     ports.CityRepository
	activities ports.ActivityRepository
	expenses   ports.ExpenseRepository
}

func NewTripService(trips ports.TripRepository, stops ports.StopRepository, cities ports.CityRepository,
	activities ports.ActivityRepository, expenses ports.ExpenseRepository) *TripService {
	return &TripService{
		trips:      trips,
		stops:      stops,
		cities:     cities,
		activities: activities,
		expenses:   expenses,
	}
}

type TripInput struct {
	Name          string
	StartDate     *time.Time
	EndDate       *time.Time
	Description   *string
	CoverImageURL *string
	BudgetTotal   *float64
}

// TripDetail is the single-trip read: the trip plus its ordered stops and
// every activity attached to any of those stops.
type TripDetail struct {
	Trip       *domain.Trip          `json:"trip"`
	Stops      []domain.TripStop     `json:"stops"`
	Activities []domain.TripActivity `json:"activities"`
}

type ShareResult struct {
	ShareSlug string `json:"share_slug"`
	PublicURL string `json:"public_url"`
}

func (s *TripService) List(ctx context.Context, userID uuid.UUID) ([]domain.TripSummary, error) {
	return s.trips.ListSummaries(ctx, userID)
}

func (s *TripService) Create(ctx context.Context, userID uuid.UUID, input TripInput) (*domain.Trip, error) {
	fields, err := tripFieldsFromInput(input)
	if err != nil {
		return nil, err
	}
	return s.trips.Create(ctx, userID, fields)
}

func (s *TripService) Get(ctx context.Context, userID, tripID uuid.UUID) (*TripDetail, error) {
	trip, err := s.trips.FindByID(ctx, userID, tripID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}

	stops, err := s.stops.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	activities, err := s.activities.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	return &TripDetail{Trip: trip, Stops: stops, Activities: activities}, nil
}

// Update full-replaces the mutable fields; omitted optional fields are
// cleared, not kept.
func (s *TripService) Update(ctx context.Context, userID, tripID uuid.UUID, input TripInput) (*domain.Trip, error) {
	fields, err := tripFieldsFromInput(input)
	if err != nil {
		return nil, err
	}
	trip, err := s.trips.Update(ctx, userID, tripID, fields)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return trip, nil
}

func (s *TripService) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	if err := s.trips.Delete(ctx, userID, tripID); err != nil {
		if isNotFound(err) {
			return ErrTripNotFound
		}
		return err
	}
	return nil
}

// Share assigns the public slug on first call and returns the existing
// one afterwards; a trip's share URL never changes once handed out.
func (s *TripService) Share(ctx context.Context, userID, tripID uuid.UUID) (*ShareResult, error) {
	trip, err := s.trips.FindByID(ctx, userID, tripID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}

	slug := ""
	if trip.ShareSlug != nil {
		slug = *trip.ShareSlug
	} else {
		slug, err = util.GenerateShareSlug(shareSlugLength)
		if err != nil {
			return nil, err
		}
		if err := s.trips.SetShareSlug(ctx, tripID, slug); err != nil {
			return nil, err
		}
	}

	return &ShareResult{ShareSlug: slug, PublicURL: "/p/" + slug}, nil
}

type StopInput struct {
	CityName  string
	Country   string
	StartDate *time.Time
	EndDate   *time.Time
	Notes     *string
}

func (s *TripService) AddStop(ctx context.Context, userID, tripID uuid.UUID, input StopInput) (*domain.TripStop, error) {
	fields, err := s.resolveStopFields(ctx, userID, tripID, input)
	if err != nil {
		return nil, err
	}
	return s.stops.Create(ctx, tripID, *fields)
}

// UpdateStop re-resolves the city from (name, country) and rewrites all
// stop fields; the position is left alone.
func (s *TripService) UpdateStop(ctx context.Context, userID, tripID, stopID uuid.UUID, input StopInput) (*domain.TripStop, error) {
	fields, err := s.resolveStopFields(ctx, userID, tripID, input)
	if err != nil {
		return nil, err
	}
	stop, err := s.stops.Update(ctx, tripID, stopID, *fields)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrStopNotFound
		}
		return nil, err
	}
	return stop, nil
}

func (s *TripService) DeleteStop(ctx context.Context, userID, tripID, stopID uuid.UUID) error {
	if err := s.requireTrip(ctx, userID, tripID); err != nil {
		return err
	}
	if err := s.stops.Delete(ctx, tripID, stopID); err != nil {
		if isNotFound(err) {
			return ErrStopNotFound
		}
		return err
	}
	return nil
}

type ActivityInput struct {
	Name          string
	Category      *string
	ScheduledDate *time.Time
	Cost          *float64
}

// AddActivity attaches an activity to a stop, creating the catalog row on
// first use of a (name, category) pair.
func (s *TripService) AddActivity(ctx context.Context, userID, tripID, stopID uuid.UUID, input ActivityInput) (*domain.TripActivity, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: activity name is required", ErrTripValidation)
	}
	if err := s.requireTrip(ctx, userID, tripID); err != nil {
		return nil, err
	}

	activity, err := s.activities.FindByNameCategory(ctx, strings.TrimSpace(input.Name), input.Category)
	if err != nil {
		if !isNotFound(err) {
			return nil, err
		}
		activity, err = s.activities.Create(ctx, strings.TrimSpace(input.Name), input.Category)
		if err != nil {
			return nil, err
		}
	}

	attached, err := s.activities.Attach(ctx, stopID, activity.ID, input.ScheduledDate, input.Cost)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrStopNotFound
		}
		return nil, err
	}
	return attached, nil
}

func (s *TripService) AddExpense(ctx context.Context, userID, tripID uuid.UUID, description *string, amount float64) (*domain.Expense, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrTripValidation)
	}
	if err := s.requireTrip(ctx, userID, tripID); err != nil {
		return nil, err
	}
	return s.expenses.Create(ctx, tripID, description, amount)
}

func (s *TripService) GetBySlug(ctx context.Context, slug string) (*domain.PublicTrip, []domain.TripStop, []domain.TripActivity, error) {
	trip, err := s.trips.FindPublicBySlug(ctx, slug)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, nil, ErrTripNotFound
		}
		return nil, nil, nil, err
	}
	stops, err := s.stops.ListByTrip(ctx, trip.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	activities, err := s.activities.ListByTrip(ctx, trip.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	return trip, stops, activities, nil
}

func (s *TripService) ListPublic(ctx context.Context, limit, offset int) ([]domain.PublicTrip, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.trips.ListPublic(ctx, limit, offset)
}

func (s *TripService) requireTrip(ctx context.Context, userID, tripID uuid.UUID) error {
	if _, err := s.trips.FindByID(ctx, userID, tripID); err != nil {
		if isNotFound(err) {
			return ErrTripNotFound
		}
		return err
	}
	return nil
}

func (s *TripService) resolveStopFields(ctx context.Context, userID, tripID uuid.UUID, input StopInput) (*ports.StopFields, error) {
	cityName := strings.TrimSpace(input.CityName)
	country := strings.TrimSpace(input.Country)
	if cityName == "" || country == "" || input.StartDate == nil || input.EndDate == nil {
		return nil, fmt.Errorf("%w: city, country and dates are required", ErrTripValidation)
	}
	if err := s.requireTrip(ctx, userID, tripID); err != nil {
		return nil, err
	}

	city, err := s.cities.FindByNameCountry(ctx, cityName, country)
	if err != nil {
		if !isNotFound(err) {
			return nil, err
		}
		city, err = s.cities.Create(ctx, cityName, country, defaultCityPopularity, defaultCityCostIndex, defaultCityTimezone)
		if err != nil {
			return nil, err
		}
	}

	return &ports.StopFields{
		CityID:    city.ID,
		StartDate: *input.StartDate,
		EndDate:   *input.EndDate,
		Notes:     input.Notes,
	}, nil
}

func tripFieldsFromInput(input TripInput) (ports.TripFields, error) {
	if strings.TrimSpace(input.Name) == "" || input.StartDate == nil || input.EndDate == nil {
		return ports.TripFields{}, fmt.Errorf("%w: name and dates are required", ErrTripValidation)
	}
	return ports.TripFields{
		Name:          strings.TrimSpace(input.Name),
		StartDate:     *input.StartDate,
		EndDate:       *input.EndDate,
		Description:   input.Description,
		CoverImageURL: input.CoverImageURL,
		BudgetTotal:   input.BudgetTotal,
	}, nil
}
