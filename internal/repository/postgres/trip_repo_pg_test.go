package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/globetrotter-app/globetrotter-api/internal/repository/ports"
)

// testDB connects to the database named by TEST_DATABASE_URL and applies
// the migrations; tests are skipped when the variable is unset so the
// suite stays runnable without Postgres.
func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := New(dsn)
	if err != nil {
		t.Fatalf("connect to test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := RunMigrations(dsn, "file://../../../migrations"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *sqlx.DB) uuid.UUID {
	t.Helper()
	email := fmt.Sprintf("trips-%s@example.com", uuid.NewString())
	user, err := NewUserRepo(db).Create(context.Background(), "Aggregate Tester", email,
		[]byte("hash"), []byte("salt"), ports.UserProfileUpdate{})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user.ID
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fptr(v float64) *float64 { return &v }

// The estimated total must be sum(activity costs) + sum(expenses), each
// summed once. A flat join of activities and expenses multiplies rows
// (2 activities x 2 expenses here would double every term), so the exact
// figure is asserted.
func TestTripRepositoryListSummariesAggregates(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	trips := NewTripRepo(db)
	stops := NewStopRepo(db)
	cities := NewCityRepo(db)
	activities := NewActivityRepo(db)
	expenses := NewExpenseRepo(db)

	userID := seedUser(t, db)
	trip, err := trips.Create(ctx, userID, ports.TripFields{
		Name:      "Summer in Europe",
		StartDate: day(2025, time.June, 1),
		EndDate:   day(2025, time.June, 10),
	})
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}

	city, err := cities.Create(ctx, "Paris", "France", 50, 50, "UTC")
	if err != nil {
		t.Fatalf("create city: %v", err)
	}
	stop, err := stops.Create(ctx, trip.ID, ports.StopFields{
		CityID:    city.ID,
		StartDate: day(2025, time.June, 1),
		EndDate:   day(2025, time.June, 5),
	})
	if err != nil {
		t.Fatalf("create stop: %v", err)
	}
	if stop.Position != 1 {
		t.Fatalf("expected first stop at position 1, got %d", stop.Position)
	}

	for _, cost := range []float64{35, 20} {
		activity, err := activities.Create(ctx, fmt.Sprintf("Tour %.0f", cost), nil)
		if err != nil {
			t.Fatalf("create activity: %v", err)
		}
		scheduled := day(2025, time.June, 2)
		if _, err := activities.Attach(ctx, stop.ID, activity.ID, &scheduled, fptr(cost)); err != nil {
			t.Fatalf("attach activity: %v", err)
		}
	}
	for _, amount := range []float64{100, 20} {
		if _, err := expenses.Create(ctx, trip.ID, nil, amount); err != nil {
			t.Fatalf("create expense: %v", err)
		}
	}

	summaries, err := trips.ListSummaries(ctx, userID)
	if err != nil {
		t.Fatalf("list summaries: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 trip, got %d", len(summaries))
	}
	if got := summaries[0].EstimatedTotalCost; got != 175 {
		t.Fatalf("expected estimated_total_cost 175 (55 activities + 120 expenses), got %v", got)
	}
	if summaries[0].CityCount != 1 {
		t.Fatalf("expected city_count 1, got %d", summaries[0].CityCount)
	}
}

func TestTripRepositoryPublicAggregates(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	trips := NewTripRepo(db)
	stops := NewStopRepo(db)
	cities := NewCityRepo(db)
	activities := NewActivityRepo(db)
	expenses := NewExpenseRepo(db)

	userID := seedUser(t, db)
	trip, err := trips.Create(ctx, userID, ports.TripFields{
		Name:      "Shared Trip",
		StartDate: day(2025, time.July, 1),
		EndDate:   day(2025, time.July, 8),
	})
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}

	city, err := cities.Create(ctx, "Lisbon", "Portugal", 50, 50, "UTC")
	if err != nil {
		t.Fatalf("create city: %v", err)
	}
	stop, err := stops.Create(ctx, trip.ID, ports.StopFields{
		CityID:    city.ID,
		StartDate: day(2025, time.July, 1),
		EndDate:   day(2025, time.July, 4),
	})
	if err != nil {
		t.Fatalf("create stop: %v", err)
	}

	activity, err := activities.Create(ctx, "Tram ride", nil)
	if err != nil {
		t.Fatalf("create activity: %v", err)
	}
	if _, err := activities.Attach(ctx, stop.ID, activity.ID, nil, fptr(12.5)); err != nil {
		t.Fatalf("attach activity: %v", err)
	}
	if _, err := expenses.Create(ctx, trip.ID, nil, 7.5); err != nil {
		t.Fatalf("create expense: %v", err)
	}

	slug := "t" + uuid.NewString()[:6]
	if err := trips.SetShareSlug(ctx, trip.ID, slug); err != nil {
		t.Fatalf("set share slug: %v", err)
	}

	public, err := trips.FindPublicBySlug(ctx, slug)
	if err != nil {
		t.Fatalf("find public trip: %v", err)
	}
	if public.EstimatedTotalCost != 20 {
		t.Fatalf("expected estimated_total_cost 20, got %v", public.EstimatedTotalCost)
	}
	if public.OwnerName != "Aggregate Tester" {
		t.Fatalf("expected owner name joined, got %q", public.OwnerName)
	}
}
