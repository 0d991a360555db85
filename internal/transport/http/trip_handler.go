package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/globetrotter-app/globetrotter-api/internal/domain"
	"github.com/globetrotter-app/globetrotter-api/internal/service"
	"github.com/globetrotter-app/globetrotter-api/internal/util"
	"github.com/globetrotter-app/globetrotter-api/internal/view"
)

type TripHandler struct {
	trips *service.TripService
}

type TripRequest struct {
	Name          string   `json:"name"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	Description   *string  `json:"description,omitempty"`
	CoverImageURL *string  `json:"cover_image_url,omitempty"`
	BudgetTotal   *float64 `json:"budget_total,omitempty"`
}

type StopRequest struct {
	CityName  string  `json:"city_name"`
	Country   string  `json:"country"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Notes     *string `json:"notes,omitempty"`
}

type ActivityRequest struct {
	Name          string   `json:"name"`
	Category      *string  `json:"category,omitempty"`
	ScheduledDate *string  `json:"scheduled_date,omitempty"`
	Cost          *float64 `json:"cost,omitempty"`
}

type ExpenseRequest struct {
	Description *string `json:"description,omitempty"`
	Amount      float64 `json:"amount"`
}

// TripSummaryResponse decorates the stored summary with the computed
// status label so list pages need no date math of their own.
type TripSummaryResponse struct {
	domain.TripSummary
	Status view.TripStatus `json:"status"`
}

type TripListResponse struct {
	Trips []TripSummaryResponse `json:"trips"`
}

type ItineraryResponse struct {
	TripID uuid.UUID           `json:"trip_id"`
	Days   []view.ItineraryDay `json:"days"`
}

type CalendarResponse struct {
	Year  int                   `json:"year"`
	Month int                   `json:"month"`
	Weeks [][]view.CalendarCell `json:"weeks"`
	Trips []view.DateRange      `json:"trips"`
}

func RegisterTrips(e *echo.Echo, auth *service.AuthService, trips *service.TripService) {
	handler := &TripHandler{trips: trips}

	g := e.Group("/trips", RequireAuth(auth))
	g.GET("", handler.list)
	g.POST("", handler.create)
	// Static segment; echo matches it ahead of /trips/:id.
	g.GET("/calendar", handler.calendar)
	g.GET("/:id", handler.get)
	g.PUT("/:id", handler.update)
	g.DELETE("/:id", handler.delete)
	g.POST("/:id/share", handler.share)
	g.GET("/:id/itinerary", handler.itinerary)
	g.POST("/:id/stops", handler.addStop)
	g.PUT("/:id/stops/:stop_id", handler.updateStop)
	g.DELETE("/:id/stops/:stop_id", handler.deleteStop)
	g.POST("/:id/stops/:stop_id/activities", handler.addActivity)
	g.POST("/:id/expenses", handler.addExpense)
}

func (h *TripHandler) list(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	summaries, err := h.trips.List(c.Request().Context(), user.ID)
	if err != nil {
		c.Logger().Errorf("list trips: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("unable to list trips"))
	}

	now := time.Now()
	resp := TripListResponse{Trips: make([]TripSummaryResponse, 0, len(summaries))}
	for _, summary := range summaries {
		resp.Trips = append(resp.Trips, TripSummaryResponse{
			TripSummary: summary,
			Status:      view.Status(&summary.StartDate, &summary.EndDate, now),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *TripHandler) create(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	input, err := bindTripInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	trip, err := h.trips.Create(c.Request().Context(), user.ID, *input)
	if err != nil {
		return tripError(c, err, "unable to create trip")
	}
	return c.JSON(http.StatusCreated, trip)
}

func (h *TripHandler) get(c echo.Context) error {
	user, tripID, err := tripScope(c)
	if err != nil {
		return err
	}

	detail, err := h.trips.Get(c.Request().Context(), user.ID, tripID)
	if err != nil {
		return tripError(c, err, "unable to load trip")
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *TripHandler) update(c echo.Context) error {
	user, tripID, err := tripScope(c)
	if err != nil {
		return err
	}

	input, err := bindTripInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	trip, err := h.trips.Update(c.Request().Context(), user.ID, tripID, *input)
	if err != nil {
		return tripError(c, err, "unable to update trip")
	}
	return c.JSON(http.StatusOK, trip)
}

func (h *TripHandler) delete(c echo.Context) error {
	user, tripID, err := tripScope(c)
	if err != nil {
		return err
	}

	if err := h.trips.Delete(c.Request().Context(), user.ID, tripID); err != nil {
		return tripError(c, err, "unable to delete trip")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TripHandler) share(c echo.Context) error {
	user, tripID, err := tripScope(c)
	if err != nil {
		return err
	}

	result, err := h.trips.Share(c.Request().Context(), user.ID, tripID)
	if err != nil {
		return tripError(c, err, "unable to share trip")
	}
	return c.JSON(http.StatusOK, result)
}

func (h *TripHandler) itinerary(c echo.Context) error {
	user, tripID, err := tripScope(c)
	if err != nil {
		return err
	}

	detail, err := h.trips.Get(c.Request().Context(), user.ID, tripID)
	if err != nil {
		return tripError(c, err, "unable to load itinerary")
	}
	return c.JSON(http.StatusOK, ItineraryResponse{
		TripID: tripID,
		Days:   view.GroupByDay(detail.Activities),
	})
}

// calendar renders the caller's trips onto a month grid. Defaults to the
// current month when year/month are absent.
func (h *TripHandler) calendar(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	now := time.Now()
	year, month := now.Year(), int(now.Month())
	if raw := c.QueryParam("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 9999 {
			return c.JSON(http.StatusBadRequest, util.Error("invalid year"))
		}
		year = parsed
	}
	if raw := c.QueryParam("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			return c.JSON(http.StatusBadRequest, util.Error("invalid month"))
		}
		month = parsed
	}

	summaries, err := h.trips.List(c.Request().Context(), user.ID)
	if err != nil {
		c.Logger().Errorf("calendar trips: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load calendar"))
	}

	ranges := make([]view.DateRange, 0, len(summaries))
	for _, summary := range summaries {
		ranges = append(ranges, view.DateRange{
			ID:    summary.ID.String(),
			Label: summary.Name,
			Start: summary.StartDate,
			End:   summary.EndDate,
		})
	}

	return c.JSON(http.StatusOK, CalendarResponse{
		Year:  year,
		Month: month,
		Weeks: view.MonthGrid(year, time.Month(month), ranges),
		Trips: ranges,
	})
}

func (h *TripHandler) addStop(c echo.Context) error {
	user, tripID, err := tripScope(c)
	if err != nil {
		return err
	}

	input, err := bindStopInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	stop, err := h.trips.AddStop(c.Request().Context(), user.ID, tripID, *input)
	if err != nil {
		return tripError(c, err, "unable to add stop")
	}
	return c.JSON(http.StatusCreated, stop)
}

func (h *TripHandler) updateStop(c echo.Context) error {
	user, tripID, err := tripScope(c)
	if err != nil {
		return err
	}
	stopID, err := uuid.Parse(c.Param("stop_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid stop id"))
	}

	input, err := bindStopInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	stop, err := h.trips.UpdateStop(c.Request().Context(), user.ID, tripID, stopID, *input)
	if err != nil {
		return tripError(c, err, "unable to update stop")
	}
	return c.JSON(http.StatusOK, stop)
}

func (h *TripHandler) deleteStop(c echo.Context) error {
	user, tripID, err := tripScope(c)
	if err != nil {
		return err
	}
	stopID, err := uuid.Parse(c.Param("stop_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid stop id"))
	}

	if err := h.trips.DeleteStop(c.Request().Context(), user.ID, tripID, stopID); err != nil {
		return tripError(c, err, "unable to delete stop")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TripHandler) addActivity(c echo.Context) error {
	user, tripID, err := tripScope(c)
	if err != nil {
		return err
	}
	stopID, err := uuid.Parse(c.Param("stop_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid stop id"))
	}

	var req ActivityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	scheduled, err := parseOptionalDate(req.ScheduledDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid scheduled_date"))
	}

	attached, err := h.trips.AddActivity(c.Request().Context(), user.ID, tripID, stopID, service.ActivityInput{
		Name:          req.Name,
		Category:      req.Category,
		ScheduledDate: scheduled,
		Cost:          req.Cost,
	})
	if err != nil {
		return tripError(c, err, "unable to add activity")
	}
	return c.JSON(http.StatusCreated, attached)
}

func (h *TripHandler) addExpense(c echo.Context) error {
	user, tripID, err := tripScope(c)
	if err != nil {
		return err
	}

	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	expense, err := h.trips.AddExpense(c.Request().Context(), user.ID, tripID, req.Description, req.Amount)
	if err != nil {
		return tripError(c, err, "unable to add expense")
	}
	return c.JSON(http.StatusCreated, expense)
}

// tripScope pulls the authenticated user and the :id path param; a nil
// error means both are valid.
func tripScope(c echo.Context) (*domain.User, uuid.UUID, error) {
	user, ok := CurrentUser(c)
	if !ok {
		return nil, uuid.Nil, c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, uuid.Nil, c.JSON(http.StatusBadRequest, util.Error("invalid trip id"))
	}
	return user, tripID, nil
}

func tripError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrTripValidation):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	case errors.Is(err, service.ErrTripNotFound), errors.Is(err, service.ErrStopNotFound):
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	default:
		c.Logger().Errorf("%s: %v", fallback, err)
		return c.JSON(http.StatusInternalServerError, util.Error(fallback))
	}
}

func bindTripInput(c echo.Context) (*service.TripInput, error) {
	var req TripRequest
	if err := c.Bind(&req); err != nil {
		return nil, errors.New("invalid request body")
	}
	start, err := parseOptionalDate(&req.StartDate)
	if err != nil {
		return nil, errors.New("invalid start_date")
	}
	end, err := parseOptionalDate(&req.EndDate)
	if err != nil {
		return nil, errors.New("invalid end_date")
	}
	return &service.TripInput{
		Name:          req.Name,
		StartDate:     start,
		EndDate:       end,
		Description:   req.Description,
		CoverImageURL: req.CoverImageURL,
		BudgetTotal:   req.BudgetTotal,
	}, nil
}

func bindStopInput(c echo.Context) (*service.StopInput, error) {
	var req StopRequest
	if err := c.Bind(&req); err != nil {
		return nil, errors.New("invalid request body")
	}
	start, err := parseOptionalDate(&req.StartDate)
	if err != nil {
		return nil, errors.New("invalid start_date")
	}
	end, err := parseOptionalDate(&req.EndDate)
	if err != nil {
		return nil, errors.New("invalid end_date")
	}
	return &service.StopInput{
		CityName:  req.CityName,
		Country:   req.Country,
		StartDate: start,
		EndDate:   end,
		Notes:     req.Notes,
	}, nil
}

// parseOptionalDate accepts a bare date or a full RFC 3339 timestamp;
// empty and nil both mean absent.
func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.DateOnly, *raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
