package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/globetrotter-app/globetrotter-api/internal/domain"
	"github.com/globetrotter-app/globetrotter-api/internal/service"
	"github.com/globetrotter-app/globetrotter-api/internal/util"
)

// PublicHandler serves the unauthenticated surface: shared itineraries by
// slug and the community feed of everything shared so far.
type PublicHandler struct {
	trips *service.TripService
}

type PublicTripResponse struct {
	Trip       *domain.PublicTrip    `json:"trip"`
	Stops      []domain.TripStop     `json:"stops"`
	Activities []domain.TripActivity `json:"activities"`
}

type CommunityResponse struct {
	Trips  []domain.PublicTrip `json:"trips"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
}

func RegisterPublic(e *echo.Echo, trips *service.TripService) {
	handler := &PublicHandler{trips: trips}

	e.GET("/p/:slug", handler.bySlug)
	e.GET("/community", handler.community)
}

func (h *PublicHandler) bySlug(c echo.Context) error {
	slug := c.Param("slug")
	trip, stops, activities, err := h.trips.GetBySlug(c.Request().Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrTripNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("shared trip not found"))
		}
		c.Logger().Errorf("public trip %s: %v", slug, err)
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load shared trip"))
	}
	return c.JSON(http.StatusOK, PublicTripResponse{Trip: trip, Stops: stops, Activities: activities})
}

func (h *PublicHandler) community(c echo.Context) error {
	limit, offset := 20, 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("invalid limit"))
		}
		limit = parsed
	}
	if raw := c.QueryParam("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("invalid offset"))
		}
		offset = parsed
	}

	trips, err := h.trips.ListPublic(c.Request().Context(), limit, offset)
	if err != nil {
		c.Logger().Errorf("community feed: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load community trips"))
	}
	return c.JSON(http.StatusOK, CommunityResponse{Trips: trips, Limit: limit, Offset: offset})
}
