package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/globetrotter-app/globetrotter-api/internal/domain"
	"github.com/globetrotter-app/globetrotter-api/internal/service"
	"github.com/globetrotter-app/globetrotter-api/internal/util"
)

type AdminHandler struct {
	users *service.UserService
}

type AdminUsersResponse struct {
	Users  []domain.User `json:"users"`
	Total  int64         `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

func RegisterAdmin(e *echo.Echo, auth *service.AuthService, users *service.UserService) {
	handler := &AdminHandler{users: users}

	g := e.Group("/admin", RequireAuth(auth), RequireAdmin())
	g.GET("/users", handler.listUsers)
}

func (h *AdminHandler) listUsers(c echo.Context) error {
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

	users, total, err := h.users.List(c.Request().Context(), limit, offset)
	if err != nil {
		c.Logger().Errorf("admin list users: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("unable to list users"))
	}
	return c.JSON(http.StatusOK, AdminUsersResponse{Users: users, Total: total, Limit: limit, Offset: offset})
}
