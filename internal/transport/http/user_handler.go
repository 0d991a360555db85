package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/globetrotter-app/globetrotter-api/internal/media"
	"github.com/globetrotter-app/globetrotter-api/internal/repository/ports"
	"github.com/globetrotter-app/globetrotter-api/internal/service"
	"github.com/globetrotter-app/globetrotter-api/internal/util"
)

const maxProfileImageForm = 16 << 20

type UserHandler struct {
	users *service.UserService
}

type ProfileUpdateRequest struct {
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	City     *string `json:"city,omitempty"`
	Country  *string `json:"country,omitempty"`
	About    *string `json:"about,omitempty"`
}

func RegisterUsers(e *echo.Echo, auth *service.AuthService, users *service.UserService) {
	handler := &UserHandler{users: users}

	g := e.Group("/users", RequireAuth(auth))
	g.GET("/me", handler.me)
	g.PUT("/me", handler.updateMe)
	g.POST("/me/image", handler.uploadImage)
}

func (h *UserHandler) me(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	return c.JSON(http.StatusOK, util.Data("user", user))
}

func (h *UserHandler) updateMe(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req ProfileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	updated, err := h.users.UpdateProfile(c.Request().Context(), user.ID, ports.UserProfileUpdate{
		FullName: req.FullName,
		Phone:    req.Phone,
		City:     req.City,
		Country:  req.Country,
		About:    req.About,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		}
		c.Logger().Errorf("update profile: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("unable to update profile"))
	}
	return c.JSON(http.StatusOK, util.Data("user", updated))
}

// uploadImage expects a multipart form with the file under "image".
func (h *UserHandler) uploadImage(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	if err := c.Request().ParseMultipartForm(maxProfileImageForm); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid multipart payload"))
	}
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("image file is required"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("unable to read image"))
	}
	defer file.Close()

	updated, err := h.users.UploadProfileImage(c.Request().Context(), user.ID, media.Upload{
		Reader:      file,
		Size:        fileHeader.Size,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedImage), errors.Is(err, service.ErrProfileImageTooBig):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		case errors.Is(err, service.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		default:
			c.Logger().Errorf("upload profile image: %v", err)
			return c.JSON(http.StatusInternalServerError, util.Error("unable to upload image"))
		}
	}
	return c.JSON(http.StatusOK, util.Data("user", updated))
}
