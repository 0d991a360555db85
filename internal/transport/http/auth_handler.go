package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/globetrotter-app/globetrotter-api/internal/domain"
	"github.com/globetrotter-app/globetrotter-api/internal/service"
	"github.com/globetrotter-app/globetrotter-api/internal/util"
)

type AuthHandler struct {
	auth *service.AuthService
}

type SignupRequest struct {
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    *string `json:"phone,omitempty"`
	City     *string `json:"city,omitempty"`
	Country  *string `json:"country,omitempty"`
	About    *string `json:"about,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token"`
}

type AuthResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService) {
	handler := &AuthHandler{auth: auth}

	e.POST("/auth/signup", handler.signup)
	e.POST("/auth/login", handler.login)
	e.POST("/auth/google", handler.loginWithGoogle)
	e.POST("/auth/logout", handler.logout, RequireAuth(auth))
}

func (h *AuthHandler) signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	user, token, err := h.auth.Signup(c.Request().Context(), service.SignupInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		City:     req.City,
		Country:  req.Country,
		About:    req.About,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSignupValidation):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		case errors.Is(err, service.ErrEmailTaken):
			return c.JSON(http.StatusConflict, util.Error(err.Error()))
		default:
			c.Logger().Errorf("signup: %v", err)
			return c.JSON(http.StatusInternalServerError, util.Error("unable to create account"))
		}
	}

	return c.JSON(http.StatusCreated, AuthResponse{User: user, Token: token})
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	user, token, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLoginValidation):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		case errors.Is(err, service.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
		default:
			c.Logger().Errorf("login: %v", err)
			return c.JSON(http.StatusInternalServerError, util.Error("unable to log in"))
		}
	}

	return c.JSON(http.StatusOK, AuthResponse{User: user, Token: token})
}

func (h *AuthHandler) loginWithGoogle(c echo.Context) error {
	var req GoogleLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if req.IDToken == "" {
		return c.JSON(http.StatusBadRequest, util.Error("id_token is required"))
	}

	user, token, err := h.auth.LoginWithGoogle(c.Request().Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
		}
		c.Logger().Errorf("google login: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("unable to log in"))
	}

	return c.JSON(http.StatusOK, AuthResponse{User: user, Token: token})
}

func (h *AuthHandler) logout(c echo.Context) error {
	token, ok := currentToken(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	if err := h.auth.Logout(c.Request().Context(), token); err != nil {
		c.Logger().Errorf("logout: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("unable to log out"))
	}
	return c.NoContent(http.StatusNoContent)
}
