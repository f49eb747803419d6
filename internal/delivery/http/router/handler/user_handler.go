// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"time"

	"taskboard/config"
	"taskboard/internal/delivery/http/middleware"
	"taskboard/internal/delivery/http/response"
	"taskboard/internal/domain/service"
	"taskboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RefreshTokenCookieName is the cookie carrying the refresh token. It is
// scoped to the refresh endpoint only.
const RefreshTokenCookieName = "refreshToken"

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullname" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc       usecase.UserUsecase
	tokenSvc service.TokenService
	cfg      *config.Config
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, tokenSvc service.TokenService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		uc:       uc,
		tokenSvc: tokenSvc,
		cfg:      cfg,
	}
}

// Register handles the user registration request.
func (h *UserHandler) Register(c echo.Context) error {
	var input registerRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		FullName: input.FullName,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output.User, "User registered successfully")
}

// Login handles the user login request. On success the token pair is
// returned in the body and mirrored into httpOnly cookies.
func (h *UserHandler) Login(c echo.Context) error {
	var input loginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Identifier: input.Identifier,
		Password:   input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.setAuthCookies(c, output.AccessToken, output.RefreshToken)

	return response.Success(c, http.StatusOK, output, "Login successful")
}

// RefreshToken rotates the token pair. The refresh token is read from the
// cookie first, then from the body for cookie-less clients.
func (h *UserHandler) RefreshToken(c echo.Context) error {
	refreshToken := ""
	if cookie, err := c.Cookie(RefreshTokenCookieName); err == nil {
		refreshToken = cookie.Value
	}
	if refreshToken == "" {
		var input refreshRequest
		if err := c.Bind(&input); err == nil {
			refreshToken = input.RefreshToken
		}
	}
	if refreshToken == "" {
		return response.Unauthorized(c, "REFRESH_TOKEN_MISSING", "Refresh token is missing")
	}

	output, err := h.uc.RefreshToken(c.Request().Context(), refreshToken)
	if err != nil {
		return errors.WithStack(err)
	}

	h.setAuthCookies(c, output.AccessToken, output.RefreshToken)

	return response.Success(c, http.StatusOK, output, "Token refreshed successfully")
}

// Logout clears the stored session and expires both cookies.
func (h *UserHandler) Logout(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	if err := h.uc.Logout(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	h.clearAuthCookies(c)

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}

func (h *UserHandler) setAuthCookies(c echo.Context, accessToken, refreshToken string) {
	c.SetCookie(h.buildCookie(middleware.AccessTokenCookieName, accessToken, "/", h.tokenSvc.GetAccessTokenDuration()))
	c.SetCookie(h.buildCookie(RefreshTokenCookieName, refreshToken, "/auth/refresh", h.tokenSvc.GetRefreshTokenDuration()))
}

func (h *UserHandler) clearAuthCookies(c echo.Context) {
	c.SetCookie(h.buildCookie(middleware.AccessTokenCookieName, "", "/", -time.Hour))
	c.SetCookie(h.buildCookie(RefreshTokenCookieName, "", "/auth/refresh", -time.Hour))
}

func (h *UserHandler) buildCookie(name, value, path string, maxAge time.Duration) *http.Cookie {
	secure := false
	if h.cfg.Auth != nil {
		secure = h.cfg.Auth.CookieSecure
	}

	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
