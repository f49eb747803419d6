// Package middleware contains the HTTP middleware chain for the API server.
package middleware

import (
	"strings"

	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// ContextKeyUserID is where Authenticate stores the resolved caller ID.
const ContextKeyUserID = "userID"

// AccessTokenCookieName is the cookie the login handler sets; Authenticate
// falls back to it when no Authorization header is present.
const AccessTokenCookieName = "accessToken"

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate is the core middleware function that validates the JWT access token.
// The token is read from the Authorization header (Bearer scheme) or, failing
// that, from the accessToken cookie.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := extractAccessToken(c)
		if tokenString == "" {
			return domainerrors.ErrUnauthenticated.WithDetails("access token is missing")
		}

		claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			return domainerrors.ErrUnauthenticated.WithDetails("access token is invalid or expired")
		}

		// Set the caller's identity on the context for handlers to use.
		c.Set(ContextKeyUserID, claims.UserID)

		return next(c)
	}
}

func extractAccessToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString != authHeader {
			return tokenString
		}

		return ""
	}

	if cookie, err := c.Cookie(AccessTokenCookieName); err == nil {
		return cookie.Value
	}

	return ""
}
