package middleware

import (
	"errors"

	apperrors "finance-api/internal/errors"
	"finance-api/internal/handlers"
	"finance-api/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// UserIDContextKey holds the authenticated user's uuid.UUID
	UserIDContextKey = "user_id"
	// UserEmailContextKey holds the authenticated user's email
	UserEmailContextKey = "user_email"
)

// RequireAuth creates a middleware that requires a valid bearer token.
// The user id from the token becomes the owner of every ledger read and write in the request.
func RequireAuth(tokenService services.TokenServiceInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return handlers.SendError(c, apperrors.AuthMissingToken)
			}

			token, err := tokenService.ExtractTokenFromHeader(authHeader)
			if err != nil {
				return handlers.SendError(c, apperrors.AuthInvalidToken)
			}

			claims, err := tokenService.Verify(token)
			if err != nil {
				if errors.Is(err, services.ErrExpiredToken) {
					return handlers.SendError(c, apperrors.AuthExpiredToken)
				}
				return handlers.SendError(c, apperrors.AuthInvalidToken)
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil || userID == uuid.Nil {
				return handlers.SendError(c, apperrors.AuthInvalidToken, apperrors.WithDetails("Invalid user ID in token"))
			}

			c.Set(UserIDContextKey, userID)
			c.Set(UserEmailContextKey, claims.Email)

			return next(c)
		}
	}
}
