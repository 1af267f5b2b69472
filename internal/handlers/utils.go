package handlers

import (
	"fmt"

	apperrors "finance-api/internal/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ErrUnauthorized is returned when user context is invalid
var ErrUnauthorized = fmt.Errorf("unauthorized")

// getUserIDFromContext extracts the user ID placed on the context by RequireAuth.
// Returns ErrUnauthorized if user ID is missing or invalid.
func getUserIDFromContext(c echo.Context) (uuid.UUID, error) {
	userIDValue := c.Get("user_id")
	if userIDValue == nil {
		return uuid.UUID{}, ErrUnauthorized
	}

	userID, ok := userIDValue.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.UUID{}, ErrUnauthorized
	}

	return userID, nil
}

// requireUserID is getUserIDFromContext with the 401 response already written on failure
func requireUserID(c echo.Context) (uuid.UUID, bool, error) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return uuid.Nil, false, SendError(c, apperrors.AuthMissingToken)
	}
	return userID, true, nil
}

// parseIDParam reads a uuid path parameter. ok is false for anything that is not a uuid.
func parseIDParam(c echo.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
