package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "finance-api/internal/errors"
	"finance-api/internal/services"

	"github.com/labstack/echo/v4"
)

// STANDARDIZED ERROR HANDLING PATTERNS
//
// All handlers must use the following standardized error response functions:
//
// 1. SendError - For client errors and business logic errors (4xx responses)
//    - Validation errors: SendError(c, errors.ValidationGeneral, errors.WithDetails("..."))
//    - Authentication errors: SendError(c, errors.AuthInvalidCredentials)
//    - Not found errors: SendError(c, errors.TransactionNotFound)
//
// 2. SendSystemError - For system/internal errors (500 responses)
//    - Database errors from repositories
//    - Unexpected errors that should not expose internal details to client
//
// 3. sendServiceError - maps the sentinel errors of the service layer onto 1 or 2
//
// Request validation errors (validator.ValidationErrors) are returned as-is and
// formatted by the middleware's CustomHTTPErrorHandler.

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = apperrors.ErrorResponse

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code apperrors.ErrorCode, opts ...apperrors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := apperrors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendSystemError logs the internal error and responds with a generic 500
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)
	errorResponse, originalErr := apperrors.WrapSystemError(err, traceID)

	slog.ErrorContext(c.Request().Context(), "request failed",
		"trace_id", traceID,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"error", originalErr,
	)

	return c.JSON(http.StatusInternalServerError, errorResponse)
}

// sendServiceError translates service-layer errors into API error codes
func sendServiceError(c echo.Context, err error) error {
	var upstreamErr *services.UpstreamError

	switch {
	case errors.Is(err, services.ErrCategoryRequired),
		errors.Is(err, services.ErrAmountRequired),
		errors.Is(err, services.ErrInvalidMonth),
		services.IsPasswordPolicyError(err):
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails(err.Error()))
	case errors.Is(err, services.ErrInvalidDate):
		return SendError(c, apperrors.ValidationInvalidDate, apperrors.WithDetails(err.Error()))
	case errors.Is(err, services.ErrUnknownCategory):
		return SendError(c, apperrors.ValidationUnknownCategory)
	case errors.Is(err, services.ErrTransactionNotFound):
		return SendError(c, apperrors.TransactionNotFound)
	case errors.Is(err, services.ErrBudgetNotFound):
		return SendError(c, apperrors.BudgetNotFound)
	case errors.Is(err, services.ErrUserAlreadyExists):
		return SendError(c, apperrors.UserAlreadyExists)
	case errors.Is(err, services.ErrInvalidCredentials):
		return SendError(c, apperrors.AuthInvalidCredentials)
	case errors.Is(err, services.ErrAssistantNotConfigured):
		return SendError(c, apperrors.UpstreamNotConfigured)
	case errors.Is(err, services.ErrAssistantUnavailable):
		return SendError(c, apperrors.UpstreamUnavailable)
	case errors.As(err, &upstreamErr):
		return SendError(c, apperrors.UpstreamFailed, apperrors.WithDetails(upstreamDetail(upstreamErr)))
	default:
		return SendSystemError(c, err)
	}
}

func upstreamDetail(err *services.UpstreamError) string {
	if err.Payload != "" {
		return err.Payload
	}
	return err.Error()
}
