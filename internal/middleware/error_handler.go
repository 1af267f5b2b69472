package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	apperrors "finance-api/internal/errors"
	"finance-api/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// NewHTTPErrorHandler returns an Echo error handler that formats every unhandled error
// as a standardized error response and counts it in api_errors_total on reg.
// A nil reg disables the metric registration.
func NewHTTPErrorHandler(reg prometheus.Registerer) echo.HTTPErrorHandler {
	apiErrorsTotal := promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_errors_total",
			Help: "Total number of API errors by code, endpoint, and status",
		},
		[]string{"code", "endpoint", "status"},
	)

	return func(err error, c echo.Context) {
		handleHTTPError(err, c, apiErrorsTotal)
	}
}

// CustomHTTPErrorHandler formats errors without recording metrics
func CustomHTTPErrorHandler(err error, c echo.Context) {
	handleHTTPError(err, c, nil)
}

func handleHTTPError(err error, c echo.Context, apiErrorsTotal *prometheus.CounterVec) {
	if c.Response().Committed {
		return
	}

	traceID := GetTraceID(c)
	if traceID == "" {
		traceID = "unknown"
	}

	var errorResponse *apperrors.ErrorResponse
	var httpStatus int

	var echoErr *echo.HTTPError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &echoErr):
		errorCode := mapHTTPStatusToErrorCode(echoErr.Code)
		var opts []apperrors.ErrorOption
		// Echo's own messages are only kept where they help the client fix the request
		if errorCode == apperrors.ValidationGeneral {
			opts = append(opts, apperrors.WithDetails(fmt.Sprintf("%v", echoErr.Message)))
		}
		errorResponse = apperrors.NewErrorResponse(errorCode, traceID, opts...)
		httpStatus = echoErr.Code
	case errors.As(err, &validationErrs):
		errorResponse = apperrors.NewValidationError(validation.FieldErrors(validationErrs), traceID)
		httpStatus = http.StatusBadRequest
	default:
		errorResponse, _ = apperrors.WrapSystemError(err, traceID)
		httpStatus = errorResponse.GetHTTPStatus()
	}

	logLevel := slog.LevelWarn
	if httpStatus >= 500 {
		logLevel = slog.LevelError
	}

	slog.Log(c.Request().Context(), logLevel, "HTTP error occurred",
		"trace_id", traceID,
		"error_code", errorResponse.Error.Code,
		"status", httpStatus,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"error", err.Error(),
	)

	if apiErrorsTotal != nil {
		apiErrorsTotal.WithLabelValues(
			errorResponse.Error.Code,
			c.Path(),
			strconv.Itoa(httpStatus),
		).Inc()
	}

	if sendErr := c.JSON(httpStatus, errorResponse); sendErr != nil {
		slog.Error("Failed to send error response",
			"trace_id", traceID,
			"error", sendErr.Error(),
		)
	}
}

// mapHTTPStatusToErrorCode maps HTTP status codes raised by Echo itself to error codes
func mapHTTPStatusToErrorCode(status int) apperrors.ErrorCode {
	switch status {
	case http.StatusBadRequest, http.StatusMethodNotAllowed, http.StatusUnprocessableEntity,
		http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType:
		return apperrors.ValidationGeneral
	case http.StatusUnauthorized:
		return apperrors.AuthMissingToken
	case http.StatusForbidden:
		return apperrors.AuthInvalidToken
	case http.StatusNotFound:
		return apperrors.SystemRouteNotFound
	case http.StatusTooManyRequests:
		return apperrors.SystemRateLimitExceeded
	case http.StatusInternalServerError:
		return apperrors.SystemInternalError
	case http.StatusServiceUnavailable:
		return apperrors.SystemServiceUnavailable
	default:
		return apperrors.SystemUnexpectedError
	}
}
