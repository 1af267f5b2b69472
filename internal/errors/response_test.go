package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
)

// ResponseTestSuite defines the test suite for error responses
type ResponseTestSuite struct {
	suite.Suite
	traceID string
}

// SetupTest runs before each test
func (s *ResponseTestSuite) SetupTest() {
	s.traceID = "550e8400-e29b-41d4-a716-446655440000"
}

// TestResponseTestSuite runs the test suite
func TestResponseTestSuite(t *testing.T) {
	suite.Run(t, new(ResponseTestSuite))
}

func (s *ResponseTestSuite) TestNewErrorResponse_BasicUsage() {
	response := NewErrorResponse(AuthInvalidCredentials, s.traceID)

	s.NotNil(response)
	s.Equal("Invalid credentials", response.Message)
	s.Equal("AUTH_001", response.Error.Code)
	s.Equal("Invalid credentials", response.Error.Message)
	s.Equal(s.traceID, response.Error.TraceID)
	s.Empty(response.Error.Details)
}

func (s *ResponseTestSuite) TestNewErrorResponse_WithDetails() {
	details := []string{"Field validation failed", "Email is required"}
	response := NewErrorResponse(ValidationGeneral, s.traceID, WithDetails(details...))

	s.Equal("VALIDATION_001", response.Error.Code)
	s.Equal(details, response.Error.Details)
}

// TestNewErrorResponse_WithCustomMessage checks that both message fields are overridden
func (s *ResponseTestSuite) TestNewErrorResponse_WithCustomMessage() {
	response := NewErrorResponse(SystemInternalError, s.traceID, WithMessage("Custom error message"))

	s.Equal("SYSTEM_001", response.Error.Code)
	s.Equal("Custom error message", response.Error.Message)
	s.Equal("Custom error message", response.Message)
}

func (s *ResponseTestSuite) TestNewValidationError_WithFieldErrors() {
	fieldErrors := map[string]string{
		"email":    "must be a valid email address",
		"password": "must be at least 8 characters long",
		"name":     "is required",
	}

	response := NewValidationError(fieldErrors, s.traceID)

	s.Equal("VALIDATION_001", response.Error.Code)
	s.Equal("Validation failed", response.Error.Message)
	s.Len(response.Error.Details, 3)

	// Order may vary due to map iteration
	detailsMap := make(map[string]bool)
	for _, detail := range response.Error.Details {
		detailsMap[detail] = true
	}
	s.True(detailsMap["email: must be a valid email address"])
	s.True(detailsMap["password: must be at least 8 characters long"])
	s.True(detailsMap["name: is required"])
}

func (s *ResponseTestSuite) TestNewValidationErrorFromList_Success() {
	details := []string{"amount: is required", "month: must be in YYYY-MM format"}

	response := NewValidationErrorFromList(details, s.traceID)

	s.Equal("VALIDATION_001", response.Error.Code)
	s.Equal(details, response.Error.Details)
}

// TestWrapSystemError_NoInternalDetailsExposed tests that internal details are not exposed
func (s *ResponseTestSuite) TestWrapSystemError_NoInternalDetailsExposed() {
	sensitiveErr := errors.New("pq: relation \"transactions\" does not exist")

	response, originalErr := WrapSystemError(sensitiveErr, s.traceID)

	s.Equal("SYSTEM_001", response.Error.Code)
	s.NotContains(response.Error.Message, "relation")
	s.NotContains(response.Message, "pq")
	s.Empty(response.Error.Details)
	s.Equal(sensitiveErr, originalErr)
}

func (s *ResponseTestSuite) TestWrapDatabaseError_Success() {
	dbErr := errors.New("connection pool exhausted")

	response, originalErr := WrapDatabaseError(dbErr, s.traceID)

	s.Equal("SYSTEM_002", response.Error.Code)
	s.Equal(dbErr, originalErr)
}

// TestToJSON_Shape checks the wire shape carries a top-level message and the error object
func (s *ResponseTestSuite) TestToJSON_Shape() {
	response := NewErrorResponse(ValidationGeneral, s.traceID, WithDetails("email: invalid format"))

	jsonBytes, err := response.ToJSON()
	s.Require().NoError(err)

	var jsonMap map[string]interface{}
	s.Require().NoError(json.Unmarshal(jsonBytes, &jsonMap))

	s.Equal("Validation failed", jsonMap["message"])
	errorObj := jsonMap["error"].(map[string]interface{})
	s.Equal("VALIDATION_001", errorObj["code"])
	s.Equal(s.traceID, errorObj["trace_id"])
	s.IsType([]interface{}{}, errorObj["details"])
}

// TestToJSON_EmptyDetails tests JSON serialization omits empty details
func (s *ResponseTestSuite) TestToJSON_EmptyDetails() {
	jsonBytes, err := NewErrorResponse(AuthInvalidCredentials, s.traceID).ToJSON()
	s.Require().NoError(err)

	var jsonMap map[string]interface{}
	s.Require().NoError(json.Unmarshal(jsonBytes, &jsonMap))

	_, hasDetails := jsonMap["error"].(map[string]interface{})["details"]
	s.False(hasDetails, "Empty details should be omitted from JSON")
}

func (s *ResponseTestSuite) TestGetHTTPStatus_AllErrorCodes() {
	testCases := []struct {
		code           ErrorCode
		expectedStatus int
	}{
		{ValidationGeneral, http.StatusBadRequest},
		{ValidationInvalidDate, http.StatusBadRequest},
		{ValidationUnknownCategory, http.StatusBadRequest},
		{AuthExpiredToken, http.StatusBadRequest},
		{AuthInvalidToken, http.StatusBadRequest},
		{AuthInvalidCredentials, http.StatusUnauthorized},
		{AuthMissingToken, http.StatusUnauthorized},
		{TransactionNotFound, http.StatusNotFound},
		{BudgetNotFound, http.StatusNotFound},
		{SystemRouteNotFound, http.StatusNotFound},
		{UserAlreadyExists, http.StatusConflict},
		{SystemRateLimitExceeded, http.StatusTooManyRequests},
		{UpstreamFailed, http.StatusBadGateway},
		{UpstreamUnavailable, http.StatusServiceUnavailable},
		{UpstreamNotConfigured, http.StatusServiceUnavailable},
		{SystemServiceUnavailable, http.StatusServiceUnavailable},
		{SystemInternalError, http.StatusInternalServerError},
		{SystemDatabaseError, http.StatusInternalServerError},
		{"UNKNOWN_999", http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Equal(tc.expectedStatus, GetHTTPStatus(tc.code))
		})
	}
}

func (s *ResponseTestSuite) TestIsClientError_IsServerError() {
	for _, code := range []ErrorCode{ValidationGeneral, AuthInvalidCredentials, BudgetNotFound, UserAlreadyExists} {
		response := NewErrorResponse(code, s.traceID)
		s.True(response.IsClientError(), string(code))
		s.False(response.IsServerError(), string(code))
	}

	for _, code := range []ErrorCode{SystemInternalError, UpstreamFailed, UpstreamUnavailable} {
		response := NewErrorResponse(code, s.traceID)
		s.True(response.IsServerError(), string(code))
		s.False(response.IsClientError(), string(code))
	}
}

func (s *ResponseTestSuite) TestString_FormatsCorrectly() {
	str := NewErrorResponse(BudgetNotFound, s.traceID).String()

	s.Contains(str, "BUDGET_001")
	s.Contains(str, "Budget not found or unauthorized")
	s.Contains(str, s.traceID)
}

func (s *ResponseTestSuite) TestWithMessage_MultipleInvocations() {
	response := NewErrorResponse(
		SystemInternalError,
		s.traceID,
		WithMessage("First message"),
		WithMessage("Second message"),
	)

	s.Equal("Second message", response.Error.Message)
}
