package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials ErrorCode = "AUTH_001"
	AuthMissingToken       ErrorCode = "AUTH_002"
	AuthExpiredToken       ErrorCode = "AUTH_003"
	AuthInvalidToken       ErrorCode = "AUTH_004"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral         ErrorCode = "VALIDATION_001"
	ValidationRequiredField   ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat   ErrorCode = "VALIDATION_003"
	ValidationInvalidEmail    ErrorCode = "VALIDATION_005"
	ValidationInvalidDate     ErrorCode = "VALIDATION_007"
	ValidationUnknownCategory ErrorCode = "VALIDATION_008"
)

// User error codes (USER_*)
const (
	UserAlreadyExists ErrorCode = "USER_001"
)

// Ledger error codes (TRANSACTION_*, BUDGET_*)
const (
	TransactionNotFound ErrorCode = "TRANSACTION_001"
	BudgetNotFound      ErrorCode = "BUDGET_001"
)

// Upstream error codes (UPSTREAM_*)
const (
	UpstreamFailed        ErrorCode = "UPSTREAM_001"
	UpstreamUnavailable   ErrorCode = "UPSTREAM_002"
	UpstreamNotConfigured ErrorCode = "UPSTREAM_003"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemUnexpectedError    ErrorCode = "SYSTEM_005"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_006"
	SystemRouteNotFound      ErrorCode = "SYSTEM_007"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthInvalidCredentials: "Invalid credentials",
	AuthMissingToken:       "Access denied. No token provided.",
	AuthExpiredToken:       "Invalid token",
	AuthInvalidToken:       "Invalid token",

	// Validation errors
	ValidationGeneral:         "Validation failed",
	ValidationRequiredField:   "Required field is missing",
	ValidationInvalidFormat:   "Invalid field format",
	ValidationInvalidEmail:    "Invalid email address format",
	ValidationInvalidDate:     "Invalid date format",
	ValidationUnknownCategory: "Category does not exist",

	// User errors
	UserAlreadyExists: "User already exists",

	// Ledger errors
	TransactionNotFound: "Transaction not found.",
	BudgetNotFound:      "Budget not found or unauthorized",

	// Upstream errors
	UpstreamFailed:        "Chatbot service failed",
	UpstreamUnavailable:   "Chatbot service temporarily unavailable",
	UpstreamNotConfigured: "Chatbot service is not configured",

	// System errors
	SystemInternalError:      "Internal server error",
	SystemDatabaseError:      "Database error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemUnexpectedError:    "An unexpected error occurred",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
	SystemRouteNotFound:      "Resource not found",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
