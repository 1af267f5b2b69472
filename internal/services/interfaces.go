package services

import (
	"context"
	"time"

	"finance-api/internal/dto"
	"finance-api/internal/models"

	"github.com/google/uuid"
)

type TokenServiceInterface interface {
	Issue(user *models.User) (string, time.Time, error)
	Verify(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest, ipAddress, userAgent string) (*models.User, error)
	Login(req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error)
}

// TransactionServiceInterface manages a user's ledger entries and the categories they are filed under
type TransactionServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, error)
	Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateTransactionRequest) (*models.Transaction, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	List(userID uuid.UUID) ([]models.Transaction, error)
	ListCategories(userID uuid.UUID) ([]models.Category, error)
}

// BudgetServiceInterface manages a user's monthly budgets
type BudgetServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.BudgetRequest) (*models.Budget, error)
	List(userID uuid.UUID) ([]models.Budget, error)
	Update(ctx context.Context, userID, id uuid.UUID, req *dto.BudgetRequest) (*models.Budget, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// SummaryServiceInterface computes read-only dashboard projections of a user's ledger
type SummaryServiceInterface interface {
	Totals(userID uuid.UUID) (*models.TransactionTotals, error)
	MonthlySeries(userID uuid.UUID) ([]models.MonthlyExpense, error)
	CategoryBreakdown(userID uuid.UUID) ([]models.CategorySummary, error)
}

// AssistantServiceInterface answers free-text questions about a user's ledger
type AssistantServiceInterface interface {
	Ask(ctx context.Context, userID uuid.UUID, query string) (string, error)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

type AuditLoggerInterface interface {
	LogLedgerChange(ctx context.Context, entity, action string, userID, entityID uuid.UUID)
	LogCategoryResolved(ctx context.Context, userID uuid.UUID, categoryName, entryType string)
	LogAssistantRequest(ctx context.Context, userID uuid.UUID, transactionCount int, durationMs int64)
	LogAssistantFailure(ctx context.Context, userID uuid.UUID, statusCode int, errorMsg string, durationMs int64)
	LogCircuitBreakerStateChange(ctx context.Context, service string, oldState, newState string)
}

type CircuitBreakerInterface interface {
	IsOpen() bool
	RecordSuccess()
	RecordFailure()
	GetState() models.CircuitBreakerState
	Reset()
	GetFailureCount() int
}
