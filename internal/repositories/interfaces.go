package repositories

import (
	"time"

	"finance-api/internal/models"

	"github.com/google/uuid"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
}

// AuditLogRepositoryInterface defines the contract for audit log repository operations
type AuditLogRepositoryInterface interface {
	Create(log *models.AuditLog) error
	DeleteOlderThan(duration time.Duration) (int64, error)
}

// CategoryRepositoryInterface defines the contract for category repository operations.
// Categories are created implicitly by the transaction repository.
type CategoryRepositoryInterface interface {
	ListByUser(userID uuid.UUID) ([]models.Category, error)
	GetByIDForUser(id, userID uuid.UUID) (*models.Category, error)
}

// TransactionRepositoryInterface defines the contract for ledger operations. Every method is scoped to one owner.
type TransactionRepositoryInterface interface {
	// CreateWithCategory resolves categoryName (reuse-or-create) and inserts the transaction atomically.
	// An empty categoryName stores an uncategorized transaction.
	CreateWithCategory(transaction *models.Transaction, categoryName string) error
	// UpdateWithCategory overwrites the transaction's editable fields. A non-empty categoryName is
	// looked up among the owner's existing categories (never created) and clears the custom category;
	// an empty or unknown one clears the reference.
	UpdateWithCategory(transaction *models.Transaction, categoryName string) error
	GetByIDForUser(id, userID uuid.UUID) (*models.Transaction, error)
	DeleteForUser(id, userID uuid.UUID) error
	ListByUser(userID uuid.UUID) ([]models.Transaction, error)
	GetMonthlyTotals(userID uuid.UUID, entryType string) ([]models.MonthlyExpense, error)
	GetTotals(userID uuid.UUID) (*models.TransactionTotals, error)
	GetCategorySummary(userID uuid.UUID) ([]models.CategorySummary, error)
}

// BudgetRepositoryInterface defines the contract for budget repository operations
type BudgetRepositoryInterface interface {
	Create(budget *models.Budget) error
	ListByUser(userID uuid.UUID) ([]models.Budget, error)
	UpdateForUser(budget *models.Budget) error
	DeleteForUser(id, userID uuid.UUID) error
}
