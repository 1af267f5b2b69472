package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"finance-api/internal/dto"
	"finance-api/internal/models"
	"finance-api/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrCategoryRequired    = errors.New("either category or customCategory must be provided")
	ErrInvalidDate         = errors.New("date must be YYYY-MM-DD or an RFC 3339 timestamp")
	ErrAmountRequired      = errors.New("amount is required")
)

// TransactionService files ledger entries under per-user categories
type TransactionService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	categoryRepo    repositories.CategoryRepositoryInterface
	auditLogger     AuditLoggerInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

func NewTransactionService(
	transactionRepo repositories.TransactionRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	auditLogger AuditLoggerInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) TransactionServiceInterface {
	return &TransactionService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		auditLogger:     auditLogger,
		metrics:         metrics,
		logger:          logger,
	}
}

// Create records a transaction. The category is looked up by (user, name, type) and created
// when missing, in the same database transaction as the insert.
func (s *TransactionService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, error) {
	if req.Amount == nil {
		return nil, ErrAmountRequired
	}

	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	transaction := &models.Transaction{
		UserID:          userID,
		Amount:          *req.Amount,
		Type:            models.NormalizeEntryType(req.Type),
		Date:            date,
		Notes:           normalizeNotes(req.Notes),
		TransactionMode: strings.TrimSpace(req.TransactionMode),
	}
	categoryName := models.ResolveCategoryName(req.Category, req.CustomCategory)

	if err := s.transactionRepo.CreateWithCategory(transaction, categoryName); err != nil {
		s.recordWrite("create", "failed")
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.recordWrite("create", "success")
	if categoryName != "" {
		s.recordCategoryResolved(ctx, userID, categoryName, transaction.Type)
	}
	s.auditLogger.LogLedgerChange(ctx, "transaction", "created", userID, transaction.ID)

	return transaction, nil
}

// Update overwrites an owned transaction and returns the stored row. A custom category takes
// precedence and clears the category reference; otherwise the name is matched against the
// user's existing categories and an unknown name leaves the transaction uncategorized.
func (s *TransactionService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateTransactionRequest) (*models.Transaction, error) {
	customCategory := strings.TrimSpace(req.CustomCategory)
	category := strings.TrimSpace(req.Category)
	if customCategory == "" && (category == "" || category == models.CategoryCustom) {
		return nil, ErrCategoryRequired
	}

	if req.Amount == nil {
		return nil, ErrAmountRequired
	}

	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	transaction := &models.Transaction{
		ID:              id,
		UserID:          userID,
		Amount:          *req.Amount,
		Type:            models.NormalizeEntryType(req.Type),
		Date:            date,
		Notes:           normalizeNotes(req.Notes),
		TransactionMode: strings.TrimSpace(req.TransactionMode),
	}

	categoryName := ""
	if customCategory != "" {
		transaction.CustomCategory = customCategory
	} else {
		categoryName = category
	}

	if err := s.transactionRepo.UpdateWithCategory(transaction, categoryName); err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		s.recordWrite("update", "failed")
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	s.recordWrite("update", "success")
	if transaction.CategoryID != nil {
		s.recordCategoryResolved(ctx, userID, categoryName, transaction.Type)
	}
	s.auditLogger.LogLedgerChange(ctx, "transaction", "updated", userID, transaction.ID)

	stored, err := s.transactionRepo.GetByIDForUser(transaction.ID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to reload transaction: %w", err)
	}
	return stored, nil
}

// Delete hard-deletes an owned transaction
func (s *TransactionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.transactionRepo.DeleteForUser(id, userID); err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return ErrTransactionNotFound
		}
		s.recordWrite("delete", "failed")
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.recordWrite("delete", "success")
	s.auditLogger.LogLedgerChange(ctx, "transaction", "deleted", userID, id)
	return nil
}

// List returns the user's transactions, newest first
func (s *TransactionService) List(userID uuid.UUID) ([]models.Transaction, error) {
	transactions, err := s.transactionRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	return transactions, nil
}

// ListCategories returns the categories the user's ledger has created so far
func (s *TransactionService) ListCategories(userID uuid.UUID) ([]models.Category, error) {
	categories, err := s.categoryRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

func (s *TransactionService) recordWrite(operation, status string) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncrementCounter("ledger_write", map[string]string{
		"entity":    "transaction",
		"operation": operation,
		"status":    status,
	})
}

func (s *TransactionService) recordCategoryResolved(ctx context.Context, userID uuid.UUID, name, entryType string) {
	if s.metrics != nil {
		s.metrics.IncrementCounter("category_resolved", nil)
	}
	s.auditLogger.LogCategoryResolved(ctx, userID, name, entryType)
}

// normalizeNotes maps blank notes to NULL
func normalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
