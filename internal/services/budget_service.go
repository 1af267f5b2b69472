package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"finance-api/internal/dto"
	"finance-api/internal/models"
	"finance-api/internal/repositories"

	"github.com/google/uuid"
)

var (
	// ErrBudgetNotFound is returned both for missing budgets and for budgets owned by someone else
	ErrBudgetNotFound  = errors.New("budget not found or unauthorized")
	ErrUnknownCategory = errors.New("category does not exist")
	ErrInvalidMonth    = models.ErrInvalidBudgetMonth
)

type BudgetService struct {
	budgetRepo   repositories.BudgetRepositoryInterface
	categoryRepo repositories.CategoryRepositoryInterface
	auditLogger  AuditLoggerInterface
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
}

func NewBudgetService(
	budgetRepo repositories.BudgetRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	auditLogger AuditLoggerInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) BudgetServiceInterface {
	return &BudgetService{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		auditLogger:  auditLogger,
		metrics:      metrics,
		logger:       logger,
	}
}

func (s *BudgetService) Create(ctx context.Context, userID uuid.UUID, req *dto.BudgetRequest) (*models.Budget, error) {
	budget, err := s.buildBudget(userID, req)
	if err != nil {
		return nil, err
	}

	if err := s.budgetRepo.Create(budget); err != nil {
		if errors.Is(err, models.ErrInvalidBudgetMonth) {
			return nil, ErrInvalidMonth
		}
		s.recordWrite("create", "failed")
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	s.recordWrite("create", "success")
	s.auditLogger.LogLedgerChange(ctx, "budget", "created", userID, budget.ID)
	return budget, nil
}

func (s *BudgetService) List(userID uuid.UUID) ([]models.Budget, error) {
	budgets, err := s.budgetRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	if budgets == nil {
		budgets = []models.Budget{}
	}
	return budgets, nil
}

// Update overwrites category, amount, month and notes of a budget the user owns
func (s *BudgetService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.BudgetRequest) (*models.Budget, error) {
	budget, err := s.buildBudget(userID, req)
	if err != nil {
		return nil, err
	}
	budget.ID = id

	if err := s.budgetRepo.UpdateForUser(budget); err != nil {
		switch {
		case errors.Is(err, repositories.ErrBudgetNotFound):
			return nil, ErrBudgetNotFound
		case errors.Is(err, models.ErrInvalidBudgetMonth):
			return nil, ErrInvalidMonth
		}
		s.recordWrite("update", "failed")
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	s.recordWrite("update", "success")
	s.auditLogger.LogLedgerChange(ctx, "budget", "updated", userID, id)
	return budget, nil
}

func (s *BudgetService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.budgetRepo.DeleteForUser(id, userID); err != nil {
		if errors.Is(err, repositories.ErrBudgetNotFound) {
			return ErrBudgetNotFound
		}
		s.recordWrite("delete", "failed")
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	s.recordWrite("delete", "success")
	s.auditLogger.LogLedgerChange(ctx, "budget", "deleted", userID, id)
	return nil
}

func (s *BudgetService) buildBudget(userID uuid.UUID, req *dto.BudgetRequest) (*models.Budget, error) {
	if req.Amount == nil {
		return nil, ErrAmountRequired
	}
	if !models.IsValidMonth(req.Month) {
		return nil, ErrInvalidMonth
	}

	categoryID := req.CategoryID
	if categoryID != nil && *categoryID == uuid.Nil {
		categoryID = nil
	}
	if categoryID != nil {
		if _, err := s.categoryRepo.GetByIDForUser(*categoryID, userID); err != nil {
			if errors.Is(err, repositories.ErrCategoryNotFound) {
				return nil, ErrUnknownCategory
			}
			return nil, fmt.Errorf("failed to check category: %w", err)
		}
	}

	return &models.Budget{
		UserID:     userID,
		CategoryID: categoryID,
		Month:      req.Month,
		Amount:     *req.Amount,
		Notes:      normalizeNotes(req.Notes),
	}, nil
}

func (s *BudgetService) recordWrite(operation, status string) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncrementCounter("ledger_write", map[string]string{
		"entity":    "budget",
		"operation": operation,
		"status":    status,
	})
}
