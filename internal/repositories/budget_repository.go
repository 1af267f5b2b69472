package repositories

import (
	"errors"
	"fmt"
	"time"

	"finance-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrBudgetNotFound covers both a missing budget and one owned by someone else
	ErrBudgetNotFound = errors.New("budget not found or unauthorized")
)

// BudgetRepository handles database operations for budgets
type BudgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository
func NewBudgetRepository(db *gorm.DB) BudgetRepositoryInterface {
	return &BudgetRepository{
		db: db,
	}
}

// Create inserts a new budget
func (r *BudgetRepository) Create(budget *models.Budget) error {
	if budget == nil {
		return errors.New("budget cannot be nil")
	}

	if err := r.db.Omit("Category", "User").Create(budget).Error; err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}
	return nil
}

// ListByUser returns the user's budgets with their categories, newest month first
func (r *BudgetRepository) ListByUser(userID uuid.UUID) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := r.db.Preload("Category").
		Where("user_id = ?", userID).
		Order("month DESC").
		Order("created_at ASC").
		Find(&budgets).Error; err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return budgets, nil
}

// UpdateForUser overwrites category, amount, month and notes of a budget matching both id and owner
func (r *BudgetRepository) UpdateForUser(budget *models.Budget) error {
	if budget == nil {
		return errors.New("budget cannot be nil")
	}
	if err := budget.Validate(); err != nil {
		return err
	}

	budget.UpdatedAt = time.Now().UTC()
	result := r.db.Model(&models.Budget{}).
		Where("id = ? AND user_id = ?", budget.ID, budget.UserID).
		Updates(map[string]interface{}{
			"category_id": budget.CategoryID,
			"amount":      budget.Amount,
			"month":       budget.Month,
			"notes":       budget.Notes,
			"updated_at":  budget.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update budget: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBudgetNotFound
	}
	return nil
}

// DeleteForUser removes a budget matching both id and owner
func (r *BudgetRepository) DeleteForUser(id, userID uuid.UUID) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Budget{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete budget: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBudgetNotFound
	}
	return nil
}
