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
	ErrTransactionNotFound = errors.New("transaction not found")
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// CreateWithCategory resolves the category and inserts the transaction in one unit of work
func (r *transactionRepository) CreateWithCategory(transaction *models.Transaction, categoryName string) error {
	if transaction == nil {
		return errors.New("transaction cannot be nil")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if categoryName != "" {
			category, err := findOrCreateCategory(tx, transaction.UserID, categoryName, transaction.Type)
			if err != nil {
				return err
			}
			transaction.CategoryID = &category.ID
			transaction.Category = category
		}

		if err := tx.Omit("Category", "User").Create(transaction).Error; err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}
		return nil
	})
}

// UpdateWithCategory overwrites the editable fields of an owned transaction. A non-empty
// categoryName is matched against the user's existing categories only; when none matches the
// category reference is cleared and no category row is created.
func (r *transactionRepository) UpdateWithCategory(transaction *models.Transaction, categoryName string) error {
	if transaction == nil {
		return errors.New("transaction cannot be nil")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Transaction
		if err := tx.Where("id = ? AND user_id = ?", transaction.ID, transaction.UserID).
			Take(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			return fmt.Errorf("failed to get transaction: %w", err)
		}

		transaction.CategoryID = nil
		transaction.Category = nil
		if categoryName != "" {
			transaction.CustomCategory = ""
			category, err := findCategoryByName(tx, transaction.UserID, categoryName, transaction.Type)
			if err != nil {
				return err
			}
			if category != nil {
				transaction.CategoryID = &category.ID
				transaction.Category = category
			}
		}

		transaction.Date = models.TruncateToDate(transaction.Date)
		transaction.CreatedAt = existing.CreatedAt
		transaction.UpdatedAt = time.Now().UTC()
		if err := transaction.Validate(); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"category_id":      transaction.CategoryID,
			"custom_category":  transaction.CustomCategory,
			"amount":           transaction.Amount,
			"type":             transaction.Type,
			"date":             transaction.Date,
			"notes":            transaction.Notes,
			"transaction_mode": transaction.TransactionMode,
			"updated_at":       transaction.UpdatedAt,
		}

		result := tx.Model(&models.Transaction{}).
			Where("id = ? AND user_id = ?", transaction.ID, transaction.UserID).
			Updates(updates)
		if result.Error != nil {
			return fmt.Errorf("failed to update transaction: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrTransactionNotFound
		}
		return nil
	})
}

// GetByIDForUser retrieves a transaction with its category, only if userID owns it
func (r *transactionRepository) GetByIDForUser(id, userID uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		Take(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

// DeleteForUser hard-deletes an owned transaction
func (r *transactionRepository) DeleteForUser(id, userID uuid.UUID) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Transaction{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// ListByUser returns the user's ledger, newest date first
func (r *transactionRepository) ListByUser(userID uuid.UUID) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Preload("Category").
		Where("user_id = ?", userID).
		Order("date DESC").
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

// GetMonthlyTotals sums the user's transactions of one type per calendar month, oldest month first.
// Months without transactions are omitted.
func (r *transactionRepository) GetMonthlyTotals(userID uuid.UUID, entryType string) ([]models.MonthlyExpense, error) {
	month := monthExpr(r.db)

	var totals []models.MonthlyExpense
	err := r.db.Model(&models.Transaction{}).
		Select(month+" AS month, SUM(amount) AS total_amount").
		Where("user_id = ? AND type = ?", userID, entryType).
		Group(month).
		Order("month ASC").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly totals: %w", err)
	}
	return totals, nil
}

// monthExpr renders the YYYY-MM of the date column for the connected dialect. SQLite keeps
// dates as ISO text, so the prefix is the month.
func monthExpr(db *gorm.DB) string {
	if db.Dialector.Name() == "sqlite" {
		return "substr(date, 1, 7)"
	}
	return "to_char(date, 'YYYY-MM')"
}

// GetTotals sums income and expenses for a user. The balance is left to the caller.
func (r *transactionRepository) GetTotals(userID uuid.UUID) (*models.TransactionTotals, error) {
	var totals models.TransactionTotals

	err := r.db.Raw(`
		SELECT
			COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS total_income,
			COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS total_expenses
		FROM transactions
		WHERE user_id = ?
	`, models.TypeIncome, models.TypeExpense, userID).Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction totals: %w", err)
	}

	return &totals, nil
}

// GetCategorySummary sums amounts per category name, largest first. Transactions without a
// linked category, custom-category ones included, share the Uncategorized bucket.
func (r *transactionRepository) GetCategorySummary(userID uuid.UUID) ([]models.CategorySummary, error) {
	var summaries []models.CategorySummary

	err := r.db.Raw(`
		SELECT
			COALESCE(c.name, ?) AS category_name,
			SUM(t.amount) AS total_amount
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = ?
		GROUP BY 1
		ORDER BY 2 DESC, 1 ASC
	`, models.UncategorizedLabel, userID).Scan(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get category summary: %w", err)
	}

	return summaries, nil
}
