package repositories

import (
	"errors"
	"fmt"

	"finance-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
)

// CategoryRepository handles database operations for categories
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepositoryInterface {
	return &CategoryRepository{
		db: db,
	}
}

// ListByUser returns the user's categories ordered by type then name
func (r *CategoryRepository) ListByUser(userID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Where("user_id = ?", userID).
		Order("type ASC").
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetByIDForUser retrieves a category only if it belongs to userID
func (r *CategoryRepository) GetByIDForUser(id, userID uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

// findCategoryByName looks up one of userID's categories by name without creating anything.
// A category of entryType wins over a same-named one of the other type. Returns nil, nil when
// userID has no category with that name.
func findCategoryByName(tx *gorm.DB, userID uuid.UUID, name, entryType string) (*models.Category, error) {
	var candidates []models.Category
	if err := tx.Where("user_id = ? AND name = ?", userID, name).
		Order("created_at ASC").
		Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to look up category: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	for i := range candidates {
		if candidates[i].Type == entryType {
			return &candidates[i], nil
		}
	}
	return &candidates[0], nil
}

// findOrCreateCategory returns the (userID, name, entryType) category, creating it when absent.
// tx must be an open transaction. The insert runs in a savepoint so that losing a race on the
// unique index leaves tx usable and the winner can be re-read.
func findOrCreateCategory(tx *gorm.DB, userID uuid.UUID, name, entryType string) (*models.Category, error) {
	lookup := func() (*models.Category, error) {
		var category models.Category
		err := tx.Where("user_id = ? AND name = ? AND type = ?", userID, name, entryType).
			Take(&category).Error
		if err != nil {
			return nil, err
		}
		return &category, nil
	}

	existing, err := lookup()
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up category: %w", err)
	}

	category := &models.Category{
		UserID: userID,
		Name:   name,
		Type:   entryType,
	}

	err = tx.Transaction(func(savepoint *gorm.DB) error {
		return savepoint.Create(category).Error
	})
	if err == nil {
		return category, nil
	}
	if !isDuplicateKeyError(err) {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	// A concurrent request created it first
	winner, err := lookup()
	if err != nil {
		return nil, fmt.Errorf("failed to re-read category after conflict: %w", err)
	}
	return winner, nil
}
