package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entry types shared by categories and transactions
const (
	TypeIncome  = "Income"
	TypeExpense = "Expense"
)

// CategoryCustom is the sentinel category value meaning "use the free-text custom category"
const CategoryCustom = "custom"

// GeneralBudgetName labels the synthetic entry that stands for "no category" in pickers
const GeneralBudgetName = "General Budget"

var ErrInvalidEntryType = errors.New("type must be Income or Expense")

// Category is a user-owned classification. (user_id, name, type) is unique.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_categories_user_name_type" json:"-"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_user_name_type" json:"name"`
	Type      string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_categories_user_name_type" json:"type"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	return c.Validate()
}

func (c *Category) Validate() error {
	if c.UserID == uuid.Nil {
		return errors.New("category owner is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("category name is required")
	}
	if !IsValidEntryType(c.Type) {
		return ErrInvalidEntryType
	}
	return nil
}

func (c *Category) TableName() string {
	return "categories"
}

// IsValidEntryType reports whether t is one of the canonical entry types
func IsValidEntryType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

// NormalizeEntryType maps client input onto the canonical types: "income" in any
// case becomes Income, everything else is treated as an Expense.
func NormalizeEntryType(t string) string {
	if strings.EqualFold(strings.TrimSpace(t), TypeIncome) {
		return TypeIncome
	}
	return TypeExpense
}

// ResolveCategoryName picks the name a transaction should be filed under
func ResolveCategoryName(category, customCategory string) string {
	if category == CategoryCustom {
		return strings.TrimSpace(customCategory)
	}
	return strings.TrimSpace(category)
}
