package models

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MonthLayout is the YYYY-MM layout used for budget months and monthly summaries
const MonthLayout = "2006-01"

var (
	monthRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

	ErrInvalidBudgetMonth = errors.New("month must be in YYYY-MM format")
)

// Budget is a planned spending cap for a user, optionally tied to one category, for one month
type Budget struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	CategoryID *uuid.UUID      `gorm:"type:uuid;index" json:"categoryId"`
	Month      string          `gorm:"type:varchar(7);not null;index" json:"month"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Notes      *string         `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`

	User     *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
}

func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = now
	}

	return b.Validate()
}

func (b *Budget) Validate() error {
	if b.UserID == uuid.Nil {
		return errors.New("budget owner is required")
	}
	if !IsValidMonth(b.Month) {
		return ErrInvalidBudgetMonth
	}
	return nil
}

func (b *Budget) TableName() string {
	return "budgets"
}

// IsValidMonth reports whether s is a YYYY-MM month
func IsValidMonth(s string) bool {
	return monthRegex.MatchString(s)
}
