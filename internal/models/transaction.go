package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DateLayout is the calendar-date format used on the wire and in prompts
const DateLayout = "2006-01-02"

var (
	ErrTransactionOwnerRequired = errors.New("transaction owner is required")
	ErrTransactionDateRequired  = errors.New("transaction date is required")
)

// Transaction is a single income or expense entry in a user's ledger
type Transaction struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	CategoryID      *uuid.UUID      `gorm:"type:uuid;index" json:"categoryId"`
	CustomCategory  string          `gorm:"type:varchar(100)" json:"customCategory,omitempty"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Type            string          `gorm:"type:varchar(10);not null;index" json:"type"`
	Date            time.Time       `gorm:"type:date;not null;index" json:"date"`
	Notes           *string         `gorm:"type:text" json:"notes"`
	TransactionMode string          `gorm:"type:varchar(50)" json:"transactionMode"`
	CreatedAt       time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null" json:"updated_at"`

	// Associations
	User     *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	// Set timestamps if not already set (for tests)
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	t.Date = TruncateToDate(t.Date)
	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.UserID == uuid.Nil {
		return ErrTransactionOwnerRequired
	}
	if !IsValidEntryType(t.Type) {
		return ErrInvalidEntryType
	}
	if t.Date.IsZero() {
		return ErrTransactionDateRequired
	}
	return nil
}

// CategoryName returns the display name: the linked category, else the custom text, else empty
func (t *Transaction) CategoryName() string {
	if t.Category != nil {
		return t.Category.Name
	}
	return t.CustomCategory
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// TruncateToDate drops the time of day, keeping the calendar date in UTC
func TruncateToDate(ts time.Time) time.Time {
	if ts.IsZero() {
		return ts
	}
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp
func ParseDate(value string) (time.Time, error) {
	if ts, err := time.Parse(DateLayout, value); err == nil {
		return ts, nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return TruncateToDate(ts.UTC()), nil
}
