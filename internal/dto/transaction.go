package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest records a new ledger entry. Category "custom" means the
// entry is filed under CustomCategory instead.
type CreateTransactionRequest struct {
	Type            string           `json:"type" validate:"required"`
	Amount          *decimal.Decimal `json:"amount" validate:"required"`
	Category        string           `json:"category" validate:"max=100"`
	CustomCategory  string           `json:"customCategory" validate:"max=100"`
	TransactionMode string           `json:"transactionMode" validate:"max=50"`
	Date            string           `json:"date" validate:"required"`
	Notes           *string          `json:"notes"`
}

// UpdateTransactionRequest overwrites a ledger entry. One of Category or CustomCategory is required.
type UpdateTransactionRequest struct {
	Type            string           `json:"type" validate:"required"`
	Amount          *decimal.Decimal `json:"amount" validate:"required"`
	Category        string           `json:"category" validate:"max=100"`
	CustomCategory  string           `json:"customCategory" validate:"max=100"`
	TransactionMode string           `json:"transactionMode" validate:"max=50"`
	Date            string           `json:"date" validate:"required"`
	Notes           *string          `json:"notes"`
}

// TransactionResponse is a ledger entry as listed to its owner
type TransactionResponse struct {
	ID              uuid.UUID       `json:"id"`
	Amount          decimal.Decimal `json:"amount"`
	Type            string          `json:"type"`
	Date            string          `json:"date"`
	Notes           *string         `json:"notes"`
	TransactionMode string          `json:"transactionMode"`
	CategoryID      *uuid.UUID      `json:"categoryId"`
	CategoryName    *string         `json:"categoryName"`
	CustomCategory  string          `json:"customCategory,omitempty"`
}

// CategoryResponse is an entry of the category picker. The synthetic "General Budget"
// entry has neither id nor type.
type CategoryResponse struct {
	ID   *uuid.UUID `json:"id"`
	Name string     `json:"name"`
	Type *string    `json:"type"`
}

// MessageResponse is the body of write endpoints that return no resource
type MessageResponse struct {
	Message string     `json:"message"`
	ID      *uuid.UUID `json:"id,omitempty"`
}
