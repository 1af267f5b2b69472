package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetRequest is the body of budget create and update
type BudgetRequest struct {
	CategoryID *uuid.UUID       `json:"categoryId"`
	Amount     *decimal.Decimal `json:"amount" validate:"required"`
	Month      string           `json:"month" validate:"required,budget_month"`
	Notes      *string          `json:"notes"`
}

// BudgetResponse is a budget with its (optional) category joined in
type BudgetResponse struct {
	ID           uuid.UUID       `json:"id"`
	CategoryID   *uuid.UUID      `json:"categoryId"`
	CategoryName *string         `json:"categoryName"`
	CategoryType *string         `json:"categoryType"`
	Amount       decimal.Decimal `json:"amount"`
	Month        string          `json:"month"`
	Notes        *string         `json:"notes"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// BudgetCreatedResponse is returned with 201 after a budget is created
type BudgetCreatedResponse struct {
	Message  string    `json:"message"`
	BudgetID uuid.UUID `json:"budgetId"`
}
