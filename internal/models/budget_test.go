package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidMonth(t *testing.T) {
	for _, month := range []string{"2024-01", "1999-12", "2030-10"} {
		assert.True(t, IsValidMonth(month), month)
	}
	for _, month := range []string{"2024-13", "2024-00", "2024-1", "24-01", "2024/01", "", "2024-01-01"} {
		assert.False(t, IsValidMonth(month), month)
	}
}

func TestBudget_BeforeCreate(t *testing.T) {
	budget := &Budget{UserID: uuid.New(), Month: "2024-05", Amount: decimal.NewFromInt(300)}

	require.NoError(t, budget.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, budget.ID)

	invalid := &Budget{UserID: uuid.New(), Month: "May 2024"}
	assert.ErrorIs(t, invalid.BeforeCreate(nil), ErrInvalidBudgetMonth)

	orphan := &Budget{Month: "2024-05"}
	assert.Error(t, orphan.Validate())
}
