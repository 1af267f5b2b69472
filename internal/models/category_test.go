package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEntryType(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"income", TypeIncome},
		{"Income", TypeIncome},
		{" INCOME ", TypeIncome},
		{"expense", TypeExpense},
		{"Expense", TypeExpense},
		{"", TypeExpense},
		{"refund", TypeExpense},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeEntryType(tt.input))
		})
	}
}

func TestResolveCategoryName(t *testing.T) {
	assert.Equal(t, "Side gig", ResolveCategoryName("custom", " Side gig "))
	assert.Equal(t, "Groceries", ResolveCategoryName("Groceries", "ignored"))
	assert.Equal(t, "", ResolveCategoryName("custom", ""))
	assert.Equal(t, "", ResolveCategoryName("", ""))
}

func TestCategory_Validate(t *testing.T) {
	userID := uuid.New()

	assert.NoError(t, (&Category{UserID: userID, Name: "Rent", Type: TypeExpense}).Validate())
	assert.Error(t, (&Category{Name: "Rent", Type: TypeExpense}).Validate())
	assert.Error(t, (&Category{UserID: userID, Name: " ", Type: TypeExpense}).Validate())
	assert.ErrorIs(t, (&Category{UserID: userID, Name: "Rent", Type: "expense"}).Validate(), ErrInvalidEntryType)
}

func TestCategory_BeforeCreate(t *testing.T) {
	category := &Category{UserID: uuid.New(), Name: "Salary", Type: TypeIncome}

	require.NoError(t, category.BeforeCreate(nil))

	assert.NotEqual(t, uuid.Nil, category.ID)
	assert.False(t, category.CreatedAt.IsZero())
}
