package models

import "github.com/shopspring/decimal"

// TransactionTotals is the dashboard headline: income, expenses and their difference
type TransactionTotals struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	TotalBalance  decimal.Decimal `json:"totalBalance"`
}

// MonthlyExpense is one point in the monthly expense series
type MonthlyExpense struct {
	Month       string          `json:"month"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// CategorySummary contains aggregated transaction data by category
type CategorySummary struct {
	CategoryName string          `json:"categoryName"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
}

// UncategorizedLabel names the bucket for transactions without any category
const UncategorizedLabel = "Uncategorized"
