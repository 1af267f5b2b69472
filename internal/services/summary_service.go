package services

import (
	"fmt"

	"finance-api/internal/models"
	"finance-api/internal/repositories"

	"github.com/google/uuid"
)

// amountPlaces matches the decimal(15,2) storage of amounts
const amountPlaces = 2

type SummaryService struct {
	transactionRepo repositories.TransactionRepositoryInterface
}

func NewSummaryService(transactionRepo repositories.TransactionRepositoryInterface) SummaryServiceInterface {
	return &SummaryService{
		transactionRepo: transactionRepo,
	}
}

// Totals returns income, expenses and balance = income - expenses. An empty ledger is all zeros.
func (s *SummaryService) Totals(userID uuid.UUID) (*models.TransactionTotals, error) {
	totals, err := s.transactionRepo.GetTotals(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get totals: %w", err)
	}

	income := totals.TotalIncome.Round(amountPlaces)
	expenses := totals.TotalExpenses.Round(amountPlaces)

	return &models.TransactionTotals{
		TotalIncome:   income,
		TotalExpenses: expenses,
		TotalBalance:  income.Sub(expenses),
	}, nil
}

// MonthlySeries sums expenses per calendar month, oldest month first
func (s *SummaryService) MonthlySeries(userID uuid.UUID) ([]models.MonthlyExpense, error) {
	totals, err := s.transactionRepo.GetMonthlyTotals(userID, models.TypeExpense)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly series: %w", err)
	}

	series := make([]models.MonthlyExpense, 0, len(totals))
	for _, point := range totals {
		point.TotalAmount = point.TotalAmount.Round(amountPlaces)
		series = append(series, point)
	}
	return series, nil
}

// CategoryBreakdown sums amounts per category name, largest first
func (s *SummaryService) CategoryBreakdown(userID uuid.UUID) ([]models.CategorySummary, error) {
	summaries, err := s.transactionRepo.GetCategorySummary(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category summary: %w", err)
	}

	result := make([]models.CategorySummary, 0, len(summaries))
	for _, summary := range summaries {
		summary.TotalAmount = summary.TotalAmount.Round(amountPlaces)
		result = append(result, summary)
	}
	return result, nil
}
