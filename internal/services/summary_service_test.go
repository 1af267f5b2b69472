package services

import (
	"errors"
	"testing"

	"finance-api/internal/models"
	"finance-api/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SummaryServiceTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	transactionRepo *repository_mocks.MockTransactionRepositoryInterface
	service         SummaryServiceInterface
	userID          uuid.UUID
}

func (s *SummaryServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.transactionRepo = repository_mocks.NewMockTransactionRepositoryInterface(s.ctrl)
	s.service = NewSummaryService(s.transactionRepo)
	s.userID = uuid.New()
}

func (s *SummaryServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestSummaryServiceSuite(t *testing.T) {
	suite.Run(t, new(SummaryServiceTestSuite))
}

func (s *SummaryServiceTestSuite) TestTotals() {
	s.transactionRepo.EXPECT().GetTotals(s.userID).Return(&models.TransactionTotals{
		TotalIncome:   decimal.RequireFromString("1000.50"),
		TotalExpenses: decimal.RequireFromString("250.25"),
	}, nil).Times(1)

	totals, err := s.service.Totals(s.userID)

	s.Require().NoError(err)
	s.Equal("1000.50", totals.TotalIncome.StringFixed(2))
	s.Equal("250.25", totals.TotalExpenses.StringFixed(2))
	s.Equal("750.25", totals.TotalBalance.StringFixed(2))
}

func (s *SummaryServiceTestSuite) TestTotals_NegativeBalance() {
	s.transactionRepo.EXPECT().GetTotals(s.userID).Return(&models.TransactionTotals{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.RequireFromString("20"),
	}, nil).Times(1)

	totals, err := s.service.Totals(s.userID)

	s.Require().NoError(err)
	s.True(totals.TotalBalance.Equal(decimal.NewFromInt(-20)))
}

func (s *SummaryServiceTestSuite) TestTotals_EmptyLedger() {
	s.transactionRepo.EXPECT().GetTotals(s.userID).Return(&models.TransactionTotals{}, nil).Times(1)

	totals, err := s.service.Totals(s.userID)

	s.Require().NoError(err)
	s.True(totals.TotalIncome.IsZero())
	s.True(totals.TotalExpenses.IsZero())
	s.True(totals.TotalBalance.IsZero())
}

func (s *SummaryServiceTestSuite) TestTotals_Error() {
	s.transactionRepo.EXPECT().GetTotals(s.userID).Return(nil, errors.New("boom")).Times(1)

	_, err := s.service.Totals(s.userID)

	s.Error(err)
}

func (s *SummaryServiceTestSuite) TestMonthlySeries_RoundsEachMonth() {
	s.transactionRepo.EXPECT().GetMonthlyTotals(s.userID, models.TypeExpense).Return([]models.MonthlyExpense{
		{Month: "2024-01", TotalAmount: decimal.RequireFromString("15.149999")},
		{Month: "2024-02", TotalAmount: decimal.RequireFromString("40")},
		{Month: "2024-04", TotalAmount: decimal.RequireFromString("1.333")},
	}, nil).Times(1)

	series, err := s.service.MonthlySeries(s.userID)

	s.Require().NoError(err)
	s.Require().Len(series, 3)
	s.Equal("2024-01", series[0].Month)
	s.Equal("15.15", series[0].TotalAmount.StringFixed(2))
	s.Equal("2024-02", series[1].Month)
	s.Equal("40.00", series[1].TotalAmount.StringFixed(2))
	s.Equal("2024-04", series[2].Month)
	s.Equal("1.33", series[2].TotalAmount.String())
}

func (s *SummaryServiceTestSuite) TestMonthlySeries_Empty() {
	s.transactionRepo.EXPECT().GetMonthlyTotals(s.userID, models.TypeExpense).Return(nil, nil).Times(1)

	series, err := s.service.MonthlySeries(s.userID)

	s.NoError(err)
	s.NotNil(series)
	s.Empty(series)
}

func (s *SummaryServiceTestSuite) TestMonthlySeries_RepositoryError() {
	s.transactionRepo.EXPECT().GetMonthlyTotals(s.userID, models.TypeExpense).Return(nil, errors.New("boom")).Times(1)

	_, err := s.service.MonthlySeries(s.userID)

	s.ErrorContains(err, "failed to get monthly series")
}

func (s *SummaryServiceTestSuite) TestCategoryBreakdown() {
	s.transactionRepo.EXPECT().GetCategorySummary(s.userID).Return([]models.CategorySummary{
		{CategoryName: "Rent", TotalAmount: decimal.RequireFromString("1200.004")},
		{CategoryName: models.UncategorizedLabel, TotalAmount: decimal.RequireFromString("3")},
	}, nil).Times(1)

	breakdown, err := s.service.CategoryBreakdown(s.userID)

	s.Require().NoError(err)
	s.Require().Len(breakdown, 2)
	s.Equal("Rent", breakdown[0].CategoryName)
	s.Equal("1200", breakdown[0].TotalAmount.String())
	s.Equal(models.UncategorizedLabel, breakdown[1].CategoryName)
}

func (s *SummaryServiceTestSuite) TestCategoryBreakdown_EmptyIsNotNil() {
	s.transactionRepo.EXPECT().GetCategorySummary(s.userID).Return(nil, nil).Times(1)

	breakdown, err := s.service.CategoryBreakdown(s.userID)

	s.NoError(err)
	s.NotNil(breakdown)
}
