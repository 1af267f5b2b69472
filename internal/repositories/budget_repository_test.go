package repositories

import (
	"testing"

	"finance-api/internal/database"
	"finance-api/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestBudgetRepository(t *testing.T) {
	suite.Run(t, new(BudgetRepositorySuite))
}

type BudgetRepositorySuite struct {
	suite.Suite
	db    *database.DB
	repo  BudgetRepositoryInterface
	alice *models.User
	bob   *models.User
}

func (s *BudgetRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewBudgetRepository(s.db.DB)
	s.alice = database.CreateTestUser(s.T(), s.db, "alice@example.com")
	s.bob = database.CreateTestUser(s.T(), s.db, "bob@example.com")
}

func (s *BudgetRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *BudgetRepositorySuite) newBudget(user *models.User, category *models.Category, month, amount string) *models.Budget {
	budget := &models.Budget{
		UserID: user.ID,
		Month:  month,
		Amount: decimal.RequireFromString(amount),
	}
	if category != nil {
		budget.CategoryID = &category.ID
	}
	return budget
}

func (s *BudgetRepositorySuite) TestCreate() {
	category := database.CreateTestCategory(s.T(), s.db, s.alice, "Food", models.TypeExpense)
	budget := s.newBudget(s.alice, category, "2024-05", "300.50")

	s.Require().NoError(s.repo.Create(budget))
	s.NotEqual(uuid.Nil, budget.ID)
}

func (s *BudgetRepositorySuite) TestCreate_InvalidMonth() {
	budget := s.newBudget(s.alice, nil, "2024-13", "10")

	s.ErrorIs(s.repo.Create(budget), models.ErrInvalidBudgetMonth)
}

func (s *BudgetRepositorySuite) TestListByUser() {
	category := database.CreateTestCategory(s.T(), s.db, s.alice, "Food", models.TypeExpense)
	s.Require().NoError(s.repo.Create(s.newBudget(s.alice, category, "2024-04", "100")))
	s.Require().NoError(s.repo.Create(s.newBudget(s.alice, nil, "2024-06", "500")))
	s.Require().NoError(s.repo.Create(s.newBudget(s.bob, nil, "2024-06", "1")))

	budgets, err := s.repo.ListByUser(s.alice.ID)

	s.Require().NoError(err)
	s.Require().Len(budgets, 2)
	s.Equal("2024-06", budgets[0].Month)
	s.Nil(budgets[0].Category)
	s.Equal("2024-04", budgets[1].Month)
	s.Require().NotNil(budgets[1].Category)
	s.Equal("Food", budgets[1].Category.Name)
}

func (s *BudgetRepositorySuite) TestUpdateForUser() {
	budget := s.newBudget(s.alice, nil, "2024-04", "100")
	s.Require().NoError(s.repo.Create(budget))

	category := database.CreateTestCategory(s.T(), s.db, s.alice, "Food", models.TypeExpense)
	notes := "tighter this month"
	update := s.newBudget(s.alice, category, "2024-05", "80.25")
	update.ID = budget.ID
	update.Notes = &notes

	s.Require().NoError(s.repo.UpdateForUser(update))

	budgets, err := s.repo.ListByUser(s.alice.ID)
	s.Require().NoError(err)
	s.Require().Len(budgets, 1)
	s.Equal("2024-05", budgets[0].Month)
	s.True(decimal.RequireFromString("80.25").Equal(budgets[0].Amount))
	s.Require().NotNil(budgets[0].CategoryID)
	s.Equal(category.ID, *budgets[0].CategoryID)
	s.Require().NotNil(budgets[0].Notes)
	s.Equal(notes, *budgets[0].Notes)
}

func (s *BudgetRepositorySuite) TestUpdateForUser_ForeignOrMissingIsNotFound() {
	budget := s.newBudget(s.alice, nil, "2024-04", "100")
	s.Require().NoError(s.repo.Create(budget))

	foreign := s.newBudget(s.bob, nil, "2024-04", "1")
	foreign.ID = budget.ID
	s.ErrorIs(s.repo.UpdateForUser(foreign), ErrBudgetNotFound)

	missing := s.newBudget(s.alice, nil, "2024-04", "1")
	missing.ID = uuid.New()
	s.ErrorIs(s.repo.UpdateForUser(missing), ErrBudgetNotFound)

	budgets, err := s.repo.ListByUser(s.alice.ID)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(100).Equal(budgets[0].Amount))
}

func (s *BudgetRepositorySuite) TestUpdateForUser_InvalidMonth() {
	budget := s.newBudget(s.alice, nil, "2024-04", "100")
	s.Require().NoError(s.repo.Create(budget))

	budget.Month = "April"

	s.ErrorIs(s.repo.UpdateForUser(budget), models.ErrInvalidBudgetMonth)
}

func (s *BudgetRepositorySuite) TestDeleteForUser() {
	budget := s.newBudget(s.alice, nil, "2024-04", "100")
	s.Require().NoError(s.repo.Create(budget))

	s.ErrorIs(s.repo.DeleteForUser(budget.ID, s.bob.ID), ErrBudgetNotFound)
	s.NoError(s.repo.DeleteForUser(budget.ID, s.alice.ID))
	s.ErrorIs(s.repo.DeleteForUser(budget.ID, s.alice.ID), ErrBudgetNotFound)
}

func (s *BudgetRepositorySuite) TestDatabaseFailure() {
	s.Require().NoError(s.db.Close())

	_, err := s.repo.ListByUser(s.alice.ID)
	s.ErrorContains(err, "failed to list budgets")
}
