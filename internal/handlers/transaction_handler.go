package handlers

import (
	"net/http"

	"finance-api/internal/dto"
	apperrors "finance-api/internal/errors"
	"finance-api/internal/models"
	"finance-api/internal/services"

	"github.com/labstack/echo/v4"
)

const (
	msgTransactionCreated = "Transaction added successfully."
	msgTransactionUpdated = "✅ Transaction updated successfully!"
	msgTransactionDeleted = "✅ Transaction deleted successfully!"
)

// TransactionHandler serves the ledger, its categories and its summaries
type TransactionHandler struct {
	transactionService services.TransactionServiceInterface
	summaryService     services.SummaryServiceInterface
}

func NewTransactionHandler(
	transactionService services.TransactionServiceInterface,
	summaryService services.SummaryServiceInterface,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		summaryService:     summaryService,
	}
}

// CreateTransaction records an income or expense
// @Summary Add a transaction
// @Description The category is reused by (name, type) or created on first use
// @Tags Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateTransactionRequest true "Transaction"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 / VALIDATION_007"
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	userID, ok, err := requireUserID(c)
	if !ok {
		return err
	}

	var req dto.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	transaction, err := h.transactionService.Create(c.Request().Context(), userID, &req)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.MessageResponse{
		Message: msgTransactionCreated,
		ID:      &transaction.ID,
	})
}

// ListTransactions returns the caller's transactions, newest first
// @Summary List transactions
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.TransactionResponse
// @Router /transactions [get]
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	userID, ok, err := requireUserID(c)
	if !ok {
		return err
	}

	transactions, err := h.transactionService.List(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	response := make([]dto.TransactionResponse, 0, len(transactions))
	for i := range transactions {
		response = append(response, toTransactionResponse(&transactions[i]))
	}
	return c.JSON(http.StatusOK, response)
}

// UpdateTransaction overwrites a transaction the caller owns
// @Summary Update a transaction
// @Tags Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body dto.UpdateTransactionRequest true "Transaction"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - neither category nor customCategory"
// @Failure 404 {object} errors.ErrorResponse "TRANSACTION_001"
// @Router /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	userID, ok, err := requireUserID(c)
	if !ok {
		return err
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return SendError(c, apperrors.TransactionNotFound)
	}

	var req dto.UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	if _, err := h.transactionService.Update(c.Request().Context(), userID, id, &req); err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: msgTransactionUpdated})
}

// DeleteTransaction removes a transaction the caller owns
// @Summary Delete a transaction
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} errors.ErrorResponse "TRANSACTION_001"
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	userID, ok, err := requireUserID(c)
	if !ok {
		return err
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return SendError(c, apperrors.TransactionNotFound)
	}

	if err := h.transactionService.Delete(c.Request().Context(), userID, id); err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: msgTransactionDeleted})
}

// ListCategories returns the category picker: "General Budget" followed by the caller's categories
// @Summary List categories
// @Tags Categories
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Router /categories [get]
func (h *TransactionHandler) ListCategories(c echo.Context) error {
	userID, ok, err := requireUserID(c)
	if !ok {
		return err
	}

	categories, err := h.transactionService.ListCategories(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	response := make([]dto.CategoryResponse, 0, len(categories)+1)
	response = append(response, dto.CategoryResponse{Name: models.GeneralBudgetName})
	for i := range categories {
		category := categories[i]
		response = append(response, dto.CategoryResponse{
			ID:   &category.ID,
			Name: category.Name,
			Type: &category.Type,
		})
	}
	return c.JSON(http.StatusOK, response)
}

// GetSummary returns income, expense and balance totals
// @Summary Dashboard totals
// @Tags Summaries
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.TransactionTotals
// @Router /transactions/summary [get]
func (h *TransactionHandler) GetSummary(c echo.Context) error {
	userID, ok, err := requireUserID(c)
	if !ok {
		return err
	}

	totals, err := h.summaryService.Totals(userID)
	if err != nil {
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, totals)
}

// GetMonthlySummary returns expense totals per month, oldest first
// @Summary Monthly expense series
// @Tags Summaries
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.MonthlyExpense
// @Router /transactions/monthly-summary [get]
func (h *TransactionHandler) GetMonthlySummary(c echo.Context) error {
	userID, ok, err := requireUserID(c)
	if !ok {
		return err
	}

	series, err := h.summaryService.MonthlySeries(userID)
	if err != nil {
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, series)
}

// GetCategorySummary returns totals per category, largest first
// @Summary Category breakdown
// @Tags Summaries
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.CategorySummary
// @Router /transactions/category-summary [get]
func (h *TransactionHandler) GetCategorySummary(c echo.Context) error {
	userID, ok, err := requireUserID(c)
	if !ok {
		return err
	}

	breakdown, err := h.summaryService.CategoryBreakdown(userID)
	if err != nil {
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, breakdown)
}

func toTransactionResponse(t *models.Transaction) dto.TransactionResponse {
	response := dto.TransactionResponse{
		ID:              t.ID,
		Amount:          t.Amount,
		Type:            t.Type,
		Date:            t.Date.Format(models.DateLayout),
		Notes:           t.Notes,
		TransactionMode: t.TransactionMode,
		CategoryID:      t.CategoryID,
		CustomCategory:  t.CustomCategory,
	}
	if name := t.CategoryName(); name != "" {
		response.CategoryName = &name
	}
	return response
}
