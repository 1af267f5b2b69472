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
	msgBudgetCreated = "✅ Budget added successfully"
	msgBudgetUpdated = "✅ Budget updated successfully"
	msgBudgetDeleted = "✅ Budget deleted successfully"
)

// BudgetHandler handles the caller's monthly budgets
type BudgetHandler struct {
	budgetService services.BudgetServiceInterface
}

func NewBudgetHandler(budgetService services.BudgetServiceInterface) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// CreateBudget handles POST /api/budgets
// @Summary Add a budget
// @Tags Budgets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.BudgetRequest true "Budget"
// @Success 201 {object} dto.BudgetCreatedResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 / VALIDATION_008"
// @Router /budgets [post]
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	userID, ok, err := requireUserID(c)
	if !ok {
		return err
	}

	var req dto.BudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	budget, err := h.budgetService.Create(c.Request().Context(), userID, &req)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.BudgetCreatedResponse{
		Message:  msgBudgetCreated,
		BudgetID: budget.ID,
	})
}

// ListBudgets handles GET /api/budgets
// @Summary List budgets
// @Tags Budgets
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.BudgetResponse
// @Router /budgets [get]
func (h *BudgetHandler) ListBudgets(c echo.Context) error {
	userID, ok, err := requireUserID(c)
	if !ok {
		return err
	}

	budgets, err := h.budgetService.List(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	response := make([]dto.BudgetResponse, 0, len(budgets))
	for i := range budgets {
		response = append(response, toBudgetResponse(&budgets[i]))
	}
	return c.JSON(http.StatusOK, response)
}

// UpdateBudget handles PUT /api/budgets/:id
// @Summary Update a budget
// @Tags Budgets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Budget ID"
// @Param request body dto.BudgetRequest true "Budget"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} errors.ErrorResponse "BUDGET_001 - missing or owned by someone else"
// @Router /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	userID, ok, err := requireUserID(c)
	if !ok {
		return err
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return SendError(c, apperrors.BudgetNotFound)
	}

	var req dto.BudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	if _, err := h.budgetService.Update(c.Request().Context(), userID, id, &req); err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: msgBudgetUpdated})
}

// DeleteBudget handles DELETE /api/budgets/:id
// @Summary Delete a budget
// @Tags Budgets
// @Security BearerAuth
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} errors.ErrorResponse "BUDGET_001"
// @Router /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	userID, ok, err := requireUserID(c)
	if !ok {
		return err
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return SendError(c, apperrors.BudgetNotFound)
	}

	if err := h.budgetService.Delete(c.Request().Context(), userID, id); err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: msgBudgetDeleted})
}

func toBudgetResponse(b *models.Budget) dto.BudgetResponse {
	response := dto.BudgetResponse{
		ID:         b.ID,
		CategoryID: b.CategoryID,
		Amount:     b.Amount,
		Month:      b.Month,
		Notes:      b.Notes,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
	if b.Category != nil {
		name, entryType := b.Category.Name, b.Category.Type
		response.CategoryName = &name
		response.CategoryType = &entryType
	}
	return response
}
