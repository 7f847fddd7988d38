package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// CreateBudgetRequest represents the request payload for creating a budget.
type CreateBudgetRequest struct {
	CategoryID string  `json:"categoryId" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Month      string  `json:"month" binding:"required,month_key"`
}

// UpdateBudgetRequest represents the request payload for a partial budget update.
type UpdateBudgetRequest struct {
	Amount *float64 `json:"amount" binding:"omitempty,gt=0"`
	Month  *string  `json:"month" binding:"omitempty,month_key"`
}

// CreateBudget handles the creation of a new budget.
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.CreateBudget(req.CategoryID, req.Amount, req.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// GetBudgets returns all budgets, each annotated with the month's spending so far.
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	budgets := h.budgetService.GetBudgets()

	type budgetWithSpending struct {
		ID         string  `json:"id"`
		CategoryID string  `json:"categoryId"`
		Amount     float64 `json:"amount"`
		Month      string  `json:"month"`
		Spent      float64 `json:"spent"`
	}

	out := make([]budgetWithSpending, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, budgetWithSpending{
			ID:         b.ID,
			CategoryID: b.CategoryID,
			Amount:     b.Amount,
			Month:      b.Month,
			Spent:      h.budgetService.GetCategorySpending(b.CategoryID, b.Month),
		})
	}
	c.JSON(http.StatusOK, gin.H{"budgets": out})
}

// UpdateBudget handles a partial budget update.
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.UpdateBudget(c.Param("id"), req.Amount, req.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// DeleteBudget removes a budget.
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	if err := h.budgetService.DeleteBudget(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetPredictions flags budgets projected to overrun by month end. Defaults
// to the current month.
func (h *BudgetHandler) GetPredictions(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}

	predictions := h.budgetService.GetPredictions(month)
	if predictions == nil {
		predictions = []services.BudgetPrediction{}
	}
	c.JSON(http.StatusOK, gin.H{"predictions": predictions})
}
