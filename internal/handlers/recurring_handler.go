package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

// RecurringHandler handles recurring-rule requests.
type RecurringHandler struct {
	recurringService services.RecurringServicer
}

// NewRecurringHandler creates a new RecurringHandler.
func NewRecurringHandler(recurringService services.RecurringServicer) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService}
}

// CreateRuleRequest represents the request payload for creating a recurring rule.
type CreateRuleRequest struct {
	Description string  `json:"description" binding:"required,min=1,max=200"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Type        string  `json:"type" binding:"required,transaction_type"`
	Category    string  `json:"category"`
	AccountID   string  `json:"accountId" binding:"required"`
	ToAccountID string  `json:"toAccountId"`
	Interval    string  `json:"interval" binding:"required,recurring_interval"`
	StartDate   string  `json:"startDate" binding:"required"`
	EndDate     *string `json:"endDate"`
}

// UpdateRuleRequest represents the request payload for a partial rule update.
type UpdateRuleRequest struct {
	Description *string  `json:"description" binding:"omitempty,min=1,max=200"`
	Amount      *float64 `json:"amount" binding:"omitempty,gt=0"`
	Category    *string  `json:"category"`
	Interval    *string  `json:"interval" binding:"omitempty,recurring_interval"`
	EndDate     *string  `json:"endDate"`
	IsActive    *bool    `json:"isActive"`
}

// CreateRule handles the creation of a new recurring rule.
func (h *RecurringHandler) CreateRule(c *gin.Context) {
	var req CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		respondWithError(c, err)
		return
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rule, err := h.recurringService.CreateRule(services.RecurringRuleInput{
		Description: req.Description,
		Amount:      req.Amount,
		Type:        models.TransactionType(req.Type),
		Category:    req.Category,
		AccountID:   req.AccountID,
		ToAccountID: req.ToAccountID,
		Interval:    models.RecurringInterval(req.Interval),
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"rule": rule})
}

// GetRules returns all recurring rules.
func (h *RecurringHandler) GetRules(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rules": h.recurringService.GetRules()})
}

// UpdateRule handles a partial rule update.
func (h *RecurringHandler) UpdateRule(c *gin.Context) {
	var req UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	update := services.RecurringRuleUpdate{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		IsActive:    req.IsActive,
	}
	if req.Interval != nil {
		interval := models.RecurringInterval(*req.Interval)
		update.Interval = &interval
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		respondWithError(c, err)
		return
	}
	update.EndDate = endDate

	rule, err := h.recurringService.UpdateRule(c.Param("id"), update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rule": rule})
}

// DeleteRule removes a rule and the transactions it materialized.
func (h *RecurringHandler) DeleteRule(c *gin.Context) {
	if err := h.recurringService.DeleteRule(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetOccurrences expands a rule into its occurrence dates inside a window.
// Defaults to the next 90 days.
func (h *RecurringHandler) GetOccurrences(c *gin.Context) {
	from := time.Now()
	to := from.AddDate(0, 0, 90)

	if raw := c.Query("from"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			respondWithError(c, err)
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			respondWithError(c, err)
			return
		}
		to = parsed
	}

	occurrences, err := h.recurringService.GetOccurrences(c.Param("id"), from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if occurrences == nil {
		occurrences = []time.Time{}
	}
	c.JSON(http.StatusOK, gin.H{"occurrences": occurrences})
}

// Materialize runs a materialization pass over all due rules and returns the
// transactions it created.
func (h *RecurringHandler) Materialize(c *gin.Context) {
	created, err := h.recurringService.MaterializeDue()
	if err != nil {
		respondWithError(c, err)
		return
	}
	if created == nil {
		created = []models.Transaction{}
	}
	c.JSON(http.StatusOK, gin.H{"transactions": created})
}
