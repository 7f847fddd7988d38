package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// GoalHandler handles savings-goal requests.
type GoalHandler struct {
	goalService services.GoalServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// CreateGoalRequest represents the request payload for creating a savings goal.
type CreateGoalRequest struct {
	Name         string  `json:"name" binding:"required,min=1,max=100"`
	TargetAmount float64 `json:"targetAmount" binding:"required,gt=0"`
	TargetDate   string  `json:"targetDate" binding:"required"`
	Category     string  `json:"category"`
}

// UpdateGoalRequest represents the request payload for a partial goal update.
type UpdateGoalRequest struct {
	Name         *string  `json:"name" binding:"omitempty,min=1,max=100"`
	TargetAmount *float64 `json:"targetAmount" binding:"omitempty,gt=0"`
	TargetDate   *string  `json:"targetDate"`
	Category     *string  `json:"category"`
}

// AddContributionRequest represents the request payload for a goal contribution.
type AddContributionRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Date   *string `json:"date"`
	Note   string  `json:"note" binding:"max=200"`
}

// CreateGoal handles the creation of a new savings goal.
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	targetDate, err := parseDate(req.TargetDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.CreateGoal(req.Name, req.TargetAmount, targetDate, req.Category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// GetGoals returns all savings goals.
func (h *GoalHandler) GetGoals(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"goals": h.goalService.GetGoals()})
}

// UpdateGoal handles a partial goal update.
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	update := services.GoalUpdate{
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		Category:     req.Category,
	}
	targetDate, err := parseOptionalDate(req.TargetDate)
	if err != nil {
		respondWithError(c, err)
		return
	}
	update.TargetDate = targetDate

	goal, err := h.goalService.UpdateGoal(c.Param("id"), update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// DeleteGoal removes a goal and its contributions.
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	if err := h.goalService.DeleteGoal(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddContribution records a contribution toward a goal. Contributions to a
// goal that no longer exists are accepted and discarded.
func (h *GoalHandler) AddContribution(c *gin.Context) {
	var req AddContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date := time.Now()
	if parsed, err := parseOptionalDate(req.Date); err != nil {
		respondWithError(c, err)
		return
	} else if parsed != nil {
		date = *parsed
	}

	contribution, err := h.goalService.AddContribution(c.Param("id"), req.Amount, date, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if contribution == nil {
		c.JSON(http.StatusOK, gin.H{"contribution": nil})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"contribution": contribution})
}

// GetContributions returns the contributions recorded for a goal.
func (h *GoalHandler) GetContributions(c *gin.Context) {
	contributions := h.goalService.GetContributions(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"contributions": contributions})
}

// GetProgress reports each goal's completion percentage and estimated
// completion date.
func (h *GoalHandler) GetProgress(c *gin.Context) {
	progress := h.goalService.GetSavingsProgress()
	if progress == nil {
		progress = []services.GoalProgress{}
	}
	c.JSON(http.StatusOK, gin.H{"progress": progress})
}
