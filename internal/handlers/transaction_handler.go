package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for creating a transaction.
type CreateTransactionRequest struct {
	Description string   `json:"description" binding:"required,min=1,max=200"`
	Amount      float64  `json:"amount" binding:"required,gt=0"`
	Type        string   `json:"type" binding:"required,transaction_type"`
	Category    string   `json:"category"`
	AccountID   string   `json:"accountId" binding:"required"`
	ToAccountID string   `json:"toAccountId"`
	Date        *string  `json:"date"`
	IsPlanned   bool     `json:"isPlanned"`
	Tags        []string `json:"tags"`
	Notes       string   `json:"notes" binding:"max=500"`
}

// UpdateTransactionRequest represents the request payload for a partial update.
type UpdateTransactionRequest struct {
	Description *string   `json:"description" binding:"omitempty,min=1,max=200"`
	Amount      *float64  `json:"amount" binding:"omitempty,gt=0"`
	Type        *string   `json:"type" binding:"omitempty,transaction_type"`
	Category    *string   `json:"category"`
	AccountID   *string   `json:"accountId"`
	ToAccountID *string   `json:"toAccountId"`
	Timestamp   *int64    `json:"timestamp"`
	IsPlanned   *bool     `json:"isPlanned"`
	Tags        *[]string `json:"tags"`
	Notes       *string   `json:"notes" binding:"omitempty,max=500"`
}

// CreateTransferRequest represents the request payload for a transfer.
type CreateTransferRequest struct {
	FromAccountID string  `json:"fromAccountId" binding:"required"`
	ToAccountID   string  `json:"toAccountId" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Description   string  `json:"description" binding:"max=200"`
}

// CreateTransaction handles the creation of a new transaction.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseOptionalDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := h.transactionService.CreateTransaction(services.TransactionInput{
		Description: req.Description,
		Amount:      req.Amount,
		Type:        models.TransactionType(req.Type),
		Category:    req.Category,
		AccountID:   req.AccountID,
		ToAccountID: req.ToAccountID,
		Date:        date,
		IsPlanned:   req.IsPlanned,
		Tags:        req.Tags,
		Notes:       req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": tx})
}

// UpdateTransaction handles a partial transaction update.
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	update := services.TransactionUpdate{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		AccountID:   req.AccountID,
		ToAccountID: req.ToAccountID,
		Timestamp:   req.Timestamp,
		IsPlanned:   req.IsPlanned,
		Tags:        req.Tags,
		Notes:       req.Notes,
	}
	if req.Type != nil {
		txType := models.TransactionType(*req.Type)
		update.Type = &txType
	}

	tx, err := h.transactionService.UpdateTransaction(c.Param("id"), update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": tx})
}

// DeleteTransaction removes a transaction.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	if err := h.transactionService.DeleteTransaction(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateTransfer records a transfer between two accounts.
func (h *TransactionHandler) CreateTransfer(c *gin.Context) {
	var req CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	tx, err := h.transactionService.CreateTransfer(req.FromAccountID, req.ToAccountID, req.Amount, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": tx})
}

// GetTransactions returns a filtered, paginated page of transactions.
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := filterFromQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions := h.transactionService.GetFilteredTransactions(filter)
	c.JSON(http.StatusOK, pagination.Paginate(transactions, page))
}

// GetGroupedTransactions returns filtered transactions bucketed by calendar day.
func (h *TransactionHandler) GetGroupedTransactions(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	groups := h.transactionService.GetGroupedTransactions(filter)
	if groups == nil {
		groups = []services.TransactionGroup{}
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// GetUpcomingTransactions returns planned transactions due within a horizon
// of days (default 30).
func (h *TransactionHandler) GetUpcomingTransactions(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "days must be a positive integer"))
			return
		}
		days = parsed
	}

	upcoming := h.transactionService.GetUpcomingTransactions(days)
	if upcoming == nil {
		upcoming = []models.Transaction{}
	}
	c.JSON(http.StatusOK, gin.H{"transactions": upcoming})
}

// ActivatePlanned flips due planned transactions into real ones and reports
// how many were activated.
func (h *TransactionHandler) ActivatePlanned(c *gin.Context) {
	count := h.transactionService.ActivatePlanned()
	c.JSON(http.StatusOK, gin.H{"activated": count})
}

// filterFromQuery assembles a TransactionFilter from query parameters.
func filterFromQuery(c *gin.Context) (services.TransactionFilter, error) {
	filter := services.TransactionFilter{
		Type:           c.Query("type"),
		Category:       c.Query("category"),
		AccountID:      c.Query("account_id"),
		Search:         c.Query("search"),
		IncludePlanned: c.Query("include_planned") == "true",
	}

	if raw := c.Query("tags"); raw != "" {
		filter.Tags = strings.Split(raw, ",")
	}
	if raw := c.Query("date_from"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return filter, err
		}
		filter.DateFrom = &t
	}
	if raw := c.Query("date_to"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return filter, err
		}
		filter.DateTo = &t
	}
	return filter, nil
}
