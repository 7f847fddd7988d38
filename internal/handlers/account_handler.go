package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

// AccountHandler handles account-related requests.
type AccountHandler struct {
	accountService services.AccountServicer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService services.AccountServicer) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CreateAccountRequest represents the request payload for creating an account.
type CreateAccountRequest struct {
	Name           string  `json:"name" binding:"required,min=1,max=100"`
	Type           string  `json:"type" binding:"required,account_type"`
	OpeningBalance float64 `json:"openingBalance"`
	Color          string  `json:"color" binding:"omitempty,hex_color"`
}

// UpdateAccountRequest represents the request payload for updating an account.
type UpdateAccountRequest struct {
	Name    *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Type    *string  `json:"type" binding:"omitempty,account_type"`
	Balance *float64 `json:"balance"`
	Color   *string  `json:"color" binding:"omitempty,hex_color"`
}

// CreateAccount handles the creation of a new account.
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.CreateAccount(req.Name, models.AccountType(req.Type), req.OpeningBalance, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"account": account})
}

// GetAccounts returns all accounts.
func (h *AccountHandler) GetAccounts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"accounts": h.accountService.GetAccounts()})
}

// GetAccountByID returns one account along with its derived balance.
func (h *AccountHandler) GetAccountByID(c *gin.Context) {
	id := c.Param("id")

	account, err := h.accountService.GetAccountByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	balance, err := h.accountService.GetAccountBalance(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account, "currentBalance": balance})
}

// UpdateAccount handles a partial account update.
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.AccountUpdateFields{
		Name:    req.Name,
		Balance: req.Balance,
		Color:   req.Color,
	}
	if req.Type != nil {
		accountType := models.AccountType(*req.Type)
		fields.Type = &accountType
	}

	account, err := h.accountService.UpdateAccount(c.Param("id"), fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// DeleteAccount removes an account and its transactions.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	if err := h.accountService.DeleteAccount(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetTotalBalance returns the sum of opening balances across accounts.
func (h *AccountHandler) GetTotalBalance(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"totalBalance": h.accountService.GetTotalAccountsBalance()})
}
