package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

// --- mock transaction service ---

type mockTransactionService struct {
	createTransactionFn func(input services.TransactionInput) (*models.Transaction, error)
	updateTransactionFn func(id string, update services.TransactionUpdate) (*models.Transaction, error)
	deleteTransactionFn func(id string) error
	createTransferFn    func(fromAccountID, toAccountID string, amount float64, description string) (*models.Transaction, error)
	getFilteredFn       func(filter services.TransactionFilter) []models.Transaction
	getGroupedFn        func(filter services.TransactionFilter) []services.TransactionGroup
	getUpcomingFn       func(days int) []models.Transaction
	activatePlannedFn   func() int
}

func (m *mockTransactionService) CreateTransaction(input services.TransactionInput) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(input)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) UpdateTransaction(id string, update services.TransactionUpdate) (*models.Transaction, error) {
	if m.updateTransactionFn != nil {
		return m.updateTransactionFn(id, update)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) DeleteTransaction(id string) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(id)
	}
	return nil
}

func (m *mockTransactionService) CreateTransfer(fromAccountID, toAccountID string, amount float64, description string) (*models.Transaction, error) {
	if m.createTransferFn != nil {
		return m.createTransferFn(fromAccountID, toAccountID, amount, description)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) GetFilteredTransactions(filter services.TransactionFilter) []models.Transaction {
	if m.getFilteredFn != nil {
		return m.getFilteredFn(filter)
	}
	return []models.Transaction{}
}

func (m *mockTransactionService) GetGroupedTransactions(filter services.TransactionFilter) []services.TransactionGroup {
	if m.getGroupedFn != nil {
		return m.getGroupedFn(filter)
	}
	return []services.TransactionGroup{}
}

func (m *mockTransactionService) GetUpcomingTransactions(days int) []models.Transaction {
	if m.getUpcomingFn != nil {
		return m.getUpcomingFn(days)
	}
	return []models.Transaction{}
}

func (m *mockTransactionService) ActivatePlanned() int {
	if m.activatePlannedFn != nil {
		return m.activatePlannedFn()
	}
	return 0
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	r.POST("/transactions", handler.CreateTransaction)
	r.PUT("/transactions/:id", handler.UpdateTransaction)
	r.DELETE("/transactions/:id", handler.DeleteTransaction)
	r.POST("/transactions/transfer", handler.CreateTransfer)
	r.GET("/transactions", handler.GetTransactions)
	r.GET("/transactions/grouped", handler.GetGroupedTransactions)
	r.GET("/transactions/upcoming", handler.GetUpcomingTransactions)
	r.POST("/transactions/activate-planned", handler.ActivatePlanned)
	return r
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		txSvc := &mockTransactionService{
			createTransactionFn: func(input services.TransactionInput) (*models.Transaction, error) {
				return &models.Transaction{ID: "tx1", Description: input.Description, Amount: input.Amount}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "POST", "/transactions",
			`{"description":"Coffee","amount":4.5,"type":"expense","accountId":"cash"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		tx := result["transaction"].(map[string]interface{})
		if tx["description"] != "Coffee" {
			t.Errorf("expected Coffee, got %v", tx["description"])
		}
	})

	t.Run("returns 400 on missing amount", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "POST", "/transactions",
			`{"description":"Coffee","type":"expense","accountId":"cash"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on bad date", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "POST", "/transactions",
			`{"description":"Coffee","amount":4.5,"type":"expense","accountId":"cash","date":"tomorrow"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("passes parsed calendar date through", func(t *testing.T) {
		var captured services.TransactionInput
		txSvc := &mockTransactionService{
			createTransactionFn: func(input services.TransactionInput) (*models.Transaction, error) {
				captured = input
				return &models.Transaction{}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "POST", "/transactions",
			`{"description":"Rent","amount":900,"type":"expense","accountId":"bank","date":"2024-03-01"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		if captured.Date == nil || captured.Date.Day() != 1 {
			t.Errorf("expected parsed date, got %v", captured.Date)
		}
	})
}

func TestTransactionHandler_CreateTransfer(t *testing.T) {
	t.Run("returns 400 for same-account transfer", func(t *testing.T) {
		txSvc := &mockTransactionService{
			createTransferFn: func(from, to string, amount float64, desc string) (*models.Transaction, error) {
				return nil, apperrors.ErrSameAccountTransfer
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "POST", "/transactions/transfer",
			`{"fromAccountId":"cash","toAccountId":"cash","amount":50}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), apperrors.ErrSameAccountTransfer.Code)
	})
}

func TestTransactionHandler_GetTransactions(t *testing.T) {
	t.Run("forwards filters and paginates", func(t *testing.T) {
		var captured services.TransactionFilter
		txSvc := &mockTransactionService{
			getFilteredFn: func(filter services.TransactionFilter) []models.Transaction {
				captured = filter
				return []models.Transaction{{ID: "tx1"}, {ID: "tx2"}}
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "GET", "/transactions?type=expense&account_id=cash&tags=work,travel&include_planned=true", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if captured.Type != "expense" || captured.AccountID != "cash" || !captured.IncludePlanned {
			t.Errorf("filter not forwarded: %+v", captured)
		}
		if len(captured.Tags) != 2 {
			t.Errorf("expected 2 tags, got %v", captured.Tags)
		}
		result := parseJSON(t, rec)
		if result["total_items"] != float64(2) {
			t.Errorf("expected 2 total items, got %v", result["total_items"])
		}
	})
}

func TestTransactionHandler_GetUpcomingTransactions(t *testing.T) {
	t.Run("defaults to 30 days", func(t *testing.T) {
		var captured int
		txSvc := &mockTransactionService{
			getUpcomingFn: func(days int) []models.Transaction {
				captured = days
				return nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "GET", "/transactions/upcoming", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if captured != 30 {
			t.Errorf("expected 30 day default, got %d", captured)
		}
	})

	t.Run("rejects non-positive horizon", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "GET", "/transactions/upcoming?days=0", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_ActivatePlanned(t *testing.T) {
	txSvc := &mockTransactionService{
		activatePlannedFn: func() int { return 3 },
	}
	r := setupTransactionRouter(NewTransactionHandler(txSvc))

	rec := doRequest(r, "POST", "/transactions/activate-planned", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["activated"] != float64(3) {
		t.Errorf("expected 3 activated, got %v", result["activated"])
	}
}
