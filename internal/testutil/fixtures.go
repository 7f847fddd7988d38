package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/store"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestAccount adds a non-default account with the given opening
// balance directly to the store.
func CreateTestAccount(t *testing.T, st *store.Store, accountType models.AccountType, balance float64) *models.Account {
	t.Helper()

	account := models.Account{
		ID:      fmt.Sprintf("acct-%d", nextID()),
		Name:    fmt.Sprintf("Test Account %d", nextID()),
		Type:    accountType,
		Balance: balance,
	}
	mustUpdate(t, st, func(s *store.State) error {
		s.Accounts = append(s.Accounts, account)
		return nil
	}, store.ColAccounts)
	return &account
}

// CreateTestCategory adds a non-default category directly to the store.
func CreateTestCategory(t *testing.T, st *store.Store, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := models.Category{
		ID:   fmt.Sprintf("cat-%d", nextID()),
		Name: fmt.Sprintf("Test Category %d", nextID()),
		Type: categoryType,
	}
	mustUpdate(t, st, func(s *store.State) error {
		s.Categories = append(s.Categories, category)
		return nil
	}, store.ColCategories)
	return &category
}

// CreateTestTransaction adds a transaction of the given type and amount,
// effective at the given time.
func CreateTestTransaction(t *testing.T, st *store.Store, accountID string, txType models.TransactionType, amount float64, at time.Time) *models.Transaction {
	t.Helper()

	tx := models.Transaction{
		ID:          fmt.Sprintf("tx-%d", nextID()),
		Description: fmt.Sprintf("Test Transaction %d", nextID()),
		Amount:      amount,
		Type:        txType,
		AccountID:   accountID,
		Timestamp:   at.UnixMilli(),
	}
	mustUpdate(t, st, func(s *store.State) error {
		s.Transactions = append([]models.Transaction{tx}, s.Transactions...)
		return nil
	}, store.ColTransactions)
	return &tx
}

// CreateTestRule adds an active recurring rule directly to the store.
func CreateTestRule(t *testing.T, st *store.Store, accountID string, interval models.RecurringInterval, amount float64, start time.Time) *models.RecurringRule {
	t.Helper()

	rule := models.RecurringRule{
		ID:          fmt.Sprintf("rule-%d", nextID()),
		Description: fmt.Sprintf("Test Rule %d", nextID()),
		Amount:      amount,
		Type:        models.TransactionTypeExpense,
		AccountID:   accountID,
		Interval:    interval,
		StartDate:   start,
		IsActive:    true,
	}
	mustUpdate(t, st, func(s *store.State) error {
		s.RecurringRules = append(s.RecurringRules, rule)
		return nil
	}, store.ColRecurringRules)
	return &rule
}

// CreateTestGoal adds a savings goal directly to the store.
func CreateTestGoal(t *testing.T, st *store.Store, target float64, createdAt time.Time) *models.SavingsGoal {
	t.Helper()

	goal := models.SavingsGoal{
		ID:           fmt.Sprintf("goal-%d", nextID()),
		Name:         fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount: target,
		TargetDate:   createdAt.AddDate(1, 0, 0),
		CreatedAt:    createdAt,
	}
	mustUpdate(t, st, func(s *store.State) error {
		s.SavingsGoals = append(s.SavingsGoals, goal)
		return nil
	}, store.ColSavingsGoals)
	return &goal
}

func mustUpdate(t *testing.T, st *store.Store, fn func(*store.State) error, changed ...string) {
	t.Helper()
	if err := st.Update(fn, changed...); err != nil {
		t.Fatalf("failed to apply fixture: %v", err)
	}
}
