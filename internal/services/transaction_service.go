package services

import (
	"sort"
	"strings"
	"time"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/store"
	"fintrack/internal/uuid"
)

// groupDateLayout is the human-readable day key for grouped views.
const groupDateLayout = "January 2, 2006"

// transactionService handles transaction-related business logic.
type transactionService struct {
	store *store.Store
	clock func() time.Time
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(st *store.Store) TransactionServicer {
	return &transactionService{store: st, clock: time.Now}
}

// CreateTransaction creates a new transaction and prepends it to the ledger.
// The amount is rounded to cents; a caller-supplied date is merged with the
// current time of day.
func (s *transactionService) CreateTransaction(input TransactionInput) (*models.Transaction, error) {
	if input.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if input.AccountID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account is required")
	}
	if input.Type == models.TransactionTypeTransfer {
		if input.ToAccountID == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transfer requires a destination account")
		}
		if input.ToAccountID == input.AccountID {
			return nil, apperrors.ErrSameAccountTransfer
		}
	}

	now := s.clock()
	ts := now
	if input.Date != nil {
		ts = mergeDateWithTime(*input.Date, now)
	}

	tx := models.Transaction{
		ID:              uuid.New(),
		Description:     input.Description,
		Amount:          money.Round2(input.Amount),
		Type:            input.Type,
		Category:        input.Category,
		AccountID:       input.AccountID,
		ToAccountID:     input.ToAccountID,
		Timestamp:       ts.UnixMilli(),
		IsPlanned:       input.IsPlanned,
		RecurringRuleID: input.RecurringRuleID,
		Tags:            input.Tags,
		Notes:           input.Notes,
	}

	err := s.store.Update(func(st *store.State) error {
		st.Transactions = append([]models.Transaction{tx}, st.Transactions...)
		return nil
	}, store.ColTransactions)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// UpdateTransaction merges the given fields into an existing transaction.
// The amount, when present, is re-rounded.
func (s *transactionService) UpdateTransaction(id string, update TransactionUpdate) (*models.Transaction, error) {
	var updated *models.Transaction
	err := s.store.Update(func(st *store.State) error {
		for i := range st.Transactions {
			if st.Transactions[i].ID != id {
				continue
			}
			tx := &st.Transactions[i]
			if update.Description != nil {
				tx.Description = *update.Description
			}
			if update.Amount != nil {
				tx.Amount = money.Round2(*update.Amount)
			}
			if update.Type != nil {
				tx.Type = *update.Type
			}
			if update.Category != nil {
				tx.Category = *update.Category
			}
			if update.AccountID != nil {
				tx.AccountID = *update.AccountID
			}
			if update.ToAccountID != nil {
				tx.ToAccountID = *update.ToAccountID
			}
			if update.Timestamp != nil {
				tx.Timestamp = *update.Timestamp
			}
			if update.IsPlanned != nil {
				tx.IsPlanned = *update.IsPlanned
			}
			if update.Tags != nil {
				tx.Tags = *update.Tags
			}
			if update.Notes != nil {
				tx.Notes = *update.Notes
			}
			result := *tx
			updated = &result
			return nil
		}
		return apperrors.ErrTransactionNotFound
	}, store.ColTransactions)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTransaction removes a transaction by id. An absent id is a no-op.
func (s *transactionService) DeleteTransaction(id string) error {
	return s.store.Update(func(st *store.State) error {
		for i := range st.Transactions {
			if st.Transactions[i].ID == id {
				st.Transactions = removeAt(st.Transactions, i)
				return nil
			}
		}
		return nil
	}, store.ColTransactions)
}

// CreateTransfer records a transfer as a single transaction row with the
// source in AccountID and the destination in ToAccountID. Balance derivation
// interprets the one row as a debit on one side and a credit on the other.
func (s *transactionService) CreateTransfer(fromAccountID, toAccountID string, amount float64, description string) (*models.Transaction, error) {
	if fromAccountID == toAccountID {
		return nil, apperrors.ErrSameAccountTransfer
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	return s.CreateTransaction(TransactionInput{
		Description: description,
		Amount:      amount,
		Type:        models.TransactionTypeTransfer,
		AccountID:   fromAccountID,
		ToAccountID: toAccountID,
	})
}

// GetFilteredTransactions returns all transactions matching the filter,
// newest first.
func (s *transactionService) GetFilteredTransactions(filter TransactionFilter) []models.Transaction {
	var result []models.Transaction
	s.store.View(func(st store.State) {
		for _, tx := range st.Transactions {
			if matches(tx, filter) {
				result = append(result, tx)
			}
		}
	})
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp > result[j].Timestamp
	})
	return result
}

func matches(tx models.Transaction, f TransactionFilter) bool {
	if tx.IsPlanned && !f.IncludePlanned {
		return false
	}
	if f.Type != "" && f.Type != "all" && string(tx.Type) != f.Type {
		return false
	}
	if f.Category != "" && tx.Category != f.Category {
		return false
	}
	if f.AccountID != "" && !tx.Touches(f.AccountID) {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(tx.Description), strings.ToLower(f.Search)) {
		return false
	}
	if len(f.Tags) > 0 && !matchesTags(tx.Tags, f.Tags) {
		return false
	}
	if f.DateFrom != nil || f.DateTo != nil {
		day := dateOnly(tx.Time())
		if f.DateFrom != nil && day.Before(dateOnly(*f.DateFrom)) {
			return false
		}
		if f.DateTo != nil && day.After(dateOnly(*f.DateTo)) {
			return false
		}
	}
	return true
}

// matchesTags reports whether any transaction tag contains any of the filter
// tags as a case-insensitive substring. A transaction without tags never
// matches a tag filter.
func matchesTags(txTags, filterTags []string) bool {
	if len(txTags) == 0 {
		return false
	}
	for _, want := range filterTags {
		w := strings.ToLower(want)
		for _, have := range txTags {
			if strings.Contains(strings.ToLower(have), w) {
				return true
			}
		}
	}
	return false
}

// GetGroupedTransactions buckets the filtered transactions by calendar day,
// preserving recency order within and across buckets.
func (s *transactionService) GetGroupedTransactions(filter TransactionFilter) []TransactionGroup {
	filtered := s.GetFilteredTransactions(filter)

	var groups []TransactionGroup
	index := make(map[string]int)
	for _, tx := range filtered {
		key := tx.Time().Format(groupDateLayout)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, TransactionGroup{Date: key})
		}
		groups[i].Transactions = append(groups[i].Transactions, tx)
	}
	return groups
}

// GetUpcomingTransactions returns planned transactions whose effective time
// falls within [now, now+days], soonest first.
func (s *transactionService) GetUpcomingTransactions(days int) []models.Transaction {
	now := s.clock()
	horizon := now.AddDate(0, 0, days)

	var upcoming []models.Transaction
	s.store.View(func(st store.State) {
		for _, tx := range st.Transactions {
			if !tx.IsPlanned {
				continue
			}
			t := tx.Time()
			if !t.Before(now) && !t.After(horizon) {
				upcoming = append(upcoming, tx)
			}
		}
	})
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Timestamp < upcoming[j].Timestamp
	})
	return upcoming
}

// ActivatePlanned promotes every planned transaction whose time has arrived:
// the planned flag is cleared and the timestamp is rewritten to the
// activation moment, not the originally planned date. Returns the number of
// transactions activated.
func (s *transactionService) ActivatePlanned() int {
	now := s.clock()
	activated := 0
	_ = s.store.Update(func(st *store.State) error {
		for i := range st.Transactions {
			tx := &st.Transactions[i]
			if tx.IsPlanned && tx.Timestamp <= now.UnixMilli() {
				tx.IsPlanned = false
				tx.Timestamp = now.UnixMilli()
				activated++
			}
		}
		return nil
	}, store.ColTransactions)
	return activated
}
