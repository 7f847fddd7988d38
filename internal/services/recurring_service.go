package services

import (
	"time"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/recurring"
	"fintrack/internal/store"
	"fintrack/internal/uuid"
)

// recurringService handles recurring-rule business logic.
type recurringService struct {
	store *store.Store
	clock func() time.Time
}

// NewRecurringService creates a new RecurringServicer.
func NewRecurringService(st *store.Store) RecurringServicer {
	return &recurringService{store: st, clock: time.Now}
}

// CreateRule creates a new active recurring rule.
func (s *recurringService) CreateRule(input RecurringRuleInput) (*models.RecurringRule, error) {
	if input.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if input.AccountID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account is required")
	}
	if input.Type == models.TransactionTypeTransfer && input.ToAccountID == input.AccountID {
		return nil, apperrors.ErrSameAccountTransfer
	}

	rule := models.RecurringRule{
		ID:          uuid.New(),
		Description: input.Description,
		Amount:      money.Round2(input.Amount),
		Type:        input.Type,
		Category:    input.Category,
		AccountID:   input.AccountID,
		ToAccountID: input.ToAccountID,
		Interval:    input.Interval,
		StartDate:   recurring.DateOnly(input.StartDate),
		IsActive:    true,
	}
	if input.EndDate != nil {
		end := recurring.DateOnly(*input.EndDate)
		rule.EndDate = &end
	}

	err := s.store.Update(func(st *store.State) error {
		st.RecurringRules = append(st.RecurringRules, rule)
		return nil
	}, store.ColRecurringRules)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// GetRules returns all recurring rules.
func (s *recurringService) GetRules() []models.RecurringRule {
	var rules []models.RecurringRule
	s.store.View(func(st store.State) {
		rules = append(rules, st.RecurringRules...)
	})
	return rules
}

// UpdateRule merges the given fields into an existing rule.
func (s *recurringService) UpdateRule(id string, update RecurringRuleUpdate) (*models.RecurringRule, error) {
	var updated *models.RecurringRule
	err := s.store.Update(func(st *store.State) error {
		for i := range st.RecurringRules {
			if st.RecurringRules[i].ID != id {
				continue
			}
			rule := &st.RecurringRules[i]
			if update.Description != nil {
				rule.Description = *update.Description
			}
			if update.Amount != nil {
				rule.Amount = money.Round2(*update.Amount)
			}
			if update.Category != nil {
				rule.Category = *update.Category
			}
			if update.Interval != nil {
				rule.Interval = *update.Interval
			}
			if update.EndDate != nil {
				end := recurring.DateOnly(*update.EndDate)
				rule.EndDate = &end
			}
			if update.IsActive != nil {
				rule.IsActive = *update.IsActive
			}
			result := *rule
			updated = &result
			return nil
		}
		return apperrors.ErrRecurringRuleNotFound
	}, store.ColRecurringRules)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteRule removes a rule and cascades to every transaction it
// materialized.
func (s *recurringService) DeleteRule(id string) error {
	return s.store.Update(func(st *store.State) error {
		idx := -1
		for i := range st.RecurringRules {
			if st.RecurringRules[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil
		}
		st.RecurringRules = removeAt(st.RecurringRules, idx)

		kept := make([]models.Transaction, 0, len(st.Transactions))
		for _, tx := range st.Transactions {
			if tx.RecurringRuleID != id {
				kept = append(kept, tx)
			}
		}
		st.Transactions = kept
		return nil
	}, store.ColRecurringRules, store.ColTransactions)
}

// GetOccurrences expands a rule over [from, to] without touching state.
// Calendar and projection views call this freely.
func (s *recurringService) GetOccurrences(id string, from, to time.Time) ([]time.Time, error) {
	var (
		rule  models.RecurringRule
		found bool
	)
	s.store.View(func(st store.State) {
		for i := range st.RecurringRules {
			if st.RecurringRules[i].ID == id {
				rule = st.RecurringRules[i]
				found = true
				return
			}
		}
	})
	if !found {
		return nil, apperrors.ErrRecurringRuleNotFound
	}
	return recurring.ExpandWindow(rule, from, to), nil
}

// MaterializeDue creates at most one catch-up transaction per due rule,
// dated today, and advances the rule's LastProcessed to today. Multiple
// missed intervals are never backfilled.
func (s *recurringService) MaterializeDue() ([]models.Transaction, error) {
	now := s.clock()
	today := recurring.DateOnly(now)

	var created []models.Transaction
	err := s.store.Update(func(st *store.State) error {
		for i := range st.RecurringRules {
			rule := &st.RecurringRules[i]
			if !recurring.DueAt(*rule, today) {
				continue
			}

			tx := models.Transaction{
				ID:              uuid.New(),
				Description:     rule.Description,
				Amount:          money.Round2(rule.Amount),
				Type:            rule.Type,
				Category:        rule.Category,
				AccountID:       rule.AccountID,
				ToAccountID:     rule.ToAccountID,
				Timestamp:       now.UnixMilli(),
				RecurringRuleID: rule.ID,
			}
			st.Transactions = append([]models.Transaction{tx}, st.Transactions...)
			created = append(created, tx)

			processed := today
			rule.LastProcessed = &processed
		}
		return nil
	}, store.ColRecurringRules, store.ColTransactions)
	if err != nil {
		return nil, err
	}
	return created, nil
}
