// Package store owns the in-memory entity collections that make up the
// ledger. All mutations go through Update, which applies a function to the
// state atomically: readers never observe a partially applied mutation, and
// a failed mutation leaves the state untouched.
package store

import (
	"slices"
	"sync"

	"fintrack/internal/logger"
	"fintrack/internal/models"
)

// Collection keys used for persistence. The persistence adapter stores each
// collection under its key and the store reports them as changed on Update.
const (
	ColAccounts          = "accounts"
	ColCategories        = "categories"
	ColTransactions      = "transactions"
	ColBudgets           = "budgets"
	ColRecurringRules    = "recurring_rules"
	ColSavingsGoals      = "savings_goals"
	ColGoalContributions = "goal_contributions"
	ColSmartKeywords     = "smart_keywords"
)

// Persister receives the full updated collection after every mutation that
// touches it. A nil Persister is valid; the store then runs purely in memory.
type Persister interface {
	SaveCollection(name string, v any) error
}

// State holds the authoritative collections. Transactions are kept newest
// first; new entries are prepended.
type State struct {
	Accounts          []models.Account
	Categories        []models.Category
	Transactions      []models.Transaction
	Budgets           []models.Budget
	RecurringRules    []models.RecurringRule
	SavingsGoals      []models.SavingsGoal
	GoalContributions []models.GoalContribution
	SmartKeywords     []models.SmartKeyword
}

// Clone returns a deep enough copy of the state for copy-on-write updates:
// every collection slice is copied, along with the nested slices that
// mutations may touch.
func (st State) Clone() State {
	c := State{
		Accounts:          slices.Clone(st.Accounts),
		Categories:        slices.Clone(st.Categories),
		Transactions:      slices.Clone(st.Transactions),
		Budgets:           slices.Clone(st.Budgets),
		RecurringRules:    slices.Clone(st.RecurringRules),
		SavingsGoals:      slices.Clone(st.SavingsGoals),
		GoalContributions: slices.Clone(st.GoalContributions),
		SmartKeywords:     slices.Clone(st.SmartKeywords),
	}
	for i := range c.Transactions {
		c.Transactions[i].Tags = slices.Clone(c.Transactions[i].Tags)
	}
	return c
}

// Store is the ledger's entity store. It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	state     State
	persister Persister
}

// New creates a Store seeded with the given initial state.
func New(initial State, persister Persister) *Store {
	return &Store{state: initial, persister: persister}
}

// Update applies fn to a clone of the state under an exclusive lock and
// swaps the clone in only if fn succeeds. A failed mutation therefore leaves
// the published state byte-for-byte untouched, and snapshots handed out
// earlier never observe later edits. On success the collections named in
// changed are handed to the persister.
//
// Persistence failures are logged, not returned: durable storage is a
// collaborator concern and must never corrupt the in-memory ledger.
func (s *Store) Update(fn func(*State) error, changed ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.Clone()
	if err := fn(&work); err != nil {
		return err
	}
	s.state = work

	s.persist(changed...)
	return nil
}

// View runs fn with a read lock held. The State passed to fn shares backing
// arrays with the live state and must not be mutated.
func (s *Store) View(fn func(State)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}

// Snapshot returns the current state for read-only use.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) persist(changed ...string) {
	if s.persister == nil {
		return
	}
	for _, name := range changed {
		var v any
		switch name {
		case ColAccounts:
			v = s.state.Accounts
		case ColCategories:
			v = s.state.Categories
		case ColTransactions:
			v = s.state.Transactions
		case ColBudgets:
			v = s.state.Budgets
		case ColRecurringRules:
			v = s.state.RecurringRules
		case ColSavingsGoals:
			v = s.state.SavingsGoals
		case ColGoalContributions:
			v = s.state.GoalContributions
		case ColSmartKeywords:
			v = s.state.SmartKeywords
		default:
			logger.Get().Warnw("unknown collection in persist", "collection", name)
			continue
		}
		if err := s.persister.SaveCollection(name, v); err != nil {
			logger.Get().Errorw("failed to persist collection", "collection", name, "error", err)
		}
	}
}
