package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

// Transaction represents a single ledger entry. Amount is always a positive
// magnitude; the type determines its sign when balances are derived.
// Timestamp is the effective date/time in epoch milliseconds.
//
// A transfer is stored as one row: AccountID is the source and ToAccountID
// the destination. Balance derivation interprets the row as a debit on one
// account and a credit on the other.
type Transaction struct {
	ID              string          `json:"id"`
	Description     string          `json:"description"`
	Amount          float64         `json:"amount"`
	Type            TransactionType `json:"type"`
	Category        string          `json:"category"`
	AccountID       string          `json:"accountId"`
	ToAccountID     string          `json:"toAccountId,omitempty"`
	Timestamp       int64           `json:"timestamp"`
	IsPlanned       bool            `json:"isPlanned,omitempty"`
	RecurringRuleID string          `json:"recurringRuleId,omitempty"`
	Tags            []string        `json:"tags,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// Time returns the transaction's effective time in the local time zone.
func (t *Transaction) Time() time.Time {
	return time.UnixMilli(t.Timestamp)
}

// Touches reports whether the transaction affects the given account,
// either as its source or as a transfer destination.
func (t *Transaction) Touches(accountID string) bool {
	return t.AccountID == accountID || t.ToAccountID == accountID
}
