package models

import "time"

// RecurringInterval represents the cadence of a recurring rule
type RecurringInterval string

const (
	IntervalDaily   RecurringInterval = "daily"
	IntervalWeekly  RecurringInterval = "weekly"
	IntervalMonthly RecurringInterval = "monthly"
	IntervalYearly  RecurringInterval = "yearly"
)

// RecurringRule describes a transaction template that repeats on a cadence.
// StartDate is inclusive; EndDate, when set, is inclusive too. LastProcessed
// records the most recent materialization date so that a rule is never
// materialized twice for the same interval.
type RecurringRule struct {
	ID            string            `json:"id"`
	Description   string            `json:"description"`
	Amount        float64           `json:"amount"`
	Type          TransactionType   `json:"type"`
	Category      string            `json:"category"`
	AccountID     string            `json:"accountId"`
	ToAccountID   string            `json:"toAccountId,omitempty"`
	Interval      RecurringInterval `json:"interval"`
	StartDate     time.Time         `json:"startDate"`
	EndDate       *time.Time        `json:"endDate,omitempty"`
	IsActive      bool              `json:"isActive"`
	LastProcessed *time.Time        `json:"lastProcessed,omitempty"`
}
