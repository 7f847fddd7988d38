package models

import "time"

// SavingsGoal represents a target amount a user is saving toward.
// CurrentAmount starts at zero and only grows through contributions;
// IsCompleted is recomputed whenever a contribution is applied.
type SavingsGoal struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	TargetAmount  float64   `json:"targetAmount"`
	CurrentAmount float64   `json:"currentAmount"`
	TargetDate    time.Time `json:"targetDate"`
	Category      string    `json:"category,omitempty"`
	IsCompleted   bool      `json:"isCompleted"`
	CreatedAt     time.Time `json:"createdAt"`
}

// GoalContribution is an append-only record of money put toward a goal.
type GoalContribution struct {
	ID        string    `json:"id"`
	GoalID    string    `json:"goalId"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
	Note      string    `json:"note,omitempty"`
	Timestamp int64     `json:"timestamp"`
}
