package services

import (
	"time"

	"fintrack/internal/models"
)

// AccountUpdateFields holds optional fields for a partial account update.
type AccountUpdateFields struct {
	Name    *string
	Type    *models.AccountType
	Balance *float64
	Color   *string
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(name string, accountType models.AccountType, openingBalance float64, color string) (*models.Account, error)
	GetAccounts() []models.Account
	GetAccountByID(id string) (*models.Account, error)
	UpdateAccount(id string, fields AccountUpdateFields) (*models.Account, error)
	DeleteAccount(id string) error
	GetAccountBalance(id string) (float64, error)
	GetTotalAccountsBalance() float64
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(name string, categoryType models.CategoryType, color string) (*models.Category, error)
	GetCategories() []models.Category
	DeleteCategory(id string) error
}

// TransactionInput holds the fields for creating a transaction. When Date is
// nil the transaction is stamped with the current moment; otherwise the given
// calendar date is merged with the current time of day.
type TransactionInput struct {
	Description     string
	Amount          float64
	Type            models.TransactionType
	Category        string
	AccountID       string
	ToAccountID     string
	Date            *time.Time
	IsPlanned       bool
	RecurringRuleID string
	Tags            []string
	Notes           string
}

// TransactionUpdate holds optional fields for a partial transaction update.
type TransactionUpdate struct {
	Description *string
	Amount      *float64
	Type        *models.TransactionType
	Category    *string
	AccountID   *string
	ToAccountID *string
	Timestamp   *int64
	IsPlanned   *bool
	Tags        *[]string
	Notes       *string
}

// TransactionFilter combines the predicates for listing transactions.
// Zero values mean "no constraint". Planned transactions are excluded
// unless IncludePlanned is set.
type TransactionFilter struct {
	Type           string // "all", "income", "expense" or "transfer"
	Category       string
	AccountID      string // matches source or transfer destination
	Search         string // case-insensitive substring on description
	Tags           []string
	DateFrom       *time.Time // inclusive, calendar date
	DateTo         *time.Time // inclusive, calendar date
	IncludePlanned bool
}

// TransactionGroup is a day bucket of filtered transactions, newest first
// within the bucket.
type TransactionGroup struct {
	Date         string               `json:"date"`
	Transactions []models.Transaction `json:"transactions"`
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(input TransactionInput) (*models.Transaction, error)
	UpdateTransaction(id string, update TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(id string) error
	CreateTransfer(fromAccountID, toAccountID string, amount float64, description string) (*models.Transaction, error)
	GetFilteredTransactions(filter TransactionFilter) []models.Transaction
	GetGroupedTransactions(filter TransactionFilter) []TransactionGroup
	GetUpcomingTransactions(days int) []models.Transaction
	ActivatePlanned() int
}

// RecurringRuleInput holds the fields for creating a recurring rule.
type RecurringRuleInput struct {
	Description string
	Amount      float64
	Type        models.TransactionType
	Category    string
	AccountID   string
	ToAccountID string
	Interval    models.RecurringInterval
	StartDate   time.Time
	EndDate     *time.Time
}

// RecurringRuleUpdate holds optional fields for a partial rule update.
type RecurringRuleUpdate struct {
	Description *string
	Amount      *float64
	Category    *string
	Interval    *models.RecurringInterval
	EndDate     *time.Time
	IsActive    *bool
}

// RecurringServicer defines the contract for recurring-rule business logic.
type RecurringServicer interface {
	CreateRule(input RecurringRuleInput) (*models.RecurringRule, error)
	GetRules() []models.RecurringRule
	UpdateRule(id string, update RecurringRuleUpdate) (*models.RecurringRule, error)
	DeleteRule(id string) error
	GetOccurrences(id string, from, to time.Time) ([]time.Time, error)
	MaterializeDue() ([]models.Transaction, error)
}

// BudgetPrediction flags a budget whose linearly projected month-end spend
// exceeds the budgeted amount.
type BudgetPrediction struct {
	BudgetID         string  `json:"budgetId"`
	CategoryID       string  `json:"categoryId"`
	Budgeted         float64 `json:"budgeted"`
	SpentSoFar       float64 `json:"spentSoFar"`
	ProjectedTotal   float64 `json:"projectedTotal"`
	ProjectedOverrun float64 `json:"projectedOverrun"`
	DaysRemaining    int     `json:"daysRemaining"`
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(categoryID string, amount float64, month string) (*models.Budget, error)
	GetBudgets() []models.Budget
	UpdateBudget(id string, amount *float64, month *string) (*models.Budget, error)
	DeleteBudget(id string) error
	GetCategorySpending(categoryID, month string) float64
	GetPredictions(month string) []BudgetPrediction
}

// GoalUpdate holds optional fields for a partial savings-goal update.
type GoalUpdate struct {
	Name         *string
	TargetAmount *float64
	TargetDate   *time.Time
	Category     *string
}

// GoalProgress describes how far along a savings goal is. EstimatedCompletion
// is nil when the goal is already complete or no contribution rate exists.
type GoalProgress struct {
	GoalID              string     `json:"goalId"`
	Name                string     `json:"name"`
	Percentage          float64    `json:"percentage"`
	EstimatedCompletion *time.Time `json:"estimatedCompletion,omitempty"`
}

// GoalServicer defines the contract for savings-goal business logic.
type GoalServicer interface {
	CreateGoal(name string, targetAmount float64, targetDate time.Time, category string) (*models.SavingsGoal, error)
	GetGoals() []models.SavingsGoal
	UpdateGoal(id string, update GoalUpdate) (*models.SavingsGoal, error)
	DeleteGoal(id string) error
	// AddContribution is a silent no-op when the goal does not exist: it
	// returns (nil, nil) and changes no state.
	AddContribution(goalID string, amount float64, date time.Time, note string) (*models.GoalContribution, error)
	GetContributions(goalID string) []models.GoalContribution
	GetSavingsProgress() []GoalProgress
}

// ParsedTransaction is the best-effort result of parsing free text into a
// transaction draft.
type ParsedTransaction struct {
	Amount      float64                `json:"amount"`
	Type        models.TransactionType `json:"type"`
	Description string                 `json:"description"`
	Category    string                 `json:"category"`
}

// KeywordServicer defines the contract for smart-keyword business logic.
type KeywordServicer interface {
	AddKeyword(keyword, categoryID string, confidence float64) (*models.SmartKeyword, error)
	GetKeywords() []models.SmartKeyword
	DeleteKeyword(id string) error
	SuggestCategory(description string) (*models.SmartKeyword, bool)
	ParseNaturalLanguage(text string) (*ParsedTransaction, bool)
}

// CategoryTotal is a per-category monthly expense total.
type CategoryTotal struct {
	CategoryID string  `json:"categoryId"`
	Amount     float64 `json:"amount"`
}

// MonthlyTrend annotates one month of history with its aggregates.
type MonthlyTrend struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
}

// ProjectionStatus classifies the end state of a balance projection.
type ProjectionStatus string

const (
	ProjectionPositive ProjectionStatus = "positive"
	ProjectionWarning  ProjectionStatus = "warning"
	ProjectionNegative ProjectionStatus = "negative"
)

// ProjectionPoint is the projected balance at the end of one day.
type ProjectionPoint struct {
	Date    time.Time `json:"date"`
	Balance float64   `json:"balance"`
}

// BalanceProjection is a day-by-day forward walk of the total balance over
// planned transactions and recurring-rule occurrences.
type BalanceProjection struct {
	StartingBalance  float64           `json:"startingBalance"`
	ProjectedBalance float64           `json:"projectedBalance"`
	Days             int               `json:"days"`
	Status           ProjectionStatus  `json:"status"`
	Points           []ProjectionPoint `json:"points"`
}

// ReportServicer defines the contract for ledger-wide derivations.
type ReportServicer interface {
	GetTotalIncome() float64
	GetTotalExpenses() float64
	GetMonthlyIncome(month string) float64
	GetMonthlyExpenses(month string) float64
	GetMonthlyBalance(month string) float64
	GetExpensesByCategory(month string) []CategoryTotal
	GetMonthlyTrends() []MonthlyTrend
	ProjectBalance(days int) (*BalanceProjection, error)
}
