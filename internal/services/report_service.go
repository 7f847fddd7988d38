package services

import (
	"sort"
	"time"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/recurring"
	"fintrack/internal/store"
)

// reportService computes ledger-wide derivations. Everything here is a pure
// read over the current snapshot; nothing is cached.
type reportService struct {
	store *store.Store
	clock func() time.Time
}

// NewReportService creates a new ReportServicer.
func NewReportService(st *store.Store) ReportServicer {
	return &reportService{store: st, clock: time.Now}
}

// sumByType sums non-planned transaction amounts of the given type,
// optionally restricted to a YYYY-MM month (empty month means all time).
func (s *reportService) sumByType(txType models.TransactionType, month string) float64 {
	var total float64
	s.store.View(func(st store.State) {
		for _, tx := range st.Transactions {
			if tx.IsPlanned || tx.Type != txType {
				continue
			}
			if month != "" && !inMonth(tx, month) {
				continue
			}
			total += tx.Amount
		}
	})
	return money.Round2(total)
}

// GetTotalIncome sums income transactions across all time.
func (s *reportService) GetTotalIncome() float64 {
	return s.sumByType(models.TransactionTypeIncome, "")
}

// GetTotalExpenses sums expense transactions across all time.
func (s *reportService) GetTotalExpenses() float64 {
	return s.sumByType(models.TransactionTypeExpense, "")
}

// GetMonthlyIncome sums income transactions in a YYYY-MM month.
func (s *reportService) GetMonthlyIncome(month string) float64 {
	return s.sumByType(models.TransactionTypeIncome, month)
}

// GetMonthlyExpenses sums expense transactions in a YYYY-MM month.
func (s *reportService) GetMonthlyExpenses(month string) float64 {
	return s.sumByType(models.TransactionTypeExpense, month)
}

// GetMonthlyBalance is the month's income minus its expenses.
func (s *reportService) GetMonthlyBalance(month string) float64 {
	return money.Round2(s.GetMonthlyIncome(month) - s.GetMonthlyExpenses(month))
}

// GetExpensesByCategory returns per-category expense totals for a month,
// non-zero entries only, largest first.
func (s *reportService) GetExpensesByCategory(month string) []CategoryTotal {
	totals := make(map[string]float64)
	s.store.View(func(st store.State) {
		for _, tx := range st.Transactions {
			if tx.IsPlanned || tx.Type != models.TransactionTypeExpense {
				continue
			}
			if !inMonth(tx, month) {
				continue
			}
			totals[tx.Category] += tx.Amount
		}
	})

	result := make([]CategoryTotal, 0, len(totals))
	for categoryID, amount := range totals {
		result = append(result, CategoryTotal{CategoryID: categoryID, Amount: money.Round2(amount)})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Amount != result[j].Amount {
			return result[i].Amount > result[j].Amount
		}
		return result[i].CategoryID < result[j].CategoryID
	})
	return result
}

// GetMonthlyTrends returns the last 12 distinct months present in the
// transaction history, ascending, each annotated with its aggregates.
func (s *reportService) GetMonthlyTrends() []MonthlyTrend {
	seen := make(map[string]bool)
	s.store.View(func(st store.State) {
		for _, tx := range st.Transactions {
			if !tx.IsPlanned {
				seen[monthKey(tx.Time())] = true
			}
		}
	})

	months := make([]string, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Strings(months)
	if len(months) > 12 {
		months = months[len(months)-12:]
	}

	trends := make([]MonthlyTrend, 0, len(months))
	for _, m := range months {
		income := s.GetMonthlyIncome(m)
		expenses := s.GetMonthlyExpenses(m)
		trends = append(trends, MonthlyTrend{
			Month:    m,
			Income:   income,
			Expenses: expenses,
			Balance:  money.Round2(income - expenses),
		})
	}
	return trends
}

// ProjectBalance walks forward day by day from the total of opening
// balances, applying planned transactions and recurring-rule occurrences as
// income/expense deltas. The end state is classified as positive, warning
// (below 20% of the starting balance) or negative.
func (s *reportService) ProjectBalance(days int) (*BalanceProjection, error) {
	if days <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "projection horizon must be at least one day")
	}

	now := s.clock()
	today := recurring.DateOnly(now)

	var (
		starting float64
		planned  []models.Transaction
		rules    []models.RecurringRule
	)
	s.store.View(func(st store.State) {
		for _, a := range st.Accounts {
			starting += a.Balance
		}
		for _, tx := range st.Transactions {
			if tx.IsPlanned {
				planned = append(planned, tx)
			}
		}
		rules = append(rules, st.RecurringRules...)
	})
	starting = money.Round2(starting)

	balance := starting
	points := make([]ProjectionPoint, 0, days)
	for i := 1; i <= days; i++ {
		day := today.AddDate(0, 0, i)

		for _, tx := range planned {
			if !recurring.DateOnly(tx.Time()).Equal(day) {
				continue
			}
			balance += signedDelta(tx.Type, tx.Amount)
		}
		for _, rule := range rules {
			if !recurring.OccursOn(rule, day) {
				continue
			}
			balance += signedDelta(rule.Type, rule.Amount)
		}

		balance = money.Round2(balance)
		points = append(points, ProjectionPoint{Date: day, Balance: balance})
	}

	status := ProjectionPositive
	switch {
	case balance < 0:
		status = ProjectionNegative
	case balance < starting*0.2:
		status = ProjectionWarning
	}

	return &BalanceProjection{
		StartingBalance:  starting,
		ProjectedBalance: balance,
		Days:             days,
		Status:           status,
		Points:           points,
	}, nil
}

// signedDelta converts a transaction type and magnitude into its effect on
// the combined balance. Transfers move money between accounts and net to
// zero here.
func signedDelta(txType models.TransactionType, amount float64) float64 {
	switch txType {
	case models.TransactionTypeIncome:
		return amount
	case models.TransactionTypeExpense:
		return -amount
	default:
		return 0
	}
}
