package services

import (
	"time"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/store"
	"fintrack/internal/uuid"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	store *store.Store
	clock func() time.Time
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(st *store.Store) BudgetServicer {
	return &budgetService{store: st, clock: time.Now}
}

// CreateBudget creates a budget for a category and month.
func (s *budgetService) CreateBudget(categoryID string, amount float64, month string) (*models.Budget, error) {
	if categoryID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if _, err := parseMonthKey(month); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must use the YYYY-MM format")
	}

	budget := models.Budget{
		ID:         uuid.New(),
		CategoryID: categoryID,
		Amount:     money.Round2(amount),
		Month:      month,
	}

	err := s.store.Update(func(st *store.State) error {
		st.Budgets = append(st.Budgets, budget)
		return nil
	}, store.ColBudgets)
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

// GetBudgets returns all budgets.
func (s *budgetService) GetBudgets() []models.Budget {
	var budgets []models.Budget
	s.store.View(func(st store.State) {
		budgets = append(budgets, st.Budgets...)
	})
	return budgets
}

// UpdateBudget merges the given fields into an existing budget.
func (s *budgetService) UpdateBudget(id string, amount *float64, month *string) (*models.Budget, error) {
	if month != nil {
		if _, err := parseMonthKey(*month); err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must use the YYYY-MM format")
		}
	}

	var updated *models.Budget
	err := s.store.Update(func(st *store.State) error {
		for i := range st.Budgets {
			if st.Budgets[i].ID != id {
				continue
			}
			if amount != nil {
				st.Budgets[i].Amount = money.Round2(*amount)
			}
			if month != nil {
				st.Budgets[i].Month = *month
			}
			budget := st.Budgets[i]
			updated = &budget
			return nil
		}
		return apperrors.ErrBudgetNotFound
	}, store.ColBudgets)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteBudget removes a budget by id. An absent id is a no-op.
func (s *budgetService) DeleteBudget(id string) error {
	return s.store.Update(func(st *store.State) error {
		for i := range st.Budgets {
			if st.Budgets[i].ID == id {
				st.Budgets = removeAt(st.Budgets, i)
				return nil
			}
		}
		return nil
	}, store.ColBudgets)
}

// GetCategorySpending sums expense transactions for a category in a month.
func (s *budgetService) GetCategorySpending(categoryID, month string) float64 {
	var total float64
	s.store.View(func(st store.State) {
		for _, tx := range st.Transactions {
			if tx.IsPlanned || tx.Type != models.TransactionTypeExpense {
				continue
			}
			if tx.Category == categoryID && inMonth(tx, month) {
				total += tx.Amount
			}
		}
	})
	return money.Round2(total)
}

// GetPredictions linearly projects each budget's month-end spend from the
// average daily spend so far and returns only the budgets projected to be
// exceeded. Only meaningful for the current month: days elapsed and days
// remaining come from today's position inside it.
func (s *budgetService) GetPredictions(month string) []BudgetPrediction {
	monthStart, err := parseMonthKey(month)
	if err != nil {
		return nil
	}

	now := s.clock()
	daysInMonth := monthStart.AddDate(0, 1, -1).Day()
	daysElapsed := now.Day()
	if monthKey(now) != month {
		// Not the current month; treat it as fully elapsed so the
		// projection degenerates to actual spend.
		daysElapsed = daysInMonth
	}
	daysRemaining := daysInMonth - daysElapsed

	var predictions []BudgetPrediction
	for _, budget := range s.GetBudgets() {
		if budget.Month != month {
			continue
		}
		spent := s.GetCategorySpending(budget.CategoryID, month)
		if spent == 0 {
			continue
		}

		dailyAverage := spent / float64(daysElapsed)
		projected := money.Round2(spent + dailyAverage*float64(daysRemaining))
		if projected <= budget.Amount {
			continue
		}

		predictions = append(predictions, BudgetPrediction{
			BudgetID:         budget.ID,
			CategoryID:       budget.CategoryID,
			Budgeted:         budget.Amount,
			SpentSoFar:       spent,
			ProjectedTotal:   projected,
			ProjectedOverrun: money.Round2(projected - budget.Amount),
			DaysRemaining:    daysRemaining,
		})
	}
	return predictions
}
