package services

import (
	"math"
	"time"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/store"
	"fintrack/internal/uuid"
)

// goalService handles savings-goal business logic.
type goalService struct {
	store *store.Store
	clock func() time.Time
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(st *store.Store) GoalServicer {
	return &goalService{store: st, clock: time.Now}
}

// CreateGoal creates a savings goal with a zero current amount.
func (s *goalService) CreateGoal(name string, targetAmount float64, targetDate time.Time, category string) (*models.SavingsGoal, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name is required")
	}
	if targetAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
	}

	goal := models.SavingsGoal{
		ID:           uuid.New(),
		Name:         name,
		TargetAmount: money.Round2(targetAmount),
		TargetDate:   targetDate,
		Category:     category,
		CreatedAt:    s.clock(),
	}

	err := s.store.Update(func(st *store.State) error {
		st.SavingsGoals = append(st.SavingsGoals, goal)
		return nil
	}, store.ColSavingsGoals)
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// GetGoals returns all savings goals.
func (s *goalService) GetGoals() []models.SavingsGoal {
	var goals []models.SavingsGoal
	s.store.View(func(st store.State) {
		goals = append(goals, st.SavingsGoals...)
	})
	return goals
}

// UpdateGoal merges the given fields into an existing goal. Completion is
// re-evaluated when the target amount changes.
func (s *goalService) UpdateGoal(id string, update GoalUpdate) (*models.SavingsGoal, error) {
	var updated *models.SavingsGoal
	err := s.store.Update(func(st *store.State) error {
		for i := range st.SavingsGoals {
			if st.SavingsGoals[i].ID != id {
				continue
			}
			goal := &st.SavingsGoals[i]
			if update.Name != nil && *update.Name != "" {
				goal.Name = *update.Name
			}
			if update.TargetAmount != nil {
				goal.TargetAmount = money.Round2(*update.TargetAmount)
				goal.IsCompleted = goal.CurrentAmount >= goal.TargetAmount
			}
			if update.TargetDate != nil {
				goal.TargetDate = *update.TargetDate
			}
			if update.Category != nil {
				goal.Category = *update.Category
			}
			result := *goal
			updated = &result
			return nil
		}
		return apperrors.ErrGoalNotFound
	}, store.ColSavingsGoals)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteGoal removes a goal and cascades to its contributions.
func (s *goalService) DeleteGoal(id string) error {
	return s.store.Update(func(st *store.State) error {
		idx := -1
		for i := range st.SavingsGoals {
			if st.SavingsGoals[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil
		}
		st.SavingsGoals = removeAt(st.SavingsGoals, idx)

		kept := make([]models.GoalContribution, 0, len(st.GoalContributions))
		for _, c := range st.GoalContributions {
			if c.GoalID != id {
				kept = append(kept, c)
			}
		}
		st.GoalContributions = kept
		return nil
	}, store.ColSavingsGoals, store.ColGoalContributions)
}

// AddContribution appends a contribution and updates the goal's current
// amount and completion flag in the same atomic mutation. A contribution to
// a goal that does not exist changes nothing and returns (nil, nil).
func (s *goalService) AddContribution(goalID string, amount float64, date time.Time, note string) (*models.GoalContribution, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	contribution := models.GoalContribution{
		ID:        uuid.New(),
		GoalID:    goalID,
		Amount:    money.Round2(amount),
		Date:      date,
		Note:      note,
		Timestamp: s.clock().UnixMilli(),
	}

	applied := false
	err := s.store.Update(func(st *store.State) error {
		for i := range st.SavingsGoals {
			if st.SavingsGoals[i].ID != goalID {
				continue
			}
			goal := &st.SavingsGoals[i]
			goal.CurrentAmount = money.Round2(goal.CurrentAmount + contribution.Amount)
			goal.IsCompleted = goal.CurrentAmount >= goal.TargetAmount
			st.GoalContributions = append(st.GoalContributions, contribution)
			applied = true
			return nil
		}
		return nil
	}, store.ColSavingsGoals, store.ColGoalContributions)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, nil
	}
	return &contribution, nil
}

// GetContributions returns the contributions recorded for a goal.
func (s *goalService) GetContributions(goalID string) []models.GoalContribution {
	var contributions []models.GoalContribution
	s.store.View(func(st store.State) {
		for _, c := range st.GoalContributions {
			if c.GoalID == goalID {
				contributions = append(contributions, c)
			}
		}
	})
	return contributions
}

// GetSavingsProgress reports each goal's progress percentage (clamped to
// 100) and an estimated completion date projected from the goal's average
// daily contribution rate since creation. The estimate is nil for completed
// goals and for goals with no contribution rate yet.
func (s *goalService) GetSavingsProgress() []GoalProgress {
	now := s.clock()

	var progress []GoalProgress
	for _, goal := range s.GetGoals() {
		p := GoalProgress{GoalID: goal.ID, Name: goal.Name}

		if goal.TargetAmount > 0 {
			p.Percentage = math.Min(goal.CurrentAmount/goal.TargetAmount*100, 100)
		}

		if !goal.IsCompleted && goal.CurrentAmount > 0 {
			days := now.Sub(goal.CreatedAt).Hours() / 24
			if days < 1 {
				days = 1
			}
			rate := goal.CurrentAmount / days
			if rate > 0 {
				remaining := goal.TargetAmount - goal.CurrentAmount
				eta := now.AddDate(0, 0, int(math.Ceil(remaining/rate)))
				p.EstimatedCompletion = &eta
			}
		}

		progress = append(progress, p)
	}
	return progress
}
