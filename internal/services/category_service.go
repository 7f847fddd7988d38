package services

import (
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/store"
	"fintrack/internal/uuid"
)

// categoryService handles category-related business logic.
type categoryService struct {
	store *store.Store
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(st *store.Store) CategoryServicer {
	return &categoryService{store: st}
}

// CreateCategory creates a new custom category.
func (s *categoryService) CreateCategory(name string, categoryType models.CategoryType, color string) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	category := models.Category{
		ID:    uuid.New(),
		Name:  name,
		Type:  categoryType,
		Color: color,
	}

	err := s.store.Update(func(st *store.State) error {
		st.Categories = append(st.Categories, category)
		return nil
	}, store.ColCategories)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetCategories returns all categories.
func (s *categoryService) GetCategories() []models.Category {
	var categories []models.Category
	s.store.View(func(st store.State) {
		categories = append(categories, st.Categories...)
	})
	return categories
}

// DeleteCategory removes a custom category. Transactions using it are
// reassigned to the type-appropriate fallback category and budgets scoped
// to it are removed in the same atomic mutation. Default categories are
// protected.
func (s *categoryService) DeleteCategory(id string) error {
	return s.store.Update(func(st *store.State) error {
		idx := -1
		for i := range st.Categories {
			if st.Categories[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil
		}
		if st.Categories[idx].IsDefault {
			return apperrors.ErrDefaultCategoryProtected
		}

		st.Categories = removeAt(st.Categories, idx)

		for i := range st.Transactions {
			if st.Transactions[i].Category != id {
				continue
			}
			if st.Transactions[i].Type == models.TransactionTypeIncome {
				st.Transactions[i].Category = models.FallbackIncomeCategoryID
			} else {
				st.Transactions[i].Category = models.FallbackExpenseCategoryID
			}
		}

		kept := make([]models.Budget, 0, len(st.Budgets))
		for _, b := range st.Budgets {
			if b.CategoryID != id {
				kept = append(kept, b)
			}
		}
		st.Budgets = kept
		return nil
	}, store.ColCategories, store.ColTransactions, store.ColBudgets)
}
