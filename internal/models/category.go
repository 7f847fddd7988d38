package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeBoth    CategoryType = "both"
)

// Fallback category ids that transactions are reassigned to when their
// category is deleted. Both are seeded and protected from deletion.
const (
	FallbackIncomeCategoryID  = "other-income"
	FallbackExpenseCategoryID = "other-expense"
)

// Category represents a transaction category
type Category struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Type      CategoryType `json:"type"`
	Color     string       `json:"color"`
	IsDefault bool         `json:"isDefault"`
}
