// Package seed provides the default entity sets loaded on first run.
// Default accounts and categories are protected from deletion; seed smart
// keywords are merged with user additions by id on every load.
package seed

import "fintrack/internal/models"

// LegacyCashAccountID is a retired default account id. Transactions still
// referencing it are reassigned at load time by the persistence adapter.
const LegacyCashAccountID = "default-cash"

// Accounts returns the default account set for a fresh ledger.
func Accounts() []models.Account {
	return []models.Account{
		{ID: "cash", Name: "Cash", Type: models.AccountTypeCash, Balance: 0, Color: "#22c55e", IsDefault: true},
		{ID: "bank", Name: "Bank Account", Type: models.AccountTypeBank, Balance: 0, Color: "#3b82f6", IsDefault: true},
	}
}

// Categories returns the default category set for a fresh ledger.
func Categories() []models.Category {
	return []models.Category{
		{ID: "salary", Name: "Salary", Type: models.CategoryTypeIncome, Color: "#16a34a", IsDefault: true},
		{ID: "freelance", Name: "Freelance", Type: models.CategoryTypeIncome, Color: "#84cc16", IsDefault: true},
		{ID: models.FallbackIncomeCategoryID, Name: "Other Income", Type: models.CategoryTypeIncome, Color: "#10b981", IsDefault: true},
		{ID: "food", Name: "Food & Groceries", Type: models.CategoryTypeExpense, Color: "#f97316", IsDefault: true},
		{ID: "transport", Name: "Transport", Type: models.CategoryTypeExpense, Color: "#0ea5e9", IsDefault: true},
		{ID: "bills", Name: "Bills & Utilities", Type: models.CategoryTypeExpense, Color: "#ef4444", IsDefault: true},
		{ID: "shopping", Name: "Shopping", Type: models.CategoryTypeExpense, Color: "#a855f7", IsDefault: true},
		{ID: "entertainment", Name: "Entertainment", Type: models.CategoryTypeExpense, Color: "#ec4899", IsDefault: true},
		{ID: "health", Name: "Health", Type: models.CategoryTypeExpense, Color: "#14b8a6", IsDefault: true},
		{ID: models.FallbackExpenseCategoryID, Name: "Other Expense", Type: models.CategoryTypeExpense, Color: "#64748b", IsDefault: true},
	}
}

// SmartKeywords returns the seed keyword-to-category mappings used for
// category suggestion.
func SmartKeywords() []models.SmartKeyword {
	return []models.SmartKeyword{
		{ID: "kw-salary", Keyword: "salary", CategoryID: "salary", Confidence: 0.95},
		{ID: "kw-payroll", Keyword: "payroll", CategoryID: "salary", Confidence: 0.9},
		{ID: "kw-invoice", Keyword: "invoice", CategoryID: "freelance", Confidence: 0.8},
		{ID: "kw-grocery", Keyword: "grocery", CategoryID: "food", Confidence: 0.9},
		{ID: "kw-supermarket", Keyword: "supermarket", CategoryID: "food", Confidence: 0.9},
		{ID: "kw-restaurant", Keyword: "restaurant", CategoryID: "food", Confidence: 0.85},
		{ID: "kw-coffee", Keyword: "coffee", CategoryID: "food", Confidence: 0.7},
		{ID: "kw-uber", Keyword: "uber", CategoryID: "transport", Confidence: 0.85},
		{ID: "kw-taxi", Keyword: "taxi", CategoryID: "transport", Confidence: 0.85},
		{ID: "kw-fuel", Keyword: "fuel", CategoryID: "transport", Confidence: 0.8},
		{ID: "kw-rent", Keyword: "rent", CategoryID: "bills", Confidence: 0.9},
		{ID: "kw-electric", Keyword: "electric", CategoryID: "bills", Confidence: 0.85},
		{ID: "kw-internet", Keyword: "internet", CategoryID: "bills", Confidence: 0.85},
		{ID: "kw-amazon", Keyword: "amazon", CategoryID: "shopping", Confidence: 0.8},
		{ID: "kw-netflix", Keyword: "netflix", CategoryID: "entertainment", Confidence: 0.9},
		{ID: "kw-spotify", Keyword: "spotify", CategoryID: "entertainment", Confidence: 0.9},
		{ID: "kw-cinema", Keyword: "cinema", CategoryID: "entertainment", Confidence: 0.8},
		{ID: "kw-pharmacy", Keyword: "pharmacy", CategoryID: "health", Confidence: 0.85},
		{ID: "kw-doctor", Keyword: "doctor", CategoryID: "health", Confidence: 0.85},
	}
}
