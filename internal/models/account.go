package models

// AccountType represents the type of account
type AccountType string

const (
	AccountTypeCash       AccountType = "cash"
	AccountTypeBank       AccountType = "bank"
	AccountTypeCreditCard AccountType = "credit-card"
	AccountTypeLoan       AccountType = "loan"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeWallet     AccountType = "wallet"
	AccountTypeOther      AccountType = "other"
)

// Account represents a financial account in the ledger.
// Balance is the account's opening balance, not a running total; the
// running balance is derived from the transaction history on demand.
type Account struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Type      AccountType `json:"type"`
	Balance   float64     `json:"balance"`
	Color     string      `json:"color"`
	IsDefault bool        `json:"isDefault"`
}
