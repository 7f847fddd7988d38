package services

import (
	"time"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/store"
	"fintrack/internal/uuid"
)

// accountService handles account-related business logic.
type accountService struct {
	store *store.Store
	clock func() time.Time
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(st *store.Store) AccountServicer {
	return &accountService{store: st, clock: time.Now}
}

// CreateAccount creates a new account with the given opening balance.
func (s *accountService) CreateAccount(name string, accountType models.AccountType, openingBalance float64, color string) (*models.Account, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}

	account := models.Account{
		ID:      uuid.New(),
		Name:    name,
		Type:    accountType,
		Balance: money.Round2(openingBalance),
		Color:   color,
	}

	err := s.store.Update(func(st *store.State) error {
		st.Accounts = append(st.Accounts, account)
		return nil
	}, store.ColAccounts)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetAccounts returns all accounts.
func (s *accountService) GetAccounts() []models.Account {
	var accounts []models.Account
	s.store.View(func(st store.State) {
		accounts = append(accounts, st.Accounts...)
	})
	return accounts
}

// GetAccountByID returns an account by id.
func (s *accountService) GetAccountByID(id string) (*models.Account, error) {
	var found *models.Account
	s.store.View(func(st store.State) {
		for i := range st.Accounts {
			if st.Accounts[i].ID == id {
				account := st.Accounts[i]
				found = &account
				return
			}
		}
	})
	if found == nil {
		return nil, apperrors.ErrAccountNotFound
	}
	return found, nil
}

// UpdateAccount merges the given fields into an existing account. The
// opening balance is re-rounded on every edit.
func (s *accountService) UpdateAccount(id string, fields AccountUpdateFields) (*models.Account, error) {
	var updated *models.Account
	err := s.store.Update(func(st *store.State) error {
		for i := range st.Accounts {
			if st.Accounts[i].ID != id {
				continue
			}
			if fields.Name != nil && *fields.Name != "" {
				st.Accounts[i].Name = *fields.Name
			}
			if fields.Type != nil {
				st.Accounts[i].Type = *fields.Type
			}
			if fields.Balance != nil {
				st.Accounts[i].Balance = money.Round2(*fields.Balance)
			}
			if fields.Color != nil {
				st.Accounts[i].Color = *fields.Color
			}
			account := st.Accounts[i]
			updated = &account
			return nil
		}
		return apperrors.ErrAccountNotFound
	}, store.ColAccounts)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteAccount removes an account and every transaction referencing it as
// source or transfer destination. Default accounts are protected.
func (s *accountService) DeleteAccount(id string) error {
	return s.store.Update(func(st *store.State) error {
		idx := -1
		for i := range st.Accounts {
			if st.Accounts[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			// Stale reference; deleting a missing account is a no-op.
			return nil
		}
		if st.Accounts[idx].IsDefault {
			return apperrors.ErrDefaultAccountProtected
		}

		st.Accounts = removeAt(st.Accounts, idx)

		kept := make([]models.Transaction, 0, len(st.Transactions))
		for _, tx := range st.Transactions {
			if !tx.Touches(id) {
				kept = append(kept, tx)
			}
		}
		st.Transactions = kept
		return nil
	}, store.ColAccounts, store.ColTransactions)
}

// GetAccountBalance derives the account's running balance: opening balance
// plus the signed effect of every non-planned transaction touching it.
func (s *accountService) GetAccountBalance(id string) (float64, error) {
	var (
		balance float64
		found   bool
	)
	s.store.View(func(st store.State) {
		for i := range st.Accounts {
			if st.Accounts[i].ID == id {
				balance = st.Accounts[i].Balance
				found = true
				break
			}
		}
		if !found {
			return
		}
		for _, tx := range st.Transactions {
			if tx.IsPlanned {
				continue
			}
			switch tx.Type {
			case models.TransactionTypeIncome:
				if tx.AccountID == id {
					balance += tx.Amount
				}
			case models.TransactionTypeExpense:
				if tx.AccountID == id {
					balance -= tx.Amount
				}
			case models.TransactionTypeTransfer:
				if tx.AccountID == id {
					balance -= tx.Amount
				}
				if tx.ToAccountID == id {
					balance += tx.Amount
				}
			}
		}
	})
	if !found {
		return 0, apperrors.ErrAccountNotFound
	}
	return money.Round2(balance), nil
}

// GetTotalAccountsBalance sums opening balances only, across all accounts.
// Transaction effects are deliberately excluded: this is "funds provisioned",
// not "funds remaining".
func (s *accountService) GetTotalAccountsBalance() float64 {
	var total float64
	s.store.View(func(st store.State) {
		for _, a := range st.Accounts {
			total += a.Balance
		}
	})
	return money.Round2(total)
}
