package services

import (
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func localDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

func TestCreateAccount(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		st := testutil.NewTestStore()
		svc := NewAccountService(st)

		account, err := svc.CreateAccount("Holiday Fund", models.AccountTypeWallet, 100.505, "#ff0000")
		testutil.AssertNoError(t, err)

		if account.ID == "" {
			t.Fatal("expected a generated account id")
		}
		testutil.AssertMoney(t, account.Balance, 100.51)
		if account.IsDefault {
			t.Error("user-created accounts must not be default")
		}
	})

	t.Run("missing_name", func(t *testing.T) {
		st := testutil.NewTestStore()
		svc := NewAccountService(st)

		_, err := svc.CreateAccount("", models.AccountTypeCash, 0, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetAccountBalance(t *testing.T) {
	t.Run("signed_sum_over_opening_balance", func(t *testing.T) {
		st := testutil.NewEmptyStore()
		acct := testutil.CreateTestAccount(t, st, models.AccountTypeBank, 500)
		svc := NewAccountService(st)

		testutil.CreateTestTransaction(t, st, acct.ID, models.TransactionTypeIncome, 200, localDate(2024, time.March, 5))
		testutil.CreateTestTransaction(t, st, acct.ID, models.TransactionTypeExpense, 75.25, localDate(2024, time.March, 6))

		balance, err := svc.GetAccountBalance(acct.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertMoney(t, balance, 624.75)
	})

	t.Run("planned_transactions_excluded", func(t *testing.T) {
		st := testutil.NewEmptyStore()
		acct := testutil.CreateTestAccount(t, st, models.AccountTypeBank, 100)
		svc := NewAccountService(st)

		tx := testutil.CreateTestTransaction(t, st, acct.ID, models.TransactionTypeExpense, 40, localDate(2024, time.March, 5))
		planned := true
		_, err := NewTransactionService(st).UpdateTransaction(tx.ID, TransactionUpdate{IsPlanned: &planned})
		testutil.AssertNoError(t, err)

		balance, err := svc.GetAccountBalance(acct.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertMoney(t, balance, 100)
	})

	t.Run("unknown_account", func(t *testing.T) {
		st := testutil.NewEmptyStore()
		svc := NewAccountService(st)

		_, err := svc.GetAccountBalance("missing")
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})
}

func TestTransferSymmetry(t *testing.T) {
	st := testutil.NewEmptyStore()
	from := testutil.CreateTestAccount(t, st, models.AccountTypeBank, 1000)
	to := testutil.CreateTestAccount(t, st, models.AccountTypeCash, 50)
	other := testutil.CreateTestAccount(t, st, models.AccountTypeWallet, 10)

	accounts := NewAccountService(st)
	transactions := NewTransactionService(st)

	_, err := transactions.CreateTransfer(from.ID, to.ID, 250, "move to cash")
	testutil.AssertNoError(t, err)

	fromBalance, err := accounts.GetAccountBalance(from.ID)
	testutil.AssertNoError(t, err)
	toBalance, err := accounts.GetAccountBalance(to.ID)
	testutil.AssertNoError(t, err)
	otherBalance, err := accounts.GetAccountBalance(other.ID)
	testutil.AssertNoError(t, err)

	testutil.AssertMoney(t, fromBalance, 750)
	testutil.AssertMoney(t, toBalance, 300)
	testutil.AssertMoney(t, otherBalance, 10)
}

func TestGetTotalAccountsBalance(t *testing.T) {
	st := testutil.NewEmptyStore()
	a := testutil.CreateTestAccount(t, st, models.AccountTypeBank, 900)
	testutil.CreateTestAccount(t, st, models.AccountTypeCash, 100)
	svc := NewAccountService(st)

	// Opening balances only: transaction effects are excluded.
	testutil.CreateTestTransaction(t, st, a.ID, models.TransactionTypeExpense, 500, localDate(2024, time.March, 5))

	testutil.AssertMoney(t, svc.GetTotalAccountsBalance(), 1000)
}

func TestDeleteAccount(t *testing.T) {
	t.Run("default_account_protected", func(t *testing.T) {
		st := testutil.NewTestStore()
		svc := NewAccountService(st)

		err := svc.DeleteAccount("cash")
		testutil.AssertAppError(t, err, "DEFAULT_ACCOUNT_PROTECTED")

		if _, err := svc.GetAccountByID("cash"); err != nil {
			t.Errorf("default account must survive the refused delete: %v", err)
		}
	})

	t.Run("cascades_to_transactions_on_either_side", func(t *testing.T) {
		st := testutil.NewEmptyStore()
		doomed := testutil.CreateTestAccount(t, st, models.AccountTypeWallet, 0)
		survivor := testutil.CreateTestAccount(t, st, models.AccountTypeBank, 0)
		svc := NewAccountService(st)
		transactions := NewTransactionService(st)

		testutil.CreateTestTransaction(t, st, doomed.ID, models.TransactionTypeExpense, 10, localDate(2024, time.March, 5))
		keep := testutil.CreateTestTransaction(t, st, survivor.ID, models.TransactionTypeIncome, 20, localDate(2024, time.March, 6))
		_, err := transactions.CreateTransfer(survivor.ID, doomed.ID, 30, "into doomed")
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeleteAccount(doomed.ID))

		remaining := transactions.GetFilteredTransactions(TransactionFilter{})
		if len(remaining) != 1 {
			t.Fatalf("expected only the unrelated transaction to remain, got %d", len(remaining))
		}
		if remaining[0].ID != keep.ID {
			t.Errorf("wrong transaction survived: %s", remaining[0].ID)
		}
	})

	t.Run("missing_account_is_noop", func(t *testing.T) {
		st := testutil.NewTestStore()
		svc := NewAccountService(st)

		testutil.AssertNoError(t, svc.DeleteAccount("missing"))
	})
}

func TestUpdateAccountReRoundsBalance(t *testing.T) {
	st := testutil.NewEmptyStore()
	acct := testutil.CreateTestAccount(t, st, models.AccountTypeBank, 100)
	svc := NewAccountService(st)

	newBalance := 200.999
	updated, err := svc.UpdateAccount(acct.ID, AccountUpdateFields{Balance: &newBalance})
	testutil.AssertNoError(t, err)
	testutil.AssertMoney(t, updated.Balance, 201)
}
