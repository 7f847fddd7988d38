package services

import (
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/store"
	"fintrack/internal/testutil"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func newTransactionServiceAt(st *store.Store, now time.Time) *transactionService {
	return &transactionService{store: st, clock: fixedClock(now)}
}

func TestCreateTransaction(t *testing.T) {
	t.Run("rounds_and_prepends", func(t *testing.T) {
		st := testutil.NewTestStore()
		svc := NewTransactionService(st)

		first, err := svc.CreateTransaction(TransactionInput{
			Description: "Groceries",
			Amount:      42.555,
			Type:        models.TransactionTypeExpense,
			Category:    "food",
			AccountID:   "cash",
		})
		testutil.AssertNoError(t, err)
		testutil.AssertMoney(t, first.Amount, 42.56)

		second, err := svc.CreateTransaction(TransactionInput{
			Description: "Bus ticket",
			Amount:      3,
			Type:        models.TransactionTypeExpense,
			Category:    "transport",
			AccountID:   "cash",
		})
		testutil.AssertNoError(t, err)

		snap := st.Snapshot()
		if snap.Transactions[0].ID != second.ID {
			t.Error("expected newest transaction first")
		}
	})

	t.Run("merges_supplied_date_with_time_of_day", func(t *testing.T) {
		st := testutil.NewTestStore()
		now := time.Date(2024, time.March, 20, 14, 30, 45, 0, time.Local)
		svc := newTransactionServiceAt(st, now)

		backdate := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local)
		tx, err := svc.CreateTransaction(TransactionInput{
			Description: "Backdated",
			Amount:      10,
			Type:        models.TransactionTypeExpense,
			Category:    "food",
			AccountID:   "cash",
			Date:        &backdate,
		})
		testutil.AssertNoError(t, err)

		got := tx.Time()
		if got.Year() != 2024 || got.Month() != time.March || got.Day() != 5 {
			t.Errorf("expected calendar date 2024-03-05, got %v", got)
		}
		if got.Hour() != 14 || got.Minute() != 30 {
			t.Errorf("expected current time of day to be preserved, got %v", got)
		}
	})

	t.Run("rejects_non_positive_amount", func(t *testing.T) {
		st := testutil.NewTestStore()
		svc := NewTransactionService(st)

		_, err := svc.CreateTransaction(TransactionInput{
			Amount:    0,
			Type:      models.TransactionTypeExpense,
			AccountID: "cash",
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects_transfer_without_destination", func(t *testing.T) {
		st := testutil.NewTestStore()
		svc := NewTransactionService(st)

		_, err := svc.CreateTransaction(TransactionInput{
			Description: "Move money",
			Amount:      50,
			Type:        models.TransactionTypeTransfer,
			AccountID:   "cash",
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		if got := st.Snapshot().Transactions; len(got) != 0 {
			t.Errorf("no transaction should be stored, got %d", len(got))
		}
	})

	t.Run("rejects_transfer_to_same_account", func(t *testing.T) {
		st := testutil.NewTestStore()
		svc := NewTransactionService(st)

		_, err := svc.CreateTransaction(TransactionInput{
			Description: "Move money",
			Amount:      50,
			Type:        models.TransactionTypeTransfer,
			AccountID:   "cash",
			ToAccountID: "cash",
		})
		testutil.AssertAppError(t, err, "SAME_ACCOUNT_TRANSFER")
		if got := st.Snapshot().Transactions; len(got) != 0 {
			t.Errorf("no transaction should be stored, got %d", len(got))
		}
	})
}

func TestUpdateTransaction(t *testing.T) {
	t.Run("reround_on_amount_edit", func(t *testing.T) {
		st := testutil.NewTestStore()
		svc := NewTransactionService(st)
		tx := testutil.CreateTestTransaction(t, st, "cash", models.TransactionTypeExpense, 10, localDate(2024, time.March, 5))

		amount := 19.999
		updated, err := svc.UpdateTransaction(tx.ID, TransactionUpdate{Amount: &amount})
		testutil.AssertNoError(t, err)
		testutil.AssertMoney(t, updated.Amount, 20)
	})

	t.Run("missing_id", func(t *testing.T) {
		st := testutil.NewTestStore()
		svc := NewTransactionService(st)

		desc := "nope"
		_, err := svc.UpdateTransaction("missing", TransactionUpdate{Description: &desc})
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestDeleteTransactionMissingIsNoop(t *testing.T) {
	st := testutil.NewTestStore()
	svc := NewTransactionService(st)

	testutil.AssertNoError(t, svc.DeleteTransaction("missing"))
}

func TestCreateTransfer(t *testing.T) {
	t.Run("single_row", func(t *testing.T) {
		st := testutil.NewTestStore()
		svc := NewTransactionService(st)

		tx, err := svc.CreateTransfer("bank", "cash", 120, "withdrawal")
		testutil.AssertNoError(t, err)

		if tx.Type != models.TransactionTypeTransfer {
			t.Errorf("expected transfer type, got %s", tx.Type)
		}
		if tx.AccountID != "bank" || tx.ToAccountID != "cash" {
			t.Errorf("expected bank -> cash, got %s -> %s", tx.AccountID, tx.ToAccountID)
		}

		all := svc.GetFilteredTransactions(TransactionFilter{})
		if len(all) != 1 {
			t.Fatalf("a transfer is one ledger row, got %d", len(all))
		}
	})

	t.Run("same_account_refused", func(t *testing.T) {
		st := testutil.NewTestStore()
		svc := NewTransactionService(st)

		_, err := svc.CreateTransfer("bank", "bank", 50, "loop")
		testutil.AssertAppError(t, err, "SAME_ACCOUNT_TRANSFER")
	})
}

func TestGetFilteredTransactions(t *testing.T) {
	t.Run("type_and_date_range", func(t *testing.T) {
		st := testutil.NewTestStore()
		svc := NewTransactionService(st)

		expense := testutil.CreateTestTransaction(t, st, "cash", models.TransactionTypeExpense, 50, localDate(2024, time.March, 1))
		testutil.CreateTestTransaction(t, st, "cash", models.TransactionTypeIncome, 20, localDate(2024, time.March, 5))

		from := localDate(2024, time.March, 1)
		to := localDate(2024, time.March, 1)
		got := svc.GetFilteredTransactions(TransactionFilter{
			Type:     "expense",
			DateFrom: &from,
			DateTo:   &to,
		})

		if len(got) != 1 || got[0].ID != expense.ID {
			t.Fatalf("expected exactly the March 1 expense, got %+v", got)
		}
	})

	t.Run("search_is_case_insensitive", func(t *testing.T) {
		st := testutil.NewTestStore()
		svc := NewTransactionService(st)

		_, err := svc.CreateTransaction(TransactionInput{
			Description: "Weekly GROCERY run",
			Amount:      30,
			Type:        models.TransactionTypeExpense,
			Category:    "food",
			AccountID:   "cash",
		})
		testutil.AssertNoError(t, err)

		if got := svc.GetFilteredTransactions(TransactionFilter{Search: "grocery"}); len(got) != 1 {
			t.Errorf("expected case-insensitive match, got %d results", len(got))
		}
	})

	t.Run("account_matches_either_side", func(t *testing.T) {
		st := testutil.NewTestStore()
		svc := NewTransactionService(st)

		_, err := svc.CreateTransfer("bank", "cash", 10, "transfer")
		testutil.AssertNoError(t, err)

		if got := svc.GetFilteredTransactions(TransactionFilter{AccountID: "cash"}); len(got) != 1 {
			t.Errorf("transfer destination should match account filter, got %d", len(got))
		}
	})

	t.Run("tag_filter_excludes_untagged", func(t *testing.T) {
		st := testutil.NewTestStore()
		svc := NewTransactionService(st)

		_, err := svc.CreateTransaction(TransactionInput{
			Description: "tagged", Amount: 10, Type: models.TransactionTypeExpense,
			Category: "food", AccountID: "cash", Tags: []string{"vacation"},
		})
		testutil.AssertNoError(t, err)
		_, err = svc.CreateTransaction(TransactionInput{
			Description: "untagged", Amount: 10, Type: models.TransactionTypeExpense,
			Category: "food", AccountID: "cash",
		})
		testutil.AssertNoError(t, err)

		got := svc.GetFilteredTransactions(TransactionFilter{Tags: []string{"vaca"}})
		if len(got) != 1 || got[0].Description != "tagged" {
			t.Fatalf("expected only the tagged transaction, got %+v", got)
		}
	})

	t.Run("planned_hidden_by_default", func(t *testing.T) {
		st := testutil.NewTestStore()
		svc := NewTransactionService(st)

		_, err := svc.CreateTransaction(TransactionInput{
			Description: "future rent", Amount: 900, Type: models.TransactionTypeExpense,
			Category: "bills", AccountID: "bank", IsPlanned: true,
		})
		testutil.AssertNoError(t, err)

		if got := svc.GetFilteredTransactions(TransactionFilter{}); len(got) != 0 {
			t.Errorf("planned transactions must be excluded by default, got %d", len(got))
		}
		if got := svc.GetFilteredTransactions(TransactionFilter{IncludePlanned: true}); len(got) != 1 {
			t.Errorf("planned transactions must appear when requested, got %d", len(got))
		}
	})

	t.Run("sorted_newest_first", func(t *testing.T) {
		st := testutil.NewTestStore()
		svc := NewTransactionService(st)

		old := testutil.CreateTestTransaction(t, st, "cash", models.TransactionTypeExpense, 1, localDate(2024, time.March, 1))
		recent := testutil.CreateTestTransaction(t, st, "cash", models.TransactionTypeExpense, 2, localDate(2024, time.March, 9))

		got := svc.GetFilteredTransactions(TransactionFilter{})
		if len(got) != 2 || got[0].ID != recent.ID || got[1].ID != old.ID {
			t.Fatalf("expected newest first, got %+v", got)
		}
	})
}

func TestGetGroupedTransactions(t *testing.T) {
	st := testutil.NewTestStore()
	svc := NewTransactionService(st)

	testutil.CreateTestTransaction(t, st, "cash", models.TransactionTypeExpense, 1, localDate(2024, time.March, 9))
	testutil.CreateTestTransaction(t, st, "cash", models.TransactionTypeExpense, 2, localDate(2024, time.March, 9))
	testutil.CreateTestTransaction(t, st, "cash", models.TransactionTypeExpense, 3, localDate(2024, time.March, 1))

	groups := svc.GetGroupedTransactions(TransactionFilter{})
	if len(groups) != 2 {
		t.Fatalf("expected 2 day buckets, got %d", len(groups))
	}
	if groups[0].Date != "March 9, 2024" {
		t.Errorf("expected newest day first, got %q", groups[0].Date)
	}
	if len(groups[0].Transactions) != 2 {
		t.Errorf("expected 2 transactions on March 9, got %d", len(groups[0].Transactions))
	}
}

func TestGetUpcomingTransactions(t *testing.T) {
	st := testutil.NewTestStore()
	now := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.Local)
	svc := newTransactionServiceAt(st, now)

	add := func(desc string, at time.Time, planned bool) {
		_, err := svc.CreateTransaction(TransactionInput{
			Description: desc, Amount: 10, Type: models.TransactionTypeExpense,
			Category: "bills", AccountID: "bank", Date: &at, IsPlanned: planned,
		})
		testutil.AssertNoError(t, err)
	}
	add("soon", localDate(2024, time.March, 12), true)
	add("later", localDate(2024, time.March, 15), true)
	add("too far", localDate(2024, time.April, 20), true)
	add("not planned", localDate(2024, time.March, 12), false)

	got := svc.GetUpcomingTransactions(7)
	if len(got) != 2 {
		t.Fatalf("expected 2 upcoming, got %d", len(got))
	}
	if got[0].Description != "soon" || got[1].Description != "later" {
		t.Errorf("expected ascending order, got %q then %q", got[0].Description, got[1].Description)
	}
}

func TestActivatePlanned(t *testing.T) {
	st := testutil.NewTestStore()
	now := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.Local)
	svc := newTransactionServiceAt(st, now)

	past := localDate(2024, time.February, 1)
	future := localDate(2024, time.April, 1)
	overdue, err := svc.CreateTransaction(TransactionInput{
		Description: "overdue", Amount: 10, Type: models.TransactionTypeExpense,
		Category: "bills", AccountID: "bank", Date: &past, IsPlanned: true,
	})
	testutil.AssertNoError(t, err)
	pending, err := svc.CreateTransaction(TransactionInput{
		Description: "pending", Amount: 10, Type: models.TransactionTypeExpense,
		Category: "bills", AccountID: "bank", Date: &future, IsPlanned: true,
	})
	testutil.AssertNoError(t, err)

	if n := svc.ActivatePlanned(); n != 1 {
		t.Fatalf("expected 1 activation, got %d", n)
	}

	snap := st.Snapshot()
	for _, tx := range snap.Transactions {
		switch tx.ID {
		case overdue.ID:
			if tx.IsPlanned {
				t.Error("overdue transaction should be activated")
			}
			// The original planned date is discarded in favor of now.
			if tx.Timestamp != now.UnixMilli() {
				t.Errorf("expected activation timestamp %d, got %d", now.UnixMilli(), tx.Timestamp)
			}
		case pending.ID:
			if !tx.IsPlanned {
				t.Error("future transaction must stay planned")
			}
		}
	}
}
