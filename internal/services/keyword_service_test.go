package services

import (
	"testing"

	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func TestAddKeyword(t *testing.T) {
	t.Run("lowercases_keyword", func(t *testing.T) {
		st := testutil.NewEmptyStore()
		svc := NewKeywordService(st)

		kw, err := svc.AddKeyword("Starbucks", "food", 0.8)
		testutil.AssertNoError(t, err)
		if kw.Keyword != "starbucks" {
			t.Errorf("expected lowercased keyword, got %q", kw.Keyword)
		}
	})

	t.Run("rejects_out_of_range_confidence", func(t *testing.T) {
		st := testutil.NewEmptyStore()
		svc := NewKeywordService(st)

		_, err := svc.AddKeyword("coffee", "food", 1.5)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestSuggestCategory(t *testing.T) {
	t.Run("highest_confidence_wins", func(t *testing.T) {
		st := testutil.NewEmptyStore()
		svc := NewKeywordService(st)

		_, err := svc.AddKeyword("coffee", "food", 0.6)
		testutil.AssertNoError(t, err)
		_, err = svc.AddKeyword("coffee shop", "entertainment", 0.9)
		testutil.AssertNoError(t, err)

		for i := 0; i < 5; i++ {
			match, ok := svc.SuggestCategory("morning coffee shop run")
			if !ok {
				t.Fatal("expected a match")
			}
			if match.CategoryID != "entertainment" {
				t.Fatalf("expected the 0.9 keyword to win, got %q", match.CategoryID)
			}
		}
	})

	t.Run("match_is_case_insensitive", func(t *testing.T) {
		st := testutil.NewEmptyStore()
		svc := NewKeywordService(st)

		_, err := svc.AddKeyword("netflix", "entertainment", 0.9)
		testutil.AssertNoError(t, err)

		match, ok := svc.SuggestCategory("NETFLIX subscription")
		if !ok || match.CategoryID != "entertainment" {
			t.Errorf("expected a case-insensitive match, got ok=%v match=%+v", ok, match)
		}
	})

	t.Run("no_match_returns_false", func(t *testing.T) {
		st := testutil.NewEmptyStore()
		svc := NewKeywordService(st)

		if _, ok := svc.SuggestCategory("mystery purchase"); ok {
			t.Error("expected no match against an empty keyword set")
		}
	})
}

func TestParseNaturalLanguage(t *testing.T) {
	t.Run("expense_with_keyword_match", func(t *testing.T) {
		st := testutil.NewEmptyStore()
		svc := NewKeywordService(st)
		_, err := svc.AddKeyword("grocery", "food", 0.9)
		testutil.AssertNoError(t, err)

		parsed, ok := svc.ParseNaturalLanguage("I spent 45.50 on grocery shopping")
		if !ok {
			t.Fatal("expected a parse")
		}
		testutil.AssertMoney(t, parsed.Amount, 45.50)
		if parsed.Type != models.TransactionTypeExpense {
			t.Errorf("expected expense, got %s", parsed.Type)
		}
		if parsed.Category != "food" {
			t.Errorf("expected matched category food, got %q", parsed.Category)
		}
		if parsed.Description != "grocery shopping" {
			t.Errorf("fillers should be stripped, got %q", parsed.Description)
		}
	})

	t.Run("income_verb_flips_type", func(t *testing.T) {
		st := testutil.NewEmptyStore()
		svc := NewKeywordService(st)

		parsed, ok := svc.ParseNaturalLanguage("received 2500 bonus")
		if !ok {
			t.Fatal("expected a parse")
		}
		if parsed.Type != models.TransactionTypeIncome {
			t.Errorf("expected income, got %s", parsed.Type)
		}
		if parsed.Category != models.FallbackIncomeCategoryID {
			t.Errorf("expected income fallback category, got %q", parsed.Category)
		}
	})

	t.Run("currency_symbols_trimmed", func(t *testing.T) {
		st := testutil.NewEmptyStore()
		svc := NewKeywordService(st)

		parsed, ok := svc.ParseNaturalLanguage("paid $12.99 for lunch")
		if !ok {
			t.Fatal("expected a parse")
		}
		testutil.AssertMoney(t, parsed.Amount, 12.99)
	})

	t.Run("no_amount_fails", func(t *testing.T) {
		st := testutil.NewEmptyStore()
		svc := NewKeywordService(st)

		if _, ok := svc.ParseNaturalLanguage("bought some snacks"); ok {
			t.Error("text without an amount must not parse")
		}
	})
}
