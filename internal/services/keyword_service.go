package services

import (
	"strconv"
	"strings"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/store"
	"fintrack/internal/uuid"
)

// incomeVerbs mark free text as describing income rather than an expense.
var incomeVerbs = map[string]bool{
	"earned":   true,
	"received": true,
	"salary":   true,
	"bonus":    true,
}

// fillerWords are stripped from free text when building the cleaned
// description.
var fillerWords = map[string]bool{
	"i": true, "a": true, "an": true, "the": true, "on": true, "for": true,
	"at": true, "in": true, "of": true, "to": true, "my": true,
	"spent": true, "paid": true, "bought": true, "got": true,
	"earned": true, "received": true, "dollars": true, "bucks": true,
}

// keywordService handles smart-keyword business logic.
type keywordService struct {
	store *store.Store
}

// NewKeywordService creates a new KeywordServicer.
func NewKeywordService(st *store.Store) KeywordServicer {
	return &keywordService{store: st}
}

// AddKeyword adds a keyword-to-category mapping.
func (s *keywordService) AddKeyword(keyword, categoryID string, confidence float64) (*models.SmartKeyword, error) {
	if keyword == "" || categoryID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "keyword and category are required")
	}
	if confidence < 0 || confidence > 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "confidence must be between 0 and 1")
	}

	kw := models.SmartKeyword{
		ID:         uuid.New(),
		Keyword:    strings.ToLower(keyword),
		CategoryID: categoryID,
		Confidence: confidence,
	}

	err := s.store.Update(func(st *store.State) error {
		st.SmartKeywords = append(st.SmartKeywords, kw)
		return nil
	}, store.ColSmartKeywords)
	if err != nil {
		return nil, err
	}
	return &kw, nil
}

// GetKeywords returns all smart keywords.
func (s *keywordService) GetKeywords() []models.SmartKeyword {
	var keywords []models.SmartKeyword
	s.store.View(func(st store.State) {
		keywords = append(keywords, st.SmartKeywords...)
	})
	return keywords
}

// DeleteKeyword removes a keyword by id. An absent id is a no-op.
func (s *keywordService) DeleteKeyword(id string) error {
	return s.store.Update(func(st *store.State) error {
		for i := range st.SmartKeywords {
			if st.SmartKeywords[i].ID == id {
				st.SmartKeywords = removeAt(st.SmartKeywords, i)
				return nil
			}
		}
		return nil
	}, store.ColSmartKeywords)
}

// SuggestCategory scans all keywords for a case-insensitive substring match
// against the description and returns the match with the highest confidence.
func (s *keywordService) SuggestCategory(description string) (*models.SmartKeyword, bool) {
	lowered := strings.ToLower(description)

	var best *models.SmartKeyword
	s.store.View(func(st store.State) {
		for i := range st.SmartKeywords {
			kw := st.SmartKeywords[i]
			if !strings.Contains(lowered, strings.ToLower(kw.Keyword)) {
				continue
			}
			if best == nil || kw.Confidence > best.Confidence {
				match := kw
				best = &match
			}
		}
	})
	return best, best != nil
}

// ParseNaturalLanguage extracts a transaction draft from free text: the
// first numeric token becomes the amount, income verbs flip the type, and
// the remaining words (minus filler) form the description fed to category
// suggestion. Returns false when no numeric amount is present.
func (s *keywordService) ParseNaturalLanguage(text string) (*ParsedTransaction, bool) {
	words := strings.Fields(text)

	amount := 0.0
	amountFound := false
	txType := models.TransactionTypeExpense
	var descWords []string

	for _, word := range words {
		trimmed := strings.Trim(strings.ToLower(word), ".,!?$€£")

		if !amountFound {
			if v, err := strconv.ParseFloat(trimmed, 64); err == nil && v > 0 {
				amount = v
				amountFound = true
				continue
			}
		}
		if incomeVerbs[trimmed] {
			txType = models.TransactionTypeIncome
		}
		if !fillerWords[trimmed] && trimmed != "" {
			descWords = append(descWords, trimmed)
		}
	}
	if !amountFound {
		return nil, false
	}

	description := strings.Join(descWords, " ")

	category := models.FallbackExpenseCategoryID
	if txType == models.TransactionTypeIncome {
		category = models.FallbackIncomeCategoryID
	}
	if match, ok := s.SuggestCategory(description); ok {
		category = match.CategoryID
	}

	return &ParsedTransaction{
		Amount:      amount,
		Type:        txType,
		Description: description,
		Category:    category,
	}, true
}
