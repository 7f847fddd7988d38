package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// KeywordHandler handles smart-keyword requests.
type KeywordHandler struct {
	keywordService services.KeywordServicer
}

// NewKeywordHandler creates a new KeywordHandler.
func NewKeywordHandler(keywordService services.KeywordServicer) *KeywordHandler {
	return &KeywordHandler{keywordService: keywordService}
}

// AddKeywordRequest represents the request payload for adding a smart keyword.
type AddKeywordRequest struct {
	Keyword    string  `json:"keyword" binding:"required,min=1,max=100"`
	CategoryID string  `json:"categoryId" binding:"required"`
	Confidence float64 `json:"confidence" binding:"gte=0,lte=1"`
}

// ParseRequest represents the request payload for natural-language parsing.
type ParseRequest struct {
	Text string `json:"text" binding:"required,min=1,max=500"`
}

// AddKeyword adds a keyword-to-category mapping.
func (h *KeywordHandler) AddKeyword(c *gin.Context) {
	var req AddKeywordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	keyword, err := h.keywordService.AddKeyword(req.Keyword, req.CategoryID, req.Confidence)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"keyword": keyword})
}

// GetKeywords returns all smart keywords.
func (h *KeywordHandler) GetKeywords(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"keywords": h.keywordService.GetKeywords()})
}

// DeleteKeyword removes a keyword.
func (h *KeywordHandler) DeleteKeyword(c *gin.Context) {
	if err := h.keywordService.DeleteKeyword(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SuggestCategory suggests a category for a free-text description.
func (h *KeywordHandler) SuggestCategory(c *gin.Context) {
	description := c.Query("description")
	if description == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required"))
		return
	}

	match, ok := h.keywordService.SuggestCategory(description)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"match": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": match})
}

// Parse extracts a transaction draft from free text.
func (h *KeywordHandler) Parse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	parsed, ok := h.keywordService.ParseNaturalLanguage(req.Text)
	if !ok {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "no amount found in text"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"parsed": parsed})
}
