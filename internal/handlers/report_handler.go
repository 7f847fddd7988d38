package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// ReportHandler handles derivation and reporting requests.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetSummary returns all-time and current-month aggregates in one payload.
func (h *ReportHandler) GetSummary(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}

	c.JSON(http.StatusOK, gin.H{
		"totalIncome":     h.reportService.GetTotalIncome(),
		"totalExpenses":   h.reportService.GetTotalExpenses(),
		"month":           month,
		"monthlyIncome":   h.reportService.GetMonthlyIncome(month),
		"monthlyExpenses": h.reportService.GetMonthlyExpenses(month),
		"monthlyBalance":  h.reportService.GetMonthlyBalance(month),
	})
}

// GetExpensesByCategory returns per-category expense totals for a month.
func (h *ReportHandler) GetExpensesByCategory(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}

	totals := h.reportService.GetExpensesByCategory(month)
	if totals == nil {
		totals = []services.CategoryTotal{}
	}
	c.JSON(http.StatusOK, gin.H{"month": month, "categories": totals})
}

// GetTrends returns up to the last twelve months of aggregates, oldest first.
func (h *ReportHandler) GetTrends(c *gin.Context) {
	trends := h.reportService.GetMonthlyTrends()
	if trends == nil {
		trends = []services.MonthlyTrend{}
	}
	c.JSON(http.StatusOK, gin.H{"trends": trends})
}

// GetProjection walks the balance forward over planned transactions and
// recurring rules. Defaults to a 30 day horizon.
func (h *ReportHandler) GetProjection(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "days must be an integer"))
			return
		}
		days = parsed
	}

	projection, err := h.reportService.ProjectBalance(days)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projection": projection})
}
