package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"fintrack/internal/config"
	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/services"
	"fintrack/internal/storage"
	"fintrack/internal/store"
	"fintrack/internal/validator"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Open the persistence adapter and rebuild the ledger state from it.
	dbManager, err := storage.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to open persistence adapter: %w", err)
	}
	initial, err := dbManager.Load()
	if err != nil {
		return fmt.Errorf("failed to load ledger state: %w", err)
	}
	ledger := store.New(initial, dbManager)

	// Initialize services
	accountService := services.NewAccountService(ledger)
	categoryService := services.NewCategoryService(ledger)
	transactionService := services.NewTransactionService(ledger)
	recurringService := services.NewRecurringService(ledger)
	budgetService := services.NewBudgetService(ledger)
	goalService := services.NewGoalService(ledger)
	keywordService := services.NewKeywordService(ledger)
	reportService := services.NewReportService(ledger)

	// After a settle delay, activate planned transactions that have come due
	// and materialize due recurring rules. The delay keeps startup churn off
	// the first requests.
	time.AfterFunc(appConfig.StartupSettleDelay, func() {
		activated := transactionService.ActivatePlanned()
		if activated > 0 {
			log.Infow("activated planned transactions", "count", activated)
		}
		created, err := recurringService.MaterializeDue()
		if err != nil {
			log.Errorw("recurring materialization failed", "error", err)
			return
		}
		if len(created) > 0 {
			log.Infow("materialized recurring transactions", "count", len(created))
		}
	})

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(accountService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	recurringHandler := handlers.NewRecurringHandler(recurringService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	goalHandler := handlers.NewGoalHandler(goalService)
	keywordHandler := handlers.NewKeywordHandler(keywordService)
	reportHandler := handlers.NewReportHandler(reportService)

	validator.Register()

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Account routes
	accounts := v1.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetAccounts)
	accounts.GET("/total/balance", accountHandler.GetTotalBalance)
	accounts.GET("/:id", accountHandler.GetAccountByID)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)

	// Category routes
	categories := v1.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Transaction routes
	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/grouped", transactionHandler.GetGroupedTransactions)
	transactions.GET("/upcoming", transactionHandler.GetUpcomingTransactions)
	transactions.POST("/transfer", transactionHandler.CreateTransfer)
	transactions.POST("/activate-planned", transactionHandler.ActivatePlanned)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Recurring rule routes
	recurring := v1.Group("/recurring")
	recurring.POST("", recurringHandler.CreateRule)
	recurring.GET("", recurringHandler.GetRules)
	recurring.POST("/materialize", recurringHandler.Materialize)
	recurring.GET("/:id/occurrences", recurringHandler.GetOccurrences)
	recurring.PUT("/:id", recurringHandler.UpdateRule)
	recurring.DELETE("/:id", recurringHandler.DeleteRule)

	// Budget routes
	budgets := v1.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/predictions", budgetHandler.GetPredictions)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	// Savings goal routes
	goals := v1.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/progress", goalHandler.GetProgress)
	goals.POST("/:id/contributions", goalHandler.AddContribution)
	goals.GET("/:id/contributions", goalHandler.GetContributions)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	// Smart keyword routes
	keywords := v1.Group("/keywords")
	keywords.POST("", keywordHandler.AddKeyword)
	keywords.GET("", keywordHandler.GetKeywords)
	keywords.GET("/suggest", keywordHandler.SuggestCategory)
	keywords.POST("/parse", keywordHandler.Parse)
	keywords.DELETE("/:id", keywordHandler.DeleteKeyword)

	// Report routes
	reports := v1.Group("/reports")
	reports.GET("/summary", reportHandler.GetSummary)
	reports.GET("/expenses-by-category", reportHandler.GetExpensesByCategory)
	reports.GET("/trends", reportHandler.GetTrends)
	reports.GET("/projection", reportHandler.GetProjection)

	log.Infof("Starting fintrack backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
