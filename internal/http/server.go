package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"

	"family-budget-go/internal/config"
	"family-budget-go/internal/repository"
	"family-budget-go/internal/services"
)

type Server struct {
	cfg          *config.Config
	repos        repository.Manager
	transactions *services.TransactionService
	categories   *services.CategoryService
	budgets      *services.BudgetService
	rules        *services.RuleService
	analytics    *services.AnalyticsService
	batchSchema  *gojsonschema.Schema
	tokens       *tokenStore
	logger       *slog.Logger
}

type Deps struct {
	Repos        repository.Manager
	Transactions *services.TransactionService
	Categories   *services.CategoryService
	Budgets      *services.BudgetService
	Rules        *services.RuleService
	Analytics    *services.AnalyticsService
	Logger       *slog.Logger
}

func NewServer(cfg *config.Config, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors(cfg))

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r.Use(requestLogger(logger))

	loader := gojsonschema.NewReferenceLoader("file://./schemas/transaction_batch.schema.json")
	schema, err := gojsonschema.NewSchema(loader)
	if err != nil {
		panic(err)
	}

	s := &Server{
		cfg:          cfg,
		repos:        deps.Repos,
		transactions: deps.Transactions,
		categories:   deps.Categories,
		budgets:      deps.Budgets,
		rules:        deps.Rules,
		analytics:    deps.Analytics,
		batchSchema:  schema,
		tokens:       newTokenStore(),
		logger:       logger,
	}

	r.POST("/v1/auth/register", s.authRegister)
	r.POST("/v1/auth/login", s.authLogin)

	authorized := r.Group("/v1")
	authorized.Use(s.authMiddleware())
	{
		authorized.POST("/transactions", s.createTransaction)
		authorized.GET("/transactions", s.listTransactions)
		authorized.GET("/transactions/:id", s.getTransaction)
		authorized.PATCH("/transactions/:id", s.updateTransaction)
		authorized.DELETE("/transactions/:id", s.deleteTransaction)
		authorized.POST("/transactions/batch", s.batchCreateTransactions)
		authorized.POST("/transactions/apply-rules", s.applyRules)
		authorized.GET("/transactions/:id/audit", s.transactionAudit)
		authorized.GET("/audit", s.auditInRange)

		authorized.GET("/categories", s.listCategories)
		authorized.POST("/categories", s.createCategory)
		authorized.PUT("/categories/:id", s.updateCategory)
		authorized.DELETE("/categories/:id", s.deactivateCategory)

		authorized.GET("/budgets", s.listBudgets)
		authorized.POST("/budgets", s.createBudget)
		authorized.PATCH("/budgets/:id", s.updateBudget)
		authorized.DELETE("/budgets/:id", s.deactivateBudget)

		authorized.GET("/rules", s.listRules)
		authorized.POST("/rules", s.createRule)
		authorized.PATCH("/rules/:id", s.updateRule)
		authorized.DELETE("/rules/:id", s.deactivateRule)

		authorized.GET("/analytics/budgets", s.budgetAnalytics)
		authorized.GET("/analytics/dashboard", s.dashboard)

		authorized.GET("/notifications", s.listNotifications)
		authorized.POST("/notifications/:id/read", s.markNotificationRead)
	}

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	return r
}

func cors(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.AllowOrigins)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, PUT, PATCH, DELETE, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
