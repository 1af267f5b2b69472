package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"finance-api/internal/config"
	"finance-api/internal/handlers"
	"finance-api/internal/middleware"
	"finance-api/internal/repositories"
	"finance-api/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

const (
	assistantBreakerMaxFailures  = 5
	assistantBreakerResetTimeout = 30 * time.Second
	maxRequestBody               = "1M"
	auditPruneInterval           = 24 * time.Hour
)

// Server owns the Echo instance and the background work tied to its lifetime
type Server struct {
	cfg         *config.Config
	echo        *echo.Echo
	rateLimiter *middleware.RateLimiter
	auditRepo   repositories.AuditLogRepositoryInterface
	logger      *slog.Logger
}

// New wires repositories, services and handlers onto a fresh Echo router.
// Metrics are registered on reg and exposed on /metrics.
func New(cfg *config.Config, db *gorm.DB, reg *prometheus.Registry, logger *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.NewHTTPErrorHandler(reg)
	e.IPExtractor = middleware.IPExtractor(cfg.Server.TrustedProxies)
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	userRepo := repositories.NewUserRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	budgetRepo := repositories.NewBudgetRepository(db)

	metrics := services.NewPrometheusMetrics(reg)
	auditLogger := services.NewAuditLogger(logger)
	tokenService := services.NewTokenService(&cfg.JWT)
	passwordService := services.NewPasswordService(&cfg.Security)
	breaker := services.NewCircuitBreaker(services.CircuitBreakerConfig{
		Name:         "assistant",
		MaxFailures:  assistantBreakerMaxFailures,
		ResetTimeout: assistantBreakerResetTimeout,
	}, auditLogger, metrics)

	authService := services.NewAuthService(userRepo, auditRepo, passwordService, tokenService, metrics, logger)
	transactionService := services.NewTransactionService(transactionRepo, categoryRepo, auditLogger, metrics, logger)
	budgetService := services.NewBudgetService(budgetRepo, categoryRepo, auditLogger, metrics, logger)
	summaryService := services.NewSummaryService(transactionRepo)
	assistantService := services.NewAssistantService(&cfg.Assistant, transactionRepo, breaker, auditLogger, metrics, logger)

	s := &Server{
		cfg:         cfg,
		echo:        e,
		rateLimiter: middleware.NewRateLimiter(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst),
		auditRepo:   auditRepo,
		logger:      logger,
	}

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.BodyLimit(maxRequestBody))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, middleware.TraceIDHeader},
	}))

	healthHandler := handlers.NewHealthCheckHandler(db)
	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	api := e.Group("/api")

	authHandler := handlers.NewAuthHandler(authService)
	auth := api.Group("/auth", s.rateLimiter.Middleware())
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	protected := api.Group("", middleware.RequireAuth(tokenService))

	budgetHandler := handlers.NewBudgetHandler(budgetService)
	protected.GET("/budgets", budgetHandler.ListBudgets)
	protected.POST("/budgets", budgetHandler.CreateBudget)
	protected.PUT("/budgets/:id", budgetHandler.UpdateBudget)
	protected.DELETE("/budgets/:id", budgetHandler.DeleteBudget)

	transactionHandler := handlers.NewTransactionHandler(transactionService, summaryService)
	protected.GET("/transactions", transactionHandler.ListTransactions)
	protected.POST("/transactions", transactionHandler.CreateTransaction)
	protected.GET("/transactions/summary", transactionHandler.GetSummary)
	protected.GET("/transactions/monthly-summary", transactionHandler.GetMonthlySummary)
	protected.GET("/transactions/category-summary", transactionHandler.GetCategorySummary)
	protected.PUT("/transactions/:id", transactionHandler.UpdateTransaction)
	protected.DELETE("/transactions/:id", transactionHandler.DeleteTransaction)
	protected.GET("/categories", transactionHandler.ListCategories)

	assistantHandler := handlers.NewAssistantHandler(assistantService)
	protected.POST("/chatbot", assistantHandler.Chat)

	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves HTTP on the configured address until Shutdown is called.
// It returns nil after a graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	go s.rateLimiter.RunCleanup(ctx)
	go s.runAuditRetention(ctx)

	s.logger.Info("starting server", "address", s.cfg.Server.Address(), "environment", s.cfg.Server.Environment)
	if err := s.echo.Start(s.cfg.Server.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// runAuditRetention prunes audit rows older than the configured retention once a day
func (s *Server) runAuditRetention(ctx context.Context) {
	if s.cfg.Security.AuditLogRetention <= 0 {
		return
	}

	ticker := time.NewTicker(auditPruneInterval)
	defer ticker.Stop()

	for {
		s.pruneAuditLogs()

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) pruneAuditLogs() {
	deleted, err := s.auditRepo.DeleteOlderThan(s.cfg.Security.AuditLogRetention)
	if err != nil {
		s.logger.Warn("failed to prune audit logs", "error", err)
		return
	}
	if deleted > 0 {
		s.logger.Info("pruned audit logs", "deleted", deleted)
	}
}
