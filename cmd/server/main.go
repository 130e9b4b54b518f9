package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/barryallent/expense-tracker-app/internal/config"
	"github.com/barryallent/expense-tracker-app/internal/database"
	"github.com/barryallent/expense-tracker-app/internal/handlers"
	"github.com/barryallent/expense-tracker-app/internal/metrics"
	custommw "github.com/barryallent/expense-tracker-app/internal/middleware"
	"github.com/barryallent/expense-tracker-app/internal/repositories"
	"github.com/barryallent/expense-tracker-app/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()

	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}
	if err := db.SeedDefaultCategories(logger); err != nil {
		logger.Error("failed to seed categories", "error", err)
		os.Exit(1)
	}
	if cfg.Server.SeedDemoData {
		if err := db.SeedDemoData(logger); err != nil {
			logger.Error("failed to seed demo data", "error", err)
			os.Exit(1)
		}
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db.DB)
	categoryRepo := repositories.NewCategoryRepository(db.DB)
	transactionRepo := repositories.NewTransactionRepository(db.DB)

	// Services
	passwordService := services.NewPasswordService(cfg.Security.BCryptCost)
	tokenService := services.NewTokenService(&cfg.JWT)
	authService := services.NewAuthService(userRepo, passwordService, tokenService, logger)
	userService := services.NewUserService(userRepo, logger)
	transactionService := services.NewTransactionService(transactionRepo, categoryRepo, logger)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	recorder := metrics.NewRecorder(registry)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, recorder)
	userHandler := handlers.NewUserHandler(userService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, recorder)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	e.GET("/health", func(c echo.Context) error {
		if err := db.HealthCheck(); err != nil {
			return c.JSON(503, map[string]string{"status": "down"})
		}
		return c.JSON(200, map[string]string{"status": "up"})
	})

	api := e.Group("/api")

	loginLimiter := custommw.NewRateLimiter(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst)
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register, loginLimiter.Middleware())
	auth.POST("/login", authHandler.Login, loginLimiter.Middleware())
	auth.GET("/validate", authHandler.Validate, custommw.RequireAuth(tokenService))

	users := api.Group("/users", custommw.RequireAuth(tokenService))
	users.PUT("/currency", userHandler.UpdateCurrency)

	transactions := api.Group("/transactions", custommw.RequireAuth(tokenService))
	transactions.GET("", transactionHandler.List)
	transactions.POST("", transactionHandler.Create)
	transactions.GET("/summary", transactionHandler.Summary)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "addr", addr, "env", cfg.Server.Environment)
	if err := e.Start(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
