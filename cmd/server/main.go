package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	httpapi "library-loan-backend/internal/api/http"
	"library-loan-backend/internal/config"
	"library-loan-backend/internal/logger"
	"library-loan-backend/internal/repository/postgres"
	"library-loan-backend/internal/security"
	"library-loan-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Library Loan Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Loan policy", "default_duration_days", cfg.Loan.DefaultDurationDays, "penalty_daily_rate_cents", cfg.Loan.PenaltyDailyRateCent)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
	authMiddleware := httpapi.NewAuthMiddleware(tokenManager)

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	bookSvc := service.NewBookService(store.BookRepository, store.AuthorRepository, store.CategoryRepository)
	loanSvc := service.NewLoanService(
		store.LoanRepository,
		store.BookRepository,
		store.PenaltyRepository,
		cfg.Loan.PenaltyDailyRateCent,
		nil,
	)
	penaltySvc := service.NewPenaltyService(store.PenaltyRepository, nil)
	adminSvc := service.NewAdminService(store.UserRepository)

	// Initialize HTTP handlers
	authHandler := httpapi.NewAuthHandler(authSvc)
	bookHandler := httpapi.NewBookHandler(bookSvc)
	loanHandler := httpapi.NewLoanHandler(loanSvc, penaltySvc, cfg.Loan.DefaultDurationDays)
	adminHandler := httpapi.NewAdminHandler(adminSvc, penaltySvc)

	// Set up router
	router := mux.NewRouter()
	httpapi.RegisterRoutes(router, authMiddleware, authHandler, bookHandler, loanHandler, adminHandler)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
