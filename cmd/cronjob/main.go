package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"library-loan-backend/internal/config"
	"library-loan-backend/internal/jobs"
	"library-loan-backend/internal/logger"
	"library-loan-backend/internal/scheduler"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a single job and exit (report-overdue-loans, reconcile-inventory, all-nightly)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Library Loan cron runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	jobRunner := jobs.NewJobRunner(db, cfg)

	// One-shot mode for manual runs and debugging
	if *runOnce != "" {
		runSingleJob(jobRunner, *runOnce)
		return
	}

	// Scheduled mode
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	logger.Info("Scheduler started",
		"report_overdue_loans", cfg.Scheduler.ReportOverdueLoans,
		"reconcile_inventory", cfg.Scheduler.ReconcileInventory)

	// Block until interrupted
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down scheduler...")
	sched.Stop()
	logger.Info("Scheduler stopped")
}

func runSingleJob(runner *jobs.JobRunner, name string) {
	logger.Info("Running single job", "job", name)

	switch name {
	case "report-overdue-loans":
		runner.ReportOverdueLoans()
	case "reconcile-inventory":
		runner.ReconcileInventory()
	case "all-nightly":
		runner.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job name", "job", name)
		log.Fatalf("Unknown job: %s (expected report-overdue-loans, reconcile-inventory, or all-nightly)", name)
	}
}
