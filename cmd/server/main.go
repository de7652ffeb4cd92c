package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ekaraca/bist-portfolio-backend/internal/api"
	"github.com/ekaraca/bist-portfolio-backend/internal/collectapi"
	"github.com/ekaraca/bist-portfolio-backend/internal/config"
	"github.com/ekaraca/bist-portfolio-backend/internal/database"
	"github.com/ekaraca/bist-portfolio-backend/internal/repository"
	"github.com/ekaraca/bist-portfolio-backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create repositories
	instrumentRepo := repository.NewInstrumentRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	positionRepo := repository.NewPositionRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	fundRepo := repository.NewFundRepository(db)
	fundShareRepo := repository.NewFundShareRepository(db)
	investorRepo := repository.NewInvestorRepository(db)
	investmentRepo := repository.NewInvestmentRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	propagator := service.NewPropagator(
		db,
		transactionRepo,
		positionRepo,
		portfolioRepo,
		fundRepo,
		investorRepo,
		investmentRepo,
	)

	// Create services
	settingsService, err := service.NewSettingsService(settingRepo, cfg.Secrets.FernetKey)
	if err != nil {
		log.Fatalf("Failed to initialize settings service: %v", err)
	}
	systemService := service.NewSystemService(db, settingsService)
	instrumentService := service.NewInstrumentService(instrumentRepo, snapshotRepo)
	portfolioService := service.NewPortfolioService(propagator, portfolioRepo, positionRepo)
	transactionService := service.NewTransactionService(propagator, transactionRepo, portfolioRepo, instrumentRepo)
	fundService := service.NewFundService(propagator, fundRepo, fundShareRepo, investorRepo)
	investorService := service.NewInvestorService(propagator, investorRepo, fundShareRepo)
	investmentService := service.NewInvestmentService(propagator, investmentRepo, investorRepo)
	retentionService := service.NewRetentionService(snapshotRepo)

	collectClient := collectapi.NewHTTPClient(cfg.CollectAPI.BaseURL, cfg.CollectAPI.Timeout)
	ingestService := service.NewIngestService(
		db,
		collectClient,
		settingsService,
		instrumentRepo,
		snapshotRepo,
		cfg.CollectAPI.APIKey,
	)

	// Schedule background jobs
	scheduler := cron.New()
	if cfg.Ingest.Enabled {
		_, err := scheduler.AddFunc(cfg.Ingest.Schedule, func() {
			if _, err := ingestService.Ingest(context.Background()); err != nil {
				log.Printf("Scheduled ingest failed: %v", err)
			}
		})
		if err != nil {
			log.Fatalf("Invalid ingest schedule %q: %v", cfg.Ingest.Schedule, err)
		}
		log.Printf("Ingest scheduled: %s", cfg.Ingest.Schedule)
	}
	if cfg.Retention.Enabled {
		_, err := scheduler.AddFunc(cfg.Retention.Schedule, func() {
			if _, err := retentionService.Prune(cfg.Retention.Days, cfg.Retention.KeepDaily); err != nil {
				log.Printf("Scheduled retention failed: %v", err)
			}
		})
		if err != nil {
			log.Fatalf("Invalid retention schedule %q: %v", cfg.Retention.Schedule, err)
		}
		log.Printf("Retention scheduled: %s (keep %d days)", cfg.Retention.Schedule, cfg.Retention.Days)
	}
	scheduler.Start()

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Instrument:  instrumentService,
		Portfolio:   portfolioService,
		Transaction: transactionService,
		Fund:        fundService,
		Investor:    investorService,
		Investment:  investmentService,
		Ingest:      ingestService,
		Retention:   retentionService,
		Settings:    settingsService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Stop scheduling new jobs, then drain the server
	cronCtx := scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	<-cronCtx.Done()
	log.Println("Server exited")
}
