package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ymoney/networth-backend/internal/api"
	"github.com/ymoney/networth-backend/internal/config"
	"github.com/ymoney/networth-backend/internal/database"
	"github.com/ymoney/networth-backend/internal/integration"
	"github.com/ymoney/networth-backend/internal/marketdata"
	"github.com/ymoney/networth-backend/internal/model"
	"github.com/ymoney/networth-backend/internal/pricing"
	"github.com/ymoney/networth-backend/internal/repository"
	"github.com/ymoney/networth-backend/internal/scheduler"
	"github.com/ymoney/networth-backend/internal/service"
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

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	assetRepo := repository.NewAssetRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	integrationRepo := repository.NewIntegrationRepository(db)

	// Market data and pricing
	provider := marketdata.NewClient(cfg.Valuation.FetchTimeout)

	settingService := service.NewSettingService(settingRepo)
	fxCache := pricing.NewFxCache(
		provider,
		settingService,
		cfg.Valuation.FxSymbol,
		model.SettingFxRate,
		cfg.Valuation.FxCacheTTL,
		cfg.Valuation.FallbackFxRate,
	)

	// Integration credentials
	crypter, err := integration.NewCrypter(cfg.Secrets.FernetKey)
	if err != nil {
		log.Fatalf("Failed to load encryption key: %v", err)
	}
	registry := integration.NewRegistry()
	registry.Register(integration.NewMaxProvider(cfg.Valuation.FetchTimeout))

	// Create services
	systemService := service.NewSystemService(db)
	assetService := service.NewAssetService(assetRepo, provider, fxCache, cfg.Valuation)
	transactionService := service.NewTransactionService(db, transactionRepo, assetRepo)
	historyService := service.NewHistoryService(assetRepo, transactionRepo, provider, fxCache, cfg.Valuation)
	dashboardService := service.NewDashboardService(assetRepo, transactionRepo, fxCache, cfg.Valuation)
	snapshotService := service.NewSnapshotService(snapshotRepo, historyService)
	rebalanceService := service.NewRebalanceService(dashboardService, settingService)
	forecastService := service.NewForecastService(goalRepo, snapshotService)
	goalService := service.NewGoalService(goalRepo)
	syncService := integration.NewSyncService(integrationRepo, assetRepo, transactionRepo, registry, crypter)

	// Start the refresh cycle
	sched := scheduler.New(assetService, snapshotService, settingService, syncService, cfg.Scheduler.DefaultIntervalMinutes)
	sched.Start()
	defer sched.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Dashboard:   dashboardService,
		Asset:       assetService,
		Transaction: transactionService,
		Snapshot:    snapshotService,
		History:     historyService,
		Rebalance:   rebalanceService,
		Forecast:    forecastService,
		Goal:        goalService,
		Setting:     settingService,
		Sync:        syncService,
		Registry:    registry,
		Scheduler:   sched,
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

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
