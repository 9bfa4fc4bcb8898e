package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ymoney/networth-backend/internal/api/handlers"
	custommiddleware "github.com/ymoney/networth-backend/internal/api/middleware"
	"github.com/ymoney/networth-backend/internal/config"
	"github.com/ymoney/networth-backend/internal/integration"
	"github.com/ymoney/networth-backend/internal/scheduler"
	"github.com/ymoney/networth-backend/internal/service"
)

// Services bundles everything the router needs. The scheduler may be nil
// when the refresh cycle is not running.
type Services struct {
	System      *service.SystemService
	Dashboard   *service.DashboardService
	Asset       *service.AssetService
	Transaction *service.TransactionService
	Snapshot    *service.SnapshotService
	History     *service.HistoryService
	Rebalance   *service.RebalanceService
	Forecast    *service.ForecastService
	Goal        *service.GoalService
	Setting     *service.SettingService
	Sync        *integration.SyncService
	Registry    *integration.Registry
	Scheduler   *scheduler.Scheduler
}

// NewRouter creates and configures the HTTP router
func NewRouter(svcs Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svcs.System)
			r.Get("/health", systemHandler.Health)
		})

		r.Route("/dashboard", func(r chi.Router) {
			dashboardHandler := handlers.NewDashboardHandler(svcs.Dashboard)
			r.Get("/", dashboardHandler.Dashboard)
		})

		r.Route("/assets", func(r chi.Router) {
			assetHandler := handlers.NewAssetHandler(svcs.Asset)
			transactionHandler := handlers.NewTransactionHandler(svcs.Transaction)
			r.Get("/", assetHandler.Assets)
			r.Post("/", assetHandler.CreateAsset)
			r.Post("/refresh-prices", assetHandler.RefreshPrices)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", assetHandler.Asset)
				r.Put("/", assetHandler.UpdateAsset)
				r.Delete("/", assetHandler.DeleteAsset)
				r.Get("/transactions", transactionHandler.Transactions)
			})
		})

		r.Route("/transactions", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(svcs.Transaction)
			r.Post("/", transactionHandler.CreateTransaction)
			r.Post("/transfer", transactionHandler.Transfer)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Put("/", transactionHandler.UpdateTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/stats", func(r chi.Router) {
			statsHandler := handlers.NewStatsHandler(svcs.Snapshot, svcs.History, svcs.Rebalance, svcs.Forecast)
			r.Get("/history", statsHandler.NetWorthHistory)
			r.Get("/rebalance", statsHandler.Rebalance)
			r.Get("/forecast", statsHandler.Forecast)
			r.Post("/snapshot", statsHandler.CaptureSnapshot)
			r.Route("/assets/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/history", statsHandler.AssetHistory)
			})
		})

		r.Route("/goals", func(r chi.Router) {
			goalHandler := handlers.NewGoalHandler(svcs.Goal)
			r.Get("/", goalHandler.Goals)
			r.Post("/", goalHandler.CreateGoal)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Put("/", goalHandler.UpdateGoal)
				r.Delete("/", goalHandler.DeleteGoal)
			})
		})

		r.Route("/settings", func(r chi.Router) {
			settingHandler := handlers.NewSettingHandler(svcs.Setting, svcs.Scheduler)
			r.Get("/", settingHandler.Settings)
			r.Route("/{key}", func(r chi.Router) {
				r.Get("/", settingHandler.Setting)
				r.Put("/", settingHandler.SetSetting)
				r.Delete("/", settingHandler.DeleteSetting)
			})
		})

		r.Route("/integrations", func(r chi.Router) {
			integrationHandler := handlers.NewIntegrationHandler(svcs.Sync, svcs.Registry)
			r.Get("/", integrationHandler.Integrations)
			r.Get("/providers", integrationHandler.Providers)
			r.Post("/", integrationHandler.CreateIntegration)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Post("/sync", integrationHandler.Sync)
				r.Delete("/", integrationHandler.DeleteIntegration)
			})
		})
	})

	return r
}
