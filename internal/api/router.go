package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ekaraca/bist-portfolio-backend/internal/api/handlers"
	custommiddleware "github.com/ekaraca/bist-portfolio-backend/internal/api/middleware"
	"github.com/ekaraca/bist-portfolio-backend/internal/config"
	"github.com/ekaraca/bist-portfolio-backend/internal/service"
)

// Services bundles the service layer dependencies the router mounts handlers on.
type Services struct {
	System      *service.SystemService
	Instrument  *service.InstrumentService
	Portfolio   *service.PortfolioService
	Transaction *service.TransactionService
	Fund        *service.FundService
	Investor    *service.InvestorService
	Investment  *service.InvestmentService
	Ingest      *service.IngestService
	Retention   *service.RetentionService
	Settings    *service.SettingsService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
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
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/instrument", func(r chi.Router) {
			instrumentHandler := handlers.NewInstrumentHandler(svc.Instrument)
			r.Get("/", instrumentHandler.Instruments)
			r.Route("/{code}", func(r chi.Router) {
				r.Get("/", instrumentHandler.GetInstrument)
				r.Get("/snapshots", instrumentHandler.Snapshots)
			})
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolio)
			r.Get("/", portfolioHandler.Portfolios)
			r.Post("/", portfolioHandler.CreatePortfolio)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", portfolioHandler.GetPortfolio)
				r.Put("/", portfolioHandler.UpdatePortfolio)
				r.Delete("/", portfolioHandler.DeletePortfolio)
				r.Get("/summary", portfolioHandler.PortfolioSummary)
				r.Get("/positions", portfolioHandler.PortfolioPositions)
			})
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(svc.Transaction)
			r.Get("/", transactionHandler.AllTransactions)
			r.Post("/", transactionHandler.CreateTransaction)
			r.Route("/portfolio/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.TransactionsPerPortfolio)
			})
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Put("/", transactionHandler.UpdateTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/fund", func(r chi.Router) {
			fundHandler := handlers.NewFundHandler(svc.Fund)
			r.Get("/", fundHandler.Funds)
			r.Post("/", fundHandler.CreateFund)
			r.Route("/share", func(r chi.Router) {
				r.Post("/", fundHandler.CreateFundShare)
				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Put("/", fundHandler.UpdateFundShare)
					r.Delete("/", fundHandler.DeleteFundShare)
				})
			})
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", fundHandler.GetFund)
				r.Put("/", fundHandler.UpdateFund)
				r.Delete("/", fundHandler.DeleteFund)
				r.Get("/shares", fundHandler.FundShares)
				r.Post("/recompute", fundHandler.RecomputeFundValue)
			})
		})

		r.Route("/investor", func(r chi.Router) {
			investorHandler := handlers.NewInvestorHandler(svc.Investor, svc.Investment)
			r.Get("/", investorHandler.Investors)
			r.Post("/", investorHandler.CreateInvestor)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", investorHandler.GetInvestor)
				r.Put("/", investorHandler.UpdateInvestor)
				r.Delete("/", investorHandler.DeleteInvestor)
				r.Get("/summary", investorHandler.InvestorSummary)
				r.Get("/shares", investorHandler.InvestorShares)
				r.Get("/investments", investorHandler.InvestorInvestments)
				r.Post("/recompute", investorHandler.RecomputeInvestor)
			})
		})

		r.Route("/investment", func(r chi.Router) {
			investmentHandler := handlers.NewInvestmentHandler(svc.Investment)
			r.Post("/", investmentHandler.CreateInvestment)
			r.Post("/bulk-delete", investmentHandler.BulkDeleteInvestments)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Put("/", investmentHandler.UpdateInvestment)
				r.Delete("/", investmentHandler.DeleteInvestment)
			})
		})

		// Operational endpoints, guarded by the internal API key
		r.Route("/admin", func(r chi.Router) {
			r.Use(custommiddleware.APIKeyMiddleware)
			adminHandler := handlers.NewAdminHandler(svc.Ingest, svc.Retention, svc.Settings, cfg.Retention)
			instrumentHandler := handlers.NewInstrumentHandler(svc.Instrument)
			r.Post("/ingest", adminHandler.TriggerIngest)
			r.Post("/retention", adminHandler.TriggerRetention)
			r.Post("/settings/apikey", adminHandler.SetAPIKey)
			r.Delete("/instrument/{code}", instrumentHandler.DeleteInstrument)
		})
	})

	return r
}
