package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ekaraca/bist-portfolio-backend/internal/api/handlers"
	"github.com/ekaraca/bist-portfolio-backend/internal/api/request"
	"github.com/ekaraca/bist-portfolio-backend/internal/model"
	"github.com/ekaraca/bist-portfolio-backend/internal/testutil"
)

// TestPortfolioHandler_Portfolios tests the list endpoint and its filter.
func TestPortfolioHandler_Portfolios(t *testing.T) {
	t.Run("lists active portfolios by default", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db))

		testutil.NewPortfolio().WithName("Active").Build(t, db)
		testutil.NewPortfolio().WithName("Dormant").Inactive().Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
		rec := httptest.NewRecorder()

		// Execute
		handler.Portfolios(rec, req)

		// Assert
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rec.Code)
		}

		var body []model.Portfolio
		testutil.DecodeJSONResponse(t, rec, &body)
		if len(body) != 1 {
			t.Fatalf("Expected 1 portfolio, got %d", len(body))
		}
		if body[0].Name != "Active" {
			t.Errorf("Expected the active portfolio, got %q", body[0].Name)
		}
	})

	t.Run("includeInactive query returns everything", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db))

		testutil.NewPortfolio().Build(t, db)
		testutil.NewPortfolio().Inactive().Build(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/portfolio",
			map[string]string{"includeInactive": "true"})
		rec := httptest.NewRecorder()

		handler.Portfolios(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rec.Code)
		}

		var body []model.Portfolio
		testutil.DecodeJSONResponse(t, rec, &body)
		if len(body) != 2 {
			t.Fatalf("Expected 2 portfolios, got %d", len(body))
		}
	})
}

// TestPortfolioHandler_CreatePortfolio tests the create endpoint.
func TestPortfolioHandler_CreatePortfolio(t *testing.T) {
	t.Run("valid request returns 201", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db))

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/portfolio", request.CreatePortfolioRequest{
			Name: "Retirement",
		}, nil)
		rec := httptest.NewRecorder()

		handler.CreatePortfolio(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var body model.Portfolio
		testutil.DecodeJSONResponse(t, rec, &body)
		if body.Name != "Retirement" {
			t.Errorf("Expected name Retirement, got %q", body.Name)
		}
		if body.Currency != "TRY" {
			t.Errorf("Expected default currency TRY, got %q", body.Currency)
		}
	})

	t.Run("missing name returns 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db))

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/portfolio", request.CreatePortfolioRequest{}, nil)
		rec := httptest.NewRecorder()

		handler.CreatePortfolio(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("Expected status 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

// TestPortfolioHandler_PortfolioSummary tests the summary endpoint.
func TestPortfolioHandler_PortfolioSummary(t *testing.T) {
	t.Run("returns computed aggregates", func(t *testing.T) {
		// Setup: 10 units bought at 90, latest snapshot price 100
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db))
		txSvc := testutil.NewTestTransactionService(t, db)

		portfolio := testutil.NewPortfolio().Build(t, db)
		instrument := testutil.NewInstrument().Build(t, db)
		testutil.NewSnapshot(instrument.Code).WithPrice(100).Build(t, db)
		if _, err := txSvc.CreateTransaction(context.Background(), request.CreateTransactionRequest{
			PortfolioID:    portfolio.ID,
			InstrumentCode: instrument.Code,
			Type:           model.TransactionBuy,
			Date:           "2025-03-01",
			Price:          90,
			Quantity:       10,
		}); err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/portfolio/"+portfolio.ID+"/summary",
			map[string]string{"uuid": portfolio.ID})
		rec := httptest.NewRecorder()

		// Execute
		handler.PortfolioSummary(rec, req)

		// Assert
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var body model.PortfolioSummary
		testutil.DecodeJSONResponse(t, rec, &body)
		if body.TotalValue != 1000 {
			t.Errorf("Expected total value 1000, got %v", body.TotalValue)
		}
		if body.TotalCost != 900 {
			t.Errorf("Expected total cost 900, got %v", body.TotalCost)
		}
	})

	t.Run("unknown portfolio returns 404", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db))

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/portfolio/"+id+"/summary",
			map[string]string{"uuid": id})
		rec := httptest.NewRecorder()

		handler.PortfolioSummary(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("Expected status 404, got %d", rec.Code)
		}
	})
}

// TestPortfolioHandler_DeletePortfolio tests the delete endpoint.
func TestPortfolioHandler_DeletePortfolio(t *testing.T) {
	t.Run("existing portfolio returns 204", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db))

		portfolio := testutil.NewPortfolio().Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/portfolio/"+portfolio.ID,
			map[string]string{"uuid": portfolio.ID})
		rec := httptest.NewRecorder()

		handler.DeletePortfolio(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("Expected status 204, got %d: %s", rec.Code, rec.Body.String())
		}
		testutil.AssertRowCount(t, db, "portfolio", 0)
	})

	t.Run("unknown portfolio returns 404", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(testutil.NewTestPortfolioService(t, db))

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/portfolio/"+id,
			map[string]string{"uuid": id})
		rec := httptest.NewRecorder()

		handler.DeletePortfolio(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("Expected status 404, got %d", rec.Code)
		}
	})
}
