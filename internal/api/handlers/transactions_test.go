package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ekaraca/bist-portfolio-backend/internal/api/handlers"
	"github.com/ekaraca/bist-portfolio-backend/internal/api/request"
	"github.com/ekaraca/bist-portfolio-backend/internal/api/response"
	"github.com/ekaraca/bist-portfolio-backend/internal/model"
	"github.com/ekaraca/bist-portfolio-backend/internal/testutil"
)

// TestTransactionHandler_CreateTransaction tests the create endpoint status mapping.
//
// WHY: Clients distinguish retryable input mistakes (400), missing resources
// (404) and business conflicts (409) by status code alone, so the mapping has
// to stay stable.
func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("valid buy returns 201 with the transaction", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		portfolio := testutil.NewPortfolio().Build(t, db)
		instrument := testutil.NewInstrument().Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transaction", request.CreateTransactionRequest{
			PortfolioID:    portfolio.ID,
			InstrumentCode: instrument.Code,
			Type:           model.TransactionBuy,
			Date:           "2025-03-01",
			Price:          100,
			Quantity:       10,
		}, nil)
		rec := httptest.NewRecorder()

		// Execute
		handler.CreateTransaction(rec, req)

		// Assert
		if rec.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var body model.Transaction
		testutil.DecodeJSONResponse(t, rec, &body)
		if body.ID == "" {
			t.Error("Expected created transaction to carry an ID")
		}
		if body.Price != 100 {
			t.Errorf("Expected price 100, got %v", body.Price)
		}
	})

	t.Run("sell beyond holdings returns 409", func(t *testing.T) {
		// Setup: no holdings at all
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		portfolio := testutil.NewPortfolio().Build(t, db)
		instrument := testutil.NewInstrument().Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transaction", request.CreateTransactionRequest{
			PortfolioID:    portfolio.ID,
			InstrumentCode: instrument.Code,
			Type:           model.TransactionSell,
			Date:           "2025-03-01",
			Price:          100,
			Quantity:       5,
		}, nil)
		rec := httptest.NewRecorder()

		// Execute
		handler.CreateTransaction(rec, req)

		// Assert
		if rec.Code != http.StatusConflict {
			t.Fatalf("Expected status 409, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("unknown portfolio returns 404", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		instrument := testutil.NewInstrument().Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transaction", request.CreateTransactionRequest{
			PortfolioID:    testutil.MakeID(),
			InstrumentCode: instrument.Code,
			Type:           model.TransactionBuy,
			Date:           "2025-03-01",
			Price:          100,
			Quantity:       10,
		}, nil)
		rec := httptest.NewRecorder()

		handler.CreateTransaction(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("Expected status 404, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("invalid type returns 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		portfolio := testutil.NewPortfolio().Build(t, db)
		instrument := testutil.NewInstrument().Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/transaction", request.CreateTransactionRequest{
			PortfolioID:    portfolio.ID,
			InstrumentCode: instrument.Code,
			Type:           "gift",
			Date:           "2025-03-01",
			Price:          100,
			Quantity:       10,
		}, nil)
		rec := httptest.NewRecorder()

		handler.CreateTransaction(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("Expected status 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("malformed JSON returns 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		req := httptest.NewRequest(http.MethodPost, "/api/transaction", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()

		handler.CreateTransaction(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("Expected status 400, got %d", rec.Code)
		}

		var body response.ErrorResponse
		testutil.DecodeJSONResponse(t, rec, &body)
		if body.Error != "invalid request body" {
			t.Errorf("Expected invalid request body error, got %q", body.Error)
		}
	})
}

// TestTransactionHandler_DeleteTransaction tests the delete endpoint.
func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("existing transaction returns 204", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		portfolio := testutil.NewPortfolio().Build(t, db)
		instrument := testutil.NewInstrument().Build(t, db)
		transaction := testutil.NewTransaction(portfolio.ID, instrument.Code).Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/transaction/"+transaction.ID,
			map[string]string{"uuid": transaction.ID})
		rec := httptest.NewRecorder()

		// Execute
		handler.DeleteTransaction(rec, req)

		// Assert
		if rec.Code != http.StatusNoContent {
			t.Fatalf("Expected status 204, got %d: %s", rec.Code, rec.Body.String())
		}
		testutil.AssertRowCount(t, db, `"transaction"`, 0)
	})

	t.Run("unknown transaction returns 404", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/transaction/"+id,
			map[string]string{"uuid": id})
		rec := httptest.NewRecorder()

		handler.DeleteTransaction(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("Expected status 404, got %d", rec.Code)
		}
	})
}

// TestTransactionHandler_TransactionsPerPortfolio tests the enriched listing.
func TestTransactionHandler_TransactionsPerPortfolio(t *testing.T) {
	// Setup: two portfolios, one transaction each
	db := testutil.SetupTestDB(t)
	handler := handlers.NewTransactionHandler(testutil.NewTestTransactionService(t, db))

	portfolioA := testutil.NewPortfolio().WithName("Alpha").Build(t, db)
	portfolioB := testutil.NewPortfolio().WithName("Beta").Build(t, db)
	instrument := testutil.NewInstrument().Build(t, db)
	testutil.NewTransaction(portfolioA.ID, instrument.Code).Build(t, db)
	testutil.NewTransaction(portfolioB.ID, instrument.Code).Build(t, db)

	req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/transaction/portfolio/"+portfolioA.ID,
		map[string]string{"uuid": portfolioA.ID})
	rec := httptest.NewRecorder()

	// Execute
	handler.TransactionsPerPortfolio(rec, req)

	// Assert
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body []model.TransactionResponse
	testutil.DecodeJSONResponse(t, rec, &body)
	if len(body) != 1 {
		t.Fatalf("Expected 1 transaction for the portfolio, got %d", len(body))
	}
	if body[0].PortfolioName != "Alpha" {
		t.Errorf("Expected portfolio name Alpha, got %q", body[0].PortfolioName)
	}
}
