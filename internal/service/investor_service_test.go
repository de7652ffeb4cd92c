package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ekaraca/bist-portfolio-backend/internal/api/request"
	"github.com/ekaraca/bist-portfolio-backend/internal/apperrors"
	"github.com/ekaraca/bist-portfolio-backend/internal/model"
	"github.com/ekaraca/bist-portfolio-backend/internal/testutil"
)

// TestInvestorService_CreateInvestor tests investor creation defaults.
func TestInvestorService_CreateInvestor(t *testing.T) {
	t.Run("invested source defaults to investments", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestorService(t, db)

		investor, err := svc.CreateInvestor(request.CreateInvestorRequest{Name: "Ayse"})
		if err != nil {
			t.Fatalf("CreateInvestor() returned unexpected error: %v", err)
		}

		if investor.InvestedSource != model.InvestedSourceInvestments {
			t.Errorf("Expected default source %q, got %q", model.InvestedSourceInvestments, investor.InvestedSource)
		}
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestorService(t, db)

		if _, err := svc.CreateInvestor(request.CreateInvestorRequest{}); err == nil {
			t.Error("Expected validation error for empty name")
		}
	})
}

// TestInvestorService_Recompute tests both total_invested sources.
//
// WHY: The cached total_invested is the one dual-source projection in the
// system; each investor names which ledger feeds it, and recompute must honor
// that choice exactly.
func TestInvestorService_Recompute(t *testing.T) {
	t.Run("investments source sums contributions", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestorService(t, db)

		investor := testutil.NewInvestor().Build(t, db)
		testutil.NewInvestment(investor.ID).WithAmount(1000).Build(t, db)
		testutil.NewInvestment(investor.ID).WithAmount(500).Build(t, db)

		// Execute
		updated, err := svc.Recompute(context.Background(), investor.ID)

		// Assert
		if err != nil {
			t.Fatalf("Recompute() returned unexpected error: %v", err)
		}
		if updated.TotalInvested != 1500 {
			t.Errorf("Expected total invested 1500, got %v", updated.TotalInvested)
		}
	})

	t.Run("transactions source nets portfolio cash flow", func(t *testing.T) {
		// Setup: buy 1000+7 fees in, sell 600-3 fees out
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestorService(t, db)

		investor := testutil.NewInvestor().WithInvestedSource(model.InvestedSourceTransactions).Build(t, db)
		portfolio := testutil.NewPortfolio().WithInvestor(investor.ID).Build(t, db)
		instrument := testutil.NewInstrument().Build(t, db)

		testutil.NewTransaction(portfolio.ID, instrument.Code).
			WithPrice(100).WithQuantity(10).WithFees(5, 2).Build(t, db)
		testutil.NewTransaction(portfolio.ID, instrument.Code).
			WithType(model.TransactionSell).WithPrice(120).WithQuantity(5).WithFees(2, 1).Build(t, db)

		// Execute
		updated, err := svc.Recompute(context.Background(), investor.ID)

		// Assert
		if err != nil {
			t.Fatalf("Recompute() returned unexpected error: %v", err)
		}
		// buy 1000+5+2 minus sell 600-2-1
		if updated.TotalInvested != 410 {
			t.Errorf("Expected total invested 410, got %v", updated.TotalInvested)
		}
	})

	t.Run("contributions are ignored under the transactions source", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestorService(t, db)

		investor := testutil.NewInvestor().WithInvestedSource(model.InvestedSourceTransactions).Build(t, db)
		testutil.NewInvestment(investor.ID).WithAmount(9999).Build(t, db)

		updated, err := svc.Recompute(context.Background(), investor.ID)
		if err != nil {
			t.Fatalf("Recompute() returned unexpected error: %v", err)
		}
		if updated.TotalInvested != 0 {
			t.Errorf("Expected total invested 0, got %v", updated.TotalInvested)
		}
	})

	t.Run("unknown investor returns not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestorService(t, db)

		_, err := svc.Recompute(context.Background(), testutil.MakeID())
		if !errors.Is(err, apperrors.ErrInvestorNotFound) {
			t.Fatalf("Expected ErrInvestorNotFound, got %v", err)
		}
	})
}

// TestInvestorService_UpdateInvestor tests source switching.
func TestInvestorService_UpdateInvestor(t *testing.T) {
	t.Run("switching invested source recomputes the total", func(t *testing.T) {
		// Setup: investor on investments source with contributions and transactions
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestorService(t, db)

		investor := testutil.NewInvestor().WithTotalInvested(1500).Build(t, db)
		testutil.NewInvestment(investor.ID).WithAmount(1500).Build(t, db)

		portfolio := testutil.NewPortfolio().WithInvestor(investor.ID).Build(t, db)
		instrument := testutil.NewInstrument().Build(t, db)
		testutil.NewTransaction(portfolio.ID, instrument.Code).
			WithPrice(100).WithQuantity(10).Build(t, db)

		// Execute
		source := model.InvestedSourceTransactions
		updated, err := svc.UpdateInvestor(context.Background(), investor.ID, request.UpdateInvestorRequest{
			InvestedSource: &source,
		})

		// Assert
		if err != nil {
			t.Fatalf("UpdateInvestor() returned unexpected error: %v", err)
		}
		if updated.InvestedSource != model.InvestedSourceTransactions {
			t.Errorf("Expected source switched, got %q", updated.InvestedSource)
		}
		if updated.TotalInvested != 1000 {
			t.Errorf("Expected total recomputed to 1000, got %v", updated.TotalInvested)
		}
	})

	t.Run("metadata update keeps the cached total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestorService(t, db)

		investor := testutil.NewInvestor().WithTotalInvested(1234).Build(t, db)

		name := "Renamed"
		updated, err := svc.UpdateInvestor(context.Background(), investor.ID, request.UpdateInvestorRequest{
			Name: &name,
		})
		if err != nil {
			t.Fatalf("UpdateInvestor() returned unexpected error: %v", err)
		}
		if updated.TotalInvested != 1234 {
			t.Errorf("Expected cached total untouched at 1234, got %v", updated.TotalInvested)
		}
	})

	t.Run("invalid invested source is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestorService(t, db)

		investor := testutil.NewInvestor().Build(t, db)

		source := "bogus"
		_, err := svc.UpdateInvestor(context.Background(), investor.ID, request.UpdateInvestorRequest{
			InvestedSource: &source,
		})
		if err == nil {
			t.Error("Expected validation error for bogus invested source")
		}
	})
}

// TestInvestorService_GetInvestorSummary tests the read-time valuation rollup.
func TestInvestorService_GetInvestorSummary(t *testing.T) {
	t.Run("summary values shares at the current share price", func(t *testing.T) {
		// Setup: fund share price 2, investor holds 500 shares from 1000 invested
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestorService(t, db)

		investor := testutil.NewInvestor().WithTotalInvested(1000).Build(t, db)
		fund := testutil.NewFund().WithValues(1000, 2000, 1000).Build(t, db)
		testutil.NewFundShare(fund.ID, investor.ID).WithShares(500, 1000).Build(t, db)

		// Execute
		summary, err := svc.GetInvestorSummary(investor.ID)

		// Assert
		if err != nil {
			t.Fatalf("GetInvestorSummary() returned unexpected error: %v", err)
		}
		if summary.CurrentPortfolioValue != 1000 {
			t.Errorf("Expected current value 1000, got %v", summary.CurrentPortfolioValue)
		}
		if summary.ProfitLoss != 0 {
			t.Errorf("Expected zero profit/loss, got %v", summary.ProfitLoss)
		}
	})

	t.Run("zero invested yields zero percentage", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestorService(t, db)

		investor := testutil.NewInvestor().Build(t, db)

		summary, err := svc.GetInvestorSummary(investor.ID)
		if err != nil {
			t.Fatalf("GetInvestorSummary() returned unexpected error: %v", err)
		}
		if summary.ProfitLossPct != 0 {
			t.Errorf("Expected zero profit/loss pct, got %v", summary.ProfitLossPct)
		}
	})
}
