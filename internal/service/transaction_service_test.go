package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ekaraca/bist-portfolio-backend/internal/api/request"
	"github.com/ekaraca/bist-portfolio-backend/internal/apperrors"
	"github.com/ekaraca/bist-portfolio-backend/internal/model"
	"github.com/ekaraca/bist-portfolio-backend/internal/repository"
	"github.com/ekaraca/bist-portfolio-backend/internal/testutil"
)

// TestTransactionService_CreateTransaction tests transaction creation and the
// position recompute it triggers.
//
// WHY: Every transaction write must leave the derived position row consistent
// with the full history, in the same database transaction as the write itself.
func TestTransactionService_CreateTransaction(t *testing.T) {
	t.Run("buy creates transaction and derived position", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		instrument := testutil.NewInstrument().Build(t, db)
		portfolio := testutil.NewPortfolio().Build(t, db)

		// Execute
		created, err := svc.CreateTransaction(context.Background(), request.CreateTransactionRequest{
			PortfolioID:    portfolio.ID,
			InstrumentCode: instrument.Code,
			Type:           model.TransactionBuy,
			Date:           "2025-03-01",
			Price:          100,
			Quantity:       10,
			Commission:     5,
			Tax:            2,
		})

		// Assert
		if err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}
		if created.ID == "" {
			t.Error("Expected created transaction to have an ID")
		}

		testutil.AssertRowCount(t, db, `"transaction"`, 1)
		testutil.AssertRowCount(t, db, "position", 1)

		positionRepo := repository.NewPositionRepository(db)
		pos, err := positionRepo.GetPosition(portfolio.ID, instrument.Code)
		if err != nil {
			t.Fatalf("GetPosition() returned unexpected error: %v", err)
		}
		if pos.Quantity != 10 {
			t.Errorf("Expected position quantity 10, got %v", pos.Quantity)
		}
		if pos.AverageCost != 100 {
			t.Errorf("Expected average cost 100, got %v", pos.AverageCost)
		}
		if !pos.IsOpen {
			t.Error("Expected position to be open")
		}
	})

	t.Run("sell beyond holdings is rejected and rolled back", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		instrument := testutil.NewInstrument().Build(t, db)
		portfolio := testutil.NewPortfolio().Build(t, db)
		testutil.NewTransaction(portfolio.ID, instrument.Code).WithQuantity(5).Build(t, db)

		// Execute
		_, err := svc.CreateTransaction(context.Background(), request.CreateTransactionRequest{
			PortfolioID:    portfolio.ID,
			InstrumentCode: instrument.Code,
			Type:           model.TransactionSell,
			Date:           "2025-03-02",
			Price:          120,
			Quantity:       50,
		})

		// Assert
		if !errors.Is(err, apperrors.ErrInsufficientHoldings) {
			t.Fatalf("Expected ErrInsufficientHoldings, got %v", err)
		}

		// Only the seeded buy remains; nothing from the rejected sell persisted
		testutil.AssertRowCount(t, db, `"transaction"`, 1)
	})

	t.Run("unknown portfolio is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		instrument := testutil.NewInstrument().Build(t, db)

		_, err := svc.CreateTransaction(context.Background(), request.CreateTransactionRequest{
			PortfolioID:    testutil.MakeID(),
			InstrumentCode: instrument.Code,
			Type:           model.TransactionBuy,
			Date:           "2025-03-01",
			Price:          100,
			Quantity:       10,
		})

		if !errors.Is(err, apperrors.ErrPortfolioNotFound) {
			t.Fatalf("Expected ErrPortfolioNotFound, got %v", err)
		}
	})

	t.Run("linked fund value is refreshed in the same run", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		instrument := testutil.NewInstrument().Build(t, db)
		testutil.NewSnapshot(instrument.Code).WithPrice(150).Build(t, db)
		fund := testutil.NewFund().Build(t, db)
		portfolio := testutil.NewPortfolio().WithFund(fund.ID).Build(t, db)

		// Execute
		_, err := svc.CreateTransaction(context.Background(), request.CreateTransactionRequest{
			PortfolioID:    portfolio.ID,
			InstrumentCode: instrument.Code,
			Type:           model.TransactionBuy,
			Date:           "2025-03-01",
			Price:          100,
			Quantity:       10,
		})

		// Assert
		if err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}

		updated, err := repository.NewFundRepository(db).GetFund(fund.ID)
		if err != nil {
			t.Fatalf("GetFund() returned unexpected error: %v", err)
		}
		// 10 units at the latest snapshot price of 150
		if updated.CurrentValue != 1500 {
			t.Errorf("Expected fund current value 1500, got %v", updated.CurrentValue)
		}
	})

	t.Run("linked investor total follows transaction cash flow", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		instrument := testutil.NewInstrument().Build(t, db)
		investor := testutil.NewInvestor().WithInvestedSource(model.InvestedSourceTransactions).Build(t, db)
		portfolio := testutil.NewPortfolio().WithInvestor(investor.ID).Build(t, db)

		// Execute
		_, err := svc.CreateTransaction(context.Background(), request.CreateTransactionRequest{
			PortfolioID:    portfolio.ID,
			InstrumentCode: instrument.Code,
			Type:           model.TransactionBuy,
			Date:           "2025-03-01",
			Price:          100,
			Quantity:       10,
			Commission:     5,
			Tax:            2,
		})

		// Assert
		if err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}

		updated, err := repository.NewInvestorRepository(db).GetInvestor(investor.ID)
		if err != nil {
			t.Fatalf("GetInvestor() returned unexpected error: %v", err)
		}
		// price*qty + commission + tax
		if updated.TotalInvested != 1007 {
			t.Errorf("Expected total invested 1007, got %v", updated.TotalInvested)
		}
	})
}

// TestTransactionService_UpdateTransaction tests corrections and their replay.
func TestTransactionService_UpdateTransaction(t *testing.T) {
	t.Run("price correction re-derives the position", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		instrument := testutil.NewInstrument().Build(t, db)
		portfolio := testutil.NewPortfolio().Build(t, db)
		seeded := testutil.NewTransaction(portfolio.ID, instrument.Code).
			WithPrice(100).WithQuantity(10).Build(t, db)

		// Execute
		newPrice := 250.0
		updated, err := svc.UpdateTransaction(context.Background(), seeded.ID, request.UpdateTransactionRequest{
			Price: &newPrice,
		})

		// Assert
		if err != nil {
			t.Fatalf("UpdateTransaction() returned unexpected error: %v", err)
		}
		if updated.Price != 250 {
			t.Errorf("Expected updated price 250, got %v", updated.Price)
		}

		pos, err := repository.NewPositionRepository(db).GetPosition(portfolio.ID, instrument.Code)
		if err != nil {
			t.Fatalf("GetPosition() returned unexpected error: %v", err)
		}
		if pos.AverageCost != 250 {
			t.Errorf("Expected average cost 250 after correction, got %v", pos.AverageCost)
		}
	})

	t.Run("unknown transaction returns not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		price := 10.0
		_, err := svc.UpdateTransaction(context.Background(), testutil.MakeID(), request.UpdateTransactionRequest{
			Price: &price,
		})

		if !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Fatalf("Expected ErrTransactionNotFound, got %v", err)
		}
	})
}

// TestTransactionService_DeleteTransaction tests deletion and cleanup.
//
// WHY: Deleting the last transaction for a pair must remove the derived
// position row entirely, not leave a zero-quantity husk.
func TestTransactionService_DeleteTransaction(t *testing.T) {
	t.Run("deleting last transaction removes the position", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		instrument := testutil.NewInstrument().Build(t, db)
		portfolio := testutil.NewPortfolio().Build(t, db)
		seeded := testutil.NewTransaction(portfolio.ID, instrument.Code).Build(t, db)

		if _, err := svc.CreateTransaction(context.Background(), request.CreateTransactionRequest{
			PortfolioID:    portfolio.ID,
			InstrumentCode: instrument.Code,
			Type:           model.TransactionBuy,
			Date:           "2025-03-02",
			Price:          100,
			Quantity:       5,
		}); err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}

		// Execute: delete both, one at a time
		if err := svc.DeleteTransaction(context.Background(), seeded.ID); err != nil {
			t.Fatalf("DeleteTransaction() returned unexpected error: %v", err)
		}
		testutil.AssertRowCount(t, db, "position", 1)

		remaining, err := repository.NewTransactionRepository(db).GetTransactionsPerPortfolio(portfolio.ID)
		if err != nil {
			t.Fatalf("GetTransactionsPerPortfolio() returned unexpected error: %v", err)
		}
		if len(remaining) != 1 {
			t.Fatalf("Expected 1 remaining transaction, got %d", len(remaining))
		}

		if err := svc.DeleteTransaction(context.Background(), remaining[0].ID); err != nil {
			t.Fatalf("DeleteTransaction() returned unexpected error: %v", err)
		}

		// Assert
		testutil.AssertRowCount(t, db, `"transaction"`, 0)
		testutil.AssertRowCount(t, db, "position", 0)
	})

	t.Run("unknown transaction returns not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		err := svc.DeleteTransaction(context.Background(), testutil.MakeID())
		if !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Fatalf("Expected ErrTransactionNotFound, got %v", err)
		}
	})
}
