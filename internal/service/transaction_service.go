package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/ekaraca/bist-portfolio-backend/internal/api/request"
	"github.com/ekaraca/bist-portfolio-backend/internal/apperrors"
	"github.com/ekaraca/bist-portfolio-backend/internal/ledger"
	"github.com/ekaraca/bist-portfolio-backend/internal/model"
	"github.com/ekaraca/bist-portfolio-backend/internal/repository"
	"github.com/ekaraca/bist-portfolio-backend/internal/validation"
)

// TransactionService handles transaction-related business logic operations.
// Every write goes through the propagator so the derived position, the
// portfolio's fund and the owning investor stay consistent with the history.
type TransactionService struct {
	propagator      *Propagator
	transactionRepo *repository.TransactionRepository
	portfolioRepo   *repository.PortfolioRepository
	instrumentRepo  *repository.InstrumentRepository
}

// NewTransactionService creates a new TransactionService with the provided dependencies.
func NewTransactionService(
	propagator *Propagator,
	transactionRepo *repository.TransactionRepository,
	portfolioRepo *repository.PortfolioRepository,
	instrumentRepo *repository.InstrumentRepository,
) *TransactionService {
	return &TransactionService{
		propagator:      propagator,
		transactionRepo: transactionRepo,
		portfolioRepo:   portfolioRepo,
		instrumentRepo:  instrumentRepo,
	}
}

// GetTransactionsPerPortfolio retrieves all transactions for a specific
// portfolio, or all transactions if portfolioID is empty.
func (s *TransactionService) GetTransactionsPerPortfolio(portfolioID string) ([]model.TransactionResponse, error) {
	return s.transactionRepo.GetTransactionsPerPortfolio(portfolioID)
}

// GetTransaction retrieves a single transaction by its ID.
func (s *TransactionService) GetTransaction(transactionID string) (model.Transaction, error) {
	return s.transactionRepo.GetTransaction(transactionID)
}

// CreateTransaction records a transaction and propagates the position, fund and
// investor recomputes in the same database transaction. A sell exceeding the
// currently held quantity is rejected with ErrInsufficientHoldings before
// anything is written.
func (s *TransactionService) CreateTransaction(ctx context.Context, req request.CreateTransactionRequest) (*model.Transaction, error) {
	if err := validation.ValidateCreateTransaction(req); err != nil {
		return nil, err
	}

	if _, err := s.portfolioRepo.GetPortfolioOnID(req.PortfolioID); err != nil {
		return nil, err
	}
	if _, err := s.instrumentRepo.GetInstrument(req.InstrumentCode); err != nil {
		return nil, err
	}

	transactionDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}

	transaction := &model.Transaction{
		ID:             uuid.New().String(),
		PortfolioID:    req.PortfolioID,
		InvestorID:     req.InvestorID,
		InstrumentCode: req.InstrumentCode,
		Type:           req.Type,
		Date:           transactionDate,
		Price:          req.Price,
		Quantity:       req.Quantity,
		Commission:     req.Commission,
		Tax:            req.Tax,
		Notes:          req.Notes,
		CreatedAt:      time.Now(),
	}

	err = s.propagator.Run(ctx, func(tx *sql.Tx, c *chain) error {
		txRepo := s.transactionRepo.WithTx(tx)

		if transaction.Type == model.TransactionSell {
			history, err := txRepo.GetHistory(transaction.PortfolioID, transaction.InstrumentCode)
			if err != nil {
				return err
			}
			if ledger.Replay(history).Quantity < transaction.Quantity {
				return apperrors.ErrInsufficientHoldings
			}
		}

		if err := txRepo.InsertTransaction(transaction); err != nil {
			return err
		}

		return s.propagator.RefreshPosition(tx, c, transaction.PortfolioID, transaction.InstrumentCode)
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

// UpdateTransaction corrects a transaction's fields and replays the pair's
// history. The portfolio and instrument of a transaction are immutable.
func (s *TransactionService) UpdateTransaction(ctx context.Context, transactionID string, req request.UpdateTransactionRequest) (*model.Transaction, error) {
	if err := validation.ValidateUpdateTransaction(req); err != nil {
		return nil, err
	}

	transaction, err := s.transactionRepo.GetTransaction(transactionID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		transaction.Type = *req.Type
	}
	if req.Date != nil {
		transaction.Date, err = time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, err
		}
	}
	if req.Price != nil {
		transaction.Price = *req.Price
	}
	if req.Quantity != nil {
		transaction.Quantity = *req.Quantity
	}
	if req.Commission != nil {
		transaction.Commission = *req.Commission
	}
	if req.Tax != nil {
		transaction.Tax = *req.Tax
	}
	if req.Notes != nil {
		transaction.Notes = *req.Notes
	}

	err = s.propagator.Run(ctx, func(tx *sql.Tx, c *chain) error {
		if err := s.transactionRepo.WithTx(tx).UpdateTransaction(&transaction); err != nil {
			return err
		}
		return s.propagator.RefreshPosition(tx, c, transaction.PortfolioID, transaction.InstrumentCode)
	})
	if err != nil {
		return nil, err
	}

	return &transaction, nil
}

// DeleteTransaction removes a transaction and replays the pair's remaining
// history. Deleting the last transaction of a pair removes the position row.
func (s *TransactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	transaction, err := s.transactionRepo.GetTransaction(transactionID)
	if err != nil {
		return err
	}

	return s.propagator.Run(ctx, func(tx *sql.Tx, c *chain) error {
		if err := s.transactionRepo.WithTx(tx).DeleteTransaction(transactionID); err != nil {
			return err
		}
		return s.propagator.RefreshPosition(tx, c, transaction.PortfolioID, transaction.InstrumentCode)
	})
}
