package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/ekaraca/bist-portfolio-backend/internal/api/request"
	"github.com/ekaraca/bist-portfolio-backend/internal/model"
	"github.com/ekaraca/bist-portfolio-backend/internal/repository"
	"github.com/ekaraca/bist-portfolio-backend/internal/validation"
)

// InvestmentService handles cash-contribution business logic operations.
// Every write refreshes the owning investor's cached total; a bulk delete
// touching several contributions of one investor still recomputes that
// investor only once.
type InvestmentService struct {
	propagator     *Propagator
	investmentRepo *repository.InvestmentRepository
	investorRepo   *repository.InvestorRepository
}

// NewInvestmentService creates a new InvestmentService with the provided dependencies.
func NewInvestmentService(
	propagator *Propagator,
	investmentRepo *repository.InvestmentRepository,
	investorRepo *repository.InvestorRepository,
) *InvestmentService {
	return &InvestmentService{
		propagator:     propagator,
		investmentRepo: investmentRepo,
		investorRepo:   investorRepo,
	}
}

// GetInvestmentsByInvestorID retrieves an investor's contributions, newest first.
func (s *InvestmentService) GetInvestmentsByInvestorID(investorID string) ([]model.Investment, error) {
	if _, err := s.investorRepo.GetInvestor(investorID); err != nil {
		return nil, err
	}
	return s.investmentRepo.GetInvestmentsByInvestorID(investorID)
}

// CreateInvestment records a contribution and refreshes the investor's cached total.
func (s *InvestmentService) CreateInvestment(ctx context.Context, req request.CreateInvestmentRequest) (*model.Investment, error) {
	if err := validation.ValidateCreateInvestment(req); err != nil {
		return nil, err
	}

	if _, err := s.investorRepo.GetInvestor(req.InvestorID); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}

	investment := &model.Investment{
		ID:         uuid.New().String(),
		InvestorID: req.InvestorID,
		Amount:     req.Amount,
		Date:       date,
		Type:       req.Type,
		Notes:      req.Notes,
		CreatedAt:  time.Now(),
	}

	err = s.propagator.Run(ctx, func(tx *sql.Tx, c *chain) error {
		if err := s.investmentRepo.WithTx(tx).InsertInvestment(investment); err != nil {
			return err
		}
		return s.propagator.RefreshInvestor(tx, c, investment.InvestorID)
	})
	if err != nil {
		return nil, err
	}

	return investment, nil
}

// UpdateInvestment corrects a contribution and refreshes the investor's cached total.
func (s *InvestmentService) UpdateInvestment(ctx context.Context, investmentID string, req request.UpdateInvestmentRequest) (*model.Investment, error) {
	if err := validation.ValidateUpdateInvestment(req); err != nil {
		return nil, err
	}

	investment, err := s.investmentRepo.GetInvestment(investmentID)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		investment.Amount = *req.Amount
	}
	if req.Date != nil {
		investment.Date, err = time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, err
		}
	}
	if req.Type != nil {
		investment.Type = *req.Type
	}
	if req.Notes != nil {
		investment.Notes = *req.Notes
	}

	err = s.propagator.Run(ctx, func(tx *sql.Tx, c *chain) error {
		if err := s.investmentRepo.WithTx(tx).UpdateInvestment(&investment); err != nil {
			return err
		}
		return s.propagator.RefreshInvestor(tx, c, investment.InvestorID)
	})
	if err != nil {
		return nil, err
	}

	return &investment, nil
}

// DeleteInvestment removes a single contribution and refreshes the investor's
// cached total.
func (s *InvestmentService) DeleteInvestment(ctx context.Context, investmentID string) error {
	investment, err := s.investmentRepo.GetInvestment(investmentID)
	if err != nil {
		return err
	}

	return s.propagator.Run(ctx, func(tx *sql.Tx, c *chain) error {
		if _, err := s.investmentRepo.WithTx(tx).DeleteInvestments([]string{investmentID}); err != nil {
			return err
		}
		return s.propagator.RefreshInvestor(tx, c, investment.InvestorID)
	})
}

// BulkDeleteInvestments removes several contributions in one transaction and
// recomputes each affected investor exactly once. Returns the number of rows
// deleted.
func (s *InvestmentService) BulkDeleteInvestments(ctx context.Context, investmentIDs []string) (int64, error) {
	if err := validation.ValidateUUIDs(investmentIDs); err != nil {
		return 0, err
	}

	var deleted int64

	err := s.propagator.Run(ctx, func(tx *sql.Tx, c *chain) error {
		investmentRepo := s.investmentRepo.WithTx(tx)

		investorIDs, err := investmentRepo.GetInvestorIDsForInvestments(investmentIDs)
		if err != nil {
			return err
		}

		deleted, err = investmentRepo.DeleteInvestments(investmentIDs)
		if err != nil {
			return err
		}

		for _, investorID := range investorIDs {
			if err := s.propagator.RefreshInvestor(tx, c, investorID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}
