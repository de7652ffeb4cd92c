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

// InvestorService handles investor-related business logic operations.
// total_invested is a cached projection fed by the source each investor names
// in invested_source; it is recomputed by the propagation chain, never set by
// callers.
type InvestorService struct {
	propagator    *Propagator
	investorRepo  *repository.InvestorRepository
	fundShareRepo *repository.FundShareRepository
}

// NewInvestorService creates a new InvestorService with the provided dependencies.
func NewInvestorService(
	propagator *Propagator,
	investorRepo *repository.InvestorRepository,
	fundShareRepo *repository.FundShareRepository,
) *InvestorService {
	return &InvestorService{
		propagator:    propagator,
		investorRepo:  investorRepo,
		fundShareRepo: fundShareRepo,
	}
}

// GetInvestors retrieves all investors from the database.
func (s *InvestorService) GetInvestors() ([]model.Investor, error) {
	return s.investorRepo.GetInvestors()
}

// GetInvestor retrieves a single investor by their ID.
func (s *InvestorService) GetInvestor(investorID string) (model.Investor, error) {
	return s.investorRepo.GetInvestor(investorID)
}

// GetInvestorShares retrieves an investor's fund shares with read-time valuations.
func (s *InvestorService) GetInvestorShares(investorID string) ([]model.FundShareValue, error) {
	if _, err := s.investorRepo.GetInvestor(investorID); err != nil {
		return nil, err
	}
	return s.fundShareRepo.GetSharesByInvestorID(investorID)
}

// GetInvestorSummary returns an investor's cached total against the current
// value of their fund shares.
func (s *InvestorService) GetInvestorSummary(investorID string) (model.InvestorSummary, error) {
	investor, err := s.investorRepo.GetInvestor(investorID)
	if err != nil {
		return model.InvestorSummary{}, err
	}

	currentValue, err := s.fundShareRepo.SumShareValuesByInvestorID(investorID)
	if err != nil {
		return model.InvestorSummary{}, err
	}

	summary := model.InvestorSummary{
		ID:                    investor.ID,
		Name:                  investor.Name,
		InvestedSource:        investor.InvestedSource,
		TotalInvested:         investor.TotalInvested,
		CurrentPortfolioValue: currentValue,
	}
	summary.ProfitLoss = summary.CurrentPortfolioValue - summary.TotalInvested
	if summary.TotalInvested != 0 {
		summary.ProfitLossPct = summary.ProfitLoss / summary.TotalInvested * 100
	}

	return summary, nil
}

// CreateInvestor creates a new investor. InvestedSource defaults to
// "investments" when not provided.
func (s *InvestorService) CreateInvestor(req request.CreateInvestorRequest) (*model.Investor, error) {
	if err := validation.ValidateCreateInvestor(req); err != nil {
		return nil, err
	}

	investor := &model.Investor{
		ID:                  uuid.New().String(),
		Name:                req.Name,
		Email:               req.Email,
		Phone:               req.Phone,
		TaxID:               req.TaxID,
		RiskProfile:         req.RiskProfile,
		InvestedSource:      req.InvestedSource,
		MonthlyContribution: req.MonthlyContribution,
		Notes:               req.Notes,
		CreatedAt:           time.Now(),
	}
	if investor.InvestedSource == "" {
		investor.InvestedSource = model.InvestedSourceInvestments
	}
	if req.StartDate != "" {
		startDate, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return nil, err
		}
		investor.StartDate = &startDate
	}

	if err := s.investorRepo.InsertInvestor(investor); err != nil {
		return nil, err
	}

	return investor, nil
}

// UpdateInvestor updates an investor's fields. Switching invested_source
// recomputes the cached total from the newly named source in the same
// database transaction.
func (s *InvestorService) UpdateInvestor(ctx context.Context, investorID string, req request.UpdateInvestorRequest) (*model.Investor, error) {
	if err := validation.ValidateUpdateInvestor(req); err != nil {
		return nil, err
	}

	investor, err := s.investorRepo.GetInvestor(investorID)
	if err != nil {
		return nil, err
	}

	sourceChanged := req.InvestedSource != nil && *req.InvestedSource != investor.InvestedSource

	if req.Name != nil {
		investor.Name = *req.Name
	}
	if req.Email != nil {
		investor.Email = *req.Email
	}
	if req.Phone != nil {
		investor.Phone = *req.Phone
	}
	if req.TaxID != nil {
		investor.TaxID = *req.TaxID
	}
	if req.RiskProfile != nil {
		investor.RiskProfile = *req.RiskProfile
	}
	if req.InvestedSource != nil {
		investor.InvestedSource = *req.InvestedSource
	}
	if req.MonthlyContribution != nil {
		investor.MonthlyContribution = *req.MonthlyContribution
	}
	if req.Notes != nil {
		investor.Notes = *req.Notes
	}
	if req.StartDate != nil {
		if *req.StartDate == "" {
			investor.StartDate = nil
		} else {
			startDate, err := time.Parse("2006-01-02", *req.StartDate)
			if err != nil {
				return nil, err
			}
			investor.StartDate = &startDate
		}
	}

	err = s.propagator.Run(ctx, func(tx *sql.Tx, c *chain) error {
		if err := s.investorRepo.WithTx(tx).UpdateInvestor(&investor); err != nil {
			return err
		}
		if sourceChanged {
			return s.propagator.RefreshInvestor(tx, c, investorID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.investorRepo.GetInvestor(investorID)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteInvestor removes an investor along with their investments and fund
// shares. Portfolios lose the link but stay.
func (s *InvestorService) DeleteInvestor(investorID string) error {
	return s.investorRepo.DeleteInvestor(investorID)
}

// Recompute forces a recompute of an investor's cached total from their
// configured source. Exposed for the admin endpoint.
func (s *InvestorService) Recompute(ctx context.Context, investorID string) (model.Investor, error) {
	if _, err := s.investorRepo.GetInvestor(investorID); err != nil {
		return model.Investor{}, err
	}

	err := s.propagator.Run(ctx, func(tx *sql.Tx, c *chain) error {
		return s.propagator.RefreshInvestor(tx, c, investorID)
	})
	if err != nil {
		return model.Investor{}, err
	}

	return s.investorRepo.GetInvestor(investorID)
}
