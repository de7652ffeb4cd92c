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

// PortfolioService handles portfolio-related business logic operations.
// Portfolio aggregates (value, cost, P&L) are computed at read time and never
// persisted; only the fund and investor caches depend on portfolio writes.
type PortfolioService struct {
	propagator    *Propagator
	portfolioRepo *repository.PortfolioRepository
	positionRepo  *repository.PositionRepository
}

// NewPortfolioService creates a new PortfolioService with the provided dependencies.
func NewPortfolioService(
	propagator *Propagator,
	portfolioRepo *repository.PortfolioRepository,
	positionRepo *repository.PositionRepository,
) *PortfolioService {
	return &PortfolioService{
		propagator:    propagator,
		portfolioRepo: portfolioRepo,
		positionRepo:  positionRepo,
	}
}

// GetPortfolios retrieves all portfolios, optionally including inactive ones.
func (s *PortfolioService) GetPortfolios(filter model.PortfolioFilter) ([]model.Portfolio, error) {
	return s.portfolioRepo.GetPortfolios(filter)
}

// GetPortfolio retrieves a single portfolio by its ID.
func (s *PortfolioService) GetPortfolio(portfolioID string) (model.Portfolio, error) {
	return s.portfolioRepo.GetPortfolioOnID(portfolioID)
}

// GetPortfolioPositions retrieves a portfolio's positions valued at the latest
// snapshot price per instrument.
func (s *PortfolioService) GetPortfolioPositions(portfolioID string) ([]model.PositionValuation, error) {
	if _, err := s.portfolioRepo.GetPortfolioOnID(portfolioID); err != nil {
		return nil, err
	}
	return s.positionRepo.GetPositionValuations(portfolioID)
}

// GetPortfolioSummary computes a portfolio's read-time aggregates: market
// value and cost basis summed over open positions, and the resulting P&L.
func (s *PortfolioService) GetPortfolioSummary(portfolioID string) (model.PortfolioSummary, error) {
	portfolio, err := s.portfolioRepo.GetPortfolioOnID(portfolioID)
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	valuations, err := s.positionRepo.GetPositionValuations(portfolioID)
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	summary := model.PortfolioSummary{
		ID:          portfolio.ID,
		Name:        portfolio.Name,
		Description: portfolio.Description,
		Currency:    portfolio.Currency,
		IsActive:    portfolio.IsActive,
	}

	for _, v := range valuations {
		summary.TotalValue += v.CurrentValue
		summary.TotalCost += v.TotalCost
	}
	summary.ProfitLoss = summary.TotalValue - summary.TotalCost
	if summary.TotalCost != 0 {
		summary.ProfitLossPct = summary.ProfitLoss / summary.TotalCost * 100
	}

	return summary, nil
}

// CreatePortfolio creates a new portfolio. Linking it to a fund triggers a
// recompute of that fund's value.
func (s *PortfolioService) CreatePortfolio(ctx context.Context, req request.CreatePortfolioRequest) (*model.Portfolio, error) {
	if err := validation.ValidateCreatePortfolio(req); err != nil {
		return nil, err
	}

	portfolio := &model.Portfolio{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		InvestorID:  normalizeLink(req.InvestorID),
		FundID:      normalizeLink(req.FundID),
		Currency:    req.Currency,
		RiskLevel:   req.RiskLevel,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
	if portfolio.Currency == "" {
		portfolio.Currency = "TRY"
	}

	err := s.propagator.Run(ctx, func(tx *sql.Tx, c *chain) error {
		if err := s.portfolioRepo.WithTx(tx).InsertPortfolio(portfolio); err != nil {
			return err
		}
		if portfolio.FundID != nil {
			return s.propagator.RefreshFund(tx, c, *portfolio.FundID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return portfolio, nil
}

// UpdatePortfolio updates a portfolio's fields. Changing the fund link
// recomputes both the previously linked fund and the new one; changing the
// investor link recomputes both investors' cached totals.
func (s *PortfolioService) UpdatePortfolio(ctx context.Context, portfolioID string, req request.UpdatePortfolioRequest) (*model.Portfolio, error) {
	if err := validation.ValidateUpdatePortfolio(req); err != nil {
		return nil, err
	}

	portfolio, err := s.portfolioRepo.GetPortfolioOnID(portfolioID)
	if err != nil {
		return nil, err
	}

	oldFundID := portfolio.FundID
	oldInvestorID := portfolio.InvestorID

	if req.Name != nil {
		portfolio.Name = *req.Name
	}
	if req.Description != nil {
		portfolio.Description = *req.Description
	}
	if req.InvestorID != nil {
		portfolio.InvestorID = normalizeLink(req.InvestorID)
	}
	if req.FundID != nil {
		portfolio.FundID = normalizeLink(req.FundID)
	}
	if req.Currency != nil {
		portfolio.Currency = *req.Currency
	}
	if req.RiskLevel != nil {
		portfolio.RiskLevel = *req.RiskLevel
	}
	if req.IsActive != nil {
		portfolio.IsActive = *req.IsActive
	}

	err = s.propagator.Run(ctx, func(tx *sql.Tx, c *chain) error {
		if err := s.portfolioRepo.WithTx(tx).UpdatePortfolio(&portfolio); err != nil {
			return err
		}
		for _, fundID := range []*string{oldFundID, portfolio.FundID} {
			if fundID != nil {
				if err := s.propagator.RefreshFund(tx, c, *fundID); err != nil {
					return err
				}
			}
		}
		for _, investorID := range []*string{oldInvestorID, portfolio.InvestorID} {
			if investorID != nil {
				if err := s.propagator.RefreshInvestor(tx, c, *investorID); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &portfolio, nil
}

// DeletePortfolio removes a portfolio, its positions and transactions, then
// recomputes the fund and investor it was linked to.
func (s *PortfolioService) DeletePortfolio(ctx context.Context, portfolioID string) error {
	portfolio, err := s.portfolioRepo.GetPortfolioOnID(portfolioID)
	if err != nil {
		return err
	}

	return s.propagator.Run(ctx, func(tx *sql.Tx, c *chain) error {
		if err := s.portfolioRepo.WithTx(tx).DeletePortfolio(portfolioID); err != nil {
			return err
		}
		if portfolio.FundID != nil {
			if err := s.propagator.RefreshFund(tx, c, *portfolio.FundID); err != nil {
				return err
			}
		}
		if portfolio.InvestorID != nil {
			if err := s.propagator.RefreshInvestor(tx, c, *portfolio.InvestorID); err != nil {
				return err
			}
		}
		return nil
	})
}

// normalizeLink treats an empty string as "no link" so PATCH bodies can clear
// a fund or investor association.
func normalizeLink(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}
