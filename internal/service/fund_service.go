package service

import (
	"context"
	"database/sql"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ekaraca/bist-portfolio-backend/internal/api/request"
	"github.com/ekaraca/bist-portfolio-backend/internal/apperrors"
	"github.com/ekaraca/bist-portfolio-backend/internal/model"
	"github.com/ekaraca/bist-portfolio-backend/internal/repository"
	"github.com/ekaraca/bist-portfolio-backend/internal/validation"
)

// FundService handles fund-related business logic operations, including the
// share ledger: shares_count is always derived from the investment amount and
// the prevailing share price, and every share write adjusts the fund's value
// columns in the same database transaction.
type FundService struct {
	propagator    *Propagator
	fundRepo      *repository.FundRepository
	fundShareRepo *repository.FundShareRepository
	investorRepo  *repository.InvestorRepository
}

// NewFundService creates a new FundService with the provided dependencies.
func NewFundService(
	propagator *Propagator,
	fundRepo *repository.FundRepository,
	fundShareRepo *repository.FundShareRepository,
	investorRepo *repository.InvestorRepository,
) *FundService {
	return &FundService{
		propagator:    propagator,
		fundRepo:      fundRepo,
		fundShareRepo: fundShareRepo,
		investorRepo:  investorRepo,
	}
}

// GetAllFunds retrieves all funds from the database.
func (s *FundService) GetAllFunds() ([]model.Fund, error) {
	return s.fundRepo.GetAllFunds()
}

// GetFund retrieves a single fund by its ID.
func (s *FundService) GetFund(fundID string) (model.Fund, error) {
	return s.fundRepo.GetFund(fundID)
}

// GetFundShares retrieves a fund's shares with read-time valuations.
func (s *FundService) GetFundShares(fundID string) ([]model.FundShareValue, error) {
	if _, err := s.fundRepo.GetFund(fundID); err != nil {
		return nil, err
	}
	return s.fundShareRepo.GetSharesByFundID(fundID)
}

// CreateFund creates a new fund. InitialValue seeds both value columns;
// shares start at zero until the first issuance.
func (s *FundService) CreateFund(req request.CreateFundRequest) (*model.Fund, error) {
	if err := validation.ValidateCreateFund(req); err != nil {
		return nil, err
	}

	fund := &model.Fund{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Description:   req.Description,
		Currency:      req.Currency,
		ManagementFee: req.ManagementFee,
		RiskLevel:     req.RiskLevel,
		TargetReturn:  req.TargetReturn,
		InitialValue:  req.InitialValue,
		CurrentValue:  req.InitialValue,
		IsActive:      true,
		CreatedAt:     time.Now(),
	}
	if fund.Currency == "" {
		fund.Currency = "TRY"
	}

	if err := s.fundRepo.InsertFund(fund); err != nil {
		return nil, err
	}

	return fund, nil
}

// UpdateFund updates fund metadata. The value columns are not writable here.
func (s *FundService) UpdateFund(fundID string, req request.UpdateFundRequest) (*model.Fund, error) {
	if err := validation.ValidateUpdateFund(req); err != nil {
		return nil, err
	}

	fund, err := s.fundRepo.GetFund(fundID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		fund.Name = *req.Name
	}
	if req.Description != nil {
		fund.Description = *req.Description
	}
	if req.Currency != nil {
		fund.Currency = *req.Currency
	}
	if req.ManagementFee != nil {
		fund.ManagementFee = *req.ManagementFee
	}
	if req.TargetReturn != nil {
		fund.TargetReturn = req.TargetReturn
	}
	if req.RiskLevel != nil {
		fund.RiskLevel = *req.RiskLevel
	}
	if req.IsActive != nil {
		fund.IsActive = *req.IsActive
	}

	if err := s.fundRepo.UpdateFundMetadata(&fund); err != nil {
		return nil, err
	}

	return &fund, nil
}

// DeleteFund removes a fund and its shares. Linked portfolios are unlinked,
// not deleted.
func (s *FundService) DeleteFund(fundID string) error {
	return s.fundRepo.DeleteFund(fundID)
}

// UpdateValueFromPortfolios recomputes a fund's current value from its linked
// portfolios. Exposed for the admin recompute endpoint; the same walk runs
// automatically after every transaction and portfolio-link write.
func (s *FundService) UpdateValueFromPortfolios(ctx context.Context, fundID string) (model.Fund, error) {
	if _, err := s.fundRepo.GetFund(fundID); err != nil {
		return model.Fund{}, err
	}

	err := s.propagator.Run(ctx, func(tx *sql.Tx, c *chain) error {
		return s.propagator.RefreshFund(tx, c, fundID)
	})
	if err != nil {
		return model.Fund{}, err
	}

	return s.fundRepo.GetFund(fundID)
}

// CreateShare issues fund shares to an investor. The share count is the
// investment amount divided by the share price; the first issuance into an
// empty fund seeds the price at 1. The investment is added to the fund's
// initial value, current value and share total in the same transaction.
func (s *FundService) CreateShare(ctx context.Context, req request.CreateFundShareRequest) (*model.FundShare, error) {
	if err := validation.ValidateCreateFundShare(req); err != nil {
		return nil, err
	}

	if _, err := s.investorRepo.GetInvestor(req.InvestorID); err != nil {
		return nil, err
	}

	entryDate := time.Now()
	if req.EntryDate != "" {
		var err error
		entryDate, err = time.Parse("2006-01-02", req.EntryDate)
		if err != nil {
			return nil, err
		}
	}

	share := &model.FundShare{
		ID:                uuid.New().String(),
		FundID:            req.FundID,
		InvestorID:        req.InvestorID,
		InitialInvestment: req.InitialInvestment,
		EntryDate:         entryDate,
		Notes:             req.Notes,
	}

	err := s.propagator.Run(ctx, func(tx *sql.Tx, c *chain) error {
		fundRepo := s.fundRepo.WithTx(tx)

		fund, err := fundRepo.GetFund(req.FundID)
		if err != nil {
			return err
		}

		// Seed price 1 for an empty fund, and for the degenerate case of
		// outstanding shares on a worthless fund, where dividing by the
		// share price would produce an infinite share count.
		shareValue := fund.ShareValue()
		if shareValue == 0 {
			shareValue = 1
		}
		share.SharesCount = req.InitialInvestment / shareValue

		if err := s.fundShareRepo.WithTx(tx).InsertFundShare(share); err != nil {
			if strings.Contains(err.Error(), "UNIQUE constraint failed") {
				return apperrors.ErrDuplicateEntry
			}
			return err
		}

		return fundRepo.UpdateValues(
			fund.ID,
			fund.InitialValue+req.InitialInvestment,
			fund.CurrentValue+req.InitialInvestment,
			fund.TotalShares+share.SharesCount,
		)
	})
	if err != nil {
		return nil, err
	}

	return share, nil
}

// UpdateShare adjusts a share's recorded investment. The share count is
// recomputed at the current share price, which approximates a partial buy or
// sell at today's valuation rather than replaying the entry price.
func (s *FundService) UpdateShare(ctx context.Context, shareID string, req request.UpdateFundShareRequest) (*model.FundShare, error) {
	if err := validation.ValidateUpdateFundShare(req); err != nil {
		return nil, err
	}

	var updated model.FundShare

	err := s.propagator.Run(ctx, func(tx *sql.Tx, c *chain) error {
		shareRepo := s.fundShareRepo.WithTx(tx)

		share, err := shareRepo.GetFundShare(shareID)
		if err != nil {
			return err
		}

		if req.Notes != nil {
			share.Notes = *req.Notes
		}

		if req.InitialInvestment != nil && *req.InitialInvestment != share.InitialInvestment {
			fundRepo := s.fundRepo.WithTx(tx)
			fund, err := fundRepo.GetFund(share.FundID)
			if err != nil {
				return err
			}

			shareValue := fund.ShareValue()
			if shareValue == 0 {
				shareValue = 1
			}

			delta := *req.InitialInvestment - share.InitialInvestment
			oldShares := share.SharesCount

			share.InitialInvestment = *req.InitialInvestment
			share.SharesCount = share.InitialInvestment / shareValue

			err = fundRepo.UpdateValues(
				fund.ID,
				clampAtZero(fund.InitialValue+delta),
				clampAtZero(fund.CurrentValue+delta),
				clampAtZero(fund.TotalShares+share.SharesCount-oldShares),
			)
			if err != nil {
				return err
			}
		}

		if err := shareRepo.UpdateFundShare(&share); err != nil {
			return err
		}

		updated = share
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteShare redeems an investor's shares: the fund's initial value drops by
// the original investment, the current value by the shares' present worth and
// the share total by the share count, each clamped at zero.
func (s *FundService) DeleteShare(ctx context.Context, shareID string) error {
	return s.propagator.Run(ctx, func(tx *sql.Tx, c *chain) error {
		shareRepo := s.fundShareRepo.WithTx(tx)

		share, err := shareRepo.GetFundShare(shareID)
		if err != nil {
			return err
		}

		fundRepo := s.fundRepo.WithTx(tx)
		fund, err := fundRepo.GetFund(share.FundID)
		if err != nil {
			return err
		}

		redeemed := share.SharesCount * fund.ShareValue()
		log.Printf("fund %s redeeming %.4f shares worth %.2f", fund.Name, share.SharesCount, redeemed)

		if err := shareRepo.DeleteFundShare(shareID); err != nil {
			return err
		}

		return fundRepo.UpdateValues(
			fund.ID,
			clampAtZero(fund.InitialValue-share.InitialInvestment),
			clampAtZero(fund.CurrentValue-redeemed),
			clampAtZero(fund.TotalShares-share.SharesCount),
		)
	})
}

func clampAtZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
