package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/ekaraca/bist-portfolio-backend/internal/apperrors"
	"github.com/ekaraca/bist-portfolio-backend/internal/ledger"
	"github.com/ekaraca/bist-portfolio-backend/internal/model"
	"github.com/ekaraca/bist-portfolio-backend/internal/repository"
)

type positionKey struct {
	portfolioID    string
	instrumentCode string
}

// chain records which aggregates the current propagation run has already
// recomputed, so a single logical write refreshes each position, fund and
// investor at most once no matter how many edges lead to it.
type chain struct {
	positions map[positionKey]bool
	funds     map[string]bool
	investors map[string]bool
}

func newChain() *chain {
	return &chain{
		positions: make(map[positionKey]bool),
		funds:     make(map[string]bool),
		investors: make(map[string]bool),
	}
}

func (c *chain) markPosition(portfolioID, instrumentCode string) bool {
	k := positionKey{portfolioID, instrumentCode}
	if c.positions[k] {
		return false
	}
	c.positions[k] = true
	return true
}

func (c *chain) markFund(fundID string) bool {
	if c.funds[fundID] {
		return false
	}
	c.funds[fundID] = true
	return true
}

func (c *chain) markInvestor(investorID string) bool {
	if c.investors[investorID] {
		return false
	}
	c.investors[investorID] = true
	return true
}

// Propagator walks the dependency edges between authoritative writes and the
// cached aggregates derived from them: transactions feed positions, positions
// feed linked funds, and transactions or investments feed an investor's cached
// total. Every walk runs inside one database transaction so the triggering
// write and all downstream recomputes commit or roll back together.
type Propagator struct {
	db              *sql.DB
	transactionRepo *repository.TransactionRepository
	positionRepo    *repository.PositionRepository
	portfolioRepo   *repository.PortfolioRepository
	fundRepo        *repository.FundRepository
	investorRepo    *repository.InvestorRepository
	investmentRepo  *repository.InvestmentRepository
}

// NewPropagator creates a new Propagator with the provided repository dependencies.
func NewPropagator(
	db *sql.DB,
	transactionRepo *repository.TransactionRepository,
	positionRepo *repository.PositionRepository,
	portfolioRepo *repository.PortfolioRepository,
	fundRepo *repository.FundRepository,
	investorRepo *repository.InvestorRepository,
	investmentRepo *repository.InvestmentRepository,
) *Propagator {
	return &Propagator{
		db:              db,
		transactionRepo: transactionRepo,
		positionRepo:    positionRepo,
		portfolioRepo:   portfolioRepo,
		fundRepo:        fundRepo,
		investorRepo:    investorRepo,
		investmentRepo:  investmentRepo,
	}
}

// Run executes fn and every recompute it triggers inside a single transaction.
// fn performs the authoritative write through WithTx repositories and calls the
// Refresh methods for the aggregates it touched; any error rolls everything back.
func (p *Propagator) Run(ctx context.Context, fn func(tx *sql.Tx, c *chain) error) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx, newChain()); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Printf("rollback failed after propagation error: %v", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", apperrors.ErrPropagationFailed, err)
	}

	return nil
}

// RefreshPosition replays the full transaction history for one
// (portfolio, instrument) pair and rewrites the derived position row, deleting
// it when the history is empty. It then refreshes the portfolio's linked fund
// and investor.
func (p *Propagator) RefreshPosition(tx *sql.Tx, c *chain, portfolioID, instrumentCode string) error {
	if !c.markPosition(portfolioID, instrumentCode) {
		return nil
	}

	history, err := p.transactionRepo.WithTx(tx).GetHistory(portfolioID, instrumentCode)
	if err != nil {
		return err
	}

	positionRepo := p.positionRepo.WithTx(tx)

	if len(history) == 0 {
		if err := positionRepo.DeletePosition(portfolioID, instrumentCode); err != nil {
			return err
		}
	} else {
		state := ledger.Replay(history)
		pos := &model.Position{
			ID:             uuid.New().String(),
			PortfolioID:    portfolioID,
			InstrumentCode: instrumentCode,
			Quantity:       state.Quantity,
			AverageCost:    state.AverageCost,
			IsOpen:         state.IsOpen,
			OpenDate:       state.OpenDate,
		}
		if err := positionRepo.UpsertPosition(pos); err != nil {
			return err
		}
	}

	portfolio, err := p.portfolioRepo.WithTx(tx).GetPortfolioOnID(portfolioID)
	if errors.Is(err, apperrors.ErrPortfolioNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if portfolio.FundID != nil {
		if err := p.RefreshFund(tx, c, *portfolio.FundID); err != nil {
			return err
		}
	}
	if portfolio.InvestorID != nil {
		if err := p.RefreshInvestor(tx, c, *portfolio.InvestorID); err != nil {
			return err
		}
	}

	return nil
}

// RefreshFund recomputes a fund's current_value as the sum of its linked
// portfolios' market values. Funds with no linked portfolios are left alone:
// their value is maintained by share issuance and redemption instead.
func (p *Propagator) RefreshFund(tx *sql.Tx, c *chain, fundID string) error {
	if !c.markFund(fundID) {
		return nil
	}

	fundRepo := p.fundRepo.WithTx(tx)

	fund, err := fundRepo.GetFund(fundID)
	if errors.Is(err, apperrors.ErrFundNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	portfolios, err := p.portfolioRepo.WithTx(tx).GetPortfoliosByFundID(fundID)
	if err != nil {
		return err
	}
	if len(portfolios) == 0 {
		return nil
	}

	total, err := fundRepo.SumLinkedPortfolioValues(fundID)
	if err != nil {
		return err
	}

	if fund.TotalShares > 0 {
		log.Printf("fund %s share value %.4f -> %.4f", fund.Name, fund.ShareValue(), total/fund.TotalShares)
	}

	return fundRepo.UpdateCurrentValue(fundID, total)
}

// RefreshInvestor recomputes an investor's cached total_invested from the
// source named by their invested_source setting.
func (p *Propagator) RefreshInvestor(tx *sql.Tx, c *chain, investorID string) error {
	if !c.markInvestor(investorID) {
		return nil
	}

	investorRepo := p.investorRepo.WithTx(tx)

	investor, err := investorRepo.GetInvestor(investorID)
	if errors.Is(err, apperrors.ErrInvestorNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var total float64
	switch investor.InvestedSource {
	case model.InvestedSourceTransactions:
		total, err = p.sumInvestedFromTransactions(tx, investorID)
	default:
		total, err = p.investmentRepo.WithTx(tx).SumAmountsByInvestorID(investorID)
	}
	if err != nil {
		return err
	}

	return investorRepo.UpdateTotalInvested(investorID, total)
}

// sumInvestedFromTransactions nets the cash flow of an investor's portfolio
// transactions: buys add cost including fees, sells subtract proceeds net of
// fees. Dividends, splits, mergers and rights carry no cash flow here.
func (p *Propagator) sumInvestedFromTransactions(tx *sql.Tx, investorID string) (float64, error) {
	portfolioIDs, err := p.portfolioRepo.WithTx(tx).GetPortfolioIDsByInvestorID(investorID)
	if err != nil {
		return 0, err
	}
	if len(portfolioIDs) == 0 {
		return 0, nil
	}

	transactions, err := p.transactionRepo.WithTx(tx).GetTransactionsByInvestorPortfolios(portfolioIDs)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, t := range transactions {
		switch t.Type {
		case model.TransactionBuy:
			total += t.TotalAmount()
		case model.TransactionSell:
			total -= t.TotalAmount()
		}
	}

	return total, nil
}
