// Package ledger implements the position replay algorithm: given the complete,
// ordered transaction history for one (portfolio, instrument) pair it derives
// the current holding. Replay is a pure function of its input, so rerunning it
// after any insert, update or delete always converges on the same state.
package ledger

import (
	"time"

	"github.com/ekaraca/bist-portfolio-backend/internal/model"
)

// State is the derived holding for one (portfolio, instrument) pair.
type State struct {
	Quantity    float64
	AverageCost float64
	IsOpen      bool
	OpenDate    time.Time
}

// Replay folds an ordered transaction history into the resulting position state.
// Callers must supply the history sorted ascending by date, with equal-date ties
// broken by insertion order (created_at, then id).
//
// Rules:
//   - buy: accumulates running cost and re-averages over the new quantity.
//   - sell: decrements quantity, clamped at zero. A sell that would go negative
//     is not rejected here; callers needing strict enforcement validate before
//     the transaction is written. When the position closes the running cost is
//     zeroed so a later re-open starts a fresh cost basis; the last average
//     cost is retained for historical display.
//   - split: the price field is the ratio; quantity multiplies, average cost divides.
//   - merger: the inverse of split.
//   - dividend, rights: no effect on quantity or cost basis.
//
// A non-positive ratio on split/merger is ignored rather than poisoning the state.
func Replay(history []model.Transaction) State {
	var s State
	var runningCost float64

	for i, tx := range history {
		if i == 0 {
			s.OpenDate = tx.Date
		}

		switch tx.Type {
		case model.TransactionBuy:
			runningCost += tx.Quantity * tx.Price
			s.Quantity += tx.Quantity
			if s.Quantity > 0 {
				s.AverageCost = runningCost / s.Quantity
			}

		case model.TransactionSell:
			s.Quantity -= tx.Quantity
			if s.Quantity <= 0 {
				s.Quantity = 0
				runningCost = 0
			}

		case model.TransactionSplit:
			if tx.Price > 0 {
				s.Quantity *= tx.Price
				s.AverageCost /= tx.Price
			}

		case model.TransactionMerger:
			if tx.Price > 0 {
				s.Quantity /= tx.Price
				s.AverageCost *= tx.Price
			}

		case model.TransactionDividend, model.TransactionRights:
			// Cash-only events; tracked on the investor side, not the position.
		}
	}

	s.IsOpen = s.Quantity > 0
	return s
}

// TotalCost returns the position's current cost basis.
func (s State) TotalCost() float64 {
	return s.Quantity * s.AverageCost
}
