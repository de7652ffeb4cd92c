package ledger_test

import (
	"math"
	"testing"
	"time"

	"github.com/ekaraca/bist-portfolio-backend/internal/ledger"
	"github.com/ekaraca/bist-portfolio-backend/internal/model"
)

func tx(txType string, day int, price, quantity float64) model.Transaction {
	return model.Transaction{
		Type:     txType,
		Date:     time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC),
		Price:    price,
		Quantity: quantity,
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestReplay_BuyAndSell tests the core buy/sell accounting.
//
// WHY: Positions are wholly derived from transaction history, so the replay
// rules are the single source of truth for every valuation downstream.
func TestReplay_BuyAndSell(t *testing.T) {
	t.Run("single buy opens position at cost", func(t *testing.T) {
		state := ledger.Replay([]model.Transaction{
			tx(model.TransactionBuy, 1, 100, 10),
		})

		if state.Quantity != 10 {
			t.Errorf("Expected quantity 10, got %v", state.Quantity)
		}
		if state.AverageCost != 100 {
			t.Errorf("Expected average cost 100, got %v", state.AverageCost)
		}
		if !state.IsOpen {
			t.Error("Expected position to be open")
		}
	})

	t.Run("second buy re-averages cost", func(t *testing.T) {
		state := ledger.Replay([]model.Transaction{
			tx(model.TransactionBuy, 1, 100, 10),
			tx(model.TransactionBuy, 2, 200, 10),
		})

		if state.Quantity != 20 {
			t.Errorf("Expected quantity 20, got %v", state.Quantity)
		}
		if !approxEqual(state.AverageCost, 150) {
			t.Errorf("Expected average cost 150, got %v", state.AverageCost)
		}
	})

	t.Run("sell to zero closes position and retains average cost", func(t *testing.T) {
		state := ledger.Replay([]model.Transaction{
			tx(model.TransactionBuy, 1, 100, 10),
			tx(model.TransactionSell, 2, 120, 10),
		})

		if state.Quantity != 0 {
			t.Errorf("Expected quantity 0, got %v", state.Quantity)
		}
		if state.IsOpen {
			t.Error("Expected position to be closed")
		}
		// Last average cost stays visible for historical display
		if state.AverageCost != 100 {
			t.Errorf("Expected average cost 100, got %v", state.AverageCost)
		}
	})

	t.Run("over-sell clamps at zero", func(t *testing.T) {
		state := ledger.Replay([]model.Transaction{
			tx(model.TransactionBuy, 1, 100, 5),
			tx(model.TransactionSell, 2, 100, 50),
		})

		if state.Quantity != 0 {
			t.Errorf("Expected quantity clamped at 0, got %v", state.Quantity)
		}
		if state.IsOpen {
			t.Error("Expected position to be closed")
		}
	})

	t.Run("re-open after close starts a fresh cost basis", func(t *testing.T) {
		state := ledger.Replay([]model.Transaction{
			tx(model.TransactionBuy, 1, 100, 10),
			tx(model.TransactionSell, 2, 150, 10),
			tx(model.TransactionBuy, 3, 300, 2),
		})

		if state.Quantity != 2 {
			t.Errorf("Expected quantity 2, got %v", state.Quantity)
		}
		if !approxEqual(state.AverageCost, 300) {
			t.Errorf("Expected fresh average cost 300, got %v", state.AverageCost)
		}
		if !state.IsOpen {
			t.Error("Expected re-opened position to be open")
		}
	})

	t.Run("open date comes from first transaction", func(t *testing.T) {
		state := ledger.Replay([]model.Transaction{
			tx(model.TransactionBuy, 3, 100, 10),
			tx(model.TransactionBuy, 7, 110, 10),
		})

		want := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)
		if !state.OpenDate.Equal(want) {
			t.Errorf("Expected open date %v, got %v", want, state.OpenDate)
		}
	})
}

// TestReplay_CorporateActions tests splits, mergers and cash-only events.
//
// WHY: Corporate actions carry their ratio in the price field and must adjust
// quantity and cost basis inversely so position value is preserved.
func TestReplay_CorporateActions(t *testing.T) {
	t.Run("split multiplies quantity and divides cost", func(t *testing.T) {
		state := ledger.Replay([]model.Transaction{
			tx(model.TransactionBuy, 1, 100, 10),
			tx(model.TransactionSplit, 2, 2, 0),
		})

		if state.Quantity != 20 {
			t.Errorf("Expected quantity 20, got %v", state.Quantity)
		}
		if !approxEqual(state.AverageCost, 50) {
			t.Errorf("Expected average cost 50, got %v", state.AverageCost)
		}
		if !approxEqual(state.TotalCost(), 1000) {
			t.Errorf("Expected total cost preserved at 1000, got %v", state.TotalCost())
		}
	})

	t.Run("merger divides quantity and multiplies cost", func(t *testing.T) {
		state := ledger.Replay([]model.Transaction{
			tx(model.TransactionBuy, 1, 100, 10),
			tx(model.TransactionMerger, 2, 2, 0),
		})

		if state.Quantity != 5 {
			t.Errorf("Expected quantity 5, got %v", state.Quantity)
		}
		if !approxEqual(state.AverageCost, 200) {
			t.Errorf("Expected average cost 200, got %v", state.AverageCost)
		}
	})

	t.Run("non-positive ratio is ignored", func(t *testing.T) {
		state := ledger.Replay([]model.Transaction{
			tx(model.TransactionBuy, 1, 100, 10),
			tx(model.TransactionSplit, 2, 0, 0),
		})

		if state.Quantity != 10 {
			t.Errorf("Expected quantity unchanged at 10, got %v", state.Quantity)
		}
	})

	t.Run("dividend and rights leave the position untouched", func(t *testing.T) {
		state := ledger.Replay([]model.Transaction{
			tx(model.TransactionBuy, 1, 100, 10),
			tx(model.TransactionDividend, 2, 5, 10),
			tx(model.TransactionRights, 3, 1, 100),
		})

		if state.Quantity != 10 {
			t.Errorf("Expected quantity 10, got %v", state.Quantity)
		}
		if state.AverageCost != 100 {
			t.Errorf("Expected average cost 100, got %v", state.AverageCost)
		}
	})
}

// TestReplay_Idempotence tests that replay is a pure function of its input.
//
// WHY: Every write to a transaction triggers a full replay; converging on the
// same state no matter how often replay runs is what makes that safe.
func TestReplay_Idempotence(t *testing.T) {
	history := []model.Transaction{
		tx(model.TransactionBuy, 1, 100, 10),
		tx(model.TransactionBuy, 2, 200, 5),
		tx(model.TransactionSell, 3, 250, 8),
		tx(model.TransactionSplit, 4, 2, 0),
	}

	first := ledger.Replay(history)
	second := ledger.Replay(history)

	if first != second {
		t.Errorf("Replay is not idempotent: first %+v, second %+v", first, second)
	}
}

// TestReplay_EmptyHistory tests the zero-value result.
func TestReplay_EmptyHistory(t *testing.T) {
	state := ledger.Replay(nil)

	if state.Quantity != 0 || state.AverageCost != 0 || state.IsOpen {
		t.Errorf("Expected zero state for empty history, got %+v", state)
	}
}
