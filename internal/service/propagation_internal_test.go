package service

import "testing"

// TestChain_Deduplication tests the per-run recompute bookkeeping.
//
// WHY: A single write can reach the same fund or investor through several
// edges; the chain must guarantee each aggregate is recomputed exactly once
// per run.
func TestChain_Deduplication(t *testing.T) {
	t.Run("position marked once per pair", func(t *testing.T) {
		c := newChain()

		if !c.markPosition("p1", "THYAO") {
			t.Error("Expected first mark to return true")
		}
		if c.markPosition("p1", "THYAO") {
			t.Error("Expected repeated mark to return false")
		}
		if !c.markPosition("p1", "GARAN") {
			t.Error("Expected different instrument to mark independently")
		}
		if !c.markPosition("p2", "THYAO") {
			t.Error("Expected different portfolio to mark independently")
		}
	})

	t.Run("fund marked once per id", func(t *testing.T) {
		c := newChain()

		if !c.markFund("f1") {
			t.Error("Expected first mark to return true")
		}
		if c.markFund("f1") {
			t.Error("Expected repeated mark to return false")
		}
		if !c.markFund("f2") {
			t.Error("Expected different fund to mark independently")
		}
	})

	t.Run("investor marked once per id", func(t *testing.T) {
		c := newChain()

		if !c.markInvestor("i1") {
			t.Error("Expected first mark to return true")
		}
		if c.markInvestor("i1") {
			t.Error("Expected repeated mark to return false")
		}
	})

	t.Run("marks are independent across kinds", func(t *testing.T) {
		c := newChain()
		c.markFund("same-id")

		if !c.markInvestor("same-id") {
			t.Error("Expected investor mark to be independent of fund mark")
		}
	})
}
