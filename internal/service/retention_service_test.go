package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ekaraca/bist-portfolio-backend/internal/apperrors"
	"github.com/ekaraca/bist-portfolio-backend/internal/testutil"
)

// TestRetentionService_Prune tests snapshot pruning rules.
//
// WHY: Retention must never destroy an instrument's only price: the latest
// snapshot per instrument survives unconditionally, and keepDaily preserves
// one row per instrument per calendar day.
func TestRetentionService_Prune(t *testing.T) {
	t.Run("removes old rows but keeps the latest per instrument", func(t *testing.T) {
		// Setup: all snapshots far in the past
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRetentionService(t, db)

		instrument := testutil.NewInstrument().Build(t, db)
		old := time.Now().UTC().AddDate(0, 0, -90)
		testutil.NewSnapshot(instrument.Code).WithPrice(100).WithCreatedAt(old).Build(t, db)
		testutil.NewSnapshot(instrument.Code).WithPrice(101).WithCreatedAt(old.Add(time.Hour)).Build(t, db)
		testutil.NewSnapshot(instrument.Code).WithPrice(102).WithCreatedAt(old.Add(2 * time.Hour)).Build(t, db)

		// Execute
		removed, err := svc.Prune(30, false)

		// Assert
		if err != nil {
			t.Fatalf("Prune() returned unexpected error: %v", err)
		}
		if removed != 2 {
			t.Errorf("Expected 2 rows removed, got %d", removed)
		}
		testutil.AssertRowCount(t, db, "price_snapshot", 1)
	})

	t.Run("recent rows are untouched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRetentionService(t, db)

		instrument := testutil.NewInstrument().Build(t, db)
		testutil.NewSnapshot(instrument.Code).Build(t, db)
		testutil.NewSnapshot(instrument.Code).WithPrice(101).Build(t, db)

		removed, err := svc.Prune(30, false)
		if err != nil {
			t.Fatalf("Prune() returned unexpected error: %v", err)
		}
		if removed != 0 {
			t.Errorf("Expected 0 rows removed, got %d", removed)
		}
		testutil.AssertRowCount(t, db, "price_snapshot", 2)
	})

	t.Run("keepDaily preserves the last row per calendar day", func(t *testing.T) {
		// Setup: two old days with intraday snapshots each
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRetentionService(t, db)

		instrument := testutil.NewInstrument().Build(t, db)
		day1 := time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC)
		day2 := time.Date(2025, 1, 11, 10, 0, 0, 0, time.UTC)
		testutil.NewSnapshot(instrument.Code).WithPrice(100).WithCreatedAt(day1).Build(t, db)
		testutil.NewSnapshot(instrument.Code).WithPrice(101).WithCreatedAt(day1.Add(6 * time.Hour)).Build(t, db)
		testutil.NewSnapshot(instrument.Code).WithPrice(102).WithCreatedAt(day2).Build(t, db)
		testutil.NewSnapshot(instrument.Code).WithPrice(103).WithCreatedAt(day2.Add(6 * time.Hour)).Build(t, db)

		// Execute
		removed, err := svc.Prune(30, true)

		// Assert: one intraday row per day pruned, closing rows survive
		if err != nil {
			t.Fatalf("Prune() returned unexpected error: %v", err)
		}
		if removed != 2 {
			t.Errorf("Expected 2 rows removed, got %d", removed)
		}
		testutil.AssertRowCount(t, db, "price_snapshot", 2)
	})

	t.Run("non-positive days is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestRetentionService(t, db)

		_, err := svc.Prune(0, false)
		if !errors.Is(err, apperrors.ErrRetentionFailed) {
			t.Fatalf("Expected ErrRetentionFailed, got %v", err)
		}
	})
}
