package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ekaraca/bist-portfolio-backend/internal/apperrors"
	"github.com/ekaraca/bist-portfolio-backend/internal/collectapi"
	"github.com/ekaraca/bist-portfolio-backend/internal/repository"
	"github.com/ekaraca/bist-portfolio-backend/internal/testutil"
)

// TestIngestService_Ingest tests a full ingestion pass.
//
// WHY: Ingestion is the sole writer of the market snapshot history; it must
// upsert instruments, append snapshots, suppress duplicates, and skip
// malformed quotes without aborting the run.
func TestIngestService_Ingest(t *testing.T) {
	t.Run("records instruments and snapshots", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockCollectClient()
		svc := testutil.NewTestIngestService(t, db, mock)
		if err := testutil.NewTestSettingsService(t, db).SetAPIKey("test-key"); err != nil {
			t.Fatalf("SetAPIKey() returned unexpected error: %v", err)
		}

		// Execute
		result, err := svc.Ingest(context.Background())

		// Assert
		if err != nil {
			t.Fatalf("Ingest() returned unexpected error: %v", err)
		}
		if result.Attempted != 2 || result.Succeeded != 2 || result.Skipped != 0 {
			t.Errorf("Expected 2/2/0, got %+v", result)
		}
		testutil.AssertRowCount(t, db, "instrument", 2)
		testutil.AssertRowCount(t, db, "price_snapshot", 2)

		if mock.LastAPIKey != "test-key" {
			t.Errorf("Expected stored key to reach the client, got %q", mock.LastAPIKey)
		}
	})

	t.Run("duplicate quotes are suppressed on a second run", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockCollectClient()
		svc := testutil.NewTestIngestService(t, db, mock)
		if err := testutil.NewTestSettingsService(t, db).SetAPIKey("test-key"); err != nil {
			t.Fatalf("SetAPIKey() returned unexpected error: %v", err)
		}

		// Execute: same payload twice
		if _, err := svc.Ingest(context.Background()); err != nil {
			t.Fatalf("first Ingest() returned unexpected error: %v", err)
		}
		result, err := svc.Ingest(context.Background())

		// Assert
		if err != nil {
			t.Fatalf("second Ingest() returned unexpected error: %v", err)
		}
		if result.Succeeded != 0 || result.Skipped != 2 {
			t.Errorf("Expected all quotes skipped on second run, got %+v", result)
		}
		testutil.AssertRowCount(t, db, "price_snapshot", 2)
	})

	t.Run("changed price appends a new snapshot", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockCollectClient().WithQuotes(
			collectapi.StockQuote{Code: "THYAO", Text: "Turk Hava Yollari", Lastprice: 270.5, Rate: 1.25, Time: "18:05"},
		)
		svc := testutil.NewTestIngestService(t, db, mock)
		if err := testutil.NewTestSettingsService(t, db).SetAPIKey("test-key"); err != nil {
			t.Fatalf("SetAPIKey() returned unexpected error: %v", err)
		}

		if _, err := svc.Ingest(context.Background()); err != nil {
			t.Fatalf("first Ingest() returned unexpected error: %v", err)
		}

		// Execute: same instrument, new price
		mock.WithQuotes(collectapi.StockQuote{Code: "THYAO", Text: "Turk Hava Yollari", Lastprice: 275, Rate: 2.9, Time: "18:10"})
		result, err := svc.Ingest(context.Background())

		// Assert
		if err != nil {
			t.Fatalf("second Ingest() returned unexpected error: %v", err)
		}
		if result.Succeeded != 1 {
			t.Errorf("Expected 1 new snapshot, got %+v", result)
		}
		testutil.AssertRowCount(t, db, "instrument", 1)
		testutil.AssertRowCount(t, db, "price_snapshot", 2)

		latest, ok, err := repository.NewSnapshotRepository(db).GetLatestSnapshot("THYAO")
		if err != nil {
			t.Fatalf("GetLatestSnapshot() returned unexpected error: %v", err)
		}
		if !ok {
			t.Fatal("Expected a latest snapshot")
		}
		if latest.Price != 275 {
			t.Errorf("Expected latest price 275, got %v", latest.Price)
		}
	})

	t.Run("malformed quotes are skipped without aborting", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockCollectClient().WithQuotes(
			collectapi.StockQuote{Code: "", Text: "No code", Lastprice: 10},
			collectapi.StockQuote{Code: "BADPR", Text: "Bad price", Lastprice: 0},
			collectapi.StockQuote{Code: "GARAN", Text: "Garanti Bankasi", Lastprice: 112.3, Rate: -0.4, Time: "18:05"},
		)
		svc := testutil.NewTestIngestService(t, db, mock)
		if err := testutil.NewTestSettingsService(t, db).SetAPIKey("test-key"); err != nil {
			t.Fatalf("SetAPIKey() returned unexpected error: %v", err)
		}

		// Execute
		result, err := svc.Ingest(context.Background())

		// Assert
		if err != nil {
			t.Fatalf("Ingest() returned unexpected error: %v", err)
		}
		if result.Attempted != 3 || result.Succeeded != 1 {
			t.Errorf("Expected 3 attempted with 1 succeeded, got %+v", result)
		}
		testutil.AssertRowCount(t, db, "price_snapshot", 1)
	})

	t.Run("missing API key aborts the run", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestIngestService(t, db, testutil.NewMockCollectClient())

		_, err := svc.Ingest(context.Background())
		if !errors.Is(err, apperrors.ErrAPIKeyMissing) {
			t.Fatalf("Expected ErrAPIKeyMissing, got %v", err)
		}
	})

	t.Run("upstream failure leaves nothing persisted", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockCollectClient().WithError(errors.New("upstream down"))
		svc := testutil.NewTestIngestService(t, db, mock)
		if err := testutil.NewTestSettingsService(t, db).SetAPIKey("test-key"); err != nil {
			t.Fatalf("SetAPIKey() returned unexpected error: %v", err)
		}

		// Execute
		_, err := svc.Ingest(context.Background())

		// Assert
		if !errors.Is(err, apperrors.ErrIngestFailed) {
			t.Fatalf("Expected ErrIngestFailed, got %v", err)
		}
		testutil.AssertRowCount(t, db, "instrument", 0)
		testutil.AssertRowCount(t, db, "price_snapshot", 0)
	})
}
