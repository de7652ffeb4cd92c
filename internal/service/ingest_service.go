package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/singleflight"
	"github.com/ekaraca/bist-portfolio-backend/internal/apperrors"
	"github.com/ekaraca/bist-portfolio-backend/internal/collectapi"
	"github.com/ekaraca/bist-portfolio-backend/internal/model"
	"github.com/ekaraca/bist-portfolio-backend/internal/repository"
)

// IngestService fetches the BIST quote list and records it as append-only
// price snapshots. Runs are idempotent: an unchanged quote (same exchange time
// label, price and percent change) is suppressed rather than re-inserted, and
// concurrent triggers collapse into a single run.
type IngestService struct {
	db             *sql.DB
	client         collectapi.Client
	settings       *SettingsService
	instrumentRepo *repository.InstrumentRepository
	snapshotRepo   *repository.SnapshotRepository
	envAPIKey      string

	group singleflight.Group
}

// NewIngestService creates a new IngestService with the provided dependencies.
// envAPIKey, when non-empty, takes precedence over the key stored encrypted in
// system settings.
func NewIngestService(
	db *sql.DB,
	client collectapi.Client,
	settings *SettingsService,
	instrumentRepo *repository.InstrumentRepository,
	snapshotRepo *repository.SnapshotRepository,
	envAPIKey string,
) *IngestService {
	return &IngestService{
		db:             db,
		client:         client,
		settings:       settings,
		instrumentRepo: instrumentRepo,
		snapshotRepo:   snapshotRepo,
		envAPIKey:      envAPIKey,
	}
}

// Ingest runs one ingestion pass. A pass already in flight is joined instead
// of duplicated; both callers receive its result.
func (s *IngestService) Ingest(ctx context.Context) (model.IngestResult, error) {
	v, err, _ := s.group.Do("ingest", func() (interface{}, error) {
		return s.run(ctx)
	})
	if err != nil {
		return model.IngestResult{}, err
	}
	return v.(model.IngestResult), nil
}

func (s *IngestService) run(ctx context.Context) (model.IngestResult, error) {
	apiKey := s.envAPIKey
	if apiKey == "" {
		var err error
		apiKey, err = s.settings.GetAPIKey()
		if err != nil {
			return model.IngestResult{}, err
		}
	}

	response, err := s.client.FetchQuotes(ctx, apiKey)
	if err != nil {
		return model.IngestResult{}, fmt.Errorf("%w: %v", apperrors.ErrIngestFailed, err)
	}

	result := model.IngestResult{Attempted: len(response.Result)}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.IngestResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("rollback failed after ingest error: %v", rbErr)
			}
		}
	}()

	instrumentRepo := s.instrumentRepo.WithTx(tx)
	snapshotRepo := s.snapshotRepo.WithTx(tx)

	for _, quote := range response.Result {
		code := strings.TrimSpace(quote.Code)
		if code == "" || quote.Lastprice <= 0 {
			log.Printf("ingest: skipping malformed quote %q (price %.2f)", quote.Code, quote.Lastprice)
			continue
		}

		err = instrumentRepo.UpsertInstrument(model.Instrument{
			Code:    code,
			Name:    quote.Text,
			IconURL: quote.Icon,
		})
		if err != nil {
			return model.IngestResult{}, err
		}

		snapshot := model.PriceSnapshot{
			InstrumentCode: code,
			Price:          quote.Lastprice,
			ChangePct:      quote.Rate,
			ExchangeTime:   quote.Time,
		}
		if quote.Hacim > 0 {
			snapshot.Volume = &quote.Hacim
		}
		if quote.Min > 0 {
			snapshot.MinPrice = &quote.Min
		}
		if quote.Max > 0 {
			snapshot.MaxPrice = &quote.Max
		}

		var duplicate bool
		duplicate, err = snapshotRepo.HasDuplicate(snapshot)
		if err != nil {
			return model.IngestResult{}, err
		}
		if duplicate {
			result.Skipped++
			continue
		}

		if err = snapshotRepo.InsertSnapshot(snapshot); err != nil {
			return model.IngestResult{}, err
		}
		result.Succeeded++
	}

	if err = tx.Commit(); err != nil {
		return model.IngestResult{}, fmt.Errorf("failed to commit ingest transaction: %w", err)
	}

	log.Printf("ingest: %d attempted, %d recorded, %d duplicates skipped",
		result.Attempted, result.Succeeded, result.Skipped)

	return result, nil
}
