package service

import (
	"github.com/ekaraca/bist-portfolio-backend/internal/model"
	"github.com/ekaraca/bist-portfolio-backend/internal/repository"
)

// InstrumentService handles instrument and price snapshot read operations.
// Instruments are created and refreshed by ingestion, never through the API.
type InstrumentService struct {
	instrumentRepo *repository.InstrumentRepository
	snapshotRepo   *repository.SnapshotRepository
}

// NewInstrumentService creates a new InstrumentService with the provided repositories.
func NewInstrumentService(
	instrumentRepo *repository.InstrumentRepository,
	snapshotRepo *repository.SnapshotRepository,
) *InstrumentService {
	return &InstrumentService{
		instrumentRepo: instrumentRepo,
		snapshotRepo:   snapshotRepo,
	}
}

// GetInstruments retrieves all instruments enriched with their latest quote.
// Instruments without a snapshot yet report a zero price.
func (s *InstrumentService) GetInstruments() ([]model.InstrumentQuote, error) {
	instruments, err := s.instrumentRepo.GetInstruments()
	if err != nil {
		return nil, err
	}

	quotes := make([]model.InstrumentQuote, 0, len(instruments))
	for _, instrument := range instruments {
		quote := model.InstrumentQuote{Instrument: instrument}

		latest, ok, err := s.snapshotRepo.GetLatestSnapshot(instrument.Code)
		if err != nil {
			return nil, err
		}
		if ok {
			quote.LatestPrice = latest.Price
			quote.LatestChangePct = latest.ChangePct
			quote.LatestAt = latest.CreatedAt
		}

		quotes = append(quotes, quote)
	}

	return quotes, nil
}

// GetInstrument retrieves a single instrument by its code.
func (s *InstrumentService) GetInstrument(code string) (model.Instrument, error) {
	return s.instrumentRepo.GetInstrument(code)
}

// GetSnapshots retrieves an instrument's snapshot history, newest first.
func (s *InstrumentService) GetSnapshots(code string, limit int) ([]model.PriceSnapshot, error) {
	if _, err := s.instrumentRepo.GetInstrument(code); err != nil {
		return nil, err
	}
	return s.snapshotRepo.GetSnapshots(code, limit)
}

// DeleteInstrument removes an instrument. Blocked while positions,
// transactions or snapshots still reference it.
func (s *InstrumentService) DeleteInstrument(code string) error {
	return s.instrumentRepo.DeleteInstrument(code)
}
