package service

import (
	"fmt"
	"log"
	"time"

	"github.com/ekaraca/bist-portfolio-backend/internal/apperrors"
	"github.com/ekaraca/bist-portfolio-backend/internal/repository"
)

// RetentionService prunes old price snapshots. Each instrument's single most
// recent row always survives so valuations never lose their price source;
// keepDaily additionally preserves the last row per calendar day inside the
// pruned range as a thinned history.
type RetentionService struct {
	snapshotRepo *repository.SnapshotRepository
}

// NewRetentionService creates a new RetentionService with the provided repository.
func NewRetentionService(snapshotRepo *repository.SnapshotRepository) *RetentionService {
	return &RetentionService{snapshotRepo: snapshotRepo}
}

// Prune removes snapshots older than the given number of days and returns how
// many rows were removed.
func (s *RetentionService) Prune(days int, keepDaily bool) (int64, error) {
	if days <= 0 {
		return 0, fmt.Errorf("%w: retention days must be positive", apperrors.ErrRetentionFailed)
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	removed, err := s.snapshotRepo.PruneOlderThan(cutoff, keepDaily)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrRetentionFailed, err)
	}

	log.Printf("retention: removed %d snapshots older than %s (keepDaily=%t)",
		removed, cutoff.Format("2006-01-02"), keepDaily)

	return removed, nil
}
