package services

import (
	"context"
	"sync"

	"cryptodash/src/schemas"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ValuationWriter is the slice of the asset repository the synchronizer
// needs: a full overwrite of one asset's valuation fields.
type ValuationWriter interface {
	UpdateValuation(ctx context.Context, id int64, price, currentValue, profitRate decimal.Decimal) error
}

// SyncService persists freshly recomputed valuations back to storage.
// Write-backs within a batch run concurrently, carry no ordering guarantee,
// and are never retried; the aggregate outcome is only logged.
type SyncService struct {
	assets ValuationWriter
	logger *logrus.Logger
}

func NewSyncService(assets ValuationWriter, logger *logrus.Logger) *SyncService {
	return &SyncService{assets: assets, logger: logger}
}

// SyncBatch issues one write-back per row and waits for the batch to finish.
// A failure on one row does not block or roll back the others. Demo rows
// (asset id zero) are skipped: fallback data is never persisted.
func (s *SyncService) SyncBatch(ctx context.Context, result schemas.ValuationResult) (succeeded, failed int) {
	if result.Source != schemas.SourceLoaded {
		return 0, 0
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, row := range result.Rows {
		if row.AssetID == 0 {
			continue
		}
		wg.Add(1)
		go func(row schemas.ValuationRow) {
			defer wg.Done()
			err := s.assets.UpdateValuation(ctx, row.AssetID, row.EffectivePrice, row.CurrentValue, row.ProfitRate)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				s.logger.WithError(err).WithField("assetId", row.AssetID).Warn("valuation write-back failed")
				return
			}
			succeeded++
		}(row)
	}
	wg.Wait()

	s.logger.WithFields(logrus.Fields{
		"succeeded": succeeded,
		"failed":    failed,
	}).Debug("valuation batch synced")
	return succeeded, failed
}

// SyncBatchAsync is the fire-and-forget form used by the pipeline; callers
// never block on persistence completing.
func (s *SyncService) SyncBatchAsync(ctx context.Context, result schemas.ValuationResult) {
	go s.SyncBatch(ctx, result)
}
