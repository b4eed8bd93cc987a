package workers

import (
	"context"
	"time"

	"civix_backend/internal/logger"
	"civix_backend/internal/repositories"

	"gorm.io/gorm"
)

// TokenCleanupWorker sweeps expired refresh tokens. Expiry is already
// enforced lazily on lookup; the sweep only keeps the table from growing
// without bound.
type TokenCleanupWorker struct {
	db               *gorm.DB
	refreshTokenRepo repositories.RefreshTokenRepository
	interval         time.Duration
}

func NewTokenCleanupWorker(db *gorm.DB, refreshTokenRepo repositories.RefreshTokenRepository) *TokenCleanupWorker {
	return &TokenCleanupWorker{
		db:               db,
		refreshTokenRepo: refreshTokenRepo,
		interval:         6 * time.Hour,
	}
}

func (w *TokenCleanupWorker) Start(ctx context.Context) {
	go w.sweep(ctx)
}

func (w *TokenCleanupWorker) sweep(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Token cleanup worker stopped")
			return
		case <-ticker.C:
			deleted, err := w.refreshTokenRepo.DeleteExpired(w.db)
			if err != nil {
				logger.Error("Failed to delete expired refresh tokens", "error", err)
				continue
			}
			if deleted > 0 {
				logger.Info("Deleted expired refresh tokens", "count", deleted)
			}
		}
	}
}
