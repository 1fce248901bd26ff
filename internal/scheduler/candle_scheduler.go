// Package scheduler runs the periodic candle ingestion.
package scheduler

import (
	"context"
	"time"

	"app/internal/logging"
	"app/internal/usecase"
)

type CandleScheduler struct {
	uc       *usecase.CandleUsecase
	markets  []string
	interval time.Duration
	logger   *logging.Logger
}

func NewCandleScheduler(
	uc *usecase.CandleUsecase,
	markets []string,
	interval time.Duration,
	logger *logging.Logger,
) *CandleScheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CandleScheduler{
		uc:       uc,
		markets:  markets,
		interval: interval,
		logger:   logger,
	}
}

// Startはgoroutineで回り、ctxのキャンセルで止まる。
// 1周目は起動直後に走らせる。
func (s *CandleScheduler) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.runOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				s.logger.Info().Msg("candle scheduler stopped")
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()
}

// 1マーケットの失敗で他を止めない
func (s *CandleScheduler) runOnce(ctx context.Context) {
	for _, market := range s.markets {
		if ctx.Err() != nil {
			return
		}
		if err := s.uc.RefreshMarket(ctx, market); err != nil {
			s.logger.Warn().Err(err).Str("market", market).Msg("candle refresh failed")
		}
	}
}
