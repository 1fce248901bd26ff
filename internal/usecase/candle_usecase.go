package usecase

import (
	"context"
	"time"

	"app/internal/domain/model"
	"app/internal/logging"
	repo "app/internal/repository"
)

// 取引所からローソク足を取ってくる約束（実装はinfra/market）
type CandleFetcher interface {
	FetchMinuteCandles(ctx context.Context, market string, unit int, count int) ([]model.Candle, error)
}

type CandleDTO struct {
	Market   string    `json:"market"`
	OpenTime time.Time `json:"open_time"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	Volume   float64   `json:"volume"`
}

type CandleUsecase struct {
	fetcher CandleFetcher
	candles repo.CandleRepository
	logger  *logging.Logger
}

func NewCandleUsecase(
	fetcher CandleFetcher,
	candles repo.CandleRepository,
	logger *logging.Logger,
) *CandleUsecase {
	return &CandleUsecase{
		fetcher: fetcher,
		candles: candles,
		logger:  logger,
	}
}

// 1分足100本を取り込む（重なった足は上書き）
func (u *CandleUsecase) RefreshMarket(ctx context.Context, market string) error {
	candles, err := u.fetcher.FetchMinuteCandles(ctx, market, 1, 100)
	if err != nil {
		return ErrUnavailable
	}

	if err := u.candles.SaveBatch(ctx, candles); err != nil {
		return ErrUnavailable
	}

	u.logger.Debug().Str("market", market).Int("count", len(candles)).Msg("candles refreshed")
	return nil
}

func (u *CandleUsecase) GetRecent(ctx context.Context, market string, limit int) ([]CandleDTO, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 200 {
		limit = 200
	}

	candles, err := u.candles.ListRecent(ctx, market, limit)
	if err != nil {
		return nil, ErrUnavailable
	}

	dtos := make([]CandleDTO, 0, len(candles))
	for _, c := range candles {
		dtos = append(dtos, CandleDTO{
			Market:   c.Market,
			OpenTime: c.OpenTime,
			Open:     c.Open,
			High:     c.High,
			Low:      c.Low,
			Close:    c.Close,
			Volume:   c.Volume,
		})
	}
	return dtos, nil
}
