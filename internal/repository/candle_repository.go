package repository

import (
	"app/internal/domain/model"
	"context"
)

type CandleRepository interface {
	// (market, open_time)重複は上書き
	SaveBatch(ctx context.Context, candles []model.Candle) error
	// open_time降順でlimit件
	ListRecent(ctx context.Context, market string, limit int) ([]model.Candle, error)
}
