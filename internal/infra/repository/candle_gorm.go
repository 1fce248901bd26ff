package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type candleGormRepository struct {
	db *gorm.DB
}

func NewCandleRepository(db *gorm.DB) repo.CandleRepository {
	return &candleGormRepository{db: db}
}

// スケジューラが同じ足を何度も取り込むので、重複は上書きにする
func (r *candleGormRepository) SaveBatch(ctx context.Context, candles []model.Candle) error {
	if len(candles) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "market"}, {Name: "open_time"}},
			DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume"}),
		}).
		Create(&candles).Error
}

func (r *candleGormRepository) ListRecent(ctx context.Context, market string, limit int) ([]model.Candle, error) {
	var candles []model.Candle

	err := r.db.WithContext(ctx).
		Where("market = ?", market).
		Order("open_time DESC").
		Limit(limit).
		Find(&candles).Error
	if err != nil {
		return nil, err
	}

	return candles, nil
}
