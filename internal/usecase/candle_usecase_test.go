package usecase

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCandleUsecase_RefreshMarket(t *testing.T) {
	ctx := context.Background()

	fetcher := new(MockCandleFetcher)
	candleRepo := new(MockCandleRepository)

	fetched := []model.Candle{
		{Market: "KRW-BTC", OpenTime: time.Now().Truncate(time.Minute), Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 10},
	}

	//1分足を100本取りに行く
	fetcher.On("FetchMinuteCandles", mock.Anything, "KRW-BTC", 1, 100).Return(fetched, nil)
	candleRepo.On("SaveBatch", mock.Anything, fetched).Return(nil)

	uc := NewCandleUsecase(fetcher, candleRepo, logging.NewSilentLogger())

	assert.NoError(t, uc.RefreshMarket(ctx, "KRW-BTC"))

	fetcher.AssertExpectations(t)
	candleRepo.AssertExpectations(t)
}

func TestCandleUsecase_RefreshMarket_FetchFailure(t *testing.T) {
	ctx := context.Background()

	fetcher := new(MockCandleFetcher)
	candleRepo := new(MockCandleRepository)

	fetcher.On("FetchMinuteCandles", mock.Anything, "KRW-BTC", 1, 100).Return(nil, assert.AnError)

	uc := NewCandleUsecase(fetcher, candleRepo, logging.NewSilentLogger())

	assert.ErrorIs(t, uc.RefreshMarket(ctx, "KRW-BTC"), ErrUnavailable)
	candleRepo.AssertNotCalled(t, "SaveBatch", mock.Anything, mock.Anything)
}

func TestCandleUsecase_GetRecent_LimitClamped(t *testing.T) {
	ctx := context.Background()

	fetcher := new(MockCandleFetcher)
	candleRepo := new(MockCandleRepository)

	//0以下はデフォルト100、上限は200
	candleRepo.On("ListRecent", mock.Anything, "KRW-ETH", 100).Return([]model.Candle{}, nil).Once()
	candleRepo.On("ListRecent", mock.Anything, "KRW-ETH", 200).Return([]model.Candle{}, nil).Once()

	uc := NewCandleUsecase(fetcher, candleRepo, logging.NewSilentLogger())

	_, err := uc.GetRecent(ctx, "KRW-ETH", 0)
	assert.NoError(t, err)

	_, err = uc.GetRecent(ctx, "KRW-ETH", 9999)
	assert.NoError(t, err)

	candleRepo.AssertExpectations(t)
}
