package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/logging"

	"github.com/stretchr/testify/assert"
)

func TestClient_FetchMinuteCandles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/candles/minutes/1", r.URL.Path)
		assert.Equal(t, "KRW-BTC", r.URL.Query().Get("market"))
		assert.Equal(t, "2", r.URL.Query().Get("count"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"market":"KRW-BTC","candle_date_time_utc":"2026-08-31T09:01:00","opening_price":100.5,"high_price":101,"low_price":99.5,"trade_price":100.8,"candle_acc_trade_volume":12.34},
			{"market":"KRW-BTC","candle_date_time_utc":"2026-08-31T09:00:00","opening_price":99.8,"high_price":100.6,"low_price":99.1,"trade_price":100.5,"candle_acc_trade_volume":8.21}
		]`))
	}))
	defer srv.Close()

	c := NewClient(logging.NewSilentLogger(), WithBaseURL(srv.URL), WithRateLimit(1000))

	candles, err := c.FetchMinuteCandles(context.Background(), "KRW-BTC", 1, 2)
	assert.NoError(t, err)
	assert.Len(t, candles, 2)

	assert.Equal(t, "KRW-BTC", candles[0].Market)
	assert.Equal(t, time.Date(2026, 8, 31, 9, 1, 0, 0, time.UTC), candles[0].OpenTime)
	assert.Equal(t, 100.5, candles[0].Open)
	assert.Equal(t, 100.8, candles[0].Close)
	assert.Equal(t, 12.34, candles[0].Volume)
}

// timestampが読めない足は捨てて続行する
func TestClient_FetchMinuteCandles_SkipsBadTimestamp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"market":"KRW-BTC","candle_date_time_utc":"broken","opening_price":1,"high_price":1,"low_price":1,"trade_price":1,"candle_acc_trade_volume":1},
			{"market":"KRW-BTC","candle_date_time_utc":"2026-08-31T09:00:00","opening_price":1,"high_price":1,"low_price":1,"trade_price":1,"candle_acc_trade_volume":1}
		]`))
	}))
	defer srv.Close()

	c := NewClient(logging.NewSilentLogger(), WithBaseURL(srv.URL), WithRateLimit(1000))

	candles, err := c.FetchMinuteCandles(context.Background(), "KRW-BTC", 1, 2)
	assert.NoError(t, err)
	assert.Len(t, candles, 1)
}

func TestClient_FetchMinuteCandles_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(logging.NewSilentLogger(), WithBaseURL(srv.URL), WithRateLimit(1000))

	_, err := c.FetchMinuteCandles(context.Background(), "KRW-BTC", 1, 100)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}
