// Package market provides a client for the Upbit candle API
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"app/internal/domain/model"
	"app/internal/logging"
)

const (
	DefaultBaseURL   = "https://api.upbit.com/v1"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Upbitのローソク足レスポンス
type upbitCandle struct {
	Market    string  `json:"market"`
	OpenTime  string  `json:"candle_date_time_utc"`
	Open      float64 `json:"opening_price"`
	High      float64 `json:"high_price"`
	Low       float64 `json:"low_price"`
	Close     float64 `json:"trade_price"`
	Volume    float64 `json:"candle_acc_trade_volume"`
	Timestamp int64   `json:"timestamp"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logging.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(rps int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

func NewClient(logger *logging.Logger, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
		logger:  logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// 最新count本の分足を取得する
func (c *Client) FetchMinuteCandles(ctx context.Context, market string, unit int, count int) ([]model.Candle, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/candles/minutes/%d?market=%s&count=%d", c.baseURL, unit, market, count)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch candles: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch candles: status %d: %s", resp.StatusCode, string(body))
	}

	var raw []upbitCandle
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode candles: %w", err)
	}

	candles := make([]model.Candle, 0, len(raw))
	for _, r := range raw {
		openTime, err := time.Parse("2006-01-02T15:04:05", r.OpenTime)
		if err != nil {
			c.logger.Warn().Str("market", market).Str("open_time", r.OpenTime).Msg("skip candle with bad timestamp")
			continue
		}

		candles = append(candles, model.Candle{
			Market:   market,
			OpenTime: openTime.UTC(),
			Open:     r.Open,
			High:     r.High,
			Low:      r.Low,
			Close:    r.Close,
			Volume:   r.Volume,
		})
	}

	return candles, nil
}
