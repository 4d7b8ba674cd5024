package dataflows

import (
	"context"
	"fmt"
	"time"

	lpconfig "github.com/longportapp/openapi-go/config"
	"github.com/longportapp/openapi-go/quote"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// LongportClient serves daily candlesticks through the Longport OpenAPI.
// It is preferred over Yahoo when credentials are configured.
type LongportClient struct {
	quoteCtx *quote.QuoteContext
	cache    *CacheManager
}

func NewLongportClient(cfg *Config) (*LongportClient, error) {
	if !cfg.HasLongportCredentials() {
		return nil, fmt.Errorf("longport credentials not configured")
	}

	conf, err := lpconfig.New(lpconfig.WithConfigKey(
		cfg.LongportAppKey, cfg.LongportAppSecret, cfg.LongportAccessToken))
	if err != nil {
		return nil, fmt.Errorf("build longport config: %w", err)
	}
	quoteCtx, err := quote.NewFromCfg(conf)
	if err != nil {
		return nil, fmt.Errorf("create longport quote context: %w", err)
	}

	return &LongportClient{
		quoteCtx: quoteCtx,
		cache:    NewCacheManager(cfg.DataCacheDir+"/longport", 24*time.Hour, cfg.CacheEnabled),
	}, nil
}

// Close releases the underlying quote connection.
func (lc *LongportClient) Close() {
	if lc.quoteCtx != nil {
		lc.quoteCtx.Close()
	}
}

// GetDailyCandles fetches up to count trailing daily bars for a symbol.
func (lc *LongportClient) GetDailyCandles(ctx context.Context, symbol string, count int) ([]*MarketData, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	symbol = NormalizeSymbol(symbol)

	cacheKey := map[string]interface{}{"symbol": symbol, "count": count}
	var cached []*MarketData
	if lc.cache.Get("longport", "daily_candles", cacheKey, &cached) {
		return cached, nil
	}

	sticks, err := lc.quoteCtx.Candlesticks(ctx, symbol, quote.PeriodDay, int32(count), quote.AdjustTypeNo)
	if err != nil {
		return nil, fmt.Errorf("fetch candlesticks for %s: %w", symbol, err)
	}

	result := make([]*MarketData, 0, len(sticks))
	for _, stick := range sticks {
		result = append(result, &MarketData{
			Symbol:    symbol,
			Date:      time.Unix(stick.Timestamp, 0),
			Open:      decimal.NewFromFloat(stick.Open.InexactFloat64()),
			High:      decimal.NewFromFloat(stick.High.InexactFloat64()),
			Low:       decimal.NewFromFloat(stick.Low.InexactFloat64()),
			Close:     decimal.NewFromFloat(stick.Close.InexactFloat64()),
			AdjClose:  decimal.NewFromFloat(stick.Close.InexactFloat64()),
			Volume:    stick.Volume,
			Timestamp: time.Now(),
		})
	}

	log.Debug().Str("symbol", symbol).Int("bars", len(result)).Msg("Longport candlesticks fetched")

	lc.cache.Set("longport", "daily_candles", cacheKey, result)
	return result, nil
}
