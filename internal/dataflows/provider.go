package dataflows

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/redreef/alphaflow/internal/models"
)

// Provider is the single entry point the pipeline uses for market data.
// It prefers Longport for prices when credentials exist and falls back to
// Yahoo; news prefers Finnhub and falls back to the Google News scraper.
type Provider struct {
	yahoo    *YahooFinanceClient
	longport *LongportClient
	finnhub  *FinnhubClient
	scraper  *NewsScraperClient
}

func NewProvider(cfg *Config) *Provider {
	p := &Provider{
		yahoo:   NewYahooFinanceClient(cfg),
		finnhub: NewFinnhubClient(cfg),
		scraper: NewNewsScraperClient(cfg),
	}

	if cfg.HasLongportCredentials() {
		lp, err := NewLongportClient(cfg)
		if err != nil {
			log.Warn().Err(err).Msg("Longport client unavailable, falling back to Yahoo")
		} else {
			p.longport = lp
		}
	}
	return p
}

// Close releases provider connections.
func (p *Provider) Close() {
	if p.longport != nil {
		p.longport.Close()
	}
}

// GetPrices fetches daily bars for the ticker across [start, end].
func (p *Provider) GetPrices(ctx context.Context, ticker string, start, end time.Time) ([]models.PricePoint, error) {
	if p.longport != nil {
		days := int(end.Sub(start).Hours()/24) + 1
		bars, err := p.longport.GetDailyCandles(ctx, ticker, days)
		if err == nil {
			return clipWindow(ToPricePoints(bars), start, end), nil
		}
		log.Warn().Err(err).Str("ticker", ticker).Msg("Longport fetch failed, trying Yahoo")
	}

	bars, err := p.yahoo.GetHistoricalData(ticker, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch prices for %s: %w", ticker, err)
	}
	return ToPricePoints(bars), nil
}

// GetFundamentals fetches the fundamentals snapshot for the ticker.
func (p *Provider) GetFundamentals(ctx context.Context, ticker string) (models.FinancialMetrics, error) {
	return p.finnhub.GetCompanyMetrics(ticker)
}

// GetNews fetches up to limit articles for the ticker across [start, end].
func (p *Provider) GetNews(ctx context.Context, ticker string, start, end time.Time, limit int) ([]models.NewsArticle, error) {
	articles, err := p.finnhub.GetCompanyNews(ticker, start, end, limit)
	if err == nil {
		return articles, nil
	}
	log.Warn().Err(err).Str("ticker", ticker).Msg("Finnhub news unavailable, scraping Google News")

	return p.scraper.GetGoogleNews(GoogleNewsParams{
		Query:      ticker + " stock",
		StartDate:  start,
		EndDate:    end,
		MaxResults: limit,
	})
}

// clipWindow drops bars outside [start, end]. Longport serves trailing
// windows by count, which can overshoot the requested range.
func clipWindow(prices []models.PricePoint, start, end time.Time) []models.PricePoint {
	lo := start.Format("2006-01-02")
	hi := end.Format("2006-01-02")
	out := prices[:0:0]
	for _, p := range prices {
		if p.Date >= lo && p.Date <= hi {
			out = append(out, p)
		}
	}
	return out
}
