package dataflows

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/redreef/alphaflow/internal/models"
)

// FinnhubClient handles Finnhub API operations: company news for the
// sentiment analyst and the fundamentals snapshot.
type FinnhubClient struct {
	client *resty.Client
	cache  *CacheManager
	apiKey string
}

// NewFinnhubClient creates a new Finnhub client
func NewFinnhubClient(cfg *Config) *FinnhubClient {
	cacheDir := filepath.Join(cfg.DataCacheDir, "finnhub")

	client := resty.New()
	client.SetBaseURL("https://finnhub.io/api/v1")
	client.SetTimeout(30 * time.Second)

	return &FinnhubClient{
		client: client,
		cache:  NewCacheManager(cacheDir, 6*time.Hour, cfg.CacheEnabled),
		apiKey: cfg.FinnhubAPIKey,
	}
}

type finnhubNews struct {
	Category string `json:"category"`
	DateTime int64  `json:"datetime"`
	Headline string `json:"headline"`
	Source   string `json:"source"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
}

// GetCompanyNews gets news articles for a company in the date window,
// newest first up to limit.
func (fc *FinnhubClient) GetCompanyNews(symbol string, from, to time.Time, limit int) ([]models.NewsArticle, error) {
	if fc.apiKey == "" {
		return nil, fmt.Errorf("finnhub API key not configured")
	}
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	symbol = NormalizeSymbol(symbol)

	cacheKey := map[string]interface{}{
		"symbol": symbol,
		"from":   from.Format("2006-01-02"),
		"to":     to.Format("2006-01-02"),
		"limit":  limit,
	}
	var cached []models.NewsArticle
	if fc.cache.Get("finnhub", "company_news", cacheKey, &cached) {
		return cached, nil
	}

	var result []models.NewsArticle
	err := WithRetry(DefaultRetryConfig(), func() error {
		resp, err := fc.client.R().
			SetQueryParams(map[string]string{
				"symbol": symbol,
				"from":   from.Format("2006-01-02"),
				"to":     to.Format("2006-01-02"),
				"token":  fc.apiKey,
			}).
			Get("/company-news")
		if err != nil {
			return fmt.Errorf("failed to fetch news for %s: %w", symbol, err)
		}
		if resp.StatusCode() != 200 {
			return fmt.Errorf("API error %d: %s", resp.StatusCode(), resp.String())
		}

		var raw []finnhubNews
		if err := json.Unmarshal(resp.Body(), &raw); err != nil {
			return fmt.Errorf("failed to parse news response: %w", err)
		}

		result = make([]models.NewsArticle, 0, len(raw))
		for _, news := range raw {
			if limit > 0 && len(result) >= limit {
				break
			}
			result = append(result, models.NewsArticle{
				Title:       news.Headline,
				Summary:     news.Summary,
				Source:      news.Source,
				URL:         news.URL,
				PublishedAt: time.Unix(news.DateTime, 0).Format("2006-01-02 15:04:05"),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fc.cache.Set("finnhub", "company_news", cacheKey, result)
	return result, nil
}

type finnhubMetrics struct {
	Metric struct {
		MarketCap         float64 `json:"marketCapitalization"`
		PERatio           float64 `json:"peBasicExclExtraTTM"`
		PBRatio           float64 `json:"pbQuarterly"`
		ROE               float64 `json:"roeTTM"`
		NetMargin         float64 `json:"netProfitMarginTTM"`
		RevenueGrowth     float64 `json:"revenueGrowthTTMYoy"`
		EPS               float64 `json:"epsBasicExclExtraItemsTTM"`
		EPSGrowth         float64 `json:"epsGrowthTTMYoy"`
		DebtToEquity      float64 `json:"totalDebt/totalEquityQuarterly"`
		FreeCashFlowYield float64 `json:"currentEv/freeCashFlowTTM"`
	} `json:"metric"`
}

// GetCompanyMetrics fetches the fundamentals snapshot for a symbol.
// Percentage-style fields come back as percentages from the API and are
// normalized to fractions here.
func (fc *FinnhubClient) GetCompanyMetrics(symbol string) (models.FinancialMetrics, error) {
	if fc.apiKey == "" {
		return models.FinancialMetrics{}, fmt.Errorf("finnhub API key not configured")
	}
	if err := ValidateSymbol(symbol); err != nil {
		return models.FinancialMetrics{}, err
	}
	symbol = NormalizeSymbol(symbol)

	var cached models.FinancialMetrics
	if fc.cache.Get("finnhub", "company_metrics", symbol, &cached) {
		return cached, nil
	}

	var result models.FinancialMetrics
	err := WithRetry(DefaultRetryConfig(), func() error {
		resp, err := fc.client.R().
			SetQueryParams(map[string]string{
				"symbol": symbol,
				"metric": "all",
				"token":  fc.apiKey,
			}).
			Get("/stock/metric")
		if err != nil {
			return fmt.Errorf("failed to fetch metrics for %s: %w", symbol, err)
		}
		if resp.StatusCode() != 200 {
			return fmt.Errorf("API error %d: %s", resp.StatusCode(), resp.String())
		}

		var raw finnhubMetrics
		if err := json.Unmarshal(resp.Body(), &raw); err != nil {
			return fmt.Errorf("failed to parse metrics response: %w", err)
		}

		m := raw.Metric
		fcfYield := 0.0
		if m.FreeCashFlowYield != 0 {
			fcfYield = 1 / m.FreeCashFlowYield
		}
		result = models.FinancialMetrics{
			MarketCap:         m.MarketCap * 1e6,
			PERatio:           m.PERatio,
			PBRatio:           m.PBRatio,
			ReturnOnEquity:    m.ROE / 100,
			NetMargin:         m.NetMargin / 100,
			RevenueGrowth:     m.RevenueGrowth / 100,
			EarningsPerShare:  m.EPS,
			EarningsGrowth:    m.EPSGrowth / 100,
			DebtToEquity:      m.DebtToEquity,
			FreeCashFlowYield: fcfYield,
		}
		return nil
	})
	if err != nil {
		return models.FinancialMetrics{}, err
	}

	fc.cache.Set("finnhub", "company_metrics", symbol, result)
	return result, nil
}
