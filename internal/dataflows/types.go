// Package dataflows fetches and caches the market data the analysis
// pipeline runs on: daily price history, fundamentals snapshots, and news.
package dataflows

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/redreef/alphaflow/internal/config"
	"github.com/redreef/alphaflow/internal/models"
)

// Config is an alias for the main application config
type Config = config.Config

// MarketData is one daily bar as delivered by a provider. Prices stay
// decimal at this boundary; the analysis core works in float64.
type MarketData struct {
	Symbol    string          `json:"symbol"`
	Date      time.Time       `json:"date"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	AdjClose  decimal.Decimal `json:"adj_close"`
	Volume    int64           `json:"volume"`
	Timestamp time.Time       `json:"timestamp"`
}

// ToPricePoint converts one provider bar into the analysis representation.
func (m *MarketData) ToPricePoint() models.PricePoint {
	return models.PricePoint{
		Date:   m.Date.Format("2006-01-02"),
		Open:   m.Open.InexactFloat64(),
		High:   m.High.InexactFloat64(),
		Low:    m.Low.InexactFloat64(),
		Close:  m.Close.InexactFloat64(),
		Volume: m.Volume,
	}
}

// ToPricePoints converts a provider series, sorted chronologically.
func ToPricePoints(bars []*MarketData) []models.PricePoint {
	out := make([]models.PricePoint, 0, len(bars))
	for _, bar := range bars {
		out = append(out, bar.ToPricePoint())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
