package models

// PricePoint is one daily bar of price history. The series handed to the
// risk engine is chronological with no duplicate dates.
type PricePoint struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// Closes extracts the close series in order.
func Closes(prices []PricePoint) []float64 {
	out := make([]float64, len(prices))
	for i, p := range prices {
		out[i] = p.Close
	}
	return out
}

// LatestClose returns the most recent close, or 0 for an empty series.
func LatestClose(prices []PricePoint) float64 {
	if len(prices) == 0 {
		return 0
	}
	return prices[len(prices)-1].Close
}

// FinancialMetrics is the fundamentals snapshot consumed by the
// fundamentals and valuation analysts.
type FinancialMetrics struct {
	MarketCap         float64 `json:"market_cap"`
	PERatio           float64 `json:"pe_ratio"`
	PBRatio           float64 `json:"pb_ratio"`
	ReturnOnEquity    float64 `json:"return_on_equity"`
	NetMargin         float64 `json:"net_margin"`
	RevenueGrowth     float64 `json:"revenue_growth"`
	EarningsPerShare  float64 `json:"earnings_per_share"`
	EarningsGrowth    float64 `json:"earnings_growth"`
	DebtToEquity      float64 `json:"debt_to_equity"`
	FreeCashFlowYield float64 `json:"free_cash_flow_yield"`
}

// NewsArticle is a headline handed to the sentiment analyst.
type NewsArticle struct {
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Source      string `json:"source"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
}
