package agents

import (
	"fmt"
	"testing"

	"github.com/redreef/alphaflow/internal/models"
)

func trendingPrices(n int, dailyReturn float64) []models.PricePoint {
	out := make([]models.PricePoint, n)
	price := 100.0
	for i := range out {
		price *= 1 + dailyReturn
		out[i] = models.PricePoint{
			Date:  fmt.Sprintf("2024-01-%02d", i%28+1),
			Close: price,
		}
	}
	return out
}

func TestTechnicalSignalTrends(t *testing.T) {
	up := technicalSignal(trendingPrices(120, 0.01))
	if up.Signal != models.SignalBullish {
		t.Errorf("steady uptrend read as %q", up.Signal)
	}
	if up.Confidence <= 0 || up.Confidence > 100 {
		t.Errorf("confidence %v out of range", up.Confidence)
	}

	down := technicalSignal(trendingPrices(120, -0.01))
	if down.Signal != models.SignalBearish {
		t.Errorf("steady downtrend read as %q", down.Signal)
	}
}

func TestTechnicalSignalThinHistory(t *testing.T) {
	sig := technicalSignal(trendingPrices(5, 0.01))
	if sig.Signal != models.SignalNeutral || sig.Confidence != 0 {
		t.Errorf("thin history must be neutral at zero confidence, got %+v", sig)
	}
	if err := sig.Validate(models.CategoryTechnical); err != nil {
		t.Errorf("degraded signal must still validate: %v", err)
	}
}

func TestFundamentalsSignal(t *testing.T) {
	strong := models.FinancialMetrics{
		ReturnOnEquity: 0.25,
		NetMargin:      0.30,
		RevenueGrowth:  0.15,
		EarningsGrowth: 0.20,
		DebtToEquity:   0.30,
		PERatio:        18,
	}
	if sig := fundamentalsSignal(strong); sig.Signal != models.SignalBullish {
		t.Errorf("quality business read as %q", sig.Signal)
	}

	weak := models.FinancialMetrics{
		ReturnOnEquity: -0.05,
		NetMargin:      -0.10,
		RevenueGrowth:  -0.08,
		EarningsGrowth: -0.30,
		DebtToEquity:   3.5,
		PERatio:        80,
	}
	if sig := fundamentalsSignal(weak); sig.Signal != models.SignalBearish {
		t.Errorf("distressed business read as %q", sig.Signal)
	}

	if sig := fundamentalsSignal(models.FinancialMetrics{}); sig.Signal != models.SignalNeutral {
		t.Errorf("empty snapshot read as %q", sig.Signal)
	}
}

func TestSentimentSignal(t *testing.T) {
	bullish := []models.NewsArticle{
		{Title: "Quarterly results beat expectations amid strong growth"},
		{Title: "Shares surge after record revenue"},
		{Title: "Analyst upgrade lifts outlook"},
	}
	if sig := sentimentSignal(bullish); sig.Signal != models.SignalBullish {
		t.Errorf("upbeat headlines read as %q", sig.Signal)
	}

	bearish := []models.NewsArticle{
		{Title: "Company announces layoffs after weak quarter"},
		{Title: "Shares plunge on earnings miss"},
	}
	if sig := sentimentSignal(bearish); sig.Signal != models.SignalBearish {
		t.Errorf("grim headlines read as %q", sig.Signal)
	}

	if sig := sentimentSignal(nil); sig.Signal != models.SignalNeutral || sig.Confidence != 50 {
		t.Errorf("no news must be neutral at 50, got %+v", sig)
	}

	mixed := []models.NewsArticle{
		{Title: "Revenue beats but guidance cut sparks decline"},
		{Title: "Board approves buyback"},
		{Title: "Regulator opens investigation"},
	}
	sig := sentimentSignal(mixed)
	if sig.Confidence < 0 || sig.Confidence > 100 {
		t.Errorf("confidence %v out of range", sig.Confidence)
	}
}

func TestValuationSignal(t *testing.T) {
	// Earnings of 1B at a cheap multiple and decent growth: intrinsic value
	// well above the 10B market cap.
	cheap := models.FinancialMetrics{
		MarketCap:      10e9,
		PERatio:        10,
		EarningsGrowth: 0.10,
	}
	if sig := valuationSignal(cheap); sig.Signal != models.SignalBullish {
		t.Errorf("cheap stock read as %q", sig.Signal)
	}

	expensive := models.FinancialMetrics{
		MarketCap:      100e9,
		PERatio:        90,
		EarningsGrowth: 0.02,
	}
	if sig := valuationSignal(expensive); sig.Signal != models.SignalBearish {
		t.Errorf("expensive stock read as %q", sig.Signal)
	}

	if sig := valuationSignal(models.FinancialMetrics{}); sig.Signal != models.SignalNeutral || sig.Confidence != 0 {
		t.Errorf("missing data must be neutral at zero confidence, got %+v", sig)
	}
}

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"action":"hold"}`, `{"action":"hold"}`},
		{"```json\n{\"action\":\"hold\"}\n```", `{"action":"hold"}`},
		{"```\n{\"action\":\"hold\"}\n```", `{"action":"hold"}`},
	}
	for _, tc := range cases {
		if got := stripCodeFences(tc.in); got != tc.want {
			t.Errorf("%q: got %q", tc.in, got)
		}
	}
}
