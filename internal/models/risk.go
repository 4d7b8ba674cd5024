package models

import (
	"encoding/json"
	"math"
)

// Stress-test scenario names.
const (
	ScenarioMarketCrash     = "market_crash"
	ScenarioModerateDecline = "moderate_decline"
	ScenarioSlightDecline   = "slight_decline"
)

// StressTestResult is the projected outcome of one decline scenario.
// PortfolioImpact is NaN when the portfolio has no value to impact.
type StressTestResult struct {
	PotentialLoss   float64 `json:"potential_loss"`
	PortfolioImpact float64 `json:"portfolio_impact"`
}

// RiskMetrics is the derived per-security risk picture. Metrics that cannot
// be computed from the available history are NaN, not zero: downstream
// consumers must treat NaN as "risk unknown".
type RiskMetrics struct {
	Volatility        float64                     `json:"volatility"`
	ValueAtRisk95     float64                     `json:"value_at_risk_95"`
	MaxDrawdown       float64                     `json:"max_drawdown"`
	MarketRiskScore   int                         `json:"market_risk_score"`
	StressTestResults map[string]StressTestResult `json:"stress_test_results"`
}

// RiskAssessment is the risk manager's terminal output for one security.
type RiskAssessment struct {
	MaxPositionSize float64     `json:"max_position_size"`
	RiskScore       int         `json:"risk_score"`
	TradingAction   string      `json:"trading_action"`
	RiskMetrics     RiskMetrics `json:"risk_metrics"`
	Reasoning       string      `json:"reasoning"`
}

// nullableFloat marshals NaN as JSON null. encoding/json rejects NaN
// outright, and the assessment has to survive serialization into the
// portfolio manager's prompt with its unknowns intact.
type nullableFloat float64

func (f nullableFloat) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(f)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(f))
}

func (f *nullableFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = nullableFloat(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = nullableFloat(v)
	return nil
}

type stressTestResultJSON struct {
	PotentialLoss   nullableFloat `json:"potential_loss"`
	PortfolioImpact nullableFloat `json:"portfolio_impact"`
}

func (r StressTestResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(stressTestResultJSON{
		PotentialLoss:   nullableFloat(r.PotentialLoss),
		PortfolioImpact: nullableFloat(r.PortfolioImpact),
	})
}

func (r *StressTestResult) UnmarshalJSON(data []byte) error {
	var raw stressTestResultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.PotentialLoss = float64(raw.PotentialLoss)
	r.PortfolioImpact = float64(raw.PortfolioImpact)
	return nil
}

type riskMetricsJSON struct {
	Volatility        nullableFloat               `json:"volatility"`
	ValueAtRisk95     nullableFloat               `json:"value_at_risk_95"`
	MaxDrawdown       nullableFloat               `json:"max_drawdown"`
	MarketRiskScore   int                         `json:"market_risk_score"`
	StressTestResults map[string]StressTestResult `json:"stress_test_results"`
}

func (m RiskMetrics) MarshalJSON() ([]byte, error) {
	return json.Marshal(riskMetricsJSON{
		Volatility:        nullableFloat(m.Volatility),
		ValueAtRisk95:     nullableFloat(m.ValueAtRisk95),
		MaxDrawdown:       nullableFloat(m.MaxDrawdown),
		MarketRiskScore:   m.MarketRiskScore,
		StressTestResults: m.StressTestResults,
	})
}

func (m *RiskMetrics) UnmarshalJSON(data []byte) error {
	var raw riskMetricsJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.Volatility = float64(raw.Volatility)
	m.ValueAtRisk95 = float64(raw.ValueAtRisk95)
	m.MaxDrawdown = float64(raw.MaxDrawdown)
	m.MarketRiskScore = raw.MarketRiskScore
	m.StressTestResults = raw.StressTestResults
	return nil
}
