package consts

// Pipeline node names.
const (
	MarketData          = "market_data"
	TechnicalAnalyst    = "technical_analyst"
	FundamentalsAnalyst = "fundamentals_analyst"
	SentimentAnalyst    = "sentiment_analyst"
	ValuationAnalyst    = "valuation_analyst"
	RiskManager         = "risk_manager"
	PortfolioManager    = "portfolio_manager"
)

// Display names used in rendered output.
const (
	Agent_TechnicalAnalyst    = "Technical Analyst"
	Agent_FundamentalsAnalyst = "Fundamentals Analyst"
	Agent_SentimentAnalyst    = "Sentiment Analyst"
	Agent_ValuationAnalyst    = "Valuation Analyst"
	Agent_RiskManager         = "Risk Manager"
	Agent_PortfolioManager    = "Portfolio Manager"
)
