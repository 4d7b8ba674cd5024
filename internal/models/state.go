package models

// PipelineState is the mutable local state threaded through the analysis
// graph for one (ticker, window) run. Nodes read what upstream stages left
// behind and set Goto to route the next hop.
type PipelineState struct {
	Ticker    string `json:"ticker"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	NumOfNews int    `json:"num_of_news"`

	Portfolio Portfolio `json:"portfolio"`

	Prices     []PricePoint     `json:"prices"`
	Financials FinancialMetrics `json:"financials"`
	News       []NewsArticle    `json:"news"`

	Signals map[Category]AnalystSignal `json:"signals"`

	Assessment *RiskAssessment  `json:"assessment"`
	Decision   *TradingDecision `json:"decision"`

	ShowReasoning bool   `json:"show_reasoning"`
	Goto          string `json:"goto"`
}

// NewPipelineState seeds a run.
func NewPipelineState(ticker, startDate, endDate string, pf Portfolio, numOfNews int, showReasoning bool) *PipelineState {
	return &PipelineState{
		Ticker:        ticker,
		StartDate:     startDate,
		EndDate:       endDate,
		NumOfNews:     numOfNews,
		Portfolio:     pf,
		Signals:       make(map[Category]AnalystSignal),
		ShowReasoning: showReasoning,
	}
}
