package models

import (
	"encoding/json"
	"fmt"
)

// AgentSignalEntry echoes one analyst's input inside the final decision.
type AgentSignalEntry struct {
	Agent      string  `json:"agent"`
	Signal     Signal  `json:"signal"`
	Confidence float64 `json:"confidence"`
}

// TradingDecision is the portfolio manager's final call for one security.
type TradingDecision struct {
	Action       string             `json:"action"`
	Quantity     int64              `json:"quantity"`
	Confidence   float64            `json:"confidence"`
	AgentSignals []AgentSignalEntry `json:"agent_signals"`
	Reasoning    string             `json:"reasoning"`
}

// ParseTradingDecision strictly decodes the completion payload returned by
// the portfolio manager model. The model either returns a valid decision or
// the run fails; partially parsed output is never accepted.
func ParseTradingDecision(payload []byte) (*TradingDecision, error) {
	var d TradingDecision
	if err := json.Unmarshal(payload, &d); err != nil {
		return nil, fmt.Errorf("decode trading decision: %w", err)
	}
	switch d.Action {
	case "buy", "sell", "hold":
	default:
		return nil, fmt.Errorf("trading decision has invalid action %q", d.Action)
	}
	if d.Quantity < 0 {
		return nil, fmt.Errorf("trading decision has negative quantity %d", d.Quantity)
	}
	if d.Confidence < 0 || d.Confidence > 100 {
		return nil, fmt.Errorf("trading decision confidence %.2f outside [0,100]", d.Confidence)
	}
	return &d, nil
}
