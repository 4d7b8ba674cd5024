package models

import (
	"encoding/json"
	"fmt"
)

// Signal is the direction an analyst reads from the market.
type Signal string

const (
	SignalBullish Signal = "bullish"
	SignalBearish Signal = "bearish"
	SignalNeutral Signal = "neutral"
)

// Category names one of the four upstream analysts.
type Category string

const (
	CategoryTechnical   Category = "technical"
	CategoryFundamental Category = "fundamental"
	CategorySentiment   Category = "sentiment"
	CategoryValuation   Category = "valuation"
)

// Categories lists the four analyst categories in pipeline order.
var Categories = []Category{
	CategoryTechnical,
	CategoryFundamental,
	CategorySentiment,
	CategoryValuation,
}

// AnalystSignal is one analyst's verdict: a direction plus a confidence
// in [0,100].
type AnalystSignal struct {
	Signal     Signal  `json:"signal"`
	Confidence float64 `json:"confidence"`
}

// MalformedSignalError reports an upstream signal that is structurally
// broken: missing, carrying an unknown direction, or with a confidence
// outside [0,100]. Bad signals are rejected rather than defaulted; masking
// one as neutral would silently distort the risk score.
type MalformedSignalError struct {
	Category Category
	Reason   string
}

func (e *MalformedSignalError) Error() string {
	return fmt.Sprintf("malformed %s signal: %s", e.Category, e.Reason)
}

// Validate checks the signal's structure for one category.
func (s AnalystSignal) Validate(cat Category) error {
	switch s.Signal {
	case SignalBullish, SignalBearish, SignalNeutral:
	default:
		return &MalformedSignalError{Category: cat, Reason: fmt.Sprintf("unknown signal value %q", s.Signal)}
	}
	if s.Confidence < 0 || s.Confidence > 100 {
		return &MalformedSignalError{Category: cat, Reason: fmt.Sprintf("confidence %.2f outside [0,100]", s.Confidence)}
	}
	return nil
}

// ValidateSignals checks that all four categories are present and well
// formed.
func ValidateSignals(signals map[Category]AnalystSignal) error {
	for _, cat := range Categories {
		sig, ok := signals[cat]
		if !ok {
			return &MalformedSignalError{Category: cat, Reason: "signal missing"}
		}
		if err := sig.Validate(cat); err != nil {
			return err
		}
	}
	return nil
}

// ParseSignal decodes one analyst message into an AnalystSignal. The parse
// is strict: unknown fields in the payload are tolerated, but a payload that
// fails to decode, or decodes into an invalid signal, is a
// MalformedSignalError. There is no lax fallback parse.
func ParseSignal(cat Category, payload []byte) (AnalystSignal, error) {
	var sig AnalystSignal
	if err := json.Unmarshal(payload, &sig); err != nil {
		return AnalystSignal{}, &MalformedSignalError{Category: cat, Reason: fmt.Sprintf("undecodable payload: %v", err)}
	}
	if err := sig.Validate(cat); err != nil {
		return AnalystSignal{}, err
	}
	return sig, nil
}
