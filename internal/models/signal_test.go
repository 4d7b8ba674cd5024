package models

import (
	"errors"
	"testing"
)

func validSignals() map[Category]AnalystSignal {
	return map[Category]AnalystSignal{
		CategoryTechnical:   {Signal: SignalBullish, Confidence: 80},
		CategoryFundamental: {Signal: SignalNeutral, Confidence: 55},
		CategorySentiment:   {Signal: SignalBearish, Confidence: 40},
		CategoryValuation:   {Signal: SignalNeutral, Confidence: 60},
	}
}

func TestValidateSignals(t *testing.T) {
	if err := ValidateSignals(validSignals()); err != nil {
		t.Fatalf("valid set rejected: %v", err)
	}

	t.Run("missing category", func(t *testing.T) {
		signals := validSignals()
		delete(signals, CategorySentiment)
		err := ValidateSignals(signals)
		var malformed *MalformedSignalError
		if !errors.As(err, &malformed) {
			t.Fatalf("err = %v, want MalformedSignalError", err)
		}
		if malformed.Category != CategorySentiment {
			t.Errorf("error names %q, want sentiment", malformed.Category)
		}
	})

	t.Run("unknown direction", func(t *testing.T) {
		signals := validSignals()
		signals[CategoryTechnical] = AnalystSignal{Signal: "sideways", Confidence: 80}
		if err := ValidateSignals(signals); err == nil {
			t.Error("unknown direction accepted")
		}
	})

	t.Run("confidence out of range", func(t *testing.T) {
		signals := validSignals()
		signals[CategoryValuation] = AnalystSignal{Signal: SignalBullish, Confidence: 101}
		if err := ValidateSignals(signals); err == nil {
			t.Error("confidence 101 accepted")
		}
		signals[CategoryValuation] = AnalystSignal{Signal: SignalBullish, Confidence: -1}
		if err := ValidateSignals(signals); err == nil {
			t.Error("confidence -1 accepted")
		}
	})

	t.Run("boundary confidences pass", func(t *testing.T) {
		signals := validSignals()
		signals[CategoryTechnical] = AnalystSignal{Signal: SignalBullish, Confidence: 0}
		signals[CategoryValuation] = AnalystSignal{Signal: SignalBearish, Confidence: 100}
		if err := ValidateSignals(signals); err != nil {
			t.Errorf("boundary confidences rejected: %v", err)
		}
	})
}

func TestParseSignal(t *testing.T) {
	sig, err := ParseSignal(CategoryTechnical, []byte(`{"signal":"bullish","confidence":72.5,"extra":"ignored"}`))
	if err != nil {
		t.Fatal(err)
	}
	if sig.Signal != SignalBullish || sig.Confidence != 72.5 {
		t.Errorf("parsed %+v", sig)
	}

	cases := []struct {
		name    string
		payload string
	}{
		{"truncated json", `{"signal":"bullish"`},
		{"not json at all", `the market looks bullish to me`},
		{"wrong direction", `{"signal":"strong buy","confidence":90}`},
		{"confidence too high", `{"signal":"bearish","confidence":250}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSignal(CategorySentiment, []byte(tc.payload))
			var malformed *MalformedSignalError
			if !errors.As(err, &malformed) {
				t.Fatalf("err = %v, want MalformedSignalError", err)
			}
			if malformed.Category != CategorySentiment {
				t.Errorf("error names %q, want sentiment", malformed.Category)
			}
		})
	}
}

func TestParseTradingDecision(t *testing.T) {
	d, err := ParseTradingDecision([]byte(`{
		"action": "buy",
		"quantity": 120,
		"confidence": 65,
		"agent_signals": [{"agent": "technical_analyst", "signal": "bullish", "confidence": 80}],
		"reasoning": "momentum confirmed"
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if d.Action != "buy" || d.Quantity != 120 || len(d.AgentSignals) != 1 {
		t.Errorf("parsed %+v", d)
	}

	bad := []string{
		`{"action":"short","quantity":10,"confidence":50}`,
		`{"action":"buy","quantity":-5,"confidence":50}`,
		`{"action":"buy","quantity":10,"confidence":150}`,
		`not even json`,
	}
	for _, payload := range bad {
		if _, err := ParseTradingDecision([]byte(payload)); err == nil {
			t.Errorf("payload accepted: %s", payload)
		}
	}
}
