package dataflows

import (
	"fmt"

	"github.com/redreef/alphaflow/internal/models"
)

// Technical indicator helpers over a chronological daily series. Each
// returns one value per bar from the first bar with a full lookback.

// SMA computes the simple moving average of closes over period.
func SMA(prices []models.PricePoint, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("sma period must be positive, got %d", period)
	}
	if len(prices) < period {
		return nil, fmt.Errorf("insufficient data for %d-period sma", period)
	}

	out := make([]float64, 0, len(prices)-period+1)
	sum := 0.0
	for i, p := range prices {
		sum += p.Close
		if i >= period {
			sum -= prices[i-period].Close
		}
		if i >= period-1 {
			out = append(out, sum/float64(period))
		}
	}
	return out, nil
}

// EMA computes the exponential moving average of closes, seeded with the
// simple average of the first period bars.
func EMA(prices []models.PricePoint, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("ema period must be positive, got %d", period)
	}
	if len(prices) < period {
		return nil, fmt.Errorf("insufficient data for %d-period ema", period)
	}

	multiplier := 2.0 / (float64(period) + 1.0)

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += prices[i].Close
	}
	ema := sum / float64(period)

	out := make([]float64, 0, len(prices)-period+1)
	out = append(out, ema)
	for i := period; i < len(prices); i++ {
		ema = prices[i].Close*multiplier + ema*(1-multiplier)
		out = append(out, ema)
	}
	return out, nil
}

// RSI computes the Wilder-smoothed relative strength index.
func RSI(prices []models.PricePoint, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("rsi period must be positive, got %d", period)
	}
	if len(prices) < period+1 {
		return nil, fmt.Errorf("insufficient data for %d-period rsi", period)
	}

	avgGain, avgLoss := 0.0, 0.0
	for i := 1; i <= period; i++ {
		change := prices[i].Close - prices[i-1].Close
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	rsiValue := func() float64 {
		if avgLoss == 0 {
			return 100
		}
		rs := avgGain / avgLoss
		return 100 - 100/(1+rs)
	}

	out := make([]float64, 0, len(prices)-period)
	out = append(out, rsiValue())
	for i := period + 1; i < len(prices); i++ {
		change := prices[i].Close - prices[i-1].Close
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out = append(out, rsiValue())
	}
	return out, nil
}

// MACDResult carries the MACD line, its signal line, and the histogram.
type MACDResult struct {
	Line      []float64
	Signal    []float64
	Histogram []float64
}

// MACD computes the standard 12/26/9 moving average convergence divergence.
func MACD(prices []models.PricePoint) (*MACDResult, error) {
	const fast, slow, signalPeriod = 12, 26, 9

	if len(prices) < slow+signalPeriod {
		return nil, fmt.Errorf("insufficient data for macd, need %d bars", slow+signalPeriod)
	}

	fastEMA, err := EMA(prices, fast)
	if err != nil {
		return nil, err
	}
	slowEMA, err := EMA(prices, slow)
	if err != nil {
		return nil, err
	}

	// Align the fast series to the slow series start.
	offset := len(fastEMA) - len(slowEMA)
	line := make([]float64, len(slowEMA))
	for i := range slowEMA {
		line[i] = fastEMA[i+offset] - slowEMA[i]
	}

	signal := emaOverValues(line, signalPeriod)
	histOffset := len(line) - len(signal)
	hist := make([]float64, len(signal))
	for i := range signal {
		hist[i] = line[i+histOffset] - signal[i]
	}

	return &MACDResult{Line: line, Signal: signal, Histogram: hist}, nil
}

func emaOverValues(values []float64, period int) []float64 {
	multiplier := 2.0 / (float64(period) + 1.0)

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	ema := sum / float64(period)

	out := make([]float64, 0, len(values)-period+1)
	out = append(out, ema)
	for i := period; i < len(values); i++ {
		ema = values[i]*multiplier + ema*(1-multiplier)
		out = append(out, ema)
	}
	return out
}
