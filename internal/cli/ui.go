package cli

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/redreef/alphaflow/internal/dates"
	"github.com/redreef/alphaflow/internal/models"
	"github.com/redreef/alphaflow/internal/storage/sqlite"
)

// UI styles
var (
	bannerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		Align(lipgloss.Center).
		Width(72).
		MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3B82F6")).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3B82F6")).
		Padding(0, 2).
		Width(72)

	panelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#10B981")).
		Padding(1, 2).
		Width(72)

	panelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#10B981"))

	buyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#10B981"))

	sellStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#EF4444"))

	holdStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#F59E0B"))

	dimStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280"))
)

// DisplayWelcomeBanner shows the welcome banner.
func DisplayWelcomeBanner() {
	fmt.Println(bannerStyle.Render("AlphaFlow"))
	fmt.Println(dimStyle.Align(lipgloss.Center).Width(72).
		Render("Multi-analyst trading decision pipeline"))
	fmt.Println()
}

// DisplayRunHeader shows the run parameters before the pipeline starts.
func DisplayRunHeader(symbol string, window dates.Window) {
	header := fmt.Sprintf("Analysis: %s | Window: %s to %s", symbol, window.Start, window.End)
	fmt.Println(headerStyle.Render(header))
}

// DisplayRunResult renders the analyst signals, the risk assessment, and the
// final trading decision of a completed run.
func DisplayRunResult(state *models.PipelineState) {
	fmt.Println()
	fmt.Println(renderSignalsPanel(state))
	if state.Assessment != nil {
		fmt.Println(renderAssessmentPanel(state.Assessment))
	}
	if state.Decision != nil {
		fmt.Println(renderDecisionPanel(state.Decision))
	}
}

func renderSignalsPanel(state *models.PipelineState) string {
	var content strings.Builder
	content.WriteString(panelTitleStyle.Render("Analyst Signals"))
	content.WriteString("\n\n")

	for _, cat := range models.Categories {
		sig, ok := state.Signals[cat]
		if !ok {
			continue
		}
		content.WriteString(fmt.Sprintf("%-14s %s (confidence %.0f%%)\n",
			string(cat)+":", styleForSignal(string(sig.Signal)), sig.Confidence))
	}

	return panelStyle.Render(strings.TrimRight(content.String(), "\n"))
}

func renderAssessmentPanel(a *models.RiskAssessment) string {
	var content strings.Builder
	content.WriteString(panelTitleStyle.Render("Risk Assessment"))
	content.WriteString("\n\n")

	content.WriteString(fmt.Sprintf("Risk Score:        %d / 10\n", a.RiskScore))
	content.WriteString(fmt.Sprintf("Trading Action:    %s\n", styleForSignal(a.TradingAction)))
	content.WriteString(fmt.Sprintf("Max Position Size: $%.2f\n", a.MaxPositionSize))
	content.WriteString("\n")
	content.WriteString(fmt.Sprintf("Volatility (ann.): %s\n", formatMetric(a.RiskMetrics.Volatility)))
	content.WriteString(fmt.Sprintf("VaR 95%%:           %s\n", formatMetric(a.RiskMetrics.ValueAtRisk95)))
	content.WriteString(fmt.Sprintf("Max Drawdown:      %s\n", formatMetric(a.RiskMetrics.MaxDrawdown)))

	if len(a.RiskMetrics.StressTestResults) > 0 {
		content.WriteString("\nStress Tests:\n")
		scenarios := make([]string, 0, len(a.RiskMetrics.StressTestResults))
		for name := range a.RiskMetrics.StressTestResults {
			scenarios = append(scenarios, name)
		}
		sort.Strings(scenarios)
		for _, name := range scenarios {
			r := a.RiskMetrics.StressTestResults[name]
			content.WriteString(fmt.Sprintf("  %-18s loss %s, impact %s\n",
				name, formatLoss(r.PotentialLoss), formatMetric(r.PortfolioImpact)))
		}
	}

	return panelStyle.Render(strings.TrimRight(content.String(), "\n"))
}

func renderDecisionPanel(d *models.TradingDecision) string {
	var content strings.Builder
	content.WriteString(panelTitleStyle.Render("Trading Decision"))
	content.WriteString("\n\n")

	content.WriteString(fmt.Sprintf("Action:     %s\n", styleForSignal(d.Action)))
	content.WriteString(fmt.Sprintf("Quantity:   %d shares\n", d.Quantity))
	content.WriteString(fmt.Sprintf("Confidence: %.0f%%\n", d.Confidence*100))

	if len(d.AgentSignals) > 0 {
		content.WriteString("\nSignals considered:\n")
		for _, s := range d.AgentSignals {
			content.WriteString(fmt.Sprintf("  %-28s %s (%.0f%%)\n",
				s.Agent, s.Signal, s.Confidence*100))
		}
	}

	if d.Reasoning != "" {
		content.WriteString("\n")
		content.WriteString(d.Reasoning)
	}

	return panelStyle.Render(strings.TrimRight(content.String(), "\n"))
}

// DisplayRunHistory prints stored runs as a table.
func DisplayRunHistory(runs []sqlite.RunRecord) {
	if len(runs) == 0 {
		fmt.Println(dimStyle.Render("No runs recorded yet."))
		return
	}

	fmt.Printf("%-8s %-12s %-12s %6s %-8s %-8s %10s\n",
		"TICKER", "START", "END", "RISK", "RISK ACT", "DECISION", "QUANTITY")
	fmt.Println(strings.Repeat("-", 72))
	for _, run := range runs {
		fmt.Printf("%-8s %-12s %-12s %6d %-8s %-8s %10d\n",
			run.Ticker, run.StartDate, run.EndDate,
			run.RiskScore, run.TradingAction,
			run.DecisionAction, run.DecisionQuantity)
	}
}

func styleForSignal(signal string) string {
	switch strings.ToLower(signal) {
	case "buy", "bullish":
		return buyStyle.Render(signal)
	case "sell", "bearish", "reduce":
		return sellStyle.Render(signal)
	default:
		return holdStyle.Render(signal)
	}
}

// formatMetric renders a ratio metric as a percentage, with NaN shown as
// unavailable rather than zero.
func formatMetric(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", v*100)
}

func formatLoss(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("$%.2f", v)
}
