package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"

	"github.com/redreef/alphaflow/internal/dates"
	"github.com/redreef/alphaflow/internal/models"
)

var tickerRe = regexp.MustCompile(`^[A-Z0-9.-]+$`)

// PromptForTicker prompts the user for a stock ticker symbol.
func PromptForTicker() (string, error) {
	var ticker string
	prompt := &survey.Input{
		Message: "Enter the stock ticker symbol (e.g., AAPL, MSFT, NVDA):",
		Help:    "Enter a valid stock ticker symbol for analysis",
	}

	err := survey.AskOne(prompt, &ticker, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(strings.ToUpper(val.(string)))
		if len(str) == 0 {
			return fmt.Errorf("ticker symbol cannot be empty")
		}
		if len(str) > 10 {
			return fmt.Errorf("ticker symbol too long (max 10 characters)")
		}
		if !tickerRe.MatchString(str) {
			return fmt.Errorf("invalid ticker format (use letters, numbers, dots, and hyphens only)")
		}
		return nil
	}))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(strings.ToUpper(ticker)), nil
}

// PromptForDateRange prompts for the optional analysis window bounds. Empty
// answers are returned as empty strings so the window resolver applies its
// defaults.
func PromptForDateRange() (startDate, endDate string, err error) {
	endPrompt := &survey.Input{
		Message: "Window end date (YYYY-MM-DD, or press Enter for yesterday):",
		Help:    "The last trading day of the analysis window. Leave empty for yesterday.",
	}
	if err := survey.AskOne(endPrompt, &endDate, survey.WithValidator(dateValidator)); err != nil {
		return "", "", err
	}
	endDate = strings.TrimSpace(endDate)

	startPrompt := &survey.Input{
		Message: "Window start date (YYYY-MM-DD, or press Enter for one year before):",
		Help:    "The first trading day of the analysis window. Leave empty for one year before the end date.",
	}
	if err := survey.AskOne(startPrompt, &startDate, survey.WithValidator(dateValidator)); err != nil {
		return "", "", err
	}
	startDate = strings.TrimSpace(startDate)

	// Surface ordering mistakes immediately instead of at run time.
	if _, err := dates.Resolve(startDate, endDate, time.Now()); err != nil {
		return "", "", err
	}

	return startDate, endDate, nil
}

func dateValidator(val interface{}) error {
	str := strings.TrimSpace(val.(string))
	if str == "" {
		return nil
	}
	if _, err := time.Parse(dates.Layout, str); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

// PromptForPortfolio prompts for the starting cash and share position.
func PromptForPortfolio() (models.Portfolio, error) {
	var cashStr string
	cashPrompt := &survey.Input{
		Message: "Starting cash position:",
		Default: "100000",
	}
	err := survey.AskOne(cashPrompt, &cashStr, survey.WithValidator(func(val interface{}) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(val.(string)), 64)
		if err != nil {
			return fmt.Errorf("enter a number")
		}
		if v < 0 {
			return fmt.Errorf("cash cannot be negative")
		}
		return nil
	}))
	if err != nil {
		return models.Portfolio{}, err
	}

	var stockStr string
	stockPrompt := &survey.Input{
		Message: "Starting share count:",
		Default: "0",
	}
	err = survey.AskOne(stockPrompt, &stockStr, survey.WithValidator(func(val interface{}) error {
		v, err := strconv.ParseInt(strings.TrimSpace(val.(string)), 10, 64)
		if err != nil {
			return fmt.Errorf("enter a whole number")
		}
		if v < 0 {
			return fmt.Errorf("share count cannot be negative")
		}
		return nil
	}))
	if err != nil {
		return models.Portfolio{}, err
	}

	cash, _ := strconv.ParseFloat(strings.TrimSpace(cashStr), 64)
	stock, _ := strconv.ParseInt(strings.TrimSpace(stockStr), 10, 64)
	return models.Portfolio{Cash: cash, Stock: stock}, nil
}

// PromptForNumOfNews prompts for the number of headlines to feed the
// sentiment analyst.
func PromptForNumOfNews() (int, error) {
	var numStr string
	prompt := &survey.Input{
		Message: "Number of news headlines for sentiment analysis (1-100):",
		Default: "5",
	}
	err := survey.AskOne(prompt, &numStr, survey.WithValidator(func(val interface{}) error {
		v, err := strconv.Atoi(strings.TrimSpace(val.(string)))
		if err != nil {
			return fmt.Errorf("enter a whole number")
		}
		if v < 1 || v > 100 {
			return fmt.Errorf("must be between 1 and 100")
		}
		return nil
	}))
	if err != nil {
		return 0, err
	}

	return strconv.Atoi(strings.TrimSpace(numStr))
}

// PromptForShowReasoning asks whether to print each analyst signal.
func PromptForShowReasoning() (bool, error) {
	show := false
	prompt := &survey.Confirm{
		Message: "Show each analyst's reasoning during the run?",
		Default: false,
	}
	err := survey.AskOne(prompt, &show)
	return show, err
}

// PromptToContinue asks whether to analyze another ticker.
func PromptToContinue() (bool, error) {
	again := true
	prompt := &survey.Confirm{
		Message: "Analyze another ticker?",
		Default: true,
	}
	err := survey.AskOne(prompt, &again)
	return again, err
}
