package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/redreef/alphaflow/internal/config"
	"github.com/redreef/alphaflow/internal/dataflows"
	"github.com/redreef/alphaflow/internal/dates"
	"github.com/redreef/alphaflow/internal/debug"
	"github.com/redreef/alphaflow/internal/graph"
	"github.com/redreef/alphaflow/internal/llm"
	"github.com/redreef/alphaflow/internal/models"
	"github.com/redreef/alphaflow/internal/storage/sqlite"
)

const version = "1.0.0"

// analyzeOptions collects the flag values of the analyze command.
type analyzeOptions struct {
	StartDate       string
	EndDate         string
	NumOfNews       int
	InitialCapital  float64
	InitialPosition int64
	ShowReasoning   bool
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "alphaflow",
		Short: "AlphaFlow - multi-analyst trading decision pipeline",
		Long: `AlphaFlow runs a multi-stage analysis pipeline for a stock ticker:
market data collection, four parallel analyst signals, a quantitative
risk assessment, and a final LLM portfolio decision.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debugFlag, _ := cmd.Flags().GetBool("debug"); debugFlag {
				cfg.Debug = true
			}
			if cfg.Debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("failed to create directories: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractiveMode(cfg)
		},
	}

	rootCmd.AddCommand(newAnalyzeCmd(cfg))
	rootCmd.AddCommand(newHistoryCmd(cfg))
	rootCmd.AddCommand(newConfigCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	return rootCmd
}

// newAnalyzeCmd creates the analyze command.
func newAnalyzeCmd(cfg *config.Config) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze [TICKER]",
		Short: "Run the decision pipeline for a stock ticker",
		Long: `Run the full analysis pipeline for a given stock ticker symbol.
Example: alphaflow analyze AAPL --end-date=2024-03-15`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyzeCommand(cfg, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.StartDate, "start-date", "", "Window start in YYYY-MM-DD format (defaults to one year before end)")
	cmd.Flags().StringVar(&opts.EndDate, "end-date", "", "Window end in YYYY-MM-DD format (defaults to yesterday)")
	cmd.Flags().IntVar(&opts.NumOfNews, "num-of-news", 5, "Number of news headlines for sentiment analysis (1-100)")
	cmd.Flags().Float64Var(&opts.InitialCapital, "initial-capital", 100000, "Starting cash position")
	cmd.Flags().Int64Var(&opts.InitialPosition, "initial-position", 0, "Starting share count")
	cmd.Flags().BoolVar(&opts.ShowReasoning, "show-reasoning", false, "Print each analyst's signal as it is produced")

	return cmd
}

// runAnalyzeCommand executes the main analysis workflow.
func runAnalyzeCommand(cfg *config.Config, ticker string, opts *analyzeOptions) error {
	ctx := context.Background()

	if err := dataflows.ValidateSymbol(ticker); err != nil {
		return err
	}
	symbol := dataflows.NormalizeSymbol(ticker)
	if opts.NumOfNews < 1 || opts.NumOfNews > 100 {
		return fmt.Errorf("num-of-news must be between 1 and 100, got %d", opts.NumOfNews)
	}
	if opts.InitialCapital < 0 {
		return fmt.Errorf("initial-capital cannot be negative")
	}
	if opts.InitialPosition < 0 {
		return fmt.Errorf("initial-position cannot be negative")
	}

	window, err := dates.Resolve(opts.StartDate, opts.EndDate, time.Now())
	if err != nil {
		return err
	}

	if err := debug.Start(ctx, cfg); err != nil {
		log.Warn().Err(err).Msg("Eino debug server unavailable, continuing without it")
	}

	chatModel, err := llm.NewChatModel(ctx, cfg)
	if err != nil {
		return err
	}

	provider := dataflows.NewProvider(cfg)
	defer provider.Close()

	DisplayRunHeader(symbol, window)

	pipeline := graph.NewPipeline(cfg, provider, chatModel)
	state, err := pipeline.Propagate(ctx, graph.RunParams{
		Ticker:    symbol,
		StartDate: window.Start,
		EndDate:   window.End,
		NumOfNews: opts.NumOfNews,
		Portfolio: models.Portfolio{
			Cash:  opts.InitialCapital,
			Stock: opts.InitialPosition,
		},
		ShowReasoning: opts.ShowReasoning,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	DisplayRunResult(state)

	if err := saveRun(ctx, cfg, state); err != nil {
		log.Warn().Err(err).Msg("Failed to persist run history")
	}

	return nil
}

// saveRun records a completed pipeline run in the local history database.
func saveRun(ctx context.Context, cfg *config.Config, state *models.PipelineState) error {
	store, err := sqlite.Open(historyDBPath(cfg))
	if err != nil {
		return err
	}
	defer store.Close()

	runID := fmt.Sprintf("%s_%s_%d", state.Ticker, state.EndDate, time.Now().UnixNano())
	return store.SaveRun(ctx, runID, state)
}

func historyDBPath(cfg *config.Config) string {
	return filepath.Join(cfg.DataDir, "alphaflow.db")
}

// newHistoryCmd creates the history command.
func newHistoryCmd(cfg *config.Config) *cobra.Command {
	var ticker string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent pipeline runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := sqlite.Open(historyDBPath(cfg))
			if err != nil {
				return fmt.Errorf("open run history: %w", err)
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), ticker, limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}

			DisplayRunHistory(runs)
			return nil
		},
	}

	cmd.Flags().StringVar(&ticker, "ticker", "", "Only show runs for this ticker")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")

	return cmd
}

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("AlphaFlow v%s\n", version)
			fmt.Println("Multi-analyst trading decision pipeline")
		},
	}
}

// newConfigCmd creates the config command.
func newConfigCmd(cfg *config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "Inspect and validate AlphaFlow configuration",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Run: func(cmd *cobra.Command, args []string) {
			showConfig(cfg)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateConfig(cfg)
		},
	})

	return configCmd
}

// showConfig displays the current configuration.
func showConfig(cfg *config.Config) {
	fmt.Println("Current AlphaFlow configuration:")
	fmt.Println("================================")
	fmt.Printf("Project Directory:    %s\n", cfg.ProjectDir)
	fmt.Printf("Results Directory:    %s\n", cfg.ResultsDir)
	fmt.Printf("Data Directory:       %s\n", cfg.DataDir)
	fmt.Printf("Cache Directory:      %s\n", cfg.DataCacheDir)
	fmt.Println()
	fmt.Printf("LLM Provider:         %s\n", cfg.LLMProvider)
	fmt.Printf("Model Name:           %s\n", cfg.ModelName)
	if cfg.BackendURL != "" {
		fmt.Printf("Backend URL:          %s\n", cfg.BackendURL)
	}
	fmt.Printf("Max Recursion Limit:  %d\n", cfg.MaxRecurLimit)
	fmt.Println()
	fmt.Printf("Cache Enabled:        %t\n", cfg.CacheEnabled)
	fmt.Printf("Debug Mode:           %t\n", cfg.Debug)
	fmt.Printf("Eino Debug:           %t\n", cfg.EinoDebugEnabled)
	if cfg.EinoDebugEnabled {
		fmt.Printf("Eino Debug Port:      %d\n", cfg.EinoDebugPort)
		fmt.Printf("Debug URL:            http://localhost:%d\n", cfg.EinoDebugPort)
	}
	fmt.Println()

	fmt.Println("API configuration:")
	fmt.Println("------------------")
	fmt.Printf("Finnhub API:          %s\n", configuredMark(cfg.FinnhubAPIKey != ""))
	fmt.Printf("Longport API:         %s\n", configuredMark(cfg.HasLongportCredentials()))
	fmt.Printf("OpenAI API:           %s\n", configuredMark(cfg.OpenAIAPIKey != ""))
	fmt.Printf("DeepSeek API:         %s\n", configuredMark(cfg.DeepSeekAPIKey != ""))
}

func configuredMark(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

// validateConfig validates the configuration and credentials.
func validateConfig(cfg *config.Config) error {
	fmt.Println("Validating AlphaFlow configuration...")

	fmt.Print("Checking directories... ")
	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Println("FAIL")
		return fmt.Errorf("directory validation failed: %w", err)
	}
	fmt.Println("ok")

	fmt.Print("Checking configuration values... ")
	if err := cfg.Validate(); err != nil {
		fmt.Println("FAIL")
		return err
	}
	fmt.Println("ok")

	var warnings []string
	if err := cfg.RequireLLMCredentials(); err != nil {
		warnings = append(warnings, err.Error())
	}
	if cfg.FinnhubAPIKey == "" {
		warnings = append(warnings, "Finnhub API key not configured, news falls back to the web scraper")
	}
	if !cfg.HasLongportCredentials() {
		warnings = append(warnings, "Longport credentials not configured, prices come from Yahoo Finance")
	}

	fmt.Println()
	if len(warnings) == 0 {
		fmt.Println("Configuration validation completed successfully.")
	} else {
		fmt.Printf("Configuration validation completed with %d warnings:\n", len(warnings))
		for _, warning := range warnings {
			fmt.Printf("  - %s\n", warning)
		}
	}

	return nil
}

// runInteractiveMode walks the user through a run with prompts.
func runInteractiveMode(cfg *config.Config) error {
	DisplayWelcomeBanner()

	for {
		symbol, err := PromptForTicker()
		if err != nil {
			return err
		}

		startDate, endDate, err := PromptForDateRange()
		if err != nil {
			return err
		}

		portfolio, err := PromptForPortfolio()
		if err != nil {
			return err
		}

		numOfNews, err := PromptForNumOfNews()
		if err != nil {
			return err
		}

		showReasoning, err := PromptForShowReasoning()
		if err != nil {
			return err
		}

		err = runAnalyzeCommand(cfg, symbol, &analyzeOptions{
			StartDate:       startDate,
			EndDate:         endDate,
			NumOfNews:       numOfNews,
			InitialCapital:  portfolio.Cash,
			InitialPosition: portfolio.Stock,
			ShowReasoning:   showReasoning,
		})
		if err != nil {
			fmt.Printf("Analysis failed: %v\n\n", err)
		}

		again, err := PromptToContinue()
		if err != nil || !again {
			fmt.Println("Goodbye.")
			return err
		}
		fmt.Println()
	}
}
