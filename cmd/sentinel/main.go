package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"EquitySentinel/internal/collector"
	"EquitySentinel/internal/config"
	"EquitySentinel/internal/llm"
	"EquitySentinel/internal/notifier"
	"EquitySentinel/internal/recorder"
	"EquitySentinel/internal/strategy"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string
	rootCmd := &cobra.Command{
		Use:          "sentinel",
		Short:        "EquitySentinel - RSI/MACD and valuation scoring for equities",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "configuration file path (default $CONFIG_PATH or configs/config.yaml)")

	load := func() (*config.Config, error) {
		path := cfgPath
		if path == "" {
			path = os.Getenv("CONFIG_PATH")
		}
		if path == "" {
			path = "configs/config.yaml"
		}
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("config validation: %w", err)
		}
		return cfg, nil
	}

	rootCmd.AddCommand(newServeCmd(load))
	rootCmd.AddCommand(newAnalyzeCmd(load))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func newAnalyzeCmd(load func() (*config.Config, error)) *cobra.Command {
	var asJSON, noSummary, record bool
	cmd := &cobra.Command{
		Use:   "analyze SYMBOL",
		Short: "Score a symbol once and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			var gemini *llm.GeminiClient
			if !noSummary {
				gemini = newGemini(cfg)
			}
			col, err := newCollector(cfg, gemini)
			if err != nil {
				return err
			}
			a, err := col.Analyze(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if record {
				rec := newRecorder(cfg)
				defer rec.Close()
				if err := rec.RecordAnalysis(recorder.NewAnalysisRecord(a, "cli")); err != nil {
					log.Printf("[ERROR] record analysis: %v", err)
				}
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(a)
			}
			_, err = fmt.Fprint(out, notifier.FormatAnalysis(a))
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the analysis as JSON")
	cmd.Flags().BoolVar(&noSummary, "no-summary", false, "skip the LLM summary")
	cmd.Flags().BoolVar(&record, "record", false, "persist the analysis to the database")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "EquitySentinel %s\n", version)
		},
	}
}

func newGemini(cfg *config.Config) *llm.GeminiClient {
	if cfg.LLM.APIKey == "" {
		log.Println("[WARN] GEMINI_API_KEY not set, AI summary and chat disabled")
		return nil
	}
	return llm.NewGeminiClient(llm.Config{
		APIKey:   cfg.LLM.APIKey,
		Model:    cfg.LLM.Model,
		BaseURL:  cfg.LLM.BaseURL,
		Language: cfg.LLM.Language,
		Timeout:  cfg.LLM.Timeout,
		Proxy:    cfg.Proxy,
	})
}

func newCollector(cfg *config.Config, gemini *llm.GeminiClient) (*collector.Collector, error) {
	policy, err := cfg.LabelPolicy()
	if err != nil {
		return nil, err
	}
	scorer := strategy.NewScorer(cfg.Scoring.Thresholds, policy)

	ds := cfg.DataSource
	var (
		fetcher      collector.Fetcher
		fundamentals collector.FundamentalsSource
	)
	switch ds.Provider {
	case "mock":
		fetcher = &collector.MockFetcher{Price: ds.MockPrice}
		fundamentals = &collector.StaticFundamentals{}
	default:
		fetcher = collector.NewYahooFetcher(ds.BaseURL, cfg.Proxy, ds.Timeout)
		fundamentals = collector.NewEquityFundamentals()
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	opts := collector.DefaultOptions()
	opts.SymbolSuffix = ds.SymbolSuffix
	opts.Aliases = ds.Aliases
	opts.HistoryRange = ds.HistoryRange
	opts.Interval = ds.Interval
	opts.CSVRange = ds.CSVRange
	opts.MarketTickers = ds.MarketTickers

	// A nil *GeminiClient must not become a non-nil Summarizer.
	var summarizer collector.Summarizer
	if gemini != nil {
		summarizer = gemini
	}
	return collector.NewCollector(fetcher, fundamentals, summarizer, scorer, cfg.Indicators, opts), nil
}

func newRecorder(cfg *config.Config) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	return sr
}
