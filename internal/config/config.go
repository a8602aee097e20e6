package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"EquitySentinel/internal/calculator"
	"EquitySentinel/internal/strategy"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		Provider      string            `yaml:"provider"` // yahoo | mock
		BaseURL       string            `yaml:"base_url"`
		SymbolSuffix  string            `yaml:"symbol_suffix"`
		Aliases       map[string]string `yaml:"aliases"`
		HistoryRange  string            `yaml:"history_range"`
		Interval      string            `yaml:"interval"`
		CSVRange      string            `yaml:"csv_range"`
		MarketTickers []string          `yaml:"market_tickers"`
		Timeout       time.Duration     `yaml:"timeout"`
		MockPrice     float64           `yaml:"mock_price"`
	} `yaml:"data_source"`
	Indicators calculator.IndicatorParams `yaml:"indicators"`
	Scoring    struct {
		LabelPolicy string              `yaml:"label_policy"`
		Thresholds  strategy.Thresholds `yaml:"thresholds"`
	} `yaml:"scoring"`
	LLM struct {
		APIKey   string        `yaml:"api_key"`
		Model    string        `yaml:"model"`
		BaseURL  string        `yaml:"base_url"`
		Language string        `yaml:"language"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"llm"`
	Schedule struct {
		ScanCron string `yaml:"scan_cron"`
	} `yaml:"schedule"`
	Watchlist struct {
		StateFile string   `yaml:"state_file"`
		Symbols   []string `yaml:"symbols"`
	} `yaml:"watchlist"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Tracing struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"tracing"`
	Proxy string `yaml:"proxy"`
}

// Load reads an optional .env file and the YAML config at path, then applies
// environment variable overrides and defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	cfg.Indicators = calculator.DefaultParams()
	cfg.Scoring.Thresholds = strategy.DefaultThresholds()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("CRON_SCAN"); v != "" {
		cfg.Schedule.ScanCron = v
	}
	if v := os.Getenv("LABEL_POLICY"); v != "" {
		cfg.Scoring.LabelPolicy = v
	}
	if v := os.Getenv("TRACING_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Tracing.Enabled = b
		}
	}
}

var defaultMarketTickers = []string{
	"XU100", "AKBNK", "ARCLK", "ASELS", "BIMAS", "EKGYO", "EREGL", "FROTO", "GARAN", "GOLTS",
	"HEKTS", "ISCTR", "KCHOL", "KOZAL", "KRDMD", "MGROS", "ODAS", "PETKM", "PGSUS", "SAHOL",
	"SASA", "SISE", "TAVHL", "TCELL", "THYAO", "TOASO", "TUPRS", "YKBNK", "HALKB", "VAKBN",
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	ds := &cfg.DataSource
	if ds.Provider == "" {
		ds.Provider = "yahoo"
	}
	if ds.SymbolSuffix == "" {
		ds.SymbolSuffix = ".IS"
	}
	if ds.Aliases == nil {
		ds.Aliases = map[string]string{"XU100": "BIST100"}
	}
	if ds.HistoryRange == "" {
		ds.HistoryRange = "6mo"
	}
	if ds.Interval == "" {
		ds.Interval = "1d"
	}
	if ds.CSVRange == "" {
		ds.CSVRange = "1y"
	}
	if len(ds.MarketTickers) == 0 {
		ds.MarketTickers = defaultMarketTickers
	}
	if ds.Timeout == 0 {
		ds.Timeout = 15 * time.Second
	}
	if ds.MockPrice == 0 {
		ds.MockPrice = 100
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gemini-1.5-flash"
	}
	if cfg.LLM.Language == "" {
		cfg.LLM.Language = "Turkish"
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 30 * time.Second
	}
	if cfg.Schedule.ScanCron == "" {
		cfg.Schedule.ScanCron = "0 0 18 * * 1-5"
	}
	if cfg.Watchlist.StateFile == "" {
		cfg.Watchlist.StateFile = "data/watchlist.json"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/equity_sentinel.db"
	}
}

// LabelPolicy resolves the configured label policy.
func (c *Config) LabelPolicy() (strategy.LabelPolicy, error) {
	return strategy.PolicyByName(c.Scoring.LabelPolicy)
}

// Validate checks that all required fields are consistent.
// Telegram and the LLM key are optional; the features they back are disabled when unset.
func (c *Config) Validate() error {
	if err := c.Indicators.Validate(); err != nil {
		return fmt.Errorf("indicators: %w", err)
	}
	if _, err := c.LabelPolicy(); err != nil {
		return fmt.Errorf("scoring.label_policy: %w", err)
	}
	t := c.Scoring.Thresholds
	if t.RatioMin > t.RatioMax {
		return fmt.Errorf("scoring.thresholds: ratio_min %.2f exceeds ratio_max %.2f", t.RatioMin, t.RatioMax)
	}
	if t.OversoldRSI <= 0 || t.OversoldRSI >= 100 {
		return fmt.Errorf("scoring.thresholds.oversold_rsi must be in (0, 100)")
	}
	switch c.DataSource.Provider {
	case "yahoo", "mock":
	default:
		return fmt.Errorf("data_source.provider %q is not supported", c.DataSource.Provider)
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(c.Schedule.ScanCron); err != nil {
		return fmt.Errorf("schedule.scan_cron: %w", err)
	}
	return nil
}
