// Package config loads the YAML configuration with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Log        Log        `yaml:"log"`
	Analysis   Analysis   `yaml:"analysis"`
	DataSource DataSource `yaml:"data_source"`
	Schedule   Schedule   `yaml:"schedule"`
	Telegram   Telegram   `yaml:"telegram"`
	Database   Database   `yaml:"database"`
	Metrics    Metrics    `yaml:"metrics"`
	// Symbols restricts scans; empty means the whole F&O universe.
	Symbols []string `yaml:"symbols"`
}

type Log struct {
	Level         string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error"`
	Format        string `yaml:"format" default:"pretty" validate:"oneof=json pretty"`
	FileEnabled   bool   `yaml:"file_enabled"`
	FilePath      string `yaml:"file_path" default:"logs"`
	RotationSize  int    `yaml:"rotation_size_mb" default:"50" validate:"gte=1"`
	RetentionDays int    `yaml:"retention_days" default:"14" validate:"gte=1"`
}

// Analysis tunes the orchestrator. RequestPacing is a pointer so that an
// explicit 0 disables pacing instead of falling back to the default.
type Analysis struct {
	Concurrency   int            `yaml:"concurrency" default:"3" validate:"gte=1,lte=32"`
	FetchTimeout  time.Duration  `yaml:"fetch_timeout" default:"15s" validate:"gt=0"`
	RequestPacing *time.Duration `yaml:"request_pacing" default:"500ms" validate:"omitempty,gte=0"`
	HistoryDays   int            `yaml:"history_days" default:"30" validate:"gte=10"`
}

type DataSource struct {
	YahooBaseURL  string  `yaml:"yahoo_base_url" default:"https://query1.finance.yahoo.com" validate:"url"`
	NSEBaseURL    string  `yaml:"nse_base_url" default:"https://www.nseindia.com" validate:"url"`
	GoogleNewsURL string  `yaml:"google_news_url" default:"https://www.google.com/search" validate:"url"`
	YahooNewsURL  string  `yaml:"yahoo_news_url" default:"https://finance.yahoo.com" validate:"url"`
	NewsDisabled  bool    `yaml:"news_disabled"`
	NSERatePerSec float64 `yaml:"nse_rate_per_sec" default:"2" validate:"gt=0"`
	Proxy         string  `yaml:"proxy" validate:"omitempty,url"`
}

type Schedule struct {
	// ScanCron uses the six-field format with seconds.
	ScanCron string `yaml:"scan_cron" default:"0 45 15 * * 1-5" validate:"required"`
}

type Telegram struct {
	BotToken string `yaml:"bot_token"`
	ChatID   string `yaml:"chat_id"`
}

type Database struct {
	SQLitePath string `yaml:"sqlite_path" default:"data/option_sentinel.db"`
}

type Metrics struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr" default:":9090" validate:"required"`
}

// Load reads config from a YAML file, applies environment overrides, fills
// defaults and validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Pacing returns the configured delay between dependent requests.
func (a Analysis) Pacing() time.Duration {
	if a.RequestPacing == nil {
		return 0
	}
	return *a.RequestPacing
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.DataSource.Proxy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("SCAN_CRON"); v != "" {
		c.Schedule.ScanCron = v
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		c.Symbols = SplitSymbols(v)
	}
	if v := os.Getenv("ANALYSIS_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Analysis.Concurrency = n
		}
	}
}

// SplitSymbols parses a comma separated symbol list, upper-casing entries.
func SplitSymbols(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if sym := strings.ToUpper(strings.TrimSpace(part)); sym != "" {
			out = append(out, sym)
		}
	}
	return out
}

var validate = validator.New()

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, e := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// RequireTelegram checks the settings needed to deliver reports.
func (c *Config) RequireTelegram() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return nil
}
