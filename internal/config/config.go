// Load envs from .env
// Load YAML config
// Override with env vars
// Validate and provide defaults

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "configs/config.yaml"

// Config is built once at startup and handed to each component; nothing
// reads ambient globals after Load returns.
type Config struct {
	WebhookURL      string        `yaml:"webhook_url" env:"JOB_WEBHOOK_URL"`
	SourceURL       string        `yaml:"source_url" env:"JOB_SOURCE_URL"`
	FreshnessHours  int           `yaml:"freshness_hours" env:"JOB_FRESHNESS_HOURS"`
	IncludeKeywords []string      `yaml:"include_keywords" env:"JOB_INCLUDE_KEYWORDS"`
	ExcludeKeywords []string      `yaml:"exclude_keywords" env:"JOB_EXCLUDE_KEYWORDS"`
	MustBeRemote    bool          `yaml:"must_be_remote" env:"JOB_MUST_BE_REMOTE"`
	MaxSendsPerRun  int           `yaml:"max_sends_per_run" env:"JOB_MAX_SENDS"`
	LedgerPath      string        `yaml:"sent_jobs_file" env:"JOB_SENT_FILE"`
	FetchTimeout    time.Duration `yaml:"fetch_timeout" env:"JOB_FETCH_TIMEOUT"`
	SendTimeout     time.Duration `yaml:"send_timeout" env:"JOB_SEND_TIMEOUT"`

	// optional Telegram mirror; disabled unless both are set
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
}

func defaults() *Config {
	return &Config{
		SourceURL:      "https://remoteok.com/api",
		FreshnessHours: 3,
		IncludeKeywords: []string{
			"automation", "n8n", "python", "operations", "administration",
			"coordinator", "associate", "entry level",
		},
		ExcludeKeywords: []string{
			"customer service", "sales",
			"senior", "lead", "director", "manager", "principal",
		},
		MustBeRemote:   false, // RemoteOK is remote-only by construction
		MaxSendsPerRun: 5,
		LedgerPath:     "sent_jobs.json",
		FetchTimeout:   15 * time.Second,
		SendTimeout:    10 * time.Second,
	}
}

// Load builds the configuration from defaults, the optional YAML file and
// the environment, in that order. The webhook URL is the only hard
// requirement; its absence is the one error that should abort the run
// before any network call.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	path := os.Getenv("JOB_CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Could not read %s: %v", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Window is the freshness window as a duration.
func (c *Config) Window() time.Duration {
	return time.Duration(c.FreshnessHours) * time.Hour
}

func (c *Config) validate() error {
	if c.WebhookURL == "" {
		return errors.New("JOB_WEBHOOK_URL is required")
	}
	if c.FreshnessHours <= 0 {
		return fmt.Errorf("freshness window must be positive, got %dh", c.FreshnessHours)
	}
	if c.MaxSendsPerRun <= 0 {
		return fmt.Errorf("per-run send cap must be positive, got %d", c.MaxSendsPerRun)
	}
	if len(c.IncludeKeywords) == 0 {
		return errors.New("at least one include keyword is required")
	}
	return nil
}
